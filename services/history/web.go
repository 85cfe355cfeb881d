package history

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/mycontext"
	"github.com/mediakasir/apotekpos/lib/myhttp"
	"github.com/mediakasir/apotekpos/lib/mylog"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

type loadForm struct {
	Refresh bool `form:"refresh"`
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(lister TransactionLister) *webService {
	logger := mylog.New("history")
	return &webService{
		logger:  logger,
		service: newService(lister, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/history/{branchID}", s.loadPage()).Methods("GET")
	router.HandleFunc("/api/history/{branchID}/{transactionID}", s.transactionPage()).Methods("GET")
}

// loadPage answers with everything loaded so far after fetching the next page.
// ?refresh=true starts over at the first page.
func (s *webService) loadPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form := loadForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		view, err := s.service.load(c, mux.Vars(r)["branchID"], form.Refresh)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, view)
	}
}

func (s *webService) transactionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		entry, err := s.service.get(c, mux.Vars(r)["branchID"], mux.Vars(r)["transactionID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, entry)
	}
}
