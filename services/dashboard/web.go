package dashboard

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

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(source Source) *webService {
	logger := mylog.New("dashboard")
	return &webService{
		logger:  logger,
		service: newService(source, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/dashboard/{branchID}", s.dashboardPage()).Methods("GET")
}

func (s *webService) dashboardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		overview, err := s.service.load(c, mux.Vars(r)["branchID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, overview)
	}
}
