package fakebackend

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/mycontext"
	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/myhttp"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/services/backend/wire"
)

type webService struct {
	logger  mylog.Logger
	backend *Backend
	token   string
}

// NewWebService exposes backend over the pharmacy REST api. An empty token disables authentication.
func NewWebService(backend *Backend, token string) *webService {
	return &webService{
		logger:  mylog.New("fakebackend"),
		backend: backend,
		token:   token,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router, prefix string) {
	subRouter := router.PathPrefix(prefix).Subrouter()
	subRouter.Use(s.authenticate)

	subRouter.HandleFunc("/products", s.listProducts()).Methods("GET")
	subRouter.HandleFunc("/transactions", s.createTransaction()).Methods("POST")
	subRouter.HandleFunc("/transactions", s.listTransactions()).Methods("GET")
	subRouter.HandleFunc("/transactions/{transactionID}", s.getTransaction()).Methods("GET")
	subRouter.HandleFunc("/dashboard", s.dashboard()).Methods("GET")
	subRouter.HandleFunc("/alerts", s.alerts()).Methods("GET")
}

func (s *webService) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			c := mycontext.ContextFromHTTPRequest(r)
			myhttp.NewWriter(s.logger).Write(c, w, http.StatusUnauthorized, wire.ErrorResponse{Detail: "Token tidak valid"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type listForm struct {
	BranchID string
	Search   string
	Page     int
	Limit    int
}

// parseListForm reads filtering and paging from the query string.
func parseListForm(r *http.Request) (listForm, error) {
	query := r.URL.Query()
	form := listForm{
		BranchID: query.Get("branch_id"),
		Search:   query.Get("search"),
	}
	for name, dst := range map[string]*int{"page": &form.Page, "limit": &form.Limit} {
		value := query.Get(name)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return listForm{}, myerrors.NewInvalidInputErrorf("%s harus berupa angka", name)
		}
		*dst = n
	}
	return form, nil
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		form, err := parseListForm(r)
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		products, err := s.backend.FetchCatalog(c, form.BranchID, form.Search)
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		resp := wire.ProductsResponse{
			Data:  []wire.Product{},
			Total: len(products),
			Page:  1,
			Limit: catalogLimit,
		}
		for _, p := range products {
			resp.Data = append(resp.Data, wire.FromProduct(form.BranchID, p))
		}
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) createTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		body := wire.TransactionCreate{}
		err := myhttp.Bind(r, &body)
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		tx, err := s.backend.SubmitCheckout(c, body.ToCheckoutRequest())
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		s.logger.Log(c, tx.ID, mylog.SeverityInfo, "Recorded transaction %s for branch %s", tx.TransactionNumber, tx.BranchID)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusCreated, wire.FromTransaction(tx))
	}
}

func (s *webService) listTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		form, err := parseListForm(r)
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		page, err := s.backend.ListTransactions(c, form.BranchID, form.Page, form.Limit)
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		resp := wire.TransactionsResponse{
			Data:  []wire.Transaction{},
			Total: page.Total,
			Page:  page.Page,
			Limit: form.Limit,
		}
		for _, tx := range page.Transactions {
			resp.Data = append(resp.Data, wire.FromTransaction(tx))
		}
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) getTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		tx, err := s.backend.GetTransaction(c, mux.Vars(r)["transactionID"])
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, wire.FromTransaction(tx))
	}
}

func (s *webService) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		figures, err := s.backend.FetchDashboard(c, r.URL.Query().Get("branch_id"))
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, wire.FromFigures(figures))
	}
}

func (s *webService) alerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		alerts, err := s.backend.FetchAlerts(c, r.URL.Query().Get("branch_id"))
		if err != nil {
			s.writeError(c, w, err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, wire.FromAlerts(alerts))
	}
}

type messager interface {
	Message() string
}

// writeError answers in the {"detail": "..."} shape of the real backend.
func (s *webService) writeError(c context.Context, w http.ResponseWriter, err error) {
	status := myerrors.GetHTTPStatus(err)
	s.logger.Log(c, "", mylog.SeverityWarn, "Rejected request with %d: %s", status, err)

	message := err.Error()
	var m messager
	if errors.As(err, &m) {
		message = m.Message()
	}
	myhttp.NewWriter(s.logger).Write(c, w, status, wire.ErrorResponse{Detail: strings.TrimSpace(message)})
}
