package pos

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/mycontext"
	"github.com/mediakasir/apotekpos/lib/myhttp"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/lib/mypublisher"
	"github.com/mediakasir/apotekpos/lib/myuuid"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

type loadProductsForm struct {
	BranchID string `form:"branchId" json:"branchId"`
	Search   string `form:"search" json:"search"`
}

type quantityForm struct {
	Delta int `form:"delta" json:"delta"`
}

type discountForm struct {
	Discount string `form:"discount" json:"discount"`
}

type notesForm struct {
	Notes string `form:"notes" json:"notes"`
}

type paymentForm struct {
	Method    *string `form:"method" json:"method"`
	Amount    *string `form:"amount" json:"amount"`
	Reference *string `form:"reference" json:"reference"`
}

type checkoutForm struct {
	BranchID    string `form:"branchId" json:"branchId"`
	BranchName  string `form:"branchName" json:"branchName"`
	CashierID   string `form:"cashierId" json:"cashierId"`
	CashierName string `form:"cashierName" json:"cashierName"`
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(catalog CatalogProvider, transactions TransactionService, uuider myuuid.UUIDer, publisher mypublisher.Publisher, checkoutTimeout time.Duration) *webService {
	logger := mylog.New("pos")
	return &webService{
		logger:  logger,
		service: newService(catalog, transactions, uuider, logger, publisher, checkoutTimeout),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/pos/{terminalUID}", s.openTerminal()).Methods("PUT")
	router.HandleFunc("/api/pos/{terminalUID}", s.getState()).Methods("GET")
	router.HandleFunc("/api/pos/{terminalUID}", s.cancel()).Methods("DELETE")

	router.HandleFunc("/api/pos/{terminalUID}/products/load", s.loadProducts()).Methods("POST")

	router.HandleFunc("/api/pos/{terminalUID}/cart/{productID}", s.addToCart()).Methods("POST")
	router.HandleFunc("/api/pos/{terminalUID}/cart/{productID}", s.updateQuantity()).Methods("PUT")
	router.HandleFunc("/api/pos/{terminalUID}/cart/{productID}", s.removeFromCart()).Methods("DELETE")

	router.HandleFunc("/api/pos/{terminalUID}/discount", s.setDiscount()).Methods("PUT")
	router.HandleFunc("/api/pos/{terminalUID}/notes", s.setNotes()).Methods("PUT")

	router.HandleFunc("/api/pos/{terminalUID}/payment", s.addPayment()).Methods("POST")
	router.HandleFunc("/api/pos/{terminalUID}/payment/{paymentUID}", s.updatePayment()).Methods("PUT")
	router.HandleFunc("/api/pos/{terminalUID}/payment/{paymentUID}", s.removePayment()).Methods("DELETE")

	router.HandleFunc("/api/pos/{terminalUID}/checkout", s.checkout()).Methods("POST")
	router.HandleFunc("/api/pos/{terminalUID}/receipt", s.dismissReceipt()).Methods("DELETE")
	router.HandleFunc("/api/pos/{terminalUID}/error", s.clearError()).Methods("DELETE")
}

func (s *webService) openTerminal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		state := s.service.openTerminal(c, mux.Vars(r)["terminalUID"])
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, state)
	}
}

func (s *webService) getState() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.getState(c, terminalUID)
	})
}

func (s *webService) cancel() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.cancel(c, terminalUID)
	})
}

func (s *webService) loadProducts() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := loadProductsForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		return s.service.loadProducts(c, terminalUID, form.BranchID, form.Search)
	})
}

func (s *webService) addToCart() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.addToCart(c, terminalUID, mux.Vars(r)["productID"])
	})
}

func (s *webService) updateQuantity() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := quantityForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		return s.service.updateQuantity(c, terminalUID, mux.Vars(r)["productID"], form.Delta)
	})
}

func (s *webService) removeFromCart() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.removeFromCart(c, terminalUID, mux.Vars(r)["productID"])
	})
}

func (s *webService) setDiscount() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := discountForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		return s.service.setDiscount(c, terminalUID, form.Discount)
	})
}

func (s *webService) setNotes() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := notesForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		return s.service.setNotes(c, terminalUID, form.Notes)
	})
}

func (s *webService) addPayment() http.HandlerFunc {
	return s.stateHandler(http.StatusCreated, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.addPayment(c, terminalUID)
	})
}

func (s *webService) updatePayment() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := paymentForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		upd := PaymentUpdate{
			Amount:    form.Amount,
			Reference: form.Reference,
		}
		if form.Method != nil {
			method := PaymentMethod(*form.Method)
			upd.Method = &method
		}
		return s.service.updatePayment(c, terminalUID, mux.Vars(r)["paymentUID"], upd)
	})
}

func (s *webService) removePayment() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.removePayment(c, terminalUID, mux.Vars(r)["paymentUID"])
	})
}

func (s *webService) checkout() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		form := checkoutForm{}
		err := myhttp.Bind(r, &form)
		if err != nil {
			return State{}, err
		}
		return s.service.checkout(c, terminalUID, Till{
			BranchID:    form.BranchID,
			BranchName:  form.BranchName,
			CashierID:   form.CashierID,
			CashierName: form.CashierName,
		})
	})
}

func (s *webService) dismissReceipt() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.dismissReceipt(c, terminalUID)
	})
}

func (s *webService) clearError() http.HandlerFunc {
	return s.stateHandler(http.StatusOK, func(c context.Context, r *http.Request, terminalUID string) (State, error) {
		return s.service.clearError(c, terminalUID)
	})
}

// stateHandler answers with the terminal state after op succeeded.
func (s *webService) stateHandler(successStatus int, op func(c context.Context, r *http.Request, terminalUID string) (State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		state, err := op(c, r, mux.Vars(r)["terminalUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, successStatus, state)
	}
}
