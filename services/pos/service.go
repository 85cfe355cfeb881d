package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/lib/mypublisher"
	"github.com/mediakasir/apotekpos/lib/myuuid"
	"github.com/mediakasir/apotekpos/services/pos/posevents"
)

// service hosts one engine per terminal.
type service struct {
	sync.Mutex
	engines         map[string]*Engine
	catalog         CatalogProvider
	transactions    TransactionService
	publisher       mypublisher.Publisher
	uuider          myuuid.UUIDer
	logger          mylog.Logger
	checkoutTimeout time.Duration
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(catalog CatalogProvider, transactions TransactionService, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher, checkoutTimeout time.Duration) *service {
	return &service{
		engines:         map[string]*Engine{},
		catalog:         catalog,
		transactions:    transactions,
		publisher:       pub,
		uuider:          uuider,
		logger:          logger,
		checkoutTimeout: checkoutTimeout,
	}
}

func (s *service) openTerminal(c context.Context, terminalUID string) State {
	s.Lock()
	defer s.Unlock()

	e, exists := s.engines[terminalUID]
	if !exists {
		s.logger.Log(c, terminalUID, mylog.SeverityInfo, "Opening terminal %s", terminalUID)
		e = NewEngine(s.catalog, s.transactions, s.uuider, s.checkoutTimeout)
		s.engines[terminalUID] = e
	}
	return e.State()
}

func (s *service) engine(terminalUID string) (*Engine, error) {
	s.Lock()
	defer s.Unlock()

	e, exists := s.engines[terminalUID]
	if !exists {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("terminal %s not opened", terminalUID))
	}
	return e, nil
}

// withEngine applies op to the engine of the terminal and returns the resulting state.
func (s *service) withEngine(c context.Context, terminalUID string, opName string, op func(e *Engine) error) (State, error) {
	e, err := s.engine(terminalUID)
	if err != nil {
		return State{}, err
	}

	err = op(e)
	if err != nil {
		s.logger.Log(c, terminalUID, mylog.SeverityWarn, "%s rejected: %s", opName, err)
		return State{}, asHTTPError(err)
	}

	return e.State(), nil
}

func (s *service) getState(c context.Context, terminalUID string) (State, error) {
	return s.withEngine(c, terminalUID, "get state", func(e *Engine) error {
		return nil
	})
}

func (s *service) loadProducts(c context.Context, terminalUID string, branchID string, search string) (State, error) {
	if branchID == "" {
		return State{}, myerrors.NewInvalidInputError(fmt.Errorf("missing branchId"))
	}
	return s.withEngine(c, terminalUID, "load products", func(e *Engine) error {
		err := e.LoadProducts(c, branchID, search)
		if err != nil {
			return myerrors.NewBadGatewayError(err)
		}
		return nil
	})
}

func (s *service) addToCart(c context.Context, terminalUID string, productID string) (State, error) {
	return s.withEngine(c, terminalUID, "add to cart", func(e *Engine) error {
		p, found := e.Product(productID)
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("product %s not in loaded catalog", productID))
		}
		return e.AddToCart(p)
	})
}

func (s *service) updateQuantity(c context.Context, terminalUID string, productID string, delta int) (State, error) {
	return s.withEngine(c, terminalUID, "update quantity", func(e *Engine) error {
		return e.UpdateQuantity(productID, delta)
	})
}

func (s *service) removeFromCart(c context.Context, terminalUID string, productID string) (State, error) {
	return s.withEngine(c, terminalUID, "remove from cart", func(e *Engine) error {
		return e.RemoveFromCart(productID)
	})
}

func (s *service) setDiscount(c context.Context, terminalUID string, text string) (State, error) {
	return s.withEngine(c, terminalUID, "set discount", func(e *Engine) error {
		return e.SetDiscount(text)
	})
}

func (s *service) setNotes(c context.Context, terminalUID string, text string) (State, error) {
	return s.withEngine(c, terminalUID, "set notes", func(e *Engine) error {
		return e.SetNotes(text)
	})
}

func (s *service) addPayment(c context.Context, terminalUID string) (State, error) {
	return s.withEngine(c, terminalUID, "add payment", func(e *Engine) error {
		_, err := e.AddPayment()
		return err
	})
}

func (s *service) updatePayment(c context.Context, terminalUID string, paymentUID string, upd PaymentUpdate) (State, error) {
	return s.withEngine(c, terminalUID, "update payment", func(e *Engine) error {
		return e.UpdatePayment(paymentUID, upd)
	})
}

func (s *service) removePayment(c context.Context, terminalUID string, paymentUID string) (State, error) {
	return s.withEngine(c, terminalUID, "remove payment", func(e *Engine) error {
		return e.RemovePayment(paymentUID)
	})
}

func (s *service) cancel(c context.Context, terminalUID string) (State, error) {
	return s.withEngine(c, terminalUID, "cancel", func(e *Engine) error {
		return e.Clear()
	})
}

func (s *service) dismissReceipt(c context.Context, terminalUID string) (State, error) {
	return s.withEngine(c, terminalUID, "dismiss receipt", func(e *Engine) error {
		e.DismissReceipt()
		return nil
	})
}

func (s *service) clearError(c context.Context, terminalUID string) (State, error) {
	return s.withEngine(c, terminalUID, "clear error", func(e *Engine) error {
		e.ClearError()
		return nil
	})
}

func (s *service) checkout(c context.Context, terminalUID string, till Till) (State, error) {
	if till.BranchID == "" || till.CashierID == "" {
		return State{}, myerrors.NewInvalidInputError(fmt.Errorf("missing branchId or cashierId"))
	}

	return s.withEngine(c, terminalUID, "checkout", func(e *Engine) error {
		tx, err := e.Checkout(c, till)
		if err != nil {
			return err
		}

		s.logger.Log(c, tx.ID, mylog.SeverityInfo, "Terminal %s recorded transaction %s (%s)", terminalUID, tx.TransactionNumber, tx.TotalAmount)

		// The sale is recorded; a failing publication must not undo that.
		err = s.publisher.Publish(c, posevents.TopicName, checkoutCompleted(terminalUID, tx))
		if err != nil {
			s.logger.Log(c, tx.ID, mylog.SeverityError, "Error publishing checkout of transaction %s: %s", tx.ID, err)
		}
		return nil
	})
}

func checkoutCompleted(terminalUID string, tx Transaction) posevents.CheckoutCompleted {
	itemCount := 0
	for _, item := range tx.Items {
		itemCount += item.Quantity
	}
	methods := []string{}
	for _, p := range tx.PaymentDetails {
		methods = append(methods, strings.ToLower(p.Method))
	}
	return posevents.CheckoutCompleted{
		TerminalUID:       terminalUID,
		TransactionID:     tx.ID,
		TransactionNumber: tx.TransactionNumber,
		BranchID:          tx.BranchID,
		CashierID:         tx.CashierID,
		ItemCount:         itemCount,
		TotalAmount:       tx.TotalAmount.String(),
		TotalPaid:         tx.TotalPaid.String(),
		Change:            tx.Change.String(),
		PaymentMethods:    methods,
	}
}

func asHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrCheckoutInProgress):
		return myerrors.NewConflictError(err)
	case errors.Is(err, ErrPaymentInsufficient), errors.Is(err, ErrCartEmpty), errors.Is(err, ErrUnknownPaymentMethod):
		return myerrors.NewInvalidInputError(err)
	case errors.Is(err, ErrPaymentNotFound):
		return myerrors.NewNotFoundError(err)
	case errors.Is(err, ErrCheckoutFailed):
		return myerrors.NewBadGatewayError(err)
	}

	var coder interface{ GetHTTPErrorCode() int }
	if errors.As(err, &coder) {
		return err
	}
	return myerrors.NewInternalError(err)
}
