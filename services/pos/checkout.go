package pos

import (
	"context"
	"strings"
)

// Checkout submits the cart to the transaction service. It runs at most once at a
// time per engine: a call made while another is processing returns ErrCheckoutInProgress.
// On success the returned transaction becomes the receipt, the engine is reset and the
// catalog of the branch is reloaded. On failure the cart and payments stay as they were.
func (e *Engine) Checkout(c context.Context, till Till) (Transaction, error) {
	e.mu.Lock()
	if e.processing {
		e.mu.Unlock()
		return Transaction{}, ErrCheckoutInProgress
	}
	if len(e.lines) == 0 {
		e.lastError = ErrCartEmpty.Error()
		e.unlockAndNotify(true)
		return Transaction{}, ErrCartEmpty
	}

	e.processing = true
	e.lastError = ""

	// Figures are taken now, not from what a screen showed earlier.
	if e.totalPaid().LessThan(e.total()) {
		e.processing = false
		e.lastError = ErrPaymentInsufficient.Error()
		e.unlockAndNotify(true)
		return Transaction{}, ErrPaymentInsufficient
	}
	req := e.checkoutRequest(till)
	e.unlockAndNotify(true)

	tx, err := e.submit(c, req)

	e.mu.Lock()
	e.processing = false
	if err != nil {
		failed := newCheckoutFailedError(err)
		e.lastError = failed.Message
		e.unlockAndNotify(true)
		return Transaction{}, failed
	}
	e.receipt = &tx
	e.reset()
	e.unlockAndNotify(true)

	// Stock changed on the server; a failing reload is visible in the state only.
	_ = e.LoadProducts(c, till.BranchID, "")

	return tx, nil
}

func (e *Engine) submit(c context.Context, req CheckoutRequest) (Transaction, error) {
	if e.checkoutTimeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(c, e.checkoutTimeout)
		defer cancel()
	}
	return e.transactions.SubmitCheckout(c, req)
}

// checkoutRequest must be called with the lock held.
func (e *Engine) checkoutRequest(till Till) CheckoutRequest {
	items := make([]CheckoutItem, 0, len(e.lines))
	for _, l := range e.lines {
		items = append(items, CheckoutItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Unit:        l.Product.Unit,
			SellPrice:   l.Product.SellPrice,
		})
	}

	payments := []PaymentDetail{}
	for _, p := range e.payments {
		amount := parseAmount(p.Amount)
		if !amount.IsPositive() {
			continue
		}
		payments = append(payments, PaymentDetail{
			Method:    strings.ToLower(string(p.Method)),
			Amount:    amount,
			Reference: p.Reference,
		})
	}

	return CheckoutRequest{
		BranchID:       till.BranchID,
		BranchName:     till.BranchName,
		CashierID:      till.CashierID,
		CashierName:    till.CashierName,
		Items:          items,
		Discount:       e.discountAmount(),
		PaymentDetails: payments,
		Notes:          e.notes,
	}
}

// LoadProducts replaces the catalog snapshot. On failure the previous catalog is kept
// and the error is shown in the state.
func (e *Engine) LoadProducts(c context.Context, branchID string, search string) error {
	e.mu.Lock()
	e.loadingProducts = true
	e.unlockAndNotify(true)

	products, err := e.catalog.FetchCatalog(c, branchID, search)

	e.mu.Lock()
	e.loadingProducts = false
	if err != nil {
		e.lastError = err.Error()
	} else {
		e.products = products
	}
	e.unlockAndNotify(true)

	return err
}

// Clear cancels the sale: empty cart, discount "0" and a single Cash payment.
func (e *Engine) Clear() error {
	return e.mutate(func() (bool, error) {
		e.reset()
		return true, nil
	})
}

func (e *Engine) DismissReceipt() {
	e.mu.Lock()
	e.receipt = nil
	e.unlockAndNotify(true)
}

func (e *Engine) ClearError() {
	e.mu.Lock()
	e.lastError = ""
	e.unlockAndNotify(true)
}
