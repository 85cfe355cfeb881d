package pos

import (
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mediakasir/apotekpos/lib/myuuid"
)

const defaultDiscountText = "0"

// Engine holds the cart, payments and discount of one till.
// All methods are safe for concurrent use. While a checkout is processing
// the cart, payments, discount and notes cannot be changed.
type Engine struct {
	mu              sync.Mutex
	catalog         CatalogProvider
	transactions    TransactionService
	uuider          myuuid.UUIDer
	checkoutTimeout time.Duration

	lines           []CartLine
	payments        []PaymentEntry
	discountText    string
	notes           string
	processing      bool
	loadingProducts bool
	receipt         *Transaction
	lastError       string
	products        []Product

	observers      map[int]func(State)
	nextObserverID int
}

func NewEngine(catalog CatalogProvider, transactions TransactionService, uuider myuuid.UUIDer, checkoutTimeout time.Duration) *Engine {
	e := &Engine{
		catalog:         catalog,
		transactions:    transactions,
		uuider:          uuider,
		checkoutTimeout: checkoutTimeout,
		observers:       map[int]func(State){},
	}
	e.reset()
	return e
}

// reset must be called with the lock held.
func (e *Engine) reset() {
	e.lines = nil
	e.payments = []PaymentEntry{{ID: e.uuider.Create(), Method: PaymentMethodCash}}
	e.discountText = defaultDiscountText
	e.notes = ""
}

// mutate runs f under the lock and notifies observers when f reports a change.
func (e *Engine) mutate(f func() (bool, error)) error {
	e.mu.Lock()
	if e.processing {
		e.mu.Unlock()
		return ErrCheckoutInProgress
	}
	changed, err := f()
	e.unlockAndNotify(changed)
	return err
}

func (e *Engine) unlockAndNotify(changed bool) {
	if !changed {
		e.mu.Unlock()
		return
	}
	state := e.snapshot()
	observers := make([]func(State), 0, len(e.observers))
	for _, o := range e.observers {
		observers = append(observers, o)
	}
	e.mu.Unlock()

	for _, o := range observers {
		o(state)
	}
}

// Subscribe registers an observer that receives a State after every applied change.
func (e *Engine) Subscribe(observer func(State)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextObserverID
	e.nextObserverID++
	e.observers[id] = observer

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

func (e *Engine) lineIndex(productID string) int {
	return slices.IndexFunc(e.lines, func(l CartLine) bool {
		return l.Product.ID == productID
	})
}

// AddToCart adds one unit of p. Stock is checked against p, which also becomes
// the line's new snapshot.
func (e *Engine) AddToCart(p Product) error {
	return e.mutate(func() (bool, error) {
		if p.CurrentStock <= 0 {
			return false, outOfStock(p)
		}

		idx := e.lineIndex(p.ID)
		if idx < 0 {
			e.lines = append(e.lines, CartLine{Product: p, Quantity: 1})
			return true, nil
		}

		if e.lines[idx].Quantity+1 > p.CurrentStock {
			return false, &InsufficientStockError{ProductID: p.ID, Available: p.CurrentStock}
		}
		e.lines[idx] = CartLine{Product: p, Quantity: e.lines[idx].Quantity + 1}
		return true, nil
	})
}

// UpdateQuantity adds delta to a line. Unknown lines and results below one are ignored;
// removing a line is done with RemoveFromCart.
func (e *Engine) UpdateQuantity(productID string, delta int) error {
	return e.mutate(func() (bool, error) {
		idx := e.lineIndex(productID)
		if idx < 0 {
			return false, nil
		}

		line := e.lines[idx]
		newQuantity := line.Quantity + delta
		if newQuantity <= 0 || newQuantity == line.Quantity {
			return false, nil
		}
		if newQuantity > line.Product.CurrentStock {
			return false, &InsufficientStockError{ProductID: productID, Available: line.Product.CurrentStock}
		}
		e.lines[idx].Quantity = newQuantity
		return true, nil
	})
}

func (e *Engine) RemoveFromCart(productID string) error {
	return e.mutate(func() (bool, error) {
		idx := e.lineIndex(productID)
		if idx < 0 {
			return false, nil
		}
		e.lines = slices.Delete(e.lines, idx, idx+1)
		return true, nil
	})
}

// SetDiscount stores the text as entered; it is parsed when totals are computed.
func (e *Engine) SetDiscount(text string) error {
	return e.mutate(func() (bool, error) {
		e.discountText = text
		return true, nil
	})
}

func (e *Engine) SetNotes(text string) error {
	return e.mutate(func() (bool, error) {
		e.notes = text
		return true, nil
	})
}

// AddPayment appends an empty Transfer entry for split payments.
func (e *Engine) AddPayment() (PaymentEntry, error) {
	entry := PaymentEntry{}
	err := e.mutate(func() (bool, error) {
		entry = PaymentEntry{ID: e.uuider.Create(), Method: PaymentMethodTransfer}
		e.payments = append(e.payments, entry)
		return true, nil
	})
	return entry, err
}

// RemovePayment may remove the last entry; an engine without payments cannot pay.
func (e *Engine) RemovePayment(paymentID string) error {
	return e.mutate(func() (bool, error) {
		idx := e.paymentIndex(paymentID)
		if idx < 0 {
			return false, ErrPaymentNotFound
		}
		e.payments = slices.Delete(e.payments, idx, idx+1)
		return true, nil
	})
}

func (e *Engine) UpdatePayment(paymentID string, upd PaymentUpdate) error {
	return e.mutate(func() (bool, error) {
		idx := e.paymentIndex(paymentID)
		if idx < 0 {
			return false, ErrPaymentNotFound
		}

		entry := e.payments[idx]
		if upd.Method != nil {
			method, err := ParsePaymentMethod(string(*upd.Method))
			if err != nil {
				return false, err
			}
			entry.Method = method
		}
		if upd.Amount != nil {
			entry.Amount = *upd.Amount
		}
		if upd.Reference != nil {
			entry.Reference = *upd.Reference
		}
		e.payments[idx] = entry
		return true, nil
	})
}

func (e *Engine) paymentIndex(paymentID string) int {
	return slices.IndexFunc(e.payments, func(p PaymentEntry) bool {
		return p.ID == paymentID
	})
}

// Product returns an entry of the last loaded catalog.
func (e *Engine) Product(productID string) (Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.IndexFunc(e.products, func(p Product) bool {
		return p.ID == productID
	})
	if idx < 0 {
		return Product{}, false
	}
	return e.products[idx], true
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot()
}

func (e *Engine) snapshot() State {
	change := e.change()
	return State{
		Lines:           slices.Clone(e.lines),
		Payments:        slices.Clone(e.payments),
		DiscountText:    e.discountText,
		Notes:           e.notes,
		Subtotal:        e.subtotal(),
		DiscountAmount:  e.discountAmount(),
		Total:           e.total(),
		TotalPaid:       e.totalPaid(),
		Change:          change,
		ChangeDisplay:   decimal.Max(decimal.Zero, change),
		CartCount:       e.cartCount(),
		Processing:      e.processing,
		LoadingProducts: e.loadingProducts,
		Receipt:         e.receiptCopy(),
		Error:           e.lastError,
		Catalog:         slices.Clone(e.products),
	}
}

func (e *Engine) receiptCopy() *Transaction {
	if e.receipt == nil {
		return nil
	}
	receipt := *e.receipt
	receipt.Items = slices.Clone(receipt.Items)
	receipt.PaymentDetails = slices.Clone(receipt.PaymentDetails)
	return &receipt
}

func (e *Engine) Subtotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subtotal()
}

func (e *Engine) DiscountAmount() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.discountAmount()
}

func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total()
}

func (e *Engine) TotalPaid() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPaid()
}

// Change is negative while the customer has not paid enough.
func (e *Engine) Change() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.change()
}

func (e *Engine) CartCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cartCount()
}

func (e *Engine) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func (e *Engine) discountAmount() decimal.Decimal {
	return parseAmount(e.discountText)
}

func (e *Engine) total() decimal.Decimal {
	return decimal.Max(decimal.Zero, e.subtotal().Sub(e.discountAmount()))
}

func (e *Engine) totalPaid() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range e.payments {
		sum = sum.Add(parseAmount(p.Amount))
	}
	return sum
}

func (e *Engine) change() decimal.Decimal {
	return e.totalPaid().Sub(e.total())
}

func (e *Engine) cartCount() int {
	count := 0
	for _, l := range e.lines {
		count += l.Quantity
	}
	return count
}
