package pos

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "Cash"
	PaymentMethodTransfer PaymentMethod = "Transfer"
	PaymentMethodQRIS     PaymentMethod = "QRIS"
	PaymentMethodDebit    PaymentMethod = "Debit"
	PaymentMethodCredit   PaymentMethod = "Credit"
)

var paymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodTransfer,
	PaymentMethodQRIS,
	PaymentMethodDebit,
	PaymentMethodCredit,
}

// ParsePaymentMethod is case-insensitive: "qris" and "QRIS" are the same method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
}

// Product is a catalog snapshot as it was when the catalog was last loaded.
type Product struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode,omitempty"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	SellPrice    decimal.Decimal `json:"sellPrice"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.SellPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PaymentEntry keeps the amount as typed by the cashier.
type PaymentEntry struct {
	ID        string        `json:"id"`
	Method    PaymentMethod `json:"method"`
	Amount    string        `json:"amount"`
	Reference string        `json:"reference,omitempty"`
}

// PaymentUpdate changes only the fields that are set.
type PaymentUpdate struct {
	Method    *PaymentMethod
	Amount    *string
	Reference *string
}

// Till identifies where and by whom a sale is made.
type Till struct {
	BranchID    string
	BranchName  string
	CashierID   string
	CashierName string
}

type CheckoutItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Unit        string
	SellPrice   decimal.Decimal
}

type PaymentDetail struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

type CheckoutRequest struct {
	BranchID       string
	BranchName     string
	CashierID      string
	CashierName    string
	Items          []CheckoutItem
	Discount       decimal.Decimal
	PaymentDetails []PaymentDetail
	Notes          string
}

type TransactionItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Transaction is the sale as recorded by the backend; its figures are authoritative.
type Transaction struct {
	ID                string            `json:"id"`
	TransactionNumber string            `json:"transactionNumber"`
	BranchID          string            `json:"branchId"`
	BranchName        string            `json:"branchName"`
	CashierID         string            `json:"cashierId"`
	CashierName       string            `json:"cashierName"`
	Items             []TransactionItem `json:"items"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	Discount          decimal.Decimal   `json:"discount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	TotalPaid         decimal.Decimal   `json:"totalPaid"`
	Change            decimal.Decimal   `json:"change"`
	PaymentDetails    []PaymentDetail   `json:"paymentDetails"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         string            `json:"createdAt"`
}

// State is a copy of everything a till screen shows. Changing it has no effect on the engine.
type State struct {
	Lines           []CartLine      `json:"lines"`
	Payments        []PaymentEntry  `json:"payments"`
	DiscountText    string          `json:"discountText"`
	Notes           string          `json:"notes,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	Change          decimal.Decimal `json:"change"`
	ChangeDisplay   decimal.Decimal `json:"changeDisplay"`
	CartCount       int             `json:"cartCount"`
	Processing      bool            `json:"processing"`
	LoadingProducts bool            `json:"loadingProducts"`
	Receipt         *Transaction    `json:"receipt,omitempty"`
	Error           string          `json:"error,omitempty"`
	Catalog         []Product       `json:"catalog"`
}

// maxAmountScale bounds the decimals kept from typed amounts.
const maxAmountScale = 8

// parseAmount never fails: text that is not a plain decimal number counts as zero.
// Exponent notation is refused so typed amounts stay bounded.
func parseAmount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "eE") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	if d.Exponent() < -maxAmountScale {
		return d.Truncate(maxAmountScale)
	}
	return d
}
