package posevents

const (
	TopicName             = "pos"
	checkoutCompletedName = TopicName + ".checkout.completed"
)

// CheckoutCompleted is published once the backend has recorded a sale.
// Amounts are decimal strings.
type CheckoutCompleted struct {
	TerminalUID       string
	TransactionID     string
	TransactionNumber string
	BranchID          string
	CashierID         string
	ItemCount         int
	TotalAmount       string
	TotalPaid         string
	Change            string
	PaymentMethods    []string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.TransactionID
}
