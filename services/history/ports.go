package history

import (
	"context"

	"github.com/mediakasir/apotekpos/services/pos"
)

//go:generate mockgen -source=ports.go -package history -destination ports_mock.go TransactionLister
type TransactionLister interface {
	ListTransactions(c context.Context, branchID string, page int, limit int) (TransactionPage, error)
	GetTransaction(c context.Context, transactionID string) (pos.Transaction, error)
}
