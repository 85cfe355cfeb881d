package history

import (
	"github.com/mediakasir/apotekpos/lib/myformat"
	"github.com/mediakasir/apotekpos/services/pos"
)

const pageSize = 20

// TransactionPage is one page of the backend listing; Total counts all pages.
type TransactionPage struct {
	Transactions []pos.Transaction
	Total        int
	Page         int
}

type Entry struct {
	pos.Transaction
	TotalDisplay     string `json:"totalDisplay"`
	CreatedAtDisplay string `json:"createdAtDisplay"`
}

// View is what has been loaded so far for a branch.
type View struct {
	BranchID     string  `json:"branchId"`
	Transactions []Entry `json:"transactions"`
	Total        int     `json:"total"`
	HasMore      bool    `json:"hasMore"`
}

func newEntry(tx pos.Transaction) Entry {
	return Entry{
		Transaction:      tx,
		TotalDisplay:     myformat.FormatIDR(tx.TotalAmount),
		CreatedAtDisplay: myformat.FormatDateTime(tx.CreatedAt),
	}
}
