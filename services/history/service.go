package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/mylog"
)

type branchHistory struct {
	sync.Mutex
	entries  []Entry
	total    int
	nextPage int
}

type service struct {
	sync.Mutex
	lister   TransactionLister
	branches map[string]*branchHistory
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(lister TransactionLister, logger mylog.Logger) *service {
	return &service{
		lister:   lister,
		branches: map[string]*branchHistory{},
		logger:   logger,
	}
}

func (s *service) branch(branchID string) *branchHistory {
	s.Lock()
	defer s.Unlock()

	h, exists := s.branches[branchID]
	if !exists {
		h = &branchHistory{nextPage: 1}
		s.branches[branchID] = h
	}
	return h
}

// load fetches the next page of a branch, or page 1 again when refresh is set.
// A failed fetch leaves what was loaded before untouched. Loads of one branch
// are serialized; other branches are not held up.
func (s *service) load(c context.Context, branchID string, refresh bool) (View, error) {
	h := s.branch(branchID)
	h.Lock()
	defer h.Unlock()

	pageNumber := h.nextPage
	if refresh {
		pageNumber = 1
	}

	page, err := s.lister.ListTransactions(c, branchID, pageNumber, pageSize)
	if err != nil {
		s.logger.Log(c, branchID, mylog.SeverityWarn, "Error loading page %d of history: %s", pageNumber, err)
		return View{}, myerrors.NewBadGatewayError(fmt.Errorf("error loading transactions: %w", err))
	}

	if refresh {
		h.entries = nil
	}
	for _, tx := range page.Transactions {
		h.entries = append(h.entries, newEntry(tx))
	}
	h.total = page.Total
	h.nextPage = pageNumber + 1

	s.logger.Log(c, branchID, mylog.SeverityInfo, "Loaded %d of %d transactions", len(h.entries), h.total)

	return h.view(branchID), nil
}

// get answers 404 for a transaction that belongs to another branch.
func (s *service) get(c context.Context, branchID string, transactionID string) (Entry, error) {
	tx, err := s.lister.GetTransaction(c, transactionID)
	if err != nil {
		var coder interface{ GetHTTPErrorCode() int }
		if errors.As(err, &coder) {
			return Entry{}, err
		}
		return Entry{}, myerrors.NewBadGatewayError(fmt.Errorf("error fetching transaction %s: %w", transactionID, err))
	}
	if tx.BranchID != branchID {
		s.logger.Log(c, transactionID, mylog.SeverityWarn, "Transaction belongs to branch %s, not %s", tx.BranchID, branchID)
		return Entry{}, myerrors.NewNotFoundError(fmt.Errorf("Transaksi tidak ditemukan"))
	}
	return newEntry(tx), nil
}

func (h *branchHistory) view(branchID string) View {
	entries := make([]Entry, len(h.entries))
	copy(entries, h.entries)
	return View{
		BranchID:     branchID,
		Transactions: entries,
		Total:        h.total,
		HasMore:      len(h.entries) < h.total,
	}
}
