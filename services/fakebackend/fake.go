// Package fakebackend is an in-memory pharmacy backend. It serves local
// development and keeps the REST client honest through a shared contract.
package fakebackend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/mystore"
	"github.com/mediakasir/apotekpos/lib/mytime"
	"github.com/mediakasir/apotekpos/lib/myuuid"
	"github.com/mediakasir/apotekpos/services/dashboard"
	"github.com/mediakasir/apotekpos/services/history"
	"github.com/mediakasir/apotekpos/services/pos"
)

const (
	catalogLimit   = 50
	expiryHorizon  = 30 * 24 * time.Hour
	createdAtFmt   = "2006-01-02T15:04:05"
	expiryDateFmt  = time.DateOnly
	numberDateFmt  = "20060102"
	defaultPageLen = 20
)

var (
	_ pos.CatalogProvider       = (*Backend)(nil)
	_ pos.TransactionService    = (*Backend)(nil)
	_ history.TransactionLister = (*Backend)(nil)
	_ dashboard.Source          = (*Backend)(nil)
)

type productRecord struct {
	BranchID string
	Seq      int
	Product  pos.Product
}

type transactionRecord struct {
	BranchID    string
	Seq         int
	Day         string
	Transaction pos.Transaction
}

type batchRecord struct {
	BranchID string
	Seq      int
	Batch    dashboard.Batch
}

type Backend struct {
	sync.Mutex
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	products     *mystore.InMemoryStore[productRecord]
	transactions *mystore.InMemoryStore[transactionRecord]
	batches      *mystore.InMemoryStore[batchRecord]
	seq          int
}

func New(nower mytime.Nower, uuider myuuid.UUIDer) *Backend {
	c := context.Background()
	products, _, _ := mystore.NewInMemoryStore[productRecord](c)
	transactions, _, _ := mystore.NewInMemoryStore[transactionRecord](c)
	batches, _, _ := mystore.NewInMemoryStore[batchRecord](c)
	return &Backend{
		nower:        nower,
		uuider:       uuider,
		products:     products,
		transactions: transactions,
		batches:      batches,
	}
}

func (b *Backend) nextSeq() int {
	b.Lock()
	defer b.Unlock()
	b.seq++
	return b.seq
}

// AddProduct stores or replaces a product of a branch.
func (b *Backend) AddProduct(c context.Context, branchID string, p pos.Product) error {
	if p.ID == "" {
		p.ID = b.uuider.Create()
	}
	return b.products.Put(c, p.ID, productRecord{
		BranchID: branchID,
		Seq:      b.nextSeq(),
		Product:  p,
	})
}

// AddBatch stores a stock batch; its ExpiryDate must be formatted as 2006-01-02.
func (b *Backend) AddBatch(c context.Context, batch dashboard.Batch) error {
	_, err := time.Parse(expiryDateFmt, batch.ExpiryDate)
	if err != nil {
		return myerrors.NewInvalidInputErrorf("Tanggal kedaluwarsa %q tidak valid", batch.ExpiryDate)
	}
	if batch.ID == "" {
		batch.ID = b.uuider.Create()
	}
	return b.batches.Put(c, batch.ID, batchRecord{
		BranchID: batch.BranchID,
		Seq:      b.nextSeq(),
		Batch:    batch,
	})
}

func (b *Backend) FetchCatalog(c context.Context, branchID string, search string) ([]pos.Product, error) {
	records, err := b.products.Query(c, []mystore.Filter{{Field: "BranchID", Compare: "=", Value: branchID}}, "Seq")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	products := []pos.Product{}
	for _, r := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Product.Name), search) &&
			!strings.Contains(strings.ToLower(r.Product.Barcode), search) {
			continue
		}
		products = append(products, r.Product)
		if len(products) == catalogLimit {
			break
		}
	}
	return products, nil
}

func (b *Backend) SubmitCheckout(c context.Context, req pos.CheckoutRequest) (pos.Transaction, error) {
	if req.BranchID == "" || req.CashierID == "" {
		return pos.Transaction{}, myerrors.NewInvalidInputErrorf("branch_id dan cashier_id wajib diisi")
	}
	if len(req.Items) == 0 {
		return pos.Transaction{}, myerrors.NewInvalidInputErrorf("Keranjang kosong")
	}

	now := b.nower.Now()
	tx := pos.Transaction{
		ID:             b.uuider.Create(),
		BranchID:       req.BranchID,
		BranchName:     req.BranchName,
		CashierID:      req.CashierID,
		CashierName:    req.CashierName,
		Items:          []pos.TransactionItem{},
		Subtotal:       decimal.Zero,
		Discount:       req.Discount,
		TotalPaid:      decimal.Zero,
		PaymentDetails: []pos.PaymentDetail{},
		Notes:          req.Notes,
		CreatedAt:      now.Format(createdAtFmt),
	}
	for _, item := range req.Items {
		subtotal := item.SellPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		tx.Items = append(tx.Items, pos.TransactionItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			SellPrice:   item.SellPrice,
			Subtotal:    subtotal,
		})
		tx.Subtotal = tx.Subtotal.Add(subtotal)
	}
	for _, p := range req.PaymentDetails {
		tx.PaymentDetails = append(tx.PaymentDetails, p)
		tx.TotalPaid = tx.TotalPaid.Add(p.Amount)
	}
	tx.TotalAmount = decimal.Max(decimal.Zero, tx.Subtotal.Sub(tx.Discount))
	if tx.TotalPaid.LessThan(tx.TotalAmount) {
		return pos.Transaction{}, myerrors.NewInvalidInputErrorf("Pembayaran kurang")
	}
	tx.Change = tx.TotalPaid.Sub(tx.TotalAmount)

	err := b.products.RunInTransaction(c, func(c context.Context) error {
		updated := []productRecord{}
		for _, item := range req.Items {
			record, exists, err := b.products.Get(c, item.ProductID)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
			if !exists || record.BranchID != req.BranchID {
				return myerrors.NewNotFoundError(fmt.Errorf("Produk %s tidak ditemukan", item.ProductID))
			}
			if item.Quantity <= 0 || record.Product.CurrentStock < item.Quantity {
				return myerrors.NewInvalidInputErrorf("Stok %s tidak mencukupi", record.Product.Name)
			}
			record.Product.CurrentStock -= item.Quantity
			updated = append(updated, record)
		}

		for _, record := range updated {
			err := b.products.Put(c, record.Product.ID, record)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return pos.Transaction{}, err
	}

	seq := b.nextSeq()
	day := now.Format(numberDateFmt)
	tx.TransactionNumber = fmt.Sprintf("TRX-%s-%04d", day, seq)

	err = b.transactions.Put(c, tx.ID, transactionRecord{
		BranchID:    req.BranchID,
		Seq:         seq,
		Day:         day,
		Transaction: tx,
	})
	if err != nil {
		return pos.Transaction{}, myerrors.NewInternalError(err)
	}

	return tx, nil
}

// ListTransactions answers newest first.
func (b *Backend) ListTransactions(c context.Context, branchID string, page int, limit int) (history.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLen
	}

	records, err := b.transactions.Query(c, []mystore.Filter{{Field: "BranchID", Compare: "=", Value: branchID}}, "Seq")
	if err != nil {
		return history.TransactionPage{}, myerrors.NewInternalError(err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Seq > records[j].Seq
	})

	result := history.TransactionPage{
		Transactions: []pos.Transaction{},
		Total:        len(records),
		Page:         page,
	}
	for i := (page - 1) * limit; i < len(records) && i < page*limit; i++ {
		result.Transactions = append(result.Transactions, records[i].Transaction)
	}
	return result, nil
}

func (b *Backend) GetTransaction(c context.Context, transactionID string) (pos.Transaction, error) {
	record, exists, err := b.transactions.Get(c, transactionID)
	if err != nil {
		return pos.Transaction{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return pos.Transaction{}, myerrors.NewNotFoundError(fmt.Errorf("Transaksi tidak ditemukan"))
	}
	return record.Transaction, nil
}

func (b *Backend) FetchDashboard(c context.Context, branchID string) (dashboard.Figures, error) {
	byBranch := []mystore.Filter{{Field: "BranchID", Compare: "=", Value: branchID}}
	today := b.nower.Now().Format(numberDateFmt)

	txs, err := b.transactions.Query(c, append(byBranch, mystore.Filter{Field: "Day", Compare: "=", Value: today}), "")
	if err != nil {
		return dashboard.Figures{}, myerrors.NewInternalError(err)
	}
	products, err := b.products.Query(c, byBranch, "")
	if err != nil {
		return dashboard.Figures{}, myerrors.NewInternalError(err)
	}
	alerts, err := b.FetchAlerts(c, branchID)
	if err != nil {
		return dashboard.Figures{}, err
	}

	figures := dashboard.Figures{
		TodayRevenue:      decimal.Zero,
		TodayTransactions: len(txs),
		TotalProducts:     len(products),
		LowStockCount:     len(alerts.LowStockProducts),
		ExpiringCount:     len(alerts.ExpiringBatches),
	}
	for _, r := range txs {
		figures.TodayRevenue = figures.TodayRevenue.Add(r.Transaction.TotalAmount)
	}
	return figures, nil
}

func (b *Backend) FetchAlerts(c context.Context, branchID string) (dashboard.Alerts, error) {
	byBranch := []mystore.Filter{{Field: "BranchID", Compare: "=", Value: branchID}}
	alerts := dashboard.Alerts{
		ExpiredBatches:   []dashboard.Batch{},
		ExpiringBatches:  []dashboard.Batch{},
		LowStockProducts: []dashboard.LowStockProduct{},
	}

	now := b.nower.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.Add(expiryHorizon)

	batches, err := b.batches.Query(c, byBranch, "Seq")
	if err != nil {
		return dashboard.Alerts{}, myerrors.NewInternalError(err)
	}
	for _, r := range batches {
		batch := r.Batch
		expiry, err := time.Parse(expiryDateFmt, batch.ExpiryDate)
		if err != nil {
			continue
		}
		switch {
		case expiry.Before(today):
			batch.IsExpired = true
			alerts.ExpiredBatches = append(alerts.ExpiredBatches, batch)
		case !expiry.After(horizon):
			batch.IsExpiringSoon = true
			alerts.ExpiringBatches = append(alerts.ExpiringBatches, batch)
		}
	}

	products, err := b.products.Query(c, byBranch, "Seq")
	if err != nil {
		return dashboard.Alerts{}, myerrors.NewInternalError(err)
	}
	for _, r := range products {
		if r.Product.CurrentStock < r.Product.MinStock {
			alerts.LowStockProducts = append(alerts.LowStockProducts, dashboard.LowStockProduct{
				ID:           r.Product.ID,
				Name:         r.Product.Name,
				CurrentStock: r.Product.CurrentStock,
				MinStock:     r.Product.MinStock,
			})
		}
	}
	return alerts, nil
}
