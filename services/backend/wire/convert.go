package wire

import (
	"github.com/shopspring/decimal"

	"github.com/mediakasir/apotekpos/services/dashboard"
	"github.com/mediakasir/apotekpos/services/pos"
)

func (p Product) ToProduct() pos.Product {
	return pos.Product{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Category:     p.Category,
		Unit:         p.Unit,
		SellPrice:    decimal.NewFromFloat(p.SellPrice),
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
	}
}

func FromProduct(branchID string, p pos.Product) Product {
	return Product{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Category:     p.Category,
		Unit:         p.Unit,
		SellPrice:    p.SellPrice.InexactFloat64(),
		MinStock:     p.MinStock,
		BranchID:     branchID,
		CurrentStock: p.CurrentStock,
		IsActive:     true,
	}
}

func FromCheckoutRequest(req pos.CheckoutRequest) TransactionCreate {
	body := TransactionCreate{
		BranchID:       req.BranchID,
		BranchName:     req.BranchName,
		CashierID:      req.CashierID,
		CashierName:    req.CashierName,
		Items:          []TransactionItemInput{},
		Discount:       req.Discount.InexactFloat64(),
		PaymentDetails: []PaymentDetail{},
		Notes:          req.Notes,
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, TransactionItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Qty:         item.Quantity,
			Unit:        item.Unit,
			SellPrice:   item.SellPrice.InexactFloat64(),
		})
	}
	body.PaymentDetails = fromPaymentDetails(req.PaymentDetails)
	return body
}

func (tc TransactionCreate) ToCheckoutRequest() pos.CheckoutRequest {
	req := pos.CheckoutRequest{
		BranchID:       tc.BranchID,
		BranchName:     tc.BranchName,
		CashierID:      tc.CashierID,
		CashierName:    tc.CashierName,
		Items:          []pos.CheckoutItem{},
		Discount:       decimal.NewFromFloat(tc.Discount),
		PaymentDetails: toPaymentDetails(tc.PaymentDetails),
		Notes:          tc.Notes,
	}
	for _, item := range tc.Items {
		req.Items = append(req.Items, pos.CheckoutItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Qty,
			Unit:        item.Unit,
			SellPrice:   decimal.NewFromFloat(item.SellPrice),
		})
	}
	return req
}

func (tx Transaction) ToTransaction() pos.Transaction {
	result := pos.Transaction{
		ID:                tx.ID,
		TransactionNumber: tx.TransactionNumber,
		BranchID:          tx.BranchID,
		BranchName:        tx.BranchName,
		CashierID:         tx.CashierID,
		CashierName:       tx.CashierName,
		Items:             []pos.TransactionItem{},
		Subtotal:          decimal.NewFromFloat(tx.Subtotal),
		Discount:          decimal.NewFromFloat(tx.Discount),
		TotalAmount:       decimal.NewFromFloat(tx.TotalAmount),
		TotalPaid:         decimal.NewFromFloat(tx.TotalPaid),
		Change:            decimal.NewFromFloat(tx.Change),
		PaymentDetails:    toPaymentDetails(tx.PaymentDetails),
		Notes:             tx.Notes,
		CreatedAt:         tx.CreatedAt,
	}
	for _, item := range tx.Items {
		result.Items = append(result.Items, pos.TransactionItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Qty,
			Unit:        item.Unit,
			SellPrice:   decimal.NewFromFloat(item.SellPrice),
			Subtotal:    decimal.NewFromFloat(item.Subtotal),
		})
	}
	return result
}

func FromTransaction(tx pos.Transaction) Transaction {
	result := Transaction{
		ID:                tx.ID,
		TransactionNumber: tx.TransactionNumber,
		BranchID:          tx.BranchID,
		BranchName:        tx.BranchName,
		CashierID:         tx.CashierID,
		CashierName:       tx.CashierName,
		Items:             []TransactionItem{},
		Subtotal:          tx.Subtotal.InexactFloat64(),
		Discount:          tx.Discount.InexactFloat64(),
		TotalAmount:       tx.TotalAmount.InexactFloat64(),
		PaymentDetails:    fromPaymentDetails(tx.PaymentDetails),
		TotalPaid:         tx.TotalPaid.InexactFloat64(),
		Change:            tx.Change.InexactFloat64(),
		Notes:             tx.Notes,
		CreatedAt:         tx.CreatedAt,
	}
	for _, item := range tx.Items {
		result.Items = append(result.Items, TransactionItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Qty:         item.Quantity,
			Unit:        item.Unit,
			SellPrice:   item.SellPrice.InexactFloat64(),
			Subtotal:    item.Subtotal.InexactFloat64(),
		})
	}
	return result
}

func toPaymentDetails(details []PaymentDetail) []pos.PaymentDetail {
	result := []pos.PaymentDetail{}
	for _, p := range details {
		result = append(result, pos.PaymentDetail{
			Method:    p.Method,
			Amount:    decimal.NewFromFloat(p.Amount),
			Reference: p.Reference,
		})
	}
	return result
}

func fromPaymentDetails(details []pos.PaymentDetail) []PaymentDetail {
	result := []PaymentDetail{}
	for _, p := range details {
		result = append(result, PaymentDetail{
			Method:    p.Method,
			Amount:    p.Amount.InexactFloat64(),
			Reference: p.Reference,
		})
	}
	return result
}

func (d Dashboard) ToFigures() dashboard.Figures {
	return dashboard.Figures{
		TodayRevenue:      decimal.NewFromFloat(d.TodayRevenue),
		TodayTransactions: d.TodayTransactions,
		TotalProducts:     d.TotalProducts,
		LowStockCount:     d.LowStockCount,
		ExpiringCount:     d.ExpiringCount,
	}
}

func FromFigures(f dashboard.Figures) Dashboard {
	return Dashboard{
		TodayRevenue:      f.TodayRevenue.InexactFloat64(),
		TodayTransactions: f.TodayTransactions,
		TotalProducts:     f.TotalProducts,
		LowStockCount:     f.LowStockCount,
		ExpiringCount:     f.ExpiringCount,
	}
}

func (a Alerts) ToAlerts() dashboard.Alerts {
	alerts := dashboard.Alerts{
		ExpiredBatches:   toBatches(a.ExpiredBatches),
		ExpiringBatches:  toBatches(a.ExpiringBatches),
		LowStockProducts: []dashboard.LowStockProduct{},
	}
	for _, p := range a.LowStockProducts {
		alerts.LowStockProducts = append(alerts.LowStockProducts, dashboard.LowStockProduct{
			ID:           p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
		})
	}
	return alerts
}

func FromAlerts(a dashboard.Alerts) Alerts {
	alerts := Alerts{
		ExpiredBatches:   fromBatches(a.ExpiredBatches),
		ExpiringBatches:  fromBatches(a.ExpiringBatches),
		LowStockProducts: []LowStockProduct{},
	}
	for _, p := range a.LowStockProducts {
		alerts.LowStockProducts = append(alerts.LowStockProducts, LowStockProduct{
			ID:           p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
		})
	}
	return alerts
}

func toBatches(dtos []Batch) []dashboard.Batch {
	batches := make([]dashboard.Batch, 0, len(dtos))
	for _, b := range dtos {
		batches = append(batches, dashboard.Batch{
			ID:             b.ID,
			ProductID:      b.ProductID,
			ProductName:    b.ProductName,
			BatchNumber:    b.BatchNumber,
			ExpiryDate:     b.ExpiryDate,
			CurrentQty:     b.CurrentQty,
			InitialQty:     b.InitialQty,
			BuyPrice:       decimal.NewFromFloat(b.BuyPrice),
			BranchID:       b.BranchID,
			IsExpired:      b.IsExpired,
			IsExpiringSoon: b.IsExpiringSoon,
		})
	}
	return batches
}

func fromBatches(batches []dashboard.Batch) []Batch {
	dtos := make([]Batch, 0, len(batches))
	for _, b := range batches {
		dtos = append(dtos, Batch{
			ID:             b.ID,
			ProductID:      b.ProductID,
			ProductName:    b.ProductName,
			BatchNumber:    b.BatchNumber,
			ExpiryDate:     b.ExpiryDate,
			CurrentQty:     b.CurrentQty,
			InitialQty:     b.InitialQty,
			BuyPrice:       b.BuyPrice.InexactFloat64(),
			BranchID:       b.BranchID,
			IsExpired:      b.IsExpired,
			IsExpiringSoon: b.IsExpiringSoon,
		})
	}
	return dtos
}
