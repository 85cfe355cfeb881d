package dashboard

import (
	"github.com/shopspring/decimal"
)

// Figures are today's numbers of a branch as computed by the backend.
type Figures struct {
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	TodayTransactions int             `json:"todayTransactions"`
	TotalProducts     int             `json:"totalProducts"`
	LowStockCount     int             `json:"lowStockCount"`
	ExpiringCount     int             `json:"expiringCount"`
}

type Batch struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	BatchNumber       string          `json:"batchNumber"`
	ExpiryDate        string          `json:"expiryDate"`
	ExpiryDateDisplay string          `json:"expiryDateDisplay"`
	CurrentQty        int             `json:"currentQty"`
	InitialQty        int             `json:"initialQty"`
	BuyPrice          decimal.Decimal `json:"buyPrice"`
	BranchID          string          `json:"branchId"`
	IsExpired         bool            `json:"isExpired"`
	IsExpiringSoon    bool            `json:"isExpiringSoon"`
}

type LowStockProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

type Alerts struct {
	ExpiredBatches   []Batch           `json:"expiredBatches"`
	ExpiringBatches  []Batch           `json:"expiringBatches"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}

type Overview struct {
	BranchID       string  `json:"branchId"`
	Figures        Figures `json:"figures"`
	RevenueDisplay string  `json:"revenueDisplay"`
	Alerts         Alerts  `json:"alerts"`
}
