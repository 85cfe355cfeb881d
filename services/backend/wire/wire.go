// Package wire holds the json formats of the pharmacy REST API.
package wire

type Product struct {
	ID           string  `json:"id"`
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	SellPrice    float64 `json:"sell_price"`
	BuyPrice     float64 `json:"buy_price"`
	MinStock     int     `json:"min_stock"`
	BranchID     string  `json:"branch_id"`
	CurrentStock int     `json:"current_stock"`
	IsActive     bool    `json:"is_active"`
}

type ProductsResponse struct {
	Data  []Product `json:"data"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type TransactionItemInput struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	Unit        string  `json:"unit"`
	SellPrice   float64 `json:"sell_price"`
}

type PaymentDetail struct {
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

type TransactionCreate struct {
	BranchID       string                 `json:"branch_id"`
	BranchName     string                 `json:"branch_name"`
	CashierID      string                 `json:"cashier_id"`
	CashierName    string                 `json:"cashier_name"`
	Items          []TransactionItemInput `json:"items"`
	Discount       float64                `json:"discount"`
	PaymentDetails []PaymentDetail        `json:"payment_details"`
	Notes          string                 `json:"notes"`
}

type TransactionItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	Unit        string  `json:"unit"`
	SellPrice   float64 `json:"sell_price"`
	Subtotal    float64 `json:"subtotal"`
}

type Transaction struct {
	ID                string            `json:"id"`
	TransactionNumber string            `json:"transaction_number"`
	BranchID          string            `json:"branch_id"`
	BranchName        string            `json:"branch_name"`
	CashierID         string            `json:"cashier_id"`
	CashierName       string            `json:"cashier_name"`
	Items             []TransactionItem `json:"items"`
	Subtotal          float64           `json:"subtotal"`
	Discount          float64           `json:"discount"`
	TotalAmount       float64           `json:"total_amount"`
	PaymentDetails    []PaymentDetail   `json:"payment_details"`
	TotalPaid         float64           `json:"total_paid"`
	Change            float64           `json:"change"`
	Notes             string            `json:"notes"`
	CreatedAt         string            `json:"created_at"`
}

type TransactionsResponse struct {
	Data  []Transaction `json:"data"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type Dashboard struct {
	TodayRevenue      float64 `json:"today_revenue"`
	TodayTransactions int     `json:"today_transactions"`
	TotalProducts     int     `json:"total_products"`
	LowStockCount     int     `json:"low_stock_count"`
	ExpiringCount     int     `json:"expiring_count"`
}

type Batch struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	BatchNumber    string  `json:"batch_number"`
	ExpiryDate     string  `json:"expiry_date"`
	CurrentQty     int     `json:"current_qty"`
	InitialQty     int     `json:"initial_qty"`
	BuyPrice       float64 `json:"buy_price"`
	BranchID       string  `json:"branch_id"`
	IsExpired      bool    `json:"is_expired"`
	IsExpiringSoon bool    `json:"is_expiring_soon"`
}

type LowStockProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

type Alerts struct {
	ExpiredBatches   []Batch           `json:"expired_batches"`
	ExpiringBatches  []Batch           `json:"expiring_batches"`
	LowStockProducts []LowStockProduct `json:"low_stock_products"`
}

// ErrorResponse covers both error shapes the backend uses.
type ErrorResponse struct {
	Detail  any    `json:"detail"`
	Message string `json:"message"`
}
