package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/myhttpclient"
	"github.com/mediakasir/apotekpos/services/pos"
)

func TestCatalog(t *testing.T) {
	// setup
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":"prd-1","barcode":"899100","name":"Paracetamol 500mg","category":"Analgesik",
			"unit":"strip","sell_price":10000,"buy_price":7000,"min_stock":10,"branch_id":"branch-1","current_stock":42,"is_active":true}],
			"total":1,"page":1,"limit":50}`)
	}))
	defer server.Close()
	sut := NewClient(server.URL+"/api/", myhttpclient.New(myhttpclient.Credentials{Token: "tok-123", DeviceID: "dev-9"}, time.Second))

	// when
	products, err := sut.FetchCatalog(context.TODO(), "branch-1", "para")

	// then
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prd-1", products[0].ID)
	assert.Equal(t, "Paracetamol 500mg", products[0].Name)
	assert.Equal(t, "strip", products[0].Unit)
	assert.Equal(t, "10000", products[0].SellPrice.String())
	assert.Equal(t, 42, products[0].CurrentStock)

	assert.Equal(t, http.MethodGet, received.Method)
	assert.Equal(t, "/api/products", received.URL.Path)
	assert.Equal(t, "branch-1", received.URL.Query().Get("branch_id"))
	assert.Equal(t, "para", received.URL.Query().Get("search"))
	assert.Equal(t, "1", received.URL.Query().Get("page"))
	assert.Equal(t, "50", received.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer tok-123", received.Header.Get("Authorization"))
	assert.Equal(t, "dev-9", received.Header.Get("X-Device-ID"))
}

func TestSubmitCheckout(t *testing.T) {
	t.Run("Recorded", func(t *testing.T) {
		// setup
		var body map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/transactions", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"tx-1","transaction_number":"TRX-20240314-0001","branch_id":"branch-1","branch_name":"Apotek Sehat Pusat",
				"cashier_name":"Sari","items":[{"product_id":"prd-1","product_name":"Paracetamol 500mg","qty":2,"unit":"strip","sell_price":10000,"subtotal":20000}],
				"subtotal":20000,"discount":0,"total_amount":20000,"payment_details":[{"method":"cash","amount":20000,"reference":""}],
				"total_paid":20000,"change":0,"notes":"","created_at":"2024-03-14T09:30:00.000000"}`)
		}))
		defer server.Close()
		sut := NewClient(server.URL+"/api", myhttpclient.New(myhttpclient.Credentials{}, time.Second))

		// when
		tx, err := sut.SubmitCheckout(context.TODO(), pos.CheckoutRequest{
			BranchID:    "branch-1",
			BranchName:  "Apotek Sehat Pusat",
			CashierID:   "user-7",
			CashierName: "Sari",
			Items: []pos.CheckoutItem{
				{ProductID: "prd-1", ProductName: "Paracetamol 500mg", Quantity: 2, Unit: "strip", SellPrice: decimal.NewFromInt(10000)},
			},
			Discount: decimal.Zero,
			PaymentDetails: []pos.PaymentDetail{
				{Method: "cash", Amount: decimal.NewFromInt(5000)},
				{Method: "qris", Amount: decimal.NewFromInt(15000), Reference: "QR-1"},
			},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
		assert.Equal(t, "TRX-20240314-0001", tx.TransactionNumber)
		assert.Equal(t, "20000", tx.TotalAmount.String())
		require.Len(t, tx.Items, 1)
		assert.Equal(t, 2, tx.Items[0].Quantity)
		assert.Equal(t, "20000", tx.Items[0].Subtotal.String())

		assert.Equal(t, "branch-1", body["branch_id"])
		assert.Equal(t, "user-7", body["cashier_id"])
		assert.Equal(t, "Sari", body["cashier_name"])
		assert.Equal(t, float64(0), body["discount"])
		items := body["items"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "prd-1", item["product_id"])
		assert.Equal(t, float64(2), item["qty"])
		assert.Equal(t, float64(10000), item["sell_price"])
		payments := body["payment_details"].([]any)
		require.Len(t, payments, 2)
		assert.Equal(t, "qris", payments[1].(map[string]any)["method"])
		assert.Equal(t, float64(15000), payments[1].(map[string]any)["amount"])
		assert.Equal(t, "QR-1", payments[1].(map[string]any)["reference"])
	})

	t.Run("Rejected with detail", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail":"Stok Paracetamol 500mg tidak mencukupi"}`)
		}))
		defer server.Close()
		sut := NewClient(server.URL, myhttpclient.New(myhttpclient.Credentials{}, time.Second))

		// when
		_, err := sut.SubmitCheckout(context.TODO(), pos.CheckoutRequest{})

		// then
		apiErr := &APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Stok Paracetamol 500mg tidak mencukupi", err.Error())
		assert.Equal(t, http.StatusBadGateway, myerrors.GetHTTPStatus(err))
	})
}

func TestAPIError(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		body       string
		expectMsg  string
		expectHTTP int
	}{
		{name: "detail", status: 400, body: `{"detail":"Lisensi tidak valid"}`, expectMsg: "Lisensi tidak valid", expectHTTP: 502},
		{name: "message", status: 500, body: `{"message":"internal"}`, expectMsg: "internal", expectHTTP: 502},
		{name: "validation list", status: 422, body: `{"detail":[{"loc":["body","items"],"msg":"field required"}]}`, expectMsg: `[{"loc":["body","items"],"msg":"field required"}]`, expectHTTP: 502},
		{name: "no body", status: 404, body: ``, expectMsg: "backend answered with status 404", expectHTTP: 404},
		{name: "unauthorized", status: 401, body: `not json`, expectMsg: "backend answered with status 401", expectHTTP: 403},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := newAPIError(tc.status, []byte(tc.body))
			assert.Equal(t, tc.expectMsg, err.Error())
			assert.Equal(t, tc.expectHTTP, myerrors.GetHTTPStatus(err))
		})
	}
}

func TestTransactions(t *testing.T) {
	t.Run("List page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sut := NewClient("http://localhost:8001/api", sender)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://localhost:8001/api/transactions?branch_id=branch-1&limit=20&page=2", nil).
			Return(200, []byte(`{"data":[{"id":"tx-21","total_amount":15000.5,"created_at":"2024-03-14T09:30:00.000000"}],"total":21,"page":2,"limit":20}`), nil)

		// when
		page, err := sut.ListTransactions(context.TODO(), "branch-1", 2, 20)

		// then
		require.NoError(t, err)
		assert.Equal(t, 21, page.Total)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Transactions, 1)
		assert.Equal(t, "tx-21", page.Transactions[0].ID)
		assert.Equal(t, "15000.5", page.Transactions[0].TotalAmount.String())
	})

	t.Run("Get single", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sut := NewClient("http://localhost:8001/api", sender)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://localhost:8001/api/transactions/tx-404", nil).
			Return(404, []byte(`{"detail":"Transaksi tidak ditemukan"}`), nil)

		// when
		_, err := sut.GetTransaction(context.TODO(), "tx-404")

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})

	t.Run("Transport failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sut := NewClient("http://localhost:8001/api", sender)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, gomock.Any(), nil).Return(0, nil, errors.New("connection refused"))

		// when
		_, err := sut.ListTransactions(context.TODO(), "branch-1", 1, 20)

		// then
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("Garbage answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sut := NewClient("http://localhost:8001/api", sender)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, gomock.Any(), nil).Return(200, []byte(`<html>`), nil)

		// when
		_, err := sut.GetTransaction(context.TODO(), "tx-1")

		// then
		assert.ErrorContains(t, err, "error parsing response of GET transactions/tx-1")
	})
}

func TestDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	sut := NewClient("http://localhost:8001/api", sender)

	// given
	sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://localhost:8001/api/dashboard?branch_id=branch-1", nil).
		Return(200, []byte(`{"today_revenue":1250000,"today_transactions":42,"total_products":310,"low_stock_count":1,"expiring_count":2}`), nil)
	sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://localhost:8001/api/alerts?branch_id=branch-1", nil).
		Return(200, []byte(`{"expired_batches":[{"id":"b-0","product_id":"prd-9","product_name":"Sirup OBH","batch_number":"OBH2301",
			"expiry_date":"2024-02-29","current_qty":4,"initial_qty":24,"buy_price":12000,"branch_id":"branch-1","is_expired":true,"is_expiring_soon":false}],
			"expiring_batches":[],"low_stock_products":[{"id":"prd-2","name":"Amoxicillin 500mg","current_stock":3,"min_stock":10}]}`), nil)

	// when
	figures, err1 := sut.FetchDashboard(context.TODO(), "branch-1")
	alerts, err2 := sut.FetchAlerts(context.TODO(), "branch-1")

	// then
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, "1250000", figures.TodayRevenue.String())
	assert.Equal(t, 42, figures.TodayTransactions)
	assert.Equal(t, 2, figures.ExpiringCount)
	require.Len(t, alerts.ExpiredBatches, 1)
	assert.Equal(t, "OBH2301", alerts.ExpiredBatches[0].BatchNumber)
	assert.True(t, alerts.ExpiredBatches[0].IsExpired)
	assert.Equal(t, "12000", alerts.ExpiredBatches[0].BuyPrice.String())
	assert.Empty(t, alerts.ExpiringBatches)
	require.Len(t, alerts.LowStockProducts, 1)
	assert.Equal(t, 10, alerts.LowStockProducts[0].MinStock)
}
