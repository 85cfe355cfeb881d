package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDashboardService(t *testing.T) {
	t.Run("Overview", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, source := setup(t, ctrl)

		// given
		source.EXPECT().FetchDashboard(gomock.Any(), "branch-1").Return(Figures{
			TodayRevenue:      decimal.NewFromInt(1250000),
			TodayTransactions: 42,
			TotalProducts:     310,
			LowStockCount:     1,
			ExpiringCount:     1,
		}, nil)
		source.EXPECT().FetchAlerts(gomock.Any(), "branch-1").Return(Alerts{
			ExpiringBatches:  []Batch{{ID: "b-1", ProductName: "Amoxicillin 500mg", BatchNumber: "AMX2402", ExpiryDate: "2024-04-30", CurrentQty: 12, IsExpiringSoon: true}},
			LowStockProducts: []LowStockProduct{{ID: "prd-2", Name: "Amoxicillin 500mg", CurrentStock: 3, MinStock: 10}},
		}, nil)

		// when
		response := doGet(router, "/api/dashboard/branch-1")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		overview := Overview{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &overview))
		assert.Equal(t, "branch-1", overview.BranchID)
		assert.Equal(t, 42, overview.Figures.TodayTransactions)
		assert.Equal(t, "Rp 1.250.000,00", overview.RevenueDisplay)
		assert.Empty(t, overview.Alerts.ExpiredBatches)
		require.Len(t, overview.Alerts.ExpiringBatches, 1)
		assert.Equal(t, "30/04/2024", overview.Alerts.ExpiringBatches[0].ExpiryDateDisplay)
		require.Len(t, overview.Alerts.LowStockProducts, 1)
		assert.Equal(t, 3, overview.Alerts.LowStockProducts[0].CurrentStock)
		assert.Contains(t, response.Body.String(), `"expiredBatches": []`)
	})

	t.Run("Alerts unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, source := setup(t, ctrl)

		// given
		source.EXPECT().FetchDashboard(gomock.Any(), "branch-1").Return(Figures{}, nil)
		source.EXPECT().FetchAlerts(gomock.Any(), "branch-1").Return(Alerts{}, errors.New("connection refused"))

		// when
		response := doGet(router, "/api/dashboard/branch-1")

		// then
		assert.Equal(t, http.StatusBadGateway, response.Code)
		assert.Contains(t, response.Body.String(), "connection refused")
	})
}

func doGet(router *mux.Router, target string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodGet, target, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *MockSource) {
	c := context.TODO()
	source := NewMockSource(ctrl)

	sut := NewWebService(source)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return router, source
}
