package dashboard

import (
	"context"
	"fmt"

	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/myformat"
	"github.com/mediakasir/apotekpos/lib/mylog"
)

type service struct {
	source Source
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(source Source, logger mylog.Logger) *service {
	return &service{
		source: source,
		logger: logger,
	}
}

// load needs both the figures and the alerts; one without the other is an error.
func (s *service) load(c context.Context, branchID string) (Overview, error) {
	figures, err := s.source.FetchDashboard(c, branchID)
	if err != nil {
		return Overview{}, myerrors.NewBadGatewayError(fmt.Errorf("error fetching dashboard: %w", err))
	}

	alerts, err := s.source.FetchAlerts(c, branchID)
	if err != nil {
		return Overview{}, myerrors.NewBadGatewayError(fmt.Errorf("error fetching alerts: %w", err))
	}

	s.logger.Log(c, branchID, mylog.SeverityInfo, "Dashboard: %d transactions today, %d expired batches, %d low on stock",
		figures.TodayTransactions, len(alerts.ExpiredBatches), len(alerts.LowStockProducts))

	return Overview{
		BranchID:       branchID,
		Figures:        figures,
		RevenueDisplay: myformat.FormatIDR(figures.TodayRevenue),
		Alerts: Alerts{
			ExpiredBatches:   withDisplayDates(alerts.ExpiredBatches),
			ExpiringBatches:  withDisplayDates(alerts.ExpiringBatches),
			LowStockProducts: nonNil(alerts.LowStockProducts),
		},
	}, nil
}

func withDisplayDates(batches []Batch) []Batch {
	result := make([]Batch, 0, len(batches))
	for _, b := range batches {
		b.ExpiryDateDisplay = myformat.FormatDate(b.ExpiryDate)
		result = append(result, b)
	}
	return result
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
