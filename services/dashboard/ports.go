package dashboard

import "context"

//go:generate mockgen -source=ports.go -package dashboard -destination ports_mock.go Source
type Source interface {
	FetchDashboard(c context.Context, branchID string) (Figures, error)
	FetchAlerts(c context.Context, branchID string) (Alerts, error)
}
