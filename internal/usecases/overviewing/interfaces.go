package overviewing

import "github.com/agentpay/agentpay-api/internal/domain"

// Overviewer produz as métricas agregadas da página inicial do dashboard.
type Overviewer interface {
	GetDashboardMetrics(sellerID string, period domain.Period, productSelection []string) (*domain.DashboardMetrics, error)
}
