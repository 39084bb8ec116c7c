package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository consultas de solo lectura para el dashboard de administración.
// Los conteos agrupados devuelven un mapa valor -> cantidad; los grupos vacíos no aparecen.
type AnalyticsRepository interface {
	CountUsersByRole(ctx context.Context) (map[string]int, error)
	CountProductsByStatus(ctx context.Context) (map[string]int, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
	CountTicketsByStatus(ctx context.Context) (map[string]int, error)
	CountUnreadNotifications(ctx context.Context) (int, error)

	// DeliveredRevenue suma los totales de pedidos entregados con created_at en [from, to).
	// Usa COALESCE para devolver cero si no hay pedidos en el período.
	DeliveredRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
