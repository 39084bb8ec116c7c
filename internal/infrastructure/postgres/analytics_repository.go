package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// countGrouped ejecuta un SELECT grupo, COUNT(*) y lo vuelca en un mapa.
func (r *AnalyticsRepo) countGrouped(ctx context.Context, op, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("analytics."+op, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, storeErr("analytics."+op+" scan", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, "CountUsersByRole", `SELECT role, COUNT(*) FROM users GROUP BY role`)
}

func (r *AnalyticsRepo) CountProductsByStatus(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, "CountProductsByStatus", `SELECT status, COUNT(*) FROM products GROUP BY status`)
}

func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, "CountOrdersByStatus", `SELECT status, COUNT(*) FROM orders GROUP BY status`)
}

func (r *AnalyticsRepo) CountTicketsByStatus(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, "CountTicketsByStatus", `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
}

func (r *AnalyticsRepo) CountUnreadNotifications(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, storeErr("analytics.CountUnreadNotifications", err)
	}
	return n, nil
}

// DeliveredRevenue suma los pedidos entregados creados en [from, to).
func (r *AnalyticsRepo) DeliveredRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)
	FROM orders
	WHERE status = 'delivered'
	  AND created_at >= $1
	  AND created_at <  $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, storeErr("analytics.DeliveredRevenue", err)
	}
	return total, nil
}
