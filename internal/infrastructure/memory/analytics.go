package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo conteos para el dashboard sobre las tablas en memoria.
type AnalyticsRepo struct{ s *Store }

func countBy[T any](t *table[T], key func(*T) string) map[string]int {
	out := make(map[string]int)
	for _, v := range t.rows {
		out[key(v)]++
	}
	return out
}

func (r *AnalyticsRepo) CountUsersByRole(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return countBy(r.s.users, func(u *entity.User) string { return u.Role }), nil
}

func (r *AnalyticsRepo) CountProductsByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return countBy(r.s.products, func(p *entity.Product) string { return string(p.Status) }), nil
}

func (r *AnalyticsRepo) CountOrdersByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return countBy(r.s.orders, func(o *entity.Order) string { return string(o.Status) }), nil
}

func (r *AnalyticsRepo) CountTicketsByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return countBy(r.s.tickets, func(t *entity.Ticket) string { return string(t.Status) }), nil
}

func (r *AnalyticsRepo) CountUnreadNotifications(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.notifications.all(func(n *entity.Notification) bool { return !n.IsRead })), nil
}

func (r *AnalyticsRepo) DeliveredRevenue(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, o := range r.s.orders.rows {
		if o.Status == entity.OrderDelivered && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}
