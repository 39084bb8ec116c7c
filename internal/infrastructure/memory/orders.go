package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. Las líneas viven dentro de la fila del pedido.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) spec() listSpec[entity.Order] {
	return listSpec[entity.Order]{
		filters: map[string]field[entity.Order]{
			"status":   func(o *entity.Order) string { return string(o.Status) },
			"buyer_id": func(o *entity.Order) string { return o.BuyerID },
		},
		search: []field[entity.Order]{
			func(o *entity.Order) string { return o.ID },
			func(o *entity.Order) string { return r.s.userName(o.BuyerID) },
		},
	}
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.Items = slices.Clone(o.Items)
	return r.s.orders.insert(&cp)
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o := r.s.orders.get(id)
	if o == nil {
		return nil, nil
	}
	r.s.fillOrder(o)
	o.Items = slices.Clone(o.Items)
	for i := range o.Items {
		if p, ok := r.s.products.rows[o.Items[i].ProductID]; ok {
			o.Items[i].ProductName = p.Name
		}
	}
	return o, nil
}

func (r *OrderRepo) List(_ context.Context, q listing.Query) ([]*entity.Order, int, error) {
	match, err := r.spec().matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.orders.page(q, match)
	for _, o := range items {
		r.s.fillOrder(o)
		o.Items = nil
	}
	return items, total, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.orders.get(id)
	if cur == nil {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	if cur.Status != from {
		return fmt.Errorf("%w: pedido %s ya no está en %s", domain.ErrStaleStatus, id, from)
	}
	r.s.orders.update(id, func(o *entity.Order) { o.Status = to; o.UpdatedAt = now() })
	return nil
}

func (r *OrderRepo) AddStatusChange(_ context.Context, c *entity.OrderStatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.orderHistory.insert(c)
}

func (r *OrderRepo) ListStatusChanges(_ context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.orderHistory.all(func(c *entity.OrderStatusChange) bool { return c.OrderID == orderID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) fillOrder(o *entity.Order) {
	o.BuyerName = s.userName(o.BuyerID)
	o.SellerName = s.userName(o.SellerID)
}
