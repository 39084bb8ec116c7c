package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `o.id, o.buyer_id, COALESCE(b.name, ''), o.seller_id, COALESCE(s.name, ''),
	o.status, o.total, o.created_at, o.updated_at`

const orderFrom = `orders o LEFT JOIN users b ON b.id = o.buyer_id LEFT JOIN users s ON s.id = o.seller_id`

var orderList = listSQL{
	columns: orderColumns,
	from:    orderFrom,
	alias:   "o",
	filters: map[string]string{
		"status":   "o.status",
		"buyer_id": "o.buyer_id::text",
	},
	search: []string{"o.id::text", "b.name"},
}

// OrderRepo pedidos, líneas e historial de estados.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.BuyerName, &o.SellerID, &o.SellerName,
		&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera y líneas. Debe correr dentro de una transacción si se quiere atomicidad.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, buyer_id, seller_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.BuyerID, order.SellerID, order.Status, order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert order", err)
	}
	for _, it := range order.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, order.ID, it.ProductID, it.Quantity, it.Price,
		)
		if err != nil {
			return storeErr("insert order item", err)
		}
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM `+orderFrom+` WHERE o.id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get order", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.price
		FROM order_items i LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id`, id)
	if err != nil {
		return nil, storeErr("get order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, storeErr("scan order item", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get order items", err)
	}
	return o, nil
}

// List no carga las líneas.
func (r *OrderRepo) List(ctx context.Context, q listing.Query) ([]*entity.Order, int, error) {
	rows, total, err := orderList.run(ctx, r.q, "list orders", q, nil)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Order, 0, q.Limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, storeErr("scan order", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error {
	return updateStatusIfUnchanged(ctx, r.q, "orders", "pedido", id, string(from), string(to))
}

func (r *OrderRepo) AddStatusChange(ctx context.Context, c *entity.OrderStatusChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6)`,
		c.ID, c.OrderID, c.From, c.To, c.ChangedBy, c.CreatedAt,
	)
	if err != nil {
		return storeErr("insert order status change", err)
	}
	return nil
}

func (r *OrderRepo) ListStatusChanges(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, from_status, to_status, COALESCE(changed_by::text, ''), created_at
		FROM order_status_history WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, storeErr("list order status changes", err)
	}
	defer rows.Close()
	var out []*entity.OrderStatusChange
	for rows.Next() {
		var c entity.OrderStatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.From, &c.To, &c.ChangedBy, &c.CreatedAt); err != nil {
			return nil, storeErr("scan order status change", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
