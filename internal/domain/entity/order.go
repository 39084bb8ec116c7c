package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// OrderStatus estado logístico de un pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// delivered y cancelled son terminales.
var orderTransitions = TransitionTable[OrderStatus]{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  nil,
	OrderCancelled:  nil,
}

// OrderStatuses valores admitidos de OrderStatus.
var OrderStatuses = orderTransitions.States()

// CanTransitionTo indica si el pedido puede pasar de s a next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions.Allows(s, next)
}

// Order agrupa las líneas de un pedido entre un comprador y un vendedor.
type Order struct {
	ID         string
	BuyerID    string
	BuyerName  string // solo lectura
	SellerID   string
	SellerName string // solo lectura
	Status     OrderStatus
	Total      decimal.Decimal
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem línea de pedido con el precio congelado al momento de la compra.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string // solo lectura
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal cantidad × precio.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal suma de subtotales de las líneas.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalConsistent indica si Total coincide con la suma de las líneas.
func (o *Order) TotalConsistent() bool {
	return o.Total.Equal(o.ItemsTotal())
}

// Validate verifica líneas y total antes de persistir un pedido.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 || it.Price.IsNegative() {
			return fmt.Errorf("%w: línea %s con cantidad o precio inválido", domain.ErrInvalidInput, it.ProductID)
		}
	}
	if !orderTransitions.Valid(o.Status) {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, o.Status)
	}
	if !o.TotalConsistent() {
		return fmt.Errorf("%w: total %s distinto a la suma de líneas %s",
			domain.ErrInvalidInput, o.Total.StringFixed(2), o.ItemsTotal().StringFixed(2))
	}
	return nil
}

// OrderStatusChange registro de auditoría de un cambio de estado.
type OrderStatusChange struct {
	ID        string
	OrderID   string
	From      OrderStatus
	To        OrderStatus
	ChangedBy string
	CreatedAt time.Time
}
