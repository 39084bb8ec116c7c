package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// OrderRepository persistencia de pedidos, sus líneas y el historial de estados.
// GetByID carga las líneas; List no.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, q listing.Query) ([]*entity.Order, int, error)
	// UpdateStatus escribe to solo si el estado sigue siendo from; si cambió devuelve domain.ErrStaleStatus.
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error
	AddStatusChange(ctx context.Context, change *entity.OrderStatusChange) error
	ListStatusChanges(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error)
}
