package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// NotificationRepository persistencia de notificaciones. Filtros: is_read, is_important.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	List(ctx context.Context, q listing.Query) ([]*entity.Notification, int, error)
	// ListForUser devuelve las dirigidas a todos o que incluyen userID.
	ListForUser(ctx context.Context, userID string, q listing.Query) ([]*entity.Notification, int, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) (bool, error)
}
