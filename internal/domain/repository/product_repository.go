package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Filtros admitidos por List: status, category, seller_id.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, q listing.Query) ([]*entity.Product, int, error)
	// UpdateStatus escribe to solo si el estado sigue siendo from; si cambió devuelve domain.ErrStaleStatus.
	UpdateStatus(ctx context.Context, id string, from, to entity.ProductStatus) error
	Delete(ctx context.Context, id string) (bool, error)
}
