package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// ReviewRepository persistencia de reseñas. Filtros: rating, product_id.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context, q listing.Query) ([]*entity.Review, int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
