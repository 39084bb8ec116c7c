package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
	"github.com/jhoicas/Marketplace-api/pkg/sanitize"
)

// ReviewAdmin moderación de reseñas (solo listar, ver y eliminar).
type ReviewAdmin = admin.Resource[entity.Review, dto.ReviewResponse]

// NewReviewAdmin construye el recurso reviews.
func NewReviewAdmin(repo repository.ReviewRepository, maxLimit int) *ReviewAdmin {
	return admin.New(admin.Config[entity.Review, dto.ReviewResponse]{
		Schema:     resource.Reviews,
		Store:      repo,
		ToResponse: toReviewResponse,
		Delete:     repo.Delete,
		MaxLimit:   maxLimit,
	})
}

// ReviewUseCase reseñas del catálogo público.
type ReviewUseCase struct {
	reviews  repository.ReviewRepository
	catalog  *CatalogUseCase
	maxLimit int
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(reviews repository.ReviewRepository, catalog *CatalogUseCase, maxLimit int) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, catalog: catalog, maxLimit: maxLimit}
}

// ListForProduct reseñas de un producto aprobado.
func (uc *ReviewUseCase) ListForProduct(ctx context.Context, productID string, q listing.Query) (*dto.PageResponse[dto.ReviewResponse], error) {
	if _, err := uc.catalog.approved(ctx, productID); err != nil {
		return nil, err
	}
	q = q.Normalize()
	if err := q.Validate(uc.maxLimit); err != nil {
		return nil, err
	}
	items, total, err := uc.reviews.List(ctx, q.With("product_id", productID))
	if err != nil {
		return nil, fmt.Errorf("listar reseñas: %w", err)
	}
	out := make([]dto.ReviewResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReviewResponse(r))
	}
	return dto.NewPage(out, q, total), nil
}

// Create registra la reseña de userID. Una reseña por usuario y producto (ErrDuplicate).
func (uc *ReviewUseCase) Create(ctx context.Context, productID, userID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !entity.ValidRating(in.Rating) {
		return nil, fmt.Errorf("%w: rating debe estar entre %d y %d", domain.ErrInvalidInput, entity.MinRating, entity.MaxRating)
	}
	p, err := uc.catalog.approved(ctx, productID)
	if err != nil {
		return nil, err
	}
	r := &entity.Review{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		UserID:      userID,
		Rating:      in.Rating,
		Comment:     sanitize.PlainText(in.Comment),
		CreatedAt:   time.Now(),
	}
	if err := uc.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toReviewResponse(r)
	return &out, nil
}
