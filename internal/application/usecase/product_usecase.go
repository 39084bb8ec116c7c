package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// ProductAdmin moderación de productos.
type ProductAdmin = admin.Resource[entity.Product, dto.ProductResponse]

// NewProductAdmin construye el recurso products. Cada moderación publica product.moderated.
func NewProductAdmin(repo repository.ProductRepository, events ports.EventPublisher, maxLimit int) *ProductAdmin {
	return admin.New(admin.Config[entity.Product, dto.ProductResponse]{
		Schema:     resource.Products,
		Store:      repo,
		ToResponse: toProductResponse,
		StatusOf:   func(p *entity.Product) string { return string(p.Status) },
		UpdateStatus: func(ctx context.Context, p *entity.Product, to, _ string) error {
			return repo.UpdateStatus(ctx, p.ID, p.Status, entity.ProductStatus(to))
		},
		Delete:      repo.Delete,
		StatusTopic: ports.TopicProductModerated,
		Events:      events,
		MaxLimit:    maxLimit,
	})
}

// CatalogUseCase catálogo público: solo productos aprobados.
type CatalogUseCase struct {
	repo     repository.ProductRepository
	maxLimit int
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ProductRepository, maxLimit int) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, maxLimit: maxLimit}
}

// List devuelve productos aprobados con búsqueda y filtro de categoría.
func (uc *CatalogUseCase) List(ctx context.Context, q listing.Query) (*dto.PageResponse[dto.ProductResponse], error) {
	q = q.Normalize()
	if err := q.Validate(uc.maxLimit); err != nil {
		return nil, err
	}
	q = q.With("status", string(entity.ProductApproved))
	items, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(p))
	}
	return dto.NewPage(out, q, total), nil
}

// Get devuelve un producto aprobado; los pendientes o rechazados son ErrNotFound.
func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.approved(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// All recorre el catálogo aprobado completo en páginas de maxLimit (feed RSS).
func (uc *CatalogUseCase) All(ctx context.Context) ([]*entity.Product, error) {
	var all []*entity.Product
	q := listing.Query{Page: 1, Limit: uc.maxLimit}.With("status", string(entity.ProductApproved))
	for {
		items, total, err := uc.repo.List(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("catálogo completo: %w", err)
		}
		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			return all, nil
		}
		q.Page++
	}
}

func (uc *CatalogUseCase) approved(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil || p.Status != entity.ProductApproved {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}
