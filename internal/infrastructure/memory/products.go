package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productSpec = listSpec[entity.Product]{
	filters: map[string]field[entity.Product]{
		"status":    func(p *entity.Product) string { return string(p.Status) },
		"category":  func(p *entity.Product) string { return p.Category },
		"seller_id": func(p *entity.Product) string { return p.SellerID },
	},
	search: []field[entity.Product]{
		func(p *entity.Product) string { return p.Name },
		func(p *entity.Product) string { return p.Category },
	},
}

// now reloj del paquete; los tests pueden reemplazarlo.
var now = time.Now

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users.rows[p.SellerID]; !ok {
		return fmt.Errorf("%w: vendedor %s no existe", domain.ErrInvalidInput, p.SellerID)
	}
	return r.s.products.insert(p)
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p := r.s.products.get(id)
	if p != nil {
		p.SellerName = r.s.userName(p.SellerID)
	}
	return p, nil
}

func (r *ProductRepo) List(_ context.Context, q listing.Query) ([]*entity.Product, int, error) {
	match, err := productSpec.matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.products.page(q, match)
	for _, p := range items {
		p.SellerName = r.s.userName(p.SellerID)
	}
	return items, total, nil
}

func (r *ProductRepo) UpdateStatus(_ context.Context, id string, from, to entity.ProductStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.products.get(id)
	if cur == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if cur.Status != from {
		return fmt.Errorf("%w: producto %s ya no está en %s", domain.ErrStaleStatus, id, from)
	}
	r.s.products.update(id, func(p *entity.Product) { p.Status = to; p.UpdatedAt = now() })
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.products.get(id) == nil {
		return false, nil
	}
	if err := r.s.deleteProduct(id); err != nil {
		return false, err
	}
	return true, nil
}

// deleteProduct falla si hay pedidos con el producto; borra sus reseñas. Requiere el lock.
func (s *Store) deleteProduct(id string) error {
	inOrder := s.orders.find(func(o *entity.Order) bool {
		for _, it := range o.Items {
			if it.ProductID == id {
				return true
			}
		}
		return false
	})
	if inOrder != nil {
		return fmt.Errorf("%w: el producto aparece en pedidos", domain.ErrConflict)
	}
	for _, rv := range s.reviews.all(func(rv *entity.Review) bool { return rv.ProductID == id }) {
		s.reviews.remove(rv.ID)
	}
	s.products.remove(id)
	return nil
}
