package memory

import (
	"context"
	"strconv"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo reseñas en memoria. Una por usuario y producto.
type ReviewRepo struct{ s *Store }

func (r *ReviewRepo) spec() listSpec[entity.Review] {
	return listSpec[entity.Review]{
		filters: map[string]field[entity.Review]{
			"rating":     func(rv *entity.Review) string { return strconv.Itoa(rv.Rating) },
			"product_id": func(rv *entity.Review) string { return rv.ProductID },
		},
		search: []field[entity.Review]{
			func(rv *entity.Review) string { return rv.Comment },
			func(rv *entity.Review) string { return r.s.productName(rv.ProductID) },
		},
	}
}

func (r *ReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	dup := r.s.reviews.find(func(o *entity.Review) bool {
		return o.ProductID == rv.ProductID && o.UserID == rv.UserID
	})
	if dup != nil {
		return domain.ErrDuplicate
	}
	return r.s.reviews.insert(rv)
}

func (r *ReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv := r.s.reviews.get(id)
	if rv != nil {
		r.s.fillReview(rv)
	}
	return rv, nil
}

func (r *ReviewRepo) List(_ context.Context, q listing.Query) ([]*entity.Review, int, error) {
	match, err := r.spec().matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.reviews.page(q, match)
	for _, rv := range items {
		r.s.fillReview(rv)
	}
	return items, total, nil
}

func (r *ReviewRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.reviews.remove(id), nil
}

func (s *Store) fillReview(rv *entity.Review) {
	rv.ProductName = s.productName(rv.ProductID)
	rv.UserName = s.userName(rv.UserID)
}

func (s *Store) productName(id string) string {
	if p, ok := s.products.rows[id]; ok {
		return p.Name
	}
	return ""
}
