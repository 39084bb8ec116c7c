package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userSpec = listSpec[entity.User]{
	filters: map[string]field[entity.User]{
		"role": func(u *entity.User) string { return u.Role },
	},
	search: []field[entity.User]{
		func(u *entity.User) string { return u.Name },
		func(u *entity.User) string { return u.Email },
	},
}

// UserRepo usuarios en memoria. Email único sin distinguir mayúsculas.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflict(u) {
		return domain.ErrEmailAlreadyExists
	}
	return r.s.users.insert(u)
}

func (r *UserRepo) conflict(u *entity.User) bool {
	return r.s.users.find(func(o *entity.User) bool {
		if o.ID == u.ID {
			return false
		}
		if strings.EqualFold(o.Email, u.Email) {
			return true
		}
		return u.GoogleID != nil && o.GoogleID != nil && *o.GoogleID == *u.GoogleID
	}) != nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.get(id), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) GetByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.find(func(u *entity.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID }), nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflict(u) {
		return domain.ErrEmailAlreadyExists
	}
	if !r.s.users.update(u.ID, func(row *entity.User) { *row = *u }) {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, u.ID)
	}
	return nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.users.update(id, func(u *entity.User) { u.Role = role; u.RoleSelected = true; u.UpdatedAt = now() }) {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *UserRepo) List(_ context.Context, q listing.Query) ([]*entity.User, int, error) {
	match, err := userSpec.matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.users.page(q, match)
	return items, total, nil
}

// Delete falla con ErrConflict si el usuario tiene pedidos; sus productos, reseñas,
// tickets y tokens se eliminan en cascada.
func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.users.get(id) == nil {
		return false, nil
	}
	if r.s.orders.find(func(o *entity.Order) bool { return o.BuyerID == id || o.SellerID == id }) != nil {
		return false, fmt.Errorf("%w: el usuario tiene pedidos", domain.ErrConflict)
	}
	for _, p := range r.s.products.all(func(p *entity.Product) bool { return p.SellerID == id }) {
		if err := r.s.deleteProduct(p.ID); err != nil {
			return false, err
		}
	}
	for _, rv := range r.s.reviews.all(func(rv *entity.Review) bool { return rv.UserID == id }) {
		r.s.reviews.remove(rv.ID)
	}
	for _, t := range r.s.tickets.all(func(t *entity.Ticket) bool { return t.UserID == id }) {
		r.s.deleteTicket(t.ID)
	}
	for _, pr := range r.s.resets.all(func(pr *entity.PasswordReset) bool { return pr.UserID == id }) {
		r.s.resets.remove(pr.ID)
	}
	return r.s.users.remove(id), nil
}

// userName nombre para columnas de solo lectura; requiere el lock tomado.
func (s *Store) userName(id string) string {
	if u, ok := s.users.rows[id]; ok {
		return u.Name
	}
	return ""
}
