package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

var ticketSpec = listSpec[entity.Ticket]{
	filters: map[string]field[entity.Ticket]{
		"status":   func(t *entity.Ticket) string { return string(t.Status) },
		"category": func(t *entity.Ticket) string { return t.Category },
		"user_id":  func(t *entity.Ticket) string { return t.UserID },
	},
	search: []field[entity.Ticket]{
		func(t *entity.Ticket) string { return t.Subject },
	},
}

// TicketRepo tickets en memoria.
type TicketRepo struct{ s *Store }

func (r *TicketRepo) Create(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	cp.Responses = nil
	return r.s.tickets.insert(&cp)
}

func (r *TicketRepo) GetByID(_ context.Context, id string) (*entity.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := r.s.tickets.get(id)
	if t == nil {
		return nil, nil
	}
	t.UserName = r.s.userName(t.UserID)
	resps := r.s.responses.all(func(rp *entity.TicketResponse) bool { return rp.TicketID == id })
	sort.SliceStable(resps, func(i, j int) bool { return resps[i].CreatedAt.Before(resps[j].CreatedAt) })
	t.Responses = make([]entity.TicketResponse, 0, len(resps))
	for _, rp := range resps {
		rp.AuthorName = r.s.userName(rp.AuthorID)
		t.Responses = append(t.Responses, *rp)
	}
	return t, nil
}

func (r *TicketRepo) List(_ context.Context, q listing.Query) ([]*entity.Ticket, int, error) {
	match, err := ticketSpec.matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.tickets.page(q, match)
	for _, t := range items {
		t.UserName = r.s.userName(t.UserID)
	}
	return items, total, nil
}

func (r *TicketRepo) UpdateStatus(_ context.Context, id string, from, to entity.TicketStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.tickets.get(id)
	if cur == nil {
		return fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
	}
	if cur.Status != from {
		return fmt.Errorf("%w: ticket %s ya no está en %s", domain.ErrStaleStatus, id, from)
	}
	r.s.tickets.update(id, func(t *entity.Ticket) { t.Status = to; t.UpdatedAt = now() })
	return nil
}

func (r *TicketRepo) AddResponse(_ context.Context, resp *entity.TicketResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.tickets.update(resp.TicketID, func(t *entity.Ticket) {
		if resp.CreatedAt.After(t.UpdatedAt) {
			t.UpdatedAt = resp.CreatedAt
		}
	}) {
		return fmt.Errorf("%w: ticket %s", domain.ErrNotFound, resp.TicketID)
	}
	return r.s.responses.insert(resp)
}

func (r *TicketRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteTicket(id), nil
}

// deleteTicket borra el ticket y su hilo. Requiere el lock.
func (s *Store) deleteTicket(id string) bool {
	for _, rp := range s.responses.all(func(rp *entity.TicketResponse) bool { return rp.TicketID == id }) {
		s.responses.remove(rp.ID)
	}
	return s.tickets.remove(id)
}
