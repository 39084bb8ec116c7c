package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

var notificationSpec = listSpec[entity.Notification]{
	filters: map[string]field[entity.Notification]{
		"is_read":      func(n *entity.Notification) string { return strconv.FormatBool(n.IsRead) },
		"is_important": func(n *entity.Notification) string { return strconv.FormatBool(n.IsImportant) },
	},
	search: []field[entity.Notification]{
		func(n *entity.Notification) string { return n.Title },
		func(n *entity.Notification) string { return n.Message },
	},
}

// NotificationRepo notificaciones en memoria.
type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	cp.TargetUserIDs = slices.Clone(n.TargetUserIDs)
	return r.s.notifications.insert(&cp)
}

func (r *NotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := r.s.notifications.get(id)
	if n != nil {
		n.TargetUserIDs = slices.Clone(n.TargetUserIDs)
	}
	return n, nil
}

func (r *NotificationRepo) List(_ context.Context, q listing.Query) ([]*entity.Notification, int, error) {
	match, err := notificationSpec.matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.notifications.page(q, match)
	return items, total, nil
}

func (r *NotificationRepo) ListForUser(_ context.Context, userID string, q listing.Query) ([]*entity.Notification, int, error) {
	match, err := notificationSpec.matcher(q)
	if err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items, total := r.s.notifications.page(q, func(n *entity.Notification) bool {
		return n.TargetsUser(userID) && match(n)
	})
	return items, total, nil
}

func (r *NotificationRepo) SetRead(_ context.Context, id string, read bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.notifications.update(id, func(n *entity.Notification) { n.IsRead = read }) {
		return fmt.Errorf("%w: notificación %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *NotificationRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.notifications.remove(id), nil
}
