package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
	"github.com/jhoicas/Marketplace-api/pkg/sanitize"
)

// NotificationAdmin listado, detalle y borrado de notificaciones.
type NotificationAdmin = admin.Resource[entity.Notification, dto.NotificationResponse]

// NewNotificationAdmin construye el recurso notifications.
func NewNotificationAdmin(repo repository.NotificationRepository, maxLimit int) *NotificationAdmin {
	return admin.New(admin.Config[entity.Notification, dto.NotificationResponse]{
		Schema:     resource.Notifications,
		Store:      repo,
		ToResponse: toNotificationResponse,
		Delete:     repo.Delete,
		MaxLimit:   maxLimit,
	})
}

// NotificationUseCase alta de notificaciones y marca de lectura.
type NotificationUseCase struct {
	repo     repository.NotificationRepository
	users    repository.UserRepository
	events   ports.EventPublisher
	maxLimit int
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, users repository.UserRepository, events ports.EventPublisher, maxLimit int) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, users: users, events: events, maxLimit: maxLimit}
}

// Create sanitiza y persiste una notificación. Los destinatarios deben existir.
func (uc *NotificationUseCase) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	n := &entity.Notification{
		ID:            uuid.New().String(),
		Title:         sanitize.PlainText(in.Title),
		Message:       sanitize.RichText(in.Message),
		IsImportant:   in.IsImportant,
		TargetAll:     in.TargetAll,
		TargetUserIDs: dedupe(in.TargetUserIDs),
		CreatedAt:     time.Now(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	for _, id := range n.TargetUserIDs {
		u, err := uc.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("verificar destinatario: %w", err)
		}
		if u == nil {
			return nil, fmt.Errorf("%w: usuario destinatario %s no existe", domain.ErrInvalidInput, id)
		}
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("crear notificación: %w", err)
	}
	publish(ctx, uc.events, ports.TopicNotificationCreated, n.ID, ports.NotificationCreatedEvent{
		NotificationID: n.ID,
		Title:          n.Title,
		IsImportant:    n.IsImportant,
		TargetAll:      n.TargetAll,
		TargetUserIDs:  n.TargetUserIDs,
		OccurredAt:     n.CreatedAt.UTC(),
	})
	out := toNotificationResponse(n)
	return &out, nil
}

// SetRead marca o desmarca como leída. Aplicar el mismo valor dos veces no cambia nada.
func (uc *NotificationUseCase) SetRead(ctx context.Context, id string, read bool) (*dto.NotificationResponse, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener notificación: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: notificación %s", domain.ErrNotFound, id)
	}
	if n.IsRead != read {
		if err := uc.repo.SetRead(ctx, id, read); err != nil {
			return nil, fmt.Errorf("marcar notificación: %w", err)
		}
		n.IsRead = read
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// ListForUser notificaciones dirigidas al usuario.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, userID string, q listing.Query) (*dto.PageResponse[dto.NotificationResponse], error) {
	q = q.Normalize()
	if err := q.Validate(uc.maxLimit); err != nil {
		return nil, err
	}
	if err := resource.Notifications.ValidateFilters(q.Filters); err != nil {
		return nil, err
	}
	items, total, err := uc.repo.ListForUser(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("listar notificaciones: %w", err)
	}
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationResponse(n))
	}
	return dto.NewPage(out, q, total), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
