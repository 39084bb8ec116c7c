package usecase

import (
	"context"
	"fmt"
	"slices"
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

// TicketAdmin bandeja de soporte.
type TicketAdmin = admin.Resource[entity.Ticket, dto.TicketResponse]

// NewTicketAdmin construye el recurso tickets. El detalle incluye el hilo de respuestas.
func NewTicketAdmin(repo repository.TicketRepository, events ports.EventPublisher, maxLimit int) *TicketAdmin {
	return admin.New(admin.Config[entity.Ticket, dto.TicketResponse]{
		Schema:     resource.Tickets,
		Store:      repo,
		ToResponse: toTicketResponse,
		ToDetail: func(_ context.Context, t *entity.Ticket) (dto.TicketResponse, error) {
			return toTicketDetail(t), nil
		},
		StatusOf: func(t *entity.Ticket) string { return string(t.Status) },
		UpdateStatus: func(ctx context.Context, t *entity.Ticket, to, _ string) error {
			return repo.UpdateStatus(ctx, t.ID, t.Status, entity.TicketStatus(to))
		},
		Delete:      repo.Delete,
		StatusTopic: ports.TopicTicketStatusChanged,
		Events:      events,
		MaxLimit:    maxLimit,
	})
}

// TicketUseCase alta de tickets y respuestas en el hilo.
type TicketUseCase struct {
	tickets  repository.TicketRepository
	users    repository.UserRepository
	tx       repository.TxRunner
	events   ports.EventPublisher
	maxLimit int
	now      func() time.Time
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(tickets repository.TicketRepository, users repository.UserRepository, tx repository.TxRunner, events ports.EventPublisher, maxLimit int) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, users: users, tx: tx, events: events, maxLimit: maxLimit, now: time.Now}
}

// Create abre un ticket con su primer mensaje en una sola transacción.
func (uc *TicketUseCase) Create(ctx context.Context, userID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	subject := sanitize.PlainText(in.Subject)
	message := sanitize.RichText(in.Message)
	if subject == "" || message == "" {
		return nil, fmt.Errorf("%w: subject y message son requeridos", domain.ErrInvalidInput)
	}
	if !slices.Contains(entity.TicketCategories, in.Category) {
		return nil, fmt.Errorf("%w: categoría %q no admitida", domain.ErrInvalidInput, in.Category)
	}
	now := uc.now()
	t := &entity.Ticket{
		ID:        uuid.New().String(),
		UserID:    userID,
		Subject:   subject,
		Category:  in.Category,
		Status:    entity.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	first := entity.TicketResponse{
		ID:        uuid.New().String(),
		TicketID:  t.ID,
		AuthorID:  userID,
		Message:   message,
		CreatedAt: now,
	}
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Tickets.Create(ctx, t); err != nil {
			return err
		}
		return repos.Tickets.AddResponse(ctx, &first)
	})
	if err != nil {
		return nil, fmt.Errorf("crear ticket: %w", err)
	}
	return uc.detail(ctx, t.ID)
}

// ListMine tickets del usuario autenticado.
func (uc *TicketUseCase) ListMine(ctx context.Context, userID string, q listing.Query) (*dto.PageResponse[dto.TicketResponse], error) {
	q = q.Normalize()
	if err := q.Validate(uc.maxLimit); err != nil {
		return nil, err
	}
	if err := resource.Tickets.ValidateFilters(q.Filters); err != nil {
		return nil, err
	}
	items, total, err := uc.tickets.List(ctx, q.With("user_id", userID))
	if err != nil {
		return nil, fmt.Errorf("listar tickets: %w", err)
	}
	out := make([]dto.TicketResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTicketResponse(t))
	}
	return dto.NewPage(out, q, total), nil
}

// GetMine detalle de un ticket propio; los ajenos son ErrNotFound.
func (uc *TicketUseCase) GetMine(ctx context.Context, userID, id string) (*dto.TicketResponse, error) {
	t, err := uc.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener ticket: %w", err)
	}
	if t == nil || t.UserID != userID {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
	}
	out := toTicketDetail(t)
	return &out, nil
}

// Reply añade un mensaje al hilo. Si responde un administrador, un ticket abierto pasa
// a pending; si responde el dueño, un ticket pending o resolved vuelve a open.
// Los tickets cerrados no admiten respuestas (ErrConflict).
func (uc *TicketUseCase) Reply(ctx context.Context, ticketID string, author *entity.User, in dto.TicketReplyRequest) (*dto.TicketResponse, error) {
	message := sanitize.RichText(in.Message)
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message es requerido", domain.ErrInvalidInput)
	}
	fromAdmin := author.Role == entity.RoleAdmin

	var ticket *entity.Ticket
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		t, err := repos.Tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if t == nil || (!fromAdmin && t.UserID != author.ID) {
			return fmt.Errorf("%w: ticket %s", domain.ErrNotFound, ticketID)
		}
		if t.Status == entity.TicketClosed {
			return fmt.Errorf("%w: el ticket está cerrado", domain.ErrConflict)
		}
		if err := repos.Tickets.AddResponse(ctx, &entity.TicketResponse{
			ID:        uuid.New().String(),
			TicketID:  t.ID,
			AuthorID:  author.ID,
			Message:   message,
			CreatedAt: uc.now(),
		}); err != nil {
			return err
		}
		next := t.Status
		switch {
		case fromAdmin && t.Status == entity.TicketOpen:
			next = entity.TicketPending
		case !fromAdmin && (t.Status == entity.TicketPending || t.Status == entity.TicketResolved):
			next = entity.TicketOpen
		}
		if next != t.Status && t.Status.CanTransitionTo(next) {
			if err := repos.Tickets.UpdateStatus(ctx, t.ID, t.Status, next); err != nil {
				return err
			}
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fromAdmin {
		uc.notifyResponded(ctx, ticket, author, message)
	}
	return uc.detail(ctx, ticketID)
}

func (uc *TicketUseCase) notifyResponded(ctx context.Context, t *entity.Ticket, author *entity.User, message string) {
	owner, err := uc.users.GetByID(ctx, t.UserID)
	if err != nil || owner == nil {
		return
	}
	publish(ctx, uc.events, ports.TopicTicketResponded, t.ID, ports.TicketRespondedEvent{
		TicketID:   t.ID,
		Subject:    t.Subject,
		UserEmail:  owner.Email,
		UserName:   owner.Name,
		AuthorName: author.Name,
		Message:    message,
		OccurredAt: uc.now().UTC(),
	})
}

func (uc *TicketUseCase) detail(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := uc.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener ticket: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
	}
	out := toTicketDetail(t)
	return &out, nil
}
