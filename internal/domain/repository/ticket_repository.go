package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// TicketRepository persistencia de tickets y su hilo de respuestas.
// GetByID carga las respuestas en orden cronológico. Filtros: status, category, user_id.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	List(ctx context.Context, q listing.Query) ([]*entity.Ticket, int, error)
	// UpdateStatus escribe to solo si el estado sigue siendo from; si cambió devuelve domain.ErrStaleStatus.
	UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) error
	AddResponse(ctx context.Context, resp *entity.TicketResponse) error
	Delete(ctx context.Context, id string) (bool, error)
}
