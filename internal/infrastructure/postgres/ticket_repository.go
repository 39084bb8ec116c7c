package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

const ticketColumns = `t.id, t.user_id, COALESCE(u.name, ''), t.subject, t.category, t.status, t.created_at, t.updated_at`

const ticketFrom = `tickets t LEFT JOIN users u ON u.id = t.user_id`

var ticketList = listSQL{
	columns: ticketColumns,
	from:    ticketFrom,
	alias:   "t",
	filters: map[string]string{
		"status":   "t.status",
		"category": "t.category",
		"user_id":  "t.user_id::text",
	},
	search: []string{"t.subject"},
}

// TicketRepo tickets de soporte y su hilo de respuestas.
type TicketRepo struct {
	q Querier
}

func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	if err := row.Scan(&t.ID, &t.UserID, &t.UserName, &t.Subject, &t.Category, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta solo la cabecera; el primer mensaje se agrega con AddResponse.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tickets (id, user_id, subject, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.UserID, t.Subject, t.Category, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert ticket", err)
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM `+ticketFrom+` WHERE t.id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get ticket", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.ticket_id, COALESCE(m.author_id::text, ''), COALESCE(u.name, ''), m.message, m.created_at
		FROM ticket_responses m LEFT JOIN users u ON u.id = m.author_id
		WHERE m.ticket_id = $1
		ORDER BY m.created_at, m.id`, id)
	if err != nil {
		return nil, storeErr("get ticket responses", err)
	}
	defer rows.Close()
	t.Responses = []entity.TicketResponse{}
	for rows.Next() {
		var m entity.TicketResponse
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.AuthorName, &m.Message, &m.CreatedAt); err != nil {
			return nil, storeErr("scan ticket response", err)
		}
		t.Responses = append(t.Responses, m)
	}
	return t, rows.Err()
}

func (r *TicketRepo) List(ctx context.Context, q listing.Query) ([]*entity.Ticket, int, error) {
	rows, total, err := ticketList.run(ctx, r.q, "list tickets", q, nil)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Ticket, 0, q.Limit)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, storeErr("scan ticket", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) error {
	return updateStatusIfUnchanged(ctx, r.q, "tickets", "ticket", id, string(from), string(to))
}

// AddResponse agrega un mensaje al hilo y adelanta updated_at del ticket.
func (r *TicketRepo) AddResponse(ctx context.Context, m *entity.TicketResponse) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE tickets SET updated_at = GREATEST(updated_at, $2) WHERE id = $1`, m.TicketID, m.CreatedAt)
	if err != nil {
		return storeErr("touch ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ticket %s", domain.ErrNotFound, m.TicketID)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO ticket_responses (id, ticket_id, author_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.TicketID, m.AuthorID, m.Message, m.CreatedAt,
	)
	if err != nil {
		return storeErr("insert ticket response", err)
	}
	return nil
}

func (r *TicketRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, storeErr("delete ticket", err)
	}
	return tag.RowsAffected() > 0, nil
}
