package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
)

func newTickets(t *testing.T) (*TicketUseCase, *TicketAdmin, *memory.Store, *recordingPublisher) {
	t.Helper()
	s := seedMarket(t)
	ev := &recordingPublisher{}
	uc := NewTicketUseCase(s.Tickets(), s.Users(), s.TxRunner(), ev, 100)
	uc.now = stepClock()
	return uc, NewTicketAdmin(s.Tickets(), ev, 100), s, ev
}

func mustUser(t *testing.T, s *memory.Store, id string) *entity.User {
	t.Helper()
	u, err := s.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestTicket_CreateValida(t *testing.T) {
	uc, _, _, _ := newTickets(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "buyer", dto.CreateTicketRequest{Subject: "Pago", Category: "envíos", Message: "hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "buyer", dto.CreateTicketRequest{Subject: "  ", Category: "payment", Message: "hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tk, err := uc.Create(ctx, "buyer", dto.CreateTicketRequest{Subject: "Pago doble", Category: "payment", Message: "Me cobraron dos veces"})
	require.NoError(t, err)
	assert.Equal(t, "open", tk.Status)
	require.Len(t, tk.Responses, 1)
	assert.Equal(t, "buyer", tk.Responses[0].AuthorID)
	assert.Equal(t, "Usuario buyer", tk.Responses[0].AuthorName)
}

func TestTicket_HiloCambiaEstado(t *testing.T) {
	uc, _, s, ev := newTickets(t)
	ctx := context.Background()
	buyer, admin := mustUser(t, s, "buyer"), mustUser(t, s, "admin")

	tk, err := uc.Create(ctx, "buyer", dto.CreateTicketRequest{Subject: "Pedido", Category: "order", Message: "No llega"})
	require.NoError(t, err)

	tk, err = uc.Reply(ctx, tk.ID, admin, dto.TicketReplyRequest{Message: "Lo revisamos"})
	require.NoError(t, err)
	assert.Equal(t, "pending", tk.Status)
	require.Len(t, tk.Responses, 2)
	assert.Equal(t, "Lo revisamos", tk.Responses[1].Message)
	assert.False(t, tk.UpdatedAt.Before(tk.Responses[1].CreatedAt))

	require.Equal(t, []string{ports.TopicTicketResponded}, ev.topics())
	msg := ev.msgs[0].payload.(ports.TicketRespondedEvent)
	assert.Equal(t, "buyer@mail.test", msg.UserEmail)
	assert.Equal(t, "Usuario admin", msg.AuthorName)

	tk, err = uc.Reply(ctx, tk.ID, buyer, dto.TicketReplyRequest{Message: "Gracias"})
	require.NoError(t, err)
	assert.Equal(t, "open", tk.Status)
	assert.Len(t, tk.Responses, 3)
	// la respuesta del dueño no notifica por correo
	assert.Len(t, ev.topics(), 1)

	_, err = uc.Reply(ctx, tk.ID, buyer, dto.TicketReplyRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTicket_AjenosYCerrados(t *testing.T) {
	uc, tickets, s, _ := newTickets(t)
	ctx := context.Background()
	seller, buyer := mustUser(t, s, "seller"), mustUser(t, s, "buyer")

	tk, err := uc.Create(ctx, "buyer", dto.CreateTicketRequest{Subject: "Cuenta", Category: "account", Message: "No entro"})
	require.NoError(t, err)

	_, err = uc.Reply(ctx, tk.ID, seller, dto.TicketReplyRequest{Message: "hola"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetMine(ctx, "seller", tk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := uc.ListMine(ctx, "seller", page(1, 10))
	require.NoError(t, err)
	assert.Zero(t, mine.Pagination.Total)

	mine, err = uc.ListMine(ctx, "buyer", page(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Pagination.Total)

	closed, err := tickets.UpdateStatus(ctx, tk.ID, string(entity.TicketClosed), "admin")
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)
	assert.NotEmpty(t, closed.Responses)

	_, err = uc.Reply(ctx, tk.ID, buyer, dto.TicketReplyRequest{Message: "¿sigue?"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = tickets.UpdateStatus(ctx, tk.ID, string(entity.TicketOpen), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, tickets.Delete(ctx, tk.ID))
	_, err = uc.GetMine(ctx, "buyer", tk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
