package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

func TestNotification_Create(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	ev := &recordingPublisher{}
	uc := NewNotificationUseCase(s.Notifications(), s.Users(), ev, 100)

	tests := []struct {
		name string
		in   dto.CreateNotificationRequest
	}{
		{"sin destino", dto.CreateNotificationRequest{Title: "Hola", Message: "x"}},
		{"ambos destinos", dto.CreateNotificationRequest{Title: "Hola", Message: "x", TargetAll: true, TargetUserIDs: []string{"buyer"}}},
		{"título vacío tras sanitizar", dto.CreateNotificationRequest{Title: "<b></b>", Message: "x", TargetAll: true}},
		{"destinatario inexistente", dto.CreateNotificationRequest{Title: "Hola", Message: "x", TargetUserIDs: []string{"fantasma"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, ev.topics())

	n, err := uc.Create(ctx, dto.CreateNotificationRequest{
		Title: "Envío gratis", Message: "<p>Solo hoy</p><script>x()</script>",
		TargetUserIDs: []string{"buyer", " buyer ", "seller"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"buyer", "seller"}, n.TargetUserIDs)
	assert.NotContains(t, n.Message, "script")
	assert.Contains(t, n.Message, "<p>Solo hoy</p>")
	assert.Equal(t, []string{ports.TopicNotificationCreated}, ev.topics())
}

func TestNotification_ListForUserYLectura(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	uc := NewNotificationUseCase(s.Notifications(), s.Users(), nil, 100)

	all, err := uc.Create(ctx, dto.CreateNotificationRequest{Title: "Mantenimiento", Message: "Domingo", TargetAll: true})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateNotificationRequest{Title: "Tu pedido", Message: "Salió", TargetUserIDs: []string{"buyer"}})
	require.NoError(t, err)

	res, err := uc.ListForUser(ctx, "buyer", page(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pagination.Total)

	res, err = uc.ListForUser(ctx, "seller", page(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, res.Pagination.Total)
	assert.Equal(t, all.ID, res.Items[0].ID)

	for range 2 {
		n, err := uc.SetRead(ctx, all.ID, true)
		require.NoError(t, err)
		assert.True(t, n.IsRead)
	}

	unread, err := uc.ListForUser(ctx, "buyer", listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"is_read": "false"}})
	require.NoError(t, err)
	assert.Equal(t, 1, unread.Pagination.Total)

	_, err = uc.SetRead(ctx, "no-existe", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListForUser(ctx, "buyer", listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"is_read": "quizás"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	moderation := NewNotificationAdmin(s.Notifications(), 100)
	require.NoError(t, moderation.Delete(ctx, all.ID))
	assert.ErrorIs(t, moderation.Delete(ctx, all.ID), domain.ErrNotFound)
}
