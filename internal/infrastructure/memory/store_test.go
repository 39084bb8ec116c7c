package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s *Store, id, name, role string, at time.Time) {
	t.Helper()
	require.NoError(t, s.Users().Create(context.Background(), &entity.User{
		ID: id, Name: name, Email: id + "@mail.test", Role: role, CreatedAt: at, UpdatedAt: at,
	}))
}

func seedProduct(t *testing.T, s *Store, id, seller string, status entity.ProductStatus) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, SellerID: seller, Name: "Producto " + id, Category: "hogar",
		Price: decimal.NewFromInt(10), Stock: 1, Status: status, CreatedAt: t0, UpdatedAt: t0,
	}))
}

func TestUserRepo_ListPaginaOrdenaYFiltra(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 5; i++ {
		role := entity.RoleBuyer
		if i%2 == 0 {
			role = entity.RoleSeller
		}
		seedUser(t, s, fmt.Sprintf("u%d", i), fmt.Sprintf("Usuario %d", i), role, t0.Add(time.Duration(i)*time.Minute))
	}

	items, total, err := s.Users().List(ctx, listing.Query{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, "u4", items[0].ID)
	assert.Equal(t, "u3", items[1].ID)

	items, total, err = s.Users().List(ctx, listing.Query{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 1)
	assert.Equal(t, "u0", items[0].ID)

	items, total, err = s.Users().List(ctx, listing.Query{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, items)

	items, total, err = s.Users().List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"role": entity.RoleSeller}})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	_, total, err = s.Users().List(ctx, listing.Query{Page: 1, Limit: 10, Search: "USUARIO 3"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestUserRepo_FiltroDesconocido(t *testing.T) {
	s := NewStore()
	_, _, err := s.Users().List(context.Background(), listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"color": "rojo"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "ana", "Ana", entity.RoleBuyer, t0)
	err := s.Users().Create(ctx, &entity.User{ID: "otra", Name: "Otra", Email: "ANA@mail.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "Ana@Mail.Test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ana", u.ID)
}

func TestUserRepo_GetDevuelveCopia(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "ana", "Ana", entity.RoleBuyer, t0)
	u, _ := s.Users().GetByID(ctx, "ana")
	u.Name = "Cambiado"
	again, _ := s.Users().GetByID(ctx, "ana")
	assert.Equal(t, "Ana", again.Name)
}

func TestUserRepo_DeleteConPedidosEsConflicto(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedUser(t, s, "seller", "Vendedor", entity.RoleSeller, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductApproved)
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{
		ID: "o1", BuyerID: "buyer", SellerID: "seller", Status: entity.OrderPending,
		Total: decimal.NewFromInt(10), CreatedAt: t0,
		Items: []entity.OrderItem{{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}},
	}))

	ok, err := s.Users().Delete(ctx, "buyer")
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrConflict)

	ok, err = s.Products().Delete(ctx, "p1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "seller", "Vendedor", entity.RoleSeller, t0)
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductApproved)
	require.NoError(t, s.Reviews().Create(ctx, &entity.Review{ID: "r1", ProductID: "p1", UserID: "buyer", Rating: 4, CreatedAt: t0}))
	require.NoError(t, s.Tickets().Create(ctx, &entity.Ticket{ID: "t1", UserID: "seller", Subject: "Ayuda", Category: "other", Status: entity.TicketOpen, CreatedAt: t0}))
	require.NoError(t, s.Tickets().AddResponse(ctx, &entity.TicketResponse{ID: "m1", TicketID: "t1", AuthorID: "seller", Message: "hola", CreatedAt: t0}))

	ok, err := s.Users().Delete(ctx, "seller")
	require.NoError(t, err)
	assert.True(t, ok)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Nil(t, p)
	r, _ := s.Reviews().GetByID(ctx, "r1")
	assert.Nil(t, r)
	tk, _ := s.Tickets().GetByID(ctx, "t1")
	assert.Nil(t, tk)
	assert.Empty(t, s.responses.rows)

	ok, err = s.Users().Delete(ctx, "seller")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepo_SellerDebeExistir(t *testing.T) {
	s := NewStore()
	err := s.Products().Create(context.Background(), &entity.Product{ID: "p1", SellerID: "nadie", Status: entity.ProductPending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_ListRellenaVendedor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "seller", "Tienda Sol", entity.RoleSeller, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductPending)
	seedProduct(t, s, "p2", "seller", entity.ProductApproved)

	items, total, err := s.Products().List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"status": "pending"}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Tienda Sol", items[0].SellerName)

	_, total, err = s.Products().List(ctx, listing.Query{Page: 1, Limit: 10, Search: "producto p2"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestOrderRepo_DetalleEHistorial(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedUser(t, s, "seller", "Vendedor", entity.RoleSeller, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductApproved)
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{
		ID: "o1", BuyerID: "buyer", SellerID: "seller", Status: entity.OrderPending,
		Total: decimal.NewFromInt(20), CreatedAt: t0,
		Items: []entity.OrderItem{{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(10)}},
	}))
	require.NoError(t, s.Orders().UpdateStatus(ctx, "o1", entity.OrderPending, entity.OrderProcessing))
	require.NoError(t, s.Orders().AddStatusChange(ctx, &entity.OrderStatusChange{ID: "h2", OrderID: "o1", From: entity.OrderProcessing, To: entity.OrderShipped, CreatedAt: t0.Add(2 * time.Hour)}))
	require.NoError(t, s.Orders().AddStatusChange(ctx, &entity.OrderStatusChange{ID: "h1", OrderID: "o1", From: entity.OrderPending, To: entity.OrderProcessing, CreatedAt: t0.Add(time.Hour)}))

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, o.Status)
	assert.Equal(t, "Comprador", o.BuyerName)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Producto p1", o.Items[0].ProductName)

	hist, err := s.Orders().ListStatusChanges(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "h1", hist[0].ID)

	list, _, err := s.Orders().List(ctx, listing.Query{Page: 1, Limit: 10, Search: "comprador"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Items)

	assert.ErrorIs(t, s.Orders().UpdateStatus(ctx, "nada", entity.OrderPending, entity.OrderShipped), domain.ErrNotFound)
	err = s.Orders().UpdateStatus(ctx, "o1", entity.OrderPending, entity.OrderCancelled)
	assert.ErrorIs(t, err, domain.ErrStaleStatus, "el estado ya no es pending")
	o, err = s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, o.Status)
}

func TestReviewRepo_UnaPorUsuarioYProducto(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "seller", "Vendedor", entity.RoleSeller, t0)
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductApproved)
	require.NoError(t, s.Reviews().Create(ctx, &entity.Review{ID: "r1", ProductID: "p1", UserID: "buyer", Rating: 5, Comment: "Excelente", CreatedAt: t0}))
	err := s.Reviews().Create(ctx, &entity.Review{ID: "r2", ProductID: "p1", UserID: "buyer", Rating: 1, CreatedAt: t0})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	items, total, err := s.Reviews().List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"rating": "5"}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Producto p1", items[0].ProductName)
	assert.Equal(t, "Comprador", items[0].UserName)
}

func TestTicketRepo_HiloOrdenadoYUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedUser(t, s, "admin", "Soporte", entity.RoleAdmin, t0)
	require.NoError(t, s.Tickets().Create(ctx, &entity.Ticket{ID: "t1", UserID: "buyer", Subject: "Pago duplicado", Category: "payment", Status: entity.TicketOpen, CreatedAt: t0, UpdatedAt: t0}))
	later := t0.Add(time.Hour)
	require.NoError(t, s.Tickets().AddResponse(ctx, &entity.TicketResponse{ID: "m2", TicketID: "t1", AuthorID: "admin", Message: "Revisando", CreatedAt: later}))
	require.NoError(t, s.Tickets().AddResponse(ctx, &entity.TicketResponse{ID: "m1", TicketID: "t1", AuthorID: "buyer", Message: "Me cobraron dos veces", CreatedAt: t0}))

	tk, err := s.Tickets().GetByID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, tk.Responses, 2)
	assert.Equal(t, "m1", tk.Responses[0].ID)
	assert.Equal(t, "Soporte", tk.Responses[1].AuthorName)
	assert.True(t, tk.UpdatedAt.Equal(later))

	err = s.Tickets().AddResponse(ctx, &entity.TicketResponse{ID: "m3", TicketID: "nada", CreatedAt: t0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationRepo_ListForUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Notifications()
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n1", Title: "Para todos", TargetAll: true, CreatedAt: t0}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n2", Title: "Para u1", TargetUserIDs: []string{"u1"}, CreatedAt: t0.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n3", Title: "Para u2", TargetUserIDs: []string{"u2"}, CreatedAt: t0.Add(2 * time.Minute)}))

	items, total, err := repo.ListForUser(ctx, "u1", listing.Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "n2", items[0].ID)

	require.NoError(t, repo.SetRead(ctx, "n1", true))
	_, total, err = repo.List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"is_read": "false"}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	assert.ErrorIs(t, repo.SetRead(ctx, "nada", true), domain.ErrNotFound)
}

func TestTxRunner_RollbackRestauraTablas(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.TxRunner().Run(ctx, func(repos repository.TxRepos) error {
		require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "x", Email: "x@mail.test", CreatedAt: t0}))
		require.NoError(t, repos.Tickets.Create(ctx, &entity.Ticket{ID: "t", UserID: "x", Status: entity.TicketOpen, CreatedAt: t0}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	u, _ := s.Users().GetByID(ctx, "x")
	assert.Nil(t, u)
	tk, _ := s.Tickets().GetByID(ctx, "t")
	assert.Nil(t, tk)
}

func TestAnalyticsRepo_Conteos(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "buyer", "Comprador", entity.RoleBuyer, t0)
	seedUser(t, s, "seller", "Vendedor", entity.RoleSeller, t0)
	seedProduct(t, s, "p1", "seller", entity.ProductPending)
	for i, st := range []entity.OrderStatus{entity.OrderDelivered, entity.OrderDelivered, entity.OrderCancelled} {
		require.NoError(t, s.Orders().Create(ctx, &entity.Order{
			ID: fmt.Sprintf("o%d", i), BuyerID: "buyer", SellerID: "seller", Status: st,
			Total: decimal.RequireFromString("12.50"), CreatedAt: t0,
		}))
	}

	byRole, err := s.Analytics().CountUsersByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"buyer": 1, "seller": 1}, byRole)

	byStatus, err := s.Analytics().CountOrdersByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byStatus["delivered"])

	rev, err := s.Analytics().DeliveredRevenue(ctx, t0.Add(-time.Hour), t0.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, rev.Equal(decimal.RequireFromString("25")), rev.String())

	rev, err = s.Analytics().DeliveredRevenue(ctx, t0.Add(time.Hour), t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, rev.IsZero())

	tickets, err := s.Analytics().CountTicketsByStatus(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tickets)
}

func TestStateStore_UnSoloUso(t *testing.T) {
	ctx := context.Background()
	st := NewStateStore()
	require.NoError(t, st.Save(ctx, "abc", time.Minute))
	ok, _ := st.Consume(ctx, "abc")
	assert.True(t, ok)
	ok, _ = st.Consume(ctx, "abc")
	assert.False(t, ok)

	require.NoError(t, st.Save(ctx, "viejo", -time.Second))
	ok, _ = st.Consume(ctx, "viejo")
	assert.False(t, ok)
}

func TestRateLimiter_Ventana(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter()
	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, "ip", 3, time.Minute)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "ip", 3, time.Minute)
	assert.False(t, ok)
	ok, _ = l.Allow(ctx, "otra", 3, time.Minute)
	assert.True(t, ok)
}

func TestPasswordResetRepo_MarkUsedUnaVez(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Resets().Create(ctx, &entity.PasswordReset{
		ID: "r1", UserID: "u1", TokenHash: "h1", ExpiresAt: t0.Add(time.Hour), CreatedAt: t0,
	}))

	require.NoError(t, s.Resets().MarkUsed(ctx, "r1", t0.Add(time.Minute)))
	assert.ErrorIs(t, s.Resets().MarkUsed(ctx, "r1", t0.Add(2*time.Minute)), domain.ErrTokenExpired)
	assert.ErrorIs(t, s.Resets().MarkUsed(ctx, "nada", t0), domain.ErrTokenExpired)

	require.NoError(t, s.Resets().Create(ctx, &entity.PasswordReset{
		ID: "r2", UserID: "u1", TokenHash: "h2", ExpiresAt: t0.Add(time.Hour), CreatedAt: t0,
	}))
	assert.ErrorIs(t, s.Resets().MarkUsed(ctx, "r2", t0.Add(2*time.Hour)), domain.ErrTokenExpired, "vencido")
	pr, err := s.Resets().GetByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.Nil(t, pr.UsedAt)
}
