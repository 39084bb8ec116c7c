package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
)

var t0 = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

type published struct {
	topic   string
	key     string
	payload any
}

// recordingPublisher guarda lo publicado para inspeccionarlo en los tests.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{topic: topic, key: key, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.msgs))
	for i, m := range p.msgs {
		out[i] = m.topic
	}
	return out
}

// stepClock devuelve instantes crecientes de un minuto.
func stepClock() func() time.Time {
	var mu sync.Mutex
	cur := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Minute)
		return cur
	}
}

func page(n, limit int) listing.Query { return listing.Query{Page: n, Limit: limit} }

func seedUser(t *testing.T, s *memory.Store, id, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID: id, Name: "Usuario " + id, Email: id + "@mail.test", Role: role,
		RoleSelected: true, CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, s *memory.Store, id, seller string, status entity.ProductStatus) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, SellerID: seller, Name: "Producto " + id, Category: "hogar",
		Price: decimal.RequireFromString("12.50"), Stock: 3, Status: status, CreatedAt: t0, UpdatedAt: t0,
	}))
}

func seedOrder(t *testing.T, s *memory.Store, id, buyer, seller, product string) {
	t.Helper()
	require.NoError(t, s.Orders().Create(context.Background(), &entity.Order{
		ID: id, BuyerID: buyer, SellerID: seller, Status: entity.OrderPending,
		Total: decimal.RequireFromString("25.00"),
		Items: []entity.OrderItem{{
			ID: id + "-1", OrderID: id, ProductID: product, Quantity: 2, Price: decimal.RequireFromString("12.50"),
		}},
		CreatedAt: t0, UpdatedAt: t0,
	}))
}

func seedMarket(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	seedUser(t, s, "buyer", entity.RoleBuyer)
	seedUser(t, s, "seller", entity.RoleSeller)
	seedUser(t, s, "admin", entity.RoleAdmin)
	seedProduct(t, s, "p-ok", "seller", entity.ProductApproved)
	seedProduct(t, s, "p-new", "seller", entity.ProductPending)
	seedOrder(t, s, "o1", "buyer", "seller", "p-ok")
	return s
}

func TestOrderAdmin_CambioDeEstadoConHistorial(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	ev := &recordingPublisher{}
	orders := NewOrderAdmin(s.Orders(), s.TxRunner(), ev, 100)

	out, err := orders.UpdateStatus(ctx, "o1", string(entity.OrderProcessing), "admin")
	require.NoError(t, err)
	assert.Equal(t, "processing", out.Status)
	require.Len(t, out.History, 1)
	assert.Equal(t, "pending", out.History[0].From)
	assert.Equal(t, "processing", out.History[0].To)
	assert.Equal(t, "admin", out.History[0].ChangedBy)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Producto p-ok", out.Items[0].ProductName)
	require.NotNil(t, out.TotalConsistent)
	assert.True(t, *out.TotalConsistent)
	assert.Equal(t, []string{"order.status_changed"}, ev.topics())

	// repetir el estado no añade historial ni eventos
	out, err = orders.UpdateStatus(ctx, "o1", string(entity.OrderProcessing), "admin")
	require.NoError(t, err)
	assert.Len(t, out.History, 1)
	assert.Len(t, ev.topics(), 1)

	_, err = orders.UpdateStatus(ctx, "o1", string(entity.OrderPending), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = orders.UpdateStatus(ctx, "o1", "enviado", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = orders.UpdateStatus(ctx, "o-x", string(entity.OrderShipped), "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// pausedOrders detiene la primera lectura de un pedido hasta que el test la libera.
type pausedOrders struct {
	repository.OrderRepository
	once   sync.Once
	read   chan struct{}
	resume chan struct{}
}

func (p *pausedOrders) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := p.OrderRepository.GetByID(ctx, id)
	p.once.Do(func() {
		close(p.read)
		<-p.resume
	})
	return o, err
}

func TestOrderAdmin_CambioConcurrenteRevalidaTransicion(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	ev := &recordingPublisher{}
	paused := &pausedOrders{OrderRepository: s.Orders(), read: make(chan struct{}), resume: make(chan struct{})}
	slow := NewOrderAdmin(paused, s.TxRunner(), ev, 100)
	fast := NewOrderAdmin(s.Orders(), s.TxRunner(), ev, 100)

	done := make(chan error, 1)
	go func() {
		_, err := slow.UpdateStatus(ctx, "o1", string(entity.OrderCancelled), "admin-a")
		done <- err
	}()

	// el primer administrador leyó pending; el segundo avanza el pedido mientras tanto
	<-paused.read
	_, err := fast.UpdateStatus(ctx, "o1", string(entity.OrderProcessing), "admin-b")
	require.NoError(t, err)
	_, err = fast.UpdateStatus(ctx, "o1", string(entity.OrderShipped), "admin-b")
	require.NoError(t, err)
	close(paused.resume)

	assert.ErrorIs(t, <-done, domain.ErrInvalidTransition, "shipped -> cancelled no está permitido")

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, o.Status)
	hist, err := s.Orders().ListStatusChanges(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	for _, h := range hist {
		assert.NotEqual(t, entity.OrderCancelled, h.To)
		assert.Equal(t, "admin-b", h.ChangedBy)
	}
	assert.Len(t, ev.topics(), 2)
}

func TestOrderAdmin_ListadoSinLineas(t *testing.T) {
	s := seedMarket(t)
	orders := NewOrderAdmin(s.Orders(), s.TxRunner(), nil, 100)

	res, err := orders.List(context.Background(), page(1, 10))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Usuario buyer", res.Items[0].BuyerName)
	assert.Empty(t, res.Items[0].Items)
	assert.Equal(t, listing.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, res.Pagination)
}

func TestProductAdmin_ModeracionYBorrado(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	ev := &recordingPublisher{}
	products := NewProductAdmin(s.Products(), ev, 100)

	out, err := products.UpdateStatus(ctx, "p-new", string(entity.ProductApproved), "admin")
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	assert.Equal(t, []string{"product.moderated"}, ev.topics())

	_, err = products.UpdateStatus(ctx, "p-new", string(entity.ProductPending), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// p-ok aparece en un pedido
	assert.ErrorIs(t, products.Delete(ctx, "p-ok"), domain.ErrConflict)

	require.NoError(t, products.Delete(ctx, "p-new"))
	assert.ErrorIs(t, products.Delete(ctx, "p-new"), domain.ErrNotFound)

	res, err := products.List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"status": "pending"}})
	require.NoError(t, err)
	assert.Zero(t, res.Pagination.Total)
}

func TestUserAdmin_CambioDeRol(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	users := NewUserAdmin(s.Users(), 100)

	out, err := users.UpdateStatus(ctx, "buyer", entity.RoleSeller, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, out.Role)
	assert.True(t, out.RoleSelected)

	_, err = users.UpdateStatus(ctx, "buyer", "superuser", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// buyer tiene pedidos
	assert.ErrorIs(t, users.Delete(ctx, "buyer"), domain.ErrConflict)
	assert.ErrorIs(t, users.Delete(ctx, "nadie"), domain.ErrNotFound)

	res, err := users.List(ctx, listing.Query{Page: 1, Limit: 10, Search: "admin"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "admin@mail.test", res.Items[0].Email)
}

func TestCatalog_SoloAprobados(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	catalog := NewCatalogUseCase(s.Products(), 100)

	res, err := catalog.List(ctx, page(1, 10))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p-ok", res.Items[0].ID)

	_, err = catalog.Get(ctx, "p-new")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := catalog.Get(ctx, "p-ok")
	require.NoError(t, err)
	assert.Equal(t, "Usuario seller", p.SellerName)

	all, err := catalog.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = catalog.List(ctx, page(1, 500))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalog_AllRecorrePaginas(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", entity.RoleSeller)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedProduct(t, s, id, "seller", entity.ProductApproved)
	}
	all, err := NewCatalogUseCase(s.Products(), 2).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	catalog := NewCatalogUseCase(s.Products(), 100)
	reviews := NewReviewUseCase(s.Reviews(), catalog, 100)

	_, err := reviews.Create(ctx, "p-ok", "buyer", dto.CreateReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = reviews.Create(ctx, "p-new", "buyer", dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	r, err := reviews.Create(ctx, "p-ok", "buyer", dto.CreateReviewRequest{Rating: 5, Comment: "<b>Excelente</b>"})
	require.NoError(t, err)
	assert.Equal(t, "Excelente", r.Comment)
	assert.Equal(t, "Producto p-ok", r.ProductName)

	_, err = reviews.Create(ctx, "p-ok", "buyer", dto.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	res, err := reviews.ListForProduct(ctx, "p-ok", page(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pagination.Total)

	moderation := NewReviewAdmin(s.Reviews(), 100)
	filtered, err := moderation.List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"rating": "5"}})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Pagination.Total)

	_, err = moderation.List(ctx, listing.Query{Page: 1, Limit: 10, Filters: map[string]string{"rating": "9"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, moderation.Delete(ctx, r.ID))
	_, err = moderation.Get(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakePDF struct{ siteTitle string }

func (f *fakePDF) GenerateOrderPDF(_ context.Context, o *entity.Order, siteTitle string) ([]byte, error) {
	f.siteTitle = siteTitle
	return []byte("%PDF-" + o.ID), nil
}

func TestOrderReceipt(t *testing.T) {
	ctx := context.Background()
	s := seedMarket(t)
	settings := NewSettingUseCase(s.Settings(), nil, 10, 100)
	_, err := settings.Update(ctx, entity.SettingSiteTitle, "Mi Tienda")
	require.NoError(t, err)

	gen := &fakePDF{}
	receipts := NewOrderReceiptUseCase(s.Orders(), settings, gen)

	b, err := receipts.Generate(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-o1", string(b))
	assert.Equal(t, "Mi Tienda", gen.siteTitle)

	_, err = receipts.Generate(ctx, "o-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
