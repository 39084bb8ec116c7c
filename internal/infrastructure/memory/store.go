package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// Store agrupa todas las tablas en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         *table[entity.User]
	products      *table[entity.Product]
	orders        *table[entity.Order]
	orderHistory  *table[entity.OrderStatusChange]
	reviews       *table[entity.Review]
	tickets       *table[entity.Ticket]
	responses     *table[entity.TicketResponse]
	notifications *table[entity.Notification]
	settings      *table[entity.Setting]
	resets        *table[entity.PasswordReset]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:         newTable(func(u *entity.User) string { return u.ID }, func(u *entity.User) time.Time { return u.CreatedAt }),
		products:      newTable(func(p *entity.Product) string { return p.ID }, func(p *entity.Product) time.Time { return p.CreatedAt }),
		orders:        newTable(func(o *entity.Order) string { return o.ID }, func(o *entity.Order) time.Time { return o.CreatedAt }),
		orderHistory:  newTable(func(h *entity.OrderStatusChange) string { return h.ID }, func(h *entity.OrderStatusChange) time.Time { return h.CreatedAt }),
		reviews:       newTable(func(r *entity.Review) string { return r.ID }, func(r *entity.Review) time.Time { return r.CreatedAt }),
		tickets:       newTable(func(t *entity.Ticket) string { return t.ID }, func(t *entity.Ticket) time.Time { return t.CreatedAt }),
		responses:     newTable(func(r *entity.TicketResponse) string { return r.ID }, func(r *entity.TicketResponse) time.Time { return r.CreatedAt }),
		notifications: newTable(func(n *entity.Notification) string { return n.ID }, func(n *entity.Notification) time.Time { return n.CreatedAt }),
		settings:      newTable(func(s *entity.Setting) string { return s.Key }, func(s *entity.Setting) time.Time { return s.UpdatedAt }),
		resets:        newTable(func(p *entity.PasswordReset) string { return p.ID }, func(p *entity.PasswordReset) time.Time { return p.CreatedAt }),
	}
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Products() *ProductRepo           { return &ProductRepo{s: s} }
func (s *Store) Orders() *OrderRepo               { return &OrderRepo{s: s} }
func (s *Store) Reviews() *ReviewRepo             { return &ReviewRepo{s: s} }
func (s *Store) Tickets() *TicketRepo             { return &TicketRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }
func (s *Store) Settings() *SettingRepo           { return &SettingRepo{s: s} }
func (s *Store) Resets() *PasswordResetRepo       { return &PasswordResetRepo{s: s} }
func (s *Store) Analytics() *AnalyticsRepo        { return &AnalyticsRepo{s: s} }

// Repos todos los repositorios del almacén.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Users:    s.Users(),
		Products: s.Products(),
		Orders:   s.Orders(),
		Tickets:  s.Tickets(),
		Resets:   s.Resets(),
	}
}

// TxRunner serializa las transacciones y restaura una instantánea si fn falla.
type TxRunner struct{ s *Store }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner devuelve el runner transaccional del almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn; si devuelve error, las tablas vuelven al estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	if err := fn(r.s.Repos()); err != nil {
		r.s.restore(snap)
		return err
	}
	return ctx.Err()
}

type storeSnapshot struct {
	users        map[string]*entity.User
	products     map[string]*entity.Product
	orders       map[string]*entity.Order
	orderHistory map[string]*entity.OrderStatusChange
	reviews      map[string]*entity.Review
	tickets      map[string]*entity.Ticket
	responses    map[string]*entity.TicketResponse
	resets       map[string]*entity.PasswordReset
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeSnapshot{
		users:        s.users.snapshot(),
		products:     s.products.snapshot(),
		orders:       s.orders.snapshot(),
		orderHistory: s.orderHistory.snapshot(),
		reviews:      s.reviews.snapshot(),
		tickets:      s.tickets.snapshot(),
		responses:    s.responses.snapshot(),
		resets:       s.resets.snapshot(),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.rows = snap.users
	s.products.rows = snap.products
	s.orders.rows = snap.orders
	s.orderHistory.rows = snap.orderHistory
	s.reviews.rows = snap.reviews
	s.tickets.rows = snap.tickets
	s.responses.rows = snap.responses
	s.resets.rows = snap.resets
}
