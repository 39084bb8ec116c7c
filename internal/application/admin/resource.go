// Package admin implementa el caso de uso genérico de los recursos administrables:
// listar, ver detalle, cambiar estado y eliminar, configurado por un resource.Schema.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// Store lectura paginada y por ID. GetByID devuelve nil, nil si no existe.
type Store[T any] interface {
	List(ctx context.Context, q listing.Query) ([]*T, int, error)
	GetByID(ctx context.Context, id string) (*T, error)
}

// StatusFunc persiste el paso de current a to. actorID es el administrador que lo pide.
// Si el estado guardado ya no es el de current debe devolver domain.ErrStaleStatus.
type StatusFunc[T any] func(ctx context.Context, current *T, to, actorID string) error

// Config describe un recurso concreto.
type Config[T any, R any] struct {
	Schema resource.Schema
	Store  Store[T]

	// ToResponse se usa en listados; ToDetail (opcional) en GET /:id.
	ToResponse func(*T) R
	ToDetail   func(ctx context.Context, item *T) (R, error)

	// Opcionales según el esquema.
	StatusOf     func(*T) string
	UpdateStatus StatusFunc[T]
	Delete       func(ctx context.Context, id string) (bool, error)

	// StatusTopic tópico publicado tras un cambio de estado efectivo.
	StatusTopic string
	Events      ports.EventPublisher
	MaxLimit    int
}

// Resource caso de uso genérico.
type Resource[T any, R any] struct {
	cfg Config[T, R]
	now func() time.Time
}

// New construye el caso de uso. Panics si la configuración es incoherente con el esquema.
func New[T any, R any](cfg Config[T, R]) *Resource[T, R] {
	if cfg.Store == nil || cfg.ToResponse == nil {
		panic("admin: Store y ToResponse son obligatorios para " + cfg.Schema.Name)
	}
	if cfg.Schema.HasStatus() && (cfg.StatusOf == nil || cfg.UpdateStatus == nil) {
		panic("admin: " + cfg.Schema.Name + " declara estado sin StatusOf/UpdateStatus")
	}
	if cfg.Schema.Deletable && cfg.Delete == nil {
		panic("admin: " + cfg.Schema.Name + " declara Deletable sin Delete")
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &Resource[T, R]{cfg: cfg, now: time.Now}
}

// Schema esquema del recurso.
func (r *Resource[T, R]) Schema() resource.Schema { return r.cfg.Schema }

// List valida la consulta y devuelve una página. No corrige page/limit fuera de rango.
func (r *Resource[T, R]) List(ctx context.Context, q listing.Query) (*dto.PageResponse[R], error) {
	q = q.Normalize()
	if err := q.Validate(r.cfg.MaxLimit); err != nil {
		return nil, err
	}
	if err := r.cfg.Schema.ValidateFilters(q.Filters); err != nil {
		return nil, err
	}
	items, total, err := r.cfg.Store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", r.cfg.Schema.Name, err)
	}
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, r.cfg.ToResponse(it))
	}
	return dto.NewPage(out, q, total), nil
}

// Get devuelve el detalle o ErrNotFound.
func (r *Resource[T, R]) Get(ctx context.Context, id string) (R, error) {
	var zero R
	item, err := r.load(ctx, id)
	if err != nil {
		return zero, err
	}
	if r.cfg.ToDetail != nil {
		return r.cfg.ToDetail(ctx, item)
	}
	return r.cfg.ToResponse(item), nil
}

// statusAttempts lecturas máximas de UpdateStatus ante escrituras concurrentes.
const statusAttempts = 3

// UpdateStatus aplica la tabla de transiciones del esquema.
// Repetir el estado actual no escribe ni publica eventos. La escritura exige que
// el estado siga siendo el leído; si cambió, se relee y se valida de nuevo.
func (r *Resource[T, R]) UpdateStatus(ctx context.Context, id, status, actorID string) (R, error) {
	var zero R
	s := r.cfg.Schema
	if !s.HasStatus() {
		return zero, fmt.Errorf("%w: %s no admite cambio de estado", domain.ErrInvalidInput, s.Name)
	}
	if !s.ValidStatus(status) {
		return zero, fmt.Errorf("%w: %s %q no admitido", domain.ErrInvalidInput, s.StatusField, status)
	}
	var from string
	for attempt := 1; ; attempt++ {
		item, err := r.load(ctx, id)
		if err != nil {
			return zero, err
		}
		from = r.cfg.StatusOf(item)
		if from == status {
			return r.Get(ctx, id)
		}
		if !s.CanTransition(from, status) {
			return zero, fmt.Errorf("%w: %s %s -> %s", domain.ErrInvalidTransition, s.Name, from, status)
		}
		err = r.cfg.UpdateStatus(ctx, item, status, actorID)
		if err == nil {
			break
		}
		// otro cambio ganó entre la lectura y la escritura: se relee y se vuelve a validar
		if errors.Is(err, domain.ErrStaleStatus) && attempt < statusAttempts {
			continue
		}
		return zero, fmt.Errorf("actualizar %s de %s: %w", s.StatusField, s.Name, err)
	}
	if r.cfg.Events != nil && r.cfg.StatusTopic != "" {
		// el cambio ya está confirmado; un fallo del broker solo se registra
		if err := r.cfg.Events.Publish(ctx, r.cfg.StatusTopic, id, ports.StatusChangedEvent{
			Resource:   s.Name,
			ID:         id,
			From:       from,
			To:         status,
			ChangedBy:  actorID,
			OccurredAt: r.now().UTC(),
		}); err != nil {
			log.Warn().Err(err).Str("topic", r.cfg.StatusTopic).Str("id", id).Msg("publicar cambio de estado")
		}
	}
	return r.Get(ctx, id)
}

// Delete elimina el recurso o devuelve ErrNotFound si no existía.
func (r *Resource[T, R]) Delete(ctx context.Context, id string) error {
	if !r.cfg.Schema.Deletable {
		return fmt.Errorf("%w: %s no admite eliminación", domain.ErrInvalidInput, r.cfg.Schema.Name)
	}
	existed, err := r.cfg.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar %s: %w", r.cfg.Schema.Name, err)
	}
	if !existed {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, r.cfg.Schema.Name, id)
	}
	return nil
}

func (r *Resource[T, R]) load(ctx context.Context, id string) (*T, error) {
	item, err := r.cfg.Store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s: %w", r.cfg.Schema.Name, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, r.cfg.Schema.Name, id)
	}
	return item, nil
}
