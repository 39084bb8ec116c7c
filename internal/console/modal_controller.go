package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Phase fase del modal.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	}
	return "closed"
}

// ErrModalBusy Open sobre un modal ya abierto o Confirm fuera de la fase open.
var ErrModalBusy = fmt.Errorf("%w: el modal está ocupado", domain.ErrConflict)

// Action mutación confirmada sobre el objetivo del modal.
type Action[T any] struct {
	Name string
	Run  func(ctx context.Context, target T) error
	// Patch, si no es nil, se aplica localmente al elemento en lugar de recargar el listado.
	// Recibe el objetivo capturado en Open; el resultado no debe depender del valor previo de it.
	Patch func(target T, it *T)
}

// ModalState instantánea del modal.
type ModalState[T any] struct {
	Phase  Phase
	Target T
	Action string
	Err    error
}

// listTarget lo que el modal necesita del listado. Lo implementa *ListController.
type listTarget[T any] interface {
	Refresh()
	PatchItem(match func(T) bool, patch func(*T)) bool
}

// ModalController flujo confirmar y después mutar, común a todas las pantallas.
// El objetivo se captura en Open y no cambia hasta cerrar.
type ModalController[T any] struct {
	list listTarget[T]
	key  func(T) string

	mu     sync.Mutex
	state  ModalState[T]
	action Action[T]
}

// NewModalController construye el modal. key identifica un elemento del listado.
func NewModalController[T any](list listTarget[T], key func(T) string) *ModalController[T] {
	return &ModalController[T]{list: list, key: key}
}

// State copia del estado actual.
func (m *ModalController[T]) State() ModalState[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open abre el modal sobre target para la acción indicada.
func (m *ModalController[T]) Open(target T, action Action[T]) error {
	if action.Run == nil {
		return fmt.Errorf("%w: acción %q sin Run", domain.ErrInvalidInput, action.Name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase != PhaseClosed {
		return ErrModalBusy
	}
	m.state = ModalState[T]{Phase: PhaseOpen, Target: target, Action: action.Name}
	m.action = action
	return nil
}

// Cancel cierra el modal. Durante el envío no tiene efecto y devuelve false.
func (m *ModalController[T]) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase == PhaseSubmitting {
		return false
	}
	m.reset()
	return true
}

// Confirm ejecuta la acción sobre el objetivo capturado. Bloquea hasta la respuesta.
//
// Resultado:
//   - éxito → closed; aplica Patch o recarga el listado.
//   - ErrNotFound → closed y recarga (el elemento ya no existe).
//   - otro error → open con Err; se puede reintentar o cancelar.
func (m *ModalController[T]) Confirm(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Phase != PhaseOpen {
		m.mu.Unlock()
		return ErrModalBusy
	}
	m.state.Phase = PhaseSubmitting
	m.state.Err = nil
	target, action := m.state.Target, m.action
	m.mu.Unlock()

	err := action.Run(ctx, target)

	m.mu.Lock()
	switch {
	case err == nil:
		m.reset()
		m.mu.Unlock()
		if action.Patch != nil {
			id := m.key(target)
			patch := func(it *T) { action.Patch(target, it) }
			if !m.list.PatchItem(func(it T) bool { return m.key(it) == id }, patch) {
				m.list.Refresh()
			}
		} else {
			m.list.Refresh()
		}
		return nil
	case errors.Is(err, domain.ErrNotFound):
		m.reset()
		m.mu.Unlock()
		log.Debug().Str("action", action.Name).Str("id", m.key(target)).Msg("objetivo del modal ya no existe")
		m.list.Refresh()
		return err
	default:
		m.state.Phase = PhaseOpen
		m.state.Err = err
		m.mu.Unlock()
		return err
	}
}

func (m *ModalController[T]) reset() {
	m.state = ModalState[T]{}
	m.action = Action[T]{}
}
