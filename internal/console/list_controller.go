package console

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// DefaultDebounce ventana en la que una ráfaga de teclas se colapsa en una sola búsqueda.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher obtiene una página del recurso.
type Fetcher[T any] func(ctx context.Context, q listing.Query) (*dto.PageResponse[T], error)

// Status estado del listado.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "idle"
}

// ListState instantánea del listado. Items conserva la última página buena aunque Status sea error.
type ListState[T any] struct {
	Status      Status
	Items       []T
	Pagination  listing.Pagination
	Query       listing.Query
	SearchInput string
	Err         error
}

// ListOptions configuración del controlador.
type ListOptions[T any] struct {
	Limit    int
	Debounce time.Duration
	// OnChange recibe cada cambio de estado. Se invoca fuera del lock del controlador
	// pero serializado; no debe llamar al controlador de forma síncrona.
	OnChange func(ListState[T])
}

// ListController máquina de estados de un listado paginado con filtros y búsqueda.
// Cada petición lleva un número de secuencia; solo la última emitida actualiza el estado.
type ListController[T any] struct {
	fetch    Fetcher[T]
	debounce time.Duration
	onChange func(ListState[T])

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     ListState[T]
	seq       uint64
	searchGen uint64
	timer     *time.Timer
	loaded    bool
	closed    bool
	version   uint64

	emitMu  sync.Mutex
	emitted uint64
}

// NewListController construye el controlador en estado idle. No pide datos hasta Load.
func NewListController[T any](fetch Fetcher[T], opts ListOptions[T]) *ListController[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ListController[T]{
		fetch:    fetch,
		debounce: opts.Debounce,
		onChange: opts.OnChange,
		ctx:      ctx,
		cancel:   cancel,
		state:    ListState[T]{Query: listing.Query{Page: 1, Limit: opts.Limit}},
	}
}

// State copia del estado actual.
func (l *ListController[T]) State() ListState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Load pide la página actual.
func (l *ListController[T]) Load() {
	l.mu.Lock()
	l.issueLocked()
	l.unlockAndEmit()
}

// Refresh vuelve a pedir la página actual con la misma consulta.
func (l *ListController[T]) Refresh() { l.Load() }

// SetPage cambia de página. page < 1 se ignora.
func (l *ListController[T]) SetPage(page int) {
	if page < 1 {
		return
	}
	l.mu.Lock()
	l.state.Query.Page = page
	l.issueLocked()
	l.unlockAndEmit()
}

// SetFilter fija field=value y vuelve a la página 1. Vacío o "all" quita el filtro.
func (l *ListController[T]) SetFilter(field, value string) {
	l.mu.Lock()
	filters := maps.Clone(l.state.Query.Filters)
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, listing.FilterAll) {
		delete(filters, field)
	} else {
		if filters == nil {
			filters = map[string]string{}
		}
		filters[field] = value
	}
	l.state.Query.Filters = filters
	l.state.Query.Page = 1
	l.issueLocked()
	l.unlockAndEmit()
}

// TypeSearch registra el texto escrito. La búsqueda se envía cuando pasa la ventana
// de debounce sin nuevas teclas, con el último valor.
func (l *ListController[T]) TypeSearch(text string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.state.SearchInput = text
	l.searchGen++
	gen := l.searchGen
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		if l.closed || gen != l.searchGen {
			l.mu.Unlock()
			return
		}
		l.applySearchLocked()
		l.unlockAndEmit()
	})
	l.unlockAndEmit()
}

// SubmitSearch envía la búsqueda escrita sin esperar el debounce.
func (l *ListController[T]) SubmitSearch() {
	l.mu.Lock()
	l.searchGen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.applySearchLocked()
	l.unlockAndEmit()
}

// PatchItem aplica patch a los elementos que cumplen match sin ir al servidor.
// Devuelve si algún elemento cambió.
func (l *ListController[T]) PatchItem(match func(T) bool, patch func(*T)) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	found := false
	items := slices.Clone(l.state.Items)
	for i := range items {
		if match(items[i]) {
			patch(&items[i])
			found = true
		}
	}
	if found {
		l.state.Items = items
	}
	l.unlockAndEmit()
	return found
}

// DismissError descarta el mensaje de error y deja visible la última página buena.
func (l *ListController[T]) DismissError() {
	l.mu.Lock()
	if l.state.Status == StatusError {
		l.state.Err = nil
		if l.loaded {
			l.state.Status = StatusSuccess
		} else {
			l.state.Status = StatusIdle
		}
	}
	l.unlockAndEmit()
}

// Close cancela las peticiones en curso. Respuestas y temporizadores posteriores no tienen efecto.
func (l *ListController[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
	}
	l.cancel()
}

func (l *ListController[T]) applySearchLocked() {
	search := strings.TrimSpace(l.state.SearchInput)
	if search == l.state.Query.Search && l.loaded {
		return
	}
	l.state.Query.Search = search
	l.state.Query.Page = 1
	l.issueLocked()
}

// issueLocked emite una petición con la consulta actual. Requiere l.mu.
func (l *ListController[T]) issueLocked() {
	if l.closed {
		return
	}
	l.seq++
	seq := l.seq
	q := l.state.Query
	q.Filters = maps.Clone(q.Filters)
	l.state.Status = StatusLoading
	l.state.Err = nil
	go l.run(seq, q)
}

func (l *ListController[T]) run(seq uint64, q listing.Query) {
	page, err := l.fetch(l.ctx, q)

	l.mu.Lock()
	if l.closed || seq != l.seq {
		l.mu.Unlock()
		log.Debug().Uint64("seq", seq).Msg("respuesta de listado descartada")
		return
	}
	switch {
	case err == nil:
		l.state.Items = page.Items
		l.state.Pagination = page.Pagination
		l.state.Status = StatusSuccess
		l.loaded = true
	case errors.Is(err, domain.ErrNotFound) && q.Page > 1:
		// la página dejó de existir: se vuelve a la primera
		l.state.Query.Page = 1
		l.issueLocked()
	default:
		l.state.Status = StatusError
		l.state.Err = err
	}
	l.unlockAndEmit()
}

func (l *ListController[T]) snapshotLocked() ListState[T] {
	s := l.state
	s.Items = slices.Clone(s.Items)
	s.Query.Filters = maps.Clone(s.Query.Filters)
	return s
}

// unlockAndEmit libera l.mu y notifica el estado. Una instantánea más vieja que la
// última notificada se descarta, así el orden de OnChange sigue al de los cambios.
func (l *ListController[T]) unlockAndEmit() {
	if l.onChange == nil || l.closed {
		l.mu.Unlock()
		return
	}
	l.version++
	v := l.version
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.emitMu.Lock()
	defer l.emitMu.Unlock()
	if v <= l.emitted {
		return
	}
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return
	}
	l.emitted = v
	l.onChange(snap)
}
