// Package memory implementa los repositorios sobre mapas en memoria protegidos por un
// único mutex. Sirve para STORE_DRIVER=memory y como fake en tests.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// field extrae el valor textual de un campo para filtrar o buscar.
type field[T any] func(*T) string

// listSpec filtros exactos y campos de búsqueda de una entidad.
type listSpec[T any] struct {
	filters map[string]field[T]
	search  []field[T]
}

// matcher traduce el Query a un predicado. Filtros desconocidos son ErrInvalidInput.
func (s listSpec[T]) matcher(q listing.Query) (func(*T) bool, error) {
	for k := range q.Filters {
		if _, ok := s.filters[k]; !ok {
			return nil, fmt.Errorf("%w: filtro %q no admitido", domain.ErrInvalidInput, k)
		}
	}
	needle := strings.ToLower(q.Search)
	return func(v *T) bool {
		for k, want := range q.Filters {
			if s.filters[k](v) != want {
				return false
			}
		}
		if needle == "" {
			return true
		}
		for _, f := range s.search {
			if strings.Contains(strings.ToLower(f(v)), needle) {
				return true
			}
		}
		return false
	}, nil
}

// table filas indexadas por id. No es segura por sí sola: la protege Store.mu.
type table[T any] struct {
	rows      map[string]*T
	id        func(*T) string
	createdAt func(*T) time.Time
}

func newTable[T any](id func(*T) string, createdAt func(*T) time.Time) *table[T] {
	return &table[T]{rows: make(map[string]*T), id: id, createdAt: createdAt}
}

func (t *table[T]) insert(v *T) error {
	id := t.id(v)
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%w: id %s", domain.ErrDuplicate, id)
	}
	cp := *v
	t.rows[id] = &cp
	return nil
}

// get devuelve una copia superficial o nil.
func (t *table[T]) get(id string) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}

// update reemplaza la fila por una copia modificada; las instantáneas de Store no cambian.
func (t *table[T]) update(id string, fn func(*T)) bool {
	v, ok := t.rows[id]
	if !ok {
		return false
	}
	cp := *v
	fn(&cp)
	t.rows[id] = &cp
	return true
}

func (t *table[T]) snapshot() map[string]*T {
	out := make(map[string]*T, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) find(match func(*T) bool) *T {
	for _, v := range t.rows {
		if match(v) {
			cp := *v
			return &cp
		}
	}
	return nil
}

func (t *table[T]) all(match func(*T) bool) []*T {
	var out []*T
	for _, v := range t.rows {
		if match == nil || match(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out
}

// page ordena por created_at DESC, id DESC y recorta la página pedida.
func (t *table[T]) page(q listing.Query, match func(*T) bool) ([]*T, int) {
	rows := t.all(match)
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.createdAt(rows[i]), t.createdAt(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return t.id(rows[i]) > t.id(rows[j])
	})
	total := len(rows)
	start := q.Offset()
	if start >= total {
		return []*T{}, total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return rows[start:end], total
}
