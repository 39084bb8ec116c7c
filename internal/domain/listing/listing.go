// Package listing define los parámetros de consulta paginada comunes a todos los recursos.
package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// FilterAll valor de filtro equivalente a "sin filtro".
const FilterAll = "all"

// Query página, búsqueda libre y filtros exactos por campo.
// Page es 1-indexado.
type Query struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Normalize recorta la búsqueda y descarta filtros vacíos o "all".
func (q Query) Normalize() Query {
	out := Query{Page: q.Page, Limit: q.Limit, Search: strings.TrimSpace(q.Search)}
	for k, v := range q.Filters {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, FilterAll) {
			continue
		}
		if out.Filters == nil {
			out.Filters = make(map[string]string, len(q.Filters))
		}
		out.Filters[k] = v
	}
	return out
}

// Validate rechaza page < 1, limit < 1 y limit > maxLimit. No corrige valores.
func (q Query) Validate(maxLimit int) error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page debe ser >= 1", domain.ErrInvalidInput)
	}
	if q.Limit < 1 || q.Limit > maxLimit {
		return fmt.Errorf("%w: limit debe estar entre 1 y %d", domain.ErrInvalidInput, maxLimit)
	}
	return nil
}

// Offset filas a saltar para la página actual.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Filter devuelve el valor del filtro field, si existe.
func (q Query) Filter(field string) (string, bool) {
	v, ok := q.Filters[field]
	return v, ok
}

// With devuelve una copia con el filtro field=value añadido.
func (q Query) With(field, value string) Query {
	f := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		f[k] = v
	}
	f[field] = value
	q.Filters = f
	return q
}

// Parse construye un Query desde parámetros de query string.
// page y limit ausentes toman 1 y defaultLimit; valores no numéricos son ErrInvalidInput.
// Solo se leen como filtros las claves de filterFields.
func Parse(params map[string]string, defaultLimit int, filterFields []string) (Query, error) {
	q := Query{Page: 1, Limit: defaultLimit, Search: params["search"]}

	var err error
	if raw := strings.TrimSpace(params["page"]); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			return Query{}, fmt.Errorf("%w: page no es numérico", domain.ErrInvalidInput)
		}
	}
	if raw := strings.TrimSpace(params["limit"]); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil {
			return Query{}, fmt.Errorf("%w: limit no es numérico", domain.ErrInvalidInput)
		}
	}
	for _, f := range filterFields {
		if v, ok := params[f]; ok {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[f] = v
		}
	}
	return q.Normalize(), nil
}

// Pagination metadatos de página que acompañan a cada listado.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula totalPages = ceil(total/limit).
func NewPagination(q Query, total int) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return Pagination{Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages}
}
