package postgres

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// args acumula parámetros posicionales y devuelve el placeholder correspondiente.
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// listSQL describe cómo listar una tabla: columnas, joins, filtros exactos y campos de búsqueda.
// Las expresiones de filtro se comparan como texto (p. ej. "r.rating::text").
type listSQL struct {
	columns string
	from    string
	alias   string
	filters map[string]string
	search  []string
}

// escapeLike escapa los comodines de LIKE para buscar el texto literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// build genera el SELECT paginado y el COUNT con los mismos filtros.
// extra son condiciones adicionales ya escritas con placeholders de a.
func (l listSQL) build(q listing.Query, a *args, extra ...string) (selectSQL, countSQL string, err error) {
	where := append([]string(nil), extra...)

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		if _, ok := l.filters[k]; !ok {
			return "", "", fmt.Errorf("%w: filtro %q no admitido", domain.ErrInvalidInput, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		where = append(where, fmt.Sprintf("%s = %s", l.filters[k], a.add(q.Filters[k])))
	}

	if q.Search != "" && len(l.search) > 0 {
		p := a.add("%" + escapeLike(q.Search) + "%")
		ors := make([]string, len(l.search))
		for i, f := range l.search {
			ors[i] = fmt.Sprintf("%s ILIKE %s", f, p)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}
	countSQL = "SELECT COUNT(*) FROM " + l.from + cond
	selectSQL = fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s.created_at DESC, %s.id DESC LIMIT %s OFFSET %s",
		l.columns, l.from, cond, l.alias, l.alias, a.add(q.Limit), a.add(q.Offset()))
	return selectSQL, countSQL, nil
}

// run ejecuta el COUNT y el SELECT. El COUNT recibe los parámetros sin LIMIT ni OFFSET.
// Quien llama cierra rows.
func (l listSQL) run(ctx context.Context, db Querier, op string, q listing.Query, a args, extra ...string) (pgx.Rows, int, error) {
	sel, cnt, err := l.build(q, &a, extra...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := db.QueryRow(ctx, cnt, a[:len(a)-2]...).Scan(&total); err != nil {
		return nil, 0, storeErr(op+" count", err)
	}
	rows, err := db.Query(ctx, sel, a...)
	if err != nil {
		return nil, 0, storeErr(op, err)
	}
	return rows, total, nil
}
