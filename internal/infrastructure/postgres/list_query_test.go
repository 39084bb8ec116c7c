package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

var testList = listSQL{
	columns: "p.id, p.name",
	from:    "products p JOIN users u ON u.id = p.seller_id",
	alias:   "p",
	filters: map[string]string{"status": "p.status", "category": "p.category"},
	search:  []string{"p.name", "u.name"},
}

func TestListSQL_SinFiltros(t *testing.T) {
	var a args
	sel, cnt, err := testList.build(listing.Query{Page: 2, Limit: 10}, &a)
	require.NoError(t, err)
	assert.Equal(t, "SELECT p.id, p.name FROM products p JOIN users u ON u.id = p.seller_id ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2", sel)
	assert.Equal(t, "SELECT COUNT(*) FROM products p JOIN users u ON u.id = p.seller_id", cnt)
	assert.Equal(t, []any{10, 10}, []any(a))
}

func TestListSQL_FiltrosOrdenadosYBusqueda(t *testing.T) {
	var a args
	q := listing.Query{Page: 1, Limit: 5, Search: "50%_off", Filters: map[string]string{"status": "pending", "category": "hogar"}}
	sel, cnt, err := testList.build(q, &a)
	require.NoError(t, err)
	where := " WHERE p.category = $1 AND p.status = $2 AND (p.name ILIKE $3 OR u.name ILIKE $3)"
	assert.Contains(t, sel, where+" ORDER BY")
	assert.Equal(t, "SELECT COUNT(*) FROM products p JOIN users u ON u.id = p.seller_id"+where, cnt)
	assert.Equal(t, []any{"hogar", "pending", `%50\%\_off%`, 5, 0}, []any(a))
}

func TestListSQL_CondicionExtra(t *testing.T) {
	var a args
	extra := "p.seller_id = " + a.add("s1")
	sel, _, err := testList.build(listing.Query{Page: 1, Limit: 5}, &a, extra)
	require.NoError(t, err)
	assert.Contains(t, sel, "WHERE p.seller_id = $1 ORDER BY")
	assert.Contains(t, sel, "LIMIT $2 OFFSET $3")
}

func TestListSQL_FiltroDesconocido(t *testing.T) {
	var a args
	_, _, err := testList.build(listing.Query{Page: 1, Limit: 5, Filters: map[string]string{"color": "rojo"}}, &a)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
}
