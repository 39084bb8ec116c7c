package feed

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func TestProducts(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	products := []*entity.Product{
		{ID: "p1", Name: "Café & Té", Category: "bebidas", SellerName: "Finca", Price: decimal.RequireFromString("12.5"), Stock: 3, Status: entity.ProductApproved, CreatedAt: at},
		{ID: "p2", Name: "Oculto", Price: decimal.NewFromInt(1), Status: entity.ProductPending, CreatedAt: at},
		{ID: "p3", Name: "Agotado", Price: decimal.NewFromInt(7), Stock: 0, Status: entity.ProductApproved, CreatedAt: at},
	}

	out, err := Products(Channel{Title: "Marketplace", Link: "https://shop.test", Description: "Catálogo"}, products, at)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Café & Té", first.SelectElement("title").Text())
	assert.Equal(t, "https://shop.test/products/p1", first.SelectElement("link").Text())
	assert.Equal(t, "12.50 COP", first.SelectElement("g:price").Text())
	assert.Equal(t, "in_stock", first.SelectElement("g:availability").Text())
	assert.Equal(t, "out_of_stock", items[1].SelectElement("g:availability").Text())
	assert.Equal(t, "2.0", doc.Root().SelectAttrValue("version", ""))
}
