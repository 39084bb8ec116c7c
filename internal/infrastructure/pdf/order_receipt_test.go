package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0,00",
		"999.5":     "$999,50",
		"1000":      "$1.000,00",
		"1234567.8": "$1.234.567,80",
		"-25000":    "-$25.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateOrderPDF(t *testing.T) {
	order := &entity.Order{
		ID: "6f1c2b9e-0000-4000-8000-000000000001", BuyerName: "Ana", SellerName: "Tienda Sol",
		Status: entity.OrderShipped, Total: decimal.RequireFromString("35.00"),
		CreatedAt: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Taza", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: "p2", ProductName: "Plato", Quantity: 1, Price: decimal.RequireFromString("15.00")},
		},
	}
	b, err := NewOrderReceiptGenerator().GenerateOrderPDF(context.Background(), order, "Marketplace")
	require.NoError(t, err)
	require.Greater(t, len(b), 100)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestShortIDYEstado(t *testing.T) {
	assert.Equal(t, "6F1C2B9E", shortID("6f1c2b9e-0000"))
	assert.Equal(t, "ABC", shortID("abc"))
	assert.Equal(t, "Enviado", statusLabel(entity.OrderShipped))
	assert.Equal(t, "raro", statusLabel("raro"))
}
