package ports

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// OrderPDFGenerator genera el comprobante de un pedido. Cualquier adaptador (Maroto, mock)
// debe implementar esta interfaz.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, siteTitle string) ([]byte, error)
}
