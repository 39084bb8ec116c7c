package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
)

// OrderHandler endpoints de pedidos que no cubre el recurso genérico.
type OrderHandler struct {
	receipts *usecase.OrderReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(receipts *usecase.OrderReceiptUseCase) *OrderHandler {
	return &OrderHandler{receipts: receipts}
}

// ReceiptPDF godoc
// @Summary      Comprobante PDF del pedido
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/pdf [get]
func (h *OrderHandler) ReceiptPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.receipts.Generate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%s.pdf"`, id))
	return c.Send(pdf)
}
