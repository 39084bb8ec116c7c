package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Marketplace-api/internal/application/analytics"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// DashboardHandler maneja los endpoints del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los contadores del marketplace y los ingresos del mes en curso.
// GET /api/admin/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (users_by_role, pending_products, orders_by_status,
// open_tickets, unread_notifications, month_delivered_revenue, date_label).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Resources godoc
// @Summary      Esquemas de los recursos administrables
// @Description  Columnas, filtros y estados que usa la consola para construir sus tablas.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  resource.Schema
// @Router       /api/admin/resources [get]
func (h *DashboardHandler) Resources(c *fiber.Ctx) error {
	return c.JSON(resource.All())
}
