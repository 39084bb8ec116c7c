package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// NotificationHandler alta y lectura de notificaciones.
type NotificationHandler struct {
	uc    *usecase.NotificationUseCase
	pages pageSizer
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase, pages pageSizer) *NotificationHandler {
	return &NotificationHandler{uc: uc, pages: pages}
}

// Create godoc
// @Summary      Crear notificación
// @Description  title y message requeridos; target_all o target_user_ids, no ambos. El mensaje se sanitiza.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "Notificación"
// @Success      201   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetRead godoc
// @Summary      Marcar notificación como leída o no leída
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la notificación"
// @Param        body  body  dto.ReadRequest  true  "is_read"
// @Success      200   {object}  dto.NotificationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/notifications/{id}/read [put]
func (h *NotificationHandler) SetRead(c *fiber.Ctx) error {
	var in dto.ReadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetRead(c.UserContext(), c.Params("id"), in.IsRead)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Notificaciones del usuario autenticado
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño de página"
// @Success      200    {object}  dto.PageResponse[dto.NotificationResponse]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := listing.Parse(c.Queries(), h.pages.PageSizeDefault(ctx), resource.Notifications.FilterFields())
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListForUser(ctx, GetUserID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
