package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// userLookup carga la cuenta del autor de una respuesta. Lo implementa *auth.AuthUseCase.
type userLookup interface {
	User(ctx context.Context, userID string) (*entity.User, error)
}

// TicketHandler tickets de soporte: alta por usuarios y respuestas en el hilo.
type TicketHandler struct {
	uc    *usecase.TicketUseCase
	users userLookup
	pages pageSizer
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *usecase.TicketUseCase, users userLookup, pages pageSizer) *TicketHandler {
	return &TicketHandler{uc: uc, users: users, pages: pages}
}

// Create godoc
// @Summary      Abrir ticket
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "subject, category, message"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Tickets del usuario autenticado
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        status  query  string  false  "open | pending | resolved | closed"
// @Success      200     {object}  dto.PageResponse[dto.TicketResponse]
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) ListMine(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := listing.Parse(c.Queries(), h.pages.PageSizeDefault(ctx), resource.Tickets.FilterFields())
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMine(ctx, GetUserID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMine godoc
// @Summary      Detalle de un ticket propio con su hilo
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reply godoc
// @Summary      Responder un ticket
// @Description  Un administrador pasa el ticket abierto a pending; el dueño reabre un ticket pending o resolved. Cerrado: 409.
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ticket"
// @Param        body  body  dto.TicketReplyRequest  true  "message"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/responses [post]
// @Router       /api/admin/tickets/{id}/responses [post]
func (h *TicketHandler) Reply(c *fiber.Ctx) error {
	var in dto.TicketReplyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx := c.UserContext()
	author, err := h.users.User(ctx, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Reply(ctx, c.Params("id"), author, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
