package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// pageSizer tamaño de página por defecto configurable (setting page_size_default).
type pageSizer interface {
	PageSizeDefault(ctx context.Context) int
}

// ResourceHandler handler genérico de un recurso administrable.
// Las rutas que registra dependen del esquema del recurso.
type ResourceHandler[T any, R any] struct {
	uc    *admin.Resource[T, R]
	pages pageSizer
}

// NewResourceHandler construye el handler.
func NewResourceHandler[T any, R any](uc *admin.Resource[T, R], pages pageSizer) *ResourceHandler[T, R] {
	return &ResourceHandler[T, R]{uc: uc, pages: pages}
}

// Mount registra las rutas del recurso bajo g (ya protegido por el middleware de admin).
func (h *ResourceHandler[T, R]) Mount(g fiber.Router) {
	s := h.uc.Schema()
	r := g.Group(s.Path)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	if s.HasStatus() {
		r.Put("/:id/status", h.UpdateStatus)
	}
	if s.Deletable {
		r.Delete("/:id", h.Delete)
	}
}

// List godoc
// @Summary      Listar recurso
// @Description  Paginado con búsqueda libre y filtros exactos del esquema. page/limit fuera de rango: 400.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        resource  path   string  true   "users | products | orders | reviews | tickets | notifications"
// @Param        page      query  int     false  "Página (1-indexada)"  default(1)
// @Param        limit     query  int     false  "Tamaño de página"
// @Param        search    query  string  false  "Búsqueda sin distinguir mayúsculas"
// @Success      200  {object}  dto.PageResponse[any]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource} [get]
func (h *ResourceHandler[T, R]) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := listing.Parse(c.Queries(), h.pages.PageSizeDefault(ctx), h.uc.Schema().FilterFields())
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(ctx, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un recurso
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "Nombre del recurso"
// @Param        id        path  string  true  "ID"
// @Success      200  {object}  any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource}/{id} [get]
func (h *ResourceHandler[T, R]) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Description  Aplica la tabla de transiciones del recurso. Repetir el estado actual no tiene efecto.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        resource  path  string             true  "users | products | orders | tickets"
// @Param        id        path  string             true  "ID"
// @Param        body      body  dto.StatusRequest  true  "Nuevo estado (rol en users)"
// @Success      200  {object}  any
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource}/{id}/status [put]
func (h *ResourceHandler[T, R]) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recurso
// @Tags         admin
// @Security     Bearer
// @Param        resource  path  string  true  "users | products | reviews | tickets | notifications"
// @Param        id        path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource}/{id} [delete]
func (h *ResourceHandler[T, R]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
