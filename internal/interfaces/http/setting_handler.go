package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
)

// SettingHandler configuración global del sitio.
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// List godoc
// @Summary      Listar configuración
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SettingResponse
// @Router       /api/admin/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una clave de configuración
// @Description  Claves: maintenance_mode, site_title, contact_email, page_size_default.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string              true  "Clave"
// @Param        body  body  dto.SettingRequest  true  "value"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/settings/{key} [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var in dto.SettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("key"), in.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
