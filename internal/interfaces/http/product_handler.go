package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
)

// catalogFilters filtros exactos del catálogo público.
var catalogFilters = []string{"category"}

// reviewFilters filtros de las reseñas de un producto.
var reviewFilters = []string{"rating"}

// ProductHandler catálogo público y reseñas.
type ProductHandler struct {
	catalog *usecase.CatalogUseCase
	reviews *usecase.ReviewUseCase
	pages   pageSizer
}

// NewProductHandler construye el handler.
func NewProductHandler(catalog *usecase.CatalogUseCase, reviews *usecase.ReviewUseCase, pages pageSizer) *ProductHandler {
	return &ProductHandler{catalog: catalog, reviews: reviews, pages: pages}
}

// List godoc
// @Summary      Listar productos aprobados
// @Tags         products
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Tamaño de página"
// @Param        search    query  string  false  "Nombre o categoría"
// @Param        category  query  string  false  "Categoría exacta"
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := listing.Parse(c.Queries(), h.pages.PageSizeDefault(ctx), catalogFilters)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.catalog.List(ctx, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto aprobado por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListReviews godoc
// @Summary      Reseñas de un producto
// @Tags         products
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        rating  query  int     false  "1..5"
// @Success      200  {object}  dto.PageResponse[dto.ReviewResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reviews [get]
func (h *ProductHandler) ListReviews(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := listing.Parse(c.Queries(), h.pages.PageSizeDefault(ctx), reviewFilters)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reviews.ListForProduct(ctx, c.Params("id"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateReview godoc
// @Summary      Publicar reseña
// @Description  Una reseña por usuario y producto; el comentario se sanitiza.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.CreateReviewRequest  true  "rating, comment"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reviews [post]
func (h *ProductHandler) CreateReview(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.reviews.Create(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
