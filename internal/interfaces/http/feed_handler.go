package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/feed"
)

type settingReader interface {
	Value(ctx context.Context, key string) string
}

// FeedHandler feed RSS del catálogo para agregadores y Google Merchant.
type FeedHandler struct {
	catalog  *usecase.CatalogUseCase
	settings settingReader
	siteURL  string
}

// NewFeedHandler construye el handler. siteURL es la URL pública de la tienda.
func NewFeedHandler(catalog *usecase.CatalogUseCase, settings settingReader, siteURL string) *FeedHandler {
	return &FeedHandler{catalog: catalog, settings: settings, siteURL: strings.TrimRight(siteURL, "/")}
}

// Products godoc
// @Summary      Feed RSS de productos aprobados
// @Tags         products
// @Produce      xml
// @Success      200  {string}  string
// @Router       /api/feeds/products.xml [get]
func (h *FeedHandler) Products(c *fiber.Ctx) error {
	ctx := c.UserContext()
	products, err := h.catalog.All(ctx)
	if err != nil {
		return respondError(c, err)
	}
	title := h.settings.Value(ctx, entity.SettingSiteTitle)
	body, err := feed.Products(feed.Channel{
		Title:       title,
		Link:        h.siteURL,
		Description: "Productos de " + title,
	}, products, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(body)
}
