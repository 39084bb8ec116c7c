// Package feed genera el feed RSS 2.0 de productos aprobados con los atributos g: de Google Merchant.
package feed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

const googleNS = "http://base.google.com/ns/1.0"

// Channel datos del canal RSS.
type Channel struct {
	Title       string
	Link        string // URL pública de la tienda, sin barra final
	Description string
}

// Products construye el documento RSS. Solo incluye productos aprobados.
func Products(ch Channel, products []*entity.Product, generated time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", googleNS)

	c := rss.CreateElement("channel")
	c.CreateElement("title").SetText(ch.Title)
	c.CreateElement("link").SetText(ch.Link)
	c.CreateElement("description").SetText(ch.Description)
	c.CreateElement("lastBuildDate").SetText(generated.UTC().Format(time.RFC1123Z))

	for _, p := range products {
		if p.Status != entity.ProductApproved {
			continue
		}
		link := fmt.Sprintf("%s/products/%s", ch.Link, p.ID)
		it := c.CreateElement("item")
		it.CreateElement("title").SetText(p.Name)
		it.CreateElement("link").SetText(link)
		it.CreateElement("description").SetText(p.Description)
		guid := it.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(p.ID)
		it.CreateElement("pubDate").SetText(p.CreatedAt.UTC().Format(time.RFC1123Z))

		it.CreateElement("g:id").SetText(p.ID)
		it.CreateElement("g:price").SetText(p.Price.StringFixed(2) + " COP")
		it.CreateElement("g:availability").SetText(availability(p.Stock))
		it.CreateElement("g:condition").SetText("new")
		if p.Category != "" {
			it.CreateElement("g:product_type").SetText(p.Category)
		}
		if p.SellerName != "" {
			it.CreateElement("g:brand").SetText(p.SellerName)
		}
		it.CreateElement("g:quantity").SetText(strconv.Itoa(p.Stock))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func availability(stock int) string {
	if stock > 0 {
		return "in_stock"
	}
	return "out_of_stock"
}
