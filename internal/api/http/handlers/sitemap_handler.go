package handlers

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
)

// SitemapHandler renders sitemap.xml from the active catalog.
type SitemapHandler struct {
	catalog *service.CatalogService
	baseURL string
}

// NewSitemapHandler constructs handler.
func NewSitemapHandler(catalog *service.CatalogService, baseURL string) *SitemapHandler {
	return &SitemapHandler{catalog: catalog, baseURL: strings.TrimRight(baseURL, "/")}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Render GET /sitemap.xml.
func (h *SitemapHandler) Render(c *fiber.Ctx) error {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + "/"})

	categories, err := h.catalog.ListCategories(c.Context(), true)
	if err != nil {
		return err
	}
	for i := range categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.baseURL + "/categories/" + categories[i].Slug,
			LastMod: categories[i].UpdatedAt.Format(time.DateOnly),
		})
	}

	subCategories, err := h.catalog.ListSubCategories(c.Context(), "", true)
	if err != nil {
		return err
	}
	for i := range subCategories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.baseURL + "/sub-categories/" + subCategories[i].Slug,
			LastMod: subCategories[i].UpdatedAt.Format(time.DateOnly),
		})
	}

	products, err := h.catalog.ListProducts(c.Context(), "", true, 0, 0)
	if err != nil {
		return err
	}
	for i := range products {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.baseURL + "/products/" + products[i].Slug,
			LastMod: products[i].UpdatedAt.Format(time.DateOnly),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	return c.SendString(xml.Header + string(body))
}
