package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/http/handlers"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/auth"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Categories    *handlers.CategoriesHandler
	SubCategories *handlers.SubCategoriesHandler
	Products      *handlers.ProductsHandler
	Navbar        *handlers.NavbarHandler
	Enquiries     *handlers.EnquiriesHandler
	Uploads       *handlers.UploadsHandler
	Sitemap       *handlers.SitemapHandler
	Session       *auth.Middleware
	Metrics       *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	app.Get("/sitemap.xml", cfg.Sitemap.Render)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify", cfg.Session.Handle, cfg.Auth.Verify)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// public reads, filtered to active records
	api.Get("/categories", cfg.Categories.ListPublic)
	api.Get("/categories/:slug", cfg.Categories.GetPublic)
	api.Get("/sub-categories", cfg.SubCategories.ListPublic)
	api.Get("/products", cfg.Products.ListPublic)
	api.Get("/products/:slug", cfg.Products.GetPublic)
	api.Get("/navbar-categories", cfg.Navbar.ListPublic)
	api.Post("/enquiries", cfg.Enquiries.Submit)

	admin := api.Group("/admin", cfg.Session.Handle)

	admin.Get("/categories", cfg.Categories.ListAdmin)
	admin.Post("/categories", cfg.Categories.Create)
	admin.Put("/categories/:id", cfg.Categories.Update)
	admin.Delete("/categories/:id", cfg.Categories.Delete)

	admin.Get("/sub-categories", cfg.SubCategories.ListAdmin)
	admin.Post("/sub-categories", cfg.SubCategories.Create)
	admin.Put("/sub-categories/:id", cfg.SubCategories.Update)
	admin.Delete("/sub-categories/:id", cfg.SubCategories.Delete)

	admin.Get("/products", cfg.Products.ListAdmin)
	admin.Post("/products", cfg.Products.Create)
	admin.Put("/products/:id", cfg.Products.Update)
	admin.Delete("/products/:id", cfg.Products.Delete)

	admin.Get("/navbar-categories", cfg.Navbar.ListAdmin)
	admin.Post("/navbar-categories", cfg.Navbar.Create)
	admin.Put("/navbar-categories/:id", cfg.Navbar.Update)
	admin.Delete("/navbar-categories/:id", cfg.Navbar.Delete)

	admin.Get("/enquiries", cfg.Enquiries.List)
	admin.Get("/enquiries/:id", cfg.Enquiries.Get)
	admin.Put("/enquiries/:id", cfg.Enquiries.UpdateStatus)
	admin.Delete("/enquiries/:id", cfg.Enquiries.Delete)

	admin.Post("/uploads", cfg.Uploads.Upload)
}
