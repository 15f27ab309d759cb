package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// NavbarHandler serves navbar category reads and admin CRUD.
type NavbarHandler struct {
	catalog *service.CatalogService
	cache   *cache.CatalogCache
}

// NewNavbarHandler constructs handler.
func NewNavbarHandler(catalog *service.CatalogService, store *cache.CatalogCache) *NavbarHandler {
	return &NavbarHandler{catalog: catalog, cache: store}
}

// ListPublic GET /api/navbar-categories.
func (h *NavbarHandler) ListPublic(c *fiber.Ctx) error {
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		list, err := h.catalog.ListNavbarCategories(c.Context(), true)
		if err != nil {
			return nil, err
		}
		return dto.NavbarCategoriesFromDomain(list), nil
	})
}

// ListAdmin GET /api/admin/navbar-categories.
func (h *NavbarHandler) ListAdmin(c *fiber.Ctx) error {
	list, err := h.catalog.ListNavbarCategories(c.Context(), false)
	if err != nil {
		return err
	}
	return ok(c, dto.NavbarCategoriesFromDomain(list))
}

// Create POST /api/admin/navbar-categories.
func (h *NavbarHandler) Create(c *fiber.Ctx) error {
	var req dto.NavbarCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	item, err := h.catalog.CreateNavbarCategory(c.Context(), service.NavbarInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NavbarCategoryFromDomain(item))
}

// Update PUT /api/admin/navbar-categories/:id.
func (h *NavbarHandler) Update(c *fiber.Ctx) error {
	var req dto.NavbarCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	item, err := h.catalog.UpdateNavbarCategory(c.Context(), c.Params("id"), service.NavbarInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.NavbarCategoryFromDomain(item))
}

// Delete DELETE /api/admin/navbar-categories/:id.
func (h *NavbarHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteNavbarCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "navbar category deleted")
}
