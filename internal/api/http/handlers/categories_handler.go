package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// CategoriesHandler serves public category reads and admin category CRUD.
type CategoriesHandler struct {
	catalog *service.CatalogService
	cache   *cache.CatalogCache
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(catalog *service.CatalogService, store *cache.CatalogCache) *CategoriesHandler {
	return &CategoriesHandler{catalog: catalog, cache: store}
}

// ListPublic GET /api/categories.
func (h *CategoriesHandler) ListPublic(c *fiber.Ctx) error {
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		list, err := h.catalog.ListCategories(c.Context(), true)
		if err != nil {
			return nil, err
		}
		return dto.CategoriesFromDomain(list), nil
	})
}

// GetPublic GET /api/categories/:slug.
func (h *CategoriesHandler) GetPublic(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		category, err := h.catalog.GetCategoryBySlug(c.Context(), slug)
		if err != nil {
			return nil, err
		}
		if !category.IsActive {
			return nil, apperrors.NewNotFound("category")
		}
		return dto.CategoryFromDomain(category), nil
	})
}

// ListAdmin GET /api/admin/categories.
func (h *CategoriesHandler) ListAdmin(c *fiber.Ctx) error {
	list, err := h.catalog.ListCategories(c.Context(), false)
	if err != nil {
		return err
	}
	return ok(c, dto.CategoriesFromDomain(list))
}

// Create POST /api/admin/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Context(), service.CategoryInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return created(c, dto.CategoryFromDomain(category))
}

// Update PUT /api/admin/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.Context(), c.Params("id"), service.CategoryInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.CategoryFromDomain(category))
}

// Delete DELETE /api/admin/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "category deleted")
}
