package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// SubCategoriesHandler serves public sub-category reads and admin CRUD.
type SubCategoriesHandler struct {
	catalog *service.CatalogService
	cache   *cache.CatalogCache
}

// NewSubCategoriesHandler constructs handler.
func NewSubCategoriesHandler(catalog *service.CatalogService, store *cache.CatalogCache) *SubCategoriesHandler {
	return &SubCategoriesHandler{catalog: catalog, cache: store}
}

// ListPublic GET /api/sub-categories?category=<slug>.
func (h *SubCategoriesHandler) ListPublic(c *fiber.Ctx) error {
	categorySlug := c.Query("category")
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		list, err := h.catalog.ListSubCategories(c.Context(), categorySlug, true)
		if err != nil {
			return nil, err
		}
		return dto.SubCategoriesFromDomain(list), nil
	})
}

// ListAdmin GET /api/admin/sub-categories.
func (h *SubCategoriesHandler) ListAdmin(c *fiber.Ctx) error {
	list, err := h.catalog.ListSubCategories(c.Context(), c.Query("category"), false)
	if err != nil {
		return err
	}
	return ok(c, dto.SubCategoriesFromDomain(list))
}

// Create POST /api/admin/sub-categories.
func (h *SubCategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.SubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.catalog.CreateSubCategory(c.Context(), service.SubCategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return created(c, dto.SubCategoryFromDomain(sub))
}

// Update PUT /api/admin/sub-categories/:id.
func (h *SubCategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.SubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.catalog.UpdateSubCategory(c.Context(), c.Params("id"), service.SubCategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.SubCategoryFromDomain(sub))
}

// Delete DELETE /api/admin/sub-categories/:id.
func (h *SubCategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteSubCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "sub-category deleted")
}
