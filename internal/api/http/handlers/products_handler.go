package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// ProductsHandler serves public product reads and admin product CRUD.
type ProductsHandler struct {
	catalog *service.CatalogService
	cache   *cache.CatalogCache
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService, store *cache.CatalogCache) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, cache: store}
}

// ListPublic GET /api/products?subCategory=<slug>&limit=&offset=.
func (h *ProductsHandler) ListPublic(c *fiber.Ctx) error {
	subCategorySlug := c.Query("subCategory")
	limit, offset := pagination(c)
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		list, err := h.catalog.ListProducts(c.Context(), subCategorySlug, true, limit, offset)
		if err != nil {
			return nil, err
		}
		return dto.ProductsFromDomain(list), nil
	})
}

// GetPublic GET /api/products/:slug.
func (h *ProductsHandler) GetPublic(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return cachedOK(c, h.cache, c.OriginalURL(), func() (any, error) {
		product, err := h.catalog.GetProductBySlug(c.Context(), slug)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, apperrors.NewNotFound("product")
		}
		return dto.ProductFromDomain(product), nil
	})
}

// ListAdmin GET /api/admin/products.
func (h *ProductsHandler) ListAdmin(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.catalog.ListProducts(c.Context(), c.Query("subCategory"), false, limit, offset)
	if err != nil {
		return err
	}
	return ok(c, dto.ProductsFromDomain(list))
}

// Create POST /api/admin/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.Context(), productInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.ProductFromDomain(product))
}

// Update PUT /api/admin/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), productInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.ProductFromDomain(product))
}

// Delete DELETE /api/admin/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "product deleted")
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		SubCategoryID: req.SubCategoryID,
		Name:          req.Name,
		ModelNumber:   req.ModelNumber,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		DatasheetURL:  req.DatasheetURL,
		Features:      req.Features,
		IsActive:      req.IsActive,
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
