package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/events"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// CatalogService orchestrates CRUD over categories, sub-categories, products
// and navbar categories. Admin writes invalidate the public response cache and
// emit a catalog_changed event.
type CatalogService struct {
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	products      repository.ProductRepository
	navbar        repository.NavbarRepository
	cache         *cache.CatalogCache
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// CatalogDependencies encapsulates repo requirements for the catalog service.
type CatalogDependencies struct {
	CategoryRepo    repository.CategoryRepository
	SubCategoryRepo repository.SubCategoryRepository
	ProductRepo     repository.ProductRepository
	NavbarRepo      repository.NavbarRepository
	Cache           *cache.CatalogCache
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories:    deps.CategoryRepo,
		subCategories: deps.SubCategoryRepo,
		products:      deps.ProductRepo,
		navbar:        deps.NavbarRepo,
		cache:         deps.Cache,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
	}
}

// CategoryInput carries create/update fields for a category.
type CategoryInput struct {
	Name         string
	Description  string
	ImageURL     string
	DisplayOrder int
	IsActive     *bool
}

// SubCategoryInput carries create/update fields for a sub-category.
type SubCategoryInput struct {
	CategoryID  string
	Name        string
	Description string
	ImageURL    string
	IsActive    *bool
}

// ProductInput carries create/update fields for a product.
type ProductInput struct {
	SubCategoryID string
	Name          string
	ModelNumber   string
	Description   string
	ImageURL      string
	DatasheetURL  string
	Features      []string
	IsActive      *bool
}

// NavbarInput carries create/update fields for a navbar category.
type NavbarInput struct {
	Name         string
	DisplayOrder int
	IsActive     *bool
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	slug, err := s.uniqueSlug(ctx, input.Name, s.categories.SlugExists)
	if err != nil {
		return nil, err
	}
	category := &domain.Category{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     activeOrDefault(input.IsActive),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "category", "created", category.ID, category.Slug)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != "" && input.Name != category.Name {
		slug, err := s.uniqueSlug(ctx, input.Name, s.categories.SlugExists)
		if err != nil {
			return nil, err
		}
		category.Name = input.Name
		category.Slug = slug
	}
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "category", "updated", category.ID, category.Slug)
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	count, err := s.categories.CountSubCategories(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("category has sub-categories; delete or reassign them first")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("category")
		}
		return apperrors.MapError(err)
	}
	s.afterWrite(ctx, "category", "deleted", id, "")
	return nil
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	list, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Sub-categories

func (s *CatalogService) CreateSubCategory(ctx context.Context, input SubCategoryInput) (*domain.SubCategory, error) {
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("categoryId does not reference an existing category")
		}
		return nil, apperrors.MapError(err)
	}
	slug, err := s.uniqueSlug(ctx, input.Name, s.subCategories.SlugExists)
	if err != nil {
		return nil, err
	}
	sub := &domain.SubCategory{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    activeOrDefault(input.IsActive),
	}
	if err := s.subCategories.Create(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "sub_category", "created", sub.ID, sub.Slug)
	return sub, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id string, input SubCategoryInput) (*domain.SubCategory, error) {
	sub, err := s.subCategories.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("sub-category")
		}
		return nil, apperrors.MapError(err)
	}

	if input.CategoryID != "" && input.CategoryID != sub.CategoryID {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("categoryId does not reference an existing category")
			}
			return nil, apperrors.MapError(err)
		}
		sub.CategoryID = input.CategoryID
	}
	if input.Name != "" && input.Name != sub.Name {
		slug, err := s.uniqueSlug(ctx, input.Name, s.subCategories.SlugExists)
		if err != nil {
			return nil, err
		}
		sub.Name = input.Name
		sub.Slug = slug
	}
	sub.Description = input.Description
	sub.ImageURL = input.ImageURL
	if input.IsActive != nil {
		sub.IsActive = *input.IsActive
	}

	if err := s.subCategories.Update(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "sub_category", "updated", sub.ID, sub.Slug)
	return sub, nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id string) error {
	count, err := s.subCategories.CountProducts(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("sub-category has products; delete or reassign them first")
	}
	if err := s.subCategories.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("sub-category")
		}
		return apperrors.MapError(err)
	}
	s.afterWrite(ctx, "sub_category", "deleted", id, "")
	return nil
}

// ListSubCategories resolves an optional category slug to its id before listing.
func (s *CatalogService) ListSubCategories(ctx context.Context, categorySlug string, activeOnly bool) ([]domain.SubCategory, error) {
	var categoryID *string
	if categorySlug != "" {
		category, err := s.GetCategoryBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		categoryID = &category.ID
	}
	list, err := s.subCategories.List(ctx, categoryID, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Products

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if _, err := s.subCategories.GetByID(ctx, input.SubCategoryID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("subCategoryId does not reference an existing sub-category")
		}
		return nil, apperrors.MapError(err)
	}
	slug, err := s.uniqueSlug(ctx, input.Name, s.products.SlugExists)
	if err != nil {
		return nil, err
	}
	product := &domain.Product{
		SubCategoryID: input.SubCategoryID,
		Name:          input.Name,
		Slug:          slug,
		ModelNumber:   input.ModelNumber,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		DatasheetURL:  input.DatasheetURL,
		Features:      input.Features,
		IsActive:      activeOrDefault(input.IsActive),
	}
	if product.Features == nil {
		product.Features = []string{}
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "product", "created", product.ID, product.Slug)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, apperrors.MapError(err)
	}

	if input.SubCategoryID != "" && input.SubCategoryID != product.SubCategoryID {
		if _, err := s.subCategories.GetByID(ctx, input.SubCategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("subCategoryId does not reference an existing sub-category")
			}
			return nil, apperrors.MapError(err)
		}
		product.SubCategoryID = input.SubCategoryID
	}
	if input.Name != "" && input.Name != product.Name {
		slug, err := s.uniqueSlug(ctx, input.Name, s.products.SlugExists)
		if err != nil {
			return nil, err
		}
		product.Name = input.Name
		product.Slug = slug
	}
	product.ModelNumber = input.ModelNumber
	product.Description = input.Description
	product.ImageURL = input.ImageURL
	product.DatasheetURL = input.DatasheetURL
	if input.Features != nil {
		product.Features = input.Features
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "product", "updated", product.ID, product.Slug)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product")
		}
		return apperrors.MapError(err)
	}
	s.afterWrite(ctx, "product", "deleted", id, "")
	return nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// ListProducts resolves an optional sub-category slug before listing.
func (s *CatalogService) ListProducts(ctx context.Context, subCategorySlug string, activeOnly bool, limit, offset int) ([]domain.Product, error) {
	filter := repository.ProductFilter{ActiveOnly: activeOnly, Limit: limit, Offset: offset}
	if subCategorySlug != "" {
		sub, err := s.subCategories.GetBySlug(ctx, subCategorySlug)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("sub-category")
			}
			return nil, apperrors.MapError(err)
		}
		filter.SubCategoryID = &sub.ID
	}
	list, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Navbar categories

func (s *CatalogService) CreateNavbarCategory(ctx context.Context, input NavbarInput) (*domain.NavbarCategory, error) {
	slug, err := s.uniqueSlug(ctx, input.Name, s.navbar.SlugExists)
	if err != nil {
		return nil, err
	}
	item := &domain.NavbarCategory{
		Name:         input.Name,
		Slug:         slug,
		DisplayOrder: input.DisplayOrder,
		IsActive:     activeOrDefault(input.IsActive),
	}
	if err := s.navbar.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "navbar_category", "created", item.ID, item.Slug)
	return item, nil
}

func (s *CatalogService) UpdateNavbarCategory(ctx context.Context, id string, input NavbarInput) (*domain.NavbarCategory, error) {
	item, err := s.navbar.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("navbar category")
		}
		return nil, apperrors.MapError(err)
	}
	if input.Name != "" && input.Name != item.Name {
		slug, err := s.uniqueSlug(ctx, input.Name, s.navbar.SlugExists)
		if err != nil {
			return nil, err
		}
		item.Name = input.Name
		item.Slug = slug
	}
	item.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := s.navbar.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.afterWrite(ctx, "navbar_category", "updated", item.ID, item.Slug)
	return item, nil
}

func (s *CatalogService) DeleteNavbarCategory(ctx context.Context, id string) error {
	if err := s.navbar.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("navbar category")
		}
		return apperrors.MapError(err)
	}
	s.afterWrite(ctx, "navbar_category", "deleted", id, "")
	return nil
}

func (s *CatalogService) ListNavbarCategories(ctx context.Context, activeOnly bool) ([]domain.NavbarCategory, error) {
	list, err := s.navbar.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// helpers

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and hyphenates a name for use in public URLs.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type slugExistsFn func(ctx context.Context, slug string) (bool, error)

// uniqueSlug derives a slug from name, suffixing on collision.
func (s *CatalogService) uniqueSlug(ctx context.Context, name string, exists slugExistsFn) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", apperrors.NewValidationError("name must contain at least one alphanumeric character")
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", apperrors.MapError(err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func activeOrDefault(isActive *bool) bool {
	if isActive == nil {
		return true
	}
	return *isActive
}

func (s *CatalogService) afterWrite(ctx context.Context, entity, action, id, slug string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCatalogChanged,
		Timestamp: time.Now(),
		Payload: events.CatalogChangedPayload{
			Entity: entity,
			Action: action,
			ID:     id,
			Slug:   slug,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish catalog event", zap.Error(err))
	}
}
