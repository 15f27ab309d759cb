package dto

import (
	"time"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// The public API speaks camelCase; storage speaks snake_case. The functions
// below are the explicit mapping between the two shapes.

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool  `json:"isActive"`
}

// CategoryResponse is the public category shape.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SubCategoryRequest payload for sub-category create/update.
type SubCategoryRequest struct {
	CategoryID  string `json:"categoryId" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	IsActive    *bool  `json:"isActive"`
}

// SubCategoryResponse is the public sub-category shape.
type SubCategoryResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductRequest payload for product create/update.
type ProductRequest struct {
	SubCategoryID string   `json:"subCategoryId" validate:"required,uuid4"`
	Name          string   `json:"name" validate:"required,max=200"`
	ModelNumber   string   `json:"modelNumber" validate:"max=80"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,url"`
	DatasheetURL  string   `json:"datasheetUrl" validate:"omitempty,url"`
	Features      []string `json:"features" validate:"dive,max=200"`
	IsActive      *bool    `json:"isActive"`
}

// ProductResponse is the public product shape.
type ProductResponse struct {
	ID            string    `json:"id"`
	SubCategoryID string    `json:"subCategoryId"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ModelNumber   string    `json:"modelNumber"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	DatasheetURL  string    `json:"datasheetUrl"`
	Features      []string  `json:"features"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NavbarCategoryRequest payload for navbar create/update.
type NavbarCategoryRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool  `json:"isActive"`
}

// NavbarCategoryResponse is the public navbar shape.
type NavbarCategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UploadResponse is returned by the image upload proxy.
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// CategoryFromDomain maps a stored category to its API shape.
func CategoryFromDomain(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CategoriesFromDomain maps a stored category list.
func CategoriesFromDomain(list []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, CategoryFromDomain(&list[i]))
	}
	return out
}

// SubCategoryFromDomain maps a stored sub-category to its API shape.
func SubCategoryFromDomain(s *domain.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SubCategoriesFromDomain maps a stored sub-category list.
func SubCategoriesFromDomain(list []domain.SubCategory) []SubCategoryResponse {
	out := make([]SubCategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, SubCategoryFromDomain(&list[i]))
	}
	return out
}

// ProductFromDomain maps a stored product to its API shape.
func ProductFromDomain(p *domain.Product) ProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return ProductResponse{
		ID:            p.ID,
		SubCategoryID: p.SubCategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		ModelNumber:   p.ModelNumber,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		DatasheetURL:  p.DatasheetURL,
		Features:      features,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProductsFromDomain maps a stored product list.
func ProductsFromDomain(list []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for i := range list {
		out = append(out, ProductFromDomain(&list[i]))
	}
	return out
}

// NavbarCategoryFromDomain maps a stored navbar category to its API shape.
func NavbarCategoryFromDomain(n *domain.NavbarCategory) NavbarCategoryResponse {
	return NavbarCategoryResponse{
		ID:           n.ID,
		Name:         n.Name,
		Slug:         n.Slug,
		DisplayOrder: n.DisplayOrder,
		IsActive:     n.IsActive,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

// NavbarCategoriesFromDomain maps a stored navbar list.
func NavbarCategoriesFromDomain(list []domain.NavbarCategory) []NavbarCategoryResponse {
	out := make([]NavbarCategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, NavbarCategoryFromDomain(&list[i]))
	}
	return out
}
