package domain

import "time"

// Category is a top-level catalog grouping (e.g. "Network Cameras").
type Category struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	ImageURL     string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubCategory is a second-level grouping under a category.
type SubCategory struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a catalog item under a sub-category.
type Product struct {
	ID            string
	SubCategoryID string
	Name          string
	Slug          string
	ModelNumber   string
	Description   string
	ImageURL      string
	DatasheetURL  string
	Features      []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NavbarCategory drives the public site navigation bar, ordered explicitly.
type NavbarCategory struct {
	ID           string
	Name         string
	Slug         string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
