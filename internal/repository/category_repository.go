package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// CategoryRepository manages persistence for catalog categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountSubCategories(ctx context.Context, categoryID string) (int, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository constructs repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, slug, description, image_url, display_order, is_active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.ImageURL,
		category.DisplayOrder,
		category.IsActive,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, slug=$2, description=$3, image_url=$4, display_order=$5, is_active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.ImageURL,
		category.DisplayOrder,
		category.IsActive,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, slug, description, image_url, display_order, is_active, created_at, updated_at
        FROM categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const query = `
        SELECT id, name, slug, description, image_url, display_order, is_active, created_at, updated_at
        FROM categories WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.ImageURL,
		&category.DisplayOrder,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `
        SELECT id, name, slug, description, image_url, display_order, is_active, created_at, updated_at
        FROM categories`
	if activeOnly {
		query += ` WHERE is_active=TRUE`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.ImageURL,
			&category.DisplayOrder,
			&category.IsActive,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}

func (r *categoryRepository) CountSubCategories(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sub_categories WHERE category_id=$1`, categoryID).Scan(&count)
	return count, err
}
