package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// SubCategoryRepository manages persistence for sub-categories.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *domain.SubCategory) error
	Update(ctx context.Context, sub *domain.SubCategory) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*domain.SubCategory, error)
	List(ctx context.Context, categoryID *string, activeOnly bool) ([]domain.SubCategory, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountProducts(ctx context.Context, subCategoryID string) (int, error)
}

type subCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewSubCategoryRepository constructs repository.
func NewSubCategoryRepository(pool *pgxpool.Pool) SubCategoryRepository {
	return &subCategoryRepository{pool: pool}
}

func (r *subCategoryRepository) Create(ctx context.Context, sub *domain.SubCategory) error {
	const query = `
        INSERT INTO sub_categories (category_id, name, slug, description, image_url, is_active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sub.CategoryID,
		sub.Name,
		sub.Slug,
		sub.Description,
		sub.ImageURL,
		sub.IsActive,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subCategoryRepository) Update(ctx context.Context, sub *domain.SubCategory) error {
	const query = `
        UPDATE sub_categories SET category_id=$1, name=$2, slug=$3, description=$4, image_url=$5, is_active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		sub.CategoryID,
		sub.Name,
		sub.Slug,
		sub.Description,
		sub.ImageURL,
		sub.IsActive,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subCategoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sub_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	const query = `
        SELECT id, category_id, name, slug, description, image_url, is_active, created_at, updated_at
        FROM sub_categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *subCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.SubCategory, error) {
	const query = `
        SELECT id, category_id, name, slug, description, image_url, is_active, created_at, updated_at
        FROM sub_categories WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *subCategoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.SubCategory, error) {
	var sub domain.SubCategory
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&sub.ID,
		&sub.CategoryID,
		&sub.Name,
		&sub.Slug,
		&sub.Description,
		&sub.ImageURL,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepository) List(ctx context.Context, categoryID *string, activeOnly bool) ([]domain.SubCategory, error) {
	query := `
        SELECT id, category_id, name, slug, description, image_url, is_active, created_at, updated_at
        FROM sub_categories WHERE 1=1`
	args := []any{}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += ` AND category_id=$1`
	}
	if activeOnly {
		query += ` AND is_active=TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SubCategory
	for rows.Next() {
		var sub domain.SubCategory
		if err := rows.Scan(
			&sub.ID,
			&sub.CategoryID,
			&sub.Name,
			&sub.Slug,
			&sub.Description,
			&sub.ImageURL,
			&sub.IsActive,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *subCategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sub_categories WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}

func (r *subCategoryRepository) CountProducts(ctx context.Context, subCategoryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE sub_category_id=$1`, subCategoryID).Scan(&count)
	return count, err
}
