package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	SubCategoryID *string
	ActiveOnly    bool
	Limit         int
	Offset        int
}

// ProductRepository manages persistence for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository constructs repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (sub_category_id, name, slug, model_number, description, image_url, datasheet_url, features, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.SubCategoryID,
		product.Name,
		product.Slug,
		product.ModelNumber,
		product.Description,
		product.ImageURL,
		product.DatasheetURL,
		product.Features,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET sub_category_id=$1, name=$2, slug=$3, model_number=$4, description=$5,
            image_url=$6, datasheet_url=$7, features=$8, is_active=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		product.SubCategoryID,
		product.Name,
		product.Slug,
		product.ModelNumber,
		product.Description,
		product.ImageURL,
		product.DatasheetURL,
		product.Features,
		product.IsActive,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, sub_category_id, name, slug, model_number, description, image_url, datasheet_url, features, is_active, created_at, updated_at
        FROM products WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const query = `
        SELECT id, sub_category_id, name, slug, model_number, description, image_url, datasheet_url, features, is_active, created_at, updated_at
        FROM products WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *productRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&product.ID,
		&product.SubCategoryID,
		&product.Name,
		&product.Slug,
		&product.ModelNumber,
		&product.Description,
		&product.ImageURL,
		&product.DatasheetURL,
		&product.Features,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := `
        SELECT id, sub_category_id, name, slug, model_number, description, image_url, datasheet_url, features, is_active, created_at, updated_at
        FROM products WHERE 1=1`
	args := []any{}
	if filter.SubCategoryID != nil {
		args = append(args, *filter.SubCategoryID)
		query += ` AND sub_category_id=$1`
	}
	if filter.ActiveOnly {
		query += ` AND is_active=TRUE`
	}
	query += ` ORDER BY name`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.SubCategoryID,
			&product.Name,
			&product.Slug,
			&product.ModelNumber,
			&product.Description,
			&product.ImageURL,
			&product.DatasheetURL,
			&product.Features,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func (r *productRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}
