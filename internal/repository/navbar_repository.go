package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// NavbarRepository manages persistence for navbar categories.
type NavbarRepository interface {
	Create(ctx context.Context, item *domain.NavbarCategory) error
	Update(ctx context.Context, item *domain.NavbarCategory) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.NavbarCategory, error)
	List(ctx context.Context, activeOnly bool) ([]domain.NavbarCategory, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type navbarRepository struct {
	pool *pgxpool.Pool
}

// NewNavbarRepository constructs repository.
func NewNavbarRepository(pool *pgxpool.Pool) NavbarRepository {
	return &navbarRepository{pool: pool}
}

func (r *navbarRepository) Create(ctx context.Context, item *domain.NavbarCategory) error {
	const query = `
        INSERT INTO navbar_categories (name, slug, display_order, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Slug,
		item.DisplayOrder,
		item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *navbarRepository) Update(ctx context.Context, item *domain.NavbarCategory) error {
	const query = `
        UPDATE navbar_categories SET name=$1, slug=$2, display_order=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Slug,
		item.DisplayOrder,
		item.IsActive,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *navbarRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM navbar_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *navbarRepository) GetByID(ctx context.Context, id string) (*domain.NavbarCategory, error) {
	const query = `
        SELECT id, name, slug, display_order, is_active, created_at, updated_at
        FROM navbar_categories WHERE id=$1`
	var item domain.NavbarCategory
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Slug,
		&item.DisplayOrder,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *navbarRepository) List(ctx context.Context, activeOnly bool) ([]domain.NavbarCategory, error) {
	query := `
        SELECT id, name, slug, display_order, is_active, created_at, updated_at
        FROM navbar_categories`
	if activeOnly {
		query += ` WHERE is_active=TRUE`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NavbarCategory
	for rows.Next() {
		var item domain.NavbarCategory
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Slug,
			&item.DisplayOrder,
			&item.IsActive,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *navbarRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM navbar_categories WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}
