package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// EnquiryFilter narrows enquiry listings for the admin inbox.
type EnquiryFilter struct {
	Status *domain.EnquiryStatus
	Limit  int
	Offset int
}

// EnquiryRepository manages persistence for customer enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) error
	UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	List(ctx context.Context, filter EnquiryFilter) ([]domain.Enquiry, error)
}

type enquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository constructs repository.
func NewEnquiryRepository(pool *pgxpool.Pool) EnquiryRepository {
	return &enquiryRepository{pool: pool}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	const query = `
        INSERT INTO enquiries (reference, name, email, phone, subject, message, product_id, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		enquiry.Reference,
		enquiry.Name,
		enquiry.Email,
		enquiry.Phone,
		enquiry.Subject,
		enquiry.Message,
		enquiry.ProductID,
		enquiry.Status,
	).Scan(&enquiry.ID, &enquiry.CreatedAt, &enquiry.UpdatedAt)
}

func (r *enquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) error {
	const query = `
        UPDATE enquiries SET status=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enquiryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enquiryRepository) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	const query = `
        SELECT id, reference, name, email, phone, subject, message, product_id, status, created_at, updated_at
        FROM enquiries WHERE id=$1`
	var enquiry domain.Enquiry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&enquiry.ID,
		&enquiry.Reference,
		&enquiry.Name,
		&enquiry.Email,
		&enquiry.Phone,
		&enquiry.Subject,
		&enquiry.Message,
		&enquiry.ProductID,
		&enquiry.Status,
		&enquiry.CreatedAt,
		&enquiry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepository) List(ctx context.Context, filter EnquiryFilter) ([]domain.Enquiry, error) {
	query := `
        SELECT id, reference, name, email, phone, subject, message, product_id, status, created_at, updated_at
        FROM enquiries WHERE 1=1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status=$1`
	}
	query += ` ORDER BY created_at DESC`
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

	var result []domain.Enquiry
	for rows.Next() {
		var enquiry domain.Enquiry
		if err := rows.Scan(
			&enquiry.ID,
			&enquiry.Reference,
			&enquiry.Name,
			&enquiry.Email,
			&enquiry.Phone,
			&enquiry.Subject,
			&enquiry.Message,
			&enquiry.ProductID,
			&enquiry.Status,
			&enquiry.CreatedAt,
			&enquiry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, enquiry)
	}
	return result, rows.Err()
}
