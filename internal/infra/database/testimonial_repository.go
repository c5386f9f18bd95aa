package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type TestimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *entity.Testimonial) error {
	query := `
		INSERT INTO testimonials (
			id, lead_id, name, location, content, rating,
			services_type, status, created_at
		) VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		t.ID,
		t.LeadID,
		t.Name,
		t.Location,
		t.Content,
		t.Rating,
		t.ServicesType,
		t.Status,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}

	return nil
}

// Delete exists for compensation when a token burn loses the redemption
// race; it is not an admin operation.
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepository) List(ctx context.Context, status string) ([]entity.Testimonial, error) {
	query := `
		SELECT id, COALESCE(lead_id, ''), name, COALESCE(location, ''),
			content, rating, services_type, status, created_at
		FROM testimonials
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var out []entity.Testimonial
	for rows.Next() {
		var t entity.Testimonial
		err := rows.Scan(
			&t.ID, &t.LeadID, &t.Name, &t.Location,
			&t.Content, &t.Rating, &t.ServicesType, &t.Status, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}
