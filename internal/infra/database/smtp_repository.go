package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type SMTPRepository struct {
	DB *sql.DB
}

func NewSMTPRepository(db *sql.DB) *SMTPRepository {
	return &SMTPRepository{DB: db}
}

func (r *SMTPRepository) GetActive(ctx context.Context) (*entity.SMTPSettings, error) {
	query := `
		SELECT id, host, port, username, password,
			from_email, COALESCE(from_name, ''), admin_email, active
		FROM smtp_settings
		WHERE active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s entity.SMTPSettings
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Host, &s.Port, &s.Username, &s.Password,
		&s.FromEmail, &s.FromName, &s.AdminEmail, &s.Active,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load smtp settings: %w", err)
	}

	return &s, nil
}

// Save upserts the single operator-managed config row. Activating a
// config deactivates any previous one.
func (r *SMTPRepository) Save(ctx context.Context, s *entity.SMTPSettings) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	if s.Active {
		if _, err := r.DB.ExecContext(ctx, `UPDATE smtp_settings SET active = FALSE WHERE id <> $1`, s.ID); err != nil {
			return fmt.Errorf("deactivate smtp settings: %w", err)
		}
	}

	query := `
		INSERT INTO smtp_settings (
			id, host, port, username, password,
			from_email, from_name, admin_email, active, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			host = EXCLUDED.host,
			port = EXCLUDED.port,
			username = EXCLUDED.username,
			password = EXCLUDED.password,
			from_email = EXCLUDED.from_email,
			from_name = EXCLUDED.from_name,
			admin_email = EXCLUDED.admin_email,
			active = EXCLUDED.active,
			updated_at = NOW()
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		s.ID, s.Host, s.Port, s.Username, s.Password,
		s.FromEmail, s.FromName, s.AdminEmail, s.Active,
	)
	if err != nil {
		return fmt.Errorf("save smtp settings: %w", err)
	}

	return nil
}
