package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

const leadColumns = `
	id, full_name, COALESCE(email, ''), phone, service_type,
	COALESCE(travel_date, ''), COALESCE(pickup_location, ''),
	COALESCE(drop_location, ''), COALESCE(passengers, 0),
	COALESCE(message, ''), status, priority, source,
	review_token, COALESCE(review_link, ''), submitted_at, last_updated
`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, full_name, email, phone, service_type,
			travel_date, pickup_location, drop_location, passengers,
			message, status, priority, source,
			review_token, review_link, submitted_at, last_updated
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, $5,
			NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9,
			NULLIF($10, ''), $11, $12, $13,
			'', NULL, $14, $15
		)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.ServiceType,
		lead.TravelDate,
		lead.PickupLocation,
		lead.DropLocation,
		lead.Passengers,
		lead.Message,
		lead.Status,
		lead.Priority,
		lead.Source,
		lead.SubmittedAt,
		lead.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindByReviewToken(ctx context.Context, token string) (*entity.Lead, error) {
	// Empty tokens never match: '' is the "no active token" marker.
	query := `SELECT ` + leadColumns + ` FROM leads WHERE review_token = $1 AND review_token <> ''`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, token))
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int64, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		where = append(where, fmt.Sprintf("source = $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leads WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + whereClause + ` ORDER BY submitted_at DESC`

	if !filter.All {
		limit := filter.Limit
		if limit <= 0 {
			limit = 10
		}
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *lead)
	}

	return leads, total, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	set, args := patchAssignments(patch)
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE leads SET %s, last_updated = NOW() WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usecase.ErrLeadNotFound()
	}

	return nil
}

// CompleteWithToken is the mint statement: patch + completed status +
// token fields, all behind one "status <> completed" guard so two
// racing completions mint exactly one token.
func (r *LeadRepository) CompleteWithToken(ctx context.Context, id string, patch entity.LeadPatch, token, link string) (bool, error) {
	completed := entity.LeadStatusCompleted
	patch.Status = &completed

	set, args := patchAssignments(patch)

	args = append(args, token)
	set = append(set, fmt.Sprintf("review_token = $%d", len(args)))
	args = append(args, link)
	set = append(set, fmt.Sprintf("review_link = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE leads SET %s, last_updated = NOW() WHERE id = $%d AND status <> 'completed'",
		strings.Join(set, ", "), len(args),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("complete lead: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BurnReviewToken clears the token only while it still matches, which
// makes redemption a compare-and-set: the second concurrent caller
// matches zero rows.
func (r *LeadRepository) BurnReviewToken(ctx context.Context, id, token string) (bool, error) {
	query := `
		UPDATE leads
		SET review_token = '', review_link = NULL, last_updated = NOW()
		WHERE id = $1 AND review_token = $2 AND review_token <> ''
	`

	res, err := r.DB.ExecContext(ctx, query, id, token)
	if err != nil {
		return false, fmt.Errorf("burn review token: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{ByStatus: map[string]int64{}}

	countsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE submitted_at >= date_trunc('month', NOW())),
			COUNT(*) FILTER (WHERE submitted_at >= date_trunc('month', NOW()) - INTERVAL '1 month'
				AND submitted_at < date_trunc('month', NOW())),
			COUNT(*) FILTER (WHERE submitted_at >= date_trunc('week', NOW()))
		FROM leads
	`
	err := r.DB.QueryRowContext(ctx, countsQuery).Scan(
		&stats.Total, &stats.ThisMonth, &stats.LastMonth, &stats.ThisWeek,
	)
	if err != nil {
		return nil, fmt.Errorf("lead counts: %w", err)
	}

	statusRows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status buckets: %w", err)
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var status string
		var count int64
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	serviceRows, err := r.DB.QueryContext(ctx, `
		SELECT service_type, COUNT(*) AS c
		FROM leads
		GROUP BY service_type
		ORDER BY c DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("service buckets: %w", err)
	}
	defer serviceRows.Close()
	for serviceRows.Next() {
		var sc entity.ServiceTypeCount
		if err := serviceRows.Scan(&sc.ServiceType, &sc.Count); err != nil {
			return nil, err
		}
		stats.ByServiceType = append(stats.ByServiceType, sc)
	}
	if err := serviceRows.Err(); err != nil {
		return nil, err
	}

	recent, _, err := r.List(ctx, entity.LeadFilter{Page: 1, Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.RecentLeads = recent

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LeadRepository) scanOne(row *sql.Row) (*entity.Lead, error) {
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, usecase.ErrLeadNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return lead, nil
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.ServiceType,
		&lead.TravelDate,
		&lead.PickupLocation,
		&lead.DropLocation,
		&lead.Passengers,
		&lead.Message,
		&lead.Status,
		&lead.Priority,
		&lead.Source,
		&lead.ReviewToken,
		&lead.ReviewLink,
		&lead.SubmittedAt,
		&lead.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// patchAssignments turns the non-nil patch fields into SET clauses over
// a fixed column whitelist. The id and token columns are deliberately
// not reachable from a patch.
func patchAssignments(patch entity.LeadPatch) ([]string, []any) {
	var set []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addNullable := func(column string, value string) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = NULLIF($%d, '')", column, len(args)))
	}

	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		addNullable("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.ServiceType != nil {
		add("service_type", *patch.ServiceType)
	}
	if patch.TravelDate != nil {
		addNullable("travel_date", *patch.TravelDate)
	}
	if patch.PickupLocation != nil {
		addNullable("pickup_location", *patch.PickupLocation)
	}
	if patch.DropLocation != nil {
		addNullable("drop_location", *patch.DropLocation)
	}
	if patch.Passengers != nil {
		add("passengers", *patch.Passengers)
	}
	if patch.Message != nil {
		addNullable("message", *patch.Message)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.Source != nil {
		add("source", *patch.Source)
	}

	return set, args
}
