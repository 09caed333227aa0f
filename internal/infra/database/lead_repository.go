package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `phone, name, interest, lead_type, trial_status, last_message, last_update,
	reminder_time, reminder_sent, review_time, review_sent`

func (r *LeadRepository) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE phone = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

// Upsert overwrites the mutable fields of an existing row or appends a new
// one. Follow-up columns are left alone.
func (r *LeadRepository) Upsert(ctx context.Context, lead entity.LeadUpsert) error {
	query := `
		INSERT INTO leads (phone, name, interest, lead_type, trial_status, last_message, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (phone)
		DO UPDATE SET
			name = EXCLUDED.name,
			interest = EXCLUDED.interest,
			lead_type = EXCLUDED.lead_type,
			trial_status = EXCLUDED.trial_status,
			last_message = EXCLUDED.last_message,
			last_update = EXCLUDED.last_update
	`

	leadType := lead.LeadType
	if leadType == "" {
		leadType = entity.TierCold
	}

	_, err := r.DB.ExecContext(ctx, query,
		lead.Phone,
		lead.Name,
		lead.Interest,
		string(leadType),
		lead.TrialStatus,
		lead.LastMessage,
		lead.At.Format(entity.LastUpdateLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

// UpdateColumn writes one follow-up cell. column is checked against the
// fixed set before it reaches the SQL text.
func (r *LeadRepository) UpdateColumn(ctx context.Context, phone string, column entity.LeadColumn, value string) error {
	if !column.Valid() {
		return fmt.Errorf("%w: %s", entity.ErrUnknownColumn, column)
	}

	query := fmt.Sprintf(`UPDATE leads SET %s = $1 WHERE phone = $2`, column)
	res, err := r.DB.ExecContext(ctx, query, value, phone)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) ScanAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at, phone`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var leadType string
	err := row.Scan(
		&l.Phone,
		&l.Name,
		&l.Interest,
		&leadType,
		&l.TrialStatus,
		&l.LastMessage,
		&l.LastUpdate,
		&l.ReminderTime,
		&l.ReminderSent,
		&l.ReviewTime,
		&l.ReviewSent,
	)
	if err != nil {
		return nil, err
	}
	l.LeadType = entity.Tier(leadType)
	return &l, nil
}
