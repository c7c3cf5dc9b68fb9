package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("prospect not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Prospect is a wealth-management lead in the pipeline. Metadata is an
// open-ended key-value bag shared by workflows and unrelated features; it must
// only ever be written through MergeMetadata / SetMetadataFlagIfAbsent so
// concurrent writers never clobber each other's keys.
type Prospect struct {
	ID                uuid.UUID
	OrganizationID    uuid.UUID
	FirstName         string
	LastName          string
	Email             *string
	Phone             *string
	EstimatedWealth   *int64
	AnnualIncome      *int64
	Notes             *string
	ExpressedNeeds    *string
	Stage             string
	Qualification     string
	Score             *int
	QualificationNote *string
	AssignedTo        *uuid.UUID
	ExpectedCloseDate *time.Time
	Metadata          map[string]any
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName returns the display name of the prospect.
func (p Prospect) FullName() string {
	return p.FirstName + " " + p.LastName
}

const prospectColumns = `
	id, organization_id, first_name, last_name, email, phone,
	estimated_wealth, annual_income, notes, expressed_needs,
	stage, qualification, score, qualification_note,
	assigned_to, expected_close_date, metadata, created_at, updated_at
`

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.EstimatedWealth, &p.AnnualIncome, &p.Notes, &p.ExpressedNeeds,
		&p.Stage, &p.Qualification, &p.Score, &p.QualificationNote,
		&p.AssignedTo, &p.ExpectedCloseDate, &p.Metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	if err != nil {
		return Prospect{}, err
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	return p, nil
}

func (r *Repository) GetByID(ctx context.Context, id, organizationID uuid.UUID) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+prospectColumns+`
		FROM prospects
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	return scanProspect(row)
}

type CreateProspectParams struct {
	OrganizationID    uuid.UUID
	FirstName         string
	LastName          string
	Email             *string
	Phone             *string
	EstimatedWealth   *int64
	AnnualIncome      *int64
	Notes             *string
	ExpressedNeeds    *string
	AssignedTo        *uuid.UUID
	ExpectedCloseDate *time.Time
}

func (r *Repository) Create(ctx context.Context, params CreateProspectParams) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO prospects (
			organization_id, first_name, last_name, email, phone,
			estimated_wealth, annual_income, notes, expressed_needs,
			assigned_to, expected_close_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+prospectColumns+`
	`,
		params.OrganizationID, params.FirstName, params.LastName, params.Email, params.Phone,
		params.EstimatedWealth, params.AnnualIncome, params.Notes, params.ExpressedNeeds,
		params.AssignedTo, params.ExpectedCloseDate,
	)
	return scanProspect(row)
}

func (r *Repository) List(ctx context.Context, organizationID uuid.UUID, stage string, limit, offset int) ([]Prospect, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT ` + prospectColumns + `
		FROM prospects
		WHERE organization_id = $1
	`
	args := []any{organizationID}
	if stage != "" {
		query += ` AND stage = $2`
		args = append(args, stage)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Prospect, 0)
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Count returns the number of prospects matching the list filter.
func (r *Repository) Count(ctx context.Context, organizationID uuid.UUID, stage string) (int, error) {
	query := `SELECT count(*) FROM prospects WHERE organization_id = $1`
	args := []any{organizationID}
	if stage != "" {
		query += ` AND stage = $2`
		args = append(args, stage)
	}

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) UpdateStage(ctx context.Context, id, organizationID uuid.UUID, stage string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET stage = $3, updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID, stage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateQualification persists the scoring engine output on the prospect.
func (r *Repository) UpdateQualification(ctx context.Context, id, organizationID uuid.UUID, label string, score int, justification string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET qualification = $3, score = $4, qualification_note = $5, updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID, label, score, justification)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
