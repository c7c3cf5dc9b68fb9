package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoGrant is returned by the repository when no matching grant row exists.
var ErrNoGrant = errors.New("no email grant found")

// Grant is a stored SMTP sending grant. Personal grants carry a user id;
// the organization-shared grant has none. Passwords are encrypted at rest.
type Grant struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	UserID          *uuid.UUID
	UserEmail       string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPasswordEnc string
	FromName        string
	FromEmail       string
	ExpiresAt       *time.Time
}

// Expired reports whether the grant has an expiration in the past.
func (g Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && g.ExpiresAt.Before(now)
}

// GrantStore is the persistence surface the resolver needs.
type GrantStore interface {
	GetPersonalGrant(ctx context.Context, organizationID, userID uuid.UUID) (Grant, error)
	GetSharedGrant(ctx context.Context, organizationID uuid.UUID) (Grant, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const grantColumns = `
	id, organization_id, user_id, user_email, smtp_host, smtp_port,
	smtp_username, smtp_password_enc, from_name, from_email, expires_at
`

func scanGrant(row pgx.Row) (Grant, error) {
	var g Grant
	err := row.Scan(
		&g.ID, &g.OrganizationID, &g.UserID, &g.UserEmail, &g.SMTPHost, &g.SMTPPort,
		&g.SMTPUsername, &g.SMTPPasswordEnc, &g.FromName, &g.FromEmail, &g.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Grant{}, ErrNoGrant
	}
	if err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (r *Repository) GetPersonalGrant(ctx context.Context, organizationID, userID uuid.UUID) (Grant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM email_grants
		WHERE organization_id = $1 AND user_id = $2
	`, organizationID, userID)
	return scanGrant(row)
}

func (r *Repository) GetSharedGrant(ctx context.Context, organizationID uuid.UUID) (Grant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM email_grants
		WHERE organization_id = $1 AND user_id IS NULL
	`, organizationID)
	return scanGrant(row)
}

// Compile-time check.
var _ GrantStore = (*Repository)(nil)
