// Package credentials resolves the SMTP sending credentials a workflow should
// use: the acting advisor's personal grant when one exists, falling back to
// the organization-shared grant. An expired personal grant is surfaced as a
// distinct condition so callers can attempt the shared fallback instead of
// failing outright.
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ultron_backend/internal/credentials/grantcrypto"
)

// Grant sources.
const (
	SourcePersonal     = "personal"
	SourceOrganization = "organization"
)

// SMTPCredentials are ready-to-use (decrypted) sending credentials.
type SMTPCredentials struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Resolved is the outcome of a successful resolution. It is produced fresh on
// every workflow run and never cached.
type Resolved struct {
	Credentials SMTPCredentials
	Source      string
	UserID      *uuid.UUID
}

// ErrNoCredentials means no usable grant exists at all; there is no further
// fallback worth attempting.
var ErrNoCredentials = fmt.Errorf("no usable email credentials")

// GrantExpiredError means a real, previously-working personal grant has
// expired. Callers should retry the resolution without a preferred user to
// pick up the organization-shared grant before giving up.
type GrantExpiredError struct {
	UserEmail string
	ExpiredAt time.Time
}

func (e *GrantExpiredError) Error() string {
	return fmt.Sprintf("email grant for %s expired at %s", e.UserEmail, e.ExpiredAt.Format(time.RFC3339))
}

// Resolver resolves grants from the store and decrypts their secrets.
type Resolver struct {
	store  GrantStore
	cipher *grantcrypto.Cipher
	now    func() time.Time
}

func NewResolver(store GrantStore, cipher *grantcrypto.Cipher) *Resolver {
	return &Resolver{
		store:  store,
		cipher: cipher,
		now:    time.Now,
	}
}

// Resolve returns usable credentials for the organization, preferring the
// given user's personal grant.
//
//   - Personal grant present but expired: *GrantExpiredError. No silent
//     fallback; the caller decides whether a shared grant is acceptable.
//   - Personal grant absent: the shared grant is tried directly.
//   - No shared grant either: ErrNoCredentials.
func (r *Resolver) Resolve(ctx context.Context, organizationID uuid.UUID, preferredUserID *uuid.UUID) (Resolved, error) {
	if preferredUserID != nil {
		grant, err := r.store.GetPersonalGrant(ctx, organizationID, *preferredUserID)
		switch {
		case err == nil:
			if grant.Expired(r.now()) {
				return Resolved{}, &GrantExpiredError{UserEmail: grant.UserEmail, ExpiredAt: *grant.ExpiresAt}
			}
			return r.resolved(grant, SourcePersonal)
		case err == ErrNoGrant:
			// fall through to the shared grant
		default:
			return Resolved{}, err
		}
	}

	grant, err := r.store.GetSharedGrant(ctx, organizationID)
	if err == ErrNoGrant {
		return Resolved{}, ErrNoCredentials
	}
	if err != nil {
		return Resolved{}, err
	}
	if grant.Expired(r.now()) {
		return Resolved{}, ErrNoCredentials
	}

	return r.resolved(grant, SourceOrganization)
}

func (r *Resolver) resolved(grant Grant, source string) (Resolved, error) {
	password := grant.SMTPPasswordEnc
	if r.cipher != nil {
		decrypted, err := r.cipher.Decrypt(grant.SMTPPasswordEnc)
		if err != nil {
			return Resolved{}, fmt.Errorf("decrypt grant password: %w", err)
		}
		password = decrypted
	}

	return Resolved{
		Credentials: SMTPCredentials{
			Host:      grant.SMTPHost,
			Port:      grant.SMTPPort,
			Username:  grant.SMTPUsername,
			Password:  password,
			FromName:  grant.FromName,
			FromEmail: grant.FromEmail,
		},
		Source: source,
		UserID: grant.UserID,
	}, nil
}
