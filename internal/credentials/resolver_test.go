package credentials

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"ultron_backend/internal/credentials/grantcrypto"
)

type fakeGrantStore struct {
	personal    Grant
	personalErr error
	shared      Grant
	sharedErr   error
}

func (f *fakeGrantStore) GetPersonalGrant(ctx context.Context, organizationID, userID uuid.UUID) (Grant, error) {
	if f.personalErr != nil {
		return Grant{}, f.personalErr
	}
	return f.personal, nil
}

func (f *fakeGrantStore) GetSharedGrant(ctx context.Context, organizationID uuid.UUID) (Grant, error) {
	if f.sharedErr != nil {
		return Grant{}, f.sharedErr
	}
	return f.shared, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func newTestResolver(store GrantStore) *Resolver {
	r := NewResolver(store, nil)
	r.now = fixedNow
	return r
}

func TestResolvePrefersPersonalGrant(t *testing.T) {
	userID := uuid.New()
	store := &fakeGrantStore{
		personal: Grant{
			UserID:    &userID,
			UserEmail: "paul@cabinet.fr",
			SMTPHost:  "smtp.perso.fr",
			FromName:  "Paul Dupont",
		},
		shared: Grant{SMTPHost: "smtp.partage.fr"},
	}

	resolved, err := newTestResolver(store).Resolve(context.Background(), uuid.New(), &userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != SourcePersonal {
		t.Fatalf("expected personal source, got %q", resolved.Source)
	}
	if resolved.Credentials.Host != "smtp.perso.fr" {
		t.Fatalf("expected the personal grant's host, got %q", resolved.Credentials.Host)
	}
	if resolved.UserID == nil || *resolved.UserID != userID {
		t.Fatal("resolved grant should carry the owning user")
	}
}

func TestResolveExpiredPersonalGrantIsDistinct(t *testing.T) {
	userID := uuid.New()
	expiredAt := fixedNow().Add(-time.Hour)
	store := &fakeGrantStore{
		personal: Grant{
			UserID:    &userID,
			UserEmail: "paul@cabinet.fr",
			ExpiresAt: timePtr(expiredAt),
		},
		shared: Grant{SMTPHost: "smtp.partage.fr"},
	}

	_, err := newTestResolver(store).Resolve(context.Background(), uuid.New(), &userID)
	var expired *GrantExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("expected GrantExpiredError, got %v", err)
	}
	if expired.UserEmail != "paul@cabinet.fr" {
		t.Fatalf("error should identify the grant owner, got %q", expired.UserEmail)
	}
}

func TestResolveMissingPersonalFallsThroughToShared(t *testing.T) {
	userID := uuid.New()
	store := &fakeGrantStore{
		personalErr: ErrNoGrant,
		shared:      Grant{SMTPHost: "smtp.partage.fr", FromName: "Cabinet Dupont"},
	}

	resolved, err := newTestResolver(store).Resolve(context.Background(), uuid.New(), &userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != SourceOrganization {
		t.Fatalf("expected organization source, got %q", resolved.Source)
	}
}

func TestResolveNoGrantsAtAll(t *testing.T) {
	store := &fakeGrantStore{personalErr: ErrNoGrant, sharedErr: ErrNoGrant}

	_, err := newTestResolver(store).Resolve(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestResolveExpiredSharedGrantIsUnusable(t *testing.T) {
	store := &fakeGrantStore{
		shared: Grant{SMTPHost: "smtp.partage.fr", ExpiresAt: timePtr(fixedNow().Add(-time.Minute))},
	}

	_, err := newTestResolver(store).Resolve(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("an expired shared grant must not resolve, got %v", err)
	}
}

func TestResolveDecryptsPassword(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	cipher, err := grantcrypto.New(key)
	if err != nil {
		t.Fatalf("cipher setup failed: %v", err)
	}
	encrypted, err := cipher.Encrypt("s3cret")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	store := &fakeGrantStore{shared: Grant{SMTPHost: "smtp.partage.fr", SMTPPasswordEnc: encrypted}}
	resolver := NewResolver(store, cipher)
	resolver.now = fixedNow

	resolved, err := resolver.Resolve(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Credentials.Password != "s3cret" {
		t.Fatalf("password should be decrypted, got %q", resolved.Credentials.Password)
	}
}
