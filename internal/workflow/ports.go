package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ultron_backend/internal/audit"
	"ultron_backend/internal/credentials"
	"ultron_backend/internal/email"
	orgrepo "ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/qualification"
	"ultron_backend/internal/scheduler"
)

// Ports consumed by the engine. Each is satisfied by a concrete service in
// production and by a fake in tests.

// ProspectStore reads prospects and performs the only writes the engine is
// allowed to make: qualification fields and metadata merges.
type ProspectStore interface {
	GetByID(ctx context.Context, id, organizationID uuid.UUID) (repository.Prospect, error)
	MergeMetadata(ctx context.Context, id, organizationID uuid.UUID, patch map[string]any) error
	SetMetadataFlagIfAbsent(ctx context.Context, id, organizationID uuid.UUID, flag string, patch map[string]any) (bool, error)
	UpdateQualification(ctx context.Context, id, organizationID uuid.UUID, label string, score int, justification string) error
}

// SettingsStore reads per-tenant workflow configuration.
type SettingsStore interface {
	GetSettings(ctx context.Context, organizationID uuid.UUID) (orgrepo.Settings, error)
}

// OrganizationStore reads tenant accounts. Used by the reminder path, which
// starts from a scheduler payload rather than a caller-supplied organization.
type OrganizationStore interface {
	GetOrganization(ctx context.Context, id uuid.UUID) (orgrepo.Organization, error)
}

// CredentialResolver resolves SMTP sending credentials, preferring a named
// user's personal grant.
type CredentialResolver interface {
	Resolve(ctx context.Context, organizationID uuid.UUID, preferredUserID *uuid.UUID) (credentials.Resolved, error)
}

// EmailComposer renders a subject/body pair. Composition never fails; the
// implementation falls back to fixed templates internally.
type EmailComposer interface {
	Compose(ctx context.Context, prompt, fallback email.Prompt, vars map[string]string) email.Composed
}

// EmailSender dispatches one message and returns a message id.
type EmailSender interface {
	Send(ctx context.Context, creds credentials.SMTPCredentials, msg email.Message) (string, error)
}

// DocumentFetcher retrieves the tenant's brochure document. Failure is
// tolerated by the brochure workflow.
type DocumentFetcher interface {
	FetchBrochure(ctx context.Context, settings orgrepo.Settings) (email.Attachment, error)
}

// Qualifier classifies a prospect. Failure is tolerated by the
// meeting-confirmation workflow.
type Qualifier interface {
	Qualify(ctx context.Context, prospect repository.Prospect, cfg orgrepo.ScoringConfig) (qualification.Result, error)
}

// ReminderScheduler durably schedules a one-shot meeting reminder.
type ReminderScheduler interface {
	ScheduleMeetingReminder(ctx context.Context, payload scheduler.MeetingReminderPayload, runAt time.Time) error
}

// AuditLog appends write-only audit records.
type AuditLog interface {
	AppendActivity(ctx context.Context, entry audit.ActivityEntry) error
	AppendEmailLog(ctx context.Context, entry audit.EmailLogEntry) error
}
