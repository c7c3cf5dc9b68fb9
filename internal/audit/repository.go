package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Activity types recorded in the activity log.
const (
	ActivityEmailSent         = "email_sent"
	ActivityEmailFailed       = "email_failed"
	ActivityWorkflowSkipped   = "workflow_skipped"
	ActivityQualificationSet  = "qualification_set"
	ActivityReminderScheduled = "reminder_scheduled"
	ActivityStageChanged      = "stage_changed"
)

// Email log statuses.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// Repository writes append-only audit records. Entries are never updated
// or deleted; corrections are new entries.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ActivityEntry is one row in the tenant activity log.
type ActivityEntry struct {
	ProspectID     uuid.UUID
	OrganizationID uuid.UUID
	UserID         *uuid.UUID
	ActivityType   string
	Title          string
	Description    string
	Metadata       map[string]any
}

// EmailLogEntry records one outbound email attempt, successful or not.
type EmailLogEntry struct {
	ProspectID     uuid.UUID
	OrganizationID uuid.UUID
	UserID         *uuid.UUID
	Recipient      string
	Subject        string
	EmailType      string
	MessageID      string
	Status         string
}

func (r *Repository) AppendActivity(ctx context.Context, entry ActivityEntry) error {
	meta := entry.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO activity_log (prospect_id, organization_id, user_id, activity_type, title, description, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ProspectID, entry.OrganizationID, entry.UserID,
		entry.ActivityType, entry.Title, entry.Description, metaJSON)
	return err
}

func (r *Repository) AppendEmailLog(ctx context.Context, entry EmailLogEntry) error {
	var messageID *string
	if entry.MessageID != "" {
		messageID = &entry.MessageID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO email_log (prospect_id, organization_id, user_id, recipient, subject, email_type, message_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ProspectID, entry.OrganizationID, entry.UserID,
		entry.Recipient, entry.Subject, entry.EmailType, messageID, entry.Status)
	return err
}
