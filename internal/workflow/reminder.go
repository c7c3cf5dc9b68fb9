package workflow

import (
	"context"

	"ultron_backend/internal/audit"
	"ultron_backend/internal/email"
	"ultron_backend/internal/events"
	"ultron_backend/internal/prospects/repository"
)

// ReminderService sends the meeting reminder email when a scheduled reminder
// fires. It reuses the engine's collaborators; the reminder is a smaller
// version of the confirmation send with no idempotency flag (the scheduler
// enqueues each reminder exactly once).
type ReminderService struct {
	engine *Engine
}

func NewReminderService(engine *Engine) *ReminderService {
	return &ReminderService{engine: engine}
}

// Register subscribes the service to reminder-due events.
func (s *ReminderService) Register(bus events.Bus) {
	bus.Subscribe(events.MeetingReminderDue{}.EventName(), events.HandlerFunc(func(ctx context.Context, evt events.Event) error {
		due, ok := evt.(events.MeetingReminderDue)
		if !ok {
			return nil
		}
		return s.handle(ctx, due)
	}))
}

func (s *ReminderService) handle(ctx context.Context, due events.MeetingReminderDue) error {
	deps := s.engine.deps

	prospect, err := deps.Prospects.GetByID(ctx, due.ProspectID, due.OrganizationID)
	if err != nil {
		return err
	}
	if prospect.Email == nil || *prospect.Email == "" {
		return nil
	}

	settings, err := deps.Settings.GetSettings(ctx, due.OrganizationID)
	if err != nil {
		return err
	}

	org := Organization{ID: due.OrganizationID}
	if deps.Organizations != nil {
		if record, err := deps.Organizations.GetOrganization(ctx, due.OrganizationID); err == nil {
			org.Name = record.Name
			org.DataMode = record.DataMode
		}
	}
	var user *User
	if due.AdvisorID != nil {
		user = &User{ID: *due.AdvisorID}
	}
	resolved, _, err := s.engine.resolveSending(ctx, org, prospect, user)
	if err != nil {
		return err
	}

	vars := s.engine.vars(prospect, org, resolved, due.MeetingTime, due.Qualification)
	prompt, _ := settings.PromptFor(email.TypeRappelRdv)
	composed := deps.Composer.Compose(ctx, promptFromConfig(prompt), email.DefaultPrompt(email.TypeRappelRdv), vars)

	body := composed.Body
	if link := repository.MetadataString(prospect.Metadata, metaMeetingLink); link != "" {
		body += "\n\n----------\nLien de visioconférence : " + link
	}

	messageID, err := deps.Sender.Send(ctx, resolved.Credentials, email.Message{
		To:      *prospect.Email,
		Subject: composed.Subject,
		Body:    body,
	})
	if err != nil {
		if deps.Log != nil {
			deps.Log.EmailEvent(email.TypeRappelRdv, *prospect.Email, err)
		}
		return err
	}

	if err := deps.Audit.AppendEmailLog(ctx, audit.EmailLogEntry{
		ProspectID:     prospect.ID,
		OrganizationID: due.OrganizationID,
		UserID:         resolved.UserID,
		Recipient:      *prospect.Email,
		Subject:        composed.Subject,
		EmailType:      email.TypeRappelRdv,
		MessageID:      messageID,
		Status:         audit.EmailStatusSent,
	}); err != nil {
		return err
	}

	if deps.Log != nil {
		deps.Log.EmailEvent(email.TypeRappelRdv, *prospect.Email, nil)
	}
	return nil
}
