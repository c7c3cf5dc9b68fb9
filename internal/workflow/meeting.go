package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ultron_backend/internal/email"
	"ultron_backend/internal/prospects/domain"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/scheduler"
)

// reminderLead is how long before the meeting the reminder email goes out.
const reminderLead = 24 * time.Hour

// runMeetingConfirmation confirms a validated meeting by email and schedules
// a reminder ahead of it. Qualifies the prospect on the way when it has no
// classification yet.
func (e *Engine) runMeetingConfirmation(ctx context.Context, prospectID uuid.UUID, org Organization, user *User) *Result {
	r := &run{workflow: WorkflowRdvValide}

	prospect, err := e.deps.Prospects.GetByID(ctx, prospectID, org.ID)
	if err != nil {
		return r.fail("prospect introuvable: " + err.Error())
	}
	if prospect.Email == nil || *prospect.Email == "" {
		return r.fail("adresse email du prospect manquante")
	}

	if repository.MetadataTruthy(prospect.Metadata, metaMeetingSent) {
		r.action("email de confirmation déjà envoyé")
		return r.success()
	}

	settings, err := e.deps.Settings.GetSettings(ctx, org.ID)
	if err != nil {
		return r.fail("configuration du tenant introuvable: " + err.Error())
	}

	resolved, warning, err := e.resolveSending(ctx, org, prospect, user)
	if err != nil {
		return r.fail(err.Error())
	}
	if warning != "" {
		r.warning = warning
		r.action(warning)
	}

	// Qualify prospects the scoring engine has not classified yet. Failure
	// here is tolerated: the email goes out with whatever qualification the
	// prospect already had.
	if !domain.IsQualified(prospect.Qualification) {
		qual, err := e.deps.Qualifier.Qualify(ctx, prospect, settings.Scoring)
		if err != nil {
			r.action("qualification échouée")
			if e.deps.Log != nil {
				e.deps.Log.Warn("qualification failed", "prospectId", prospect.ID, "error", err)
			}
		} else if err := e.deps.Prospects.UpdateQualification(ctx, prospect.ID, org.ID, qual.Label, qual.Score, qual.Justification); err != nil {
			r.action("qualification échouée")
			if e.deps.Log != nil {
				e.deps.Log.Warn("qualification persist failed", "prospectId", prospect.ID, "error", err)
			}
		} else {
			prospect.Qualification = qual.Label
			prospect.Score = &qual.Score
			prospect.QualificationNote = &qual.Justification
			r.action("prospect qualifié " + qual.Label)
		}
	}

	meetingAt, hasMeetingTime := meetingTimeFrom(prospect)
	formattedTime := ""
	if hasMeetingTime {
		formattedTime = e.formatMeetingTime(meetingAt)
	}

	composed := e.composeFor(ctx, settings, WorkflowRdvValide, e.vars(prospect, org, resolved, formattedTime, prospect.Qualification))
	r.action("email rédigé")

	// A stored video-meeting link is appended after composition, never fed
	// through the template.
	body := composed.Body
	if link := repository.MetadataString(prospect.Metadata, metaMeetingLink); link != "" {
		body += "\n\n----------\nLien de visioconférence : " + link
		r.action("lien de visioconférence ajouté")
	}

	messageID, err := e.deps.Sender.Send(ctx, resolved.Credentials, email.Message{
		To:      *prospect.Email,
		Subject: composed.Subject,
		Body:    body,
	})
	if err != nil {
		return r.fail("échec de l'envoi: " + err.Error())
	}
	r.action("email envoyé à " + *prospect.Email)

	// Reminder at meeting minus 24h, only when that is still ahead of us.
	// Scheduling failure never fails the workflow.
	if hasMeetingTime {
		runAt := meetingAt.Add(-reminderLead)
		if runAt.After(e.deps.Now()) {
			advisorID := ""
			if resolved.UserID != nil {
				advisorID = resolved.UserID.String()
			}
			err := e.deps.Reminders.ScheduleMeetingReminder(ctx, scheduler.MeetingReminderPayload{
				ProspectID:     prospect.ID.String(),
				OrganizationID: org.ID.String(),
				AdvisorID:      advisorID,
				MeetingTime:    formattedTime,
			}, runAt)
			if err != nil {
				r.action("échec de la programmation du rappel")
				if e.deps.Log != nil {
					e.deps.Log.Warn("reminder scheduling failed", "prospectId", prospect.ID, "error", err)
				}
			} else {
				r.action("rappel programmé pour le " + e.formatMeetingTime(runAt))
			}
		}
	}

	now := e.deps.Now().UTC()
	if _, err := e.deps.Prospects.SetMetadataFlagIfAbsent(ctx, prospect.ID, org.ID, metaMeetingSent, map[string]any{
		metaMeetingSent:   true,
		metaMeetingSentAt: now.Format(time.RFC3339),
	}); err != nil {
		return r.fail("échec de la mise à jour du prospect: " + err.Error())
	}

	if err := e.appendAudit(ctx, prospect, org, resolved, composed.Subject, WorkflowRdvValide, messageID,
		"Rendez-vous confirmé", "Confirmation de rendez-vous envoyée à "+*prospect.Email); err != nil {
		return r.fail("échec de la journalisation: " + err.Error())
	}

	if e.deps.Log != nil {
		e.deps.Log.WorkflowEvent(WorkflowRdvValide, prospect.ID.String(), true, "")
	}
	return r.success()
}
