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
)

// runBrochure sends the tenant's brochure to a prospect parked in a waiting
// stage. Linear step sequence; a failing step aborts the run and nothing
// already performed is rolled back.
func (e *Engine) runBrochure(ctx context.Context, prospectID uuid.UUID, org Organization, user *User) *Result {
	r := &run{workflow: WorkflowPlaquette}

	prospect, err := e.deps.Prospects.GetByID(ctx, prospectID, org.ID)
	if err != nil {
		return r.fail("prospect introuvable: " + err.Error())
	}
	if prospect.Email == nil || *prospect.Email == "" {
		return r.fail("adresse email du prospect manquante")
	}

	// Retried triggers must be harmless: an already-sent brochure is a
	// success, not an error.
	if repository.MetadataTruthy(prospect.Metadata, metaBrochureSent) {
		r.action("plaquette déjà envoyée")
		return r.success()
	}

	settings, err := e.deps.Settings.GetSettings(ctx, org.ID)
	if err != nil {
		return r.fail("configuration du tenant introuvable: " + err.Error())
	}
	if !settings.HasBrochure() {
		return r.fail("aucune plaquette configurée pour cette organisation")
	}

	resolved, warning, err := e.resolveSending(ctx, org, prospect, user)
	if err != nil {
		return r.fail(err.Error())
	}
	if warning != "" {
		r.warning = warning
		r.action(warning)
	}

	composed := e.composeFor(ctx, settings, WorkflowPlaquette, e.vars(prospect, org, resolved, "", ""))
	r.action("email rédigé")

	var attachment *email.Attachment
	if doc, err := e.deps.Documents.FetchBrochure(ctx, settings); err != nil {
		// A plain email is better than none.
		r.action("PDF non disponible")
		if e.deps.Log != nil {
			e.deps.Log.Warn("brochure download failed", "organizationId", org.ID, "error", err)
		}
	} else {
		attachment = &doc
		r.action("plaquette jointe: " + doc.FileName)
	}

	messageID, err := e.deps.Sender.Send(ctx, resolved.Credentials, email.Message{
		To:         *prospect.Email,
		Subject:    composed.Subject,
		Body:       composed.Body,
		Attachment: attachment,
	})
	if err != nil {
		return r.fail("échec de l'envoi: " + err.Error())
	}
	r.action("email envoyé à " + *prospect.Email)

	now := e.deps.Now().UTC()
	if _, err := e.deps.Prospects.SetMetadataFlagIfAbsent(ctx, prospect.ID, org.ID, metaBrochureSent, map[string]any{
		metaBrochureSent:   true,
		metaBrochureSentAt: now.Format(time.RFC3339),
	}); err != nil {
		return r.fail("échec de la mise à jour du prospect: " + err.Error())
	}

	if err := e.appendAudit(ctx, prospect, org, resolved, composed.Subject, WorkflowPlaquette, messageID,
		"Plaquette envoyée", "Plaquette envoyée à "+*prospect.Email); err != nil {
		return r.fail("échec de la journalisation: " + err.Error())
	}

	if e.deps.Log != nil {
		e.deps.Log.WorkflowEvent(WorkflowPlaquette, prospect.ID.String(), true, "")
	}
	return r.success()
}

// appendAudit writes the activity and email-log records every successful
// workflow ends with.
func (e *Engine) appendAudit(ctx context.Context, prospect repository.Prospect, org Organization, resolved credentials.Resolved, subject, emailType, messageID, title, description string) error {
	if err := e.deps.Audit.AppendActivity(ctx, audit.ActivityEntry{
		ProspectID:     prospect.ID,
		OrganizationID: org.ID,
		UserID:         resolved.UserID,
		ActivityType:   audit.ActivityEmailSent,
		Title:          title,
		Description:    description,
		Metadata:       map[string]any{"emailType": emailType, "credentialSource": resolved.Source},
	}); err != nil {
		return err
	}
	return e.deps.Audit.AppendEmailLog(ctx, audit.EmailLogEntry{
		ProspectID:     prospect.ID,
		OrganizationID: org.ID,
		UserID:         resolved.UserID,
		Recipient:      *prospect.Email,
		Subject:        subject,
		EmailType:      emailType,
		MessageID:      messageID,
		Status:         audit.EmailStatusSent,
	})
}

// composeFor renders the email for a workflow using the tenant's prompt
// config, falling back to the built-in default prompt.
func (e *Engine) composeFor(ctx context.Context, settings orgrepo.Settings, workflow string, vars map[string]string) email.Composed {
	prompt, _ := settings.PromptFor(workflow)
	return e.deps.Composer.Compose(ctx, promptFromConfig(prompt), email.DefaultPrompt(workflow), vars)
}

// promptFromConfig converts a stored tenant prompt config into the composer's
// prompt shape.
func promptFromConfig(cfg orgrepo.PromptConfig) email.Prompt {
	return email.Prompt{
		UseAI:        cfg.UseAI,
		SystemPrompt: cfg.SystemPrompt,
		UserTemplate: cfg.UserTemplate,
		Subject:      cfg.Subject,
		Body:         cfg.Body,
	}
}

// vars builds the substitution variables shared by all email templates.
func (e *Engine) vars(prospect repository.Prospect, org Organization, resolved credentials.Resolved, meetingTime, qualification string) map[string]string {
	return map[string]string{
		"prenom":        prospect.FirstName,
		"nom":           prospect.LastName,
		"conseiller":    resolved.Credentials.FromName,
		"organisation":  org.Name,
		"date_rdv":      meetingTime,
		"qualification": qualification,
	}
}
