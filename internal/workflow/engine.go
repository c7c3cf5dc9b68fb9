// Package workflow implements the stage-transition workflow engine: when a
// prospect is moved to certain pipeline stages, a named workflow runs that
// composes and sends an email, updates the prospect's metadata and may
// schedule a follow-up reminder. The engine is a stateless orchestrator over
// externally owned records; it holds no state across invocations.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"ultron_backend/platform/logger"
)

// Workflow names, returned in results and used as email types and
// prompt-config keys.
const (
	WorkflowPlaquette = "plaquette"
	WorkflowRdvValide = "rdv_valide"
)

// Prospect metadata keys owned by the workflows. The metadata bag is shared
// with unrelated features, so these are the only keys the engine touches.
const (
	metaBrochureSent     = "brochureEmailSent"
	metaBrochureSentAt   = "brochureEmailSentAt"
	metaMeetingSent      = "meetingSummaryEmailSent"
	metaMeetingSentAt    = "meetingSummaryEmailSentAt"
	metaMeetingDateTime  = "meetingDateTime"
	metaMeetingLink      = "meetingLink"
)

// Organization is the tenant view the engine needs from the caller.
type Organization struct {
	ID       uuid.UUID
	Name     string
	DataMode string
}

// User is the acting advisor performing the stage move, when known.
type User struct {
	ID    uuid.UUID
	Email string
}

// Result is the structured outcome of one workflow run. Actions is an
// ordered human-readable trace of what happened, including tolerated
// failures. Warning signals degraded success (shared credentials used after
// the advisor's personal grant expired).
type Result struct {
	Workflow string   `json:"workflow"`
	Success  bool     `json:"success"`
	Actions  []string `json:"actions"`
	Error    string   `json:"error,omitempty"`
	Warning  string   `json:"warning,omitempty"`
}

// Deps are the collaborators the engine orchestrates.
type Deps struct {
	Prospects     ProspectStore
	Settings      SettingsStore
	Organizations OrganizationStore
	Credentials   CredentialResolver
	Composer      EmailComposer
	Sender        EmailSender
	Documents     DocumentFetcher
	Qualifier     Qualifier
	Reminders     ReminderScheduler
	Audit         AuditLog
	Log           *logger.Logger

	// Location is the business timezone all customer-facing timestamps are
	// rendered in, regardless of the process timezone.
	Location *time.Location

	// Now is the clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Engine dispatches stage transitions to workflows.
type Engine struct {
	deps Deps
}

func New(deps Deps) *Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Engine{deps: deps}
}

// run accumulates the trace of one workflow execution.
type run struct {
	workflow string
	actions  []string
	warning  string
}

func (r *run) action(msg string) {
	r.actions = append(r.actions, msg)
}

func (r *run) success() *Result {
	return &Result{Workflow: r.workflow, Success: true, Actions: r.actions, Warning: r.warning}
}

func (r *run) fail(message string) *Result {
	return &Result{Workflow: r.workflow, Success: false, Actions: r.actions, Error: message, Warning: r.warning}
}
