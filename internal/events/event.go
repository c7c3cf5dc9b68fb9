// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"ultron_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Prospect Domain Events
// =============================================================================

// ProspectCreated is published when a new prospect enters the pipeline.
type ProspectCreated struct {
	BaseEvent
	ProspectID     uuid.UUID `json:"prospectId"`
	OrganizationID uuid.UUID `json:"organizationId"`
}

func (e ProspectCreated) EventName() string { return "prospects.created" }

// ProspectStageChanged is published after a prospect is moved to a new
// pipeline stage, before any stage workflow runs.
type ProspectStageChanged struct {
	BaseEvent
	ProspectID     uuid.UUID  `json:"prospectId"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	FromStage      string     `json:"fromStage"`
	ToStage        string     `json:"toStage"`
	Subtype        string     `json:"subtype,omitempty"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
}

func (e ProspectStageChanged) EventName() string { return "prospects.stage_changed" }

// =============================================================================
// Reminder Events
// =============================================================================

// MeetingReminderDue is published by the scheduler worker when a previously
// scheduled meeting reminder reaches its fire time.
type MeetingReminderDue struct {
	BaseEvent
	ProspectID     uuid.UUID  `json:"prospectId"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	AdvisorID      *uuid.UUID `json:"advisorId,omitempty"`
	MeetingTime    string     `json:"meetingTime"`
	Qualification  string     `json:"qualification"`
}

func (e MeetingReminderDue) EventName() string { return "prospects.meeting_reminder_due" }
