package workflow

import (
	"context"
	"strings"
	"testing"

	"ultron_backend/internal/email"
	"ultron_backend/internal/events"
	"ultron_backend/platform/logger"
)

func TestReminderServiceSendsReminderEmail(t *testing.T) {
	env := meetingEnv()
	bus := events.NewInMemoryBus(logger.New("test"))
	NewReminderService(env.engine).Register(bus)

	err := bus.PublishSync(context.Background(), events.MeetingReminderDue{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     env.prospects.prospect.ID,
		OrganizationID: env.org.ID,
		AdvisorID:      &env.advisorID,
		MeetingTime:    "05/09/2026 à 14h30",
		Qualification:  "hot",
	})
	if err != nil {
		t.Fatalf("reminder handling failed: %v", err)
	}

	if len(env.sender.messages) != 1 {
		t.Fatalf("expected one reminder email, got %d", len(env.sender.messages))
	}
	msg := env.sender.messages[0]
	if msg.To != "claire.martin@exemple.fr" {
		t.Fatalf("unexpected recipient: %q", msg.To)
	}
	if !strings.HasSuffix(msg.Body, "Lien de visioconférence : https://meet.exemple.fr/abc") {
		t.Fatalf("video link footer missing from reminder body: %q", msg.Body)
	}

	if env.composer.lastVars["date_rdv"] != "05/09/2026 à 14h30" {
		t.Fatalf("reminder should reuse the scheduled meeting time, got %q", env.composer.lastVars["date_rdv"])
	}
	if env.composer.lastVars["organisation"] != "Cabinet Dupont" {
		t.Fatalf("organization name should be looked up for the template, got %q", env.composer.lastVars["organisation"])
	}

	if len(env.audit.emailLogs) != 1 {
		t.Fatalf("expected one email log entry, got %d", len(env.audit.emailLogs))
	}
	if env.audit.emailLogs[0].EmailType != email.TypeRappelRdv {
		t.Fatalf("unexpected email type: %q", env.audit.emailLogs[0].EmailType)
	}
}

func TestReminderServiceSkipsProspectWithoutEmail(t *testing.T) {
	env := meetingEnv()
	env.prospects.prospect.Email = nil
	bus := events.NewInMemoryBus(logger.New("test"))
	NewReminderService(env.engine).Register(bus)

	err := bus.PublishSync(context.Background(), events.MeetingReminderDue{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     env.prospects.prospect.ID,
		OrganizationID: env.org.ID,
		MeetingTime:    "05/09/2026 à 14h30",
	})
	if err != nil {
		t.Fatalf("missing email should be a silent skip, got %v", err)
	}
	if len(env.sender.messages) != 0 {
		t.Fatal("no email may be sent without a recipient address")
	}
}
