package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestScheduleMeetingReminderEnqueuesTask(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "rappels"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("client setup failed: %v", err)
	}
	defer client.Close()

	payload := MeetingReminderPayload{
		ProspectID:     uuid.NewString(),
		OrganizationID: uuid.NewString(),
		AdvisorID:      uuid.NewString(),
		MeetingTime:    "05/09/2026 à 14h30",
	}
	runAt := time.Now().Add(48 * time.Hour)

	if err := client.ScheduleMeetingReminder(context.Background(), payload, runAt); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("rappels")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one scheduled task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskMeetingReminder {
		t.Fatalf("unexpected task type: %q", tasks[0].Type)
	}

	parsed, err := ParseMeetingReminderPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("payload parse failed: %v", err)
	}
	if parsed != payload {
		t.Fatalf("payload mismatch: %+v vs %+v", parsed, payload)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Fatalf("nil close should be a no-op, got %v", err)
	}
	if err := client.ScheduleMeetingReminder(context.Background(), MeetingReminderPayload{}, time.Now()); err != nil {
		t.Fatalf("nil schedule should be a no-op, got %v", err)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}
