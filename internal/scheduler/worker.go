package scheduler

import (
	"context"
	"fmt"

	"ultron_backend/internal/events"
	"ultron_backend/internal/prospects/domain"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/platform/config"
	"ultron_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskMeetingReminder, w.handleMeetingReminder)

	return w, nil
}

func (w *Worker) handleMeetingReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMeetingReminderPayload(task)
	if err != nil {
		return err
	}

	prospectID, err := uuid.Parse(payload.ProspectID)
	if err != nil {
		return err
	}

	orgID, err := uuid.Parse(payload.OrganizationID)
	if err != nil {
		return err
	}

	prospect, err := w.repo.GetByID(ctx, prospectID, orgID)
	if err != nil {
		return err
	}

	// The meeting may have been cancelled or already held since the reminder
	// was scheduled. Only remind for prospects still in a meeting stage.
	if !domain.IsMeetingStage(prospect.Stage) {
		return nil
	}

	if prospect.Email == nil || *prospect.Email == "" {
		return nil
	}

	if w.bus == nil {
		return nil
	}

	var advisorID *uuid.UUID
	if payload.AdvisorID != "" {
		if parsed, err := uuid.Parse(payload.AdvisorID); err == nil {
			advisorID = &parsed
		}
	}

	return w.bus.PublishSync(ctx, events.MeetingReminderDue{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     prospect.ID,
		OrganizationID: prospect.OrganizationID,
		AdvisorID:      advisorID,
		MeetingTime:    payload.MeetingTime,
		Qualification:  prospect.Qualification,
	})
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
