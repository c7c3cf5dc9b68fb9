package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ultron_backend/internal/adapters/storage"
	"ultron_backend/internal/email"
	"ultron_backend/internal/events"
	"ultron_backend/internal/scheduler"
	"ultron_backend/internal/workflow"
	"ultron_backend/platform/ai/gemini"
	"ultron_backend/platform/config"
	"ultron_backend/platform/db"
	"ultron_backend/platform/logger"
)

// The worker consumes due meeting-reminder tasks from Redis and sends the
// reminder emails. It runs as a separate process so slow SMTP deliveries never
// block API request handling.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	var textGen email.TextGenerator
	if cfg.IsGeminiEnabled() {
		gen, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		textGen = gen
	}

	var storageSvc *storage.MinIOService
	if cfg.IsMinIOEnabled() {
		storageSvc, err = storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
	}

	// The workflow module subscribes its reminder consumer to the bus; the
	// asynq handler below publishes MeetingReminderDue into that bus. The
	// worker never schedules new reminders, so no scheduler client is wired.
	if _, err := workflow.NewModule(pool, eventBus, cfg, log, textGen, storageSvc, nil, cfg.SMTPTimeout); err != nil {
		log.Error("failed to initialize workflow module", "error", err)
		panic("failed to initialize workflow module: " + err.Error())
	}

	worker, err := scheduler.NewWorker(cfg, pool, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("reminder worker listening", "concurrency", cfg.AsynqConcurrency)
	worker.Run(ctx)

	log.Info("reminder worker stopped")
}
