package workflow

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ultron_backend/internal/adapters"
	"ultron_backend/internal/adapters/storage"
	"ultron_backend/internal/audit"
	"ultron_backend/internal/credentials"
	"ultron_backend/internal/credentials/grantcrypto"
	"ultron_backend/internal/email"
	"ultron_backend/internal/events"
	orgrepo "ultron_backend/internal/organizations/repository"
	prospectrepo "ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/qualification"
	"ultron_backend/internal/scheduler"
	"ultron_backend/platform/config"
	"ultron_backend/platform/logger"
)

// Module wires the workflow engine and its reminder consumer from concrete
// services. Created once by the composition root; the engine itself stays
// stateless.
type Module struct {
	engine    *Engine
	reminders *ReminderService
}

// ModuleConfig is the configuration surface the module needs.
type ModuleConfig interface {
	config.CredentialConfig
	config.WorkflowConfig
}

// NewModule builds the engine. gen and docs may be nil when the deployment
// has no AI or object-storage configured; the workflows degrade accordingly.
func NewModule(pool *pgxpool.Pool, bus events.Bus, cfg ModuleConfig, log *logger.Logger, gen email.TextGenerator, docs *storage.MinIOService, reminderClient *scheduler.Client, smtpTimeout time.Duration) (*Module, error) {
	location, err := time.LoadLocation(cfg.GetBusinessTimezone())
	if err != nil {
		return nil, err
	}

	var cipher *grantcrypto.Cipher
	if key := cfg.GetGrantEncryptionKey(); len(key) > 0 {
		cipher, err = grantcrypto.New(key)
		if err != nil {
			return nil, err
		}
	}

	engine := New(Deps{
		Prospects:     prospectrepo.New(pool),
		Settings:      orgrepo.New(pool),
		Organizations: orgrepo.New(pool),
		Credentials:   credentials.NewResolver(credentials.NewRepository(pool), cipher),
		Composer:      email.NewComposer(gen, log),
		Sender:        email.NewSMTPSender(smtpTimeout),
		Documents:     adapters.NewBrochureFetcher(docs),
		Qualifier:     adapters.NewQualifier(qualification.New()),
		Reminders:     reminderClient,
		Audit:         audit.New(pool),
		Log:           log,
		Location:      location,
	})

	reminders := NewReminderService(engine)
	reminders.Register(bus)

	return &Module{engine: engine, reminders: reminders}, nil
}

// Engine returns the workflow engine for callers that trigger transitions.
func (m *Module) Engine() *Engine {
	return m.engine
}
