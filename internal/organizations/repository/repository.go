package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("organization not found")

// Data modes. Only "gestion" tenants are served by the stage-transition
// workflow engine; other modes are handled by a separate product surface.
const (
	DataModeGestion  = "gestion"
	DataModeAutonome = "autonome"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Organization is a tenant account.
type Organization struct {
	ID        uuid.UUID
	Name      string
	DataMode  string
	CreatedAt time.Time
}

// PromptConfig drives email composition for one workflow type. When UseAI is
// false (or generation fails) the fixed Subject/Body pair is used with
// variable substitution instead.
type PromptConfig struct {
	UseAI        bool   `json:"useAi"`
	SystemPrompt string `json:"systemPrompt"`
	UserTemplate string `json:"userTemplate"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

// ScoringConfig holds the tenant's qualification weights and thresholds.
type ScoringConfig struct {
	WealthWeight  float64 `json:"wealthWeight"`
	IncomeWeight  float64 `json:"incomeWeight"`
	NeedsWeight   float64 `json:"needsWeight"`
	HotThreshold  int     `json:"hotThreshold"`
	WarmThreshold int     `json:"warmThreshold"`
}

// WithDefaults fills unset weights and thresholds. A freshly provisioned
// tenant has an empty scoring_config and gets the product defaults.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	if c.WealthWeight <= 0 {
		c.WealthWeight = 1.0
	}
	if c.IncomeWeight <= 0 {
		c.IncomeWeight = 1.0
	}
	if c.NeedsWeight <= 0 {
		c.NeedsWeight = 1.0
	}
	if c.HotThreshold <= 0 {
		c.HotThreshold = 70
	}
	if c.WarmThreshold <= 0 {
		c.WarmThreshold = 40
	}
	return c
}

// Settings is the per-tenant configuration read by the workflow engine.
// Read-only from the engine's perspective.
type Settings struct {
	OrganizationID  uuid.UUID
	PromptConfigs   map[string]PromptConfig
	Scoring         ScoringConfig
	BrochureBucket  *string
	BrochureFileKey *string
}

// HasBrochure reports whether a brochure document is configured.
func (s Settings) HasBrochure() bool {
	return s.BrochureBucket != nil && *s.BrochureBucket != "" &&
		s.BrochureFileKey != nil && *s.BrochureFileKey != ""
}

// PromptFor returns the prompt config for a workflow type, if configured.
func (s Settings) PromptFor(workflowType string) (PromptConfig, bool) {
	cfg, ok := s.PromptConfigs[workflowType]
	return cfg, ok
}

func (r *Repository) GetOrganization(ctx context.Context, id uuid.UUID) (Organization, error) {
	var org Organization
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, data_mode, created_at
		FROM organizations
		WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &org.DataMode, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, ErrNotFound
	}
	if err != nil {
		return Organization{}, err
	}
	return org, nil
}

func (r *Repository) GetSettings(ctx context.Context, organizationID uuid.UUID) (Settings, error) {
	settings := Settings{OrganizationID: organizationID}
	err := r.pool.QueryRow(ctx, `
		SELECT prompt_configs, scoring_config, brochure_bucket, brochure_file_key
		FROM organization_settings
		WHERE organization_id = $1
	`, organizationID).Scan(
		&settings.PromptConfigs,
		&settings.Scoring,
		&settings.BrochureBucket,
		&settings.BrochureFileKey,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, err
	}
	if settings.PromptConfigs == nil {
		settings.PromptConfigs = map[string]PromptConfig{}
	}
	return settings, nil
}
