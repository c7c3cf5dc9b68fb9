package adapters

import (
	"context"

	orgrepo "ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/qualification"
)

// Qualifier exposes the scoring service through the workflow engine's
// may-fail port shape. The current scorer is deterministic and never fails;
// the error return exists for AI-backed implementations.
type Qualifier struct {
	service *qualification.Service
}

func NewQualifier(service *qualification.Service) *Qualifier {
	return &Qualifier{service: service}
}

func (q *Qualifier) Qualify(ctx context.Context, prospect repository.Prospect, cfg orgrepo.ScoringConfig) (qualification.Result, error) {
	return q.service.Qualify(prospect, cfg), nil
}
