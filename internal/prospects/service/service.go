package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ultron_backend/internal/events"
	orgrepo "ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/domain"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/prospects/transport"
	"ultron_backend/internal/workflow"
	"ultron_backend/platform/apperr"
	"ultron_backend/platform/logger"
	"ultron_backend/platform/phone"
)

// Service implements prospect intake and pipeline movement. Stage moves that
// match a workflow trigger run it synchronously and return its result.
type Service struct {
	repo   *repository.Repository
	orgs   *orgrepo.Repository
	engine *workflow.Engine
	bus    events.Bus
	log    *logger.Logger
}

func New(repo *repository.Repository, orgs *orgrepo.Repository, engine *workflow.Engine, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, orgs: orgs, engine: engine, bus: bus, log: log}
}

func (s *Service) Create(ctx context.Context, organizationID uuid.UUID, req transport.CreateProspectRequest) (repository.Prospect, error) {
	params := repository.CreateProspectParams{
		OrganizationID:    organizationID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		EstimatedWealth:   req.EstimatedWealth,
		AnnualIncome:      req.AnnualIncome,
		Notes:             req.Notes,
		ExpressedNeeds:    req.ExpressedNeeds,
		AssignedTo:        req.AssignedTo,
		ExpectedCloseDate: req.ExpectedCloseDate,
	}

	if req.Phone != nil && *req.Phone != "" {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	prospect, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Prospect{}, err
	}

	s.bus.Publish(ctx, events.ProspectCreated{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     prospect.ID,
		OrganizationID: organizationID,
	})

	return prospect, nil
}

func (s *Service) GetByID(ctx context.Context, organizationID, id uuid.UUID) (repository.Prospect, error) {
	prospect, err := s.repo.GetByID(ctx, id, organizationID)
	if err == repository.ErrNotFound {
		return repository.Prospect{}, apperr.NotFound("prospect not found")
	}
	return prospect, err
}

// List returns one page of prospects and the total match count. The page and
// the count are independent queries and run concurrently.
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, req transport.ListProspectsRequest) ([]repository.Prospect, int, error) {
	if req.Stage != "" && !domain.IsKnownStage(req.Stage) {
		return nil, 0, apperr.Validation("unknown pipeline stage")
	}

	var (
		items []repository.Prospect
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, organizationID, req.Stage, req.Limit, req.Offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, organizationID, req.Stage)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MoveStage moves a prospect to a new stage and runs the matching stage
// workflow, when one is defined for the transition. The workflow result is
// returned alongside the updated prospect; a failed workflow does not undo
// the stage change.
func (s *Service) MoveStage(ctx context.Context, organizationID uuid.UUID, user workflow.User, id uuid.UUID, req transport.MoveStageRequest) (repository.Prospect, *workflow.Result, error) {
	if !domain.IsKnownStage(req.Stage) {
		return repository.Prospect{}, nil, apperr.Validation("unknown pipeline stage")
	}

	prospect, err := s.repo.GetByID(ctx, id, organizationID)
	if err == repository.ErrNotFound {
		return repository.Prospect{}, nil, apperr.NotFound("prospect not found")
	}
	if err != nil {
		return repository.Prospect{}, nil, err
	}

	org, err := s.orgs.GetOrganization(ctx, organizationID)
	if err != nil {
		return repository.Prospect{}, nil, err
	}

	fromStage := prospect.Stage
	if err := s.repo.UpdateStage(ctx, id, organizationID, req.Stage); err != nil {
		return repository.Prospect{}, nil, err
	}

	s.bus.Publish(ctx, events.ProspectStageChanged{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     id,
		OrganizationID: organizationID,
		FromStage:      fromStage,
		ToStage:        req.Stage,
		Subtype:        req.Subtype,
		UserID:         &user.ID,
	})

	result := s.engine.Trigger(ctx, req.Stage, req.Subtype, id, workflow.Organization{
		ID:       org.ID,
		Name:     org.Name,
		DataMode: org.DataMode,
	}, &user)

	if result != nil && !result.Success && s.log != nil {
		s.log.WorkflowEvent(result.Workflow, id.String(), false, result.Error)
	}

	// Reload so the response reflects metadata and qualification writes made
	// by the workflow.
	updated, err := s.repo.GetByID(ctx, id, organizationID)
	if err != nil {
		return repository.Prospect{}, result, err
	}
	return updated, result, nil
}
