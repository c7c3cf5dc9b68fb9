// Package prospects provides the prospect pipeline bounded context module.
package prospects

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"ultron_backend/internal/events"
	apphttp "ultron_backend/internal/http"
	orgrepo "ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/handler"
	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/prospects/service"
	"ultron_backend/internal/workflow"
	"ultron_backend/platform/logger"
	"ultron_backend/platform/validator"
)

// Module is the prospects bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the prospects module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, engine *workflow.Engine, log *logger.Logger) *Module {
	repo := repository.New(pool)
	orgs := orgrepo.New(pool)
	svc := service.New(repo, orgs, engine, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "prospects"
}

// Service returns the prospect service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts prospect routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/prospects")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
