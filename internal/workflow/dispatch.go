package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	orgrepo "ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/domain"
)

// Trigger maps a (stage, subtype) transition to zero or one workflow and runs
// it. A nil result means no workflow is defined for this transition, which is
// a normal outcome, not an error. Only "gestion" tenants are served; other
// data modes are handled by a separate product surface and yield nil.
func (e *Engine) Trigger(ctx context.Context, stageSlug, subtype string, prospectID uuid.UUID, org Organization, user *User) *Result {
	if org.DataMode != orgrepo.DataModeGestion {
		return nil
	}

	switch {
	case domain.IsWaitingStage(stageSlug) && subtype == domain.SubtypePlaquette:
		return e.guarded(WorkflowPlaquette, func() *Result {
			return e.runBrochure(ctx, prospectID, org, user)
		})
	case domain.IsMeetingStage(stageSlug):
		return e.guarded(WorkflowRdvValide, func() *Result {
			return e.runMeetingConfirmation(ctx, prospectID, org, user)
		})
	default:
		return nil
	}
}

// guarded converts a panic anywhere inside a workflow into a failed result,
// so one bad run never takes the caller down.
func (e *Engine) guarded(workflow string, fn func() *Result) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			if e.deps.Log != nil {
				e.deps.Log.Error("workflow panicked", "workflow", workflow, "panic", rec)
			}
			result = &Result{
				Workflow: workflow,
				Success:  false,
				Error:    fmt.Sprintf("erreur interne: %v", rec),
			}
		}
	}()
	return fn()
}
