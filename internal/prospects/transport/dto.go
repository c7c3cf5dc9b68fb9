package transport

import (
	"time"

	"github.com/google/uuid"

	"ultron_backend/internal/prospects/repository"
	"ultron_backend/internal/workflow"
)

// CreateProspectRequest contains data for registering a new prospect.
type CreateProspectRequest struct {
	FirstName         string     `json:"firstName" validate:"required,min=1,max=100"`
	LastName          string     `json:"lastName" validate:"required,min=1,max=100"`
	Email             *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	EstimatedWealth   *int64     `json:"estimatedWealth,omitempty" validate:"omitempty,min=0"`
	AnnualIncome      *int64     `json:"annualIncome,omitempty" validate:"omitempty,min=0"`
	Notes             *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ExpressedNeeds    *string    `json:"expressedNeeds,omitempty" validate:"omitempty,max=5000"`
	AssignedTo        *uuid.UUID `json:"assignedTo,omitempty"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
}

// ListProspectsRequest filters the prospect list.
type ListProspectsRequest struct {
	Stage  string `form:"stage" validate:"omitempty,max=50"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

// MoveStageRequest moves a prospect to a new pipeline stage, optionally with
// a transition subtype that can trigger a workflow.
type MoveStageRequest struct {
	Stage   string `json:"stage" validate:"required,max=50"`
	Subtype string `json:"subtype,omitempty" validate:"omitempty,oneof=plaquette rappel_differe"`
}

// ProspectResponse represents a prospect in API responses.
type ProspectResponse struct {
	ID                uuid.UUID      `json:"id"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	Email             *string        `json:"email,omitempty"`
	Phone             *string        `json:"phone,omitempty"`
	EstimatedWealth   *int64         `json:"estimatedWealth,omitempty"`
	AnnualIncome      *int64         `json:"annualIncome,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
	ExpressedNeeds    *string        `json:"expressedNeeds,omitempty"`
	Stage             string         `json:"stage"`
	Qualification     string         `json:"qualification"`
	Score             *int           `json:"score,omitempty"`
	QualificationNote *string        `json:"qualificationNote,omitempty"`
	AssignedTo        *uuid.UUID     `json:"assignedTo,omitempty"`
	ExpectedCloseDate *time.Time     `json:"expectedCloseDate,omitempty"`
	Metadata          map[string]any `json:"metadata"`
	CreatedAt         string         `json:"createdAt"`
	UpdatedAt         string         `json:"updatedAt"`
}

// ProspectListResponse wraps one page of prospects.
type ProspectListResponse struct {
	Items []ProspectResponse `json:"items"`
	Total int                `json:"total"`
}

// MoveStageResponse carries the updated prospect and, when the transition
// triggered a workflow, the workflow's structured result.
type MoveStageResponse struct {
	Prospect ProspectResponse `json:"prospect"`
	Workflow *workflow.Result `json:"workflow,omitempty"`
}

// ToProspectResponse maps a repository prospect to its API shape.
func ToProspectResponse(p repository.Prospect) ProspectResponse {
	return ProspectResponse{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Email:             p.Email,
		Phone:             p.Phone,
		EstimatedWealth:   p.EstimatedWealth,
		AnnualIncome:      p.AnnualIncome,
		Notes:             p.Notes,
		ExpressedNeeds:    p.ExpressedNeeds,
		Stage:             p.Stage,
		Qualification:     p.Qualification,
		Score:             p.Score,
		QualificationNote: p.QualificationNote,
		AssignedTo:        p.AssignedTo,
		ExpectedCloseDate: p.ExpectedCloseDate,
		Metadata:          p.Metadata,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
