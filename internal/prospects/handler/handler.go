package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ultron_backend/internal/prospects/service"
	"ultron_backend/internal/prospects/transport"
	"ultron_backend/internal/workflow"
	"ultron_backend/platform/httpkit"
	"ultron_backend/platform/validator"
)

// Handler handles HTTP requests for prospects.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid prospect ID"
)

// New creates a new prospects handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts prospect routes on the given (authenticated) group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/stage", h.MoveStage)
}

// Create registers a new prospect.
// POST /api/v1/prospects
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	prospect, err := h.svc.Create(c.Request.Context(), identity.OrganizationID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToProspectResponse(prospect))
}

// List retrieves prospects filtered by stage.
// GET /api/v1/prospects
func (h *Handler) List(c *gin.Context) {
	var req transport.ListProspectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	prospects, total, err := h.svc.List(c.Request.Context(), identity.OrganizationID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ProspectListResponse{Items: make([]transport.ProspectResponse, 0, len(prospects)), Total: total}
	for _, p := range prospects {
		resp.Items = append(resp.Items, transport.ToProspectResponse(p))
	}
	httpkit.OK(c, resp)
}

// GetByID retrieves a prospect by ID.
// GET /api/v1/prospects/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	prospect, err := h.svc.GetByID(c.Request.Context(), identity.OrganizationID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProspectResponse(prospect))
}

// MoveStage moves a prospect to a new pipeline stage and runs any matching
// stage workflow.
// POST /api/v1/prospects/:id/stage
func (h *Handler) MoveStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	user := workflow.User{ID: identity.UserID(), Email: identity.Email()}
	prospect, result, err := h.svc.MoveStage(c.Request.Context(), identity.OrganizationID(), user, id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.MoveStageResponse{
		Prospect: transport.ToProspectResponse(prospect),
		Workflow: result,
	})
}
