package handler

import (
	"net/http"

	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

// StageHandler drives the stage machine. An unforced request with unmet
// exit requirements or a large jump answers 200 with committed=false.
type StageHandler struct {
	stageService *service.StageService
	logger       *zap.Logger
}

func NewStageHandler(stageService *service.StageService, logger *zap.Logger) *StageHandler {
	return &StageHandler{
		stageService: stageService,
		logger:       logger,
	}
}

func toTransitionDTO(result *service.TransitionResult) domain.TransitionResultDTO {
	dto := domain.TransitionResultDTO{
		Project:   mapper.ToProjectDTO(result.Project),
		FromStage: result.FromStage,
		ToStage:   result.ToStage,
		Committed: result.Committed,
		Unchanged: result.Unchanged,
		Magnitude: result.Magnitude,
		LargeJump: result.LargeJump,
		Warnings:  mapper.ToRequirementDTOs(result.Warnings),
	}
	if result.Message != nil {
		m := mapper.ToMessageDTO(result.Message)
		dto.Message = &m
	}
	return dto
}

// Advance godoc
// @Summary Advance one stage
// @Description Moves the project to the next stage. Without force, unmet exit requirements are returned as warnings and nothing is written.
// @Tags Stages
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.AdvanceStageRequest false "Options"
// @Success 200 {object} domain.TransitionResultDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Stage already at maximum or project cancelled"
// @Security BearerAuth
// @Router /projects/{id}/advance [post]
func (h *StageHandler) Advance(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.AdvanceStageRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	result, err := h.stageService.Advance(r.Context(), actor, id, service.TransitionOptions{Force: req.Force})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to advance stage", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, toTransitionDTO(result))
}

// SetStage godoc
// @Summary Set stage
// @Description Moves the project to an arbitrary stage between 7 and 12. Moving backwards is reserved to admins.
// @Tags Stages
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.SetStageRequest true "Target stage"
// @Success 200 {object} domain.TransitionResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError "Role not allowed or PM reversal"
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/stage [post]
func (h *StageHandler) SetStage(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.SetStageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.stageService.SetStage(r.Context(), actor, id, req.TargetStage, service.TransitionOptions{Force: req.Force})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to set stage", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, toTransitionDTO(result))
}

// Requirements godoc
// @Summary Exit requirements of the current stage
// @Tags Stages
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.RequirementsDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/requirements [get]
func (h *StageHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	project, checks, err := h.stageService.Requirements(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to evaluate requirements", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, domain.RequirementsDTO{
		Stage:        project.CurrentStage,
		StageLabel:   domain.StageLabel(project.CurrentStage),
		Requirements: mapper.ToRequirementDTOs(checks),
	})
}
