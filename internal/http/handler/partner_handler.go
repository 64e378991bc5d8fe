package handler

import (
	"net/http"

	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

type PartnerHandler struct {
	partnerService *service.PartnerService
	logger         *zap.Logger
}

func NewPartnerHandler(partnerService *service.PartnerService, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		logger:         logger,
	}
}

// List godoc
// @Summary List partners
// @Tags Partners
// @Produce json
// @Param category query string false "Filter by partner category"
// @Success 200 {array} domain.PartnerDTO
// @Security BearerAuth
// @Router /partners [get]
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partnerService.ListPartners(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list partners")
		return
	}

	dtos := make([]domain.PartnerDTO, 0, len(partners))
	for i := range partners {
		dtos = append(dtos, mapper.ToPartnerDTO(&partners[i]))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// ListAssignments godoc
// @Summary List partner assignments of a project
// @Tags Partners
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.PartnerAssignmentDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/partners [get]
func (h *PartnerHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	assignments, err := h.partnerService.ListAssignments(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list partner assignments", zap.String("project_id", id.String()))
		return
	}

	dtos := make([]domain.PartnerAssignmentDTO, 0, len(assignments))
	for i := range assignments {
		dtos = append(dtos, mapper.ToPartnerAssignmentDTO(&assignments[i]))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Assign godoc
// @Summary Assign a partner to a checklist item
// @Tags Partners
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.AssignPartnerRequest true "Assignment"
// @Success 201 {object} domain.PartnerAssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/partners [post]
func (h *PartnerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.AssignPartnerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	assignment, err := h.partnerService.Assign(r.Context(), actor, id, req.ChecklistItemID, req.PartnerID, req.Notes)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to assign partner", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToPartnerAssignmentDTO(assignment))
}

// UpdateStatus godoc
// @Summary Advance a partner assignment
// @Description Moves along pending, contacted, confirmed, completed. Steps may be skipped but never reversed.
// @Tags Partners
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID" format(uuid)
// @Param request body domain.UpdateAssignmentStatusRequest true "New status"
// @Success 200 {object} domain.PartnerAssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Backward move"
// @Security BearerAuth
// @Router /partner-assignments/{id}/status [put]
func (h *PartnerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "assignment")
	if !ok {
		return
	}

	var req domain.UpdateAssignmentStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	assignment, err := h.partnerService.UpdateStatus(r.Context(), actor, id, req.Status, req.Notes)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update assignment", zap.String("assignment_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToPartnerAssignmentDTO(assignment))
}
