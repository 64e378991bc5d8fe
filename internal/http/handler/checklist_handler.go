package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

type ChecklistHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewChecklistHandler(projectService *service.ProjectService, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// UpdateItem godoc
// @Summary Update checklist item status
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param itemId path string true "Checklist item ID"
// @Param request body domain.UpdateChecklistItemRequest true "Status and comment"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/checklist/{itemId} [put]
func (h *ChecklistHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")

	var req domain.UpdateChecklistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.projectService.SetItemStatus(r.Context(), actor, id, itemID, req.Status, req.Comment)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update checklist item",
			zap.String("project_id", id.String()), zap.String("item_id", itemID))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// AddItem godoc
// @Summary Add custom checklist item
// @Description Adds a PM-defined item with category CUSTOM. Costs are in 만원.
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.AddChecklistItemRequest true "Item"
// @Success 201 {object} domain.ChecklistItem
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/checklist [post]
func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.AddChecklistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, item, err := h.projectService.AddCustomItem(r.Context(), actor, id, service.CustomItemInput{
		Title:       req.Title,
		Description: req.Description,
		CostMin:     req.CostMin,
		CostMax:     req.CostMax,
		Unit:        req.Unit,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to add checklist item", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// DeleteItem godoc
// @Summary Delete custom checklist item
// @Description Only PM-added items can be deleted.
// @Tags Checklist
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param itemId path string true "Checklist item ID"
// @Success 200 {object} domain.ProjectDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Catalog items cannot be deleted"
// @Security BearerAuth
// @Router /projects/{id}/checklist/{itemId} [delete]
func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")

	project, err := h.projectService.DeleteCustomItem(r.Context(), actor, id, itemID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete checklist item",
			zap.String("project_id", id.String()), zap.String("item_id", itemID))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}
