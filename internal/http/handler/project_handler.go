package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Description Paginated projects visible to the caller: own projects for consumers, assigned ones for PMs, all for admins.
// @Description The admin's unassigned queue is status=PENDING_PM.
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(PENDING_PM, PM_ASSIGNED, IN_PROGRESS, PAYMENT_PENDING, ACTIVE, POST_SERVICE, COMPLETED, CANCELLED)
// @Param pmId query string false "Filter by PM" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	filter := service.ProjectListFilter{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ProjectStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = status
	}
	if pid := r.URL.Query().Get("pmId"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid pmId: must be a valid UUID")
			return
		}
		filter.PMID = &id
	}

	projects, total, err := h.projectService.List(r.Context(), actor, filter, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list projects")
		return
	}

	dtos := make([]domain.ProjectDTO, 0, len(projects))
	for i := range projects {
		dtos = append(dtos, mapper.ToProjectDTO(&projects[i]))
	}
	respondJSON(w, http.StatusOK, paginated(dtos, total, page, pageSize))
}

// Create godoc
// @Summary Create project
// @Description Opens a project from the wizard answers. Consumers only.
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.CreateProjectRequest true "Wizard answers"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req domain.CreateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	size, ok := resolveStoreSize(req.StoreSize, req.StoreSizePreset)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "storeSize or storeSizePreset is required")
		return
	}

	project, err := h.projectService.Create(r.Context(), actor, service.CreateProjectInput{
		BusinessCategory: req.BusinessCategory,
		District:         req.District,
		SubDistrict:      req.SubDistrict,
		StoreSize:        size,
		ItemStatuses:     req.ItemStatuses,
		Note:             req.Note,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create project")
		return
	}

	w.Header().Set("Location", "/api/v1/projects/"+project.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToProjectDTO(project))
}

// GetByID godoc
// @Summary Get project by ID
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get project", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// AssignPM godoc
// @Summary Assign a PM
// @Description Attaches a PM to a project awaiting one and moves it to stage 7. Admins only.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.AssignPMRequest true "PM to assign"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Project already has a PM or is cancelled"
// @Security BearerAuth
// @Router /projects/{id}/assign-pm [post]
func (h *ProjectHandler) AssignPM(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.AssignPMRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.projectService.AssignPM(r.Context(), actor, id, req.PMID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to assign PM", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// Cancel godoc
// @Summary Cancel project
// @Description Cancels the project and any pending payment request. Repeating the call is a no-op.
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Project already completed"
// @Security BearerAuth
// @Router /projects/{id}/cancel [post]
func (h *ProjectHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.Cancel(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to cancel project", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// UpdateNotes godoc
// @Summary Update PM notes
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.UpdateNotesRequest true "Notes"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/notes [put]
func (h *ProjectHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.UpdateNotesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.projectService.UpdateNotes(r.Context(), actor, id, req.Notes)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update notes", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// Estimate godoc
// @Summary Live project estimate
// @Description Recomputes the cost range from the project's current checklist. The stored estimatedTotal is not changed.
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/estimate [get]
func (h *ProjectHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get project", zap.String("project_id", id.String()))
		return
	}
	breakdown, err := h.projectService.Estimate(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute estimate", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTO(project.BusinessCategory, project.StoreSize, breakdown))
}
