package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler handles HTTP requests for notifications
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List godoc
// @Summary List notifications
// @Description Get paginated list of notifications for the current user
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param unreadOnly query bool false "Only unread notifications" default(false)
// @Param type query string false "Filter by type" Enums(PM_ASSIGNED, NEW_MESSAGE, STEP_CHANGED, PAYMENT_REQUEST, PAYMENT_COMPLETED, REMINDER)
// @Param projectId query string false "Only notifications of this project" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.NotificationDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	projectID, ok := projectFilter(w, r)
	if !ok {
		return
	}
	filter := repository.NotificationFilter{
		UnreadOnly: r.URL.Query().Get("unreadOnly") == "true",
		Type:       domain.NotificationType(r.URL.Query().Get("type")),
		ProjectID:  projectID,
	}

	notifications, total, err := h.notificationService.List(r.Context(), actor, filter, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list notifications")
		return
	}

	dtos := make([]domain.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		dtos = append(dtos, mapper.ToNotificationDTO(&notifications[i]))
	}
	respondJSON(w, http.StatusOK, paginated(dtos, total, page, pageSize))
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Tags Notifications
// @Produce json
// @Success 200 {object} domain.UnreadCountDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Param projectId query string false "Only notifications of this project" format(uuid)
// @Router /notifications/count [get]
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	projectID, ok := projectFilter(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), actor, projectID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to count notifications")
		return
	}

	respondJSON(w, http.StatusOK, domain.UnreadCountDTO{Count: count})
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Tags Notifications
// @Param id path string true "Notification ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), actor, id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to mark notification as read", zap.String("notification_id", id.String()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags Notifications
// @Param projectId query string false "Only notifications of this project" format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	projectID, ok := projectFilter(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(r.Context(), actor, projectID); err != nil {
		respondServiceError(w, h.logger, err, "Failed to mark notifications as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// projectFilter parses the optional projectId query parameter.
func projectFilter(w http.ResponseWriter, r *http.Request) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("projectId")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return nil, false
	}
	return &id, true
}
