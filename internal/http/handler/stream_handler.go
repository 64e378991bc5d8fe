package handler

import (
	"net/http"

	"github.com/openshop-kr/journey-api/internal/realtime"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

// StreamHandler upgrades to a websocket relaying the project's committed events.
type StreamHandler struct {
	projectService *service.ProjectService
	hub            *realtime.Hub
	logger         *zap.Logger
}

func NewStreamHandler(projectService *service.ProjectService, hub *realtime.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		projectService: projectService,
		hub:            hub,
		logger:         logger,
	}
}

// Stream godoc
// @Summary Project event stream
// @Description Websocket relay of message.created, project.* and payment.* events. Browsers may pass the token as access_token.
// @Tags Realtime
// @Param id path string true "Project ID" format(uuid)
// @Param access_token query string false "Bearer token for websocket clients"
// @Success 101 "Switching Protocols"
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	if _, err := h.projectService.GetByID(r.Context(), actor, id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to open stream", zap.String("project_id", id.String()))
		return
	}

	// The upgrader has already answered the client when this fails.
	if err := h.hub.ServeWS(w, r, id, actor.UserID); err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.String("project_id", id.String()),
			zap.String("user_id", actor.UserID),
			zap.Error(err),
		)
	}
}
