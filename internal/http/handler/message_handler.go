package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageService *service.MessageService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewMessageHandler(messageService *service.MessageService, maxUploadBytes int64, logger *zap.Logger) *MessageHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.DefaultMaxUploadBytes
	}
	return &MessageHandler{
		messageService: messageService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// List godoc
// @Summary List project messages
// @Description Returns the transcript in append order.
// @Tags Messages
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.MessageDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/messages [get]
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	messages, err := h.messageService.List(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list messages", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToMessageDTOs(messages))
}

// Send godoc
// @Summary Send a message
// @Description Appends a message from the caller. Attachments must be images previously uploaded via the attachments endpoint.
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.SendMessageRequest true "Message"
// @Success 201 {object} domain.MessageDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Project cancelled"
// @Security BearerAuth
// @Router /projects/{id}/messages [post]
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, domain.Attachment{
			Kind:     a.Kind,
			URL:      a.URL,
			MimeType: a.MimeType,
			Filename: a.Filename,
		})
	}

	msg, err := h.messageService.Append(r.Context(), actor, id, service.AppendInput{
		Body:        req.Body,
		Attachments: attachments,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to send message", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToMessageDTO(msg))
}

// Upload godoc
// @Summary Upload a chat image
// @Description Stores an image and returns the attachment fields to send with a message.
// @Tags Messages
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param file formData file true "Image"
// @Success 201 {object} domain.UploadDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/attachments [post]
func (h *MessageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+64<<10)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadBytes>>20))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	result, err := h.messageService.UploadImage(r.Context(), actor, id,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to upload image", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, domain.UploadDTO{
		URL:      result.Attachment.URL,
		MimeType: result.Attachment.MimeType,
		Filename: result.Attachment.Filename,
		Size:     result.Size,
	})
}

// ToggleRead godoc
// @Summary Toggle read state of a consumer message
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID" format(uuid)
// @Success 200 {object} domain.MessageDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Only consumer messages carry a read state"
// @Security BearerAuth
// @Router /messages/{id}/toggle-read [post]
func (h *MessageHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "message")
	if !ok {
		return
	}

	msg, err := h.messageService.ToggleRead(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to toggle read state", zap.String("message_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToMessageDTO(msg))
}

// SendCostReport godoc
// @Summary Send the cost consulting report
// @Description Appends the templated cost report built from the live estimate, the worry items and the assigned partners.
// @Tags Messages
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 201 {object} domain.MessageDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/messages/cost-report [post]
func (h *MessageHandler) SendCostReport(w http.ResponseWriter, r *http.Request) {
	h.sendTemplate(w, r, "cost report", h.messageService.SendCostReport)
}

// SendHappyCall godoc
// @Summary Send the happy-call message
// @Tags Messages
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 201 {object} domain.MessageDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/messages/happy-call [post]
func (h *MessageHandler) SendHappyCall(w http.ResponseWriter, r *http.Request) {
	h.sendTemplate(w, r, "happy call", h.messageService.SendHappyCall)
}

type templateSender func(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (*domain.Message, error)

func (h *MessageHandler) sendTemplate(w http.ResponseWriter, r *http.Request, name string, send templateSender) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	msg, err := send(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to send "+name, zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToMessageDTO(msg))
}
