package handler

import (
	"net/http"

	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment-request sub-workflow. Ledger state only
// changes through the processor callbacks, never from client-side signals.
type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func toIssueResponse(result *service.IssueResult) domain.IssuePaymentResponse {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return domain.IssuePaymentResponse{
		PaymentRequest: mapper.ToPaymentRequestDTO(result.Request),
		Message:        mapper.ToMessageDTO(result.Message),
		Warnings:       warnings,
	}
}

// List godoc
// @Summary List payment requests of a project
// @Tags Payments
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.PaymentRequestDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	requests, err := h.paymentService.ListByProject(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list payment requests", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToPaymentRequestDTOs(requests))
}

// Issue godoc
// @Summary Issue a payment request
// @Description Creates a PENDING request and posts it to the transcript. Fails with PENDING_EXISTS while another request is pending.
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.IssuePaymentRequest true "Amount in KRW"
// @Success 201 {object} domain.IssuePaymentResponse
// @Failure 400 {object} domain.APIError "AMOUNT_OUT_OF_RANGE"
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "PENDING_EXISTS"
// @Security BearerAuth
// @Router /projects/{id}/payments [post]
func (h *PaymentHandler) Issue(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, false)
}

// Reissue godoc
// @Summary Reissue a payment request
// @Description Cancels the pending request, if any, and issues a new one in the same transaction.
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.IssuePaymentRequest true "Amount in KRW"
// @Success 201 {object} domain.IssuePaymentResponse
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/payments/reissue [post]
func (h *PaymentHandler) Reissue(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, true)
}

func (h *PaymentHandler) issue(w http.ResponseWriter, r *http.Request, reissue bool) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.IssuePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	issue := h.paymentService.Issue
	if reissue {
		issue = h.paymentService.Reissue
	}
	result, err := issue(r.Context(), actor, id, req.Amount, req.Description)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to issue payment request", zap.String("project_id", id.String()))
		return
	}

	respondJSON(w, http.StatusCreated, toIssueResponse(result))
}

// Cancel godoc
// @Summary Cancel a pending payment request
// @Tags Payments
// @Produce json
// @Param id path string true "Payment request ID" format(uuid)
// @Success 200 {object} domain.PaymentRequestDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Request is not pending"
// @Security BearerAuth
// @Router /payments/{id}/cancel [post]
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id", "payment request")
	if !ok {
		return
	}

	request, err := h.paymentService.CancelPending(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to cancel payment request", zap.String("payment_request_id", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToPaymentRequestDTO(request))
}

// Confirm godoc
// @Summary Payment processor confirmation callback
// @Description Marks the request COMPLETED when the verified amount matches. Replaying the same confirmation is a no-op.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.ConfirmPaymentRequest true "Verified confirmation"
// @Success 200 {object} domain.PaymentRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 422 {object} domain.APIError "AMOUNT_MISMATCH"
// @Security ApiKeyAuth
// @Router /payments/callbacks/confirm [post]
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	request, err := h.paymentService.Confirm(r.Context(), service.ConfirmInput{
		PaymentRequestID:  req.PaymentRequestID,
		ExternalReference: req.PaymentKey,
		OrderID:           req.OrderID,
		Amount:            req.Amount,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to confirm payment",
			zap.String("payment_request_id", req.PaymentRequestID.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToPaymentRequestDTO(request))
}

// Fail godoc
// @Summary Payment processor failure callback
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.FailPaymentRequest true "Verification failure"
// @Success 200 {object} domain.PaymentRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payments/callbacks/fail [post]
func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	var req domain.FailPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	request, err := h.paymentService.Fail(r.Context(), service.FailInput{
		PaymentRequestID:  req.PaymentRequestID,
		ExternalReference: req.PaymentKey,
		Reason:            req.Reason,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to record payment failure",
			zap.String("payment_request_id", req.PaymentRequestID.String()))
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToPaymentRequestDTO(request))
}
