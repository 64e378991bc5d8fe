package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Payment amount bounds in KRW.
const (
	MinPaymentAmount int64 = 1
	MaxPaymentAmount int64 = 1_000_000_000
)

// DefaultOverestimateRatio flags requests above 1.5x the project estimate.
const DefaultOverestimateRatio = 1.5

// IssueResult is a newly issued request, the message that carries it and any
// non-fatal warnings.
type IssueResult struct {
	Request  *domain.PaymentRequest
	Message  *domain.Message
	Warnings []string
}

// ConfirmInput is the processor's verified confirmation.
type ConfirmInput struct {
	PaymentRequestID  uuid.UUID
	ExternalReference string
	OrderID           string
	Amount            int64
}

// FailInput is the processor's verification failure.
type FailInput struct {
	PaymentRequestID  uuid.UUID
	ExternalReference string
	Reason            string
}

type PaymentService struct {
	projectRepo       *repository.ProjectRepository
	paymentRepo       *repository.PaymentRequestRepository
	dispatcher        *Dispatcher
	db                *gorm.DB
	logger            *zap.Logger
	overestimateRatio float64
}

func NewPaymentService(
	projectRepo *repository.ProjectRepository,
	paymentRepo *repository.PaymentRequestRepository,
	dispatcher *Dispatcher,
	db *gorm.DB,
	logger *zap.Logger,
	overestimateRatio float64,
) *PaymentService {
	if overestimateRatio <= 0 {
		overestimateRatio = DefaultOverestimateRatio
	}
	return &PaymentService{
		projectRepo:       projectRepo,
		paymentRepo:       paymentRepo,
		dispatcher:        dispatcher,
		db:                db,
		logger:            logger,
		overestimateRatio: overestimateRatio,
	}
}

// isValidPaymentTransition reports whether a request may move from one status
// to another. Only PENDING moves, and only into a terminal status.
func isValidPaymentTransition(from, to domain.PaymentStatus) bool {
	return from == domain.PaymentStatusPending && to.IsTerminal()
}

func transitionErr(request *domain.PaymentRequest, to domain.PaymentStatus) error {
	return newError(ErrInvalidStateTransition, "payment request", request.ID.String(), "").
		values(request.Status, to)
}

func validateAmount(amount int64) error {
	if amount < MinPaymentAmount || amount > MaxPaymentAmount {
		return newError(ErrAmountOutOfRange, "payment request", "",
			fmt.Sprintf("amount must be between %d and %d", MinPaymentAmount, MaxPaymentAmount)).values(nil, amount)
	}
	return nil
}

// Issue creates a PENDING request and the PM message that carries it. It
// fails with PENDING_EXISTS while another request is pending.
func (s *PaymentService) Issue(ctx context.Context, actor domain.Actor, projectID uuid.UUID, amount int64, description string) (*IssueResult, error) {
	return s.issue(ctx, actor, projectID, amount, description, false)
}

// Reissue cancels the pending request, if any, and issues a new one in the
// same transaction.
func (s *PaymentService) Reissue(ctx context.Context, actor domain.Actor, projectID uuid.UUID, amount int64, description string) (*IssueResult, error) {
	return s.issue(ctx, actor, projectID, amount, description, true)
}

func (s *PaymentService) issue(ctx context.Context, actor domain.Actor, projectID uuid.UUID, amount int64, description string, supersede bool) (*IssueResult, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "payment request", "", "only PMs and admins request payments")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = defaultPaymentLabel
	}

	fx := &effects{}
	result := &IssueResult{Warnings: []string{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if err := requireOperator(actor, project); err != nil {
			return err
		}
		if err := requireNotCancelled(project); err != nil {
			return err
		}
		if !project.HasPM() {
			return newError(ErrInvalidStateTransition, "project", projectID.String(), "no PM is assigned").
				values(project.Status, nil)
		}

		payments := s.paymentRepo.WithTx(tx)
		pending, err := payments.FindPending(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to check pending payment: %w", err)
		}
		if pending != nil {
			if !supersede {
				return newError(ErrPendingExists, "payment request", pending.ID.String(), "cancel the pending request first").
					values(pending.Amount, amount)
			}
			if err := s.setStatus(ctx, payments, pending, domain.PaymentStatusCancelled, fx); err != nil {
				return err
			}
		}

		request := &domain.PaymentRequest{
			ProjectID:   project.ID,
			Amount:      amount,
			Description: description,
			Status:      domain.PaymentStatusPending,
			Method:      paymentMethodDefault,
			OrderID:     "order_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
			IssuedByID:  actor.UserID,
		}
		if err := payments.Create(ctx, request); err != nil {
			return fmt.Errorf("failed to create payment request: %w", err)
		}

		msg := &domain.Message{
			SenderRole: domain.SenderPM,
			SenderID:   actor.UserID,
			Body:       paymentBody(amount, description),
			Tag:        domain.MessageTagPayment,
			Attachments: []domain.Attachment{{
				Kind:      domain.AttachmentKindPaymentRequest,
				PaymentID: &request.ID,
				Amount:    amount,
				Label:     description,
			}},
		}
		if err := appendMessage(ctx, tx, project.ID, msg); err != nil {
			return err
		}

		request.MessageID = &msg.ID
		if err := payments.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to link payment message: %w", err)
		}

		if project.EstimatedTotal > 0 && float64(amount) > float64(project.EstimatedTotal)*s.overestimateRatio {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("요청 금액 %s원이 예상 비용 %s원의 %.1f배를 초과합니다.",
					formatWon(amount), formatWon(project.EstimatedTotal), s.overestimateRatio))
		}

		result.Request = request
		result.Message = msg

		fx.notify(NotificationEvent{
			UserID:    project.OwnerID,
			ProjectID: &project.ID,
			Type:      domain.NotificationTypePaymentRequest,
			Title:     paymentRequestTitle,
			Message:   fmt.Sprintf("%s %s원 결제 요청이 도착했습니다.", description, formatWon(amount)),
		})
		fx.publish(domain.EventPaymentRequested, project.ID, mapper.ToPaymentRequestDTO(request))
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(msg))
		return nil
	})
	if err != nil {
		s.logFailure("payment issue failed", projectID, err)
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	s.logger.Info("payment requested",
		zap.String("project_id", projectID.String()),
		zap.String("payment_request_id", result.Request.ID.String()),
		zap.Int64("amount", amount),
		zap.Bool("reissue", supersede),
	)
	return result, nil
}

// Confirm completes a pending request after the processor verified it. A
// repeated confirmation with the same reference and amount is a no-op.
func (s *PaymentService) Confirm(ctx context.Context, input ConfirmInput) (*domain.PaymentRequest, error) {
	ref := strings.TrimSpace(input.ExternalReference)
	if ref == "" {
		return nil, newError(ErrInvalidInput, "payment request", input.PaymentRequestID.String(), "external reference is required")
	}

	fx := &effects{}
	request, err := s.resolve(ctx, input.PaymentRequestID, func(tx *gorm.DB, project *domain.Project, request *domain.PaymentRequest) error {
		if input.OrderID != "" && input.OrderID != request.OrderID {
			return newError(ErrInvalidInput, "payment request", request.ID.String(), "order id does not match").
				values(request.OrderID, input.OrderID)
		}

		if request.Status == domain.PaymentStatusCompleted {
			if request.ExternalReference != nil && *request.ExternalReference == ref && request.Amount == input.Amount {
				return nil
			}
			return transitionErr(request, domain.PaymentStatusCompleted)
		}
		if !isValidPaymentTransition(request.Status, domain.PaymentStatusCompleted) {
			return transitionErr(request, domain.PaymentStatusCompleted)
		}
		if input.Amount != request.Amount {
			return newError(ErrAmountMismatch, "payment request", request.ID.String(), "verified amount differs from the ledger").
				values(request.Amount, input.Amount)
		}

		now := time.Now().UTC()
		request.ExternalReference = &ref
		request.CompletedAt = &now
		if err := s.setStatus(ctx, s.paymentRepo.WithTx(tx), request, domain.PaymentStatusCompleted, fx); err != nil {
			return err
		}
		fx.notify(NotificationEvent{
			UserID:    project.OwnerID,
			ProjectID: &project.ID,
			Type:      domain.NotificationTypePaymentCompleted,
			Title:     paymentCompletedTitle,
			Message:   fmt.Sprintf("%s %s원 결제가 완료되었습니다.", request.Description, formatWon(request.Amount)),
		})
		return nil
	})
	if err != nil {
		s.logFailure("payment confirmation failed", input.PaymentRequestID, err)
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	return request, nil
}

// Fail records a verification failure reported by the processor.
func (s *PaymentService) Fail(ctx context.Context, input FailInput) (*domain.PaymentRequest, error) {
	fx := &effects{}
	request, err := s.resolve(ctx, input.PaymentRequestID, func(tx *gorm.DB, _ *domain.Project, request *domain.PaymentRequest) error {
		if request.Status == domain.PaymentStatusFailed {
			return nil
		}
		if !isValidPaymentTransition(request.Status, domain.PaymentStatusFailed) {
			return transitionErr(request, domain.PaymentStatusFailed)
		}
		if ref := strings.TrimSpace(input.ExternalReference); ref != "" {
			request.ExternalReference = &ref
		}
		request.FailureReason = strings.TrimSpace(input.Reason)
		return s.setStatus(ctx, s.paymentRepo.WithTx(tx), request, domain.PaymentStatusFailed, fx)
	})
	if err != nil {
		s.logFailure("payment failure callback failed", input.PaymentRequestID, err)
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	return request, nil
}

// CancelPending cancels a PENDING request on behalf of its project's operator.
func (s *PaymentService) CancelPending(ctx context.Context, actor domain.Actor, paymentRequestID uuid.UUID) (*domain.PaymentRequest, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "payment request", paymentRequestID.String(), "only PMs and admins cancel payment requests")
	}

	fx := &effects{}
	request, err := s.resolve(ctx, paymentRequestID, func(tx *gorm.DB, project *domain.Project, request *domain.PaymentRequest) error {
		if err := requireOperator(actor, project); err != nil {
			return err
		}
		if !isValidPaymentTransition(request.Status, domain.PaymentStatusCancelled) {
			return transitionErr(request, domain.PaymentStatusCancelled)
		}
		return s.setStatus(ctx, s.paymentRepo.WithTx(tx), request, domain.PaymentStatusCancelled, fx)
	})
	if err != nil {
		s.logFailure("payment cancellation failed", paymentRequestID, err)
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	return request, nil
}

// resolve locks the owning project and then the request, in that order, and
// runs fn on both.
func (s *PaymentService) resolve(ctx context.Context, paymentRequestID uuid.UUID, fn func(tx *gorm.DB, project *domain.Project, request *domain.PaymentRequest) error) (*domain.PaymentRequest, error) {
	current, err := s.paymentRepo.GetByID(ctx, paymentRequestID)
	if err != nil {
		return nil, lookupErr(err, "payment request", paymentRequestID)
	}

	var request *domain.PaymentRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(ctx, tx, current.ProjectID)
		if err != nil {
			return err
		}
		request, err = s.paymentRepo.WithTx(tx).GetForUpdate(ctx, paymentRequestID)
		if err != nil {
			return lookupErr(err, "payment request", paymentRequestID)
		}
		return fn(tx, project, request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// setStatus persists a status change and stamps its time.
func (s *PaymentService) setStatus(ctx context.Context, payments *repository.PaymentRequestRepository, request *domain.PaymentRequest, to domain.PaymentStatus, fx *effects) error {
	now := time.Now().UTC()
	var event domain.ProjectEventType
	switch to {
	case domain.PaymentStatusCompleted:
		event = domain.EventPaymentCompleted
	case domain.PaymentStatusCancelled:
		request.CancelledAt = &now
		event = domain.EventPaymentCancelled
	case domain.PaymentStatusFailed:
		request.FailedAt = &now
		event = domain.EventPaymentFailed
	}
	request.Status = to
	if err := payments.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to update payment request: %w", err)
	}
	fx.publish(event, request.ProjectID, mapper.ToPaymentRequestDTO(request))
	return nil
}

// ListByProject returns the project's requests, newest first.
func (s *PaymentService) ListByProject(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]domain.PaymentRequest, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr(err, "project", projectID)
	}
	if err := requireView(actor, project); err != nil {
		return nil, err
	}
	requests, err := s.paymentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return requests, nil
}

// RemindStale emits one REMINDER per PENDING request older than age that has
// not been reminded within cooldown. The request status is never changed.
func (s *PaymentService) RemindStale(ctx context.Context, now time.Time, age, cooldown time.Duration, limit int) (int, error) {
	stale, err := s.paymentRepo.ListStalePending(ctx, now.Add(-age), now.Add(-cooldown), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale payment requests: %w", err)
	}

	sent := 0
	for i := range stale {
		request := &stale[i]
		project, err := s.projectRepo.GetByID(ctx, request.ProjectID)
		if err != nil {
			s.logger.Warn("Skipping reminder for missing project",
				zap.String("payment_request_id", request.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if project.IsCancelled() {
			continue
		}

		if err := s.paymentRepo.MarkReminded(ctx, request.ID, now); err != nil {
			return sent, fmt.Errorf("failed to mark reminder: %w", err)
		}

		fx := &effects{}
		fx.notify(NotificationEvent{
			UserID:    project.OwnerID,
			ProjectID: &project.ID,
			Type:      domain.NotificationTypeReminder,
			Title:     reminderTitle,
			Message:   fmt.Sprintf("%s %s원 결제가 아직 완료되지 않았습니다.", request.Description, formatWon(request.Amount)),
		})
		s.dispatcher.dispatch(ctx, fx)
		sent++
	}
	return sent, nil
}

func (s *PaymentService) logFailure(msg string, id uuid.UUID, err error) {
	var le *LifecycleError
	if errors.As(err, &le) {
		s.logger.Debug(msg, zap.String("id", id.String()), zap.String("kind", le.Kind()))
		return
	}
	s.logger.Error(msg, zap.String("id", id.String()), zap.Error(err))
}
