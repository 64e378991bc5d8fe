package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/repository"
	"go.uber.org/zap"
)

// NotificationService persists notifications and serves the recipient's inbox.
// It is the NotificationSink used by the lifecycle services.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Emit stores a notification for its recipient.
func (s *NotificationService) Emit(ctx context.Context, event NotificationEvent) error {
	if strings.TrimSpace(event.UserID) == "" {
		return fmt.Errorf("notification recipient is required")
	}
	if !event.Type.IsValid() {
		return fmt.Errorf("unknown notification type: %s", event.Type)
	}

	notification := &domain.Notification{
		UserID:    event.UserID,
		ProjectID: event.ProjectID,
		Type:      event.Type,
		Title:     event.Title,
		Message:   truncateRunes(event.Message, 500),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("notification created",
		zap.String("notificationID", notification.ID.String()),
		zap.String("userID", event.UserID),
		zap.String("type", string(event.Type)),
	)
	return nil
}

// List returns one page of the actor's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, actor domain.Actor, filter repository.NotificationFilter, page, pageSize int) ([]domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, 0, newError(ErrInvalidInput, "notification", "", "unknown notification type").values(nil, filter.Type)
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, actor.UserID, filter, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// CountUnread counts the actor's unread notifications. A non-nil projectID
// limits the count to that project.
func (s *NotificationService) CountUnread(ctx context.Context, actor domain.Actor, projectID *uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, actor.UserID, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks one of the actor's notifications read. Notifications of
// other users are reported as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	ok, err := s.notificationRepo.MarkAsRead(ctx, id, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if !ok {
		return newError(ErrNotFound, "notification", id.String(), "")
	}
	return nil
}

// MarkAllAsRead clears the actor's unread notifications, optionally only
// those of one project.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, actor domain.Actor, projectID *uuid.UUID) error {
	n, err := s.notificationRepo.MarkAllAsRead(ctx, actor.UserID, projectID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	s.logger.Info("notifications marked as read",
		zap.String("userID", actor.UserID),
		zap.Int64("count", n),
	)
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
