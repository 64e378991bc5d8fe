package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
)

// NotificationFilter narrows a recipient's inbox.
type NotificationFilter struct {
	UnreadOnly bool
	Type       domain.NotificationType
	ProjectID  *uuid.UUID
}

// NotificationRepository stores per-user notifications. Every query is scoped
// to the recipient.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) inbox(ctx context.Context, userID string, filter NotificationFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	return query
}

// ListByUser returns one page of the inbox, newest first, and the filtered total.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, filter NotificationFilter, page, pageSize int) ([]domain.Notification, int64, error) {
	var total int64
	if err := r.inbox(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	err := r.inbox(ctx, userID, filter).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	return notifications, total, err
}

// CountUnread counts unread notifications, optionally for one project.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string, projectID *uuid.UUID) (int64, error) {
	var count int64
	err := r.inbox(ctx, userID, NotificationFilter{UnreadOnly: true, ProjectID: projectID}).Count(&count).Error
	return count, err
}

// MarkAsRead marks one of the user's notifications read. It reports whether
// a row matched.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

// MarkProjectAsRead marks every unread notification of a project read,
// whoever the recipient is.
func (r *NotificationRepository) MarkProjectAsRead(ctx context.Context, projectID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("project_id = ? AND read = ?", projectID, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// MarkAllAsRead marks the user's unread notifications read, optionally only
// those of one project, and returns how many changed.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID string, projectID *uuid.UUID) (int64, error) {
	result := r.inbox(ctx, userID, NotificationFilter{UnreadOnly: true, ProjectID: projectID}).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
