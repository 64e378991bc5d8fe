package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message. Seq must already be reserved on the project.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByProject returns the full transcript in sequence order.
func (r *MessageRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("seq ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) CountBySender(ctx context.Context, projectID uuid.UUID, sender domain.SenderRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("project_id = ? AND sender_role = ?", projectID, sender).
		Count(&count).Error
	return count, err
}

// HasMarked reports whether the project has a message tagged tag or whose
// body contains marker. An empty sender matches any sender.
func (r *MessageRepository) HasMarked(ctx context.Context, projectID uuid.UUID, sender domain.SenderRole, tag domain.MessageTag, marker string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("project_id = ?", projectID).
		Where("tag = ? OR body LIKE ?", tag, "%"+marker+"%")
	if sender != "" {
		query = query.Where("sender_role = ?", sender)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetRead updates the read flag, the only mutable column of a message.
func (r *MessageRepository) SetRead(ctx context.Context, id uuid.UUID, read bool) (*time.Time, error) {
	var readAt *time.Time
	if read {
		now := time.Now().UTC()
		readAt = &now
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": read,
			"read_at": readAt,
		}).Error
	return readAt, err
}
