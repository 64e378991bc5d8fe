package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: db}
}

func (r *PaymentRequestRepository) WithTx(tx *gorm.DB) *PaymentRequestRepository {
	return &PaymentRequestRepository{db: tx}
}

func (r *PaymentRequestRepository) Create(ctx context.Context, request *domain.PaymentRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *PaymentRequestRepository) Update(ctx context.Context, request *domain.PaymentRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *PaymentRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentRequest, error) {
	var request domain.PaymentRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetForUpdate loads the request with a row lock; callers run it inside a transaction.
func (r *PaymentRequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PaymentRequest, error) {
	var request domain.PaymentRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPending returns the project's pending request, or nil when there is none.
func (r *PaymentRequestRepository) FindPending(ctx context.Context, projectID uuid.UUID) (*domain.PaymentRequest, error) {
	var request domain.PaymentRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, domain.PaymentStatusPending).
		Order("created_at DESC").
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PaymentRequestRepository) CountByStatus(ctx context.Context, projectID uuid.UUID, status domain.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PaymentRequest{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Count(&count).Error
	return count, err
}

func (r *PaymentRequestRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.PaymentRequest, error) {
	var requests []domain.PaymentRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListStalePending returns pending requests created before createdBefore that
// have not been reminded since remindedBefore.
func (r *PaymentRequestRepository) ListStalePending(ctx context.Context, createdBefore, remindedBefore time.Time, limit int) ([]domain.PaymentRequest, error) {
	var requests []domain.PaymentRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.PaymentStatusPending, createdBefore).
		Where("last_reminded_at IS NULL OR last_reminded_at < ?", remindedBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *PaymentRequestRepository) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.PaymentRequest{}).
		Where("id = ?", id).
		Update("last_reminded_at", at).Error
}
