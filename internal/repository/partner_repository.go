package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
)

// PartnerRepository reads the partner reference table. Partners are
// maintained outside this service.
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	return r.db.WithContext(ctx).Create(partner).Error
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	var partner domain.Partner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) List(ctx context.Context, category string) ([]domain.Partner, error) {
	var partners []domain.Partner
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("name ASC").Find(&partners).Error
	return partners, err
}

type PartnerAssignmentRepository struct {
	db *gorm.DB
}

func NewPartnerAssignmentRepository(db *gorm.DB) *PartnerAssignmentRepository {
	return &PartnerAssignmentRepository{db: db}
}

func (r *PartnerAssignmentRepository) Create(ctx context.Context, assignment *domain.PartnerAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *PartnerAssignmentRepository) Update(ctx context.Context, assignment *domain.PartnerAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *PartnerAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PartnerAssignment, error) {
	var assignment domain.PartnerAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *PartnerAssignmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.PartnerAssignment, error) {
	var assignments []domain.PartnerAssignment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *PartnerAssignmentRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PartnerAssignment{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// CountByItem counts the assignments referencing one checklist item.
func (r *PartnerAssignmentRepository) CountByItem(ctx context.Context, projectID uuid.UUID, itemID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PartnerAssignment{}).
		Where("project_id = ? AND checklist_item_id = ?", projectID, itemID).
		Count(&count).Error
	return count, err
}
