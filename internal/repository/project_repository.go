package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleVersion is returned when a project changed between read and write.
var ErrStaleVersion = errors.New("project was modified concurrently")

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

// ProjectFilter narrows project listings. Empty fields do not filter.
type ProjectFilter struct {
	OwnerID  string
	PMUserID string
	PMID     *uuid.UUID
	Status   domain.ProjectStatus
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetForUpdate loads the project with a row lock. It must run inside a
// transaction; concurrent lifecycle writers on the same project queue here.
func (r *ProjectRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateLifecycle writes the mutable columns of project guarded by its
// version and bumps the version on success.
func (r *ProjectRepository) UpdateLifecycle(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ? AND version = ?", project.ID, project.Version).
		Updates(map[string]interface{}{
			"status":            project.Status,
			"current_stage":     project.CurrentStage,
			"pm_approved_stage": project.PMApprovedStage,
			"pm_id":             project.PMID,
			"pm_user_id":        project.PMUserID,
			"pm_name":           project.PMName,
			"checklist_data":    project.Checklist,
			"pm_notes":          project.PMNotes,
			"estimated_total":   project.EstimatedTotal,
			"cancelled_at":      project.CancelledAt,
			"version":           project.Version + 1,
			"updated_at":        now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}
	project.Version++
	project.UpdatedAt = now
	return nil
}

// NextMessageSeq reserves the next transcript position for the project.
func (r *ProjectRepository) NextMessageSeq(ctx context.Context, id uuid.UUID) (int64, error) {
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		UpdateColumn("message_seq", gorm.Expr("message_seq + 1")).Error
	if err != nil {
		return 0, fmt.Errorf("failed to reserve message sequence: %w", err)
	}

	var seq int64
	err = r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Pluck("message_seq", &seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read message sequence: %w", err)
	}
	return seq, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter, page, pageSize int) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.PMUserID != "" {
		query = query.Where("pm_user_id = ?", filter.PMUserID)
	}
	if filter.PMID != nil {
		query = query.Where("pm_id = ?", *filter.PMID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&projects).Error
	return projects, total, err
}
