package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"gorm.io/gorm"
)

type ProjectManagerRepository struct {
	db *gorm.DB
}

func NewProjectManagerRepository(db *gorm.DB) *ProjectManagerRepository {
	return &ProjectManagerRepository{db: db}
}

func (r *ProjectManagerRepository) Create(ctx context.Context, pm *domain.ProjectManager) error {
	return r.db.WithContext(ctx).Create(pm).Error
}

func (r *ProjectManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectManager, error) {
	var pm domain.ProjectManager
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pm).Error
	if err != nil {
		return nil, err
	}
	return &pm, nil
}
