package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartnerService assigns partners to checklist items of a project.
type PartnerService struct {
	partnerRepo    *repository.PartnerRepository
	assignmentRepo *repository.PartnerAssignmentRepository
	projectRepo    *repository.ProjectRepository
	dispatcher     *Dispatcher
	db             *gorm.DB
	logger         *zap.Logger
}

func NewPartnerService(
	partnerRepo *repository.PartnerRepository,
	assignmentRepo *repository.PartnerAssignmentRepository,
	projectRepo *repository.ProjectRepository,
	dispatcher *Dispatcher,
	db *gorm.DB,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		partnerRepo:    partnerRepo,
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		dispatcher:     dispatcher,
		db:             db,
		logger:         logger,
	}
}

// ListPartners returns active partners, optionally of one category.
func (s *PartnerService) ListPartners(ctx context.Context, category string) ([]domain.Partner, error) {
	partners, err := s.partnerRepo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

// Assign links a partner to a checklist item. The item must be in the
// project's snapshot.
func (s *PartnerService) Assign(ctx context.Context, actor domain.Actor, projectID uuid.UUID, checklistItemID string, partnerID uuid.UUID, notes string) (*domain.PartnerAssignment, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "partner assignment", "", "only PMs and admins assign partners")
	}

	fx := &effects{}
	var assignment *domain.PartnerAssignment
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
		if project.FindChecklistItem(checklistItemID) < 0 {
			return newError(ErrNotFound, "checklist item", checklistItemID, "")
		}

		partner, err := repository.NewPartnerRepository(tx).GetByID(ctx, partnerID)
		if err != nil {
			return lookupErr(err, "partner", partnerID)
		}
		if !partner.IsActive {
			return newError(ErrInvalidInput, "partner", partnerID.String(), "partner is inactive")
		}

		assignment = &domain.PartnerAssignment{
			ProjectID:       project.ID,
			ChecklistItemID: checklistItemID,
			PartnerID:       partner.ID,
			PartnerName:     partner.Name,
			Status:          domain.AssignmentStatusPending,
			PMNotes:         strings.TrimSpace(notes),
			AssignedByID:    actor.UserID,
		}
		if err := repository.NewPartnerAssignmentRepository(tx).Create(ctx, assignment); err != nil {
			return fmt.Errorf("failed to create partner assignment: %w", err)
		}
		fx.publish(domain.EventPartnerAssigned, project.ID, mapper.ToPartnerAssignmentDTO(assignment))
		return nil
	})
	if err != nil {
		var le *LifecycleError
		if !errors.As(err, &le) {
			s.logger.Error("failed to assign partner", zap.String("project_id", projectID.String()), zap.Error(err))
		}
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	s.logger.Info("partner assigned",
		zap.String("project_id", projectID.String()),
		zap.String("partner_id", partnerID.String()),
		zap.String("checklist_item_id", checklistItemID),
	)
	return assignment, nil
}

// UpdateStatus moves an assignment forward along
// pending, contacted, confirmed, completed. Steps may be skipped.
func (s *PartnerService) UpdateStatus(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, status domain.AssignmentStatus, notes *string) (*domain.PartnerAssignment, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "partner assignment", assignmentID.String(), "only PMs and admins update assignments")
	}
	if !status.IsValid() {
		return nil, newError(ErrInvalidInput, "partner assignment", assignmentID.String(), "unknown status").values(nil, status)
	}

	current, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, lookupErr(err, "partner assignment", assignmentID)
	}

	fx := &effects{}
	var assignment *domain.PartnerAssignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(ctx, tx, current.ProjectID)
		if err != nil {
			return err
		}
		if err := requireOperator(actor, project); err != nil {
			return err
		}
		if err := requireNotCancelled(project); err != nil {
			return err
		}

		assignments := repository.NewPartnerAssignmentRepository(tx)
		assignment, err = assignments.GetByID(ctx, assignmentID)
		if err != nil {
			return lookupErr(err, "partner assignment", assignmentID)
		}
		if status.Rank() < assignment.Status.Rank() {
			return newError(ErrInvalidStateTransition, "partner assignment", assignmentID.String(), "assignments only move forward").
				values(assignment.Status, status)
		}

		assignment.Status = status
		if notes != nil {
			assignment.PMNotes = strings.TrimSpace(*notes)
		}
		if err := assignments.Update(ctx, assignment); err != nil {
			return fmt.Errorf("failed to update partner assignment: %w", err)
		}
		fx.publish(domain.EventAssignmentUpdated, project.ID, mapper.ToPartnerAssignmentDTO(assignment))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	return assignment, nil
}

// ListAssignments returns the project's partner assignments.
func (s *PartnerService) ListAssignments(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]domain.PartnerAssignment, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr(err, "project", projectID)
	}
	if err := requireView(actor, project); err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partner assignments: %w", err)
	}
	return assignments, nil
}
