package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateProjectInput carries the wizard answers.
type CreateProjectInput struct {
	BusinessCategory domain.BusinessCategory
	District         string
	SubDistrict      string
	StoreSize        float64
	ItemStatuses     map[string]domain.ItemStatus
	Note             string
}

// ProjectListFilter narrows ListProjects. Visibility is always applied on top.
type ProjectListFilter struct {
	Status domain.ProjectStatus
	PMID   *uuid.UUID
}

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	pmRepo      *repository.ProjectManagerRepository
	dispatcher  *Dispatcher
	db          *gorm.DB
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	pmRepo *repository.ProjectManagerRepository,
	dispatcher *Dispatcher,
	db *gorm.DB,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		pmRepo:      pmRepo,
		dispatcher:  dispatcher,
		db:          db,
		logger:      logger,
	}
}

// Create opens a project at wizard completion. The checklist snapshot and
// estimated total are computed here and the transcript starts with a
// system summary, followed by the consumer's note when one is given.
func (s *ProjectService) Create(ctx context.Context, actor domain.Actor, input CreateProjectInput) (*domain.Project, error) {
	if !actor.IsConsumer() {
		return nil, newError(ErrForbiddenRole, "project", "", "only consumers open projects")
	}
	if !checklist.ValidStoreSize(input.StoreSize) {
		return nil, newError(ErrInvalidInput, "project", "", "store size must be positive").values(nil, input.StoreSize)
	}

	category := checklist.NormalizeCategory(input.BusinessCategory)
	items := checklist.Seed(category, input.ItemStatuses)
	estimate, err := checklist.Aggregate(items, input.StoreSize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate checklist: %w", err)
	}

	project := &domain.Project{
		OwnerID:          actor.UserID,
		OwnerName:        actor.Name,
		BusinessCategory: category,
		District:         strings.TrimSpace(input.District),
		SubDistrict:      strings.TrimSpace(input.SubDistrict),
		StoreSize:        input.StoreSize,
		EstimatedTotal:   estimate.Midpoint(),
		Checklist:        items,
		Status:           domain.ProjectStatusPendingPM,
		CurrentStage:     domain.StageAwaitingPM,
		PMApprovedStage:  domain.StageAwaitingPM,
	}

	fx := &effects{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.WithTx(tx).Create(ctx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		summary := systemMessage(summaryBody(project, estimate), domain.MessageTagSummary)
		if err := appendMessage(ctx, tx, project.ID, summary); err != nil {
			return err
		}
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(summary))

		if note := strings.TrimSpace(input.Note); note != "" {
			msg := &domain.Message{SenderRole: domain.SenderConsumer, SenderID: actor.UserID, Body: note}
			if err := appendMessage(ctx, tx, project.ID, msg); err != nil {
				return err
			}
			fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(msg))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("category", string(category)),
		zap.Int64("estimated_total", project.EstimatedTotal),
	)

	return s.projectRepo.GetByID(ctx, project.ID)
}

// GetByID returns a project visible to actor.
func (s *ProjectService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "project", id)
	}
	if err := requireView(actor, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the projects actor may see: a consumer's own, a PM's
// assigned ones, or everything for an admin.
func (s *ProjectService) List(ctx context.Context, actor domain.Actor, filter ProjectListFilter, page, pageSize int) ([]domain.Project, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	repoFilter := repository.ProjectFilter{Status: filter.Status, PMID: filter.PMID}
	switch actor.Role {
	case domain.ActorRoleConsumer:
		repoFilter.OwnerID = actor.UserID
	case domain.ActorRolePM:
		repoFilter.PMUserID = actor.UserID
	case domain.ActorRoleAdmin:
	default:
		return nil, 0, newError(ErrForbiddenRole, "project", "", "unknown role")
	}

	projects, total, err := s.projectRepo.List(ctx, repoFilter, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// AssignPM attaches a PM to a project awaiting one. It moves the project to
// stage 7, appends the system announcement and the PM's greeting, and
// notifies the consumer once.
func (s *ProjectService) AssignPM(ctx context.Context, actor domain.Actor, projectID, pmID uuid.UUID) (*domain.Project, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbiddenRole, "project", projectID.String(), "only admins assign PMs")
	}

	pm, err := s.pmRepo.GetByID(ctx, pmID)
	if err != nil {
		return nil, lookupErr(err, "project manager", pmID)
	}

	fx := &effects{}
	var project *domain.Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err = lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if err := requireNotCancelled(project); err != nil {
			return err
		}
		if project.Status != domain.ProjectStatusPendingPM || project.HasPM() {
			return newError(ErrInvalidStateTransition, "project", projectID.String(), "project already has a PM").
				values(project.Status, domain.ProjectStatusPMAssigned)
		}

		project.PMID = &pm.ID
		project.PMUserID = &pm.UserID
		project.PMName = pm.Name
		project.CurrentStage = domain.StageConsultation
		project.PMApprovedStage = domain.StageConsultation
		project.Status = domain.ProjectStatusPMAssigned
		if err := repository.NewProjectRepository(tx).UpdateLifecycle(ctx, project); err != nil {
			return writeErr(err, project)
		}

		announce := systemMessage(pmAssignedBody(pm.Name), domain.MessageTagPMAssigned)
		if err := appendMessage(ctx, tx, project.ID, announce); err != nil {
			return err
		}
		greeting := &domain.Message{
			SenderRole: domain.SenderPM,
			SenderID:   pm.UserID,
			Body:       greetingBody(pm),
			Tag:        domain.MessageTagGreeting,
		}
		if err := appendMessage(ctx, tx, project.ID, greeting); err != nil {
			return err
		}

		fx.notify(NotificationEvent{
			UserID:    project.OwnerID,
			ProjectID: &project.ID,
			Type:      domain.NotificationTypePMAssigned,
			Title:     pmAssignedTitle,
			Message:   fmt.Sprintf("%s 매니저가 배정되었습니다.", pm.Name),
		})
		fx.publish(domain.EventPMAssigned, project.ID, mapper.ToProjectDTO(project))
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(announce))
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(greeting))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)

	s.logger.Info("PM assigned",
		zap.String("project_id", projectID.String()),
		zap.String("pm_id", pm.ID.String()),
	)
	return project, nil
}

// Cancel moves a project to CANCELLED. Cancelling an already cancelled
// project returns it unchanged. Any pending payment request is cancelled and
// the project's notifications are marked read in the same transaction.
// Completed projects cannot be cancelled.
func (s *ProjectService) Cancel(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (*domain.Project, error) {
	if !actor.IsConsumer() && !actor.IsAdmin() {
		return nil, newError(ErrForbiddenRole, "project", projectID.String(), "only the owner or an admin may cancel")
	}

	fx := &effects{}
	var project *domain.Project
	var cleared int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if actor.IsConsumer() && project.OwnerID != actor.UserID {
			return newError(ErrForbiddenRole, "project", projectID.String(), "not the project owner")
		}
		if project.IsCancelled() {
			return nil
		}
		if project.Status == domain.ProjectStatusCompleted {
			return newError(ErrAlreadyTerminal, "project", projectID.String(), "project is completed").
				values(project.Status, domain.ProjectStatusCancelled)
		}

		payments := repository.NewPaymentRequestRepository(tx)
		pending, err := payments.FindPending(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to check pending payment: %w", err)
		}
		if pending != nil {
			now := time.Now().UTC()
			pending.Status = domain.PaymentStatusCancelled
			pending.CancelledAt = &now
			if err := payments.Update(ctx, pending); err != nil {
				return fmt.Errorf("failed to cancel pending payment: %w", err)
			}
			fx.publish(domain.EventPaymentCancelled, project.ID, mapper.ToPaymentRequestDTO(pending))
		}

		now := time.Now().UTC()
		project.Status = domain.ProjectStatusCancelled
		project.CancelledAt = &now
		if err := repository.NewProjectRepository(tx).UpdateLifecycle(ctx, project); err != nil {
			return writeErr(err, project)
		}

		cleared, err = repository.NewNotificationRepository(tx).MarkProjectAsRead(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to clear project notifications: %w", err)
		}

		msg := systemMessage(cancelledBody(actor), domain.MessageTagCancelled)
		if err := appendMessage(ctx, tx, project.ID, msg); err != nil {
			return err
		}
		fx.publish(domain.EventProjectCancelled, project.ID, mapper.ToProjectDTO(project))
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(msg))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	if cleared > 0 {
		s.logger.Debug("project notifications cleared",
			zap.String("project_id", projectID.String()),
			zap.Int64("count", cleared),
		)
	}
	return project, nil
}

// UpdateNotes replaces the PM's free-form notes.
func (s *ProjectService) UpdateNotes(ctx context.Context, actor domain.Actor, projectID uuid.UUID, notes string) (*domain.Project, error) {
	return s.mutate(ctx, actor, projectID, func(_ *gorm.DB, project *domain.Project, _ *effects) error {
		project.PMNotes = notes
		return nil
	})
}

// Estimate recomputes the live cost range from the current checklist.
func (s *ProjectService) Estimate(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (checklist.Breakdown, error) {
	project, err := s.GetByID(ctx, actor, projectID)
	if err != nil {
		return checklist.Breakdown{}, err
	}
	b, err := checklist.Explain(project.Checklist, project.StoreSize)
	if err != nil {
		return checklist.Breakdown{}, fmt.Errorf("failed to aggregate checklist: %w", err)
	}
	return b, nil
}

// SetItemStatus updates the tri-state marker and comment of a checklist item.
// The owner and the project's operators may change it.
func (s *ProjectService) SetItemStatus(ctx context.Context, actor domain.Actor, projectID uuid.UUID, itemID string, status domain.ItemStatus, comment *string) (*domain.Project, error) {
	if !status.IsValid() {
		return nil, newError(ErrInvalidInput, "checklist item", itemID, "unknown status").values(nil, status)
	}
	authorize := func(project *domain.Project) error {
		if actor.IsConsumer() && project.OwnerID == actor.UserID {
			return nil
		}
		return requireOperator(actor, project)
	}
	return s.update(ctx, projectID, authorize, func(_ *gorm.DB, project *domain.Project, fx *effects) error {
		i := project.FindChecklistItem(itemID)
		if i < 0 {
			return newError(ErrNotFound, "checklist item", itemID, "")
		}
		project.Checklist[i].Status = status
		if comment != nil {
			project.Checklist[i].Comment = strings.TrimSpace(*comment)
		}
		fx.publish(domain.EventChecklistUpdated, project.ID, mapper.ToProjectDTO(project))
		return nil
	})
}

// CustomItemInput describes a PM-added checklist item. Amounts are in 만원.
type CustomItemInput struct {
	Title       string
	Description string
	CostMin     int64
	CostMax     int64
	Unit        domain.CostUnit
}

// AddCustomItem appends a CUSTOM item to the checklist snapshot.
func (s *ProjectService) AddCustomItem(ctx context.Context, actor domain.Actor, projectID uuid.UUID, input CustomItemInput) (*domain.Project, *domain.ChecklistItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, newError(ErrInvalidInput, "checklist item", "", "title is required")
	}
	if input.CostMin < 0 || input.CostMax < input.CostMin {
		return nil, nil, newError(ErrInvalidInput, "checklist item", "", "invalid cost range").
			values(nil, fmt.Sprintf("%d..%d", input.CostMin, input.CostMax))
	}
	unit := input.Unit
	if unit == "" {
		unit = domain.CostUnitManwon
	}

	item := domain.ChecklistItem{
		ID:          checklist.CustomItemPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Title:       title,
		Category:    domain.ChecklistCategoryCustom,
		Description: strings.TrimSpace(input.Description),
		Cost:        domain.CostRange{Min: input.CostMin, Max: input.CostMax, Unit: unit},
		Custom:      true,
		Status:      domain.ItemStatusUnchecked,
	}

	project, err := s.mutate(ctx, actor, projectID, func(_ *gorm.DB, project *domain.Project, fx *effects) error {
		project.Checklist = append(project.Checklist, item)
		fx.publish(domain.EventChecklistUpdated, project.ID, mapper.ToProjectDTO(project))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return project, &item, nil
}

// DeleteCustomItem removes a PM-added item. Catalog items and items with a
// partner assignment cannot be removed.
func (s *ProjectService) DeleteCustomItem(ctx context.Context, actor domain.Actor, projectID uuid.UUID, itemID string) (*domain.Project, error) {
	return s.mutate(ctx, actor, projectID, func(tx *gorm.DB, project *domain.Project, fx *effects) error {
		i := project.FindChecklistItem(itemID)
		if i < 0 {
			return newError(ErrNotFound, "checklist item", itemID, "")
		}
		if !checklist.IsCustomItem(project.Checklist[i]) {
			return newError(ErrInvalidStateTransition, "checklist item", itemID, "catalog items cannot be deleted")
		}
		assigned, err := repository.NewPartnerAssignmentRepository(tx).CountByItem(ctx, project.ID, itemID)
		if err != nil {
			return fmt.Errorf("failed to count partner assignments: %w", err)
		}
		if assigned > 0 {
			return newError(ErrInvalidStateTransition, "checklist item", itemID, "item has partner assignments").
				values(assigned, nil)
		}
		project.Checklist = append(project.Checklist[:i:i], project.Checklist[i+1:]...)
		fx.publish(domain.EventChecklistUpdated, project.ID, mapper.ToProjectDTO(project))
		return nil
	})
}

// mutate runs fn on a locked, non-cancelled project that actor operates and
// persists the result.
func (s *ProjectService) mutate(ctx context.Context, actor domain.Actor, projectID uuid.UUID, fn func(*gorm.DB, *domain.Project, *effects) error) (*domain.Project, error) {
	return s.update(ctx, projectID, func(project *domain.Project) error {
		return requireOperator(actor, project)
	}, fn)
}

func (s *ProjectService) update(ctx context.Context, projectID uuid.UUID, authorize func(*domain.Project) error, fn func(*gorm.DB, *domain.Project, *effects) error) (*domain.Project, error) {
	fx := &effects{}
	var project *domain.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if err := authorize(project); err != nil {
			return err
		}
		if err := requireNotCancelled(project); err != nil {
			return err
		}
		if err := fn(tx, project, fx); err != nil {
			return err
		}
		return writeErr(repository.NewProjectRepository(tx).UpdateLifecycle(ctx, project), project)
	})
	if err != nil {
		var le *LifecycleError
		if !errors.As(err, &le) {
			s.logger.Error("project mutation failed", zap.String("project_id", projectID.String()), zap.Error(err))
		}
		return nil, err
	}
	s.dispatcher.dispatch(ctx, fx)
	return project, nil
}
