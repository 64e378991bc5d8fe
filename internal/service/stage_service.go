package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TransitionOptions tune a stage transition request.
type TransitionOptions struct {
	// Force commits even when exit requirements are unmet or the jump is large.
	Force bool
}

// TransitionResult is the outcome of Advance or SetStage. Unmet requirements
// and large jumps are reported here, never as errors. When Committed is false
// nothing was written and the caller may retry with Force, unless Unchanged
// reports that the project already was at the target stage.
type TransitionResult struct {
	Project   *domain.Project
	FromStage int
	ToStage   int
	Committed bool
	Unchanged bool
	Warnings  []domain.RequirementCheck
	Magnitude int
	LargeJump bool
	Message   *domain.Message
}

// requirementSource answers the questions exit requirements ask. It is bound
// to the transaction that holds the project lock.
type requirementSource struct {
	messages    *repository.MessageRepository
	payments    *repository.PaymentRequestRepository
	assignments *repository.PartnerAssignmentRepository
}

func newRequirementSource(db *gorm.DB) *requirementSource {
	return &requirementSource{
		messages:    repository.NewMessageRepository(db),
		payments:    repository.NewPaymentRequestRepository(db),
		assignments: repository.NewPartnerAssignmentRepository(db),
	}
}

type exitRequirement struct {
	key   string
	label string
	met   func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (bool, error)
}

func atLeast(n int64, count func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (int64, error)) func(context.Context, *requirementSource, uuid.UUID) (bool, error) {
	return func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (bool, error) {
		c, err := count(ctx, src, projectID)
		return c >= n, err
	}
}

func messagesFrom(sender domain.SenderRole) func(context.Context, *requirementSource, uuid.UUID) (int64, error) {
	return func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (int64, error) {
		return src.messages.CountBySender(ctx, projectID, sender)
	}
}

func marked(tag domain.MessageTag, marker string) func(context.Context, *requirementSource, uuid.UUID) (bool, error) {
	return func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (bool, error) {
		return src.messages.HasMarked(ctx, projectID, domain.SenderPM, tag, marker)
	}
}

// exitRequirements lists, per stage, what should be true before leaving it.
var exitRequirements = map[int][]exitRequirement{
	domain.StageConsultation: {
		{key: "pm_message", label: "고객에게 메시지 1회 이상 발송", met: atLeast(1, messagesFrom(domain.SenderPM))},
		{key: "consumer_reply", label: "고객 응답 1회 이상 확인", met: atLeast(1, messagesFrom(domain.SenderConsumer))},
	},
	domain.StageQuote: {
		{key: "partner_assigned", label: "협력업체 1개 이상 배정", met: atLeast(1, func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (int64, error) {
			return src.assignments.CountByProject(ctx, projectID)
		})},
		{key: "cost_report", label: "비용 보고서 발송", met: marked(domain.MessageTagCostReport, costReportMarker)},
	},
	domain.StageContract: {
		{key: "payment_completed", label: "고객 계약금 결제 완료", met: atLeast(1, func(ctx context.Context, src *requirementSource, projectID uuid.UUID) (int64, error) {
			return src.payments.CountByStatus(ctx, projectID, domain.PaymentStatusCompleted)
		})},
	},
	domain.StageConstruction: {
		{key: "progress_updates", label: "시공 진행상황 공유", met: atLeast(3, messagesFrom(domain.SenderPM))},
	},
	domain.StageOpening: {
		{key: "happy_call", label: "해피콜 발송", met: marked(domain.MessageTagHappyCall, happyCallMarker)},
	},
}

// evaluateStage checks every exit requirement of stage.
func evaluateStage(ctx context.Context, src *requirementSource, projectID uuid.UUID, stage int) ([]domain.RequirementCheck, error) {
	reqs := exitRequirements[stage]
	checks := make([]domain.RequirementCheck, 0, len(reqs))
	for _, req := range reqs {
		ok, err := req.met(ctx, src, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate requirement %s: %w", req.key, err)
		}
		checks = append(checks, domain.RequirementCheck{Stage: stage, Key: req.key, Label: req.label, Met: ok})
	}
	return checks, nil
}

// unmetBetween returns the unmet exit requirements of every stage passed
// when moving forward from one stage to another.
func unmetBetween(ctx context.Context, src *requirementSource, projectID uuid.UUID, from, to int) ([]domain.RequirementCheck, error) {
	warnings := []domain.RequirementCheck{}
	for stage := from; stage < to; stage++ {
		checks, err := evaluateStage(ctx, src, projectID, stage)
		if err != nil {
			return nil, err
		}
		for _, c := range checks {
			if !c.Met {
				warnings = append(warnings, c)
			}
		}
	}
	return warnings, nil
}

type StageService struct {
	projectRepo *repository.ProjectRepository
	dispatcher  *Dispatcher
	db          *gorm.DB
	logger      *zap.Logger
}

func NewStageService(projectRepo *repository.ProjectRepository, dispatcher *Dispatcher, db *gorm.DB, logger *zap.Logger) *StageService {
	return &StageService{
		projectRepo: projectRepo,
		dispatcher:  dispatcher,
		db:          db,
		logger:      logger,
	}
}

// Advance moves the project to the next stage.
func (s *StageService) Advance(ctx context.Context, actor domain.Actor, projectID uuid.UUID, opts TransitionOptions) (*TransitionResult, error) {
	return s.transition(ctx, actor, projectID, func(project *domain.Project) (int, error) {
		next := project.CurrentStage + 1
		if next > domain.MaxStage {
			return 0, newError(ErrAlreadyTerminal, "project", project.ID.String(), "stage is already at its maximum").
				values(project.CurrentStage, next)
		}
		return next, nil
	}, opts)
}

// SetStage jumps to target. Only admins may move a project backwards. Setting
// the current stage again is a no-op.
func (s *StageService) SetStage(ctx context.Context, actor domain.Actor, projectID uuid.UUID, target int, opts TransitionOptions) (*TransitionResult, error) {
	return s.transition(ctx, actor, projectID, func(project *domain.Project) (int, error) {
		if !domain.IsValidStage(target) {
			return 0, newError(ErrInvalidStateTransition, "project", project.ID.String(), "target stage out of range").
				values(project.CurrentStage, target)
		}
		if target < project.CurrentStage && !actor.IsAdmin() {
			return 0, newError(ErrForbiddenReversal, "project", project.ID.String(), "only admins may move a project back").
				values(project.CurrentStage, target)
		}
		return target, nil
	}, opts)
}

func (s *StageService) transition(ctx context.Context, actor domain.Actor, projectID uuid.UUID, targetOf func(*domain.Project) (int, error), opts TransitionOptions) (*TransitionResult, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "project", projectID.String(), "only PMs and admins change stages")
	}

	fx := &effects{}
	result := &TransitionResult{}
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
		if !project.HasPM() || !domain.IsValidStage(project.CurrentStage) {
			return newError(ErrInvalidStateTransition, "project", projectID.String(), "no PM is assigned").
				values(project.Status, nil)
		}

		target, err := targetOf(project)
		if err != nil {
			return err
		}

		from := project.CurrentStage
		result.Project = project
		result.FromStage = from
		result.ToStage = target
		result.Magnitude = target - from
		if result.Magnitude < 0 {
			result.Magnitude = -result.Magnitude
		}
		result.LargeJump = result.Magnitude > 1

		result.Warnings = []domain.RequirementCheck{}
		if target == from {
			result.Unchanged = true
			return nil
		}
		if target > from {
			result.Warnings, err = unmetBetween(ctx, newRequirementSource(tx), project.ID, from, target)
			if err != nil {
				return err
			}
		}
		if !opts.Force && (len(result.Warnings) > 0 || result.LargeJump) {
			return nil
		}

		project.CurrentStage = target
		project.PMApprovedStage = target
		project.Status = domain.DeriveStatus(target, true)
		if err := repository.NewProjectRepository(tx).UpdateLifecycle(ctx, project); err != nil {
			return writeErr(err, project)
		}

		msg := systemMessage(stageBody(target, actor.IsAdmin()), domain.MessageTagStageChanged)
		if err := appendMessage(ctx, tx, project.ID, msg); err != nil {
			return err
		}
		result.Message = msg
		result.Committed = true

		fx.notify(NotificationEvent{
			UserID:    project.OwnerID,
			ProjectID: &project.ID,
			Type:      domain.NotificationTypeStepChanged,
			Title:     stageChangedTitle,
			Message:   fmt.Sprintf("프로젝트가 \"%s\" 단계로 변경되었습니다.", domain.StageLabel(target)),
		})
		fx.publish(domain.EventStageChanged, project.ID, mapper.ToProjectDTO(project))
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(msg))
		return nil
	})
	if err != nil {
		var le *LifecycleError
		if !errors.As(err, &le) {
			s.logger.Error("stage transition failed", zap.String("project_id", projectID.String()), zap.Error(err))
		}
		return nil, err
	}

	if result.Committed {
		s.dispatcher.dispatch(ctx, fx)
		s.logger.Info("project stage changed",
			zap.String("project_id", projectID.String()),
			zap.Int("from", result.FromStage),
			zap.Int("to", result.ToStage),
			zap.String("actor_role", string(actor.Role)),
			zap.Bool("forced", opts.Force && len(result.Warnings) > 0),
		)
	}
	return result, nil
}

// Requirements evaluates the exit requirements of the project's current stage.
func (s *StageService) Requirements(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (*domain.Project, []domain.RequirementCheck, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, lookupErr(err, "project", projectID)
	}
	if err := requireView(actor, project); err != nil {
		return nil, nil, err
	}
	checks, err := evaluateStage(ctx, newRequirementSource(s.db), project.ID, project.CurrentStage)
	if err != nil {
		return nil, nil, err
	}
	return project, checks, nil
}
