package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultMaxUploadBytes caps chat image uploads.
const DefaultMaxUploadBytes = 5 << 20

// AppendInput is a free-text message with optional image attachments.
type AppendInput struct {
	Body        string
	Attachments []domain.Attachment
}

// UploadResult describes a stored image ready to be attached to a message.
type UploadResult struct {
	Attachment domain.Attachment
	Size       int64
}

type MessageService struct {
	projectRepo    *repository.ProjectRepository
	messageRepo    *repository.MessageRepository
	storage        storage.Storage
	maxUploadBytes int64
	dispatcher     *Dispatcher
	db             *gorm.DB
	logger         *zap.Logger
}

func NewMessageService(
	projectRepo *repository.ProjectRepository,
	messageRepo *repository.MessageRepository,
	store storage.Storage,
	maxUploadBytes int64,
	dispatcher *Dispatcher,
	db *gorm.DB,
	logger *zap.Logger,
) *MessageService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &MessageService{
		projectRepo:    projectRepo,
		messageRepo:    messageRepo,
		storage:        store,
		maxUploadBytes: maxUploadBytes,
		dispatcher:     dispatcher,
		db:             db,
		logger:         logger,
	}
}

// validateAttachments accepts image attachments only. Payment attachments
// are produced by the payment workflow and never come from callers.
func validateAttachments(attachments []domain.Attachment) error {
	for i, a := range attachments {
		if a.Kind != domain.AttachmentKindImage {
			return newError(ErrInvalidInput, "attachment", fmt.Sprint(i), "only image attachments can be sent").values(nil, a.Kind)
		}
		if strings.TrimSpace(a.URL) == "" {
			return newError(ErrInvalidInput, "attachment", fmt.Sprint(i), "url is required")
		}
		if !strings.HasPrefix(a.MimeType, "image/") {
			return newError(ErrInvalidInput, "attachment", fmt.Sprint(i), "mime type must be image/*").values(nil, a.MimeType)
		}
	}
	return nil
}

// canSend allows the owner and the project's operators.
func canSend(actor domain.Actor, project *domain.Project) error {
	if actor.IsConsumer() {
		if project.OwnerID == actor.UserID {
			return nil
		}
		return newError(ErrForbiddenRole, "project", project.ID.String(), "not the project owner")
	}
	return requireOperator(actor, project)
}

// newMessageNotice addresses NEW_MESSAGE to the other side of the conversation.
func newMessageNotice(actor domain.Actor, project *domain.Project, msg *domain.Message) (NotificationEvent, bool) {
	text := preview(msg.Body, notificationPreviewN)
	if strings.TrimSpace(text) == "" && len(msg.Attachments) > 0 {
		text = "사진을 보냈습니다."
	}
	n := NotificationEvent{
		ProjectID: &project.ID,
		Type:      domain.NotificationTypeNewMessage,
		Title:     newMessageTitle,
		Message:   text,
	}
	if actor.IsConsumer() {
		if project.PMUserID == nil {
			return n, false
		}
		n.UserID = *project.PMUserID
		return n, true
	}
	n.UserID = project.OwnerID
	return n, true
}

// Append adds a free-text message to the transcript. Cancelled projects
// accept no new messages.
func (s *MessageService) Append(ctx context.Context, actor domain.Actor, projectID uuid.UUID, input AppendInput) (*domain.Message, error) {
	if !actor.Role.IsValid() {
		return nil, newError(ErrForbiddenRole, "message", "", "unknown role")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" && len(input.Attachments) == 0 {
		return nil, newError(ErrInvalidInput, "message", "", "body or attachment is required")
	}
	if err := validateAttachments(input.Attachments); err != nil {
		return nil, err
	}

	return s.appendMessage(ctx, actor, projectID, canSend, func(_ *gorm.DB, _ *domain.Project) (*domain.Message, error) {
		return &domain.Message{
			SenderRole:  senderFor(actor),
			SenderID:    actor.UserID,
			Body:        body,
			Attachments: input.Attachments,
		}, nil
	})
}

// SendCostReport appends the templated cost consulting report as a PM message.
func (s *MessageService) SendCostReport(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (*domain.Message, error) {
	return s.appendMessage(ctx, actor, projectID, requireOperator, func(tx *gorm.DB, project *domain.Project) (*domain.Message, error) {
		live, err := checklist.Explain(project.Checklist, project.StoreSize)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate checklist: %w", err)
		}
		assignments, err := repository.NewPartnerAssignmentRepository(tx).ListByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list partner assignments: %w", err)
		}
		partners := make(map[string]*domain.Partner, len(assignments))
		partnerRepo := repository.NewPartnerRepository(tx)
		for _, a := range assignments {
			if _, ok := partners[a.PartnerID.String()]; ok {
				continue
			}
			partner, err := partnerRepo.GetByID(ctx, a.PartnerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to get partner: %w", err)
			}
			partners[a.PartnerID.String()] = partner
		}
		return &domain.Message{
			SenderRole: domain.SenderPM,
			SenderID:   actor.UserID,
			Body:       costReportBody(project, live, assignments, partners),
			Tag:        domain.MessageTagCostReport,
		}, nil
	})
}

// SendHappyCall appends the post-opening check-in as a PM message.
func (s *MessageService) SendHappyCall(ctx context.Context, actor domain.Actor, projectID uuid.UUID) (*domain.Message, error) {
	return s.appendMessage(ctx, actor, projectID, requireOperator, func(_ *gorm.DB, project *domain.Project) (*domain.Message, error) {
		return &domain.Message{
			SenderRole: domain.SenderPM,
			SenderID:   actor.UserID,
			Body:       happyCallBody(project),
			Tag:        domain.MessageTagHappyCall,
		}, nil
	})
}

func (s *MessageService) appendMessage(
	ctx context.Context,
	actor domain.Actor,
	projectID uuid.UUID,
	authorize func(domain.Actor, *domain.Project) error,
	build func(tx *gorm.DB, project *domain.Project) (*domain.Message, error),
) (*domain.Message, error) {
	fx := &effects{}
	var msg *domain.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if err := authorize(actor, project); err != nil {
			return err
		}
		if err := requireNotCancelled(project); err != nil {
			return err
		}

		msg, err = build(tx, project)
		if err != nil {
			return err
		}
		if err := appendMessage(ctx, tx, project.ID, msg); err != nil {
			return err
		}

		if n, ok := newMessageNotice(actor, project, msg); ok {
			fx.notify(n)
		}
		fx.publish(domain.EventMessageCreated, project.ID, mapper.ToMessageDTO(msg))
		return nil
	})
	if err != nil {
		var le *LifecycleError
		if !errors.As(err, &le) {
			s.logger.Error("failed to append message", zap.String("project_id", projectID.String()), zap.Error(err))
		}
		return nil, err
	}

	s.dispatcher.dispatch(ctx, fx)
	return msg, nil
}

// List returns the full transcript in sequence order.
func (s *MessageService) List(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]domain.Message, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr(err, "project", projectID)
	}
	if err := requireView(actor, project); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// ToggleRead flips the read flag of a consumer message. Only the project's
// operators triage their inbox.
func (s *MessageService) ToggleRead(ctx context.Context, actor domain.Actor, messageID uuid.UUID) (*domain.Message, error) {
	if !actor.IsOperator() {
		return nil, newError(ErrForbiddenRole, "message", messageID.String(), "only PMs and admins mark messages read")
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, lookupErr(err, "message", messageID)
	}
	project, err := s.projectRepo.GetByID(ctx, msg.ProjectID)
	if err != nil {
		return nil, lookupErr(err, "project", msg.ProjectID)
	}
	if err := requireOperator(actor, project); err != nil {
		return nil, err
	}
	if msg.SenderRole != domain.SenderConsumer {
		return nil, newError(ErrInvalidStateTransition, "message", messageID.String(), "only consumer messages carry a read flag").
			values(msg.SenderRole, domain.SenderConsumer)
	}

	readAt, err := s.messageRepo.SetRead(ctx, messageID, !msg.IsRead)
	if err != nil {
		return nil, fmt.Errorf("failed to update read flag: %w", err)
	}
	msg.IsRead = !msg.IsRead
	msg.ReadAt = readAt

	fx := &effects{}
	fx.publish(domain.EventMessageRead, project.ID, mapper.ToMessageDTO(msg))
	s.dispatcher.dispatch(ctx, fx)
	return msg, nil
}

// UploadImage stores a chat image and returns the attachment to send with
// the next message.
func (s *MessageService) UploadImage(ctx context.Context, actor domain.Actor, projectID uuid.UUID, filename, contentType string, size int64, data io.Reader) (*UploadResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, newError(ErrInvalidInput, "attachment", "", "only images can be uploaded").values(nil, contentType)
	}
	if size > s.maxUploadBytes {
		return nil, newError(ErrInvalidInput, "attachment", "", "file is too large").values(s.maxUploadBytes, size)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr(err, "project", projectID)
	}
	if err := canSend(actor, project); err != nil {
		return nil, err
	}
	if err := requireNotCancelled(project); err != nil {
		return nil, err
	}

	storagePath, written, err := s.storage.Upload(ctx, "projects/"+projectID.String(), filename, contentType, io.LimitReader(data, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if written > s.maxUploadBytes {
		return nil, newError(ErrInvalidInput, "attachment", "", "file is too large").values(s.maxUploadBytes, written)
	}

	s.logger.Info("chat image uploaded",
		zap.String("project_id", projectID.String()),
		zap.String("path", storagePath),
		zap.Int64("size", written),
	)

	return &UploadResult{
		Attachment: domain.Attachment{
			Kind:     domain.AttachmentKindImage,
			URL:      s.storage.URL(storagePath),
			MimeType: contentType,
			Filename: filename,
		},
		Size: written,
	}, nil
}
