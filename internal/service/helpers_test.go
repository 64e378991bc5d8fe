package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/storage"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordingSink keeps every emitted notification.
type recordingSink struct {
	mu     sync.Mutex
	events []service.NotificationEvent
}

func (s *recordingSink) Emit(_ context.Context, event service.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) ofType(t domain.NotificationType) []service.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []service.NotificationEvent
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// failingSink rejects every notification.
type failingSink struct{}

func (failingSink) Emit(context.Context, service.NotificationEvent) error {
	return errors.New("sink unavailable")
}

// recordingPublisher keeps every relayed project event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ProjectEvent
}

func (p *recordingPublisher) Publish(event domain.ProjectEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.ProjectEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ProjectEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type harness struct {
	db        *gorm.DB
	sink      *recordingSink
	publisher *recordingPublisher

	projects      *service.ProjectService
	stages        *service.StageService
	messages      *service.MessageService
	payments      *service.PaymentService
	partners      *service.PartnerService
	notifications *service.NotificationService

	consumer domain.Actor
	pm       *domain.ProjectManager
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithSink(t, nil)
}

// newHarnessWithSink wires every service on a fresh database. A nil sink
// records notifications.
func newHarnessWithSink(t *testing.T, sink service.NotificationSink) *harness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	h := &harness{
		db:        db,
		sink:      &recordingSink{},
		publisher: &recordingPublisher{},
		consumer:  testutil.Consumer("consumer-1"),
		pm:        testutil.CreateTestPM(t, db, "김매니저", "반갑습니다."),
	}
	if sink == nil {
		sink = h.sink
	}

	store, err := storage.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	projectRepo := repository.NewProjectRepository(db)
	dispatcher := service.NewDispatcher(sink, h.publisher, logger)

	h.projects = service.NewProjectService(projectRepo, repository.NewProjectManagerRepository(db), dispatcher, db, logger)
	h.stages = service.NewStageService(projectRepo, dispatcher, db, logger)
	h.messages = service.NewMessageService(projectRepo, repository.NewMessageRepository(db), store, 1024, dispatcher, db, logger)
	h.payments = service.NewPaymentService(projectRepo, repository.NewPaymentRequestRepository(db), dispatcher, db, logger, 0)
	h.partners = service.NewPartnerService(
		repository.NewPartnerRepository(db),
		repository.NewPartnerAssignmentRepository(db),
		projectRepo,
		dispatcher,
		db,
		logger,
	)
	h.notifications = service.NewNotificationService(repository.NewNotificationRepository(db), logger)
	return h
}

func (h *harness) pmActor() domain.Actor {
	return testutil.PMActor(h.pm)
}

// createProject opens a cafe project for the harness consumer.
func (h *harness) createProject(t *testing.T) *domain.Project {
	t.Helper()
	project, err := h.projects.Create(context.Background(), h.consumer, service.CreateProjectInput{
		BusinessCategory: domain.CategoryCafe,
		District:         "강남구",
		SubDistrict:      "역삼동",
		StoreSize:        20,
		ItemStatuses:     map[string]domain.ItemStatus{"contract": domain.ItemStatusDone},
	})
	require.NoError(t, err)
	return project
}

// assignedProject returns a project at stage 7 with the harness PM.
func (h *harness) assignedProject(t *testing.T) *domain.Project {
	t.Helper()
	project := h.createProject(t)
	assigned, err := h.projects.AssignPM(context.Background(), testutil.Admin(), project.ID, h.pm.ID)
	require.NoError(t, err)
	return assigned
}

// forceStage moves the project to stage with a forced admin transition.
func (h *harness) forceStage(t *testing.T, projectID uuid.UUID, stage int) {
	t.Helper()
	result, err := h.stages.SetStage(context.Background(), testutil.Admin(), projectID, stage, service.TransitionOptions{Force: true})
	require.NoError(t, err)
	require.True(t, result.Committed)
}

func (h *harness) transcript(t *testing.T, projectID uuid.UUID) []domain.Message {
	t.Helper()
	messages, err := h.messages.List(context.Background(), testutil.Admin(), projectID)
	require.NoError(t, err)
	return messages
}

func (h *harness) reload(t *testing.T, projectID uuid.UUID) *domain.Project {
	t.Helper()
	project, err := h.projects.GetByID(context.Background(), testutil.Admin(), projectID)
	require.NoError(t, err)
	return project
}

// assertKind checks that err is a lifecycle error of the given kind.
func assertKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	assert.Equal(t, kind.Error(), service.KindOf(err))
}

func assertSeqContiguous(t *testing.T, messages []domain.Message) {
	t.Helper()
	for i, m := range messages {
		assert.Equal(t, int64(i+1), m.Seq, "message %d", i)
	}
}
