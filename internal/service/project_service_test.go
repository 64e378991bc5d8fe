package service_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds checklist and summary", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)

		assert.Equal(t, domain.ProjectStatusPendingPM, project.Status)
		assert.Equal(t, domain.StageAwaitingPM, project.CurrentStage)
		assert.False(t, project.HasPM())
		assert.Equal(t, "consumer-1", project.OwnerID)
		require.Len(t, project.Checklist, len(checklist.CatalogFor(domain.CategoryCafe)))

		i := project.FindChecklistItem("contract")
		require.GreaterOrEqual(t, i, 0)
		assert.Equal(t, domain.ItemStatusDone, project.Checklist[i].Status)

		expected, err := checklist.Aggregate(project.Checklist, project.StoreSize)
		require.NoError(t, err)
		assert.Equal(t, expected.Midpoint(), project.EstimatedTotal)

		messages := h.transcript(t, project.ID)
		require.Len(t, messages, 1)
		assert.Equal(t, domain.SenderSystem, messages[0].SenderRole)
		assert.Equal(t, domain.MessageTagSummary, messages[0].Tag)
		assert.Contains(t, messages[0].Body, "카페/디저트")
		assert.Contains(t, messages[0].Body, "강남구 역삼동")
		assert.Contains(t, messages[0].Body, "✅ 이미 준비됨")
	})

	t.Run("consumer note follows the summary", func(t *testing.T) {
		h := newHarness(t)
		project, err := h.projects.Create(ctx, h.consumer, service.CreateProjectInput{
			BusinessCategory: domain.CategoryPub,
			StoreSize:        15,
			Note:             "  주말 오픈 희망합니다  ",
		})
		require.NoError(t, err)

		messages := h.transcript(t, project.ID)
		require.Len(t, messages, 2)
		assertSeqContiguous(t, messages)
		assert.Equal(t, domain.SenderConsumer, messages[1].SenderRole)
		assert.Equal(t, "주말 오픈 희망합니다", messages[1].Body)
	})

	t.Run("unknown category falls back to etc", func(t *testing.T) {
		h := newHarness(t)
		project, err := h.projects.Create(ctx, h.consumer, service.CreateProjectInput{
			BusinessCategory: domain.BusinessCategory("bakery"),
			StoreSize:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryEtc, project.BusinessCategory)
	})

	t.Run("rejects non-positive store size", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.projects.Create(ctx, h.consumer, service.CreateProjectInput{
			BusinessCategory: domain.CategoryCafe,
			StoreSize:        0,
		})
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("only consumers create projects", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.projects.Create(ctx, h.pmActor(), service.CreateProjectInput{
			BusinessCategory: domain.CategoryCafe,
			StoreSize:        10,
		})
		assertKind(t, err, service.ErrForbiddenRole)
	})
}

func TestProjectService_AssignPM(t *testing.T) {
	ctx := context.Background()

	t.Run("moves to stage 7 and greets", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		h.publisher.reset()

		assigned, err := h.projects.AssignPM(ctx, testutil.Admin(), project.ID, h.pm.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.ProjectStatusPMAssigned, assigned.Status)
		assert.Equal(t, domain.StageConsultation, assigned.CurrentStage)
		assert.Equal(t, domain.StageConsultation, assigned.PMApprovedStage)
		assert.True(t, assigned.IsAssignedTo(h.pm.UserID))
		assert.Equal(t, "김매니저", assigned.PMName)

		messages := h.transcript(t, project.ID)
		require.Len(t, messages, 3)
		assertSeqContiguous(t, messages)
		assert.Equal(t, domain.MessageTagPMAssigned, messages[1].Tag)
		assert.Equal(t, domain.SenderSystem, messages[1].SenderRole)
		assert.Equal(t, domain.MessageTagGreeting, messages[2].Tag)
		assert.Equal(t, domain.SenderPM, messages[2].SenderRole)
		assert.Contains(t, messages[2].Body, "반갑습니다.")

		notices := h.sink.ofType(domain.NotificationTypePMAssigned)
		require.Len(t, notices, 1)
		assert.Equal(t, "consumer-1", notices[0].UserID)

		assert.Equal(t, []domain.ProjectEventType{
			domain.EventPMAssigned, domain.EventMessageCreated, domain.EventMessageCreated,
		}, h.publisher.types())
	})

	t.Run("second assignment is rejected", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		other := testutil.CreateTestPM(t, h.db, "이매니저", "")

		_, err := h.projects.AssignPM(ctx, testutil.Admin(), project.ID, other.ID)
		assertKind(t, err, service.ErrInvalidStateTransition)
		assert.Len(t, h.sink.ofType(domain.NotificationTypePMAssigned), 1)
	})

	t.Run("unknown PM", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.projects.AssignPM(ctx, testutil.Admin(), project.ID, uuid.New())
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("admins only", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.projects.AssignPM(ctx, h.pmActor(), project.ID, h.pm.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("cancelled project", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)

		_, err = h.projects.AssignPM(ctx, testutil.Admin(), project.ID, h.pm.ID)
		assertKind(t, err, service.ErrAlreadyTerminal)
	})

	t.Run("failing sink does not fail the assignment", func(t *testing.T) {
		h := newHarnessWithSink(t, failingSink{})
		project := h.createProject(t)

		assigned, err := h.projects.AssignPM(ctx, testutil.Admin(), project.ID, h.pm.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusPMAssigned, assigned.Status)
	})
}

func TestProjectService_Visibility(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)
	unassigned := h.createProject(t)
	stranger := testutil.CreateTestPM(t, h.db, "박매니저", "")

	t.Run("owner sees own project", func(t *testing.T) {
		_, err := h.projects.GetByID(ctx, h.consumer, project.ID)
		assert.NoError(t, err)
	})

	t.Run("other consumer is forbidden", func(t *testing.T) {
		_, err := h.projects.GetByID(ctx, testutil.Consumer("someone-else"), project.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("unassigned PM is forbidden", func(t *testing.T) {
		_, err := h.projects.GetByID(ctx, testutil.PMActor(stranger), project.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := h.projects.GetByID(ctx, testutil.Admin(), uuid.New())
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("list is scoped by role", func(t *testing.T) {
		mine, total, err := h.projects.List(ctx, h.consumer, service.ProjectListFilter{}, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, mine, 2)

		assigned, total, err := h.projects.List(ctx, h.pmActor(), service.ProjectListFilter{}, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, project.ID, assigned[0].ID)

		queue, total, err := h.projects.List(ctx, testutil.Admin(), service.ProjectListFilter{Status: domain.ProjectStatusPendingPM}, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, unassigned.ID, queue[0].ID)

		none, total, err := h.projects.List(ctx, testutil.Consumer("nobody"), service.ProjectListFilter{}, 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, none)
	})
}

func TestProjectService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels pending payment and is idempotent", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 500_000, "계약금")
		require.NoError(t, err)

		cancelled, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)

		requests, err := h.payments.ListByProject(ctx, testutil.Admin(), project.ID)
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, issued.Request.ID, requests[0].ID)
		assert.Equal(t, domain.PaymentStatusCancelled, requests[0].Status)

		before := len(h.transcript(t, project.ID))
		again, err := h.projects.Cancel(ctx, testutil.Admin(), project.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusCancelled, again.Status)
		assert.Len(t, h.transcript(t, project.ID), before)
	})

	t.Run("appends cancellation message", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.projects.Cancel(ctx, testutil.Admin(), project.ID)
		require.NoError(t, err)

		messages := h.transcript(t, project.ID)
		last := messages[len(messages)-1]
		assert.Equal(t, domain.MessageTagCancelled, last.Tag)
		assert.Contains(t, last.Body, "관리자")
	})

	t.Run("other consumer cannot cancel", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.projects.Cancel(ctx, testutil.Consumer("intruder"), project.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("PM cannot cancel", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.projects.Cancel(ctx, h.pmActor(), project.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("marks the project's notifications read", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		other := h.assignedProject(t)
		pm := h.pmActor()

		for _, n := range []struct {
			userID    string
			projectID uuid.UUID
		}{
			{h.consumer.UserID, project.ID},
			{pm.UserID, project.ID},
			{h.consumer.UserID, other.ID},
		} {
			projectID := n.projectID
			require.NoError(t, h.notifications.Emit(ctx, service.NotificationEvent{
				UserID:    n.userID,
				ProjectID: &projectID,
				Type:      domain.NotificationTypeNewMessage,
				Title:     "새 메시지",
				Message:   "m",
			}))
		}

		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)

		for _, actor := range []domain.Actor{h.consumer, pm} {
			unread, err := h.notifications.CountUnread(ctx, actor, &project.ID)
			require.NoError(t, err)
			assert.Zero(t, unread)
		}
		unread, err := h.notifications.CountUnread(ctx, h.consumer, &other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)
	})

	t.Run("completed project cannot be cancelled", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		h.forceStage(t, project.ID, domain.StageOpening)

		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		assertKind(t, err, service.ErrAlreadyTerminal)
	})
}

func TestProjectService_Checklist(t *testing.T) {
	ctx := context.Background()

	t.Run("owner marks an item and the live estimate follows", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		before, err := h.projects.Estimate(ctx, h.consumer, project.ID)
		require.NoError(t, err)

		comment := "  이미 계약함 "
		updated, err := h.projects.SetItemStatus(ctx, h.consumer, project.ID, "interior", domain.ItemStatusDone, &comment)
		require.NoError(t, err)
		i := updated.FindChecklistItem("interior")
		assert.Equal(t, domain.ItemStatusDone, updated.Checklist[i].Status)
		assert.Equal(t, "이미 계약함", updated.Checklist[i].Comment)

		after, err := h.projects.Estimate(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		assert.Less(t, after.Total.Max, before.Total.Max)

		// the stored estimate stays at its creation value
		assert.Equal(t, project.EstimatedTotal, h.reload(t, project.ID).EstimatedTotal)
	})

	t.Run("worry items are prioritised", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.projects.SetItemStatus(ctx, h.pmActor(), project.ID, "signage", domain.ItemStatusWorry, nil)
		require.NoError(t, err)

		b, err := h.projects.Estimate(ctx, h.pmActor(), project.ID)
		require.NoError(t, err)
		require.Len(t, b.Priority, 1)
		assert.Equal(t, "signage", b.Priority[0].ID)
	})

	t.Run("invalid status and unknown item", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.projects.SetItemStatus(ctx, h.consumer, project.ID, "interior", domain.ItemStatus("maybe"), nil)
		assertKind(t, err, service.ErrInvalidInput)

		_, err = h.projects.SetItemStatus(ctx, h.consumer, project.ID, "nope", domain.ItemStatusDone, nil)
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("custom items can be added and removed", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		updated, item, err := h.projects.AddCustomItem(ctx, h.pmActor(), project.ID, service.CustomItemInput{
			Title:   "방음 공사",
			CostMin: 100,
			CostMax: 200,
		})
		require.NoError(t, err)
		assert.True(t, checklist.IsCustomItem(*item))
		assert.Equal(t, domain.ChecklistCategoryCustom, item.Category)
		assert.Equal(t, domain.CostUnitManwon, item.Cost.Unit)
		assert.Len(t, updated.Checklist, len(project.Checklist)+1)

		_, err = h.projects.DeleteCustomItem(ctx, h.pmActor(), project.ID, "interior")
		assertKind(t, err, service.ErrInvalidStateTransition)

		updated, err = h.projects.DeleteCustomItem(ctx, h.pmActor(), project.ID, item.ID)
		require.NoError(t, err)
		assert.Len(t, updated.Checklist, len(project.Checklist))
	})

	t.Run("custom item with a partner assignment is kept", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, item, err := h.projects.AddCustomItem(ctx, h.pmActor(), project.ID, service.CustomItemInput{Title: "방음 공사"})
		require.NoError(t, err)

		partner := testutil.CreateTestPartner(t, h.db, "조용한인테리어", "interior")
		_, err = h.partners.Assign(ctx, h.pmActor(), project.ID, item.ID, partner.ID, "")
		require.NoError(t, err)
		version := h.reload(t, project.ID).Version

		_, err = h.projects.DeleteCustomItem(ctx, h.pmActor(), project.ID, item.ID)
		assertKind(t, err, service.ErrInvalidStateTransition)

		reloaded := h.reload(t, project.ID)
		assert.GreaterOrEqual(t, reloaded.FindChecklistItem(item.ID), 0)
		assert.Equal(t, version, reloaded.Version)

		assignments, err := h.partners.ListAssignments(ctx, h.pmActor(), project.ID)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.GreaterOrEqual(t, reloaded.FindChecklistItem(assignments[0].ChecklistItemID), 0)
	})

	t.Run("custom item validation", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, _, err := h.projects.AddCustomItem(ctx, h.pmActor(), project.ID, service.CustomItemInput{Title: " "})
		assertKind(t, err, service.ErrInvalidInput)

		_, _, err = h.projects.AddCustomItem(ctx, h.pmActor(), project.ID, service.CustomItemInput{Title: "x", CostMin: 10, CostMax: 5})
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("consumer cannot add items", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, _, err := h.projects.AddCustomItem(ctx, h.consumer, project.ID, service.CustomItemInput{Title: "x"})
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("notes update bumps version", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		updated, err := h.projects.UpdateNotes(ctx, h.pmActor(), project.ID, "임대인 미팅 예정")
		require.NoError(t, err)
		assert.Equal(t, "임대인 미팅 예정", updated.PMNotes)
		assert.Equal(t, project.Version+1, updated.Version)
	})
}

func TestProjectService_LostUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("repository rejects a stale version", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		repo := repository.NewProjectRepository(h.db)

		first, err := repo.GetByID(ctx, project.ID)
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, project.ID)
		require.NoError(t, err)

		first.PMNotes = "첫 번째"
		require.NoError(t, repo.UpdateLifecycle(ctx, first))
		assert.Equal(t, project.Version+1, first.Version)

		second.PMNotes = "두 번째"
		err = repo.UpdateLifecycle(ctx, second)
		assert.ErrorIs(t, err, repository.ErrStaleVersion)
		assert.Equal(t, project.Version, second.Version)

		reloaded := h.reload(t, project.ID)
		assert.Equal(t, "첫 번째", reloaded.PMNotes)
		assert.Equal(t, first.Version, reloaded.Version)
	})

	t.Run("service reports a concurrent write as CONFLICT", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		// bump the version between the locked read and the write
		var once sync.Once
		err := h.db.Callback().Update().Before("gorm:update").Register("test:concurrent_writer", func(db *gorm.DB) {
			if db.Statement.Table != "projects" {
				return
			}
			once.Do(func() {
				err := db.Session(&gorm.Session{NewDB: true}).
					Exec("UPDATE projects SET version = version + 1 WHERE id = ?", project.ID).Error
				if err != nil {
					_ = db.AddError(err)
				}
			})
		})
		require.NoError(t, err)

		_, err = h.projects.UpdateNotes(ctx, h.pmActor(), project.ID, "동시 수정")
		assertKind(t, err, service.ErrConflict)

		var le *service.LifecycleError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, project.ID.String(), le.ID)

		reloaded := h.reload(t, project.ID)
		assert.Empty(t, reloaded.PMNotes)
		assert.Equal(t, project.Version, reloaded.Version)
	})
}

func TestProjectService_ConcurrentAdvanceAndCancel(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)
	const advances = domain.MaxStage - domain.StageConsultation

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed []*service.TransitionResult
		rejected  []error
		cancelErr error
	)
	for i := 0; i < advances; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := h.stages.Advance(ctx, h.pmActor(), project.ID, service.TransitionOptions{Force: true})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejected = append(rejected, err)
				return
			}
			if result.Committed {
				committed = append(committed, result)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		mu.Lock()
		cancelErr = err
		mu.Unlock()
	}()
	wg.Wait()

	assert.Equal(t, advances, len(committed)+len(rejected))
	for _, err := range rejected {
		assertKind(t, err, service.ErrAlreadyTerminal)
	}

	// committed transitions form one chain, in transcript order
	sort.Slice(committed, func(i, j int) bool { return committed[i].Message.Seq < committed[j].Message.Seq })
	stage := domain.StageConsultation
	for _, result := range committed {
		assert.Equal(t, stage, result.FromStage)
		assert.Equal(t, stage+1, result.ToStage)
		stage = result.ToStage
	}

	final := h.reload(t, project.ID)
	assert.Equal(t, stage, final.CurrentStage)

	messages := h.transcript(t, project.ID)
	assertSeqContiguous(t, messages)
	last := messages[len(messages)-1]

	if cancelErr == nil {
		assert.Equal(t, domain.ProjectStatusCancelled, final.Status)
		assert.Equal(t, domain.MessageTagCancelled, last.Tag)
		for _, result := range committed {
			assert.Less(t, result.Message.Seq, last.Seq)
		}
	} else {
		// the project reached Opening before the cancel was served
		assertKind(t, cancelErr, service.ErrAlreadyTerminal)
		assert.Equal(t, domain.ProjectStatusCompleted, final.Status)
		assert.Equal(t, domain.MaxStage, final.CurrentStage)
		assert.Empty(t, rejected)
	}
}
