package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPending(t *testing.T, h *harness, projectID uuid.UUID) int {
	t.Helper()
	requests, err := h.payments.ListByProject(context.Background(), testutil.Admin(), projectID)
	require.NoError(t, err)
	n := 0
	for _, r := range requests {
		if r.Status == domain.PaymentStatusPending {
			n++
		}
	}
	return n
}

func TestPaymentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)

	first, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 5_000_000, "계약금")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, first.Request.Status)
	assert.Equal(t, int64(5_000_000), first.Request.Amount)
	assert.NotEmpty(t, first.Request.OrderID)
	assert.Empty(t, first.Warnings)

	require.NotNil(t, first.Message)
	assert.Equal(t, domain.SenderPM, first.Message.SenderRole)
	assert.Equal(t, domain.MessageTagPayment, first.Message.Tag)
	assert.Contains(t, first.Message.Body, "5,000,000원")
	require.Len(t, first.Message.Attachments, 1)
	att := first.Message.Attachments[0]
	assert.Equal(t, domain.AttachmentKindPaymentRequest, att.Kind)
	require.NotNil(t, att.PaymentID)
	assert.Equal(t, first.Request.ID, *att.PaymentID)
	require.NotNil(t, first.Request.MessageID)
	assert.Equal(t, first.Message.ID, *first.Request.MessageID)

	requested := h.sink.ofType(domain.NotificationTypePaymentRequest)
	require.Len(t, requested, 1)
	assert.Equal(t, "consumer-1", requested[0].UserID)

	// a second request while one is pending is rejected without side effects
	before := len(h.transcript(t, project.ID))
	_, err = h.payments.Issue(ctx, h.pmActor(), project.ID, 1_000_000, "중도금")
	assertKind(t, err, service.ErrPendingExists)
	assert.Len(t, h.transcript(t, project.ID), before)
	assert.Len(t, h.sink.ofType(domain.NotificationTypePaymentRequest), 1)
	assert.Equal(t, 1, countPending(t, h, project.ID))

	cancelled, err := h.payments.CancelPending(ctx, h.pmActor(), first.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	second, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 1_000_000, "중도금")
	require.NoError(t, err)
	assert.Equal(t, 1, countPending(t, h, project.ID))

	_, err = h.payments.Confirm(ctx, service.ConfirmInput{
		PaymentRequestID:  second.Request.ID,
		ExternalReference: "pay_abc",
		Amount:            999_000,
	})
	assertKind(t, err, service.ErrAmountMismatch)
	var le *service.LifecycleError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, int64(1_000_000), le.Current)
	assert.Equal(t, int64(999_000), le.Requested)
	assert.Equal(t, 1, countPending(t, h, project.ID))

	confirmed, err := h.payments.Confirm(ctx, service.ConfirmInput{
		PaymentRequestID:  second.Request.ID,
		ExternalReference: "pay_abc",
		OrderID:           second.Request.OrderID,
		Amount:            1_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, confirmed.Status)
	require.NotNil(t, confirmed.ExternalReference)
	assert.Equal(t, "pay_abc", *confirmed.ExternalReference)
	assert.NotNil(t, confirmed.CompletedAt)

	completed := h.sink.ofType(domain.NotificationTypePaymentCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "consumer-1", completed[0].UserID)
	assert.Zero(t, countPending(t, h, project.ID))
}

func TestPaymentService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("amount bounds", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		for _, amount := range []int64{0, -5, service.MaxPaymentAmount + 1} {
			_, err := h.payments.Issue(ctx, h.pmActor(), project.ID, amount, "x")
			assertKind(t, err, service.ErrAmountOutOfRange)
		}

		result, err := h.payments.Issue(ctx, h.pmActor(), project.ID, service.MinPaymentAmount, "")
		require.NoError(t, err)
		assert.Equal(t, "계약금", result.Request.Description)
	})

	t.Run("overestimate produces a warning", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		amount := project.EstimatedTotal * 2
		require.LessOrEqual(t, amount, service.MaxPaymentAmount)

		result, err := h.payments.Issue(ctx, h.pmActor(), project.ID, amount, "잔금")
		require.NoError(t, err)
		assert.Len(t, result.Warnings, 1)
	})

	t.Run("consumers cannot issue", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.payments.Issue(ctx, h.consumer, project.ID, 1000, "x")
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("project without PM", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.payments.Issue(ctx, testutil.Admin(), project.ID, 1000, "x")
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("cancelled project", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		_, err = h.payments.Issue(ctx, h.pmActor(), project.ID, 1000, "x")
		assertKind(t, err, service.ErrAlreadyTerminal)
	})

	t.Run("reissue replaces the pending request atomically", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		first, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 100_000, "계약금")
		require.NoError(t, err)
		h.publisher.reset()

		second, err := h.payments.Reissue(ctx, h.pmActor(), project.ID, 200_000, "계약금")
		require.NoError(t, err)
		assert.NotEqual(t, first.Request.ID, second.Request.ID)
		assert.Equal(t, 1, countPending(t, h, project.ID))
		assert.Equal(t, []domain.ProjectEventType{
			domain.EventPaymentCancelled, domain.EventPaymentRequested, domain.EventMessageCreated,
		}, h.publisher.types())

		requests, err := h.payments.ListByProject(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		byID := map[uuid.UUID]domain.PaymentStatus{}
		for _, r := range requests {
			byID[r.ID] = r.Status
		}
		assert.Equal(t, domain.PaymentStatusCancelled, byID[first.Request.ID])
		assert.Equal(t, domain.PaymentStatusPending, byID[second.Request.ID])
	})

	t.Run("reissue without a pending request issues normally", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		result, err := h.payments.Reissue(ctx, h.pmActor(), project.ID, 100_000, "계약금")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, result.Request.Status)
	})
}

func TestPaymentService_Confirm(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*harness, *service.IssueResult) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 250_000, "계약금")
		require.NoError(t, err)
		return h, issued
	}

	t.Run("repeated confirmation is a no-op", func(t *testing.T) {
		h, issued := setup(t)
		input := service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "pay_1", Amount: 250_000}

		first, err := h.payments.Confirm(ctx, input)
		require.NoError(t, err)
		second, err := h.payments.Confirm(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, domain.PaymentStatusCompleted, second.Status)
		assert.Equal(t, first.CompletedAt.Unix(), second.CompletedAt.Unix())
		assert.Len(t, h.sink.ofType(domain.NotificationTypePaymentCompleted), 1)
	})

	t.Run("different reference on a completed request", func(t *testing.T) {
		h, issued := setup(t)
		_, err := h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "pay_1", Amount: 250_000})
		require.NoError(t, err)

		_, err = h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "pay_2", Amount: 250_000})
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("order id must match", func(t *testing.T) {
		h, issued := setup(t)
		_, err := h.payments.Confirm(ctx, service.ConfirmInput{
			PaymentRequestID:  issued.Request.ID,
			ExternalReference: "pay_1",
			OrderID:           "order_other",
			Amount:            250_000,
		})
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("reference is required", func(t *testing.T) {
		h, issued := setup(t)
		_, err := h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, Amount: 250_000})
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("cancelled request cannot complete", func(t *testing.T) {
		h, issued := setup(t)
		_, err := h.payments.CancelPending(ctx, h.pmActor(), issued.Request.ID)
		require.NoError(t, err)

		_, err = h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "pay_1", Amount: 250_000})
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("unknown request", func(t *testing.T) {
		h, _ := setup(t)
		_, err := h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: uuid.New(), ExternalReference: "pay_1", Amount: 1})
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("failing sink does not fail confirmation", func(t *testing.T) {
		h := newHarnessWithSink(t, failingSink{})
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		require.NoError(t, err)

		confirmed, err := h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "pay_1", Amount: 10_000})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, confirmed.Status)
	})
}

func TestPaymentService_FailAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("fail records the reason and is repeatable", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		require.NoError(t, err)

		failed, err := h.payments.Fail(ctx, service.FailInput{PaymentRequestID: issued.Request.ID, Reason: " 카드 한도 초과 "})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, failed.Status)
		assert.Equal(t, "카드 한도 초과", failed.FailureReason)
		assert.NotNil(t, failed.FailedAt)

		again, err := h.payments.Fail(ctx, service.FailInput{PaymentRequestID: issued.Request.ID, Reason: "다른 사유"})
		require.NoError(t, err)
		assert.Equal(t, "카드 한도 초과", again.FailureReason)

		// a failed request no longer blocks a new one
		_, err = h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		assert.NoError(t, err)
	})

	t.Run("completed request cannot fail", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		require.NoError(t, err)
		_, err = h.payments.Confirm(ctx, service.ConfirmInput{PaymentRequestID: issued.Request.ID, ExternalReference: "p", Amount: 10_000})
		require.NoError(t, err)

		_, err = h.payments.Fail(ctx, service.FailInput{PaymentRequestID: issued.Request.ID})
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		require.NoError(t, err)

		_, err = h.payments.CancelPending(ctx, h.consumer, issued.Request.ID)
		assertKind(t, err, service.ErrForbiddenRole)

		_, err = h.payments.CancelPending(ctx, testutil.Admin(), issued.Request.ID)
		require.NoError(t, err)

		_, err = h.payments.CancelPending(ctx, testutil.Admin(), issued.Request.ID)
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("other PM cannot cancel", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "x")
		require.NoError(t, err)

		other := testutil.CreateTestPM(t, h.db, "정매니저", "")
		_, err = h.payments.CancelPending(ctx, testutil.PMActor(other), issued.Request.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})
}

func TestPaymentService_RemindStale(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)
	issued, err := h.payments.Issue(ctx, h.pmActor(), project.ID, 10_000, "계약금")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, h.db.Model(&domain.PaymentRequest{}).
		Where("id = ?", issued.Request.ID).
		Update("created_at", now.Add(-100*time.Hour)).Error)

	fresh := h.assignedProject(t)
	_, err = h.payments.Issue(ctx, h.pmActor(), fresh.ID, 10_000, "계약금")
	require.NoError(t, err)

	sent, err := h.payments.RemindStale(ctx, now, 72*time.Hour, 24*time.Hour, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	reminders := h.sink.ofType(domain.NotificationTypeReminder)
	require.Len(t, reminders, 1)
	assert.Equal(t, "consumer-1", reminders[0].UserID)
	assert.Equal(t, project.ID, *reminders[0].ProjectID)

	// within the cooldown nothing is sent again
	sent, err = h.payments.RemindStale(ctx, now.Add(time.Hour), 72*time.Hour, 24*time.Hour, 10)
	require.NoError(t, err)
	assert.Zero(t, sent)

	sent, err = h.payments.RemindStale(ctx, now.Add(25*time.Hour), 72*time.Hour, 24*time.Hour, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// reminders never change the ledger
	assert.Equal(t, 1, countPending(t, h, project.ID))

	// cancelled projects are skipped
	_, err = h.projects.Cancel(ctx, h.consumer, project.ID)
	require.NoError(t, err)
	sent, err = h.payments.RemindStale(ctx, now.Add(50*time.Hour), 72*time.Hour, 24*time.Hour, 10)
	require.NoError(t, err)
	assert.Zero(t, sent)
}
