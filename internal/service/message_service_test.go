package service_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("consumer message notifies the PM", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		msg, err := h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{Body: "  견적 문의드립니다  "})
		require.NoError(t, err)
		assert.Equal(t, domain.SenderConsumer, msg.SenderRole)
		assert.Equal(t, "견적 문의드립니다", msg.Body)
		assert.Equal(t, int64(4), msg.Seq)
		assert.False(t, msg.IsRead)

		notices := h.sink.ofType(domain.NotificationTypeNewMessage)
		require.Len(t, notices, 1)
		assert.Equal(t, h.pm.UserID, notices[0].UserID)
		assert.Equal(t, "견적 문의드립니다", notices[0].Message)
	})

	t.Run("PM message notifies the owner", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		msg, err := h.messages.Append(ctx, h.pmActor(), project.ID, service.AppendInput{Body: strings.Repeat("가", 80)})
		require.NoError(t, err)
		assert.Equal(t, domain.SenderPM, msg.SenderRole)

		notices := h.sink.ofType(domain.NotificationTypeNewMessage)
		require.Len(t, notices, 1)
		assert.Equal(t, "consumer-1", notices[0].UserID)
		assert.Equal(t, strings.Repeat("가", 50)+"...", notices[0].Message)
	})

	t.Run("admin writes as PM", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		msg, err := h.messages.Append(ctx, testutil.Admin(), project.ID, service.AppendInput{Body: "관리자 안내"})
		require.NoError(t, err)
		assert.Equal(t, domain.SenderPM, msg.SenderRole)
	})

	t.Run("no PM yet means no notification", func(t *testing.T) {
		h := newHarness(t)
		project := h.createProject(t)
		_, err := h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{Body: "언제 배정되나요?"})
		require.NoError(t, err)
		assert.Empty(t, h.sink.ofType(domain.NotificationTypeNewMessage))
	})

	t.Run("validation", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		_, err := h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{Body: "   "})
		assertKind(t, err, service.ErrInvalidInput)

		paymentID := uuid.New()
		_, err = h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{
			Attachments: []domain.Attachment{{Kind: domain.AttachmentKindPaymentRequest, PaymentID: &paymentID, Amount: 1000}},
		})
		assertKind(t, err, service.ErrInvalidInput)

		_, err = h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{
			Attachments: []domain.Attachment{{Kind: domain.AttachmentKindImage, URL: "/files/a.pdf", MimeType: "application/pdf"}},
		})
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("outsiders and cancelled projects", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		_, err := h.messages.Append(ctx, testutil.Consumer("outsider"), project.ID, service.AppendInput{Body: "hi"})
		assertKind(t, err, service.ErrForbiddenRole)

		_, err = h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		_, err = h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{Body: "hi"})
		assertKind(t, err, service.ErrAlreadyTerminal)
	})

	t.Run("missing project", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.messages.Append(ctx, h.consumer, uuid.New(), service.AppendInput{Body: "hi"})
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("concurrent appends keep sequence contiguous", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		const writers = 10
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				actor := h.consumer
				if i%2 == 0 {
					actor = h.pmActor()
				}
				_, err := h.messages.Append(ctx, actor, project.ID, service.AppendInput{Body: fmt.Sprintf("message %d", i)})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		messages := h.transcript(t, project.ID)
		assert.Len(t, messages, 3+writers)
		assertSeqContiguous(t, messages)
	})
}

func TestMessageService_ToggleRead(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)
	msg, err := h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{Body: "확인 부탁드려요"})
	require.NoError(t, err)

	t.Run("PM flips the flag both ways", func(t *testing.T) {
		toggled, err := h.messages.ToggleRead(ctx, h.pmActor(), msg.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsRead)
		assert.NotNil(t, toggled.ReadAt)

		toggled, err = h.messages.ToggleRead(ctx, h.pmActor(), msg.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IsRead)
		assert.Nil(t, toggled.ReadAt)
	})

	t.Run("only consumer messages carry the flag", func(t *testing.T) {
		messages := h.transcript(t, project.ID)
		_, err := h.messages.ToggleRead(ctx, h.pmActor(), messages[0].ID)
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("consumers cannot toggle", func(t *testing.T) {
		_, err := h.messages.ToggleRead(ctx, h.consumer, msg.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("unknown message", func(t *testing.T) {
		_, err := h.messages.ToggleRead(ctx, h.pmActor(), uuid.New())
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("body is never changed", func(t *testing.T) {
		messages := h.transcript(t, project.ID)
		last := messages[len(messages)-1]
		assert.Equal(t, msg.ID, last.ID)
		assert.Equal(t, "확인 부탁드려요", last.Body)
		assert.Equal(t, msg.Seq, last.Seq)
	})
}

func TestMessageService_Templates(t *testing.T) {
	ctx := context.Background()

	t.Run("cost report lists partners and priority items", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		partner := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")
		_, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", partner.ID, "")
		require.NoError(t, err)
		_, err = h.projects.SetItemStatus(ctx, h.consumer, project.ID, "cctv", domain.ItemStatusWorry, nil)
		require.NoError(t, err)

		msg, err := h.messages.SendCostReport(ctx, h.pmActor(), project.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MessageTagCostReport, msg.Tag)
		assert.Equal(t, domain.SenderPM, msg.SenderRole)
		assert.Contains(t, msg.Body, "비용 컨설팅 보고서")
		assert.Contains(t, msg.Body, "간판 설치")
		assert.Contains(t, msg.Body, "한빛간판 (100~300만원)")
		assert.Contains(t, msg.Body, "매니저 우선 지원 항목")
		assert.Contains(t, msg.Body, "CCTV·인터넷")
	})

	t.Run("happy call", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		msg, err := h.messages.SendHappyCall(ctx, h.pmActor(), project.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MessageTagHappyCall, msg.Tag)
		assert.True(t, strings.HasPrefix(msg.Body, "오픈 후 해피콜"))
		assert.Contains(t, msg.Body, "카페/디저트")
	})

	t.Run("consumers cannot send templates", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		_, err := h.messages.SendHappyCall(ctx, h.consumer, project.ID)
		assertKind(t, err, service.ErrForbiddenRole)
	})
}

func TestMessageService_UploadImage(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)

	t.Run("stores and attaches an image", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x89}, 512)
		result, err := h.messages.UploadImage(ctx, h.consumer, project.ID, "Store.PNG", "image/png", int64(len(data)), bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, int64(512), result.Size)
		assert.Equal(t, domain.AttachmentKindImage, result.Attachment.Kind)
		assert.True(t, strings.HasPrefix(result.Attachment.URL, "/files/projects/"+project.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(result.Attachment.URL, ".png"))
		assert.Equal(t, "Store.PNG", result.Attachment.Filename)

		msg, err := h.messages.Append(ctx, h.consumer, project.ID, service.AppendInput{
			Attachments: []domain.Attachment{result.Attachment},
		})
		require.NoError(t, err)
		require.Len(t, msg.Attachments, 1)

		notices := h.sink.ofType(domain.NotificationTypeNewMessage)
		require.NotEmpty(t, notices)
		assert.Equal(t, "사진을 보냈습니다.", notices[len(notices)-1].Message)
	})

	t.Run("declared size over the limit", func(t *testing.T) {
		_, err := h.messages.UploadImage(ctx, h.consumer, project.ID, "big.jpg", "image/jpeg", 4096, bytes.NewReader(nil))
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("undeclared size over the limit", func(t *testing.T) {
		data := bytes.Repeat([]byte{1}, 2048)
		_, err := h.messages.UploadImage(ctx, h.consumer, project.ID, "big.jpg", "image/jpeg", -1, bytes.NewReader(data))
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("non-image content", func(t *testing.T) {
		_, err := h.messages.UploadImage(ctx, h.consumer, project.ID, "doc.pdf", "application/pdf", 10, bytes.NewReader([]byte("x")))
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("outsider", func(t *testing.T) {
		_, err := h.messages.UploadImage(ctx, testutil.Consumer("outsider"), project.ID, "a.png", "image/png", 1, bytes.NewReader([]byte("x")))
		assertKind(t, err, service.ErrForbiddenRole)
	})
}
