package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/auth"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopSink struct{}

func (nopSink) Emit(context.Context, service.NotificationEvent) error { return nil }

type testEnv struct {
	projects *ProjectHandler
	stages   *StageHandler
	messages *MessageHandler
	payments *PaymentHandler

	projectService *service.ProjectService
	pm             *domain.ProjectManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	projectRepo := repository.NewProjectRepository(db)
	dispatcher := service.NewDispatcher(nopSink{}, nil, logger)

	projectService := service.NewProjectService(projectRepo, repository.NewProjectManagerRepository(db), dispatcher, db, logger)
	stageService := service.NewStageService(projectRepo, dispatcher, db, logger)
	messageService := service.NewMessageService(projectRepo, repository.NewMessageRepository(db), nil, 1024, dispatcher, db, logger)
	paymentService := service.NewPaymentService(projectRepo, repository.NewPaymentRequestRepository(db), dispatcher, db, logger, 0)

	return &testEnv{
		projects:       NewProjectHandler(projectService, logger),
		stages:         NewStageHandler(stageService, logger),
		messages:       NewMessageHandler(messageService, 1024, logger),
		payments:       NewPaymentHandler(paymentService, logger),
		projectService: projectService,
		pm:             testutil.CreateTestPM(t, db, "김매니저", ""),
	}
}

func consumerCtx() *auth.UserContext {
	return &auth.UserContext{UserID: "consumer-1", DisplayName: "고객", Role: domain.ActorRoleConsumer}
}

func adminCtx() *auth.UserContext {
	return &auth.UserContext{UserID: "admin-1", DisplayName: "관리자", Role: domain.ActorRoleAdmin}
}

func (e *testEnv) pmCtx() *auth.UserContext {
	return &auth.UserContext{UserID: e.pm.UserID, DisplayName: e.pm.Name, Role: domain.ActorRolePM}
}

// serve runs h with the given caller, URL params and JSON body.
func serve(t *testing.T, h http.HandlerFunc, user *auth.UserContext, params map[string]string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = auth.WithUserContext(ctx, user)
	}

	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

// assignedProject creates a project through the handler and assigns the PM.
func (e *testEnv) assignedProject(t *testing.T) uuid.UUID {
	t.Helper()
	rec := serve(t, e.projects.Create, consumerCtx(), nil, map[string]interface{}{
		"businessCategory": domain.CategoryCafe,
		"district":         "마포구",
		"storeSizePreset":  "medium",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var dto domain.ProjectDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "/api/v1/projects/"+dto.ID.String(), rec.Header().Get("Location"))

	_, err := e.projectService.AssignPM(context.Background(), testutil.Admin(), dto.ID, e.pm.ID)
	require.NoError(t, err)
	return dto.ID
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind error
		want int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrForbiddenRole, http.StatusForbidden},
		{service.ErrForbiddenReversal, http.StatusForbidden},
		{service.ErrAlreadyTerminal, http.StatusConflict},
		{service.ErrPendingExists, http.StatusConflict},
		{service.ErrInvalidStateTransition, http.StatusConflict},
		{service.ErrConflict, http.StatusConflict},
		{service.ErrAmountOutOfRange, http.StatusBadRequest},
		{service.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrAmountMismatch, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForKind(tt.kind.Error()))
		})
	}
	assert.Equal(t, http.StatusInternalServerError, statusForKind("SOMETHING_ELSE"))
}

func TestProjectHandler_Create(t *testing.T) {
	env := newTestEnv(t)

	t.Run("requires a caller", func(t *testing.T) {
		rec := serve(t, env.projects.Create, nil, nil, map[string]interface{}{"businessCategory": "cafe"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service callers are not users", func(t *testing.T) {
		rec := serve(t, env.projects.Create, &auth.UserContext{UserID: "svc", Service: true}, nil, map[string]interface{}{"businessCategory": "cafe"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		rec := serve(t, env.projects.Create, consumerCtx(), nil, map[string]interface{}{"storeSize": 10})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, service.ErrInvalidInput.Error(), apiErr.Kind)
		assert.Contains(t, apiErr.Errors, "businessCategory")
	})

	t.Run("store size is required", func(t *testing.T) {
		rec := serve(t, env.projects.Create, consumerCtx(), nil, map[string]interface{}{"businessCategory": "cafe"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("operators cannot open projects", func(t *testing.T) {
		rec := serve(t, env.projects.Create, adminCtx(), nil, map[string]interface{}{"businessCategory": "cafe", "storeSize": 15})
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, service.ErrForbiddenRole.Error(), decodeError(t, rec).Kind)
	})

	t.Run("created", func(t *testing.T) {
		id := env.assignedProject(t)
		rec := serve(t, env.projects.GetByID, consumerCtx(), map[string]string{"id": id.String()}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var dto domain.ProjectDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, domain.StageConsultation, dto.CurrentStage)
		assert.Equal(t, "김매니저", dto.PMName)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, env.projects.GetByID, consumerCtx(), map[string]string{"id": "not-a-uuid"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStageHandler_SetStage(t *testing.T) {
	env := newTestEnv(t)
	id := env.assignedProject(t)
	params := map[string]string{"id": id.String()}

	t.Run("target outside the range", func(t *testing.T) {
		rec := serve(t, env.stages.SetStage, env.pmCtx(), params, map[string]interface{}{"targetStage": 3})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("held transition reports warnings", func(t *testing.T) {
		rec := serve(t, env.stages.SetStage, env.pmCtx(), params, map[string]interface{}{"targetStage": 9})
		require.Equal(t, http.StatusOK, rec.Code)

		var dto domain.TransitionResultDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.False(t, dto.Committed)
		assert.NotEmpty(t, dto.Warnings)
		assert.Nil(t, dto.Message)
	})

	t.Run("forced transition commits", func(t *testing.T) {
		rec := serve(t, env.stages.SetStage, env.pmCtx(), params, map[string]interface{}{"targetStage": 9, "force": true})
		require.Equal(t, http.StatusOK, rec.Code)

		var dto domain.TransitionResultDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.True(t, dto.Committed)
		assert.Equal(t, 9, dto.Project.CurrentStage)
		require.NotNil(t, dto.Message)
	})

	t.Run("PM reversal is forbidden", func(t *testing.T) {
		rec := serve(t, env.stages.SetStage, env.pmCtx(), params, map[string]interface{}{"targetStage": 8, "force": true})
		require.Equal(t, http.StatusForbidden, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, service.ErrForbiddenReversal.Error(), apiErr.Kind)
		assert.Equal(t, float64(9), apiErr.Current)
		assert.Equal(t, float64(8), apiErr.Requested)
	})

	t.Run("admin reversal", func(t *testing.T) {
		rec := serve(t, env.stages.SetStage, adminCtx(), params, map[string]interface{}{"targetStage": 8})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPaymentHandler(t *testing.T) {
	env := newTestEnv(t)
	id := env.assignedProject(t)
	params := map[string]string{"id": id.String()}

	rec := serve(t, env.payments.Issue, env.pmCtx(), params, map[string]interface{}{"amount": 5_000_000, "description": "계약금"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var issued domain.IssuePaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	assert.Equal(t, domain.PaymentStatusPending, issued.PaymentRequest.Status)
	assert.Equal(t, domain.MessageTagPayment, issued.Message.Tag)
	assert.NotNil(t, issued.Warnings)

	t.Run("second request conflicts", func(t *testing.T) {
		rec := serve(t, env.payments.Issue, env.pmCtx(), params, map[string]interface{}{"amount": 1000})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, service.ErrPendingExists.Error(), decodeError(t, rec).Kind)
	})

	t.Run("amount out of range", func(t *testing.T) {
		rec := serve(t, env.payments.Reissue, env.pmCtx(), params, map[string]interface{}{"amount": 0})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.ErrAmountOutOfRange.Error(), decodeError(t, rec).Kind)
	})

	t.Run("consumers see the ledger", func(t *testing.T) {
		rec := serve(t, env.payments.List, consumerCtx(), params, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []domain.PaymentRequestDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		rec := serve(t, env.payments.Confirm, nil, nil, map[string]interface{}{
			"paymentRequestId": issued.PaymentRequest.ID,
			"paymentKey":       "pay_1",
			"amount":           4_000_000,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, service.ErrAmountMismatch.Error(), apiErr.Kind)
		assert.Equal(t, float64(5_000_000), apiErr.Current)
		assert.Equal(t, float64(4_000_000), apiErr.Requested)
	})

	t.Run("confirmation completes the request", func(t *testing.T) {
		body := map[string]interface{}{
			"paymentRequestId": issued.PaymentRequest.ID,
			"paymentKey":       "pay_1",
			"orderId":          issued.PaymentRequest.OrderID,
			"amount":           5_000_000,
		}
		for i := 0; i < 2; i++ {
			rec := serve(t, env.payments.Confirm, nil, nil, body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var dto domain.PaymentRequestDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
			assert.Equal(t, domain.PaymentStatusCompleted, dto.Status)
		}
	})

	t.Run("completed requests cannot fail", func(t *testing.T) {
		rec := serve(t, env.payments.Fail, nil, nil, map[string]interface{}{"paymentRequestId": issued.PaymentRequest.ID})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, service.ErrInvalidStateTransition.Error(), decodeError(t, rec).Kind)
	})
}

func TestMessageHandler_Send(t *testing.T) {
	env := newTestEnv(t)
	id := env.assignedProject(t)
	params := map[string]string{"id": id.String()}

	rec := serve(t, env.messages.Send, consumerCtx(), params, map[string]interface{}{"body": "안녕하세요"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var msg domain.MessageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, domain.SenderConsumer, msg.SenderRole)
	assert.Equal(t, int64(4), msg.Seq)

	rec = serve(t, env.messages.Send, consumerCtx(), params, map[string]interface{}{"body": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrInvalidInput.Error(), decodeError(t, rec).Kind)

	rec = serve(t, env.messages.ToggleRead, env.pmCtx(), map[string]string{"id": msg.ID.String()}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.True(t, msg.IsRead)

	rec = serve(t, env.messages.List, &auth.UserContext{UserID: "outsider", Role: domain.ActorRoleConsumer}, params, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
