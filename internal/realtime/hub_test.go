package realtime_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func event(projectID uuid.UUID, t domain.ProjectEventType) domain.ProjectEvent {
	return domain.ProjectEvent{Type: t, ProjectID: projectID, Data: map[string]string{"k": "v"}, OccurredAt: time.Now().UTC()}
}

func TestHub_PublishIsScopedToProject(t *testing.T) {
	hub := realtime.NewHub(realtime.Options{SendBuffer: 4}, zap.NewNop())
	a, b := uuid.New(), uuid.New()

	subA := hub.Subscribe(a, "user-a")
	subB := hub.Subscribe(b, "user-b")

	hub.Publish(event(a, domain.EventMessageCreated))

	select {
	case payload := <-subA.Events():
		var got domain.ProjectEvent
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, domain.EventMessageCreated, got.Type)
		assert.Equal(t, a, got.ProjectID)
	default:
		t.Fatal("expected an event for project a")
	}

	select {
	case <-subB.Events():
		t.Fatal("project b must not receive project a events")
	default:
	}
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub := realtime.NewHub(realtime.Options{SendBuffer: 1}, zap.NewNop())
	projectID := uuid.New()

	slow := hub.Subscribe(projectID, "slow")
	require.Equal(t, 1, hub.Count(projectID))

	hub.Publish(event(projectID, domain.EventStageChanged))
	hub.Publish(event(projectID, domain.EventStageChanged))

	assert.Equal(t, 0, hub.Count(projectID))

	_, ok := <-slow.Events()
	assert.True(t, ok, "buffered event is still delivered")
	_, ok = <-slow.Events()
	assert.False(t, ok, "channel is closed after the drop")

	// unsubscribing a dropped subscriber is harmless
	hub.Unsubscribe(slow)
}

func TestHub_ServeWS(t *testing.T) {
	hub := realtime.NewHub(realtime.Options{PingInterval: time.Second}, zap.NewNop())
	defer hub.Close()
	projectID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(w, r, projectID, "user-1"); err != nil {
			t.Logf("upgrade failed: %v", err)
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count(projectID) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(event(projectID, domain.EventPaymentRequested))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got domain.ProjectEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, domain.EventPaymentRequested, got.Type)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count(projectID) == 0 }, 2*time.Second, 10*time.Millisecond)
}
