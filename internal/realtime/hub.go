// Package realtime relays committed project events to websocket subscribers.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/openshop-kr/journey-api/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultPingInterval = 30 * time.Second
	defaultSendBuffer   = 32
	maxClientMessage    = 512
)

// Options tune connection handling.
type Options struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	SendBuffer   int
	// CheckOrigin overrides the upgrader's origin check when set.
	CheckOrigin func(r *http.Request) bool
}

// Subscriber is one websocket client following a project.
type Subscriber struct {
	ID        string
	UserID    string
	ProjectID uuid.UUID
	send      chan []byte
}

// Events returns the encoded events delivered to the subscriber. The channel
// is closed when the subscriber is removed.
func (s *Subscriber) Events() <-chan []byte {
	return s.send
}

// Hub fans project events out to subscribers of that project. A subscriber
// whose buffer is full is dropped instead of blocking the publisher.
type Hub struct {
	mu       sync.RWMutex
	topics   map[uuid.UUID]map[*Subscriber]struct{}
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(opts Options, logger *zap.Logger) *Hub {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if opts.CheckOrigin != nil {
		upgrader.CheckOrigin = opts.CheckOrigin
	}
	return &Hub{
		topics:   make(map[uuid.UUID]map[*Subscriber]struct{}),
		opts:     opts,
		upgrader: upgrader,
		logger:   logger,
	}
}

// Subscribe registers a subscriber for projectID.
func (h *Hub) Subscribe(projectID uuid.UUID, userID string) *Subscriber {
	sub := &Subscriber{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: projectID,
		send:      make(chan []byte, h.opts.SendBuffer),
	}

	h.mu.Lock()
	subs, ok := h.topics[projectID]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[projectID] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("realtime subscriber registered",
		zap.String("subscriber_id", sub.ID),
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID),
	)
	return sub
}

// Unsubscribe removes sub and closes its channel. It is safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *Subscriber) {
	subs, ok := h.topics[sub.ProjectID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.topics, sub.ProjectID)
	}
}

// Publish implements service.EventPublisher.
func (h *Hub) Publish(event domain.ProjectEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode realtime event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	var slow []*Subscriber
	h.mu.RLock()
	for sub := range h.topics[event.ProjectID] {
		select {
		case sub.send <- payload:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, sub := range slow {
		h.removeLocked(sub)
		h.logger.Warn("dropping slow realtime subscriber",
			zap.String("subscriber_id", sub.ID),
			zap.String("project_id", sub.ProjectID.String()),
		)
	}
	h.mu.Unlock()
}

// Count returns the number of subscribers of projectID.
func (h *Hub) Count(projectID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[projectID])
}

// Close removes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.topics {
		for sub := range subs {
			h.removeLocked(sub)
		}
	}
}

// ServeWS upgrades the request and streams projectID's events to the client
// until either side closes. Authorization happens before this call.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, projectID uuid.UUID, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := h.Subscribe(projectID, userID)
	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
	return nil
}

// readPump discards client frames and detects disconnects.
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.Unsubscribe(sub)
		conn.Close()
	}()

	pongWait := h.opts.PingInterval * 2
	conn.SetReadLimit(maxClientMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Debug("realtime connection closed", zap.String("subscriber_id", sub.ID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Unsubscribe(sub)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unsubscribe(sub)
				return
			}
		}
	}
}
