package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"go.uber.org/zap"
)

// NotificationEvent is what the lifecycle hands to the notification sink.
type NotificationEvent struct {
	UserID    string
	ProjectID *uuid.UUID
	Type      domain.NotificationType
	Title     string
	Message   string
}

// NotificationSink receives notifications. Delivery is best effort.
type NotificationSink interface {
	Emit(ctx context.Context, event NotificationEvent) error
}

// EventPublisher relays committed project mutations to live subscribers.
type EventPublisher interface {
	Publish(event domain.ProjectEvent)
}

// Dispatcher runs the side effects of committed mutations. Failures are
// logged and never reach the caller.
type Dispatcher struct {
	sink      NotificationSink
	publisher EventPublisher
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. Either collaborator may be nil.
func NewDispatcher(sink NotificationSink, publisher EventPublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{sink: sink, publisher: publisher, logger: logger}
}

// effects collects side effects inside a transaction so they run only after commit.
type effects struct {
	notifications []NotificationEvent
	events        []domain.ProjectEvent
}

func (fx *effects) notify(n NotificationEvent) {
	fx.notifications = append(fx.notifications, n)
}

func (fx *effects) publish(t domain.ProjectEventType, projectID uuid.UUID, data interface{}) {
	fx.events = append(fx.events, domain.ProjectEvent{
		Type:       t,
		ProjectID:  projectID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, fx *effects) {
	if d == nil || fx == nil {
		return
	}
	for _, n := range fx.notifications {
		d.emit(ctx, n)
	}
	for _, e := range fx.events {
		d.relay(e)
	}
}

func (d *Dispatcher) emit(ctx context.Context, n NotificationEvent) {
	if d.sink == nil || n.UserID == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Notification sink panicked",
				zap.Any("panic", r),
				zap.String("type", string(n.Type)),
			)
		}
	}()
	if err := d.sink.Emit(ctx, n); err != nil {
		d.logger.Warn("Failed to emit notification",
			zap.String("type", string(n.Type)),
			zap.String("user_id", n.UserID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) relay(e domain.ProjectEvent) {
	if d.publisher == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Event publisher panicked", zap.Any("panic", r), zap.String("event", string(e.Type)))
		}
	}()
	d.publisher.Publish(e)
}
