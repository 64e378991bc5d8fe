package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectEventType names a committed mutation relayed to realtime subscribers.
type ProjectEventType string

const (
	EventMessageCreated    ProjectEventType = "message.created"
	EventMessageRead       ProjectEventType = "message.read_toggled"
	EventStageChanged      ProjectEventType = "project.stage_changed"
	EventPMAssigned        ProjectEventType = "project.pm_assigned"
	EventProjectCancelled  ProjectEventType = "project.cancelled"
	EventChecklistUpdated  ProjectEventType = "project.checklist_updated"
	EventPaymentRequested  ProjectEventType = "payment.requested"
	EventPaymentCompleted  ProjectEventType = "payment.completed"
	EventPaymentCancelled  ProjectEventType = "payment.cancelled"
	EventPaymentFailed     ProjectEventType = "payment.failed"
	EventPartnerAssigned   ProjectEventType = "partner.assigned"
	EventAssignmentUpdated ProjectEventType = "partner.assignment_updated"
)

// ProjectEvent is one relayed mutation. Data is the JSON-ready payload.
type ProjectEvent struct {
	Type       ProjectEventType `json:"type"`
	ProjectID  uuid.UUID        `json:"projectId"`
	Data       interface{}      `json:"data,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
