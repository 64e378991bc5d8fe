package domain

import (
	"github.com/google/uuid"
)

// Response DTOs

type ProjectDTO struct {
	ID                    uuid.UUID        `json:"id"`
	OwnerID               string           `json:"ownerId"`
	OwnerName             string           `json:"ownerName,omitempty"`
	PMID                  *uuid.UUID       `json:"pmId,omitempty"`
	PMName                string           `json:"pmName,omitempty"`
	BusinessCategory      BusinessCategory `json:"businessCategory"`
	BusinessCategoryLabel string           `json:"businessCategoryLabel"`
	District              string           `json:"district"`
	SubDistrict           string           `json:"subDistrict"`
	StoreSize             float64          `json:"storeSize"`
	EstimatedTotal        int64            `json:"estimatedTotal"`
	Checklist             []ChecklistItem  `json:"checklist"`
	PMNotes               string           `json:"pmNotes,omitempty"`
	Status                ProjectStatus    `json:"status"`
	CurrentStage          int              `json:"currentStage"`
	StageLabel            string           `json:"stageLabel"`
	PMApprovedStage       int              `json:"pmApprovedStage"`
	CreatedAt             string           `json:"createdAt"` // ISO 8601
	UpdatedAt             string           `json:"updatedAt"` // ISO 8601
	CancelledAt           *string          `json:"cancelledAt,omitempty"`
}

type MessageDTO struct {
	ID          uuid.UUID    `json:"id"`
	ProjectID   uuid.UUID    `json:"projectId"`
	Seq         int64        `json:"seq"`
	SenderRole  SenderRole   `json:"senderRole"`
	SenderID    string       `json:"senderId,omitempty"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments"`
	Tag         MessageTag   `json:"tag,omitempty"`
	IsRead      bool         `json:"isRead"`
	ReadAt      *string      `json:"readAt,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

type PaymentRequestDTO struct {
	ID                uuid.UUID     `json:"id"`
	ProjectID         uuid.UUID     `json:"projectId"`
	Amount            int64         `json:"amount"`
	Description       string        `json:"description"`
	Status            PaymentStatus `json:"status"`
	Method            string        `json:"method"`
	OrderID           string        `json:"orderId"`
	MessageID         *uuid.UUID    `json:"messageId,omitempty"`
	ExternalReference *string       `json:"externalReference,omitempty"`
	FailureReason     string        `json:"failureReason,omitempty"`
	CreatedAt         string        `json:"createdAt"`
	CompletedAt       *string       `json:"completedAt,omitempty"`
	CancelledAt       *string       `json:"cancelledAt,omitempty"`
	FailedAt          *string       `json:"failedAt,omitempty"`
}

type PartnerDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	PriceMin       int64     `json:"priceMin"`
	PriceMax       int64     `json:"priceMax"`
	PriceUnit      string    `json:"priceUnit"`
	CommissionRate float64   `json:"commissionRate"`
	Phone          string    `json:"phone,omitempty"`
}

type PartnerAssignmentDTO struct {
	ID              uuid.UUID        `json:"id"`
	ProjectID       uuid.UUID        `json:"projectId"`
	ChecklistItemID string           `json:"checklistItemId"`
	PartnerID       uuid.UUID        `json:"partnerId"`
	PartnerName     string           `json:"partnerName"`
	Status          AssignmentStatus `json:"status"`
	PMNotes         string           `json:"pmNotes,omitempty"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type NotificationDTO struct {
	ID        uuid.UUID        `json:"id"`
	ProjectID *uuid.UUID       `json:"projectId,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	ReadAt    *string          `json:"readAt,omitempty"`
	CreatedAt string           `json:"createdAt"`
}

type RequirementDTO struct {
	Stage int    `json:"stage"`
	Key   string `json:"key"`
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

// TransitionResultDTO reports a stage transition attempt. When Committed is
// false the caller must confirm with force=true to proceed.
type TransitionResultDTO struct {
	Project   ProjectDTO       `json:"project"`
	FromStage int              `json:"fromStage"`
	ToStage   int              `json:"toStage"`
	Committed bool             `json:"committed"`
	Unchanged bool             `json:"unchanged"`
	Magnitude int              `json:"magnitude"`
	LargeJump bool             `json:"largeJump"`
	Warnings  []RequirementDTO `json:"warnings"`
	Message   *MessageDTO      `json:"message,omitempty"`
}

type RequirementsDTO struct {
	Stage        int              `json:"stage"`
	StageLabel   string           `json:"stageLabel"`
	Requirements []RequirementDTO `json:"requirements"`
}

type IssuePaymentResponse struct {
	PaymentRequest PaymentRequestDTO `json:"paymentRequest"`
	Message        MessageDTO        `json:"message"`
	Warnings       []string          `json:"warnings"`
}

type CostRangeDTO struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type EstimateLineDTO struct {
	ItemID string       `json:"itemId,omitempty"`
	Label  string       `json:"label"`
	Status ItemStatus   `json:"status,omitempty"`
	Range  CostRangeDTO `json:"range"`
}

type EstimateDTO struct {
	BusinessCategory BusinessCategory  `json:"businessCategory"`
	StoreSize        float64           `json:"storeSize"`
	Total            CostRangeDTO      `json:"total"`
	Midpoint         int64             `json:"midpoint"`
	Deposit          EstimateLineDTO   `json:"deposit"`
	Lines            []EstimateLineDTO `json:"lines"`
	Priority         []ChecklistItem   `json:"priority"`
}

type CatalogDTO struct {
	BusinessCategory BusinessCategory   `json:"businessCategory"`
	Label            string             `json:"label"`
	StoreSizes       map[string]float64 `json:"storeSizes"`
	Items            []ChecklistItem    `json:"items"`
}

type UploadDTO struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

type CreateProjectRequest struct {
	BusinessCategory BusinessCategory      `json:"businessCategory" validate:"required,max=50"`
	District         string                `json:"district" validate:"max=100"`
	SubDistrict      string                `json:"subDistrict" validate:"max=100"`
	StoreSize        float64               `json:"storeSize,omitempty" validate:"omitempty,gt=0,lte=10000"`
	StoreSizePreset  string                `json:"storeSizePreset,omitempty" validate:"omitempty,oneof=small medium large"`
	ItemStatuses     map[string]ItemStatus `json:"itemStatuses,omitempty" validate:"omitempty,dive,oneof=unchecked done worry"`
	Note             string                `json:"note,omitempty" validate:"max=2000"`
}

type EstimateRequest struct {
	BusinessCategory BusinessCategory      `json:"businessCategory" validate:"required,max=50"`
	StoreSize        float64               `json:"storeSize,omitempty" validate:"omitempty,gt=0,lte=10000"`
	StoreSizePreset  string                `json:"storeSizePreset,omitempty" validate:"omitempty,oneof=small medium large"`
	ItemStatuses     map[string]ItemStatus `json:"itemStatuses,omitempty" validate:"omitempty,dive,oneof=unchecked done worry"`
}

type AssignPMRequest struct {
	PMID uuid.UUID `json:"pmId" validate:"required"`
}

type AdvanceStageRequest struct {
	Force bool `json:"force"`
}

type SetStageRequest struct {
	TargetStage int  `json:"targetStage" validate:"required,min=7,max=12"`
	Force       bool `json:"force"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

type UpdateChecklistItemRequest struct {
	Status  ItemStatus `json:"status" validate:"required,oneof=unchecked done worry"`
	Comment *string    `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type AddChecklistItemRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	CostMin     int64    `json:"costMin,omitempty" validate:"gte=0"`
	CostMax     int64    `json:"costMax,omitempty" validate:"gte=0,gtefield=CostMin"`
	Unit        CostUnit `json:"unit,omitempty" validate:"max=20"`
}

type AttachmentRequest struct {
	Kind     AttachmentKind `json:"kind" validate:"required,oneof=image"`
	URL      string         `json:"url" validate:"required,max=2000"`
	MimeType string         `json:"mimeType" validate:"required,startswith=image/"`
	Filename string         `json:"filename,omitempty" validate:"max=255"`
}

type SendMessageRequest struct {
	Body        string              `json:"body" validate:"max=5000"`
	Attachments []AttachmentRequest `json:"attachments,omitempty" validate:"max=10,dive"`
}

type IssuePaymentRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty" validate:"max=200"`
}

// ConfirmPaymentRequest is the payment processor's confirmation callback.
type ConfirmPaymentRequest struct {
	PaymentRequestID uuid.UUID `json:"paymentRequestId" validate:"required"`
	PaymentKey       string    `json:"paymentKey" validate:"required,max=200"`
	OrderID          string    `json:"orderId,omitempty" validate:"max=64"`
	Amount           int64     `json:"amount" validate:"required"`
}

type FailPaymentRequest struct {
	PaymentRequestID uuid.UUID `json:"paymentRequestId" validate:"required"`
	PaymentKey       string    `json:"paymentKey,omitempty" validate:"max=200"`
	Reason           string    `json:"reason,omitempty" validate:"max=500"`
}

type AssignPartnerRequest struct {
	ChecklistItemID string    `json:"checklistItemId" validate:"required,max=100"`
	PartnerID       uuid.UUID `json:"partnerId" validate:"required"`
	Notes           string    `json:"notes,omitempty" validate:"max=2000"`
}

type UpdateAssignmentStatusRequest struct {
	Status AssignmentStatus `json:"status" validate:"required,oneof=pending contacted confirmed completed"`
	Notes  *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
