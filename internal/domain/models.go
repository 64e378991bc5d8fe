package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns the id client-side so inserts behave the same on
// postgres and sqlite.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ActorRole is the role supplied by the identity provider for a caller.
type ActorRole string

const (
	ActorRoleConsumer ActorRole = "CONSUMER"
	ActorRolePM       ActorRole = "PM"
	ActorRoleAdmin    ActorRole = "ADMIN"
)

func (r ActorRole) IsValid() bool {
	switch r {
	case ActorRoleConsumer, ActorRolePM, ActorRoleAdmin:
		return true
	}
	return false
}

// Actor identifies who performs an operation. It is always passed explicitly.
type Actor struct {
	UserID string
	Name   string
	Role   ActorRole
}

func (a Actor) IsAdmin() bool    { return a.Role == ActorRoleAdmin }
func (a Actor) IsPM() bool       { return a.Role == ActorRolePM }
func (a Actor) IsConsumer() bool { return a.Role == ActorRoleConsumer }

// IsOperator reports whether the actor may drive the project lifecycle.
func (a Actor) IsOperator() bool { return a.IsPM() || a.IsAdmin() }

// ProjectStatus is the coarse lifecycle label of a project
type ProjectStatus string

const (
	ProjectStatusDraft          ProjectStatus = "DRAFT"
	ProjectStatusPendingPM      ProjectStatus = "PENDING_PM"
	ProjectStatusPMAssigned     ProjectStatus = "PM_ASSIGNED"
	ProjectStatusInProgress     ProjectStatus = "IN_PROGRESS"
	ProjectStatusPaymentPending ProjectStatus = "PAYMENT_PENDING"
	ProjectStatusActive         ProjectStatus = "ACTIVE"
	ProjectStatusPostService    ProjectStatus = "POST_SERVICE"
	ProjectStatusCompleted      ProjectStatus = "COMPLETED"
	ProjectStatusCancelled      ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusPendingPM, ProjectStatusPMAssigned, ProjectStatusInProgress,
		ProjectStatusPaymentPending, ProjectStatusActive, ProjectStatusPostService,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// BusinessCategory selects the checklist catalog for a project
type BusinessCategory string

const (
	CategoryCafe       BusinessCategory = "cafe"
	CategoryRestaurant BusinessCategory = "restaurant"
	CategoryChicken    BusinessCategory = "chicken"
	CategoryPub        BusinessCategory = "pub"
	CategoryRetail     BusinessCategory = "retail"
	CategoryBeauty     BusinessCategory = "beauty"
	CategoryFitness    BusinessCategory = "fitness"
	CategoryEducation  BusinessCategory = "education"
	CategoryPCRoom     BusinessCategory = "pcroom"
	CategoryHotel      BusinessCategory = "hotel"
	CategoryOffice     BusinessCategory = "office"
	CategoryEtc        BusinessCategory = "etc"
)

// BusinessCategoryLabels are the display names used in system messages.
var BusinessCategoryLabels = map[BusinessCategory]string{
	CategoryCafe:       "카페/디저트",
	CategoryRestaurant: "음식점",
	CategoryChicken:    "치킨/분식",
	CategoryPub:        "주점/바",
	CategoryRetail:     "소매/편의점",
	CategoryBeauty:     "미용/뷰티",
	CategoryFitness:    "헬스/운동",
	CategoryEducation:  "교육/학원",
	CategoryPCRoom:     "PC방/오락시설",
	CategoryHotel:      "호텔/숙박",
	CategoryOffice:     "사무실",
	CategoryEtc:        "기타",
}

func (c BusinessCategory) Label() string {
	if l, ok := BusinessCategoryLabels[c]; ok {
		return l
	}
	return BusinessCategoryLabels[CategoryEtc]
}

// ChecklistCategory groups checklist items
type ChecklistCategory string

const (
	ChecklistCategoryLicenseAdmin ChecklistCategory = "LICENSE_ADMIN"
	ChecklistCategoryConstruction ChecklistCategory = "CONSTRUCTION"
	ChecklistCategoryEquipment    ChecklistCategory = "EQUIPMENT"
	ChecklistCategoryOperations   ChecklistCategory = "OPERATIONS"
	ChecklistCategoryCustom       ChecklistCategory = "CUSTOM"
)

func (c ChecklistCategory) IsValid() bool {
	switch c {
	case ChecklistCategoryLicenseAdmin, ChecklistCategoryConstruction, ChecklistCategoryEquipment,
		ChecklistCategoryOperations, ChecklistCategoryCustom:
		return true
	}
	return false
}

// CostUnit tells the aggregator how to read a cost range. Amounts are in 만원.
type CostUnit string

const (
	CostUnitManwon    CostUnit = "만원"
	CostUnitPerArea   CostUnit = "평당 만원"
	CostUnitFree      CostUnit = "무료"
	CostUnitPMSupport CostUnit = "매니저 지원"
	CostUnitLabor     CostUnit = "인건비"
	CostUnitPerRoom   CostUnit = "객실당 만원"
)

// IsPerArea reports whether the range is multiplied by store size.
func (u CostUnit) IsPerArea() bool {
	return u == CostUnitPerArea
}

// ItemStatus is the tri-state checklist marker
type ItemStatus string

const (
	ItemStatusUnchecked ItemStatus = "unchecked"
	ItemStatusDone      ItemStatus = "done"
	ItemStatusWorry     ItemStatus = "worry"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusUnchecked, ItemStatusDone, ItemStatusWorry:
		return true
	}
	return false
}

// CostRange is a catalog estimate in 만원
type CostRange struct {
	Min  int64    `json:"min"`
	Max  int64    `json:"max"`
	Unit CostUnit `json:"unit"`
}

// ChecklistItem is one preparation task in a project's checklist snapshot.
// It is stored as JSON inside the project row.
type ChecklistItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    ChecklistCategory `json:"category"`
	Description string            `json:"description,omitempty"`
	Cost        CostRange         `json:"cost"`
	Required    bool              `json:"required"`
	Custom      bool              `json:"custom"`
	Status      ItemStatus        `json:"status"`
	Comment     string            `json:"comment,omitempty"`
}

// Project is a consumer's engagement from wizard completion to aftercare
type Project struct {
	BaseModel
	OwnerID          string                             `gorm:"type:varchar(128);not null;index"`
	OwnerName        string                             `gorm:"type:varchar(200)"`
	PMID             *uuid.UUID                         `gorm:"type:uuid;index;column:pm_id"`
	PMUserID         *string                            `gorm:"type:varchar(128);index;column:pm_user_id"`
	PMName           string                             `gorm:"type:varchar(200);column:pm_name"`
	BusinessCategory BusinessCategory                   `gorm:"type:varchar(50);not null"`
	District         string                             `gorm:"type:varchar(100)"`
	SubDistrict      string                             `gorm:"type:varchar(100)"`
	StoreSize        float64                            `gorm:"not null"`
	EstimatedTotal   int64                              `gorm:"not null;default:0"`
	Checklist        datatypes.JSONSlice[ChecklistItem] `gorm:"column:checklist_data"`
	PMNotes          string                             `gorm:"type:text;column:pm_notes"`
	Status           ProjectStatus                      `gorm:"type:varchar(30);not null;index"`
	CurrentStage     int                                `gorm:"not null"`
	PMApprovedStage  int                                `gorm:"not null;column:pm_approved_stage"`
	MessageSeq       int64                              `gorm:"not null;default:0"`
	Version          int64                              `gorm:"not null;default:0"`
	CancelledAt      *time.Time
}

// HasPM reports whether a PM has been assigned.
func (p *Project) HasPM() bool {
	return p.PMID != nil
}

// IsAssignedTo reports whether userID is the assigned PM.
func (p *Project) IsAssignedTo(userID string) bool {
	return p.PMUserID != nil && *p.PMUserID == userID
}

func (p *Project) IsCancelled() bool {
	return p.Status == ProjectStatusCancelled
}

// FindChecklistItem returns the index of the item with id, or -1.
func (p *Project) FindChecklistItem(id string) int {
	for i, item := range p.Checklist {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SenderRole discriminates who authored a message
type SenderRole string

const (
	SenderConsumer SenderRole = "CONSUMER"
	SenderPM       SenderRole = "PM"
	SenderSystem   SenderRole = "SYSTEM"
)

// MessageTag marks templated messages that exit requirements look for
type MessageTag string

const (
	MessageTagNone         MessageTag = ""
	MessageTagSummary      MessageTag = "project_summary"
	MessageTagPMAssigned   MessageTag = "pm_assigned"
	MessageTagGreeting     MessageTag = "pm_greeting"
	MessageTagStageChanged MessageTag = "stage_changed"
	MessageTagCancelled    MessageTag = "project_cancelled"
	MessageTagPayment      MessageTag = "payment_request"
	MessageTagCostReport   MessageTag = "cost_report"
	MessageTagHappyCall    MessageTag = "happy_call"
)

// AttachmentKind tags the attachment variant
type AttachmentKind string

const (
	AttachmentKindImage          AttachmentKind = "image"
	AttachmentKindPaymentRequest AttachmentKind = "payment_request"
)

// Attachment is a tagged variant: image fields are set for image
// attachments, payment fields for payment_request attachments.
type Attachment struct {
	Kind AttachmentKind `json:"kind"`

	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`

	PaymentID *uuid.UUID `json:"paymentId,omitempty"`
	Amount    int64      `json:"amount,omitempty"`
	Label     string     `json:"label,omitempty"`
}

// Message is one entry of a project's append-only transcript
type Message struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID                       `gorm:"type:uuid;not null;uniqueIndex:idx_messages_project_seq,priority:1"`
	Seq         int64                           `gorm:"not null;uniqueIndex:idx_messages_project_seq,priority:2"`
	SenderRole  SenderRole                      `gorm:"type:varchar(20);not null"`
	SenderID    string                          `gorm:"type:varchar(128)"`
	Body        string                          `gorm:"type:text;not null"`
	Attachments datatypes.JSONSlice[Attachment] `gorm:"column:attachments"`
	Tag         MessageTag                      `gorm:"type:varchar(30);index"`
	IsRead      bool                            `gorm:"not null;default:false"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"not null"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PaymentStatus is the status of a payment request
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusCancelled || s == PaymentStatusFailed
}

// PaymentRequest is a ledger entry for one payment ask
type PaymentRequest struct {
	BaseModel
	ProjectID         uuid.UUID     `gorm:"type:uuid;not null;index"`
	Amount            int64         `gorm:"not null"`
	Description       string        `gorm:"type:varchar(200);not null"`
	Status            PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Method            string        `gorm:"type:varchar(30);not null;default:'toss'"`
	OrderID           string        `gorm:"type:varchar(64);not null;uniqueIndex"`
	IssuedByID        string        `gorm:"type:varchar(128);not null"`
	MessageID         *uuid.UUID    `gorm:"type:uuid"`
	ExternalReference *string       `gorm:"type:varchar(200)"`
	FailureReason     string        `gorm:"type:varchar(500)"`
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	FailedAt          *time.Time
	LastRemindedAt    *time.Time
}

// AssignmentStatus tracks a partner's engagement on a checklist item
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusContacted AssignmentStatus = "contacted"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// Rank orders assignment statuses along their only allowed direction.
func (s AssignmentStatus) Rank() int {
	switch s {
	case AssignmentStatusPending:
		return 0
	case AssignmentStatusContacted:
		return 1
	case AssignmentStatusConfirmed:
		return 2
	case AssignmentStatusCompleted:
		return 3
	}
	return -1
}

func (s AssignmentStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Partner is a contractor or vendor that can be assigned to checklist items
type Partner struct {
	BaseModel
	Name           string  `gorm:"type:varchar(200);not null"`
	Category       string  `gorm:"type:varchar(50);index"`
	PriceMin       int64   `gorm:"not null;default:0"`
	PriceMax       int64   `gorm:"not null;default:0"`
	PriceUnit      string  `gorm:"type:varchar(30)"`
	CommissionRate float64 `gorm:"not null;default:0"`
	Phone          string  `gorm:"type:varchar(50)"`
	IsActive       bool    `gorm:"not null;default:true"`
}

// PartnerAssignment links a partner to a checklist item of a project
type PartnerAssignment struct {
	BaseModel
	ProjectID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ChecklistItemID string           `gorm:"type:varchar(100);not null"`
	PartnerID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	PartnerName     string           `gorm:"type:varchar(200)"`
	Status          AssignmentStatus `gorm:"type:varchar(20);not null"`
	PMNotes         string           `gorm:"type:text;column:pm_notes"`
	AssignedByID    string           `gorm:"type:varchar(128)"`
}

// ProjectManager is the profile of a PM that can be assigned to projects
type ProjectManager struct {
	BaseModel
	UserID          string `gorm:"type:varchar(128);not null;uniqueIndex"`
	Name            string `gorm:"type:varchar(200);not null"`
	Phone           string `gorm:"type:varchar(50)"`
	Email           string `gorm:"type:varchar(255)"`
	GreetingMessage string `gorm:"type:text"`
	IsAvailable     bool   `gorm:"not null;default:true"`
}

// NotificationType is the semantic type of a notification
type NotificationType string

const (
	NotificationTypePMAssigned       NotificationType = "PM_ASSIGNED"
	NotificationTypeNewMessage       NotificationType = "NEW_MESSAGE"
	NotificationTypeStepChanged      NotificationType = "STEP_CHANGED"
	NotificationTypePaymentRequest   NotificationType = "PAYMENT_REQUEST"
	NotificationTypePaymentCompleted NotificationType = "PAYMENT_COMPLETED"
	NotificationTypeReminder         NotificationType = "REMINDER"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypePMAssigned, NotificationTypeNewMessage, NotificationTypeStepChanged,
		NotificationTypePaymentRequest, NotificationTypePaymentCompleted, NotificationTypeReminder:
		return true
	}
	return false
}

// Notification is a persisted, per-user notification
type Notification struct {
	BaseModel
	UserID    string           `gorm:"type:varchar(128);not null;index"`
	ProjectID *uuid.UUID       `gorm:"type:uuid;index"`
	Type      NotificationType `gorm:"type:varchar(30);not null"`
	Title     string           `gorm:"type:varchar(200);not null"`
	Message   string           `gorm:"type:varchar(500);not null"`
	Read      bool             `gorm:"column:read;not null;default:false;index"`
	ReadAt    *time.Time
}
