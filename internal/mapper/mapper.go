package mapper

import (
	"time"

	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
)

const isoLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	items := []domain.ChecklistItem(project.Checklist)
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	return domain.ProjectDTO{
		ID:                    project.ID,
		OwnerID:               project.OwnerID,
		OwnerName:             project.OwnerName,
		PMID:                  project.PMID,
		PMName:                project.PMName,
		BusinessCategory:      project.BusinessCategory,
		BusinessCategoryLabel: project.BusinessCategory.Label(),
		District:              project.District,
		SubDistrict:           project.SubDistrict,
		StoreSize:             project.StoreSize,
		EstimatedTotal:        project.EstimatedTotal,
		Checklist:             items,
		PMNotes:               project.PMNotes,
		Status:                project.Status,
		CurrentStage:          project.CurrentStage,
		StageLabel:            domain.StageLabel(project.CurrentStage),
		PMApprovedStage:       project.PMApprovedStage,
		CreatedAt:             formatTime(project.CreatedAt),
		UpdatedAt:             formatTime(project.UpdatedAt),
		CancelledAt:           formatTimePtr(project.CancelledAt),
	}
}

// ToMessageDTO converts Message to MessageDTO
func ToMessageDTO(message *domain.Message) domain.MessageDTO {
	attachments := []domain.Attachment(message.Attachments)
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return domain.MessageDTO{
		ID:          message.ID,
		ProjectID:   message.ProjectID,
		Seq:         message.Seq,
		SenderRole:  message.SenderRole,
		SenderID:    message.SenderID,
		Body:        message.Body,
		Attachments: attachments,
		Tag:         message.Tag,
		IsRead:      message.IsRead,
		ReadAt:      formatTimePtr(message.ReadAt),
		CreatedAt:   formatTime(message.CreatedAt),
	}
}

func ToMessageDTOs(messages []domain.Message) []domain.MessageDTO {
	dtos := make([]domain.MessageDTO, len(messages))
	for i := range messages {
		dtos[i] = ToMessageDTO(&messages[i])
	}
	return dtos
}

// ToPaymentRequestDTO converts PaymentRequest to PaymentRequestDTO
func ToPaymentRequestDTO(request *domain.PaymentRequest) domain.PaymentRequestDTO {
	return domain.PaymentRequestDTO{
		ID:                request.ID,
		ProjectID:         request.ProjectID,
		Amount:            request.Amount,
		Description:       request.Description,
		Status:            request.Status,
		Method:            request.Method,
		OrderID:           request.OrderID,
		MessageID:         request.MessageID,
		ExternalReference: request.ExternalReference,
		FailureReason:     request.FailureReason,
		CreatedAt:         formatTime(request.CreatedAt),
		CompletedAt:       formatTimePtr(request.CompletedAt),
		CancelledAt:       formatTimePtr(request.CancelledAt),
		FailedAt:          formatTimePtr(request.FailedAt),
	}
}

func ToPaymentRequestDTOs(requests []domain.PaymentRequest) []domain.PaymentRequestDTO {
	dtos := make([]domain.PaymentRequestDTO, len(requests))
	for i := range requests {
		dtos[i] = ToPaymentRequestDTO(&requests[i])
	}
	return dtos
}

func ToPartnerDTO(partner *domain.Partner) domain.PartnerDTO {
	return domain.PartnerDTO{
		ID:             partner.ID,
		Name:           partner.Name,
		Category:       partner.Category,
		PriceMin:       partner.PriceMin,
		PriceMax:       partner.PriceMax,
		PriceUnit:      partner.PriceUnit,
		CommissionRate: partner.CommissionRate,
		Phone:          partner.Phone,
	}
}

func ToPartnerAssignmentDTO(a *domain.PartnerAssignment) domain.PartnerAssignmentDTO {
	return domain.PartnerAssignmentDTO{
		ID:              a.ID,
		ProjectID:       a.ProjectID,
		ChecklistItemID: a.ChecklistItemID,
		PartnerID:       a.PartnerID,
		PartnerName:     a.PartnerName,
		Status:          a.Status,
		PMNotes:         a.PMNotes,
		CreatedAt:       formatTime(a.CreatedAt),
		UpdatedAt:       formatTime(a.UpdatedAt),
	}
}

func ToNotificationDTO(n *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		ReadAt:    formatTimePtr(n.ReadAt),
		CreatedAt: formatTime(n.CreatedAt),
	}
}

// ToRequirementDTOs converts requirement checks, never returning nil.
func ToRequirementDTOs(checks []domain.RequirementCheck) []domain.RequirementDTO {
	dtos := make([]domain.RequirementDTO, 0, len(checks))
	for _, c := range checks {
		dtos = append(dtos, domain.RequirementDTO{Stage: c.Stage, Key: c.Key, Label: c.Label, Met: c.Met})
	}
	return dtos
}

func toRangeDTO(r checklist.Range) domain.CostRangeDTO {
	return domain.CostRangeDTO{Min: r.Min, Max: r.Max}
}

func toLineDTO(l checklist.Line) domain.EstimateLineDTO {
	return domain.EstimateLineDTO{ItemID: l.ItemID, Label: l.Label, Status: l.Status, Range: toRangeDTO(l.Range)}
}

// ToEstimateDTO converts an aggregate breakdown for the given parameters.
func ToEstimateDTO(category domain.BusinessCategory, storeSize float64, b checklist.Breakdown) domain.EstimateDTO {
	lines := make([]domain.EstimateLineDTO, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, toLineDTO(l))
	}
	priority := b.Priority
	if priority == nil {
		priority = []domain.ChecklistItem{}
	}
	return domain.EstimateDTO{
		BusinessCategory: category,
		StoreSize:        storeSize,
		Total:            toRangeDTO(b.Total),
		Midpoint:         b.Total.Midpoint(),
		Deposit:          toLineDTO(b.Deposit),
		Lines:            lines,
		Priority:         priority,
	}
}
