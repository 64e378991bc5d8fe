package domain

// Lifecycle stages. StageAwaitingPM is the resting value before a PM is
// assigned and is not part of the transition range.
const (
	StageAwaitingPM   = 6
	StageConsultation = 7
	StageQuote        = 8
	StageContract     = 9
	StageConstruction = 10
	StageOpening      = 11
	StageAftercare    = 12

	MinStage = StageConsultation
	MaxStage = StageAftercare
)

var stageLabels = map[int]string{
	StageAwaitingPM:   "매니저 배정 대기",
	StageConsultation: "상담 시작",
	StageQuote:        "비용 견적",
	StageContract:     "계약/시작",
	StageConstruction: "시공 진행",
	StageOpening:      "오픈 완료",
	StageAftercare:    "사후관리",
}

var stageDescriptions = map[int]string{
	StageConsultation: "매니저 배정 완료, 상담 시작",
	StageQuote:        "비용 견적 및 협력업체 배정",
	StageContract:     "계약 진행 및 시공 시작",
	StageConstruction: "시공 및 오픈 준비 진행",
	StageOpening:      "오픈 완료! 축하드립니다",
	StageAftercare:    "사후관리 및 A/S 지원",
}

// IsValidStage reports whether stage is inside the transition range.
func IsValidStage(stage int) bool {
	return stage >= MinStage && stage <= MaxStage
}

// StageLabel returns the fixed human label of a stage.
func StageLabel(stage int) string {
	return stageLabels[stage]
}

func StageDescription(stage int) string {
	return stageDescriptions[stage]
}

// DeriveStatus computes the status implied by stage. hasPM only matters
// below the transition range.
func DeriveStatus(stage int, hasPM bool) ProjectStatus {
	switch {
	case stage >= StageOpening:
		return ProjectStatusCompleted
	case stage >= StageConsultation:
		return ProjectStatusInProgress
	case hasPM:
		return ProjectStatusPMAssigned
	default:
		return ProjectStatusPendingPM
	}
}

// RequirementCheck is the evaluation of one exit requirement of a stage.
type RequirementCheck struct {
	Stage int
	Key   string
	Label string
	Met   bool
}
