package service

import (
	"fmt"
	"strings"

	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultGreeting       = "안녕하세요! 담당 매니저입니다. 창업 준비를 함께 도와드리겠습니다."
	defaultPaymentLabel   = "계약금"
	costReportMarker      = "비용 컨설팅 보고서"
	happyCallMarker       = "해피콜"
	notificationPreviewN  = 50
	reportDivider         = "━━━━━━━━━━━━━━━━━━━━"
	paymentMethodDefault  = "toss"
	stageChangedTitle     = "진행 단계 변경"
	pmAssignedTitle       = "담당 매니저 배정 완료"
	paymentRequestTitle   = "결제 요청"
	paymentCompletedTitle = "결제 완료"
	newMessageTitle       = "새 메시지"
	reminderTitle         = "결제 대기 알림"
)

var krPrinter = message.NewPrinter(language.Korean)

// formatWon renders an amount with thousands separators, e.g. 5,000,000.
func formatWon(amount int64) string {
	return krPrinter.Sprintf("%d", amount)
}

// formatCompactWon renders won as 억/천만/만 for summaries.
func formatCompactWon(won int64) string {
	switch {
	case won >= 100_000_000:
		return fmt.Sprintf("%.1f억", float64(won)/100_000_000)
	case won >= 10_000_000:
		return fmt.Sprintf("%.1f천만", float64(won)/10_000_000)
	case won >= 10_000:
		return fmt.Sprintf("%d만", won/10_000)
	}
	return formatWon(won)
}

func formatSize(size float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", size), "0"), ".")
}

func summaryBody(p *domain.Project, r checklist.Range) string {
	var b strings.Builder
	b.WriteString("📋 프로젝트 요약\n\n")
	fmt.Fprintf(&b, "• 업종: %s\n", p.BusinessCategory.Label())
	fmt.Fprintf(&b, "• 위치: %s %s\n", p.District, p.SubDistrict)
	fmt.Fprintf(&b, "• 규모: %s평\n", formatSize(p.StoreSize))
	fmt.Fprintf(&b, "• 예상 비용: %s ~ %s원\n", formatCompactWon(r.Min), formatCompactWon(r.Max))

	var done, worry []string
	for _, it := range p.Checklist {
		switch it.Status {
		case domain.ItemStatusDone:
			done = append(done, it.Title)
		case domain.ItemStatusWorry:
			worry = append(worry, it.Title)
		}
	}
	if len(done) > 0 || len(worry) > 0 {
		b.WriteString("\n")
	}
	if len(done) > 0 {
		fmt.Fprintf(&b, "✅ 이미 준비됨: %s\n", strings.Join(done, ", "))
	}
	if len(worry) > 0 {
		fmt.Fprintf(&b, "⚠️ 도움 필요: %s\n", strings.Join(worry, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func pmAssignedBody(pmName string) string {
	return fmt.Sprintf("담당 매니저가 배정되었습니다 🎉\n\n담당 매니저: %s님\n\n곧 연락드릴 예정입니다.", pmName)
}

func greetingBody(pm *domain.ProjectManager) string {
	greeting := strings.TrimSpace(pm.GreetingMessage)
	if greeting == "" {
		greeting = defaultGreeting
	}
	return fmt.Sprintf("안녕하세요, 담당 매니저 %s입니다.\n\n%s\n\n곧 전화드리겠습니다.", pm.Name, greeting)
}

// stageBody announces a stage. Admin transitions use the short form.
func stageBody(stage int, byAdmin bool) string {
	if byAdmin {
		return fmt.Sprintf("프로젝트 단계가 \"%s\"(으)로 변경되었습니다.", domain.StageLabel(stage))
	}
	return fmt.Sprintf("현재 단계: %s\n\n%s\n\n담당 매니저가 진행 상황을 업데이트했습니다.",
		domain.StageLabel(stage), domain.StageDescription(stage))
}

func cancelledBody(actor domain.Actor) string {
	if actor.IsAdmin() {
		return "관리자에 의해 프로젝트가 취소되었습니다."
	}
	return "고객 요청으로 프로젝트가 취소되었습니다."
}

func paymentBody(amount int64, description string) string {
	return fmt.Sprintf("💳 결제 요청\n\n금액: %s원\n내용: %s\n\n아래 결제하기 버튼을 눌러 결제를 진행해주세요.",
		formatWon(amount), description)
}

func costReportBody(p *domain.Project, live checklist.Breakdown, assignments []domain.PartnerAssignment, partners map[string]*domain.Partner) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 창업 %s\n\n", costReportMarker)
	fmt.Fprintf(&b, "%s | %s %s | %s평\n\n", p.BusinessCategory.Label(), p.District, p.SubDistrict, formatSize(p.StoreSize))
	b.WriteString(reportDivider + "\n\n")

	if len(assignments) > 0 {
		b.WriteString("배정된 협력업체\n\n")
		for _, a := range assignments {
			title := a.ChecklistItemID
			if i := p.FindChecklistItem(a.ChecklistItemID); i >= 0 {
				title = p.Checklist[i].Title
			}
			fmt.Fprintf(&b, "• %s\n", title)
			if partner, ok := partners[a.PartnerID.String()]; ok {
				fmt.Fprintf(&b, "  └ %s (%d~%d%s)\n\n", partner.Name, partner.PriceMin, partner.PriceMax, partner.PriceUnit)
			} else {
				fmt.Fprintf(&b, "  └ %s\n\n", a.PartnerName)
			}
		}
	}

	if len(live.Priority) > 0 {
		b.WriteString("매니저 우선 지원 항목\n\n")
		for _, it := range live.Priority {
			fmt.Fprintf(&b, "• %s\n", it.Title)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "총 예상 비용: %s ~ %s원\n\n", formatCompactWon(live.Total.Min), formatCompactWon(live.Total.Max))
	b.WriteString(reportDivider + "\n\n")
	b.WriteString("궁금한 점이 있으시면 언제든 문의해주세요.")
	return b.String()
}

func happyCallBody(p *domain.Project) string {
	return fmt.Sprintf("오픈 후 %s\n\n안녕하세요, 담당 매니저입니다.\n\n%s 오픈 이후 운영은 잘 되고 계신가요?\n\n"+
		"혹시 추가로 도움이 필요하신 부분이 있으시면 언제든 말씀해주세요.\n\n"+
		"- 장비 A/S 필요하신 부분\n- 추가 인테리어/보수 필요하신 부분\n- 마케팅/홍보 지원\n- 기타 운영 관련 문의\n\n"+
		"항상 응원하겠습니다.", happyCallMarker, p.BusinessCategory.Label())
}
