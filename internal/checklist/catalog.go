// Package checklist holds the per-category preparation catalog and the cost
// aggregation over a project's checklist.
package checklist

import (
	"github.com/openshop-kr/journey-api/internal/domain"
)

// CustomItemPrefix marks ids of items added by a PM.
const CustomItemPrefix = "custom_"

// StoreSizePresets are the wizard's size choices in 평.
var StoreSizePresets = map[string]float64{
	"small":  10,
	"medium": 17,
	"large":  30,
}

func item(id string, cat domain.ChecklistCategory, title, desc string, min, max int64, unit domain.CostUnit, required bool) domain.ChecklistItem {
	return domain.ChecklistItem{
		ID:          id,
		Title:       title,
		Category:    cat,
		Description: desc,
		Cost:        domain.CostRange{Min: min, Max: max, Unit: unit},
		Required:    required,
	}
}

const (
	catLicense      = domain.ChecklistCategoryLicenseAdmin
	catConstruction = domain.ChecklistCategoryConstruction
	catEquipment    = domain.ChecklistCategoryEquipment
	catOperations   = domain.ChecklistCategoryOperations

	unitManwon  = domain.CostUnitManwon
	unitPerArea = domain.CostUnitPerArea
)

var commonItems = []domain.ChecklistItem{
	item("business_reg", catLicense, "사업자등록", "세무서에서 발급", 0, 0, domain.CostUnitFree, true),
	item("contract", catLicense, "임대차 계약", "보증금·월세 협상", 500, 5000, unitManwon, true),
	item("interior", catConstruction, "인테리어 공사", "철거·설비·마감 포함", 150, 400, unitPerArea, true),
	item("signage", catConstruction, "간판 설치", "외부 간판 제작", 200, 800, unitManwon, true),
	item("pos_system", catEquipment, "POS·키오스크", "결제 시스템 설치", 50, 150, unitManwon, true),
	item("cctv", catEquipment, "CCTV·인터넷", "보안 및 통신 설치", 50, 150, unitManwon, true),
	item("pm_admin", catOperations, "인허가·서류 대행", "담당 매니저가 행정 절차를 도와드려요", 0, 0, domain.CostUnitPMSupport, false),
	item("pm_marketing", catOperations, "마케팅 세팅", "네이버지도·배달앱 등록 대행", 0, 0, domain.CostUnitPMSupport, false),
}

var (
	healthCert = item("health_cert", catLicense, "보건증·위생교육", "보건소 발급 + 위생교육 수료", 2, 7, unitManwon, true)
)

var categoryItems = map[domain.BusinessCategory][]domain.ChecklistItem{
	domain.CategoryRestaurant: {
		healthCert,
		item("food_license", catLicense, "영업신고증", "구청 위생과에서 발급", 0, 5, unitManwon, true),
		item("kitchen_equip", catEquipment, "주방 장비", "가스레인지·싱크대·냉장고", 500, 1500, unitManwon, true),
		item("furniture", catEquipment, "테이블·의자", "홀 가구 구매", 200, 600, unitManwon, true),
	},
	domain.CategoryChicken: {
		healthCert,
		item("food_license", catLicense, "영업신고증", "구청 위생과에서 발급", 0, 5, unitManwon, true),
		item("fryer", catEquipment, "튀김기·냉동고", "업소용 튀김기 + 대형 냉동고", 300, 900, unitManwon, true),
		item("delivery_app", catEquipment, "배달앱 등록", "배민·쿠팡이츠·요기요", 0, 50, unitManwon, true),
	},
	domain.CategoryCafe: {
		healthCert,
		item("food_license", catLicense, "휴게음식점 신고", "구청 위생과에서 발급", 0, 5, unitManwon, true),
		item("espresso_machine", catEquipment, "커피머신·분쇄기", "에스프레소 머신 + 그라인더", 600, 3500, unitManwon, true),
		item("furniture", catEquipment, "테이블·의자", "카페 분위기 가구", 200, 800, unitManwon, true),
	},
	domain.CategoryPub: {
		healthCert,
		item("food_license", catLicense, "일반음식점 신고", "술 판매 시 필수", 0, 5, unitManwon, true),
		item("refrigerator", catEquipment, "냉장고·제빙기", "음료 보관 + 얼음 제조", 200, 500, unitManwon, true),
		item("furniture", catEquipment, "테이블·바 가구", "홀 + 바 테이블", 300, 1000, unitManwon, true),
	},
	domain.CategoryRetail: {
		item("retail_license", catLicense, "소매업 신고", "구청에 신고 필요", 0, 10, unitManwon, true),
		item("display_shelf", catEquipment, "진열대·냉장고", "선반 + 냉장 진열장", 500, 1800, unitManwon, true),
		item("counter", catEquipment, "계산대·POS", "결제 시스템 설치", 100, 300, unitManwon, true),
	},
	domain.CategoryBeauty: {
		item("beauty_license", catLicense, "미용사 자격증·신고", "자격증 + 구청 미용업 신고", 0, 5, unitManwon, true),
		item("plumbing", catConstruction, "샴푸대 배관 공사", "수도·배수 시설 설치", 100, 300, unitManwon, true),
		item("beauty_chair", catEquipment, "미용 의자·거울·샴푸대", "의자 + 거울 + 샴푸대 세트", 500, 1400, unitManwon, true),
		item("beauty_tools", catEquipment, "미용 도구·재료", "드라이기·고데기·염색 도구", 100, 400, unitManwon, true),
	},
	domain.CategoryFitness: {
		item("sports_permit", catLicense, "체육시설업 신고", "구청 체육과 신고", 0, 10, unitManwon, true),
		item("gym_equip", catEquipment, "운동 기구", "러닝머신·자전거·역기 등", 1000, 5000, unitManwon, true),
		item("shower_room", catConstruction, "샤워실·탈의실", "샤워부스 + 락커", 300, 800, unitManwon, true),
	},
	domain.CategoryEducation: {
		item("academy_reg", catLicense, "학원 등록", "교육청 등록 필수", 0, 20, unitManwon, true),
		item("desk_chair", catEquipment, "책상·의자·칠판", "학생용 가구 일체", 200, 600, unitManwon, true),
		item("teacher_hire", catEquipment, "강사 채용", "과목별 강사 필요", 0, 0, domain.CostUnitLabor, true),
	},
	domain.CategoryOffice: {
		item("office_furniture", catEquipment, "사무용 가구", "책상·의자·서류함", 200, 800, unitManwon, true),
	},
	domain.CategoryPCRoom: {
		item("game_biz_reg", catLicense, "게임제공업 등록", "구청 등록 + 청소년보호 교육", 0, 15, unitManwon, true),
		item("pc_setup", catEquipment, "컴퓨터·모니터", "고성능 PC + 주변기기", 5000, 10000, unitManwon, true),
		item("gaming_chair", catEquipment, "의자·책상", "게이밍 의자 + PC방 책상", 500, 1500, unitManwon, true),
	},
	domain.CategoryHotel: {
		item("hotel_biz_reg", catLicense, "숙박업 등록", "구청 등록 + 소방검사", 10, 50, unitManwon, true),
		item("room_furniture", catEquipment, "객실 가구·침구", "침대·이불·TV 등", 100, 300, domain.CostUnitPerRoom, true),
		item("front_system", catEquipment, "예약 관리", "예약 시스템 + 도어락", 100, 500, unitManwon, true),
	},
	domain.CategoryEtc: {
		item("license", catLicense, "인허가 확인", "필요한 허가 확인", 0, 20, unitManwon, true),
		item("equipment", catEquipment, "필요 장비", "업종별 필수 장비", 500, 2000, unitManwon, true),
	},
}

// IsKnownCategory reports whether category has its own catalog.
func IsKnownCategory(category domain.BusinessCategory) bool {
	_, ok := categoryItems[category]
	return ok
}

// NormalizeCategory maps unknown categories to etc.
func NormalizeCategory(category domain.BusinessCategory) domain.BusinessCategory {
	if IsKnownCategory(category) {
		return category
	}
	return domain.CategoryEtc
}

// CatalogFor returns the ordered checklist template for category: the common
// items followed by the category-specific ones. Every item starts unchecked
// and the returned slice is owned by the caller.
func CatalogFor(category domain.BusinessCategory) []domain.ChecklistItem {
	specific := categoryItems[NormalizeCategory(category)]

	items := make([]domain.ChecklistItem, 0, len(commonItems)+len(specific))
	items = append(items, commonItems...)
	items = append(items, specific...)
	for i := range items {
		items[i].Status = domain.ItemStatusUnchecked
	}
	return items
}

// Seed builds a checklist for category and applies the given statuses.
// Statuses for ids not in the catalog are ignored.
func Seed(category domain.BusinessCategory, statuses map[string]domain.ItemStatus) []domain.ChecklistItem {
	items := CatalogFor(category)
	for i := range items {
		if s, ok := statuses[items[i].ID]; ok && s.IsValid() {
			items[i].Status = s
		}
	}
	return items
}

// IsCustomItem reports whether id belongs to a PM-added item.
func IsCustomItem(item domain.ChecklistItem) bool {
	return item.Custom || item.Category == domain.ChecklistCategoryCustom
}
