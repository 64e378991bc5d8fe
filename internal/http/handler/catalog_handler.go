package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshop-kr/journey-api/internal/checklist"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/mapper"
	"go.uber.org/zap"
)

// CatalogHandler serves the wizard's checklist catalog and anonymous estimates.
type CatalogHandler struct {
	logger *zap.Logger
}

func NewCatalogHandler(logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// resolveStoreSize prefers an explicit preset over a numeric size.
func resolveStoreSize(size float64, preset string) (float64, bool) {
	if preset != "" {
		v, ok := checklist.StoreSizePresets[preset]
		return v, ok
	}
	if checklist.ValidStoreSize(size) {
		return size, true
	}
	return 0, false
}

// Get godoc
// @Summary Get checklist catalog
// @Description Returns the seeded preparation checklist for a business category. Unknown categories fall back to etc.
// @Tags Catalog
// @Produce json
// @Param category path string true "Business category" Enums(cafe, restaurant, chicken, pub, retail, beauty, fitness, education, pcroom, hotel, office, etc)
// @Success 200 {object} domain.CatalogDTO
// @Security BearerAuth
// @Router /catalog/{category} [get]
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := checklist.NormalizeCategory(domain.BusinessCategory(chi.URLParam(r, "category")))

	respondJSON(w, http.StatusOK, domain.CatalogDTO{
		BusinessCategory: category,
		Label:            category.Label(),
		StoreSizes:       checklist.StoreSizePresets,
		Items:            checklist.CatalogFor(category),
	})
}

// Estimate godoc
// @Summary Estimate startup cost
// @Description Computes the cost range and per-item breakdown for wizard answers without creating a project
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.EstimateRequest true "Wizard answers"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates [post]
func (h *CatalogHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req domain.EstimateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	size, ok := resolveStoreSize(req.StoreSize, req.StoreSizePreset)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "storeSize or storeSizePreset is required")
		return
	}

	category := checklist.NormalizeCategory(req.BusinessCategory)
	breakdown, err := checklist.Explain(checklist.Seed(category, req.ItemStatuses), size)
	if err != nil {
		h.logger.Error("failed to aggregate catalog", zap.Error(err), zap.String("category", string(category)))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute estimate")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTO(category, size, breakdown))
}
