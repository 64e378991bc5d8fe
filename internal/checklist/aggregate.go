package checklist

import (
	"errors"
	"fmt"
	"math"

	"github.com/openshop-kr/journey-api/internal/domain"
)

const (
	// WonPerManwon converts catalog amounts (만원) to whole won.
	WonPerManwon = 10000

	// Deposit and key-money estimate per 평, in 만원.
	DepositLowPerArea  = 300
	DepositHighPerArea = 800
)

// ErrInvalidRange is returned when a checklist produces a negative or
// inverted range. It indicates a corrupted catalog entry.
var ErrInvalidRange = errors.New("invalid cost range")

// Range is a closed cost range in won.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Midpoint is the snapshot value stored as a project's estimated total.
func (r Range) Midpoint() int64 {
	return (r.Min + r.Max) / 2
}

// Line is one contribution to an aggregate.
type Line struct {
	ItemID string            `json:"itemId,omitempty"`
	Label  string            `json:"label"`
	Status domain.ItemStatus `json:"status,omitempty"`
	Range  Range             `json:"range"`
}

// Breakdown explains an aggregate line by line.
type Breakdown struct {
	Total Range  `json:"total"`
	Lines []Line `json:"lines"`
	// Deposit is the base deposit and key-money estimate.
	Deposit Line `json:"deposit"`
	// Priority lists the items the consumer marked as worry.
	Priority []domain.ChecklistItem `json:"priority"`
}

// ValidStoreSize reports whether size can be aggregated. Callers must check
// it before calling Aggregate.
func ValidStoreSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0) && !math.IsNaN(size)
}

// Aggregate sums the cost of every item not marked done, multiplying per-area
// units by storeSize, and adds the deposit estimate. storeSize must be
// positive.
func Aggregate(items []domain.ChecklistItem, storeSize float64) (Range, error) {
	b, err := Explain(items, storeSize)
	if err != nil {
		return Range{}, err
	}
	return b.Total, nil
}

// Explain is Aggregate with a per-line breakdown.
func Explain(items []domain.ChecklistItem, storeSize float64) (Breakdown, error) {
	var b Breakdown
	var min, max float64

	for _, it := range items {
		if it.Status == domain.ItemStatusWorry {
			b.Priority = append(b.Priority, it)
		}
		if it.Status == domain.ItemStatusDone {
			continue
		}
		if it.Cost.Min < 0 || it.Cost.Max < it.Cost.Min {
			return Breakdown{}, fmt.Errorf("%w: item %s has %d..%d", ErrInvalidRange, it.ID, it.Cost.Min, it.Cost.Max)
		}

		lo, hi := float64(it.Cost.Min), float64(it.Cost.Max)
		if it.Cost.Unit.IsPerArea() {
			lo *= storeSize
			hi *= storeSize
		}
		min += lo
		max += hi
		b.Lines = append(b.Lines, Line{
			ItemID: it.ID,
			Label:  it.Title,
			Status: it.Status,
			Range:  Range{Min: toWon(lo), Max: toWon(hi)},
		})
	}

	depLo := storeSize * DepositLowPerArea
	depHi := storeSize * DepositHighPerArea
	b.Deposit = Line{Label: "보증금 및 권리금", Range: Range{Min: toWon(depLo), Max: toWon(depHi)}}

	b.Total = Range{Min: toWon(min + depLo), Max: toWon(max + depHi)}
	if b.Total.Min < 0 || b.Total.Min > b.Total.Max {
		return Breakdown{}, fmt.Errorf("%w: total %d..%d", ErrInvalidRange, b.Total.Min, b.Total.Max)
	}
	return b, nil
}

func toWon(manwon float64) int64 {
	return int64(math.Round(manwon * WonPerManwon))
}
