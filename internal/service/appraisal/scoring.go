package appraisal

import (
	"fmt"

	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
)

// SectionScores holds the derived scores for one appraisal form.
type SectionScores struct {
	KpiScore       float64
	CoreValueScore float64
	OverallScore   float64
}

// ComputeScores derives section and overall scores from item ratings. Each
// section score is the weightage-normalized sum of its rated items, using the
// manager rating when present and the self rating otherwise. Ratings keyed by
// an unknown item id fail the computation.
func ComputeScores(cycle appraisal.Cycle, items []appraisal.Item, ratings appraisal.Ratings) (SectionScores, error) {
	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		known[it.ID] = struct{}{}
	}
	for itemID := range ratings {
		if _, ok := known[itemID]; !ok {
			return SectionScores{}, fmt.Errorf("%w: item %s", appraisal.ErrUnknownItem, itemID)
		}
	}

	kpi := sectionScore(items, ratings, appraisal.ItemKindKPI)
	cv := sectionScore(items, ratings, appraisal.ItemKindCoreValue)

	return SectionScores{
		KpiScore:       kpi,
		CoreValueScore: cv,
		OverallScore:   kpi*cycle.KpiSectionWeight/100 + cv*cycle.CoreValueSectionWeight/100,
	}, nil
}

func sectionScore(items []appraisal.Item, ratings appraisal.Ratings, kind appraisal.ItemKind) float64 {
	var weighted, totalWeight float64
	for _, it := range items {
		if it.Kind != kind {
			continue
		}
		totalWeight += it.Weightage
		r, ok := ratings[it.ID]
		if !ok {
			continue
		}
		if r.ManagerRating != nil {
			weighted += *r.ManagerRating * it.Weightage
		} else if r.SelfRating != nil {
			weighted += *r.SelfRating * it.Weightage
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}
