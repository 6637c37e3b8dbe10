package appraisal

import (
	"testing"

	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

var testCycle = appraisal.Cycle{
	KpiSectionWeight:       70,
	CoreValueSectionWeight: 30,
}

var testItems = []appraisal.Item{
	{ID: "kpi-1", Kind: appraisal.ItemKindKPI, Weightage: 60},
	{ID: "kpi-2", Kind: appraisal.ItemKindKPI, Weightage: 40},
	{ID: "cv-1", Kind: appraisal.ItemKindCoreValue, Weightage: 100},
}

func TestComputeScores(t *testing.T) {
	ratings := appraisal.Ratings{
		"kpi-1": {SelfRating: floatPtr(4)},
		"kpi-2": {SelfRating: floatPtr(3)},
		"cv-1":  {SelfRating: floatPtr(5)},
	}

	scores, err := ComputeScores(testCycle, testItems, ratings)
	require.NoError(t, err)

	// KPI: (4*60 + 3*40) / 100 = 3.6
	assert.InDelta(t, 3.6, scores.KpiScore, 1e-9)
	assert.InDelta(t, 5.0, scores.CoreValueScore, 1e-9)
	// Overall: 3.6*0.7 + 5*0.3 = 4.02
	assert.InDelta(t, 4.02, scores.OverallScore, 1e-9)
}

func TestComputeScores_ManagerRatingOverridesSelf(t *testing.T) {
	ratings := appraisal.Ratings{
		"kpi-1": {SelfRating: floatPtr(5), ManagerRating: floatPtr(3)},
		"kpi-2": {SelfRating: floatPtr(5)},
		"cv-1":  {ManagerRating: floatPtr(4)},
	}

	scores, err := ComputeScores(testCycle, testItems, ratings)
	require.NoError(t, err)

	// KPI: (3*60 + 5*40) / 100 = 3.8
	assert.InDelta(t, 3.8, scores.KpiScore, 1e-9)
	assert.InDelta(t, 4.0, scores.CoreValueScore, 1e-9)
}

func TestComputeScores_UnratedItemsCountAsZero(t *testing.T) {
	ratings := appraisal.Ratings{
		"kpi-1": {SelfRating: floatPtr(4)},
	}

	scores, err := ComputeScores(testCycle, testItems, ratings)
	require.NoError(t, err)

	// kpi-2 contributes its weight to the denominator but nothing on top.
	assert.InDelta(t, 2.4, scores.KpiScore, 1e-9)
	assert.InDelta(t, 0, scores.CoreValueScore, 1e-9)
}

func TestComputeScores_UnknownItemFails(t *testing.T) {
	ratings := appraisal.Ratings{
		"kpi-1": {SelfRating: floatPtr(4)},
		"bogus": {SelfRating: floatPtr(4)},
	}

	_, err := ComputeScores(testCycle, testItems, ratings)
	assert.ErrorIs(t, err, appraisal.ErrUnknownItem)
}

func TestComputeScores_NoItemsOfAKind(t *testing.T) {
	items := []appraisal.Item{
		{ID: "kpi-1", Kind: appraisal.ItemKindKPI, Weightage: 100},
	}
	ratings := appraisal.Ratings{"kpi-1": {SelfRating: floatPtr(4)}}

	scores, err := ComputeScores(testCycle, items, ratings)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, scores.KpiScore, 1e-9)
	assert.InDelta(t, 0, scores.CoreValueScore, 1e-9)
	assert.InDelta(t, 2.8, scores.OverallScore, 1e-9)
}
