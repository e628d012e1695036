package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/fitting/tolerance"
	"sizefit-engine/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	return NewEngine(logger.NewTestLogger(t))
}

func TestRecommendSelectsSmallestAccommodatingSize(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
	}
	chart := models.SizeChart{
		"S": {models.Waist: 70, models.Hip: 92},
		"M": {models.Waist: 76, models.Hip: 98},
		"L": {models.Waist: 82, models.Hip: 103},
	}

	result, err := engine.Recommend(profile, chart, "pants", models.FabricNormal)
	require.NoError(t, err)

	// S and M sit more than 3% below the waist; L is the first size that
	// physically accommodates both primaries.
	assert.Equal(t, "L", result.RecommendedSize)
	assert.Equal(t, models.ConfidencePerfect, result.Confidence)
	assert.Equal(t, 100, result.MatchScore)
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Exceeded)

	assert.Contains(t, result.Analysis, "Size L")
	assert.Contains(t, result.Analysis, "Waist Circumference")
	// Inseam is primary for pants but absent from this chart.
	assert.Contains(t, result.Analysis, "Inseam (not included in size chart)")
	assert.Contains(t, result.Analysis, "Alternative Sizes to Consider")
}

func TestRecommendGoodConfidenceWhenSecondaryDragsScore(t *testing.T) {
	engine := newTestEngine(t)

	arm := 60.0
	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
		Shoulder:  ptr(45),
		ArmLength: &arm,
	}
	chart := models.SizeChart{
		"M": {
			models.Chest:     97,
			models.Waist:     82,
			models.Shoulder:  46,
			models.ArmLength: 75, // far outside the 5% secondary tolerance
		},
	}

	result, err := engine.Recommend(profile, chart, "t-shirt", models.FabricNormal)
	require.NoError(t, err)

	assert.Equal(t, "M", result.RecommendedSize)
	assert.Equal(t, models.ConfidenceGood, result.Confidence)
	assert.Equal(t, 91, result.MatchScore)
	assert.False(t, result.Fallback)
}

func TestRecommendFallsBackToLargestSize(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 95,
		Chest: 110, Waist: 130, Hip: 118,
	}
	chart := models.SizeChart{
		"S":  {models.Waist: 90, models.Hip: 100},
		"M":  {models.Waist: 100, models.Hip: 110},
		"XL": {models.Waist: 110, models.Hip: 120},
	}

	result, err := engine.Recommend(profile, chart, "skirt", models.FabricNormal)
	require.NoError(t, err)

	assert.Equal(t, "XL", result.RecommendedSize)
	assert.Equal(t, models.ConfidenceLoose, result.Confidence)
	assert.True(t, result.Fallback)

	require.Len(t, result.Exceeded, 1)
	assert.Equal(t, models.ExceededMeasurement{
		Name:       models.Waist,
		UserValue:  130,
		ChartValue: 110,
		Excess:     20,
	}, result.Exceeded[0])

	assert.Contains(t, result.Analysis, "exceed the largest available size")
	assert.NotContains(t, result.Analysis, "Alternative Sizes to Consider")
}

func TestRecommendLooseWhenNoPrimaryAvailable(t *testing.T) {
	engine := newTestEngine(t)

	thigh := 58.0
	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
		ThighCircumference: &thigh,
	}
	// Only a secondary measurement survives in the chart, so even a perfect
	// value cannot justify Perfect or Good.
	chart := models.SizeChart{
		"M": {models.ThighCircumference: 58},
	}

	result, err := engine.Recommend(profile, chart, "pants", models.FabricNormal)
	require.NoError(t, err)

	assert.Equal(t, "M", result.RecommendedSize)
	assert.Equal(t, models.ConfidenceLoose, result.Confidence)
}

func TestRecommendEmptyChart(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
	}

	t.Run("no sizes", func(t *testing.T) {
		_, err := engine.Recommend(profile, models.SizeChart{}, "pants", models.FabricNormal)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyChart))
	})

	t.Run("no comparable measurements", func(t *testing.T) {
		chart := models.SizeChart{
			"M": {models.GarmentLength: 70}, // irrelevant for pants
			"L": {},
		}
		_, err := engine.Recommend(profile, chart, "pants", models.FabricNormal)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyChart))
	})
}

func TestRecommendStretchyAcceptsTightFit(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
	}
	// Both chart values sit slightly below the body; stretchy fabric treats
	// that as a near-perfect fit.
	chart := models.SizeChart{
		"M": {models.Waist: 78, models.Hip: 98},
	}

	result, err := engine.Recommend(profile, chart, "skirt", models.FabricStretchy)
	require.NoError(t, err)

	assert.Equal(t, "M", result.RecommendedSize)
	assert.Equal(t, models.ConfidencePerfect, result.Confidence)
	assert.Equal(t, 100, result.MatchScore)
	assert.False(t, result.Fallback)
}

func TestRecommendResolvesFabricCategory(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
	}
	chart := models.SizeChart{
		"M": {models.Waist: 78, models.Hip: 98},
	}

	t.Run("empty fabric degrades to normal", func(t *testing.T) {
		result, err := engine.Recommend(profile, chart, "skirt", models.FabricCategory(""))
		require.NoError(t, err)
		assert.Equal(t, "M", result.RecommendedSize)
		assert.Contains(t, result.Analysis, "Fabric Type: Normal")
	})

	t.Run("unknown fabric degrades to normal", func(t *testing.T) {
		result, err := engine.Recommend(profile, chart, "skirt", models.FabricCategory("denim"))
		require.NoError(t, err)
		assert.Contains(t, result.Analysis, "Fabric Type: Normal")
	})

	t.Run("mixed case resolves to the named category", func(t *testing.T) {
		result, err := engine.Recommend(profile, chart, "skirt", models.FabricCategory("Stretchy"))
		require.NoError(t, err)
		assert.Contains(t, result.Analysis, "Fabric Type: Stretchy")
		assert.Contains(t, result.Analysis, "Stretchy fabrics can accommodate")
	})
}

func TestRecommendIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	profile := &models.BodyProfile{
		Height: 170, Weight: 70,
		Chest: 95, Waist: 80, Hip: 100,
	}
	// Unknown labels with identical measurements: alphabetical order breaks
	// the tie, every time.
	chart := models.SizeChart{
		"Alpha": {models.Waist: 82, models.Hip: 103},
		"Beta":  {models.Waist: 82, models.Hip: 103},
	}

	first, err := engine.Recommend(profile, chart, "skirt", models.FabricNormal)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := engine.Recommend(profile, chart, "skirt", models.FabricNormal)
		require.NoError(t, err)
		assert.Equal(t, first.RecommendedSize, next.RecommendedSize)
		assert.Equal(t, first.MatchScore, next.MatchScore)
		assert.Equal(t, first.Analysis, next.Analysis)
	}
	assert.Equal(t, "Alpha", first.RecommendedSize)
}

func TestMeasurementScore(t *testing.T) {
	tests := []struct {
		name         string
		pctDiff      float64
		bound        float64
		stretchTight bool
		expected     float64
	}{
		{"exact match", 0, 3, false, 100},
		{"half of tolerance", 1.5, 3, false, 90},
		{"at the bound", 3, 3, false, 80},
		{"stretch bonus applies when tight", 1.5, 3, true, 100},
		{"stretch bonus is capped at 100", 0.3, 3, true, 100},
		{"stretch bonus within wide bound", 6, 8, true, 95},
		{"beyond tolerance decays", 8, 3, false, 70},
		{"far beyond tolerance floors at zero", 60, 3, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, measurementScore(tt.pctDiff, tt.bound, tt.stretchTight), 1e-9)
		})
	}
}

func TestToleranceBound(t *testing.T) {
	tol := tolerance.Profile{TightPrimary: 0.08, TightSecondary: 0.10, LoosePrimary: 0.03, LooseSecondary: 0.05}

	assert.InDelta(t, 8.0, toleranceBound(-1, true, tol), 1e-9)
	assert.InDelta(t, 10.0, toleranceBound(-1, false, tol), 1e-9)
	assert.InDelta(t, 3.0, toleranceBound(1, true, tol), 1e-9)
	assert.InDelta(t, 5.0, toleranceBound(1, false, tol), 1e-9)
	// A zero difference counts as loose.
	assert.InDelta(t, 3.0, toleranceBound(0, true, tol), 1e-9)
}

func TestAccommodates(t *testing.T) {
	tol := tolerance.Profile{LoosePrimary: 0.03}
	primaries := []models.MeasurementName{models.Waist}

	candidate := models.SizeScore{
		Size: "M",
		Matches: map[models.MeasurementName]models.MeasurementMatch{
			models.Waist: {User: 80, Chart: 78},
		},
	}
	// 78 + 0.03*80 = 80.4 >= 80
	assert.True(t, accommodates(candidate, primaries, tol))

	candidate.Matches[models.Waist] = models.MeasurementMatch{User: 80, Chart: 77}
	// 77 + 2.4 = 79.4 < 80
	assert.False(t, accommodates(candidate, primaries, tol))
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 0, roundScore(-3))
	assert.Equal(t, 80, roundScore(80.4))
	assert.Equal(t, 81, roundScore(80.5))
	assert.Equal(t, 100, roundScore(133.3))
}

func ptr(v float64) *float64 { return &v }
