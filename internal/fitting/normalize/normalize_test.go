package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizefit-engine/internal/models"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		key      string
		expected models.MeasurementName
	}{
		{"chest", models.Chest},
		{"Bust", models.Chest},
		{"صدر", models.Chest},
		{"خصر", models.Waist},
		{"حزام بطول", models.Waist},
		{"hips", models.Hip},
		{"sleeve length", models.ArmLength},
		{"طول الذراع", models.ArmLength},
		// A bare length header is the garment's length, never the waist.
		{"length", models.GarmentLength},
		{"الطول", models.GarmentLength},
		{"inside leg", models.Inseam},
		{"thigh", models.ThighCircumference},
		// Canonical names pass through regardless of case.
		{"ArmLength", models.ArmLength},
		// Unknown headers are preserved untouched.
		{"collar", models.MeasurementName("collar")},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalName(tt.key))
		})
	}
}

func TestChart(t *testing.T) {
	raw := models.RawSizeChart{
		"S": {
			"chest":     85.0,
			"حزام بطول": 70,
			"hip":       "90,5",
		},
		"M": {
			"chest": "83.8 - 86.4",
			"waist": "abc",
		},
		"L": {
			"chest": -5.0,
			"waist": 0.0,
		},
	}

	chart := Chart(raw)

	require.Len(t, chart, 3)

	assert.Equal(t, 85.0, chart["S"][models.Chest])
	assert.Equal(t, 70.0, chart["S"][models.Waist])
	assert.Equal(t, 90.5, chart["S"][models.Hip])

	// Ranges collapse to their maximum.
	assert.Equal(t, 86.4, chart["M"][models.Chest])
	_, ok := chart["M"][models.Waist]
	assert.False(t, ok, "non-numeric cells are dropped")

	// A size whose measurements were all dropped still exists, empty.
	assert.Empty(t, chart["L"])
}

func TestChartPreservesUnknownColumns(t *testing.T) {
	chart := Chart(models.RawSizeChart{
		"M": {"collar": 40.0, "chest": 95.0},
	})

	assert.Equal(t, 40.0, chart["M"][models.MeasurementName("collar")])
	assert.Equal(t, 95.0, chart["M"][models.Chest])
}

func TestChartIsIdempotentOnCanonicalInput(t *testing.T) {
	raw := models.RawSizeChart{
		"S": {"chest": 85.0, "waist": 70.0},
		"M": {"chest": 90.0, "waist": 75.0},
	}

	once := Chart(raw)

	roundTripped := make(models.RawSizeChart, len(once))
	for size, measurements := range once {
		entry := make(map[string]interface{}, len(measurements))
		for name, value := range measurements {
			entry[string(name)] = value
		}
		roundTripped[size] = entry
	}

	assert.Equal(t, once, Chart(roundTripped))
}

func TestResolveStringValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"86.4", 86.4, true},
		{"70,5", 70.5, true},
		{"83.8 - 86.4", 86.4, true},
		{"83.8-86.4", 86.4, true},
		{"90 – 95", 95, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, ok := resolveStringValue(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, value, 1e-9)
			}
		})
	}
}

func TestCheckProgression(t *testing.T) {
	t.Run("monotonic chart yields no warnings", func(t *testing.T) {
		chart := models.SizeChart{
			"S": {models.Chest: 85, models.Waist: 70},
			"M": {models.Chest: 90, models.Waist: 75},
			"L": {models.Chest: 95, models.Waist: 80},
		}
		assert.Empty(t, CheckProgression(chart))
	})

	t.Run("non-increasing step is flagged", func(t *testing.T) {
		chart := models.SizeChart{
			"S": {models.Chest: 90},
			"M": {models.Chest: 88},
		}
		warnings := CheckProgression(chart)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "S -> M")
	})

	t.Run("sizes without shared keys are skipped", func(t *testing.T) {
		chart := models.SizeChart{
			"S": {models.Chest: 90},
			"M": {models.Hip: 100},
		}
		assert.Empty(t, CheckProgression(chart))
	})
}
