// Package normalize cleans raw size chart data before scoring: header
// synonyms (including localized Arabic terms) are mapped to canonical
// measurement names, range cells are collapsed to their maximum, and
// non-positive or non-numeric values are dropped.
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"sizefit-engine/internal/models"
)

// headerSynonyms maps lowercased chart column headers to canonical
// measurement names. The table mirrors the header forms observed in real
// charts; mis-mapped vendor headers are a data quality risk, so keep this
// table aligned with the extraction prompt's mapping rules.
var headerSynonyms = map[string]models.MeasurementName{
	// Canonical names, for case-insensitive passthrough.
	"height":             models.Height,
	"weight":             models.Weight,
	"chest":              models.Chest,
	"waist":              models.Waist,
	"hip":                models.Hip,
	"shoulder":           models.Shoulder,
	"armlength":          models.ArmLength,
	"leglength":          models.LegLength,
	"inseam":             models.Inseam,
	"thighcircumference": models.ThighCircumference,
	"garmentlength":      models.GarmentLength,

	// Chest.
	"bust":        models.Chest,
	"صدر":         models.Chest,
	"محيط الصدر":  models.Chest,
	"قياس الصدر":  models.Chest,

	// Waist. "حزام بطول" (belt length) is a common Arabic chart header for
	// the waist column on skirts and pants.
	"خصر":         models.Waist,
	"محيط الخصر":  models.Waist,
	"قياس الخصر":  models.Waist,
	"حزام بطول":   models.Waist,
	"حزام":        models.Waist,
	"طول الحزام":  models.Waist,
	"belt length": models.Waist,

	// Hip.
	"hips":        models.Hip,
	"ورك":         models.Hip,
	"محيط الورك":  models.Hip,
	"حجم الورك":   models.Hip,
	"قياس الورك":  models.Hip,

	// Shoulder.
	"كتف":        models.Shoulder,
	"عرض الكتف":  models.Shoulder,
	"قياس الكتف": models.Shoulder,

	// Arm / sleeve.
	"sleeve":        models.ArmLength,
	"sleeve length": models.ArmLength,
	"arm length":    models.ArmLength,
	"طول الذراع":    models.ArmLength,
	"طول الكم":      models.ArmLength,
	"طول الأكمام":   models.ArmLength,

	// Garment length. A bare "length" header is the garment's total length,
	// not the waist.
	"الطول":       models.GarmentLength,
	"length":      models.GarmentLength,
	"total length": models.GarmentLength,
	"body length":  models.GarmentLength,

	// Inseam and leg length.
	"inside leg":          models.Inseam,
	"طول الساق الداخلي":   models.Inseam,
	"طول الرجل الداخلي":   models.Inseam,
	"leg length":          models.LegLength,
	"طول الساق":           models.LegLength,
	"طول البنطلون":        models.LegLength,

	// Thigh.
	"thigh":      models.ThighCircumference,
	"فخذ":        models.ThighCircumference,
	"محيط الفخذ": models.ThighCircumference,
	"قياس الفخذ": models.ThighCircumference,
}

var rangePattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*[-–]\s*(\d+(?:[.,]\d+)?)\s*$`)

// CanonicalName maps a raw chart header to its canonical measurement name.
// Unmapped headers are preserved as-is so unknown columns survive
// normalization (they are tolerated downstream, just not scored).
func CanonicalName(key string) models.MeasurementName {
	if canonical, ok := headerSynonyms[strings.ToLower(strings.TrimSpace(key))]; ok {
		return canonical
	}
	return models.MeasurementName(key)
}

// Chart normalizes a raw size chart. Every size label from the input is
// preserved, even when all of its measurements are dropped; an empty
// measurement map simply yields zero matches during scoring.
func Chart(raw models.RawSizeChart) models.SizeChart {
	normalized := make(models.SizeChart, len(raw))

	for size, measurements := range raw {
		entry := make(map[models.MeasurementName]float64, len(measurements))
		for key, value := range measurements {
			resolved, ok := resolveValue(value)
			if !ok || resolved <= 0 || math.IsNaN(resolved) || math.IsInf(resolved, 0) {
				continue
			}
			entry[CanonicalName(key)] = resolved
		}
		normalized[size] = entry
	}

	return normalized
}

// resolveValue coerces a raw cell to a number. Closed ranges like
// "83.8 - 86.4" resolve to their maximum: the garment must fit the largest
// part of the body.
func resolveValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		return resolveStringValue(v)
	default:
		return 0, false
	}
}

func resolveStringValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	if m := rangePattern.FindStringSubmatch(s); m != nil {
		low, errLow := parseDecimal(m[1])
		high, errHigh := parseDecimal(m[2])
		if errLow != nil || errHigh != nil {
			return 0, false
		}
		return math.Max(low, high), true
	}

	f, err := parseDecimal(s)
	return f, err == nil
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
