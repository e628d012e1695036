// Package relevance maps garment types to the body measurements that matter
// for their fit. Different garments need different measurements: waist and
// hip decide whether pants fit, chest and shoulder decide a jacket.
package relevance

import (
	"strings"

	"sizefit-engine/internal/models"
)

// Context splits a garment type's relevant measurements into primary
// (critical to fit) and secondary (helpful but not decisive). The two sets
// never overlap.
type Context struct {
	Primary   []models.MeasurementName
	Secondary []models.MeasurementName
}

var garmentContexts = map[string]Context{
	"t-shirt": {
		Primary:   []models.MeasurementName{models.Chest, models.Waist, models.Shoulder},
		Secondary: []models.MeasurementName{models.ArmLength},
	},
	"pants": {
		Primary:   []models.MeasurementName{models.Waist, models.Hip, models.Inseam},
		Secondary: []models.MeasurementName{models.ThighCircumference},
	},
	"dress": {
		Primary:   []models.MeasurementName{models.Chest, models.Waist, models.Hip},
		Secondary: []models.MeasurementName{models.Shoulder, models.ThighCircumference},
	},
	"jacket": {
		Primary:   []models.MeasurementName{models.Chest, models.Shoulder, models.ArmLength},
		Secondary: []models.MeasurementName{models.Waist},
	},
	"formal-shirt": {
		Primary:   []models.MeasurementName{models.Chest, models.Shoulder, models.ArmLength},
		Secondary: []models.MeasurementName{models.Waist},
	},
	"shorts": {
		Primary:   []models.MeasurementName{models.Waist, models.Hip},
		Secondary: []models.MeasurementName{models.ThighCircumference},
	},
	"skirt": {
		Primary:   []models.MeasurementName{models.Waist, models.Hip},
		Secondary: []models.MeasurementName{models.ThighCircumference},
	},
}

var defaultRelevant = []models.MeasurementName{
	models.Chest, models.Waist, models.Hip, models.Shoulder,
	models.ArmLength, models.Inseam, models.ThighCircumference,
}

var defaultPrimary = []models.MeasurementName{models.Chest, models.Waist, models.Hip}

func lookup(garmentType string) (Context, bool) {
	ctx, ok := garmentContexts[strings.ToLower(strings.TrimSpace(garmentType))]
	return ctx, ok
}

// RelevantMeasurements returns the measurements to compare for a garment
// type, primary first then secondary, each in a stable order. Unknown
// garment types get the full default set.
func RelevantMeasurements(garmentType string) []models.MeasurementName {
	ctx, ok := lookup(garmentType)
	if !ok {
		out := make([]models.MeasurementName, len(defaultRelevant))
		copy(out, defaultRelevant)
		return out
	}
	out := make([]models.MeasurementName, 0, len(ctx.Primary)+len(ctx.Secondary))
	out = append(out, ctx.Primary...)
	out = append(out, ctx.Secondary...)
	return out
}

// PrimaryMeasurements returns the measurements critical to fit for a garment
// type. Unknown garment types default to chest, waist and hip.
func PrimaryMeasurements(garmentType string) []models.MeasurementName {
	ctx, ok := lookup(garmentType)
	if !ok {
		out := make([]models.MeasurementName, len(defaultPrimary))
		copy(out, defaultPrimary)
		return out
	}
	out := make([]models.MeasurementName, len(ctx.Primary))
	copy(out, ctx.Primary)
	return out
}

// ProjectProfile reduces a full body profile to the measurements relevant
// for the garment type. Height and weight are universally relevant and
// always included.
func ProjectProfile(profile *models.BodyProfile, garmentType string) map[models.MeasurementName]float64 {
	filtered := map[models.MeasurementName]float64{
		models.Height: profile.Height,
		models.Weight: profile.Weight,
	}

	for _, name := range RelevantMeasurements(garmentType) {
		if value, ok := profile.Measurement(name); ok {
			filtered[name] = value
		}
	}

	return filtered
}
