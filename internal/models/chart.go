package models

import "strings"

// RawSizeChart is an unvalidated size chart as produced by the extraction
// service or supplied directly by a caller. Keys may be synonym or localized
// header names and values may be numbers, numeric strings, or closed ranges
// like "83.8 - 86.4".
type RawSizeChart map[string]map[string]interface{}

// SizeChart maps a size label to its canonical measurements. All values are
// positive numbers in centimeters.
type SizeChart map[string]map[MeasurementName]float64

// AvailableMeasurements returns the set of measurements present with a
// positive value in at least one size of the chart.
func (c SizeChart) AvailableMeasurements() map[MeasurementName]bool {
	available := make(map[MeasurementName]bool)
	for _, measurements := range c {
		for name, value := range measurements {
			if value > 0 {
				available[name] = true
			}
		}
	}
	return available
}

// FabricCategory classifies a garment's fabric elasticity.
type FabricCategory string

const (
	FabricStretchy FabricCategory = "stretchy"
	FabricNormal   FabricCategory = "normal"
	FabricRigid    FabricCategory = "rigid"
)

// ParseFabricCategory resolves a caller-supplied fabric string. Lookup is
// case-insensitive; unrecognized values fall back to normal.
func ParseFabricCategory(s string) FabricCategory {
	switch FabricCategory(strings.ToLower(strings.TrimSpace(s))) {
	case FabricStretchy:
		return FabricStretchy
	case FabricRigid:
		return FabricRigid
	default:
		return FabricNormal
	}
}
