package models

// BodyProfile is a user's body measurement record. Lengths are in
// centimeters, weight in kilograms. The profile is owned by the caller and
// treated as immutable for the duration of a scoring call.
type BodyProfile struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Gender string `json:"gender,omitempty"`

	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Chest  float64 `json:"chest"`
	Waist  float64 `json:"waist"`
	Hip    float64 `json:"hip"`

	// Optional measurements.
	Shoulder           *float64 `json:"shoulder,omitempty"`
	ArmLength          *float64 `json:"armLength,omitempty"`
	LegLength          *float64 `json:"legLength,omitempty"`
	ThighCircumference *float64 `json:"thighCircumference,omitempty"`
	Inseam             *float64 `json:"inseam,omitempty"`
}

// Measurement returns the named measurement and whether the profile has it.
// Optional measurements are absent when unset; the core five are always
// present.
func (p *BodyProfile) Measurement(name MeasurementName) (float64, bool) {
	switch name {
	case Height:
		return p.Height, true
	case Weight:
		return p.Weight, true
	case Chest:
		return p.Chest, true
	case Waist:
		return p.Waist, true
	case Hip:
		return p.Hip, true
	case Shoulder:
		return optional(p.Shoulder)
	case ArmLength:
		return optional(p.ArmLength)
	case LegLength:
		return optional(p.LegLength)
	case ThighCircumference:
		return optional(p.ThighCircumference)
	case Inseam:
		return optional(p.Inseam)
	}
	return 0, false
}

func optional(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
