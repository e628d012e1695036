package models

// MeasurementName identifies a body or garment dimension. The known set is
// enumerated below; charts may carry additional keys (e.g. brand-specific
// columns), which are tolerated but never scored.
type MeasurementName string

const (
	Height             MeasurementName = "height"
	Weight             MeasurementName = "weight"
	Chest              MeasurementName = "chest"
	Waist              MeasurementName = "waist"
	Hip                MeasurementName = "hip"
	Shoulder           MeasurementName = "shoulder"
	ArmLength          MeasurementName = "armLength"
	LegLength          MeasurementName = "legLength"
	Inseam             MeasurementName = "inseam"
	ThighCircumference MeasurementName = "thighCircumference"
	GarmentLength      MeasurementName = "garmentLength"
)

var measurementLabels = map[MeasurementName]string{
	Height:             "Height",
	Weight:             "Weight",
	Chest:              "Chest Circumference",
	Waist:              "Waist Circumference",
	Hip:                "Hip Circumference",
	Shoulder:           "Shoulder Width",
	ArmLength:          "Arm Length",
	LegLength:          "Leg Length",
	Inseam:             "Inseam",
	ThighCircumference: "Thigh Circumference",
	GarmentLength:      "Garment Length",
}

// Label returns a human readable display name for the measurement.
func (m MeasurementName) Label() string {
	if label, ok := measurementLabels[m]; ok {
		return label
	}
	return string(m)
}

// Unit returns the unit the measurement is expressed in.
func (m MeasurementName) Unit() string {
	if m == Weight {
		return "kg"
	}
	return "cm"
}
