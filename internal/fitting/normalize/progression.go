package normalize

import (
	"fmt"

	"sizefit-engine/internal/models"
)

// progressionKeys are the measurements expected to grow between adjacent
// sizes.
var progressionKeys = []models.MeasurementName{models.Chest, models.Waist, models.Hip}

// CheckProgression reports sizes whose key measurements do not increase in
// canonical small-to-large order. A non-monotonic chart usually means the
// extraction misread a column; the result is a diagnostic for logging, not
// an error.
func CheckProgression(chart models.SizeChart) []string {
	sizes := make([]string, 0, len(chart))
	for size := range chart {
		sizes = append(sizes, size)
	}
	models.SortSizes(sizes)

	var warnings []string
	for i := 1; i < len(sizes); i++ {
		prev := chart[sizes[i-1]]
		curr := chart[sizes[i]]
		if len(curr) == 0 {
			continue
		}

		progressed := false
		comparable := false
		for _, key := range progressionKeys {
			prevVal, prevOK := prev[key]
			currVal, currOK := curr[key]
			if !prevOK || !currOK {
				continue
			}
			comparable = true
			if currVal > prevVal {
				progressed = true
				break
			}
		}

		if comparable && !progressed {
			warnings = append(warnings, fmt.Sprintf("size progression issue: %s -> %s", sizes[i-1], sizes[i]))
		}
	}

	return warnings
}
