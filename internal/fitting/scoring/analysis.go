package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"sizefit-engine/internal/models"
)

const (
	maxAlternatives     = 2
	alternativeMinScore = 70.0
)

type analysisParams struct {
	Best             models.SizeScore
	AvailablePrimary []models.MeasurementName
	MissingPrimary   []models.MeasurementName
	GarmentType      string
	Fabric           models.FabricCategory
	ByScore          []models.SizeScore
	Fallback         bool
	Exceeded         []models.ExceededMeasurement
}

// buildAnalysis renders the deterministic, human-readable rationale for a
// recommendation. Section order: fallback warning, per-primary comparison,
// missing-measurement note, fabric note, score interpretation, alternatives.
func buildAnalysis(p analysisParams) string {
	var lines []string

	if p.Fallback && len(p.Exceeded) > 0 {
		lines = append(lines,
			"**Important Notice:** Your measurements exceed the largest available size in this size chart.",
			"",
			fmt.Sprintf("We recommend **Size %s** as it is the largest available size, but please note:", p.Best.Size),
			"",
			"**Measurements that exceed the largest size:**",
		)
		for _, exceeded := range p.Exceeded {
			lines = append(lines, fmt.Sprintf("- **%s**: Your %scm exceeds Size %s (%scm) by %.1fcm",
				exceeded.Name.Label(), formatValue(exceeded.UserValue), p.Best.Size, formatValue(exceeded.ChartValue), exceeded.Excess))
		}
		lines = append(lines,
			"",
			"*Consider looking for this item in a store with larger size options, or check if the brand offers extended sizes.*",
			"",
		)
	} else {
		lines = append(lines,
			fmt.Sprintf("Based on your measurements and the size chart, we recommend **Size %s** for this %s.", p.Best.Size, p.GarmentType),
			"",
		)
	}

	if len(p.AvailablePrimary) > 0 {
		lines = append(lines, "**Primary Measurements Analysis:**")
		for _, name := range p.AvailablePrimary {
			match, ok := p.Best.Matches[name]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s: %s Your %scm vs Size %s %scm (%s)",
				name.Label(), matchStatus(match, p.Exceeded, name), formatValue(match.User), p.Best.Size, formatValue(match.Chart), diffText(match.Difference)))
		}
		lines = append(lines, "")
	}

	if len(p.MissingPrimary) > 0 {
		lines = append(lines, "**Note:** The following measurements were not available in this size chart:")
		for _, name := range p.MissingPrimary {
			lines = append(lines, fmt.Sprintf("- %s (not included in size chart)", name.Label()))
		}
		lines = append(lines, "")
	}

	lines = append(lines, fabricNote(p.Fabric)...)
	lines = append(lines, "")

	if !p.Fallback {
		lines = append(lines, fmt.Sprintf("**Overall Match Score: %d%%**", roundScore(p.Best.Score)))
		lines = append(lines, scoreInterpretation(p.Best.Score))

		if alternatives := alternativeSizes(p.ByScore, p.Best.Size); len(alternatives) > 0 {
			lines = append(lines, "", "**Alternative Sizes to Consider:**")
			for _, alt := range alternatives {
				lines = append(lines, fmt.Sprintf("- Size %s: %d%% match", alt.Size, roundScore(alt.Score)))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func matchStatus(match models.MeasurementMatch, exceeded []models.ExceededMeasurement, name models.MeasurementName) string {
	for _, e := range exceeded {
		if e.Name == name {
			return "✗"
		}
	}
	if match.WithinTolerance {
		return "✓"
	}
	return "⚠"
}

func diffText(difference float64) string {
	switch {
	case difference > 0:
		return fmt.Sprintf("%.1fcm larger", difference)
	case difference < 0:
		return fmt.Sprintf("%.1fcm smaller", -difference)
	default:
		return "perfect match"
	}
}

func fabricNote(fabric models.FabricCategory) []string {
	header := fmt.Sprintf("**Fabric Type: %s%s**", strings.ToUpper(string(fabric)[:1]), string(fabric)[1:])
	switch fabric {
	case models.FabricStretchy:
		return []string{header, "- Stretchy fabrics can accommodate slightly tighter measurements (up to 8% tolerance)"}
	case models.FabricRigid:
		return []string{header, "- Rigid fabrics have minimal stretch, so we recommend a size that fits comfortably without being too tight"}
	default:
		return []string{header, "- Normal fabrics have standard fit with moderate tolerance (3% for primary measurements)"}
	}
}

func scoreInterpretation(score float64) string {
	switch {
	case score >= 95:
		return "This size provides an excellent fit with all critical measurements matching well."
	case score >= 85:
		return "This size provides a good fit with most measurements matching within acceptable tolerance."
	case score >= 75:
		return "This size provides a reasonable fit, though some measurements may be slightly off."
	default:
		return "This is the closest available size, but you may want to consider trying it on or checking if other sizes are available."
	}
}

// alternativeSizes lists up to two runner-up sizes worth considering,
// highest score first, excluding the recommended size.
func alternativeSizes(byScore []models.SizeScore, winner string) []models.SizeScore {
	var alternatives []models.SizeScore
	for _, candidate := range byScore {
		if candidate.Size == winner || candidate.Score < alternativeMinScore {
			continue
		}
		alternatives = append(alternatives, candidate)
		if len(alternatives) == maxAlternatives {
			break
		}
	}
	return alternatives
}

// formatValue renders a measurement without artificial trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
