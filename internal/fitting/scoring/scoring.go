// Package scoring implements the fit scoring engine: it compares a body
// profile against a normalized size chart under the fabric tolerance model
// and selects the best-fitting size.
package scoring

import (
	"math"
	"sort"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/common/metrics"
	"sizefit-engine/internal/fitting/relevance"
	"sizefit-engine/internal/fitting/tolerance"
	"sizefit-engine/internal/models"
)

const (
	// primaryWeight biases the weighted sum toward measurements critical to
	// fit; scoreNormalizer keeps the resulting average roughly on a 0-100
	// scale given the 2:1 weighting.
	primaryWeight   = 2.0
	secondaryWeight = 1.0
	scoreNormalizer = 1.5

	// stretchBonus rewards a stretchy garment sitting slightly smaller than
	// the body, since the fabric gives.
	stretchBonus = 10.0
)

// Engine computes size recommendations. It holds no mutable state; a single
// Engine is safe for concurrent use.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: log.WithFields(map[string]interface{}{"component": "scoring"})}
}

// Recommend scores every size in the chart against the profile and applies
// the selection policy. The chart must already be normalized. The only hard
// failure is a chart with no comparable measurement data; partial data
// degrades the confidence tier instead.
func (e *Engine) Recommend(
	profile *models.BodyProfile,
	chart models.SizeChart,
	garmentType string,
	fabric models.FabricCategory,
) (*models.RecommendationResult, error) {
	// Resolve the fabric once so tolerances and rationale text agree;
	// unknown or empty categories degrade to normal.
	fabric = models.ParseFabricCategory(string(fabric))

	userMeasurements := relevance.ProjectProfile(profile, garmentType)
	primary := relevance.PrimaryMeasurements(garmentType)
	tol := tolerance.For(fabric)

	// Only measurements actually present in the chart participate in
	// comparison and selection. Expected-but-absent primaries are reported
	// in the analysis text, never invented.
	available := chart.AvailableMeasurements()

	availablePrimary := make([]models.MeasurementName, 0, len(primary))
	missingPrimary := make([]models.MeasurementName, 0)
	for _, name := range primary {
		if available[name] {
			availablePrimary = append(availablePrimary, name)
		} else {
			missingPrimary = append(missingPrimary, name)
		}
	}

	if len(missingPrimary) > 0 {
		e.logger.Warn("size chart is missing primary measurements", map[string]interface{}{
			"garmentType": garmentType,
			"missing":     missingPrimary,
		})
	}

	primarySet := make(map[models.MeasurementName]bool, len(availablePrimary))
	for _, name := range availablePrimary {
		primarySet[name] = true
	}

	// Score every size that has at least one comparable measurement. Sizes
	// whose measurements were all dropped during normalization are not
	// candidates.
	candidates := make([]models.SizeScore, 0, len(chart))
	for size, chartMeasurements := range chart {
		score := scoreSize(size, chartMeasurements, userMeasurements, primarySet, tol, fabric)
		if score.MeasurementCount > 0 {
			candidates = append(candidates, score)
		}
	}

	if len(candidates) == 0 {
		return nil, errors.NewEmptyChartError("no size has a positive, comparable measurement")
	}

	// Canonical small-to-large order; unknown labels sort last,
	// alphabetically among themselves so results stay deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		ii, ji := models.SizeIndex(candidates[i].Size), models.SizeIndex(candidates[j].Size)
		if ii != ji {
			return ii < ji
		}
		return candidates[i].Size < candidates[j].Size
	})

	best, fallback := selectSize(candidates, availablePrimary, tol)

	var exceeded []models.ExceededMeasurement
	if fallback {
		exceeded = exceededMeasurements(best, availablePrimary)
		e.logger.Warn("no size accommodates all primary measurements, falling back to largest", map[string]interface{}{
			"size":     best.Size,
			"exceeded": len(exceeded),
		})
	}

	confidence := deriveConfidence(best, availablePrimary, fallback)

	byScore := make([]models.SizeScore, len(candidates))
	copy(byScore, candidates)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].Score > byScore[j].Score })

	analysis := buildAnalysis(analysisParams{
		Best:             best,
		AvailablePrimary: availablePrimary,
		MissingPrimary:   missingPrimary,
		GarmentType:      garmentType,
		Fabric:           fabric,
		ByScore:          byScore,
		Fallback:         fallback,
		Exceeded:         exceeded,
	})

	result := &models.RecommendationResult{
		RecommendedSize: best.Size,
		Confidence:      confidence,
		MatchScore:      roundScore(best.Score),
		Analysis:        analysis,
		NormalizedChart: chart,
		Fallback:        fallback,
		Exceeded:        exceeded,
	}

	metrics.RecommendationsComputed.WithLabelValues(string(confidence)).Inc()
	e.logger.Info("recommendation computed", map[string]interface{}{
		"garmentType": garmentType,
		"fabric":      fabric,
		"size":        result.RecommendedSize,
		"confidence":  result.Confidence,
		"matchScore":  result.MatchScore,
		"fallback":    fallback,
	})

	return result, nil
}

// scoreSize compares one size's measurements against the user's projected
// set and accumulates the tolerance-weighted score.
func scoreSize(
	size string,
	chartMeasurements map[models.MeasurementName]float64,
	userMeasurements map[models.MeasurementName]float64,
	primarySet map[models.MeasurementName]bool,
	tol tolerance.Profile,
	fabric models.FabricCategory,
) models.SizeScore {
	score := models.SizeScore{
		Size:          size,
		Matches:       make(map[models.MeasurementName]models.MeasurementMatch),
		AllPrimaryFit: true,
	}

	var weightedSum float64

	for name, userValue := range userMeasurements {
		chartValue, ok := chartMeasurements[name]
		if !ok || chartValue <= 0 || userValue <= 0 {
			continue
		}

		score.MeasurementCount++

		signedDiff := chartValue - userValue
		pctDiff := math.Abs(signedDiff) / userValue * 100

		isPrimary := primarySet[name]
		bound := toleranceBound(signedDiff, isPrimary, tol)

		withinTolerance := pctDiff <= bound
		if isPrimary && !withinTolerance {
			score.AllPrimaryFit = false
		}

		score.Matches[name] = models.MeasurementMatch{
			User:            userValue,
			Chart:           chartValue,
			Difference:      signedDiff,
			WithinTolerance: withinTolerance,
		}

		value := measurementScore(pctDiff, bound, fabric == models.FabricStretchy && signedDiff < 0)

		weight := secondaryWeight
		if isPrimary {
			weight = primaryWeight
		}
		weightedSum += value * weight

		if withinTolerance {
			score.TotalMatches++
			if isPrimary {
				score.PrimaryMatches++
			}
		}
	}

	if score.MeasurementCount > 0 {
		score.Score = weightedSum / (float64(score.MeasurementCount) * scoreNormalizer)
	}

	return score
}

// toleranceBound picks the applicable bound in percent: tight bounds when
// the garment is smaller than the body, loose bounds otherwise.
func toleranceBound(signedDiff float64, isPrimary bool, tol tolerance.Profile) float64 {
	if signedDiff < 0 {
		if isPrimary {
			return tol.TightPrimary * 100
		}
		return tol.TightSecondary * 100
	}
	if isPrimary {
		return tol.LoosePrimary * 100
	}
	return tol.LooseSecondary * 100
}

// measurementScore maps a percentage deviation to a 0-100 score: 100 at a
// perfect match, decaying linearly to 80 at the tolerance bound, then from
// 80 toward 0 at 20 points per 10 percentage points beyond the bound.
func measurementScore(pctDiff, bound float64, stretchTight bool) float64 {
	if pctDiff == 0 {
		return 100
	}

	if pctDiff <= bound {
		value := 100 - (pctDiff/bound)*20
		if stretchTight {
			value = math.Min(100, value+stretchBonus)
		}
		return value
	}

	excess := pctDiff - bound
	return math.Max(0, 80-(excess/10)*20)
}

// selectSize scans sizes small to large and picks the first one whose
// chart can physically accommodate the body on every available primary
// measurement, within the loose primary tolerance. When none can, the
// largest available size is the fallback.
func selectSize(candidates []models.SizeScore, availablePrimary []models.MeasurementName, tol tolerance.Profile) (models.SizeScore, bool) {
	for _, candidate := range candidates {
		if accommodates(candidate, availablePrimary, tol) {
			return candidate, false
		}
	}
	return candidates[len(candidates)-1], true
}

func accommodates(candidate models.SizeScore, availablePrimary []models.MeasurementName, tol tolerance.Profile) bool {
	for _, name := range availablePrimary {
		match, ok := candidate.Matches[name]
		if !ok {
			continue
		}
		maxUserValue := match.Chart + tol.LoosePrimary*match.User
		if match.User > maxUserValue {
			return false
		}
	}
	return true
}

func exceededMeasurements(best models.SizeScore, availablePrimary []models.MeasurementName) []models.ExceededMeasurement {
	var exceeded []models.ExceededMeasurement
	for _, name := range availablePrimary {
		match, ok := best.Matches[name]
		if !ok {
			continue
		}
		if match.User > match.Chart {
			exceeded = append(exceeded, models.ExceededMeasurement{
				Name:       name,
				UserValue:  match.User,
				ChartValue: match.Chart,
				Excess:     match.User - match.Chart,
			})
		}
	}
	return exceeded
}

// deriveConfidence assigns the tier: a fallback is always Loose; otherwise
// every available primary must be within tolerance and the score decides
// between Perfect and Good.
func deriveConfidence(best models.SizeScore, availablePrimary []models.MeasurementName, fallback bool) models.Confidence {
	allPrimaryMatch := len(availablePrimary) > 0 && best.PrimaryMatches == len(availablePrimary)

	switch {
	case fallback:
		return models.ConfidenceLoose
	case allPrimaryMatch && best.Score >= 95:
		return models.ConfidencePerfect
	case allPrimaryMatch && best.Score >= 75:
		return models.ConfidenceGood
	default:
		return models.ConfidenceLoose
	}
}

// roundScore clamps the reported match score to 0-100. The weighted average
// can exceed 100 when heavily weighted primaries all match perfectly.
func roundScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded > 100 {
		return 100
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}
