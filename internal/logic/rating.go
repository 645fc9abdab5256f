package logic

import "github.com/Ash20s/sv-ranking-api/internal/models"

// Tier thresholds, inclusive lower bounds in descending order.
var tierThresholds = []struct {
	min  float64
	tier models.Tier
}{
	{2200, models.TierElite},
	{1900, models.TierT1},
	{1600, models.TierT2H},
	{1300, models.TierT2},
}

// ClassifyTier maps an MMR value to its competitive tier. Total over all
// real inputs; anything below the T2 floor is T3.
func ClassifyTier(mmr float64) models.Tier {
	for _, t := range tierThresholds {
		if mmr >= t.min {
			return t.tier
		}
	}
	return models.TierT3
}

const (
	trendWindow    = 5
	trendThreshold = 20.0
)

// DetectTrend classifies a team's recent momentum from the last five
// history entries: a first-to-last MMR swing beyond +/-20 is UP or DOWN,
// anything else (including too little history) is STABLE.
func DetectTrend(history []models.RatingHistoryEntry) models.Trend {
	if len(history) < 2 {
		return models.TrendStable
	}

	recent := history
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	diff := recent[len(recent)-1].MMR - recent[0].MMR
	switch {
	case diff > trendThreshold:
		return models.TrendUp
	case diff < -trendThreshold:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}
