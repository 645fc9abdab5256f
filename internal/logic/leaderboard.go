package logic

import (
	"sort"
	"time"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// leaderboardLimit caps leaderboard output, matching the persistence
// query contract.
const leaderboardLimit = 100

// BuildLeaderboard composes the rating leaderboard from team rating
// records. The period and matchType filters restrict which history
// entries feed the statistics; the rating itself is always current and
// the trend is always computed over the full history. Output is sorted
// by MMR descending with team ID breaking ties, capped at 100 entries.
//
// The now parameter anchors the WEEKLY and MONTHLY period cutoffs so the
// computation stays deterministic for a fixed input.
func BuildLeaderboard(records []models.TeamRatingRecord, filters models.LeaderboardFilters, now time.Time) []models.LeaderboardEntry {
	var cutoff time.Time
	switch filters.Period {
	case models.PeriodWeekly:
		cutoff = now.AddDate(0, 0, -7)
	case models.PeriodMonthly:
		cutoff = now.AddDate(0, 0, -30)
	}

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for _, record := range records {
		tier := ClassifyTier(record.MMR)
		if filters.Tier != "" && tier != filters.Tier {
			continue
		}

		entry := models.LeaderboardEntry{
			TeamID: record.TeamID,
			MMR:    record.MMR,
			Tier:   tier,
			Trend:  DetectTrend(record.History),
		}

		counted := countedEntries(record.History, cutoff)
		switch filters.MatchType {
		case models.FilterScrims:
			fillStats(&entry, byMatchType(counted, models.MatchScrim))
		case models.FilterTournaments:
			fillStats(&entry, byMatchType(counted, models.MatchTournament))
		default:
			// ALL keeps the combined figures and the per-type breakdown
			// computable at once.
			fillStats(&entry, counted)
			entry.Scrims = statsFor(byMatchType(counted, models.MatchScrim))
			entry.Tournaments = statsFor(byMatchType(counted, models.MatchTournament))
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MMR != entries[j].MMR {
			return entries[i].MMR > entries[j].MMR
		}
		return entries[i].TeamID < entries[j].TeamID
	})

	if len(entries) > leaderboardLimit {
		entries = entries[:leaderboardLimit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// countedEntries applies the period cutoff. A zero cutoff keeps
// everything (ALL_TIME).
func countedEntries(history []models.RatingHistoryEntry, cutoff time.Time) []models.RatingHistoryEntry {
	if cutoff.IsZero() {
		return history
	}
	counted := make([]models.RatingHistoryEntry, 0, len(history))
	for _, e := range history {
		if !e.Timestamp.Before(cutoff) {
			counted = append(counted, e)
		}
	}
	return counted
}

func byMatchType(entries []models.RatingHistoryEntry, mt models.MatchType) []models.RatingHistoryEntry {
	filtered := make([]models.RatingHistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.MatchType == mt {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func fillStats(entry *models.LeaderboardEntry, counted []models.RatingHistoryEntry) {
	stats := statsFor(counted)
	entry.GamesPlayed = stats.GamesPlayed
	entry.AvgPlacement = stats.AvgPlacement
	entry.BestPlacement = stats.BestPlacement
}

func statsFor(counted []models.RatingHistoryEntry) *models.MatchTypeStats {
	stats := &models.MatchTypeStats{GamesPlayed: len(counted)}
	if len(counted) == 0 {
		return stats
	}

	sum := 0
	best := counted[0].Placement
	for _, e := range counted {
		sum += e.Placement
		if e.Placement < best {
			best = e.Placement
		}
	}
	avg := float64(sum) / float64(len(counted))
	stats.AvgPlacement = &avg
	stats.BestPlacement = &best
	return stats
}
