package models

import "time"

// MatchType distinguishes where a rating entry was earned.
type MatchType string

const (
	MatchScrim      MatchType = "Scrim"
	MatchTournament MatchType = "Tournament"
)

// Tier is a discrete competitive bracket derived from MMR.
type Tier string

const (
	TierElite Tier = "ELITE"
	TierT1    Tier = "T1"
	TierT2H   Tier = "T2H"
	TierT2    Tier = "T2"
	TierT3    Tier = "T3"
)

// Trend classifies a team's short-term MMR momentum.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

// Period restricts which history entries count toward leaderboard stats.
type Period string

const (
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
	PeriodAllTime Period = "ALL_TIME"
)

// MatchTypeFilter selects which match types feed leaderboard stats.
type MatchTypeFilter string

const (
	FilterScrims      MatchTypeFilter = "SCRIMS"
	FilterTournaments MatchTypeFilter = "TOURNAMENTS"
	FilterAll         MatchTypeFilter = "ALL"
)

// RatingHistoryEntry is one point of a team's chronological MMR history.
type RatingHistoryEntry struct {
	MMR       float64   `json:"mmr"`
	Placement int       `json:"placement"`
	MatchType MatchType `json:"match_type"`
	Timestamp time.Time `json:"timestamp"`
}

// TeamRatingRecord is a team's current MMR plus its history, ordered by
// timestamp ascending. MMR is trusted as supplied even if it disagrees
// with the last history entry.
type TeamRatingRecord struct {
	TeamID  string               `json:"team_id"`
	MMR     float64              `json:"mmr"`
	History []RatingHistoryEntry `json:"history"`
}

// LeaderboardFilters narrows a leaderboard request. Zero values mean no
// tier filter, ALL_TIME and ALL respectively.
type LeaderboardFilters struct {
	Tier      Tier            `json:"tier,omitempty"`
	Period    Period          `json:"period,omitempty"`
	MatchType MatchTypeFilter `json:"match_type,omitempty"`
}

// MatchTypeStats is the per-match-type breakdown on a leaderboard entry.
type MatchTypeStats struct {
	GamesPlayed   int      `json:"games_played"`
	AvgPlacement  *float64 `json:"avg_placement"`
	BestPlacement *int     `json:"best_placement"`
}

// LeaderboardEntry is the composed per-team leaderboard view. The Scrims
// and Tournaments breakdowns are populated only when the request asked
// for ALL match types.
type LeaderboardEntry struct {
	Rank          int      `json:"rank"`
	TeamID        string   `json:"team_id"`
	MMR           float64  `json:"mmr"`
	Tier          Tier     `json:"tier"`
	Trend         Trend    `json:"trend"`
	GamesPlayed   int      `json:"games_played"`
	AvgPlacement  *float64 `json:"avg_placement"`
	BestPlacement *int     `json:"best_placement"`

	Scrims      *MatchTypeStats `json:"scrims,omitempty"`
	Tournaments *MatchTypeStats `json:"tournaments,omitempty"`
}
