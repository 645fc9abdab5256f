package models

// GameStatus is the lifecycle state of a scheduled game.
type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameLive      GameStatus = "live"
	GameCompleted GameStatus = "completed"
)

// GameResult is one team's outcome in one game. The point fields are
// derived on read and never stored.
type GameResult struct {
	TeamID    string `json:"team_id"`
	Placement int    `json:"placement"`
	Kills     int    `json:"kills"`

	PlacementPoints int `json:"placement_points"`
	KillPoints      int `json:"kill_points"`
	TotalPoints     int `json:"total_points"`
}

// Game holds the results of a single game within a tournament or
// qualifier group. GameNumber is unique within its owning collection.
type Game struct {
	ID         string       `json:"id"`
	GameNumber int          `json:"game_number"`
	Status     GameStatus   `json:"status"`
	Results    []GameResult `json:"results,omitempty"`
}

// PointsSystem is the per-tournament scoring configuration. Placements
// beyond the configured table score zero. KillPoints is linear per kill.
type PointsSystem struct {
	PlacementPoints map[int]int `json:"placement_points"`
	KillPoints      int         `json:"kill_points"`
}

// Standing is a team's aggregated totals over a set of counted games.
// AvgPlacement is nil when the team has no counted games.
type Standing struct {
	TeamID               string   `json:"team_id"`
	TotalPlacementPoints int      `json:"total_placement_points"`
	TotalKillPoints      int      `json:"total_kill_points"`
	TotalPoints          int      `json:"total_points"`
	TotalKills           int      `json:"total_kills"`
	GamesPlayed          int      `json:"games_played"`
	AvgPlacement         *float64 `json:"avg_placement"`
	Qualified            bool     `json:"qualified,omitempty"`
}

// GameSlot describes one game's visibility on a scoreboard. Unpublished
// or unfinished games still appear as slots so the UI can render the
// full schedule, they just never carry points.
type GameSlot struct {
	GameNumber int        `json:"game_number"`
	Status     GameStatus `json:"status"`
	Published  bool       `json:"published"`
	Counted    bool       `json:"counted"`
}

// TournamentStandings is the read model for a tournament scoreboard.
type TournamentStandings struct {
	TournamentID string     `json:"tournament_id"`
	Standings    []Standing `json:"standings"`
	Games        []GameSlot `json:"games"`
	Preview      bool       `json:"preview,omitempty"`
}

// QualifierGroup is a sub-bracket of teams competing to advance.
type QualifierGroup struct {
	Name               string   `json:"name"`
	GroupOrder         int      `json:"group_order"`
	QualifiersPerGroup int      `json:"qualifiers_per_group"`
	Teams              []string `json:"teams"`
	Games              []Game   `json:"games,omitempty"`
}
