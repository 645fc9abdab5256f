package logic

import "errors"

// Validation errors reject the whole aggregation pass: corrupted input
// must not silently understate a team's score.
var (
	ErrInvalidPlacement = errors.New("placement must be a positive integer")
	ErrInvalidKillCount = errors.New("kill count must not be negative")
)

// DroppedResult records a game result that was excluded from an
// aggregation because its team is not on the supplied roster. Dropping
// the orphaned result keeps the scoreboard renderable; callers log these
// for operator visibility.
type DroppedResult struct {
	GameNumber int
	TeamID     string
}
