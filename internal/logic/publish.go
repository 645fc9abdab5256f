package logic

import "github.com/Ash20s/sv-ranking-api/internal/models"

// PublishedSet holds the game numbers an organizer has made visible on
// the public scoreboard.
type PublishedSet map[int]struct{}

// NewPublishedSet builds a set from explicit game numbers.
func NewPublishedSet(gameNumbers ...int) PublishedSet {
	s := make(PublishedSet, len(gameNumbers))
	for _, n := range gameNumbers {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether gameNumber has been published.
func (s PublishedSet) Contains(gameNumber int) bool {
	_, ok := s[gameNumber]
	return ok
}

// IsCounted reports whether a game contributes to public standings: it
// must be completed and its number must be published. The gate applies
// per game, so all results of a game are included or excluded together.
func IsCounted(game models.Game, published PublishedSet) bool {
	return game.Status == models.GameCompleted && published.Contains(game.GameNumber)
}
