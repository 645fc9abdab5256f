package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingEvent is the incoming rating-history event from the external
// match processor: one entry per team per finished scrim or tournament
// game, carrying the team's MMR after that game.
type RatingEvent struct {
	ID        uuid.UUID `json:"id,omitempty"`
	TeamID    string    `json:"team_id" validate:"required"`
	MMR       float64   `json:"mmr" validate:"required"`
	Placement int       `json:"placement" validate:"gte=1"`
	MatchType MatchType `json:"match_type" validate:"required,oneof=Scrim Tournament"`
	Timestamp float64   `json:"timestamp" validate:"required"`
}

// Time converts the unix-seconds timestamp to time.Time.
func (e *RatingEvent) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
