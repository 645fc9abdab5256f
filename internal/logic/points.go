package logic

import (
	"fmt"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// PointsBreakdown is the computed score of a single game result.
type PointsBreakdown struct {
	Placement int
	Kills     int
	Total     int
}

// ComputePoints converts one game result into points under the given
// points system. Placements without a configured entry score zero
// placement points; kill points are linear and uncapped.
func ComputePoints(placement, kills int, ps models.PointsSystem) (PointsBreakdown, error) {
	if placement < 1 {
		return PointsBreakdown{}, fmt.Errorf("placement %d: %w", placement, ErrInvalidPlacement)
	}
	if kills < 0 {
		return PointsBreakdown{}, fmt.Errorf("kills %d: %w", kills, ErrInvalidKillCount)
	}

	b := PointsBreakdown{
		Placement: ps.PlacementPoints[placement],
		Kills:     kills * ps.KillPoints,
	}
	b.Total = b.Placement + b.Kills
	return b, nil
}
