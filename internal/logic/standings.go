package logic

import (
	"fmt"
	"sort"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// AggregateOptions tweaks an aggregation pass. IncludeUnpublished is the
// organizer preview switch: completed games count even when their number
// has not been published. Incomplete games never count.
type AggregateOptions struct {
	IncludeUnpublished bool
}

type standingAcc struct {
	standing     models.Standing
	placementSum int
}

// AggregateStandings folds a set of games into per-team totals for every
// team on the roster. Teams with no counted games appear with zero
// standings so scoreboards stay complete. Results referencing teams
// outside the roster are dropped and reported; invalid placements or
// kill counts fail the whole pass.
//
// Output order: total points descending, ties resolved to the team with
// fewer accumulated placement points. This tie-break is fixed and not
// configurable. Teams tied at zero keep roster order.
func AggregateStandings(teams []string, games []models.Game, published PublishedSet, ps models.PointsSystem, opts AggregateOptions) ([]models.Standing, []DroppedResult, error) {
	accs := make([]*standingAcc, 0, len(teams))
	index := make(map[string]*standingAcc, len(teams))
	for _, teamID := range teams {
		if _, ok := index[teamID]; ok {
			continue
		}
		acc := &standingAcc{standing: models.Standing{TeamID: teamID}}
		accs = append(accs, acc)
		index[teamID] = acc
	}

	var dropped []DroppedResult
	for _, game := range games {
		if game.Status != models.GameCompleted {
			continue
		}
		if !opts.IncludeUnpublished && !published.Contains(game.GameNumber) {
			continue
		}
		for _, result := range game.Results {
			points, err := ComputePoints(result.Placement, result.Kills, ps)
			if err != nil {
				return nil, nil, fmt.Errorf("game %d, team %s: %w", game.GameNumber, result.TeamID, err)
			}
			acc, ok := index[result.TeamID]
			if !ok {
				dropped = append(dropped, DroppedResult{GameNumber: game.GameNumber, TeamID: result.TeamID})
				continue
			}
			acc.standing.TotalPlacementPoints += points.Placement
			acc.standing.TotalKillPoints += points.Kills
			acc.standing.TotalPoints += points.Total
			acc.standing.TotalKills += result.Kills
			acc.standing.GamesPlayed++
			acc.placementSum += result.Placement
		}
	}

	standings := make([]models.Standing, len(accs))
	for i, acc := range accs {
		if acc.standing.GamesPlayed > 0 {
			avg := float64(acc.placementSum) / float64(acc.standing.GamesPlayed)
			acc.standing.AvgPlacement = &avg
		}
		standings[i] = acc.standing
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return lessStanding(standings[i], standings[j])
	})
	return standings, dropped, nil
}

// lessStanding orders standings for display. Equal totals resolve to the
// team with fewer accumulated placement points.
func lessStanding(a, b models.Standing) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	return a.TotalPlacementPoints < b.TotalPlacementPoints
}
