package logic

import (
	"fmt"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// PromoteQualifiers ranks a qualifier group and marks its top
// qualifiersPerGroup teams as qualified. A non-positive count is a valid
// configuration where nobody qualifies; a count at or above the roster
// size qualifies everyone. Routing non-qualified teams elsewhere is the
// caller's concern.
func PromoteQualifiers(group models.QualifierGroup, qualifiersPerGroup int, published PublishedSet, ps models.PointsSystem) ([]models.Standing, []DroppedResult, error) {
	standings, dropped, err := AggregateStandings(group.Teams, group.Games, published, ps, AggregateOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("group %s: %w", group.Name, err)
	}

	for i := range standings {
		standings[i].Qualified = i < qualifiersPerGroup
	}
	return standings, dropped, nil
}

// GenerateGroups partitions an already checked-in roster into
// numberOfGroups groups by round-robin on registration index, so group
// sizes never differ by more than one and the assignment is reproducible.
func GenerateGroups(teams []string, numberOfGroups int) ([][]string, error) {
	if numberOfGroups < 1 {
		return nil, fmt.Errorf("number of groups must be positive, got %d", numberOfGroups)
	}

	groups := make([][]string, numberOfGroups)
	for i, teamID := range teams {
		g := i % numberOfGroups
		groups[g] = append(groups[g], teamID)
	}
	return groups, nil
}
