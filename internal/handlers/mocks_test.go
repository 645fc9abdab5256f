package handlers

import (
	"context"
	"time"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// MockTournamentService
type MockTournamentService struct {
	GetStandingsFunc          func(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error)
	PublishScoresFunc         func(ctx context.Context, tournamentID string, gameNumbers []int) error
	ResetScoresFunc           func(ctx context.Context, tournamentID string) error
	SaveGameResultsFunc       func(ctx context.Context, tournamentID string, groupOrder int, gameID string, results []models.GameResultInput) error
	GenerateGroupsFunc        func(ctx context.Context, tournamentID string, numberOfGroups int) ([]models.QualifierGroup, error)
	ProcessQualificationsFunc func(ctx context.Context, tournamentID string, groupOrder int) ([]models.Standing, error)
}

func (m *MockTournamentService) GetStandings(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error) {
	if m.GetStandingsFunc != nil {
		return m.GetStandingsFunc(ctx, tournamentID, preview)
	}
	return &models.TournamentStandings{TournamentID: tournamentID}, nil
}

func (m *MockTournamentService) PublishScores(ctx context.Context, tournamentID string, gameNumbers []int) error {
	if m.PublishScoresFunc != nil {
		return m.PublishScoresFunc(ctx, tournamentID, gameNumbers)
	}
	return nil
}

func (m *MockTournamentService) ResetScores(ctx context.Context, tournamentID string) error {
	if m.ResetScoresFunc != nil {
		return m.ResetScoresFunc(ctx, tournamentID)
	}
	return nil
}

func (m *MockTournamentService) SaveGameResults(ctx context.Context, tournamentID string, groupOrder int, gameID string, results []models.GameResultInput) error {
	if m.SaveGameResultsFunc != nil {
		return m.SaveGameResultsFunc(ctx, tournamentID, groupOrder, gameID, results)
	}
	return nil
}

func (m *MockTournamentService) GenerateGroups(ctx context.Context, tournamentID string, numberOfGroups int) ([]models.QualifierGroup, error) {
	if m.GenerateGroupsFunc != nil {
		return m.GenerateGroupsFunc(ctx, tournamentID, numberOfGroups)
	}
	return nil, nil
}

func (m *MockTournamentService) ProcessQualifications(ctx context.Context, tournamentID string, groupOrder int) ([]models.Standing, error) {
	if m.ProcessQualificationsFunc != nil {
		return m.ProcessQualificationsFunc(ctx, tournamentID, groupOrder)
	}
	return nil, nil
}

// MockLeaderboardService
type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context, filters models.LeaderboardFilters, now time.Time) ([]models.LeaderboardEntry, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, filters models.LeaderboardFilters, now time.Time) ([]models.LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, filters, now)
	}
	return nil, nil
}

// MockIngestQueue
type MockIngestQueue struct {
	EnqueueFunc func(event *models.RatingEvent) bool
	Depth       int
}

func (m *MockIngestQueue) Enqueue(event *models.RatingEvent) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(event)
	}
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return m.Depth }
