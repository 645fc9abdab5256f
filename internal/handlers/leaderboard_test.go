package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

func TestGetLeaderboard_FilterParsing(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantFilters models.LeaderboardFilters
	}{
		{
			name:        "No Filters",
			query:       "",
			wantStatus:  http.StatusOK,
			wantFilters: models.LeaderboardFilters{},
		},
		{
			name:       "All Filters",
			query:      "?tier=T1&period=WEEKLY&matchType=SCRIMS",
			wantStatus: http.StatusOK,
			wantFilters: models.LeaderboardFilters{
				Tier:      models.TierT1,
				Period:    models.PeriodWeekly,
				MatchType: models.FilterScrims,
			},
		},
		{
			name:       "Lowercase Accepted",
			query:      "?tier=elite&period=monthly&matchType=tournaments",
			wantStatus: http.StatusOK,
			wantFilters: models.LeaderboardFilters{
				Tier:      models.TierElite,
				Period:    models.PeriodMonthly,
				MatchType: models.FilterTournaments,
			},
		},
		{
			name:       "Invalid Tier",
			query:      "?tier=T9",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid Period",
			query:      "?period=YEARLY",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid MatchType Injection",
			query:      "?matchType=ALL%3B%20DROP%20TABLE%20team_ratings",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilters models.LeaderboardFilters
			called := false
			h := &Handler{
				logger:    zap.NewNop().Sugar(),
				validator: validator.New(),
				leaderboard: &MockLeaderboardService{
					GetLeaderboardFunc: func(ctx context.Context, filters models.LeaderboardFilters, now time.Time) ([]models.LeaderboardEntry, error) {
						called = true
						gotFilters = filters
						return []models.LeaderboardEntry{
							{Rank: 1, TeamID: "team-a", MMR: 2000, Tier: models.TierT1, Trend: models.TrendStable},
						}, nil
					},
				},
			}

			req := httptest.NewRequest("GET", "/api/v1/leaderboard"+tt.query, nil)
			w := httptest.NewRecorder()

			h.GetLeaderboard(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if called {
					t.Error("service should not be called on invalid filters")
				}
				return
			}
			if gotFilters != tt.wantFilters {
				t.Errorf("filters = %+v, want %+v", gotFilters, tt.wantFilters)
			}

			var resp struct {
				Teams []models.LeaderboardEntry `json:"teams"`
				Total int                       `json:"total"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Total != 1 || len(resp.Teams) != 1 {
				t.Errorf("total = %d, teams = %d, want 1 each", resp.Total, len(resp.Teams))
			}
		})
	}
}
