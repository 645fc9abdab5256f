package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

func newTestHandler(tournament *MockTournamentService) *Handler {
	return &Handler{
		logger:     zap.NewNop().Sugar(),
		validator:  validator.New(),
		tournament: tournament,
	}
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetTournamentStandings(t *testing.T) {
	var gotPreview bool
	mock := &MockTournamentService{
		GetStandingsFunc: func(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error) {
			gotPreview = preview
			return &models.TournamentStandings{TournamentID: tournamentID}, nil
		},
	}
	h := newTestHandler(mock)

	req := httptest.NewRequest("GET", "/api/v1/tournaments/t-1", nil)
	req = withURLParams(req, map[string]string{"id": "t-1"})
	w := httptest.NewRecorder()

	h.GetTournamentStandings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotPreview {
		t.Error("public route must not request preview standings")
	}

	var resp models.TournamentStandings
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TournamentID != "t-1" {
		t.Errorf("tournament id = %s, want t-1", resp.TournamentID)
	}
}

func TestGetTournamentPreview(t *testing.T) {
	var gotPreview bool
	mock := &MockTournamentService{
		GetStandingsFunc: func(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error) {
			gotPreview = preview
			return &models.TournamentStandings{TournamentID: tournamentID}, nil
		},
	}
	h := newTestHandler(mock)

	req := httptest.NewRequest("GET", "/api/v1/tournaments/t-1/preview", nil)
	req = withURLParams(req, map[string]string{"id": "t-1"})
	w := httptest.NewRecorder()

	h.GetTournamentPreview(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !gotPreview {
		t.Error("preview route must request preview standings")
	}
}

func TestGetTournamentStandings_ServiceError(t *testing.T) {
	mock := &MockTournamentService{
		GetStandingsFunc: func(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error) {
			return nil, errors.New("boom")
		},
	}
	h := newTestHandler(mock)

	req := httptest.NewRequest("GET", "/api/v1/tournaments/t-1", nil)
	req = withURLParams(req, map[string]string{"id": "t-1"})
	w := httptest.NewRecorder()

	h.GetTournamentStandings(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestPublishScores_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCall   bool
	}{
		{
			name:       "Valid",
			body:       `{"game_numbers":[1,2,3]}`,
			wantStatus: http.StatusOK,
			wantCall:   true,
		},
		{
			name:       "Empty List",
			body:       `{"game_numbers":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Zero Game Number",
			body:       `{"game_numbers":[0]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed JSON",
			body:       `{"game_numbers":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &MockTournamentService{
				PublishScoresFunc: func(ctx context.Context, tournamentID string, gameNumbers []int) error {
					called = true
					return nil
				},
			}
			h := newTestHandler(mock)

			req := httptest.NewRequest("POST", "/api/v1/tournaments/t-1/publish-scores", strings.NewReader(tt.body))
			req = withURLParams(req, map[string]string{"id": "t-1"})
			w := httptest.NewRecorder()

			h.PublishScores(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCall {
				t.Errorf("service called = %v, want %v", called, tt.wantCall)
			}
		})
	}
}

func TestResetScores(t *testing.T) {
	var gotID string
	mock := &MockTournamentService{
		ResetScoresFunc: func(ctx context.Context, tournamentID string) error {
			gotID = tournamentID
			return nil
		},
	}
	h := newTestHandler(mock)

	req := httptest.NewRequest("DELETE", "/api/v1/tournaments/t-9/reset-scores", nil)
	req = withURLParams(req, map[string]string{"id": "t-9"})
	w := httptest.NewRecorder()

	h.ResetScores(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotID != "t-9" {
		t.Errorf("tournament id = %s, want t-9", gotID)
	}
}

func TestGenerateGroups_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "Valid", body: `{"number_of_groups":4}`, wantStatus: http.StatusOK},
		{name: "Zero Groups", body: `{"number_of_groups":0}`, wantStatus: http.StatusBadRequest},
		{name: "Negative Groups", body: `{"number_of_groups":-1}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTournamentService{
				GenerateGroupsFunc: func(ctx context.Context, tournamentID string, numberOfGroups int) ([]models.QualifierGroup, error) {
					return []models.QualifierGroup{{Name: "Group 1", GroupOrder: 1}}, nil
				},
			}
			h := newTestHandler(mock)

			req := httptest.NewRequest("POST", "/api/v1/tournaments/t-1/generate-groups", strings.NewReader(tt.body))
			req = withURLParams(req, map[string]string{"id": "t-1"})
			w := httptest.NewRecorder()

			h.GenerateGroups(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSaveGameResults(t *testing.T) {
	tests := []struct {
		name       string
		groupOrder string
		body       string
		wantStatus int
	}{
		{
			name:       "Main Board",
			groupOrder: "0",
			body:       `{"results":[{"team_id":"team-a","placement":1,"kills":3}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Qualifier Group",
			groupOrder: "2",
			body:       `{"results":[{"team_id":"team-a","placement":1,"kills":0}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Negative Group Order",
			groupOrder: "-1",
			body:       `{"results":[{"team_id":"team-a","placement":1,"kills":0}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Placement",
			groupOrder: "0",
			body:       `{"results":[{"team_id":"team-a","kills":2}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Negative Kills",
			groupOrder: "0",
			body:       `{"results":[{"team_id":"team-a","placement":1,"kills":-2}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "No Results",
			groupOrder: "0",
			body:       `{"results":[]}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTournamentService{}
			h := newTestHandler(mock)

			req := httptest.NewRequest("PUT",
				"/api/v1/tournaments/t-1/groups/"+tt.groupOrder+"/games/g-1/results",
				strings.NewReader(tt.body))
			req = withURLParams(req, map[string]string{
				"tid":        "t-1",
				"groupOrder": tt.groupOrder,
				"gameID":     "g-1",
			})
			w := httptest.NewRecorder()

			h.SaveGameResults(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestProcessQualifications(t *testing.T) {
	tests := []struct {
		name       string
		groupOrder string
		wantStatus int
	}{
		{name: "Valid Group", groupOrder: "1", wantStatus: http.StatusOK},
		{name: "Main Board Rejected", groupOrder: "0", wantStatus: http.StatusBadRequest},
		{name: "Not A Number", groupOrder: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTournamentService{
				ProcessQualificationsFunc: func(ctx context.Context, tournamentID string, groupOrder int) ([]models.Standing, error) {
					return []models.Standing{{TeamID: "team-a", Qualified: true}}, nil
				},
			}
			h := newTestHandler(mock)

			req := httptest.NewRequest("POST",
				"/api/v1/tournaments/t-1/process-qualifications/"+tt.groupOrder, nil)
			req = withURLParams(req, map[string]string{
				"id":         "t-1",
				"groupOrder": tt.groupOrder,
			})
			w := httptest.NewRecorder()

			h.ProcessQualifications(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
