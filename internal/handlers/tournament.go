package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// ============================================================================
// TOURNAMENT ENDPOINTS
// ============================================================================

// GetTournamentStandings returns the public scoreboard: published,
// completed games only.
// @Summary Get Tournament Standings
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} models.TournamentStandings
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /tournaments/{id} [get]
func (h *Handler) GetTournamentStandings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing tournament ID")
		return
	}

	standings, err := h.tournament.GetStandings(r.Context(), id, false)
	if err != nil {
		h.logger.Errorw("Failed to get standings", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get standings")
		return
	}
	h.jsonResponse(w, http.StatusOK, standings)
}

// GetTournamentPreview returns the organizer scoreboard where completed
// games count before publication. Mounted behind organizer auth.
// @Summary Preview Tournament Standings
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} models.TournamentStandings
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /tournaments/{id}/preview [get]
func (h *Handler) GetTournamentPreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing tournament ID")
		return
	}

	standings, err := h.tournament.GetStandings(r.Context(), id, true)
	if err != nil {
		h.logger.Errorw("Failed to get preview standings", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get standings")
		return
	}
	h.jsonResponse(w, http.StatusOK, standings)
}

// PublishScores marks game numbers visible on the public scoreboard.
// @Summary Publish Game Scores
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body models.PublishScoresRequest true "Game numbers to publish"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tournaments/{id}/publish-scores [post]
func (h *Handler) PublishScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing tournament ID")
		return
	}

	var req models.PublishScoresRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid publish request: "+err.Error())
		return
	}

	if err := h.tournament.PublishScores(r.Context(), id, req.GameNumbers); err != nil {
		h.logger.Errorw("Failed to publish scores", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to publish scores")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"published": req.GameNumbers,
	})
}

// ResetScores clears the published set and all entered results.
// @Summary Reset Tournament Scores
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} map[string]string
// @Router /tournaments/{id}/reset-scores [delete]
func (h *Handler) ResetScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing tournament ID")
		return
	}

	if err := h.tournament.ResetScores(r.Context(), id); err != nil {
		h.logger.Errorw("Failed to reset scores", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to reset scores")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}

// GenerateGroups partitions the checked-in roster into qualifier groups.
// @Summary Generate Qualifier Groups
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body models.GenerateGroupsRequest true "Group count"
// @Success 200 {array} models.QualifierGroup
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tournaments/{id}/generate-groups [post]
func (h *Handler) GenerateGroups(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing tournament ID")
		return
	}

	var req models.GenerateGroupsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid group request: "+err.Error())
		return
	}

	groups, err := h.tournament.GenerateGroups(r.Context(), id, req.NumberOfGroups)
	if err != nil {
		h.logger.Errorw("Failed to generate groups", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate groups")
		return
	}
	h.jsonResponse(w, http.StatusOK, groups)
}

// SaveGameResults replaces one game's result set and marks it completed.
// @Summary Save Game Results
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param tid path string true "Tournament ID"
// @Param groupOrder path int true "Group order (0 = main board)"
// @Param gameID path string true "Game ID"
// @Param request body models.SaveResultsRequest true "Results"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tournaments/{tid}/groups/{groupOrder}/games/{gameID}/results [put]
func (h *Handler) SaveGameResults(w http.ResponseWriter, r *http.Request) {
	tid := chi.URLParam(r, "tid")
	gameID := chi.URLParam(r, "gameID")
	groupOrder, err := strconv.Atoi(chi.URLParam(r, "groupOrder"))
	if tid == "" || gameID == "" || err != nil || groupOrder < 0 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid tournament, group or game ID")
		return
	}

	var req models.SaveResultsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid results: "+err.Error())
		return
	}

	if err := h.tournament.SaveGameResults(r.Context(), tid, groupOrder, gameID, req.Results); err != nil {
		h.logger.Errorw("Failed to save results", "tournament", tid, "game", gameID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// ProcessQualifications ranks a group and persists who qualified.
// @Summary Process Group Qualifications
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Param groupOrder path int true "Group order"
// @Success 200 {array} models.Standing
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tournaments/{id}/process-qualifications/{groupOrder} [post]
func (h *Handler) ProcessQualifications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	groupOrder, err := strconv.Atoi(chi.URLParam(r, "groupOrder"))
	if id == "" || err != nil || groupOrder < 1 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid tournament or group order")
		return
	}

	standings, err := h.tournament.ProcessQualifications(r.Context(), id, groupOrder)
	if err != nil {
		h.logger.Errorw("Failed to process qualifications", "id", id, "group", groupOrder, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to process qualifications")
		return
	}
	h.jsonResponse(w, http.StatusOK, standings)
}
