package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// Allowed filter values, mapped from their query-parameter spellings.
var allowedTiers = map[string]models.Tier{
	"ELITE": models.TierElite,
	"T1":    models.TierT1,
	"T2H":   models.TierT2H,
	"T2":    models.TierT2,
	"T3":    models.TierT3,
}

var allowedPeriods = map[string]models.Period{
	"WEEKLY":   models.PeriodWeekly,
	"MONTHLY":  models.PeriodMonthly,
	"ALL_TIME": models.PeriodAllTime,
}

var allowedMatchTypes = map[string]models.MatchTypeFilter{
	"SCRIMS":      models.FilterScrims,
	"TOURNAMENTS": models.FilterTournaments,
	"ALL":         models.FilterAll,
}

// GetLeaderboard returns the team rating leaderboard
// @Summary Rating Leaderboard
// @Description Get teams ranked by MMR with tier, trend and placement stats
// @Tags Leaderboards
// @Produce json
// @Param tier query string false "Tier filter (ELITE, T1, T2H, T2, T3)"
// @Param period query string false "Period (WEEKLY, MONTHLY, ALL_TIME)" default(ALL_TIME)
// @Param matchType query string false "Match type (SCRIMS, TOURNAMENTS, ALL)" default(ALL)
// @Success 200 {object} map[string]interface{} "Leaderboard Data"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filters models.LeaderboardFilters

	if raw := strings.ToUpper(strings.TrimSpace(q.Get("tier"))); raw != "" {
		tier, ok := allowedTiers[raw]
		if !ok {
			h.errorResponse(w, http.StatusBadRequest, "Invalid tier: "+raw)
			return
		}
		filters.Tier = tier
	}

	if raw := strings.ToUpper(strings.TrimSpace(q.Get("period"))); raw != "" {
		period, ok := allowedPeriods[raw]
		if !ok {
			h.errorResponse(w, http.StatusBadRequest, "Invalid period: "+raw)
			return
		}
		filters.Period = period
	}

	if raw := strings.ToUpper(strings.TrimSpace(q.Get("matchType"))); raw != "" {
		matchType, ok := allowedMatchTypes[raw]
		if !ok {
			h.errorResponse(w, http.StatusBadRequest, "Invalid matchType: "+raw)
			return
		}
		filters.MatchType = matchType
	}

	entries, err := h.leaderboard.GetLeaderboard(ctx, filters, time.Now().UTC())
	if err != nil {
		h.logger.Errorw("Failed to get leaderboard", "filters", filters, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get leaderboard")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"teams":   entries,
		"total":   len(entries),
		"filters": filters,
	})
}
