package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// IngestRatingEvents accepts a batch of rating-history events from the
// match processor and hands them to the worker pool.
// @Summary Ingest Rating Events
// @Tags Ingest
// @Accept json
// @Produce json
// @Param events body []models.RatingEvent true "Rating events"
// @Success 202 {object} map[string]int "Accepted counts"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Queue Full"
// @Router /ingest/rating-events [post]
func (h *Handler) IngestRatingEvents(w http.ResponseWriter, r *http.Request) {
	var events []models.RatingEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&events); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(events) == 0 {
		h.errorResponse(w, http.StatusBadRequest, "No events supplied")
		return
	}

	accepted, dropped, invalid := 0, 0, 0
	for i := range events {
		event := &events[i]
		if err := h.validator.Struct(event); err != nil {
			h.logger.Warnw("Rejected invalid rating event", "team", event.TeamID, "error", err)
			invalid++
			continue
		}
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		if h.pool.Enqueue(event) {
			accepted++
		} else {
			dropped++
		}
	}

	if accepted == 0 && dropped > 0 {
		h.errorResponse(w, http.StatusServiceUnavailable, "Ingest queue full")
		return
	}
	h.jsonResponse(w, http.StatusAccepted, map[string]int{
		"accepted": accepted,
		"dropped":  dropped,
		"invalid":  invalid,
	})
}
