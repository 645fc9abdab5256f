package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// Config
const (
	API_URL         = "http://localhost:8080/api/v1/ingest/rating-events"
	ORGANIZER_TOKEN = "seed-secret-123"
	TEAM_COUNT      = 12
	GAMES_PER_TEAM  = 8
)

// Event matches models.RatingEvent structure (simplified)
type Event struct {
	TeamID    string  `json:"team_id"`
	MMR       float64 `json:"mmr"`
	Placement int     `json:"placement"`
	MatchType string  `json:"match_type"`
	Timestamp float64 `json:"timestamp"`
}

func main() {
	rng := rand.New(rand.NewSource(42))

	var events []Event
	base := time.Now().Add(-30 * 24 * time.Hour)
	for t := 0; t < TEAM_COUNT; t++ {
		teamID := fmt.Sprintf("team-%03d", t+1)
		mmr := 1200.0 + rng.Float64()*1100

		for g := 0; g < GAMES_PER_TEAM; g++ {
			mmr += float64(rng.Intn(61) - 30)
			matchType := "Scrim"
			if g%3 == 0 {
				matchType = "Tournament"
			}
			events = append(events, Event{
				TeamID:    teamID,
				MMR:       mmr,
				Placement: rng.Intn(20) + 1,
				MatchType: matchType,
				Timestamp: float64(base.Add(time.Duration(g) * 3 * 24 * time.Hour).Unix()),
			})
		}
	}

	payload, err := json.Marshal(events)
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, API_URL, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Organizer-Token", ORGANIZER_TOKEN)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.Printf("Seeded %d events: %s %s", len(events), resp.Status, string(body))
}
