package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// HistoryVersionKey is bumped by the ingest worker after every flush.
// Including it in cache keys ties every cached leaderboard to the exact
// history snapshot it was computed from.
const HistoryVersionKey = "ranking:history:version"

type leaderboardService struct {
	pg       PgPool
	ch       driver.Conn
	redis    RedisClient
	cacheTTL time.Duration
	logger   *zap.SugaredLogger
}

func NewLeaderboardService(pg PgPool, ch driver.Conn, rdb RedisClient, cacheTTL time.Duration, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{
		pg:       pg,
		ch:       ch,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   logger.Sugar(),
	}
}

// GetLeaderboard serves the rating leaderboard under the given filters.
// Responses are cached per (filters, history version); the version
// counter moves on every ingest flush, so a stale snapshot is never
// served past new data.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, filters models.LeaderboardFilters, now time.Time) ([]models.LeaderboardEntry, error) {
	version, err := s.redis.Get(ctx, HistoryVersionKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warnw("Failed to read history version, skipping cache", "error", err)
		version = ""
	}

	cacheKey := ""
	if version != "" {
		cacheKey = fmt.Sprintf("ranking:leaderboard:%s:%s:%s:%s",
			version, filters.Tier, filters.Period, filters.MatchType)
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []models.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err != nil {
				s.logger.Warnw("Failed to decode cached leaderboard", "key", cacheKey, "error", err)
			} else {
				return entries, nil
			}
		}
	}

	var (
		ratings map[string]float64
		history map[string][]models.RatingHistoryEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ratings, err = s.loadRatings(gctx)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.loadHistory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load rating records: %w", err)
	}

	records := make([]models.TeamRatingRecord, 0, len(ratings))
	for teamID, mmr := range ratings {
		records = append(records, models.TeamRatingRecord{
			TeamID:  teamID,
			MMR:     mmr,
			History: history[teamID],
		})
	}
	// Map iteration order is random; the ranker's tie-break keeps the
	// output deterministic, but sort up front so equal-MMR truncation
	// cannot depend on it either.
	sort.Slice(records, func(i, j int) bool { return records[i].TeamID < records[j].TeamID })

	entries := BuildLeaderboard(records, filters, now)

	if cacheKey != "" {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warnw("Failed to cache leaderboard", "key", cacheKey, "error", err)
			}
		}
	}
	return entries, nil
}

func (s *leaderboardService) loadRatings(ctx context.Context) (map[string]float64, error) {
	rows, err := s.pg.Query(ctx, "SELECT team_id, mmr FROM team_ratings")
	if err != nil {
		return nil, fmt.Errorf("ratings query: %w", err)
	}
	defer rows.Close()

	ratings := make(map[string]float64)
	for rows.Next() {
		var teamID string
		var mmr float64
		if err := rows.Scan(&teamID, &mmr); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings[teamID] = mmr
	}
	return ratings, rows.Err()
}

func (s *leaderboardService) loadHistory(ctx context.Context) (map[string][]models.RatingHistoryEntry, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT team_id, mmr, placement, match_type, timestamp
		FROM ranking.rating_history
		ORDER BY team_id, timestamp ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]models.RatingHistoryEntry)
	for rows.Next() {
		var teamID, matchType string
		var entry models.RatingHistoryEntry
		var placement uint32
		if err := rows.Scan(&teamID, &entry.MMR, &placement, &matchType, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.Placement = int(placement)
		entry.MatchType = models.MatchType(matchType)
		history[teamID] = append(history[teamID], entry)
	}
	return history, rows.Err()
}
