package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TournamentService computes and mutates tournament scoreboards.
type TournamentService interface {
	GetStandings(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error)
	PublishScores(ctx context.Context, tournamentID string, gameNumbers []int) error
	ResetScores(ctx context.Context, tournamentID string) error
	SaveGameResults(ctx context.Context, tournamentID string, groupOrder int, gameID string, results []models.GameResultInput) error
	GenerateGroups(ctx context.Context, tournamentID string, numberOfGroups int) ([]models.QualifierGroup, error)
	ProcessQualifications(ctx context.Context, tournamentID string, groupOrder int) ([]models.Standing, error)
}

// LeaderboardService serves the rating leaderboard.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, filters models.LeaderboardFilters, now time.Time) ([]models.LeaderboardEntry, error)
}
