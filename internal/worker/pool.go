// Package worker implements the buffered worker pool that lands rating
// events in storage: batched ClickHouse inserts into the history table,
// a Postgres upsert of each team's current MMR, and a Redis version bump
// that invalidates cached leaderboards.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ash20s/sv-ranking-api/internal/logic"
	"github.com/Ash20s/sv-ranking-api/internal/models"
)

// Prometheus metrics
var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_events_ingested_total",
		Help: "Total number of rating events accepted into the queue",
	})

	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_events_processed_total",
		Help: "Total number of rating events flushed to storage",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_events_failed_total",
		Help: "Total number of rating events that failed processing",
	})

	eventsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_events_load_shed_total",
		Help: "Total number of rating events dropped due to load shedding",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ranking_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ranking_batch_insert_duration_seconds",
		Help:    "Duration of batch flushes to storage",
		Buckets: prometheus.DefBuckets,
	})
)

// PgExec is the slice of the Postgres pool the worker needs.
type PgExec interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// VersionCounter is the slice of the Redis client the worker needs.
type VersionCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Job represents a unit of work for the worker pool
type Job struct {
	Event    *models.RatingEvent
	Received time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Postgres      PgExec
	Redis         VersionCounter
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async rating-event processing
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing pending batches.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds an event to the queue. Returns false when the pool is
// shutting down or the queue is full (load shedding).
func (p *Pool) Enqueue(event *models.RatingEvent) bool {
	job := Job{Event: event, Received: time.Now()}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue event (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		eventsIngested.Inc()
		return true
	default:
		eventsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			eventsFailed.Add(float64(len(batch)))
		} else {
			eventsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			// Drain whatever is already queued before exiting
			for {
				select {
				case job, ok := <-p.jobQueue:
					if !ok {
						flush()
						return
					}
					batch = append(batch, job)
					if len(batch) >= p.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// processBatch lands one batch: history rows to ClickHouse, then current
// MMR to Postgres, then the cache version bump.
func (p *Pool) processBatch(batch []Job) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO ranking.rating_history (
			event_id, team_id, mmr, placement, match_type, timestamp
		)
	`)
	if err != nil {
		return err
	}

	// Current MMR per team: the latest event in the batch wins.
	type current struct {
		mmr float64
		at  time.Time
	}
	latest := make(map[string]current)

	for _, job := range batch {
		event := job.Event
		at := event.Time()

		if err := chBatch.Append(
			event.ID.String(),
			event.TeamID,
			event.MMR,
			uint32(event.Placement),
			string(event.MatchType),
			at,
		); err != nil {
			p.logger.Warnw("Failed to append event to batch", "error", err, "team", event.TeamID)
			continue
		}

		if cur, ok := latest[event.TeamID]; !ok || at.After(cur.at) {
			latest[event.TeamID] = current{mmr: event.MMR, at: at}
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}

	for teamID, cur := range latest {
		if _, err := p.config.Postgres.Exec(ctx, `
			INSERT INTO team_ratings (team_id, mmr, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (team_id) DO UPDATE
			SET mmr = EXCLUDED.mmr, updated_at = EXCLUDED.updated_at
			WHERE team_ratings.updated_at <= EXCLUDED.updated_at
		`, teamID, cur.mmr, cur.at); err != nil {
			p.logger.Errorw("Failed to upsert team rating", "team", teamID, "error", err)
			return err
		}
	}

	if err := p.config.Redis.Incr(ctx, logic.HistoryVersionKey).Err(); err != nil {
		// Cache keys fall back to the previous version until the next
		// flush succeeds; the TTL bounds the staleness.
		p.logger.Warnw("Failed to bump history version", "error", err)
	}
	return nil
}
