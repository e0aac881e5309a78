// Package jobs runs periodic background work next to the API server.
package jobs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DBStatser is satisfied by *sql.DB and *sqlx.DB
type DBStatser interface {
	Stats() sql.DBStats
}

// RedisStatser is satisfied by *redis.Client
type RedisStatser interface {
	PoolStats() *redis.PoolStats
}

// cronLogger adapts zap to the cron.Logger interface
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(location *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	cl := cronLogger{sugar: logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// AddPoolStats logs connection pool statistics on the given cron spec
func (s *Scheduler) AddPoolStats(spec string, db DBStatser, rdb RedisStatser) error {
	job := PoolStatsJob(db, rdb, s.logger)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule pool stats job: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// PoolStatsJob returns a job that logs database and Redis pool usage
func PoolStatsJob(db DBStatser, rdb RedisStatser, logger *zap.Logger) func() {
	return func() {
		fields := []zap.Field{zap.String("op", "jobs.PoolStats")}

		if db != nil {
			st := db.Stats()
			fields = append(fields,
				zap.Int("db_open", st.OpenConnections),
				zap.Int("db_in_use", st.InUse),
				zap.Int("db_idle", st.Idle),
				zap.Int64("db_wait_count", st.WaitCount),
				zap.Duration("db_wait_duration", st.WaitDuration),
			)
		}

		if rdb != nil {
			if st := rdb.PoolStats(); st != nil {
				fields = append(fields,
					zap.Uint32("redis_hits", st.Hits),
					zap.Uint32("redis_misses", st.Misses),
					zap.Uint32("redis_timeouts", st.Timeouts),
					zap.Uint32("redis_total_conns", st.TotalConns),
					zap.Uint32("redis_idle_conns", st.IdleConns),
				)
			}
		}

		logger.Info("connection pool stats", fields...)
	}
}
