package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/meridian-erp/meridian-erp/internal/jobs"
)

// SessionStore removes expired session records.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// SessionSweepJob purges expired session rows from postgres. The Redis copies
// expire on their own TTL.
type SessionSweepJob struct {
	Store   SessionStore
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSessionSweepJob initialises the sweep handler.
func NewSessionSweepJob(store SessionStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *SessionSweepJob {
	return &SessionSweepJob{Store: store, Logger: logger, Metrics: metrics}
}

// Handle executes the sweep.
func (j *SessionSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("session sweep: handler not configured")
	}
	var payload SessionSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track("session_sweep")
	removed, err := j.Store.DeleteExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		return tracker.End(err)
	}
	if j.Logger != nil && removed > 0 {
		j.Logger.Info("expired sessions removed", slog.Int64("count", removed))
	}
	return tracker.End(nil)
}
