package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	jobmetrics "github.com/meridian-erp/meridian-erp/internal/jobs"
	"github.com/meridian-erp/meridian-erp/internal/ledger"
)

// GLIntegrityJob scans posted journals and reports entries whose debit and
// credit totals drifted apart.
type GLIntegrityJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewGLIntegrityJob initialises the integrity scan handler.
func NewGLIntegrityJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *GLIntegrityJob {
	return &GLIntegrityJob{Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle executes the integrity scan.
func (j *GLIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("gl integrity: handler not configured")
	}
	var payload GLIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track("gl_integrity")

	entities, err := j.entityIDs(ctx, payload.EntityID)
	if err != nil {
		return tracker.End(fmt.Errorf("list entities: %w", err))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, entityID := range entities {
		group.Go(func() error {
			count, err := j.scanEntity(groupCtx, entityID)
			if err != nil {
				return fmt.Errorf("entity %d: %w", entityID, err)
			}
			if count > 0 {
				j.Metrics.AddImbalances(entityID, count)
				if j.Logger != nil {
					j.Logger.Warn("unbalanced journals detected",
						slog.Int64("entity_id", entityID),
						slog.Int("count", count))
				}
			}
			return nil
		})
	}
	return tracker.End(group.Wait())
}

func (j *GLIntegrityJob) entityIDs(ctx context.Context, only int64) ([]int64, error) {
	if only > 0 {
		return []int64{only}, nil
	}
	rows, err := j.Pool.Query(ctx, `SELECT id FROM entities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanEntity counts posted journals whose line totals no longer balance.
func (j *GLIntegrityJob) scanEntity(ctx context.Context, entityID int64) (int, error) {
	const query = `
SELECT je.id, COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
FROM journal_entries je
JOIN journal_lines jl ON jl.journal_id = je.id
WHERE je.entity_id = $1 AND je.status = 'POSTED'
GROUP BY je.id`

	rows, err := j.Pool.Query(ctx, query, entityID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var journalID int64
		var debit, credit float64
		if err := rows.Scan(&journalID, &debit, &credit); err != nil {
			return count, err
		}
		if math.Abs(debit-credit) >= ledger.BalanceEpsilon {
			count++
			if j.Logger != nil {
				j.Logger.Warn("journal out of balance",
					slog.Int64("journal_id", journalID),
					slog.Float64("debit", debit),
					slog.Float64("credit", credit))
			}
		}
	}
	return count, rows.Err()
}
