package periods

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ledgershared "github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type Repository interface {
	FindOpenPeriodByDate(ctx context.Context, date time.Time) (Period, error)
	Get(ctx context.Context, id int64) (Period, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const periodColumns = `id, code, start_date, end_date, status, closed_at, locked_by, created_at, updated_at`

// FindOpenPeriodByDate returns the open period covering the supplied date.
func (r *repository) FindOpenPeriodByDate(ctx context.Context, date time.Time) (Period, error) {
	row := r.db.QueryRow(ctx, `SELECT `+periodColumns+`
FROM periods WHERE status='OPEN' AND $1 BETWEEN start_date AND end_date ORDER BY start_date LIMIT 1`, date)
	return scanPeriod(row)
}

// Get fetches a period by ID.
func (r *repository) Get(ctx context.Context, id int64) (Period, error) {
	row := r.db.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE id=$1`, id)
	return scanPeriod(row)
}

func scanPeriod(row pgx.Row) (Period, error) {
	var period Period
	err := row.Scan(&period.ID, &period.Code, &period.StartDate, &period.EndDate, &period.Status, &period.ClosedAt, &period.LockedBy, &period.CreatedAt, &period.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Period{}, ledgershared.ErrInvalidPeriod
		}
		return Period{}, err
	}
	return period, nil
}
