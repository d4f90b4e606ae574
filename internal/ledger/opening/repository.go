package opening

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type Repository interface {
	Create(ctx context.Context, balance OpeningBalance) (int64, error)
	GetByEntity(ctx context.Context, entityID int64) (*OpeningBalance, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, balance OpeningBalance) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO opening_balances (entity_id, je_id, as_of_date, posted_by)
VALUES ($1,$2,$3,$4) RETURNING id`, balance.EntityID, balance.JournalID, balance.AsOfDate, balance.PostedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.ConstraintName == "uq_opening_balances_entity" {
			return 0, shared.ErrOpeningExists
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) GetByEntity(ctx context.Context, entityID int64) (*OpeningBalance, error) {
	var balance OpeningBalance
	err := r.db.QueryRow(ctx, `SELECT id, entity_id, je_id, as_of_date, posted_by, created_at
FROM opening_balances WHERE entity_id=$1`, entityID).
		Scan(&balance.ID, &balance.EntityID, &balance.JournalID, &balance.AsOfDate, &balance.PostedBy, &balance.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}
