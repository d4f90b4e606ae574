package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads aggregated balances from Postgres.
type Repository interface {
	AccountBalances(ctx context.Context, entityID int64, from, to time.Time) ([]AccountBalance, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed report repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) AccountBalances(ctx context.Context, entityID int64, from, to time.Time) ([]AccountBalance, error) {
	const query = `
SELECT a.code,
       a.name,
       a.type,
       COALESCE(SUM(jl.debit) FILTER (WHERE je.journal_date < $2), 0)
         - COALESCE(SUM(jl.credit) FILTER (WHERE je.journal_date < $2), 0) AS opening,
       COALESCE(SUM(jl.debit) FILTER (WHERE je.journal_date BETWEEN $2 AND $3), 0) AS debit,
       COALESCE(SUM(jl.credit) FILTER (WHERE je.journal_date BETWEEN $2 AND $3), 0) AS credit
FROM accounts a
LEFT JOIN journal_lines jl ON jl.account_id = a.id
LEFT JOIN journal_entries je ON je.id = jl.journal_id
  AND je.entity_id = $1
  AND je.status = 'POSTED'
GROUP BY a.code, a.name, a.type
HAVING COALESCE(SUM(jl.debit), 0) <> 0 OR COALESCE(SUM(jl.credit), 0) <> 0
ORDER BY a.code`

	rows, err := r.pool.Query(ctx, query, entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query account balances: %w", err)
	}
	defer rows.Close()

	var balances []AccountBalance
	for rows.Next() {
		var b AccountBalance
		if err := rows.Scan(&b.Code, &b.Name, &b.Type, &b.Opening, &b.Debit, &b.Credit); err != nil {
			return nil, fmt.Errorf("scan account balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account balances: %w", err)
	}
	return balances, nil
}
