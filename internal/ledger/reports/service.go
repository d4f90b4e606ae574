package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheTTL = 5 * time.Minute

// Service builds trial balances, coalescing concurrent identical requests.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
	group  singleflight.Group
}

// NewService constructs the report service. cache may be nil.
func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Filter identifies a trial balance build.
type Filter struct {
	EntityID int64
	From     time.Time
	To       time.Time
}

func (f Filter) cacheKey() string {
	return fmt.Sprintf("reports:tb:%d:%s:%s", f.EntityID, f.From.Format("2006-01-02"), f.To.Format("2006-01-02"))
}

// TrialBalance returns the trial balance for the filter, serving from cache
// when possible and deduplicating simultaneous builds for the same key.
func (s *Service) TrialBalance(ctx context.Context, filter Filter) (TrialBalance, error) {
	key := filter.cacheKey()
	if tb, ok := s.fromCache(ctx, key); ok {
		return tb, nil
	}

	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		balances, err := s.repo.AccountBalances(context.WithoutCancel(ctx), filter.EntityID, filter.From, filter.To)
		if err != nil {
			return TrialBalance{}, err
		}
		tb := BuildTrialBalance(balances)
		s.toCache(context.WithoutCancel(ctx), key, tb)
		return tb, nil
	})
	select {
	case <-ctx.Done():
		return TrialBalance{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return TrialBalance{}, res.Err
		}
		return res.Val.(TrialBalance), nil
	}
}

// Invalidate drops the cached trial balance for the filter.
func (s *Service) Invalidate(ctx context.Context, filter Filter) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, filter.cacheKey()).Err(); err != nil {
		s.logger.Warn("trial balance cache invalidate failed", slog.String("error", err.Error()))
	}
}

func (s *Service) fromCache(ctx context.Context, key string) (TrialBalance, bool) {
	if s.cache == nil {
		return TrialBalance{}, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("trial balance cache read failed", slog.String("error", err.Error()))
		}
		return TrialBalance{}, false
	}
	var tb TrialBalance
	if err := json.Unmarshal(raw, &tb); err != nil {
		return TrialBalance{}, false
	}
	return tb, true
}

func (s *Service) toCache(ctx context.Context, key string, tb TrialBalance) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(tb)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("trial balance cache write failed", slog.String("error", err.Error()))
	}
}
