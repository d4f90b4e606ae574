package periods

import (
	"context"
	"time"

	ledgershared "github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindOpenPeriodByDate(ctx context.Context, date time.Time) (Period, error) {
	return s.repo.FindOpenPeriodByDate(ctx, date)
}

// EnsurePeriodOpenForPosting verifies the period may accept new journals.
func (s *Service) EnsurePeriodOpenForPosting(ctx context.Context, periodID int64) error {
	period, err := s.repo.Get(ctx, periodID)
	if err != nil {
		return err
	}
	switch period.Status {
	case PeriodStatusLocked:
		return ledgershared.ErrPeriodLocked
	case PeriodStatusOpen:
		return nil
	default:
		return ledgershared.ErrInvalidPeriod
	}
}
