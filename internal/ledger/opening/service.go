package opening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/periods"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// JournalPoster posts the balanced entry produced from an opening balance.
type JournalPoster interface {
	PostJournal(ctx context.Context, input journals.PostingInput) (journals.JournalEntry, error)
}

// PeriodFinder resolves the open period covering the as-of date.
type PeriodFinder interface {
	FindOpenPeriodByDate(ctx context.Context, date time.Time) (periods.Period, error)
}

type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type Service struct {
	repo    Repository
	poster  JournalPoster
	periods PeriodFinder
	audit   AuditPort
	now     func() time.Time
}

func NewService(repo Repository, poster JournalPoster, finder PeriodFinder, audit AuditPort) *Service {
	return &Service{repo: repo, poster: poster, periods: finder, audit: audit, now: time.Now}
}

func (s *Service) GetByEntity(ctx context.Context, entityID int64) (*OpeningBalance, error) {
	return s.repo.GetByEntity(ctx, entityID)
}

// Post validates and posts the opening balance for an entity. An entity may
// hold exactly one opening entry; a repeat attempt fails with
// ErrOpeningExists whether caught by the pre-check or the unique constraint.
func (s *Service) Post(ctx context.Context, input PostingInput) (OpeningBalance, error) {
	if err := input.Validate(); err != nil {
		return OpeningBalance{}, err
	}

	existing, err := s.repo.GetByEntity(ctx, input.EntityID)
	if err != nil {
		return OpeningBalance{}, err
	}
	if existing != nil {
		return OpeningBalance{}, shared.ErrOpeningExists
	}

	period, err := s.periods.FindOpenPeriodByDate(ctx, input.AsOfDate)
	if err != nil {
		return OpeningBalance{}, err
	}

	lines := make([]journals.PostingLineInput, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, journals.PostingLineInput{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		})
	}

	entry, err := s.poster.PostJournal(ctx, journals.PostingInput{
		EntityID:     input.EntityID,
		PeriodID:     period.ID,
		Date:         input.AsOfDate,
		SourceModule: journals.SourceOpening,
		SourceID:     uuid.New(),
		Memo:         "Opening balance",
		PostedBy:     input.PostedBy,
		Lines:        lines,
	})
	if err != nil {
		return OpeningBalance{}, err
	}

	balance := OpeningBalance{
		EntityID:  input.EntityID,
		JournalID: entry.ID,
		AsOfDate:  input.AsOfDate,
		PostedBy:  input.PostedBy,
	}
	id, err := s.repo.Create(ctx, balance)
	if err != nil {
		return OpeningBalance{}, err
	}
	balance.ID = id

	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  input.PostedBy,
			Action:   "opening.post",
			Entity:   "opening_balance",
			EntityID: fmt.Sprintf("%d", id),
			Meta: map[string]any{
				"entity_id":  input.EntityID,
				"journal_id": entry.ID,
			},
			At: s.now(),
		})
	}
	return balance, nil
}
