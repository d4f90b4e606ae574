package opening

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/periods"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type stubRepo struct {
	byEntity map[int64]*OpeningBalance
	nextID   int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byEntity: make(map[int64]*OpeningBalance), nextID: 1}
}

func (s *stubRepo) Create(ctx context.Context, balance OpeningBalance) (int64, error) {
	if _, exists := s.byEntity[balance.EntityID]; exists {
		return 0, shared.ErrOpeningExists
	}
	balance.ID = s.nextID
	s.nextID++
	s.byEntity[balance.EntityID] = &balance
	return balance.ID, nil
}

func (s *stubRepo) GetByEntity(ctx context.Context, entityID int64) (*OpeningBalance, error) {
	return s.byEntity[entityID], nil
}

type stubPoster struct {
	posted []journals.PostingInput
	nextID int64
}

func (s *stubPoster) PostJournal(ctx context.Context, input journals.PostingInput) (journals.JournalEntry, error) {
	if err := input.Validate(); err != nil {
		return journals.JournalEntry{}, err
	}
	s.nextID++
	s.posted = append(s.posted, input)
	return journals.JournalEntry{ID: s.nextID, EntityID: input.EntityID, PeriodID: input.PeriodID}, nil
}

type stubPeriods struct {
	period periods.Period
	err    error
}

func (s *stubPeriods) FindOpenPeriodByDate(ctx context.Context, date time.Time) (periods.Period, error) {
	if s.err != nil {
		return periods.Period{}, s.err
	}
	return s.period, nil
}

func fixtureInput() PostingInput {
	return PostingInput{
		EntityID: 10,
		AsOfDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PostedBy: 3,
		Lines: []LineInput{
			{AccountID: 100, Debit: 5000},
			{AccountID: 300, Credit: 5000},
		},
	}
}

func openFixturePeriod() periods.Period {
	return periods.Period{
		ID:        1,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    periods.PeriodStatusOpen,
	}
}

func TestPostOpeningBalance(t *testing.T) {
	repo := newStubRepo()
	poster := &stubPoster{}
	svc := NewService(repo, poster, &stubPeriods{period: openFixturePeriod()}, nil)

	balance, err := svc.Post(context.Background(), fixtureInput())
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance.EntityID)
	assert.NotZero(t, balance.JournalID)

	require.Len(t, poster.posted, 1)
	assert.Equal(t, journals.SourceOpening, poster.posted[0].SourceModule)
	assert.Equal(t, int64(1), poster.posted[0].PeriodID)
}

func TestPostOpeningBalanceUnbalanced(t *testing.T) {
	svc := NewService(newStubRepo(), &stubPoster{}, &stubPeriods{period: openFixturePeriod()}, nil)

	input := fixtureInput()
	input.Lines[1].Credit = 4000
	_, err := svc.Post(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
}

func TestPostOpeningBalanceAlreadyExists(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, &stubPoster{}, &stubPeriods{period: openFixturePeriod()}, nil)

	_, err := svc.Post(context.Background(), fixtureInput())
	require.NoError(t, err)

	_, err = svc.Post(context.Background(), fixtureInput())
	require.ErrorIs(t, err, shared.ErrOpeningExists)
}

func TestPostOpeningBalanceNoOpenPeriod(t *testing.T) {
	svc := NewService(newStubRepo(), &stubPoster{}, &stubPeriods{err: shared.ErrInvalidPeriod}, nil)

	_, err := svc.Post(context.Background(), fixtureInput())
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)
}
