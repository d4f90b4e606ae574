package journals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/periods"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type mockRepository struct {
	entries     map[int64]JournalEntry
	lines       map[int64][]JournalLine
	links       map[string]int64
	periods     map[int64]periods.Period
	nextEntryID int64
	nextNumber  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		entries:     make(map[int64]JournalEntry),
		lines:       make(map[int64][]JournalLine),
		links:       make(map[string]int64),
		periods:     make(map[int64]periods.Period),
		nextEntryID: 1,
		nextNumber:  1,
	}
}

func (m *mockRepository) addPeriod(id int64, status periods.PeriodStatus, start, end time.Time) {
	m.periods[id] = periods.Period{ID: id, Code: "P", StartDate: start, EndDate: end, Status: status}
}

func (m *mockRepository) List(ctx context.Context, entityID int64) ([]JournalEntry, error) {
	var out []JournalEntry
	for _, e := range m.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) InsertJournalEntry(ctx context.Context, in PostingInput) (JournalEntry, error) {
	entry := JournalEntry{
		ID:           m.nextEntryID,
		Number:       m.nextNumber,
		EntityID:     in.EntityID,
		PeriodID:     in.PeriodID,
		Date:         in.Date,
		SourceModule: in.SourceModule,
		SourceID:     in.SourceID,
		Memo:         in.Memo,
		PostedBy:     in.PostedBy,
		Status:       JournalStatusPosted,
		PostedAt:     time.Now(),
	}
	m.nextEntryID++
	m.nextNumber++
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *mockRepository) InsertJournalLines(ctx context.Context, entryID int64, lines []PostingLineInput) error {
	for _, line := range lines {
		m.lines[entryID] = append(m.lines[entryID], JournalLine{
			JournalID: entryID,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		})
	}
	return nil
}

func (m *mockRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error {
	key := module + "|" + ref.String()
	if _, exists := m.links[key]; exists {
		return shared.ErrSourceConflict
	}
	m.links[key] = entryID
	return nil
}

func (m *mockRepository) GetJournalWithLines(ctx context.Context, entryID int64) (JournalEntry, []JournalLine, error) {
	entry, ok := m.entries[entryID]
	if !ok {
		return JournalEntry{}, nil, shared.ErrJournalNotFound
	}
	return entry, m.lines[entryID], nil
}

func (m *mockRepository) UpdateJournalStatus(ctx context.Context, entryID int64, status JournalStatus) error {
	entry, ok := m.entries[entryID]
	if !ok {
		return shared.ErrJournalNotFound
	}
	entry.Status = status
	m.entries[entryID] = entry
	return nil
}

func (m *mockRepository) GetPeriodForUpdate(ctx context.Context, periodID int64) (periods.Period, error) {
	p, ok := m.periods[periodID]
	if !ok {
		return periods.Period{}, shared.ErrInvalidPeriod
	}
	return p, nil
}

func (m *mockRepository) GetNextOpenPeriodAfter(ctx context.Context, date time.Time) (periods.Period, error) {
	var best *periods.Period
	for _, p := range m.periods {
		if p.Status != periods.PeriodStatusOpen || p.StartDate.Before(date) {
			continue
		}
		if best == nil || p.StartDate.Before(best.StartDate) {
			copied := p
			best = &copied
		}
	}
	if best == nil {
		return periods.Period{}, shared.ErrInvalidPeriod
	}
	return *best, nil
}

var _ Repository = (*mockRepository)(nil)
var _ TxRepository = (*mockRepository)(nil)

func openPeriod() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func TestPostJournal(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	input := validPosting()
	entry, err := svc.PostJournal(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, JournalStatusPosted, entry.Status)
	assert.Len(t, entry.Lines, 2)
	assert.Equal(t, int64(1), entry.Number)
}

func TestPostJournalUnbalanced(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	input := validPosting()
	input.Lines[1].Credit = 100
	_, err := svc.PostJournal(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
	assert.Empty(t, repo.entries, "nothing should be written on validation failure")
}

func TestPostJournalLockedPeriod(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusLocked, start, end)
	svc := NewService(repo, nil, nil)

	_, err := svc.PostJournal(context.Background(), validPosting())
	require.ErrorIs(t, err, shared.ErrPeriodLocked)
}

func TestPostJournalDateOutsidePeriod(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	input := validPosting()
	input.Date = end.AddDate(0, 0, 5)
	_, err := svc.PostJournal(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrDateOutOfRange)
}

func TestPostJournalDuplicateSource(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	input := validPosting()
	_, err := svc.PostJournal(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.PostJournal(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrSourceAlreadyLinked)
}

func TestVoidJournal(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	posted, err := svc.PostJournal(context.Background(), validPosting())
	require.NoError(t, err)

	voided, err := svc.VoidJournal(context.Background(), VoidInput{EntryID: posted.ID, ActorID: 7, Reason: "entry error"})
	require.NoError(t, err)
	assert.Equal(t, JournalStatusVoid, voided.Status)

	// A second void is an invalid transition.
	_, err = svc.VoidJournal(context.Background(), VoidInput{EntryID: posted.ID, ActorID: 7})
	require.ErrorIs(t, err, shared.ErrInvalidStatus)
}

func TestReverseJournal(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusOpen, start, end)
	svc := NewService(repo, nil, nil)

	posted, err := svc.PostJournal(context.Background(), validPosting())
	require.NoError(t, err)

	reversal, err := svc.ReverseJournal(context.Background(), ReverseInput{EntryID: posted.ID, ActorID: 7})
	require.NoError(t, err)
	assert.Equal(t, posted.SourceModule+":REVERSAL", reversal.SourceModule)
	require.Len(t, reversal.Lines, 2)
	assert.Equal(t, posted.Lines[0].Debit, reversal.Lines[0].Credit)
	assert.Equal(t, posted.Lines[1].Credit, reversal.Lines[1].Debit)
}

func TestReverseJournalClosedPeriodRollsForward(t *testing.T) {
	repo := newMockRepository()
	start, end := openPeriod()
	repo.addPeriod(1, periods.PeriodStatusClosed, start, end)
	nextStart := end.AddDate(0, 0, 1)
	nextEnd := nextStart.AddDate(0, 1, -1)
	repo.addPeriod(2, periods.PeriodStatusOpen, nextStart, nextEnd)

	// Seed a posted entry directly in the closed period.
	entry, err := repo.InsertJournalEntry(context.Background(), validPosting())
	require.NoError(t, err)
	require.NoError(t, repo.InsertJournalLines(context.Background(), entry.ID, validPosting().Lines))

	svc := NewService(repo, nil, nil)
	reversal, err := svc.ReverseJournal(context.Background(), ReverseInput{EntryID: entry.ID, ActorID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(2), reversal.PeriodID)
	assert.Equal(t, nextStart, reversal.Date)
}
