package shared

import "errors"

var (
	// ErrUnbalanced indicates debit != credit.
	ErrUnbalanced = errors.New("ledger: journal lines must balance")
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = errors.New("ledger: journal requires at least two lines")
	// ErrInvalidPeriod indicates missing or closed period.
	ErrInvalidPeriod = errors.New("ledger: period is not open")
	// ErrSourceAlreadyLinked indicates idempotency conflict.
	ErrSourceAlreadyLinked = errors.New("ledger: source already linked")
	// ErrJournalNotFound indicates missing entry.
	ErrJournalNotFound = errors.New("ledger: journal entry not found")
	// ErrPeriodLocked indicates locked period.
	ErrPeriodLocked = errors.New("ledger: period locked")
	// ErrInvalidStatus indicates action can't proceed.
	ErrInvalidStatus = errors.New("ledger: invalid status transition")
	// ErrDateOutOfRange indicates journal date mismatch.
	ErrDateOutOfRange = errors.New("ledger: date outside period")
	// ErrSourceConflict indicates the source link already exists.
	ErrSourceConflict = errors.New("ledger: source link conflict")
	// ErrOpeningExists indicates the entity already has an opening balance entry.
	ErrOpeningExists = errors.New("ledger: opening balance already posted for entity")
)
