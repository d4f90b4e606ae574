package journals

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Amount is a monetary value at the JSON boundary. Client forms submit
// amounts as numbers, numeric strings or leave them empty mid-edit; anything
// unparseable decodes to zero instead of failing the request.
type Amount float64

// UnmarshalJSON coerces null, "" and malformed values to 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		raw := string(data[1 : len(data)-1])
		if raw == "" {
			*a = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(parsed)
		return nil
	}
	parsed, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(parsed)
	return nil
}

// PostingLineInput describes a journal line for posting request.
type PostingLineInput struct {
	AccountID int64
	Debit     float64
	Credit    float64
}

// PostingInput groups fields required to create a journal entry.
type PostingInput struct {
	EntityID     int64
	PeriodID     int64
	Date         time.Time
	SourceModule string
	SourceID     uuid.UUID
	Memo         string
	PostedBy     int64
	Lines        []PostingLineInput
}

// Validate ensures posting input meets minimum criteria. Structural rules
// (line count, negative amounts, one side per line) are checked here; the
// aggregate balance rule delegates to ledger.IsBalanced.
func (in PostingInput) Validate() error {
	if in.EntityID == 0 {
		return errors.New("ledger: entity required")
	}
	if in.PeriodID == 0 {
		return errors.New("ledger: period required")
	}
	if len(in.Lines) < 2 {
		return shared.ErrTooFewLines
	}
	balance := make([]ledger.Line, 0, len(in.Lines))
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("ledger: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("ledger: line %d negative amount", idx)
		}
		if line.Debit > 0 && line.Credit > 0 {
			return fmt.Errorf("ledger: line %d cannot be both debit and credit", idx)
		}
		balance = append(balance, ledger.Line{AccountID: line.AccountID, Debit: line.Debit, Credit: line.Credit})
	}
	if !ledger.IsBalanced(balance) {
		return shared.ErrUnbalanced
	}
	if in.SourceModule == "" {
		return errors.New("ledger: source module required")
	}
	if in.SourceID == uuid.Nil {
		return errors.New("ledger: source id required")
	}
	return nil
}

// VoidInput wraps parameters for voiding.
type VoidInput struct {
	EntryID int64
	ActorID int64
	Reason  string
}

// ReverseInput wraps parameters for reversal.
type ReverseInput struct {
	EntryID    int64
	ActorID    int64
	Memo       string
	Override   bool
	TargetDate *time.Time
}
