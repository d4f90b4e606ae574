package opening

import (
	"errors"
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/ledger"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// LineInput is one opening balance row.
type LineInput struct {
	AccountID int64
	Debit     float64
	Credit    float64
}

// PostingInput groups fields required to post an opening balance.
type PostingInput struct {
	EntityID int64
	AsOfDate time.Time
	PostedBy int64
	Lines    []LineInput
}

// Validate checks structural rules and the aggregate balance.
func (in PostingInput) Validate() error {
	if in.EntityID == 0 {
		return errors.New("ledger: entity required")
	}
	if in.AsOfDate.IsZero() {
		return errors.New("ledger: as-of date required")
	}
	if len(in.Lines) == 0 {
		return errors.New("ledger: opening balance requires at least one line")
	}
	balance := make([]ledger.Line, 0, len(in.Lines))
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("ledger: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("ledger: line %d negative amount", idx)
		}
		balance = append(balance, ledger.Line{AccountID: line.AccountID, Debit: line.Debit, Credit: line.Credit})
	}
	if !ledger.IsBalanced(balance) {
		return shared.ErrUnbalanced
	}
	return nil
}
