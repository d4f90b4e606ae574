// Package ledger holds the double-entry primitives shared by journal
// posting, opening balances and reporting.
package ledger

// Line is one debit/credit row of a ledger entry. Amounts are major currency
// units; the API boundary coerces anything unparseable to zero before a Line
// is built.
type Line struct {
	AccountID int64
	Debit     float64
	Credit    float64
}
