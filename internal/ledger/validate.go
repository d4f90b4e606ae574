package ledger

import "math"

// BalanceEpsilon is the tolerance for debit/credit equality: one minor
// currency unit expressed at major-unit precision.
const BalanceEpsilon = 0.01

// Totals sums debits and credits across lines.
func Totals(lines []Line) (debit, credit float64) {
	for _, line := range lines {
		debit += line.Debit
		credit += line.Credit
	}
	return debit, credit
}

// IsBalanced reports whether total debits equal total credits within
// BalanceEpsilon. It is pure and advisory: it does not reject negative
// amounts or lines carrying both sides, which structural validation owns.
// An empty slice balances trivially.
func IsBalanced(lines []Line) bool {
	debit, credit := Totals(lines)
	return math.Abs(debit-credit) < BalanceEpsilon
}
