package reports

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary amount with thousand separators.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// FormattedTrialBalance pairs raw amounts with display strings.
type FormattedTrialBalance struct {
	TrialBalance
	DisplayTotalDebit  string `json:"display_total_debit"`
	DisplayTotalCredit string `json:"display_total_credit"`
}

// Format attaches display strings to a trial balance.
func Format(tb TrialBalance) FormattedTrialBalance {
	return FormattedTrialBalance{
		TrialBalance:       tb,
		DisplayTotalDebit:  FormatAmount(tb.TotalDebit),
		DisplayTotalCredit: FormatAmount(tb.TotalCredit),
	}
}
