package ledger

import "testing"

func TestIsBalanced(t *testing.T) {
	cases := []struct {
		name  string
		lines []Line
		want  bool
	}{
		{
			name: "equal totals",
			lines: []Line{
				{AccountID: 1, Debit: 100},
				{AccountID: 2, Credit: 100},
			},
			want: true,
		},
		{
			name: "unequal totals",
			lines: []Line{
				{AccountID: 1, Debit: 100},
				{AccountID: 2, Credit: 50},
			},
			want: false,
		},
		{
			name: "within epsilon",
			lines: []Line{
				{AccountID: 1, Debit: 100.005},
				{AccountID: 2, Credit: 100},
			},
			want: true,
		},
		{
			name: "outside epsilon",
			lines: []Line{
				{AccountID: 1, Debit: 100.02},
				{AccountID: 2, Credit: 100},
			},
			want: false,
		},
		{
			name:  "empty entry",
			lines: nil,
			want:  true,
		},
		{
			name: "split across many lines",
			lines: []Line{
				{AccountID: 1, Debit: 40},
				{AccountID: 2, Debit: 60},
				{AccountID: 3, Credit: 25},
				{AccountID: 4, Credit: 75},
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBalanced(tc.lines); got != tc.want {
				debit, credit := Totals(tc.lines)
				t.Fatalf("IsBalanced = %v want %v (debit %.4f credit %.4f)", got, tc.want, debit, credit)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	lines := []Line{
		{AccountID: 1, Debit: 10.5},
		{AccountID: 2, Debit: 4.5, Credit: 1},
		{AccountID: 3, Credit: 14},
	}
	debit, credit := Totals(lines)
	if debit != 15 {
		t.Fatalf("debit = %.2f want 15", debit)
	}
	if credit != 15 {
		t.Fatalf("credit = %.2f want 15", credit)
	}
}
