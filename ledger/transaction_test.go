package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewDefaults(t *testing.T) {
	income, err := New(date(2024, 1, 3), "Salary payment", amount("3000.00"), TypeIncome, "Personal")
	assert.NoError(t, err)
	assert.Equal(t, StatusAuto, income.Status)
	assert.Equal(t, 1, income.Version)
	assert.NotZero(t, income.ID)

	expense, err := New(date(2024, 1, 1), "Coffee", amount("4.50"), TypeExpense, "Personal")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, expense.Status)
}

func TestNewOptions(t *testing.T) {
	txn, err := New(date(2024, 1, 1), "Coffee", amount("4.50"), TypeExpense, "Personal",
		WithCategory("Food & Drink"),
		WithParty("Jane's Coffee"),
		WithNotes("Morning coffee"),
		WithStatus(StatusApproved),
	)
	assert.NoError(t, err)
	assert.Equal(t, "Food & Drink", txn.Category)
	assert.Equal(t, "Jane's Coffee", txn.Party)
	assert.Equal(t, "Morning coffee", txn.Notes)
	assert.Equal(t, StatusApproved, txn.Status)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		sheet       string
		wantErr     bool
	}{
		{"valid", "Coffee", "4.50", "Personal", false},
		{"zero amount", "Coffee", "0", "Personal", true},
		{"negative amount", "Coffee", "-1.00", "Personal", true},
		{"blank description", "   ", "4.50", "Personal", true},
		{"blank sheet", "Coffee", "4.50", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(date(2024, 1, 1), tt.description, amount(tt.amount), TypeExpense, tt.sheet)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithUpdatesBumpsVersion(t *testing.T) {
	txn, err := New(date(2024, 1, 1), "Coffee", amount("4.50"), TypeExpense, "Personal")
	assert.NoError(t, err)

	updated := txn.WithUpdates(func(u *Transaction) {
		u.Amount = amount("5.00")
		u.Status = StatusApproved
	})

	assert.Equal(t, 2, updated.Version)
	assert.True(t, updated.Amount.Equal(amount("5.00")))
	assert.False(t, updated.ModifiedAt.IsZero())

	// Original untouched.
	assert.Equal(t, 1, txn.Version)
	assert.True(t, txn.Amount.Equal(amount("4.50")))
}

func TestEnumRoundTrips(t *testing.T) {
	for _, typ := range []TransactionType{TypeIncome, TypeExpense} {
		parsed, err := ParseTransactionType(typ.String())
		assert.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	for _, status := range []ApprovalStatus{StatusAuto, StatusPending, StatusApproved, StatusRejected, StatusPlanned} {
		parsed, err := ParseApprovalStatus(status.String())
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	for _, freq := range []Frequency{FreqOnce, FreqWeekly, FreqBiweekly, FreqMonthly, FreqQuarterly, FreqYearly} {
		parsed, err := ParseFrequency(freq.String())
		assert.NoError(t, err)
		assert.Equal(t, freq, parsed)
	}

	_, err := ParseTransactionType("transfer")
	assert.Error(t, err)
	_, err = ParseApprovalStatus("maybe")
	assert.Error(t, err)
	_, err = ParseFrequency("fortnightly")
	assert.Error(t, err)
}

func TestSearchableText(t *testing.T) {
	txn, err := New(date(2024, 1, 1), "Coffee at Jane's Coffee Shop", amount("4.50"), TypeExpense, "Personal",
		WithCategory("Food & Drink"),
		WithParty("Jane's Coffee"),
		WithNotes("Morning coffee"),
		WithStatus(StatusApproved),
	)
	assert.NoError(t, err)

	text := txn.SearchableText()
	assert.Equal(t, "Coffee at Jane's Coffee Shop 4.50 expense approved Food & Drink Jane's Coffee Morning coffee", text)

	// Deterministic across calls.
	assert.Equal(t, text, txn.SearchableText())
}

func TestSearchableTextSkipsAbsentFields(t *testing.T) {
	txn, err := New(date(2024, 1, 2), "Fuel for car", amount("45.00"), TypeExpense, "Personal",
		WithCategory("Transport"),
		WithParty("Shell"),
	)
	assert.NoError(t, err)

	// No placeholder between category and party even though reference,
	// activity and notes are absent.
	assert.Equal(t, "Fuel for car 45.00 expense pending Transport Shell", txn.SearchableText())
}
