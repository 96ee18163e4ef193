package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/fidra-app/fidra/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "fidra.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTransaction(t *testing.T, day int, desc string, opts ...ledger.Option) *ledger.Transaction {
	t.Helper()

	txn, err := ledger.New(
		time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		desc,
		decimal.RequireFromString("42.00"),
		ledger.TypeExpense,
		"Personal",
		opts...,
	)
	assert.NoError(t, err)
	return txn
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := newTransaction(t, 1, "Coffee",
		ledger.WithCategory("Food & Drink"),
		ledger.WithParty("Jane's Coffee"),
		ledger.WithNotes("Morning coffee"),
	)

	assert.NoError(t, s.Insert(ctx, txn))

	got, err := s.Get(ctx, txn.ID)
	assert.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
	assert.Equal(t, "Coffee", got.Description)
	assert.True(t, got.Amount.Equal(txn.Amount))
	assert.Equal(t, ledger.TypeExpense, got.Type)
	assert.Equal(t, ledger.StatusPending, got.Status)
	assert.Equal(t, "Food & Drink", got.Category)
	assert.Equal(t, "Jane's Coffee", got.Party)
	assert.Equal(t, "Morning coffee", got.Notes)
	assert.Equal(t, "", got.Reference)
	assert.Equal(t, 1, got.Version)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.IsError(t, err, ErrNotFound)
}

func TestListOrdersByDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, day := range []int{20, 5, 12} {
		assert.NoError(t, s.Insert(ctx, newTransaction(t, day, "Entry")))
	}

	listed, err := s.List(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(listed))
	assert.True(t, listed[0].Date.Before(listed[1].Date))
	assert.True(t, listed[1].Date.Before(listed[2].Date))
}

func TestListFiltersBySheet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Insert(ctx, newTransaction(t, 1, "Personal entry")))

	events, err := ledger.New(
		time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		"Venue hire",
		decimal.RequireFromString("250.00"),
		ledger.TypeExpense,
		"Events",
	)
	assert.NoError(t, err)
	assert.NoError(t, s.Insert(ctx, events))

	listed, err := s.List(ctx, "Events")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(listed))
	assert.Equal(t, "Venue hire", listed[0].Description)
}

func TestUpdateVersionCheck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := newTransaction(t, 1, "Coffee")
	assert.NoError(t, s.Insert(ctx, txn))

	updated := txn.WithUpdates(func(u *ledger.Transaction) {
		u.Status = ledger.StatusApproved
	})
	assert.NoError(t, s.Update(ctx, updated))

	got, err := s.Get(ctx, txn.ID)
	assert.NoError(t, err)
	assert.Equal(t, ledger.StatusApproved, got.Status)
	assert.Equal(t, 2, got.Version)

	// Re-applying the same stale update must conflict.
	assert.IsError(t, s.Update(ctx, updated), ErrVersionConflict)
}

func TestUpdateMissing(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(context.Background(), newTransaction(t, 1, "Ghost"))
	assert.IsError(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := newTransaction(t, 1, "Coffee")
	assert.NoError(t, s.Insert(ctx, txn))
	assert.NoError(t, s.Delete(ctx, txn.ID))

	_, err := s.Get(ctx, txn.ID)
	assert.IsError(t, err, ErrNotFound)

	assert.IsError(t, s.Delete(ctx, txn.ID), ErrNotFound)
}

func TestTemplateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tmpl := &ledger.PlannedTemplate{
		ID:          "tmpl-rent",
		Description: "Rent",
		Amount:      decimal.RequireFromString("1200.00"),
		Type:        ledger.TypeExpense,
		Sheet:       "Personal",
		Category:    "Housing",
		StartDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Frequency:   ledger.FreqMonthly,
		EndDate:     time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		MaxCount:    12,
		Skipped:     map[string]struct{}{"2024-02-15": {}},
	}

	assert.NoError(t, s.InsertTemplate(ctx, tmpl))

	templates, err := s.ListTemplates(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(templates))

	got := templates[0]
	assert.Equal(t, tmpl.ID, got.ID)
	assert.Equal(t, tmpl.Description, got.Description)
	assert.True(t, got.Amount.Equal(tmpl.Amount))
	assert.Equal(t, ledger.FreqMonthly, got.Frequency)
	assert.Equal(t, tmpl.StartDate, got.StartDate)
	assert.Equal(t, tmpl.EndDate, got.EndDate)
	assert.Equal(t, 12, got.MaxCount)
	assert.Equal(t, tmpl.Skipped, got.Skipped)
	assert.Equal(t, map[string]struct{}(nil), got.Fulfilled)
}

func TestDeleteTemplate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tmpl := &ledger.PlannedTemplate{
		ID:          "tmpl-once",
		Description: "Insurance",
		Amount:      decimal.RequireFromString("300.00"),
		Type:        ledger.TypeExpense,
		Sheet:       "Personal",
		StartDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Frequency:   ledger.FreqOnce,
	}

	assert.NoError(t, s.InsertTemplate(ctx, tmpl))
	assert.NoError(t, s.DeleteTemplate(ctx, tmpl.ID))
	assert.IsError(t, s.DeleteTemplate(ctx, tmpl.ID), ErrNotFound)
}
