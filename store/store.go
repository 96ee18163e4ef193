// Package store persists transactions and planned templates in a SQLite
// database. The schema and access patterns are tuned for a personal ledger:
// thousands of rows, read-mostly, single writer.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/fidra-app/fidra/ledger"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when an update races another writer; the
// caller holds a stale version of the record.
var ErrVersionConflict = errors.New("version conflict")

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
	status TEXT NOT NULL CHECK (status IN ('--', 'pending', 'approved', 'rejected', 'planned')),
	sheet TEXT NOT NULL,
	category TEXT,
	party TEXT,
	reference TEXT,
	activity TEXT,
	notes TEXT,
	version INTEGER DEFAULT 1,
	created_at TEXT NOT NULL,
	modified_at TEXT,
	modified_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_sheet ON transactions(sheet);
CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);

CREATE TABLE IF NOT EXISTS planned_templates (
	id TEXT PRIMARY KEY,
	start_date TEXT NOT NULL,
	description TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
	frequency TEXT NOT NULL CHECK (frequency IN ('once', 'weekly', 'biweekly', 'monthly', 'quarterly', 'yearly')),
	target_sheet TEXT NOT NULL,
	category TEXT,
	party TEXT,
	activity TEXT,
	end_date TEXT,
	occurrence_count INTEGER,
	skipped_dates TEXT DEFAULT '[]',
	fulfilled_dates TEXT DEFAULT '[]'
);
`

// Store wraps a SQLite database holding the ledger.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a new transaction.
func (s *Store) Insert(ctx context.Context, t *ledger.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, description, amount, type, status, sheet,
			category, party, reference, activity, notes, version, created_at, modified_at, modified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Date.Format(dateLayout),
		t.Description,
		t.Amount.String(),
		t.Type.String(),
		t.Status.String(),
		t.Sheet,
		nullable(t.Category),
		nullable(t.Party),
		nullable(t.Reference),
		nullable(t.Activity),
		nullable(t.Notes),
		t.Version,
		t.CreatedAt.UTC().Format(time.RFC3339),
		nullableTime(t.ModifiedAt),
		nullable(t.ModifiedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// Update replaces a transaction, guarded by an optimistic version check.
// The given transaction must carry the bumped version; the row is only
// replaced when the stored version is exactly one behind.
func (s *Store) Update(ctx context.Context, t *ledger.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, description = ?, amount = ?, type = ?, status = ?, sheet = ?,
			category = ?, party = ?, reference = ?, activity = ?, notes = ?,
			version = ?, modified_at = ?, modified_by = ?
		WHERE id = ? AND version = ?`,
		t.Date.Format(dateLayout),
		t.Description,
		t.Amount.String(),
		t.Type.String(),
		t.Status.String(),
		t.Sheet,
		nullable(t.Category),
		nullable(t.Party),
		nullable(t.Reference),
		nullable(t.Activity),
		nullable(t.Notes),
		t.Version,
		nullableTime(t.ModifiedAt),
		nullable(t.ModifiedBy),
		t.ID,
		t.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the row is gone or someone else got there first.
		var version int
		err := s.db.QueryRowContext(ctx, `SELECT version FROM transactions WHERE id = ?`, t.ID).Scan(&version)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transaction %s: %w", t.ID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("transaction %s at version %d: %w", t.ID, version, ErrVersionConflict)
	}

	return nil
}

// Delete removes a transaction by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	return nil
}

// Get fetches a single transaction by ID.
func (s *Store) Get(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// List returns all transactions ordered by date then creation time. A
// non-empty sheet restricts the result to that sheet.
func (s *Store) List(ctx context.Context, sheet string) ([]*ledger.Transaction, error) {
	query := selectColumns + ` ORDER BY date, created_at`
	args := []any{}
	if sheet != "" {
		query = selectColumns + ` WHERE sheet = ? ORDER BY date, created_at`
		args = append(args, sheet)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

const selectColumns = `
	SELECT id, date, description, amount, type, status, sheet,
		category, party, reference, activity, notes,
		version, created_at, modified_at, modified_by
	FROM transactions`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*ledger.Transaction, error) {
	var (
		t          ledger.Transaction
		dateStr    string
		amountStr  string
		typeStr    string
		statusStr  string
		category   sql.NullString
		party      sql.NullString
		reference  sql.NullString
		activity   sql.NullString
		notes      sql.NullString
		createdAt  string
		modifiedAt sql.NullString
		modifiedBy sql.NullString
	)

	err := row.Scan(&t.ID, &dateStr, &t.Description, &amountStr, &typeStr, &statusStr, &t.Sheet,
		&category, &party, &reference, &activity, &notes,
		&t.Version, &createdAt, &modifiedAt, &modifiedBy)
	if err != nil {
		return nil, err
	}

	if t.Date, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	if t.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if t.Type, err = ledger.ParseTransactionType(typeStr); err != nil {
		return nil, err
	}
	if t.Status, err = ledger.ParseApprovalStatus(statusStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if modifiedAt.Valid {
		if t.ModifiedAt, err = time.Parse(time.RFC3339, modifiedAt.String); err != nil {
			return nil, fmt.Errorf("invalid modified_at %q: %w", modifiedAt.String, err)
		}
	}

	t.Category = category.String
	t.Party = party.String
	t.Reference = reference.String
	t.Activity = activity.String
	t.Notes = notes.String
	t.ModifiedBy = modifiedBy.String

	return &t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
