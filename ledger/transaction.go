// Package ledger defines the bookkeeping domain model: transactions, their
// type and approval lifecycle, balance computation and planned-transaction
// expansion.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType int

const (
	TypeUnknown TransactionType = iota
	TypeIncome
	TypeExpense
)

// String returns the string representation of the transaction type
func (t TransactionType) String() string {
	switch t {
	case TypeIncome:
		return "income"
	case TypeExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a transaction type from its string form
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown transaction type %q", s)
	}
}

// ApprovalStatus represents where a transaction sits in the approval flow.
type ApprovalStatus int

const (
	StatusUnknown ApprovalStatus = iota
	StatusAuto                   // auto-approved (income)
	StatusPending                // awaiting approval
	StatusApproved
	StatusRejected
	StatusPlanned // generated from a planned template
)

// String returns the status label as rendered throughout the application.
// Auto-approved income renders as "--".
func (s ApprovalStatus) String() string {
	switch s {
	case StatusAuto:
		return "--"
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// ParseApprovalStatus parses an approval status from its string form
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch s {
	case "--", "auto":
		return StatusAuto, nil
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	case "planned":
		return StatusPlanned, nil
	default:
		return StatusUnknown, fmt.Errorf("unknown approval status %q", s)
	}
}

// Transaction is a single bookkeeping record. Instances are treated as
// immutable; WithUpdates returns a bumped copy instead of mutating in place.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Status      ApprovalStatus
	Sheet       string

	// Optional fields; empty means absent.
	Category  string
	Party     string
	Reference string // bank statement reference for matching
	Activity  string // activity/project tag for grouping
	Notes     string

	Version    int
	CreatedAt  time.Time
	ModifiedAt time.Time
	ModifiedBy string
}

// Option configures optional fields on a new transaction.
type Option func(*Transaction)

// WithCategory sets the category.
func WithCategory(category string) Option {
	return func(t *Transaction) { t.Category = category }
}

// WithParty sets the counterparty.
func WithParty(party string) Option {
	return func(t *Transaction) { t.Party = party }
}

// WithReference sets the bank statement reference.
func WithReference(reference string) Option {
	return func(t *Transaction) { t.Reference = reference }
}

// WithActivity sets the activity tag.
func WithActivity(activity string) Option {
	return func(t *Transaction) { t.Activity = activity }
}

// WithNotes sets free-form notes.
func WithNotes(notes string) Option {
	return func(t *Transaction) { t.Notes = notes }
}

// WithStatus overrides the default approval status.
func WithStatus(status ApprovalStatus) Option {
	return func(t *Transaction) { t.Status = status }
}

// New creates a transaction with defaults applied: income is auto-approved,
// expenses start out pending.
func New(date time.Time, description string, amount decimal.Decimal, typ TransactionType, sheet string, opts ...Option) (*Transaction, error) {
	status := StatusPending
	if typ == TypeIncome {
		status = StatusAuto
	}

	t := &Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        typ,
		Status:      status,
		Sheet:       sheet,
		Version:     1,
		CreatedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks the invariants every stored transaction must hold.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if strings.TrimSpace(t.Sheet) == "" {
		return fmt.Errorf("sheet cannot be empty")
	}
	return nil
}

// WithUpdates returns a copy with fn applied, the version bumped and the
// modification time set. The receiver is left untouched.
func (t *Transaction) WithUpdates(fn func(*Transaction)) *Transaction {
	updated := *t
	fn(&updated)
	updated.Version = t.Version + 1
	updated.ModifiedAt = time.Now()
	return &updated
}

// SearchableText flattens the transaction into a single space-joined blob
// for substring matching. The field order is fixed (description, amount,
// type, status, then present-only optional fields) so matching is
// reproducible for a given record.
func (t *Transaction) SearchableText() string {
	parts := make([]string, 0, 9)
	// Amounts render with two decimal places so that a query like "45.00"
	// matches regardless of how the amount was originally entered.
	parts = append(parts,
		t.Description,
		t.Amount.StringFixed(2),
		t.Type.String(),
		t.Status.String(),
	)

	for _, optional := range []string{t.Category, t.Party, t.Reference, t.Activity, t.Notes} {
		if optional != "" {
			parts = append(parts, optional)
		}
	}

	return strings.Join(parts, " ")
}
