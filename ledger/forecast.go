package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a planned template recurs.
type Frequency int

const (
	FreqOnce Frequency = iota // one-time, no recurrence
	FreqWeekly
	FreqBiweekly
	FreqMonthly
	FreqQuarterly
	FreqYearly
)

// String returns the string representation of the frequency
func (f Frequency) String() string {
	switch f {
	case FreqOnce:
		return "once"
	case FreqWeekly:
		return "weekly"
	case FreqBiweekly:
		return "biweekly"
	case FreqMonthly:
		return "monthly"
	case FreqQuarterly:
		return "quarterly"
	case FreqYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// ParseFrequency parses a frequency from its string form
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "once":
		return FreqOnce, nil
	case "weekly":
		return FreqWeekly, nil
	case "biweekly":
		return FreqBiweekly, nil
	case "monthly":
		return FreqMonthly, nil
	case "quarterly":
		return FreqQuarterly, nil
	case "yearly":
		return FreqYearly, nil
	default:
		return FreqOnce, fmt.Errorf("unknown frequency %q", s)
	}
}

// PlannedTemplate describes a recurring transaction to be expanded into
// planned instances for forecasting.
type PlannedTemplate struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Sheet       string
	Category    string
	Party       string
	Activity    string

	StartDate time.Time
	Frequency Frequency
	EndDate   time.Time // zero means no end date
	MaxCount  int       // zero means no occurrence limit

	// Occurrence dates (yyyy-mm-dd) to leave out of the expansion, either
	// skipped by the user or already fulfilled by a real transaction.
	Skipped   map[string]struct{}
	Fulfilled map[string]struct{}
}

// Expand generates planned transaction instances from the template up to and
// including horizon. Dates before from are omitted, as are skipped and
// fulfilled occurrences. Instance IDs are deterministic per template and
// date, so re-expanding never produces duplicates.
func (tmpl *PlannedTemplate) Expand(from, horizon time.Time) []*Transaction {
	var instances []*Transaction

	// The template's own end date caps the expansion window.
	if !tmpl.EndDate.IsZero() && tmpl.EndDate.Before(horizon) {
		horizon = tmpl.EndDate
	}

	current := tmpl.StartDate
	count := 0

	for !current.After(horizon) {
		if !current.Before(from) && !tmpl.excluded(current) {
			instances = append(instances, tmpl.instance(current))
		}

		count++
		if tmpl.MaxCount > 0 && count >= tmpl.MaxCount {
			break
		}
		if tmpl.Frequency == FreqOnce {
			break
		}

		next := nextOccurrence(current, tmpl.Frequency)
		if !next.After(current) {
			break
		}
		current = next
	}

	return instances
}

func (tmpl *PlannedTemplate) excluded(date time.Time) bool {
	key := date.Format("2006-01-02")
	if _, ok := tmpl.Skipped[key]; ok {
		return true
	}
	_, ok := tmpl.Fulfilled[key]
	return ok
}

// instance creates a planned transaction for one occurrence. The ID is a
// name-based UUID over the template ID and date.
func (tmpl *PlannedTemplate) instance(date time.Time) *Transaction {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(tmpl.ID+"_"+date.Format("2006-01-02")))

	return &Transaction{
		ID:          id.String(),
		Date:        date,
		Description: tmpl.Description,
		Amount:      tmpl.Amount,
		Type:        tmpl.Type,
		Status:      StatusPlanned,
		Sheet:       tmpl.Sheet,
		Category:    tmpl.Category,
		Party:       tmpl.Party,
		Activity:    tmpl.Activity,
		Version:     1,
		CreatedAt:   time.Now(),
	}
}

// nextOccurrence steps a date forward by one frequency interval. Month-based
// steps clamp to the last day of the target month instead of overflowing
// (Jan 31 + 1 month is Feb 28/29, not Mar 2).
func nextOccurrence(current time.Time, frequency Frequency) time.Time {
	switch frequency {
	case FreqWeekly:
		return current.AddDate(0, 0, 7)
	case FreqBiweekly:
		return current.AddDate(0, 0, 14)
	case FreqMonthly:
		return addMonthsClamped(current, 1)
	case FreqQuarterly:
		return addMonthsClamped(current, 3)
	case FreqYearly:
		return addMonthsClamped(current, 12)
	default:
		return current
	}
}

func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	// First of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	if last := daysInMonth(first); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, date.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
