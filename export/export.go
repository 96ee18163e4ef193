// Package export renders transaction collections to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fidra-app/fidra/ledger"
)

// Exporter writes a transaction collection to w.
type Exporter interface {
	Export(w io.Writer, transactions []*ledger.Transaction) error
}

// ForFormat returns the exporter for a format name ("csv" or "json").
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "csv":
		return CSV{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// csvHeader fixes the column order for CSV exports.
var csvHeader = []string{
	"id", "date", "description", "amount", "type", "status", "sheet",
	"category", "party", "reference", "activity", "notes",
}

// CSV exports transactions as comma-separated values with a header row.
type CSV struct{}

func (CSV) Export(w io.Writer, transactions []*ledger.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Description,
			t.Amount.StringFixed(2),
			t.Type.String(),
			t.Status.String(),
			t.Sheet,
			t.Category,
			t.Party,
			t.Reference,
			t.Activity,
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON exports transactions as an indented JSON array.
type JSON struct{}

// jsonTransaction shapes the export; optional fields are omitted when absent.
type jsonTransaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Sheet       string `json:"sheet"`
	Category    string `json:"category,omitempty"`
	Party       string `json:"party,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Activity    string `json:"activity,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at,omitempty"`
}

func (JSON) Export(w io.Writer, transactions []*ledger.Transaction) error {
	out := make([]jsonTransaction, 0, len(transactions))

	for _, t := range transactions {
		jt := jsonTransaction{
			ID:          t.ID,
			Date:        t.Date.Format("2006-01-02"),
			Description: t.Description,
			Amount:      t.Amount.StringFixed(2),
			Type:        t.Type.String(),
			Status:      t.Status.String(),
			Sheet:       t.Sheet,
			Category:    t.Category,
			Party:       t.Party,
			Reference:   t.Reference,
			Activity:    t.Activity,
			Notes:       t.Notes,
			Version:     t.Version,
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if !t.ModifiedAt.IsZero() {
			jt.ModifiedAt = t.ModifiedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
