package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fidra-app/fidra/ledger"
)

// InsertTemplate stores a planned template.
func (s *Store) InsertTemplate(ctx context.Context, tmpl *ledger.PlannedTemplate) error {
	skipped, err := marshalDates(tmpl.Skipped)
	if err != nil {
		return err
	}
	fulfilled, err := marshalDates(tmpl.Fulfilled)
	if err != nil {
		return err
	}

	var endDate any
	if !tmpl.EndDate.IsZero() {
		endDate = tmpl.EndDate.Format(dateLayout)
	}
	var maxCount any
	if tmpl.MaxCount > 0 {
		maxCount = tmpl.MaxCount
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO planned_templates (id, start_date, description, amount, type, frequency,
			target_sheet, category, party, activity, end_date, occurrence_count, skipped_dates, fulfilled_dates)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tmpl.ID,
		tmpl.StartDate.Format(dateLayout),
		tmpl.Description,
		tmpl.Amount.String(),
		tmpl.Type.String(),
		tmpl.Frequency.String(),
		tmpl.Sheet,
		nullable(tmpl.Category),
		nullable(tmpl.Party),
		nullable(tmpl.Activity),
		endDate,
		maxCount,
		skipped,
		fulfilled,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	return nil
}

// DeleteTemplate removes a planned template by ID.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM planned_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}

	return nil
}

// ListTemplates returns all planned templates ordered by start date.
func (s *Store) ListTemplates(ctx context.Context) ([]*ledger.PlannedTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_date, description, amount, type, frequency,
			target_sheet, category, party, activity, end_date, occurrence_count, skipped_dates, fulfilled_dates
		FROM planned_templates
		ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*ledger.PlannedTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

func scanTemplate(rows *sql.Rows) (*ledger.PlannedTemplate, error) {
	var (
		tmpl      ledger.PlannedTemplate
		startDate string
		amountStr string
		typeStr   string
		freqStr   string
		category  sql.NullString
		party     sql.NullString
		activity  sql.NullString
		endDate   sql.NullString
		maxCount  sql.NullInt64
		skipped   sql.NullString
		fulfilled sql.NullString
	)

	err := rows.Scan(&tmpl.ID, &startDate, &tmpl.Description, &amountStr, &typeStr, &freqStr,
		&tmpl.Sheet, &category, &party, &activity, &endDate, &maxCount, &skipped, &fulfilled)
	if err != nil {
		return nil, err
	}

	if tmpl.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", startDate, err)
	}
	if tmpl.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if tmpl.Type, err = ledger.ParseTransactionType(typeStr); err != nil {
		return nil, err
	}
	if tmpl.Frequency, err = ledger.ParseFrequency(freqStr); err != nil {
		return nil, err
	}
	if endDate.Valid {
		if tmpl.EndDate, err = time.Parse(dateLayout, endDate.String); err != nil {
			return nil, fmt.Errorf("invalid end_date %q: %w", endDate.String, err)
		}
	}
	if maxCount.Valid {
		tmpl.MaxCount = int(maxCount.Int64)
	}
	if tmpl.Skipped, err = unmarshalDates(skipped); err != nil {
		return nil, err
	}
	if tmpl.Fulfilled, err = unmarshalDates(fulfilled); err != nil {
		return nil, err
	}

	tmpl.Category = category.String
	tmpl.Party = party.String
	tmpl.Activity = activity.String

	return &tmpl, nil
}

// Skipped and fulfilled occurrence dates are stored as JSON arrays of
// yyyy-mm-dd strings.

func marshalDates(dates map[string]struct{}) (string, error) {
	list := make([]string, 0, len(dates))
	for d := range dates {
		list = append(list, d)
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode dates: %w", err)
	}
	return string(raw), nil
}

func unmarshalDates(raw sql.NullString) (map[string]struct{}, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil {
		return nil, fmt.Errorf("failed to decode dates: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}

	dates := make(map[string]struct{}, len(list))
	for _, d := range list {
		dates[d] = struct{}{}
	}
	return dates, nil
}
