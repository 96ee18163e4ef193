package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/fidra-app/fidra/ledger"
)

func fixture(t *testing.T) []*ledger.Transaction {
	t.Helper()

	coffee, err := ledger.New(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		"Coffee",
		decimal.RequireFromString("4.50"),
		ledger.TypeExpense,
		"Personal",
		ledger.WithCategory("Food & Drink"),
		ledger.WithParty("Jane's Coffee"),
	)
	assert.NoError(t, err)

	salary, err := ledger.New(
		time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		"Salary payment",
		decimal.RequireFromString("3000.00"),
		ledger.TypeIncome,
		"Personal",
	)
	assert.NoError(t, err)

	return []*ledger.Transaction{coffee, salary}
}

func TestForFormat(t *testing.T) {
	_, err := ForFormat("csv")
	assert.NoError(t, err)
	_, err = ForFormat("json")
	assert.NoError(t, err)
	_, err = ForFormat("xml")
	assert.Error(t, err)
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, CSV{}.Export(&buf, fixture(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)

	assert.Equal(t, 3, len(records)) // header + 2 rows
	assert.Equal(t, csvHeader, records[0])

	assert.Equal(t, "2024-01-01", records[1][1])
	assert.Equal(t, "Coffee", records[1][2])
	assert.Equal(t, "4.50", records[1][3])
	assert.Equal(t, "expense", records[1][4])
	assert.Equal(t, "pending", records[1][5])
	assert.Equal(t, "Food & Drink", records[1][7])

	assert.Equal(t, "Salary payment", records[2][2])
	assert.Equal(t, "--", records[2][5])
}

func TestCSVExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, CSV{}.Export(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 1, len(lines)) // header only
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, JSON{}.Export(&buf, fixture(t)))

	var decoded []map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 2, len(decoded))
	assert.Equal(t, "Coffee", decoded[0]["description"])
	assert.Equal(t, "4.50", decoded[0]["amount"])
	assert.Equal(t, "Jane's Coffee", decoded[0]["party"])

	// Absent optional fields are omitted entirely.
	_, hasNotes := decoded[0]["notes"]
	assert.False(t, hasNotes)
	_, hasParty := decoded[1]["party"]
	assert.False(t, hasParty)
}
