package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/fidra-app/fidra/ledger"
)

// renderTransactions writes transactions as an aligned table. Column widths
// adapt to the content; the description column is truncated when the
// terminal is too narrow.
func renderTransactions(w io.Writer, transactions []*ledger.Transaction) {
	if len(transactions) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("no transactions"))
		return
	}

	maxDescription := terminalWidth() / 3

	descWidth := runewidth.StringWidth("DESCRIPTION")
	amountWidth := runewidth.StringWidth("AMOUNT")
	categoryWidth := runewidth.StringWidth("CATEGORY")

	rows := make([][5]string, 0, len(transactions))
	for _, t := range transactions {
		description := runewidth.Truncate(t.Description, maxDescription, "…")
		amount := t.Amount.StringFixed(2)
		if t.Type == ledger.TypeExpense {
			amount = "-" + amount
		}

		row := [5]string{
			t.Date.Format("2006-01-02"),
			description,
			amount,
			t.Category,
			t.Status.String(),
		}
		rows = append(rows, row)

		descWidth = max(descWidth, runewidth.StringWidth(description))
		amountWidth = max(amountWidth, runewidth.StringWidth(amount))
		categoryWidth = max(categoryWidth, runewidth.StringWidth(t.Category))
	}

	header := fmt.Sprintf("%s  %s  %s  %s  %s",
		runewidth.FillRight("DATE", 10),
		runewidth.FillRight("DESCRIPTION", descWidth),
		runewidth.FillLeft("AMOUNT", amountWidth),
		runewidth.FillRight("CATEGORY", categoryWidth),
		"STATUS",
	)
	_, _ = fmt.Fprintln(w, mutedStyle.Render(header))

	for i, t := range transactions {
		row := rows[i]

		amount := runewidth.FillLeft(row[2], amountWidth)
		if t.Type == ledger.TypeIncome {
			amount = incomeStyle.Render(amount)
		} else {
			amount = expenseStyle.Render(amount)
		}

		status := row[4]
		if t.Status == ledger.StatusPending || t.Status == ledger.StatusPlanned {
			status = mutedStyle.Render(status)
		}

		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			row[0],
			runewidth.FillRight(row[1], descWidth),
			amount,
			runewidth.FillRight(row[3], categoryWidth),
			status,
		)
	}
}

// terminalWidth returns the width of the attached terminal, or a sensible
// default when output is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
