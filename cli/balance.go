package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/fidra-app/fidra/ledger"
)

type BalanceCmd struct {
	Sheet      string `help:"Show the balance for one sheet only."`
	Categories bool   `help:"Break the balance down by category."`
}

func (cmd *BalanceCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	s, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	transactions, err := s.List(runCtx, cmd.Sheet)
	if err != nil {
		return err
	}

	total := ledger.Total(transactions)
	pending := ledger.PendingTotal(transactions)

	label := "Balance"
	if cmd.Sheet != "" {
		label = fmt.Sprintf("Balance (%s)", cmd.Sheet)
	}

	style := incomeStyle
	if total.IsNegative() {
		style = expenseStyle
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "%s: %s\n", label, style.Render(total.StringFixed(2)))

	if pending.IsPositive() {
		_, _ = fmt.Fprintf(ctx.Stdout, "Pending expenses: %s\n", mutedStyle.Render(pending.StringFixed(2)))
	}

	if cmd.Categories {
		totals := ledger.TotalsByCategory(transactions)

		names := make([]string, 0, len(totals))
		for name := range totals {
			names = append(names, name)
		}
		sort.Strings(names)

		_, _ = fmt.Fprintln(ctx.Stdout)
		for _, name := range names {
			display := name
			if display == "" {
				display = "(uncategorized)"
			}
			amount := totals[name]
			style := incomeStyle
			if amount.IsNegative() {
				style = expenseStyle
			}
			_, _ = fmt.Fprintf(ctx.Stdout, "  %-24s %s\n", display, style.Render(amount.StringFixed(2)))
		}
	}

	return nil
}
