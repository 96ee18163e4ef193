package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Balance computation respects the approval flow: income counts once it is
// auto-approved or approved, expenses count only when approved. Pending,
// rejected and planned entries never move the current balance.

// counts reports whether the transaction contributes to the current balance.
func counts(t *Transaction) bool {
	switch t.Type {
	case TypeIncome:
		return t.Status == StatusAuto || t.Status == StatusApproved
	case TypeExpense:
		return t.Status == StatusApproved
	default:
		return false
	}
}

// Total computes the net balance (income minus expenses) over transactions.
func Total(transactions []*Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, t := range transactions {
		if !counts(t) {
			continue
		}
		if t.Type == TypeIncome {
			total = total.Add(t.Amount)
		} else {
			total = total.Sub(t.Amount)
		}
	}

	return total
}

// TotalForSheet computes the net balance for a single sheet.
func TotalForSheet(transactions []*Transaction, sheet string) decimal.Decimal {
	scoped := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Sheet == sheet {
			scoped = append(scoped, t)
		}
	}
	return Total(scoped)
}

// PendingTotal sums all pending expense amounts.
func PendingTotal(transactions []*Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == TypeExpense && t.Status == StatusPending {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// RunningBalances maps each transaction ID to the balance after applying it,
// walking transactions in chronological order (date, then creation time).
// The input slice is not reordered.
func RunningBalances(transactions []*Transaction) map[string]decimal.Decimal {
	ordered := make([]*Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	balances := make(map[string]decimal.Decimal, len(ordered))
	running := decimal.Zero

	for _, t := range ordered {
		if counts(t) {
			if t.Type == TypeIncome {
				running = running.Add(t.Amount)
			} else {
				running = running.Sub(t.Amount)
			}
		}
		balances[t.ID] = running
	}

	return balances
}

// TotalsByCategory sums the net contribution of countable transactions per
// category. Transactions without a category are grouped under the empty key.
func TotalsByCategory(transactions []*Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if !counts(t) {
			continue
		}
		amount := t.Amount
		if t.Type == TypeExpense {
			amount = amount.Neg()
		}
		totals[t.Category] = totals[t.Category].Add(amount)
	}

	return totals
}
