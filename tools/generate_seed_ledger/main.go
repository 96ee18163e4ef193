// Seed Ledger Generator
//
// This tool fills a fidra database with realistic random transactions and
// planned templates for performance testing and demos.
//
// Usage:
//
//	go run main.go seed.db
//	go run main.go seed.db 50000  # Specify transaction count
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fidra-app/fidra/ledger"
	"github.com/fidra-app/fidra/store"
)

const defaultCount = 10000

var (
	categories = []string{
		"Food", "Housing", "Transport", "Utilities", "Entertainment",
		"Healthcare", "Clothing", "Subscriptions", "Gifts", "Taxes",
	}

	parties = []string{
		"Whole Foods", "Safeway", "Trader Joe's", "Costco",
		"Shell Gas", "Chevron", "BART", "Uber",
		"Landlord", "PG&E", "Comcast", "AT&T",
		"Amazon", "Target", "Best Buy", "Apple Store",
		"Netflix", "Spotify", "AMC Theaters",
		"Employer Inc", "Fidelity", "Vanguard",
	}

	descriptions = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Utility bill", "Online purchase",
		"Restaurant dinner", "Coffee", "Monthly subscription",
		"Medical appointment", "Insurance premium", "Gift",
	}

	activities = []string{
		"daily", "vacation", "moving", "renovation", "holidays",
	}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: generate_seed_ledger <db path> [count]")
		os.Exit(1)
	}
	dbPath := os.Args[1]

	count := defaultCount
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			count = n
		}
	}

	ctx := context.Background()

	s, err := store.Open(ctx, dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	currentDate := startDate

	inserted := 0
	for inserted < count {
		var t *ledger.Transaction
		var err error

		// Roughly one income for every nine expenses
		if rand.Intn(10) == 0 {
			t, err = generateIncome(currentDate)
		} else {
			t, err = generateExpense(currentDate)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := s.Insert(ctx, t); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		inserted++

		// Advance date by 0-2 days
		currentDate = currentDate.AddDate(0, 0, rand.Intn(3))
	}

	templates := 0
	for _, tmpl := range generateTemplates(startDate) {
		if err := s.InsertTemplate(ctx, tmpl); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		templates++
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d transactions and %d templates in %s\n", inserted, templates, dbPath)
}

func generateExpense(date time.Time) (*ledger.Transaction, error) {
	opts := []ledger.Option{
		ledger.WithCategory(categories[rand.Intn(len(categories))]),
		ledger.WithParty(parties[rand.Intn(len(parties))]),
	}

	// A third of expenses carry an activity, a quarter are already approved
	if rand.Intn(3) == 0 {
		opts = append(opts, ledger.WithActivity(activities[rand.Intn(len(activities))]))
	}
	if rand.Intn(4) == 0 {
		opts = append(opts, ledger.WithStatus(ledger.StatusApproved))
	}

	return ledger.New(
		date,
		descriptions[rand.Intn(len(descriptions))],
		randAmount(5, 500),
		ledger.TypeExpense,
		sheetFor(date),
		opts...,
	)
}

func generateIncome(date time.Time) (*ledger.Transaction, error) {
	return ledger.New(
		date,
		"Salary deposit",
		randAmount(2000, 4000),
		ledger.TypeIncome,
		sheetFor(date),
		ledger.WithParty("Employer Inc"),
	)
}

func generateTemplates(start time.Time) []*ledger.PlannedTemplate {
	amount := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []*ledger.PlannedTemplate{
		{
			ID:          "seed-rent",
			Description: "Rent payment",
			Amount:      amount("1450.00"),
			Type:        ledger.TypeExpense,
			Sheet:       sheetFor(start),
			Category:    "Housing",
			Party:       "Landlord",
			StartDate:   start,
			Frequency:   ledger.FreqMonthly,
		},
		{
			ID:          "seed-streaming",
			Description: "Monthly subscription",
			Amount:      amount("15.99"),
			Type:        ledger.TypeExpense,
			Sheet:       sheetFor(start),
			Category:    "Subscriptions",
			Party:       "Netflix",
			StartDate:   start,
			Frequency:   ledger.FreqMonthly,
		},
		{
			ID:          "seed-salary",
			Description: "Salary deposit",
			Amount:      amount("3200.00"),
			Type:        ledger.TypeIncome,
			Sheet:       sheetFor(start),
			Party:       "Employer Inc",
			StartDate:   start.AddDate(0, 0, 24),
			Frequency:   ledger.FreqMonthly,
		},
	}
}

func sheetFor(date time.Time) string {
	return date.Format("January 2006")
}

func randAmount(min, max float64) decimal.Decimal {
	amount := min + rand.Float64()*(max-min)
	return decimal.NewFromFloat(amount).Round(2)
}
