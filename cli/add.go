package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/fidra-app/fidra/ledger"
)

type AddCmd struct {
	Description string `help:"Transaction description." arg:""`
	Amount      string `help:"Transaction amount (positive decimal)." arg:""`
	Type        string `help:"Transaction type." enum:"income,expense" default:"expense"`
	Date        string `help:"Transaction date (yyyy-mm-dd, defaults to today)."`
	Sheet       string `help:"Sheet to book the transaction on." default:"Personal"`
	Status      string `help:"Override the default approval status." enum:",auto,pending,approved,rejected,planned" default:""`
	Category    string `help:"Category tag."`
	Party       string `help:"Counterparty."`
	Reference   string `help:"Bank statement reference."`
	Activity    string `help:"Activity tag."`
	Notes       string `help:"Free-form notes."`
}

func (cmd *AddCmd) Run(ctx *kong.Context, globals *Globals) error {
	amount, err := decimal.NewFromString(cmd.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", cmd.Amount, err)
	}

	typ, err := ledger.ParseTransactionType(cmd.Type)
	if err != nil {
		return err
	}

	date := time.Now().Truncate(24 * time.Hour)
	if cmd.Date != "" {
		if date, err = time.Parse("2006-01-02", cmd.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", cmd.Date, err)
		}
	}

	var opts []ledger.Option
	if cmd.Status != "" {
		status, err := ledger.ParseApprovalStatus(cmd.Status)
		if err != nil {
			return err
		}
		opts = append(opts, ledger.WithStatus(status))
	}
	if cmd.Category != "" {
		opts = append(opts, ledger.WithCategory(cmd.Category))
	}
	if cmd.Party != "" {
		opts = append(opts, ledger.WithParty(cmd.Party))
	}
	if cmd.Reference != "" {
		opts = append(opts, ledger.WithReference(cmd.Reference))
	}
	if cmd.Activity != "" {
		opts = append(opts, ledger.WithActivity(cmd.Activity))
	}
	if cmd.Notes != "" {
		opts = append(opts, ledger.WithNotes(cmd.Notes))
	}

	txn, err := ledger.New(date, cmd.Description, amount, typ, cmd.Sheet, opts...)
	if err != nil {
		return err
	}

	runCtx := context.Background()
	s, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Insert(runCtx, txn); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Added %s (%s %s) to %s",
		txn.Description, txn.Type, txn.Amount.StringFixed(2), txn.Sheet))

	return nil
}
