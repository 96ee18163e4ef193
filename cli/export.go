package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/fidra-app/fidra/export"
	"github.com/fidra-app/fidra/search"
)

type ExportCmd struct {
	Format string   `help:"Output format." enum:"csv,json" default:"csv"`
	Output string   `help:"Write to file instead of stdout." short:"o" type:"path"`
	Sheet  string   `help:"Restrict to a single sheet."`
	Query  []string `arg:"" optional:"" help:"Boolean query to filter exported transactions."`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	if query := strings.Join(cmd.Query, " "); query != "" {
		transactions = search.Filter(transactions, query)
	}

	exporter, err := export.ForFormat(cmd.Format)
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Stdout
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := exporter.Export(w, transactions); err != nil {
		return err
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stdout, fmt.Sprintf("exported %d transaction(s) to %s",
			len(transactions), pathStyle.Render(cmd.Output)))
	}
	return nil
}
