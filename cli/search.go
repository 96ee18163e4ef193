package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/fidra-app/fidra/search"
	"github.com/fidra-app/fidra/telemetry"
)

type SearchCmd struct {
	Query   []string `help:"Boolean query, e.g. '(coffee OR fuel) AND NOT pending'." arg:"" optional:""`
	Sheet   string   `help:"Restrict the search to one sheet."`
	Explain bool     `help:"Show how the query is tokenized and ordered instead of results."`
}

func (cmd *SearchCmd) Run(ctx *kong.Context, globals *Globals) error {
	query := strings.Join(cmd.Query, " ")

	if cmd.Explain {
		tokens, rpn := search.Explain(query)
		printInfof(ctx.Stdout, "tokens")
		repr.Println(tokens)
		printInfof(ctx.Stdout, "postfix")
		repr.Println(rpn)
		return nil
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
	}

	timer := telemetry.FromContext(runCtx).Start(fmt.Sprintf("search %s", filepath.Base(globals.DB)))

	s, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	loadTimer := timer.Child("load transactions")
	transactions, err := s.List(runCtx, cmd.Sheet)
	loadTimer.End()
	if err != nil {
		return err
	}

	filterTimer := timer.Child("filter")
	results := search.Filter(transactions, query)
	filterTimer.End()

	renderTransactions(ctx.Stdout, results)
	printInfof(ctx.Stdout, "%d of %d transaction(s)", len(results), len(transactions))

	timer.End()
	if collector != nil {
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr)
	}

	return nil
}
