package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alecthomas/kong"

	"github.com/fidra-app/fidra/ledger"
)

type ForecastCmd struct {
	Months      int  `help:"Forecast horizon in months." default:"3"`
	IncludePast bool `help:"Include occurrences before today."`
}

func (cmd *ForecastCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", cmd.Months)
	}

	runCtx := context.Background()

	s, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	templates, err := s.ListTemplates(runCtx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		printInfof(ctx.Stdout, "no planned templates")
		return nil
	}

	today := time.Now().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, cmd.Months, 0)

	from := today
	if cmd.IncludePast {
		from = time.Time{}
	}

	var instances []*ledger.Transaction
	for _, tmpl := range templates {
		instances = append(instances, tmpl.Expand(from, horizon)...)
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Date.Before(instances[j].Date)
	})

	renderTransactions(ctx.Stdout, instances)
	printInfof(ctx.Stdout, "%d planned transaction(s) from %d template(s) through %s",
		len(instances), len(templates), horizon.Format("2006-01-02"))

	return nil
}
