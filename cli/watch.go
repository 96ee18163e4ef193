package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/fidra-app/fidra/search"
)

type WatchCmd struct {
	Sheet string   `help:"Restrict to a single sheet."`
	Query []string `arg:"" optional:"" help:"Boolean query to re-run on each change."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	query := strings.Join(cmd.Query, " ")

	if err := cmd.render(runCtx, ctx, globals, query); err != nil {
		printError(ctx.Stderr, err.Error())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// SQLite writes sidecar files (-wal, -journal) next to the database, so
	// watch the containing directory and filter events by prefix.
	dir := filepath.Dir(globals.DB)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	printInfof(ctx.Stdout, "watching %s, press ctrl-c to stop", globals.DB)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	// Debounce timer - a single logical write often arrives as several events
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasPrefix(filepath.Base(event.Name), filepath.Base(globals.DB)) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				if err := cmd.render(runCtx, ctx, globals, query); err != nil {
					printError(ctx.Stderr, err.Error())
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())
		}
	}
}

func (cmd *WatchCmd) render(runCtx context.Context, ctx *kong.Context, globals *Globals, query string) error {
	s, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	transactions, err := s.List(runCtx, cmd.Sheet)
	if err != nil {
		return err
	}

	matched := search.Filter(transactions, query)

	renderTransactions(ctx.Stdout, matched)
	printInfof(ctx.Stdout, "%d of %d transaction(s) at %s",
		len(matched), len(transactions), time.Now().Format("15:04:05"))

	return nil
}
