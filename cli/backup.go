package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/fidra-app/fidra/backup"
)

type BackupCmd struct {
	Create BackupCreateCmd `cmd:"" help:"Create a timestamped backup of the ledger database."`
	List   BackupListCmd   `cmd:"" help:"List existing backups, newest first."`
	Prune  BackupPruneCmd  `cmd:"" help:"Delete all but the newest backups."`
}

type BackupCreateCmd struct {
	Dir string `help:"Directory to store backups in." default:"backups" type:"path"`
}

func (cmd *BackupCreateCmd) Run(ctx *kong.Context, globals *Globals) error {
	b, err := backup.Create(globals.DB, cmd.Dir)
	if err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("created backup %s (%s)",
		pathStyle.Render(b.Path), formatSize(b.Size)))
	return nil
}

type BackupListCmd struct {
	Dir string `help:"Directory to list backups from." default:"backups" type:"path"`
}

func (cmd *BackupListCmd) Run(ctx *kong.Context) error {
	backups, err := backup.List(cmd.Dir)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		printInfof(ctx.Stdout, "no backups in %s", cmd.Dir)
		return nil
	}

	for _, b := range backups {
		fmt.Fprintf(ctx.Stdout, "%s  %s  %s\n",
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			mutedStyle.Render(formatSize(b.Size)),
			pathStyle.Render(b.Path),
		)
	}
	printInfof(ctx.Stdout, "%d backup(s)", len(backups))
	return nil
}

type BackupPruneCmd struct {
	Dir  string `help:"Directory to prune backups in." default:"backups" type:"path"`
	Keep int    `help:"Number of newest backups to keep." default:"5"`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (cmd *BackupPruneCmd) Run(ctx *kong.Context) error {
	backups, err := backup.List(cmd.Dir)
	if err != nil {
		return err
	}
	if len(backups) <= cmd.Keep {
		printInfof(ctx.Stdout, "nothing to prune, %d backup(s) within keep limit", len(backups))
		return nil
	}

	doomed := len(backups) - cmd.Keep
	if !cmd.Yes {
		confirmed, err := promptYesNo(fmt.Sprintf("Delete %d backup(s) from %s?", doomed, cmd.Dir))
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stdout, "aborted")
			return nil
		}
	}

	pruned, err := backup.Prune(cmd.Dir, cmd.Keep)
	if err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("pruned %d backup(s), kept %d", len(pruned), cmd.Keep))
	return nil
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
