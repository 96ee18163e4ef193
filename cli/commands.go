package cli

// Globals defines global flags available to all commands.
type Globals struct {
	DB        string `help:"Path to the ledger database." default:"fidra.db" type:"path"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Search   SearchCmd   `cmd:"" help:"Filter transactions with a boolean query."`
	Add      AddCmd      `cmd:"" help:"Add a transaction to the ledger."`
	Balance  BalanceCmd  `cmd:"" help:"Show current balances."`
	Forecast ForecastCmd `cmd:"" help:"Expand planned templates into future transactions."`
	Export   ExportCmd   `cmd:"" help:"Export transactions to CSV or JSON."`
	Backup   BackupCmd   `cmd:"" help:"Manage database backups."`
	Watch    WatchCmd    `cmd:"" help:"Re-run a query whenever the database changes."`
}
