package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clientbook/clientbook/internal/buildinfo"
	"github.com/clientbook/clientbook/internal/clients"
	"github.com/clientbook/clientbook/internal/config"
	"github.com/clientbook/clientbook/internal/logger"
	"github.com/clientbook/clientbook/internal/payments"
	"github.com/clientbook/clientbook/internal/store"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dbPath     string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "clientbook",
		Short:   "Client balances and payment records",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "config file")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database file (overrides the config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newMigrateCommand(opts),
		newClientCommand(opts),
		newPaymentCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
	)

	return rootCmd
}

// app is everything a command needs once the config is loaded and the
// database is open.
type app struct {
	cfg      *config.Config
	store    *store.Store
	clients  *clients.Service
	payments *payments.Service
}

func (a *app) Close() error {
	return a.store.Close()
}

// loadConfig reads the config file (optional) and applies --db.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	o.applyFlags(cfg)
	return cfg, nil
}

func (o *globalOptions) applyFlags(cfg *config.Config) {
	if o.dbPath != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.Path = o.dbPath
	}
	if o.verbose {
		cfg.Log.Level = zerolog.DebugLevel.String()
	}
}

// open loads the config, opens and migrates the database, and returns a
// context carrying the command logger.
func (o *globalOptions) open(cmd *cobra.Command) (context.Context, *app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	ctx := o.withLogger(cmd, cfg)

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	a := &app{cfg: cfg, store: st, clients: clients.NewService(st)}
	a.payments = payments.NewService(st, rulesOf(a))
	return ctx, a, nil
}

func (o *globalOptions) withLogger(cmd *cobra.Command, cfg *config.Config) context.Context {
	log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Console)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log.Debug().Str("driver", cfg.Database.Driver).Str("command", cmd.CommandPath()).Msg("starting")
	return logger.WithContext(ctx, log)
}

// withApp opens the database for the duration of fn.
func (o *globalOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, a, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
