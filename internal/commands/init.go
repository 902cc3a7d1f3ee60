package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/clientbook/clientbook/internal/config"
	"github.com/clientbook/clientbook/internal/store"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, opts *globalOptions, force bool) error {
	if _, err := os.Stat(opts.configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	saved := config.Default()
	if opts.dbPath != "" {
		saved.Database.Path = opts.dbPath
	}
	if err := config.Save(opts.configPath, saved); err != nil {
		return err
	}

	cfg := *saved
	cfg.ApplyEnv()
	opts.applyFlags(&cfg)
	ctx := opts.withLogger(cmd, &cfg)
	if err := migrate(ctx, &cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized clientbook: config %s, %s database %s\n",
		opts.configPath, cfg.Database.Driver, describeDatabase(cfg.Database))
	return nil
}

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx := opts.withLogger(cmd, cfg)
			if err := migrate(ctx, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s %s)\n", cfg.Database.Driver, describeDatabase(cfg.Database))
			return nil
		},
	}
}

func migrate(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Migrate(ctx)
}

// describeDatabase names the database without leaking the password.
func describeDatabase(db config.DatabaseConfig) string {
	if db.Driver == "postgres" {
		return fmt.Sprintf("%s@%s:%d/%s", db.User, db.Host, db.Port, db.Name)
	}
	return db.Path
}
