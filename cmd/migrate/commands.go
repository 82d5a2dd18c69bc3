package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/config"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the flags shared by every subcommand
type cli struct {
	migrationsPath string
	logLevel       string
	log            *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "ClusterWeb database migration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:      c.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.migrationsPath, "path", "", "migrations directory (default: database.migrations_path)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		c.upCmd(),
		c.downCmd(),
		c.stepsCmd(),
		c.gotoCmd(),
		c.versionCmd(),
		c.forceCmd(),
		c.dropCmd(),
		c.createCmd(),
		c.listCmd(),
	)
	return root
}

// resolvePath prefers --path, then the configured directory
func (c *cli) resolvePath(cfg *config.Config) (string, error) {
	path := c.migrationsPath
	if path == "" {
		path = cfg.Database.MigrationsPath
	}
	return filepath.Abs(path)
}

// withMigrator connects to the configured postgres database and runs fn
func (c *cli) withMigrator(fn func(m *migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres; driver %q uses auto-migrate", cfg.Database.Driver)
	}
	path, err := c.resolvePath(cfg)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.log.Info("Migration CLI started", zap.String("migrations_path", path))
	m, err := migration.New(db, path, c.log)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func (c *cli) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator((*migration.Migrator).Up)
		},
	}
}

func (c *cli) downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator((*migration.Migrator).Down)
		},
	}
}

func (c *cli) stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "steps <n>",
		Aliases: []string{"step"},
		Short:   "Apply n migrations (positive = up, negative = down)",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
		},
	}
}

func (c *cli) gotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(version)) })
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					c.log.Info("No migrations applied")
					return nil
				}
				c.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			})
		},
	}
}

func (c *cli) forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the version without running migrations (clears a dirty state)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
		},
	}
}

func (c *cli) dropCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every database object (destroys all data)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !confirm {
				return errors.New("drop cancelled: pass --confirm to drop all database objects")
			}
			return c.withMigrator((*migration.Migrator).Drop)
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm dropping all database objects")
	return cmd
}

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create a new up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := c.localPath()
			if err != nil {
				return err
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(path, args[0], description)
			if err != nil {
				return err
			}
			c.log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the migrations found on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.localPath()
			if err != nil {
				return err
			}
			entries, err := migration.ListMigrations(os.DirFS(path))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				c.log.Info("No migrations found", zap.String("path", path))
				return nil
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				status := ""
				if !e.HasDown {
					status = " (no down)"
				}
				fmt.Fprintf(out, "  - %s%s\n", e.Base(), status)
			}
			return nil
		},
	}
}

// localPath resolves the migrations directory for commands that only touch files
func (c *cli) localPath() (string, error) {
	if c.migrationsPath != "" {
		return filepath.Abs(c.migrationsPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return c.resolvePath(cfg)
}
