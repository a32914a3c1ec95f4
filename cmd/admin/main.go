// Command admin runs maintenance operations against the configured
// Postgres store.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JonMunkholm/bizdash/internal/admin"
	"github.com/JonMunkholm/bizdash/internal/config"
	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Dashboard maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newResetCmd())

	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func newResetCmd() *cobra.Command {
	var (
		databaseURL string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace every business and user with freshly generated rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every row; pass --yes to confirm")
			}

			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if databaseURL != "" {
				cfg.Database.URL = databaseURL
			}
			if cfg.Database.InMemory() {
				return fmt.Errorf("no database configured: set DATABASE_URL or --database-url")
			}
			slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format))

			ctx := cmd.Context()
			st, err := store.Open(ctx, cfg.Database, cfg.Table)
			if err != nil {
				return err
			}
			defer st.Close()

			seed := store.NewMemory(store.SeedOptions{
				Seed:       cfg.Table.Seed,
				Businesses: cfg.Table.SeedRows,
				Users:      cfg.Table.SeedUsers,
				Now:        time.Now(),
			})
			n, err := admin.Reset(ctx, st, seed)
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %d negocios cargados\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL; overrides DATABASE_URL")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
