// Command export writes a listing as CSV, applying the same search and
// sort a visitor would.
//
//	export --table negocios --search ana --sort value --dir desc --out negocios.csv
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/config"
	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/session"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	table       string
	search      string
	sort        string
	dir         string
	searchType  string
	criteria    string
	out         string
	databaseURL string
	list        bool
	timeout     time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export a dashboard listing as CSV",
		Long:          "Export loads a listing from the configured store, applies a search and sort, and writes every matching row as CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return listTables(cmd.OutOrStdout())
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.table, "table", "t", tables.BusinessesKey, "listing to export")
	f.StringVarP(&opts.search, "search", "s", "", "global search query")
	f.StringVar(&opts.sort, "sort", "", "column key to sort by")
	f.StringVar(&opts.dir, "dir", "asc", "sort direction: asc or desc")
	f.StringVar(&opts.searchType, "type", string(business.SearchAgent), "business search field: agent, client or id")
	f.StringVar(&opts.criteria, "criteria", "", "business search criteria")
	f.StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	f.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL; overrides DATABASE_URL")
	f.BoolVar(&opts.list, "list", false, "list the available listings and exit")
	f.DurationVar(&opts.timeout, "timeout", time.Minute, "maximum time to load and export")
	return cmd
}

func listTables(w io.Writer) error {
	for _, def := range tables.All() {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", def.Key, def.Description); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if opts.databaseURL != "" {
		cfg.Database.URL = opts.databaseURL
	}
	slogger := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	st, err := store.Open(ctx, cfg.Database, cfg.Table)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions := session.NewManager(session.Options{Env: tables.Env{Store: st}})
	h, err := sessions.Mount(ctx, opts.table)
	if err != nil {
		return err
	}
	if err := applyOptions(ctx, h, opts); err != nil {
		return err
	}

	if opts.out == "" {
		if err := h.Export(stdout); err != nil {
			return fmt.Errorf("export %s: %w", opts.table, err)
		}
	} else if err := exportFile(h, opts.out); err != nil {
		return fmt.Errorf("export %s: %w", opts.table, err)
	}

	rows := h.Model().Controls.FilteredCount
	slogger.Debug("export finished", "table", opts.table, "rows", rows, "out", opts.out)
	if opts.out != "" {
		color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %d filas exportadas a %s\n", rows, opts.out)
	}
	return nil
}

func exportFile(h tables.Handle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := h.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// applyOptions puts h in the state described by the flags.
func applyOptions(ctx context.Context, h tables.Handle, opts options) error {
	if opts.criteria != "" {
		fs, ok := h.(tables.FormSearcher)
		if !ok {
			return fmt.Errorf("--criteria is not supported by %s", opts.table)
		}
		searchType, err := business.ParseSearchType(opts.searchType)
		if err != nil {
			return err
		}
		if err := fs.ApplySearch(ctx, business.SearchParams{Type: searchType, Criteria: opts.criteria}); err != nil {
			return err
		}
	}

	h.Search(opts.search)

	if opts.sort != "" {
		dir := datatable.ParseSortDirection(opts.dir)
		if dir == datatable.SortNone {
			return fmt.Errorf("invalid --dir %q: want asc or desc", opts.dir)
		}
		tables.SortTo(h, opts.sort, dir)
		if col, got := h.SortState(); col != opts.sort || got != dir {
			return fmt.Errorf("column %q of %s cannot be sorted", opts.sort, opts.table)
		}
	}
	return nil
}
