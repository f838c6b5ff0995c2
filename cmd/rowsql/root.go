package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vegasq/rowsql/internal/config"
	"github.com/vegasq/rowsql/internal/logger"
	"github.com/vegasq/rowsql/output"
	"github.com/vegasq/rowsql/query"
	"github.com/vegasq/rowsql/reader"
)

// Exit codes
const (
	exitValid   = 0
	exitError   = 1
	exitInvalid = 2
)

// errInvalidQuery is returned by the root command when the query was
// evaluated but judged invalid
var errInvalidQuery = errors.New("query is incorrect")

// loaderFs is the filesystem tables are loaded from
var loaderFs = afero.NewOsFs()

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rowsql [query]",
		Short: "Evaluate a single-table SELECT query",
		Long: `rowsql evaluates a SELECT query with an optional WHERE clause against one table.

The table is loaded from --source (parquet, csv, json, jsonl or sqlite) or,
without a source, is the built-in "student" table. When no query argument
is given, one line is read from standard input.

Exit status is 0 for a valid query, 2 for an invalid one and 1 on errors.`,
		Example: `  rowsql "SELECT * FROM student WHERE major = 'CS'"
  rowsql -s data/student.csv -f table "SELECT name FROM student"
  echo "SELECT id FROM people WHERE name != 'Bob'" | rowsql -s people.db`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			var sql string
			if len(args) == 1 {
				sql = args[0]
			} else {
				sql, err = readQuery(stdin, stderr)
				if err != nil {
					return err
				}
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, stderr)
			return runQuery(cmd.Context(), cfg, sql, log, stdout, stderr)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

// readQuery prompts for and reads one line of input.
func readQuery(stdin io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprintln(prompt, "Enter your SQL query:")
	fmt.Fprint(prompt, "> ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read query: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// runQuery loads the configured table, evaluates sql against it and writes
// the result rows to stdout and the summary to stderr.
func runQuery(ctx context.Context, cfg *config.Config, sql string, log *slog.Logger, stdout, stderr io.Writer) error {
	log = log.With("query_id", uuid.NewString())
	if cfg.File != "" {
		log.Debug("using config file", "path", cfg.File)
	}

	formatter, err := output.New(cfg.Format, stdout)
	if err != nil {
		return err
	}

	table, err := reader.NewLoader(loaderFs, log).Load(ctx, reader.Source{Path: cfg.Source, Table: cfg.Table})
	if err != nil {
		return err
	}

	log.Debug("evaluating query", "table", table.Name, "query", sql)
	res := query.Run(table, sql)
	if res.Err != nil {
		log.Info("query rejected", "error", res.Err)
	}

	fmt.Fprintln(stderr, "\nQuery Output:")
	if err := formatter.Format(res.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	if err := output.Summary(stderr, res, !cfg.NoColor); err != nil {
		return err
	}

	log.Info("query evaluated", "valid", res.Valid, "rows", len(res.Rows))
	if !res.Valid {
		return errInvalidQuery
	}
	return nil
}

// execute runs the root command and maps its outcome to an exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitValid
	case errors.Is(err, errInvalidQuery):
		return exitInvalid
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
