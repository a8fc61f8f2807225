package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/qsurf/internal/metrics"
	"github.com/roach88/qsurf/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	DB          string // optional SQLite history database
	MetricsFile string // optional Prometheus textfile output

	// IDs overrides the run ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDs store.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qsurf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qsurf",
		Short: "qsurf - planar surface code circuits",
		Long: `Build planar surface code lattices and synthesize their
stabilizer-measurement circuits.

Circuits can be exported as OpenQASM 2.0, recorded in a SQLite history
database and checked against YAML scenarios.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to SQLite history database")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	cmd.AddCommand(NewSynthCommand(opts))
	cmd.AddCommand(NewLogicalCommand(opts))
	cmd.AddCommand(NewLatticeCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the diagnostic logger. Logs go to w (stderr in
// practice) so they never mix with JSON output; without --verbose only
// warnings and errors are shown.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func (o *RootOptions) ids() store.IDGenerator {
	if o.IDs != nil {
		return o.IDs
	}
	return store.UUIDv7Generator{}
}

// openStore opens the history database when --db is set. It returns a nil
// store otherwise.
func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.DB == "" {
		return nil, nil
	}
	st, err := store.Open(opts.DB)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStore, err)
	}
	return st, nil
}

// requireStore is openStore for commands that cannot run without --db.
func requireStore(opts *RootOptions) (*store.Store, error) {
	if opts.DB == "" {
		return nil, fmt.Errorf("%w: --db is required", ErrInvalidInput)
	}
	return openStore(opts)
}

// flushMetrics writes rec to --metrics-file when set.
func flushMetrics(opts *RootOptions, rec *metrics.Recorder, logger *slog.Logger) error {
	if opts.MetricsFile == "" {
		return nil
	}
	if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	logger.Debug("metrics written", "path", opts.MetricsFile)
	return nil
}
