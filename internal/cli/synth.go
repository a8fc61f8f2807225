package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qsurf/internal/metrics"
	"github.com/roach88/qsurf/internal/report"
	"github.com/roach88/qsurf/internal/store"
	"github.com/roach88/qsurf/internal/synth"
)

// SynthOptions holds flags for the synth and logical commands.
type SynthOptions struct {
	*RootOptions
	Name    string
	Logical []string
	QASM    bool
	Compat  synth.Compat
}

// NewSynthCommand creates the synth command.
func NewSynthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SynthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "synth <distance>",
		Short: "Synthesize the stabilizer circuit for a code distance",
		Long: `Build the planar surface code lattice for an odd distance >= 3 and
synthesize its stabilizer-measurement circuit.

Logical operators given with --logical are appended in order. With --db
the circuit and the request are recorded in the history database.

Examples:
  qsurf synth 3
  qsurf synth 5 --logical X --logical Z
  qsurf synth 3 --qasm > d3.qasm
  qsurf synth 7 --db ./qsurf.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name recorded with the run")
	cmd.Flags().StringArrayVar(&opts.Logical, "logical", nil, "logical operator to append (X or Z, repeatable)")
	cmd.Flags().BoolVar(&opts.QASM, "qasm", false, "emit OpenQASM 2.0")
	addCompatFlags(cmd, &opts.Compat)

	return cmd
}

// NewLogicalCommand creates the logical command: synthesize a circuit and
// apply one logical operator to it.
func NewLogicalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SynthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "logical <distance> <X|Z>",
		Short: "Synthesize a circuit and apply a logical operator",
		Long: `Synthesize the circuit for distance and append a logical X or Z.

The axis is case-insensitive. Logical X acts on the first row of data
qubits, logical Z on the first column.

Examples:
  qsurf logical 3 X
  qsurf logical 5 z --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Logical = []string{args[1]}
			return runSynth(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name recorded with the run")
	cmd.Flags().BoolVar(&opts.QASM, "qasm", false, "emit OpenQASM 2.0")
	addCompatFlags(cmd, &opts.Compat)

	return cmd
}

func addCompatFlags(cmd *cobra.Command, compat *synth.Compat) {
	cmd.Flags().BoolVar(&compat.ValueLookupAncilla, "legacy-ancilla", false, "assign ancillas by first structurally equal generator")
	cmd.Flags().BoolVar(&compat.KindDispatch, "kind-dispatch", false, "choose X/Z measurement by generator kind instead of weight")
	cmd.Flags().BoolVar(&compat.ZStrideToRegister, "legacy-z-stride", false, "walk logical Z over the whole register")
}

func runSynth(opts *SynthOptions, distanceArg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	rec := metrics.NewRecorder()

	rep, runID, err := synthesize(commandContext(cmd), opts, distanceArg, logger, rec)
	if flushErr := flushMetrics(opts.RootOptions, rec, logger); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		return fail(f, err)
	}

	if opts.Format == "json" {
		return f.SuccessRun(rep, runID)
	}
	if opts.QASM {
		_, err := io.WriteString(cmd.OutOrStdout(), rep.QASM)
		return err
	}
	writeReportText(cmd.OutOrStdout(), rep, runID)
	return nil
}

func synthesize(ctx context.Context, opts *SynthOptions, distanceArg string, logger *slog.Logger, rec *metrics.Recorder) (report.Report, string, error) {
	distance, err := parseDistance(distanceArg)
	if err != nil {
		return report.Report{}, "", err
	}

	synthOpts := []synth.Option{
		synth.WithLogger(logger),
		synth.WithObserver(rec),
		synth.WithCompat(opts.Compat),
	}
	l, c, err := synth.Generate(distance, synthOpts...)
	if err != nil {
		return report.Report{}, "", err
	}
	for _, token := range opts.Logical {
		if err := synth.ApplyLogicalToken(c, token, l, synthOpts...); err != nil {
			return report.Report{}, "", err
		}
	}

	reportOpts := []report.Option{report.WithHash(), report.WithGateCounts(), report.WithLogical(opts.Logical...)}
	if opts.QASM {
		reportOpts = append(reportOpts, report.WithQASM())
	}
	rep := report.FromCircuit(c, l, reportOpts...)

	st, err := openStore(opts.RootOptions)
	if err != nil || st == nil {
		return rep, "", err
	}
	defer st.Close()

	run, err := st.Record(ctx, store.Run{
		ID:       opts.ids().Generate(),
		Name:     opts.Name,
		Distance: distance,
		Logical:  opts.Logical,
		Compat:   opts.Compat,
	}, c)
	if err != nil {
		return rep, "", fmt.Errorf("%w: failed to record run: %w", ErrStore, err)
	}
	logger.Info("run recorded", "run_id", run.ID, "circuit_hash", run.CircuitHash)
	return rep, run.ID, nil
}

// writeReportText renders a report for terminals.
func writeReportText(w io.Writer, rep report.Report, runID string) {
	fmt.Fprintf(w, "Distance:   %d\n", rep.Distance)
	fmt.Fprintf(w, "Qubits:     %d\n", rep.QubitCount)
	fmt.Fprintf(w, "Depth:      %d\n", rep.Depth)

	counts := make([]string, 0, len(rep.GateCounts))
	for _, g := range rep.SortedGates() {
		counts = append(counts, fmt.Sprintf("%s=%d", g, rep.GateCounts[g]))
	}
	fmt.Fprintf(w, "Operations: %d (%s)\n", len(rep.Instructions), strings.Join(counts, " "))
	if len(rep.Logical) > 0 {
		fmt.Fprintf(w, "Logical:    %s\n", strings.Join(rep.Logical, " "))
	}
	if rep.Hash != "" {
		fmt.Fprintf(w, "Hash:       %s\n", rep.Hash)
	}
	if runID != "" {
		fmt.Fprintf(w, "Run:        %s\n", runID)
	}
	fmt.Fprintln(w, "Instructions:")
	for _, in := range rep.Instructions {
		fmt.Fprintf(w, "  %s\n", in)
	}
}
