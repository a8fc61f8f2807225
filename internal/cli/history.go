package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qsurf/internal/report"
	"github.com/roach88/qsurf/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Distance int
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded synthesis runs",
		Long: `List the runs recorded in the history database, oldest first.

Examples:
  qsurf history --db ./qsurf.db
  qsurf history --db ./qsurf.db --distance 5 --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Distance, "distance", 0, "only list runs for this distance")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to list")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	st, err := requireStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd), store.ListOptions{Distance: opts.Distance, Limit: opts.Limit})
	if err != nil {
		return fail(f, fmt.Errorf("%w: failed to list runs: %w", ErrStore, err))
	}
	if runs == nil {
		runs = []store.Run{}
	}

	if opts.Format == "json" {
		return f.Success(runs)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%4d  %s  d=%d  %s%s  %s\n", r.Seq, r.ID, r.Distance, describeLogical(r.Logical), describeName(r.Name), shortHash(r.CircuitHash))
	}
	return nil
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	QASM bool
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Run     store.Run            `json:"run"`
	Circuit store.CircuitSummary `json:"circuit"`
	Report  *report.Report       `json:"report"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run and its circuit",
		Long: `Load a run from the history database and print its circuit.

Examples:
  qsurf show --db ./qsurf.db 0192f0c4-7a5e-7c1d-9b1e-3f9f4c2d8a10
  qsurf show --db ./qsurf.db 0192f0c4-7a5e-7c1d-9b1e-3f9f4c2d8a10 --qasm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.QASM, "qasm", false, "print the stored OpenQASM program")

	return cmd
}

func runShow(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := requireStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, runID)
	if err != nil {
		return fail(f, err)
	}

	if opts.QASM && opts.Format != "json" {
		qasm, err := st.ReadQASM(ctx, run.CircuitHash)
		if err != nil {
			return fail(f, err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), qasm)
		return err
	}

	summary, err := st.ReadCircuitSummary(ctx, run.CircuitHash)
	if err != nil {
		return fail(f, err)
	}
	c, err := st.ReadCircuit(ctx, run.CircuitHash)
	if err != nil {
		return fail(f, err)
	}

	reportOpts := []report.Option{report.WithHash(), report.WithGateCounts(), report.WithLogical(run.Logical...)}
	if opts.QASM {
		reportOpts = append(reportOpts, report.WithQASM())
	}
	rep := report.FromCircuit(c, nil, reportOpts...)
	rep.Distance = run.Distance

	if opts.Format == "json" {
		return f.Success(ShowResult{Run: run, Circuit: summary, Report: &rep})
	}
	writeReportText(cmd.OutOrStdout(), rep, run.ID)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func describeLogical(logical []string) string {
	if len(logical) == 0 {
		return "-"
	}
	return strings.Join(logical, ",")
}

func describeName(name string) string {
	if name == "" {
		return ""
	}
	return "  " + name
}
