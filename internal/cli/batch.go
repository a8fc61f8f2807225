package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qsurf/internal/batch"
	"github.com/roach88/qsurf/internal/metrics"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Parallelism int // overrides the job file when > 0
}

// BatchResult is the JSON payload of the batch command.
type BatchResult struct {
	Results   []batch.Result `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Total     int            `json:"total"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <job-file>",
		Short: "Synthesize every request in a YAML or CUE job file",
		Long: `Load a job file (.yaml, .yml or .cue) and synthesize all of its
requests concurrently. Results are reported in request order; a failing
request does not stop the others.

Exit codes:
  0 - All requests succeeded
  1 - One or more requests failed
  2 - Command error (unreadable or invalid job file, database error)

Examples:
  qsurf batch jobs/nightly.yaml
  qsurf batch jobs/sweep.cue --parallelism 8 --db ./qsurf.db
  qsurf batch jobs/sweep.cue --metrics-file ./qsurf.prom --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Parallelism, "parallelism", "p", 0, "maximum concurrent requests (default: job file, then GOMAXPROCS)")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	job, err := batch.Load(path)
	if err != nil {
		return fail(f, fmt.Errorf("failed to load job: %w", err))
	}
	if opts.Parallelism > 0 {
		job.Parallelism = opts.Parallelism
	}
	f.VerboseLog("Loaded %d request(s) from %s", len(job.Requests), path)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return fail(f, err)
	}
	if st != nil {
		defer st.Close()
	}

	rec := metrics.NewRecorder()
	runner := &batch.Runner{
		Logger:   logger,
		Observer: rec,
		Store:    st,
		IDs:      opts.ids(),
	}

	ctx := commandContext(cmd)
	results, err := runner.Run(ctx, job)
	if err != nil {
		return fail(f, fmt.Errorf("batch aborted: %w", err))
	}
	if err := flushMetrics(opts.RootOptions, rec, logger); err != nil {
		return fail(f, err)
	}

	summary := BatchResult{Results: results, Total: len(results)}
	for _, r := range results {
		if r.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if opts.Format == "json" {
		return outputBatchJSON(cmd, summary)
	}
	return outputBatchText(cmd, summary)
}

func outputBatchJSON(cmd *cobra.Command, summary BatchResult) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if summary.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrorCode(firstFailure(summary.Results)),
			Message: fmt.Sprintf("%d request(s) failed", summary.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d request(s) failed", summary.Failed), reported: true}
	}
	return nil
}

func outputBatchText(cmd *cobra.Command, summary BatchResult) error {
	w := cmd.OutOrStdout()

	for _, r := range summary.Results {
		if !r.OK() {
			fmt.Fprintf(w, "✗ %s\n", r.Request.Label())
			fmt.Fprintf(w, "  [%s] %s\n", CodeName(ErrorCode(r.Err)), r.Error)
			continue
		}
		line := fmt.Sprintf("✓ %s  qubits=%d depth=%d ops=%d hash=%s",
			r.Request.Label(), r.Report.QubitCount, r.Report.Depth, len(r.Report.Instructions), shortHash(r.Report.Hash))
		if r.RunID != "" {
			line += " run=" + r.RunID
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch Summary: %d succeeded, %d failed, %d total\n", summary.Succeeded, summary.Failed, summary.Total)

	if summary.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d request(s) failed", summary.Failed), reported: true}
	}
	return nil
}

func firstFailure(results []batch.Result) error {
	for _, r := range results {
		if !r.OK() {
			return r.Err
		}
	}
	return nil
}

// shortHash trims a content hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
