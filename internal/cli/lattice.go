package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/report"
)

// LatticeOptions holds flags for the lattice command.
type LatticeOptions struct {
	*RootOptions
	Kind string // "" | "x" | "z"
}

// NewLatticeCommand creates the lattice command.
func NewLatticeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LatticeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lattice <distance>",
		Short: "Show the stabilizer generators of a lattice",
		Long: `Build the planar surface code lattice for distance and list its
stabilizer generators with their grid coordinates and data qubit indices.

Examples:
  qsurf lattice 3
  qsurf lattice 5 --kind z
  qsurf lattice 7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLattice(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show generators of this kind (x|z)")

	return cmd
}

func runLattice(opts *LatticeOptions, distanceArg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	var kind lattice.Kind
	if opts.Kind != "" {
		if err := kind.UnmarshalText([]byte(opts.Kind)); err != nil {
			return fail(f, fmt.Errorf("%w: --kind %q must be x or z", ErrInvalidInput, opts.Kind))
		}
	}

	distance, err := parseDistance(distanceArg)
	if err != nil {
		return fail(f, err)
	}
	l, err := lattice.New(distance, lattice.WithLogger(logger))
	if err != nil {
		return fail(f, err)
	}

	view := report.FromLattice(l)
	switch kind {
	case lattice.KindX:
		view.Stabilizers = l.XStabilizers()
	case lattice.KindZ:
		view.Stabilizers = l.ZStabilizers()
	}

	if opts.Format == "json" {
		return f.Success(view)
	}
	writeLatticeText(cmd.OutOrStdout(), l, view)
	return nil
}

func writeLatticeText(w io.Writer, l *lattice.Lattice, view report.LatticeView) {
	fmt.Fprintf(w, "Distance:    %d\n", view.Distance)
	fmt.Fprintf(w, "Data qubits: %d\n", view.NumDataQubits)
	fmt.Fprintf(w, "Ancillas:    %d\n", view.NumAncillaQubits)
	fmt.Fprintf(w, "Register:    %d\n", view.RegisterSize)
	fmt.Fprintf(w, "Generators:  %d X, %d Z\n", len(l.XStabilizers()), len(l.ZStabilizers()))
	fmt.Fprintln(w)

	for _, s := range view.Stabilizers {
		coords := make([]string, len(s.Coords))
		qubits := make([]string, len(s.Coords))
		for i, c := range s.Coords {
			coords[i] = c.String()
			qubits[i] = fmt.Sprintf("q[%d]", l.DataIndex(c))
		}
		fmt.Fprintf(w, "%3d %s  %s  %s\n", s.Index, s.Kind, strings.Join(coords, " "), strings.Join(qubits, ","))
	}
}
