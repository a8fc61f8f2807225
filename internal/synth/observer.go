package synth

import (
	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

// Observer receives synthesis events. Implementations must be safe for
// concurrent use when shared between calls.
type Observer interface {
	Synthesized(l *lattice.Lattice, c *circuit.Circuit)
	LogicalApplied(axis Axis, l *lattice.Lattice, appended int)
	Rejected(err error)
}

type nopObserver struct{}

func (nopObserver) Synthesized(*lattice.Lattice, *circuit.Circuit) {}
func (nopObserver) LogicalApplied(Axis, *lattice.Lattice, int)     {}
func (nopObserver) Rejected(error)                                 {}

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) Synthesized(l *lattice.Lattice, c *circuit.Circuit) {
	for _, o := range m {
		o.Synthesized(l, c)
	}
}

func (m multiObserver) LogicalApplied(axis Axis, l *lattice.Lattice, appended int) {
	for _, o := range m {
		o.LogicalApplied(axis, l, appended)
	}
}

func (m multiObserver) Rejected(err error) {
	for _, o := range m {
		o.Rejected(err)
	}
}
