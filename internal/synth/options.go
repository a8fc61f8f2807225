package synth

import (
	"io"
	"log/slog"
)

// Compat selects behaviours that differ from the defaults.
type Compat struct {
	// ValueLookupAncilla assigns each generator the ancilla of the first
	// generator with the same shape instead of its own list position.
	ValueLookupAncilla bool `json:"value_lookup_ancilla,omitempty" yaml:"value_lookup_ancilla,omitempty"`
	// KindDispatch picks the measurement pattern from the generator's Kind.
	// Without it every weight-4 generator, the Z crosses included, gets the
	// X pattern and only generators of other weights get the Z pattern.
	KindDispatch bool `json:"kind_dispatch,omitempty" yaml:"kind_dispatch,omitempty"`
	// ZStrideToRegister walks the logical Z stride up to NumQubits instead
	// of stopping at the last data qubit.
	ZStrideToRegister bool `json:"z_stride_to_register,omitempty" yaml:"z_stride_to_register,omitempty"`
}

// Any reports whether any compatibility behaviour is enabled.
func (c Compat) Any() bool {
	return c.ValueLookupAncilla || c.KindDispatch || c.ZStrideToRegister
}

// Option configures Synthesize and ApplyLogical.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	observer Observer
	compat   Compat
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for synthesis events. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer for the call. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithCompat replaces the compatibility settings.
func WithCompat(compat Compat) Option {
	return func(c *config) {
		c.compat = compat
	}
}

// WithValueLookupAncilla enables Compat.ValueLookupAncilla.
func WithValueLookupAncilla() Option {
	return func(c *config) {
		c.compat.ValueLookupAncilla = true
	}
}

// WithKindDispatch enables Compat.KindDispatch.
func WithKindDispatch() Option {
	return func(c *config) {
		c.compat.KindDispatch = true
	}
}

// WithLegacyZStride enables Compat.ZStrideToRegister.
func WithLegacyZStride() Option {
	return func(c *config) {
		c.compat.ZStrideToRegister = true
	}
}
