package lattice

import (
	"io"
	"log/slog"
)

// Boundary selects how generator coordinates outside the data grid are
// handled during construction.
type Boundary int

const (
	// BoundaryClip drops out-of-range coordinates from a generator.
	BoundaryClip Boundary = iota
	// BoundaryStrict fails construction with a CoordinateError.
	BoundaryStrict
	// BoundaryRaw keeps every coordinate exactly as the pattern produces it.
	BoundaryRaw
)

func (b Boundary) String() string {
	switch b {
	case BoundaryClip:
		return "clip"
	case BoundaryStrict:
		return "strict"
	case BoundaryRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Option configures lattice construction.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	boundary Boundary
}

func defaultConfig() config {
	return config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		boundary: BoundaryClip,
	}
}

// WithLogger sets the logger that receives construction events.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBoundary sets the boundary handling mode.
func WithBoundary(b Boundary) Option {
	return func(c *config) {
		c.boundary = b
	}
}
