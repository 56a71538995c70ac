package simplex

import (
	"io"
	"log/slog"
)

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the structured logger. Pivots are logged at Debug, phase
// changes and the outcome at Info.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxIterations bounds the number of pivots and cuts. Zero, the default,
// means no bound: ties are broken by lowest index only, so a degenerate
// problem may cycle.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.maxIter = n
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
