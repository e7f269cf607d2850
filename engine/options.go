package engine

import "log/slog"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Bins    int          // histogram bin count
	Whisker float64      // IQR multiple for box-plot fences
	Logger  *slog.Logger // nil → slog.Default()
}

// WithBins sets the histogram bin count. Values below 1 are ignored.
func WithBins(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.Bins = n
		}
	}
}

// WithWhisker sets the IQR multiple used for box-plot outlier fences.
func WithWhisker(k float64) Option {
	return func(c *config) {
		if k > 0 {
			c.Whisker = k
		}
	}
}

// WithLogger routes engine logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Bins:    DefaultBins,
		Whisker: DefaultWhisker,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
