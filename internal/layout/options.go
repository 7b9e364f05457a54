package layout

import "log/slog"

// Default overflow reserves. When sized columns overflow the parent and auto
// columns exist, sized columns are shrunk to leave this much for the auto ones.
const (
	DefaultPercentReserve = 10.0
	DefaultPixelReserve   = 100.0
)

type options struct {
	percentReserve float64
	pixelReserve   float64
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		percentReserve: DefaultPercentReserve,
		pixelReserve:   DefaultPixelReserve,
	}
}

// Option configures a Resolver.
type Option func(*options)

// WithPercentReserve sets the percentage points kept for auto columns when
// percentage columns exceed 100%. Negative values are treated as 0.
func WithPercentReserve(p float64) Option {
	return func(o *options) {
		o.percentReserve = max(p, 0)
	}
}

// WithPixelReserve sets the pixels kept for auto columns when sized columns
// exceed the parent width. Negative values are treated as 0.
func WithPixelReserve(px float64) Option {
	return func(o *options) {
		o.pixelReserve = max(px, 0)
	}
}

// WithLogger sets the logger malformed column widths are reported to.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
