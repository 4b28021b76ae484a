package serialization

import "log/slog"

// Options configures readers and writers.
type Options struct {
	Logger          *slog.Logger    // Structured logger; discards by default
	ValidationLevel ValidationLevel // Header strictness
	MaxHeaderSize   int             // Largest accepted header, in bytes
	MaxAllocBytes   int64           // Largest payload allocation; zero means unlimited
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the defaults: strict validation, NumPy's header limit,
// no allocation limit and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Logger:          slog.New(slog.DiscardHandler),
		ValidationLevel: ValidationStrict,
		MaxHeaderSize:   DefaultMaxHeaderSize,
	}
}

// WithLogger configures structured logging for codec operations.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithValidationLevel sets how strictly the header dictionary is checked.
func WithValidationLevel(level ValidationLevel) Option {
	return func(o *Options) {
		o.ValidationLevel = level
	}
}

// WithMaxHeaderSize sets the largest header length a reader accepts.
func WithMaxHeaderSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxHeaderSize = n
		}
	}
}

// WithMaxAllocBytes caps the payload buffer a reader may allocate.
// Larger arrays fail with an AllocationError before any payload is read.
func WithMaxAllocBytes(n int64) Option {
	return func(o *Options) {
		o.MaxAllocBytes = n
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
