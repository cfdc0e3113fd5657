package payroll

import "go.uber.org/zap"

type options struct {
	logger    *zap.Logger
	bandWidth int
	identity  NodeIdentity
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBandWidth sets the salary band width, one of AllowedBandWidths.
func WithBandWidth(width int) Option {
	return func(o *options) { o.bandWidth = width }
}

func WithNodeIdentity(identity NodeIdentity) Option {
	return func(o *options) { o.identity = identity }
}

func newOptions(opts []Option) options {
	o := options{
		logger:    zap.NewNop(),
		bandWidth: DefaultBandWidth,
		identity:  NodesByLabel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
