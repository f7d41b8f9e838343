package dotparser

import "go.uber.org/zap"

// Option configures a parse.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger traces parser decisions (speculative rollbacks, kind detection)
// at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
