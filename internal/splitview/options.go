package splitview

// Callbacks are fired by Engine on handle interaction. Nil callbacks are
// skipped. They carry no payload; read the engine state if needed.
type Callbacks struct {
	OnGrab    func()
	OnDrag    func()
	OnRelease func()
}

// Option configures Fit and Engine.
type Option func(*options)

type options struct {
	clampDistribution bool
	callbacks         Callbacks
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithClampedDistribution makes the distribution pass pin views that fall
// outside their bounds and redistribute the rest. Without it, evenly shared
// or rescaled sizes are kept even when they violate a view's min/max.
func WithClampedDistribution() Option {
	return func(o *options) {
		o.clampDistribution = true
	}
}

// WithCallbacks installs grab/drag/release notifications.
func WithCallbacks(cb Callbacks) Option {
	return func(o *options) {
		o.callbacks = cb
	}
}
