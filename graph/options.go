package graph

import "runtime"

// Option configures ConnectByEditDistance.
type Option func(*options)

type options struct {
	workers int
}

func defaultOptions() options {
	return options{workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers bounds the number of goroutines comparing word pairs.
// Values below one are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}
