package workerpool

// Config holds environment-driven pool settings.
type Config struct {
	Workers int `env:"WORKERPOOL_WORKERS" envDefault:"4"` // Workers is the fixed number of worker goroutines.
}

// NewFromConfig creates a Pool sized by cfg. A non-positive worker count falls
// back to the New default.
func NewFromConfig(cfg Config, opts ...Option) *Pool {
	return New(cfg.Workers, opts...)
}
