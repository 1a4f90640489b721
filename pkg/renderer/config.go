package renderer

import "runtime"

// Config contains tracing configuration
type Config struct {
	Workers int     // Number of parallel workers per frame (0 = use CPU count)
	MaxT    float64 // Far end of the accepted hit window
	MinT    float64 // Near end of the accepted hit window, avoids self-intersection
	Depth   int     // Depth budget for primary rays
	Jitter  float64 // Standard deviation of the per-pixel jitter in pixels (0 = off)
	Seed    int64   // Base seed for the per-worker generators
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Workers: 0,
		MaxT:    1000.0,
		MinT:    0.001,
		Depth:   1, // Only the first hit is shaded
		Jitter:  0,
		Seed:    42,
	}
}

// workerCount resolves the configured worker count
func (c Config) workerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
