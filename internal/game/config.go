package game

import "time"

// Config holds session configuration options.
type Config struct {
	// Board dimensions and initial mine count.
	Width  int
	Height int
	Mines  int

	// Seed for random number generation. Used for reproducible mine
	// placement. A seed of 0 means a random seed will be generated.
	Seed int64

	// Terrain enables periodic mine growth.
	Terrain bool

	// GrowthDelay overrides the density-tiered growth interval when
	// positive. Zero means use the tiers.
	GrowthDelay time.Duration
}

// Overrides carries partial settings for a new game. Zero-valued fields
// keep the previous configuration, so callers can change just the bits
// they care about.
type Overrides struct {
	Width  int
	Height int
	Mines  int
}
