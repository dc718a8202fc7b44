package physics

import (
	"fmt"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/parameter"
)

// Config holds physics world parameters.
type Config struct {
	// Gravity is downward acceleration in world units/sec²
	// (positive Y is down)
	Gravity float64

	// CellSize is the spatial grid cell edge in world units. Choose
	// relative to typical body size: larger cells mean fewer cells but
	// more false positives per query
	CellSize float64

	// MaxVelocity caps body speed (vector magnitude)
	MaxVelocity float64
}

// DefaultConfig returns platformer-tuned physics parameters.
func DefaultConfig() Config {
	return Config{
		Gravity:     parameter.DefaultGravity,
		CellSize:    parameter.DefaultCellSize,
		MaxVelocity: parameter.DefaultMaxVelocity,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("cell size %v: %w", c.CellSize, core.ErrInvalidConfig)
	}
	if c.MaxVelocity <= 0 {
		return fmt.Errorf("max velocity %v: %w", c.MaxVelocity, core.ErrInvalidConfig)
	}
	return nil
}
