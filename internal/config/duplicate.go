package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// DuplicateConfig holds settings for duplicate game detection.
type DuplicateConfig struct {
	// Suppress drops games whose final position was already reported
	Suppress bool

	// ExactMatch also requires the same number of plies
	ExactMatch bool

	// MaxGames caps the number of remembered positions; 0 means unlimited
	MaxGames int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}

// Validate checks that the duplicate configuration is valid.
func (d *DuplicateConfig) Validate() error {
	if d.MaxGames < 0 {
		return fmt.Errorf("duplicate table size %d is negative: %w", d.MaxGames, errors.ErrInvalidConfig)
	}
	return nil
}
