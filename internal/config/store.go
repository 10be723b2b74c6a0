package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StoreConfig holds settings for the saved-game store.
type StoreConfig struct {
	// Dir is the badger directory; empty disables persistence
	Dir string

	// SaveAs names the game to store after replaying
	SaveAs string

	// Load names a stored game to resume from
	Load string

	// Delete names a stored game to remove
	Delete string

	// List prints the stored game names and exits
	List bool
}

// NewStoreConfig creates a StoreConfig with default values.
// Persistence is disabled until a directory is given.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

// Enabled reports whether a store directory was configured.
func (s *StoreConfig) Enabled() bool {
	return s.Dir != ""
}

// Validate checks that store operations have a directory to work in.
func (s *StoreConfig) Validate() error {
	if s.Enabled() {
		return nil
	}
	if s.SaveAs != "" || s.Load != "" || s.Delete != "" || s.List {
		return fmt.Errorf("saving, loading, deleting or listing games requires a store directory: %w",
			errors.ErrInvalidConfig)
	}
	return nil
}
