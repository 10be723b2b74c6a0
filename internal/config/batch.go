package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// BatchConfig holds settings for processing a file of scenarios.
type BatchConfig struct {
	// InputFile holds one "FEN | movetext" scenario per line
	InputFile string

	// Workers is the number of concurrent replays, 0 for one per CPU
	Workers int

	// StopOnError aborts the batch at the first failing scenario
	StopOnError bool
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{}
}

// WorkerCount resolves the configured worker count.
func (b *BatchConfig) WorkerCount() int {
	if b.Workers <= 0 {
		return runtime.NumCPU()
	}
	return b.Workers
}

// Validate checks that the batch configuration is valid.
func (b *BatchConfig) Validate() error {
	if b.Workers < 0 {
		return fmt.Errorf("worker count %d is negative: %w", b.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
