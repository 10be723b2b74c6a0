// Package config provides configuration for the chess-rules tool.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// OutputFormat selects how a replayed game is reported.
type OutputFormat int

const (
	TextFormat OutputFormat = iota // Human readable summary
	JSONFormat                     // One JSON document per game
	FENFormat                      // Final FEN string only
)

var outputFormatNames = [...]string{
	TextFormat: "text",
	JSONFormat: "json",
	FENFormat:  "fen",
}

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	if f >= 0 && int(f) < len(outputFormatNames) {
		return outputFormatNames[f]
	}
	return "unknown"
}

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for i, name := range outputFormatNames {
		if s == name {
			return OutputFormat(i), nil
		}
	}
	return TextFormat, fmt.Errorf("unknown output format %q: %w", s, errors.ErrInvalidConfig)
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Rules
	StrictCastling bool // refuse castling out of, through or into check
	Validate       bool // run the FEN validator before replaying

	// Sub-configurations
	Output    *OutputConfig
	Store     *StoreConfig
	Batch     *BatchConfig
	Duplicate *DuplicateConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Store:      NewStoreConfig(),
		Batch:      NewBatchConfig(),
		Duplicate:  NewDuplicateConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer reports are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer diagnostics are written to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// EngineOptions returns the game options implied by the configuration.
func (c *Config) EngineOptions() []engine.Option {
	var opts []engine.Option
	if c.StrictCastling {
		opts = append(opts, engine.WithStrictCastling())
	}
	return opts
}

// Check validates every sub-configuration.
func (c *Config) Check() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Batch.Validate(); err != nil {
		return err
	}
	return c.Duplicate.Validate()
}
