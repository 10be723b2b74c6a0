package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// Format selects text, JSON or bare FEN output
	Format OutputFormat

	// Indent pretty-prints JSON output
	Indent bool

	// ShowHistory lists the played moves in text and JSON reports
	ShowHistory bool

	// Filename is the output file path, empty for stdout
	Filename string

	// ParquetFile also exports every report as a parquet row when set
	ParquetFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:      TextFormat,
		Indent:      true,
		ShowHistory: true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.Format < TextFormat || o.Format > FENFormat {
		return fmt.Errorf("output format %d out of range: %w", o.Format, errors.ErrInvalidConfig)
	}
	return nil
}
