package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithStrictCastling enables the check tests on castling.
func (b *ConfigBuilder) WithStrictCastling(enabled bool) *ConfigBuilder {
	b.cfg.StrictCastling = enabled
	return b
}

// WithValidation enables FEN validation before replay.
func (b *ConfigBuilder) WithValidation(enabled bool) *ConfigBuilder {
	b.cfg.Validate = enabled
	return b
}

// WithStore sets the saved-game directory.
func (b *ConfigBuilder) WithStore(dir string) *ConfigBuilder {
	b.cfg.Store.Dir = dir
	return b
}

// WithWorkers sets the batch worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Batch.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.SetOutput(w)
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.SetLog(w)
	return b
}

// WithDuplicateSuppression drops games ending in an already reported position.
func (b *ConfigBuilder) WithDuplicateSuppression(exact bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = true
	b.cfg.Duplicate.ExactMatch = exact
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
