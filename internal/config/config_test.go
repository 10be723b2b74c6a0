package config

import (
	"bytes"
	"errors"
	"runtime"
	"testing"

	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// TestConfig_Defaults verifies NewConfig has sensible defaults
func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if cfg.Output.Format != TextFormat {
		t.Errorf("Output.Format = %v, want %v", cfg.Output.Format, TextFormat)
	}
	if !cfg.Output.Indent {
		t.Error("Output.Indent should be true by default")
	}
	if cfg.Store.Enabled() {
		t.Error("Store should be disabled by default")
	}
	if cfg.StrictCastling || cfg.Validate {
		t.Error("rule options should be off by default")
	}
	if len(cfg.EngineOptions()) != 0 {
		t.Errorf("EngineOptions() = %d options, want 0", len(cfg.EngineOptions()))
	}
	if err := cfg.Check(); err != nil {
		t.Errorf("Check() on defaults = %v", err)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", TextFormat, false},
		{"json", JSONFormat, false},
		{"fen", FENFormat, false},
		{"pgn", TextFormat, true},
		{"", TextFormat, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, chesserrors.ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

// TestConfig_Check verifies validation of each sub-configuration
func TestConfig_Check(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, true},
		{"format out of range", func(c *Config) { c.Output.Format = OutputFormat(9) }, true},
		{"negative workers", func(c *Config) { c.Batch.Workers = -2 }, true},
		{"save without store", func(c *Config) { c.Store.SaveAs = "opening" }, true},
		{"load without store", func(c *Config) { c.Store.Load = "opening" }, true},
		{"list without store", func(c *Config) { c.Store.List = true }, true},
		{"delete without store", func(c *Config) { c.Store.Delete = "opening" }, true},
		{"negative duplicate table", func(c *Config) { c.Duplicate.MaxGames = -1 }, true},
		{"save with store", func(c *Config) {
			c.Store.Dir = "/tmp/games"
			c.Store.SaveAs = "opening"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Check()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, chesserrors.ErrInvalidConfig) {
				t.Errorf("Check() error %v is not ErrInvalidConfig", err)
			}
		})
	}
}

func TestBatchConfig_WorkerCount(t *testing.T) {
	b := NewBatchConfig()
	if got := b.WorkerCount(); got != runtime.NumCPU() {
		t.Errorf("WorkerCount() = %d, want %d", got, runtime.NumCPU())
	}
	b.Workers = 3
	if got := b.WorkerCount(); got != 3 {
		t.Errorf("WorkerCount() = %d, want 3", got)
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	out := &bytes.Buffer{}
	log := &bytes.Buffer{}

	cfg.SetOutput(out)
	cfg.SetLog(log)

	if cfg.OutputFile != out {
		t.Error("SetOutput did not set OutputFile")
	}
	if cfg.LogFile != log {
		t.Error("SetLog did not set LogFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithOutputFormat(JSONFormat).
		WithStrictCastling(true).
		WithValidation(true).
		WithStore("/tmp/games").
		WithWorkers(4).
		WithOutput(out).
		WithDuplicateSuppression(true).
		WithVerbosity(2).
		Build()

	if cfg.Output.Format != JSONFormat {
		t.Errorf("Format = %v, want json", cfg.Output.Format)
	}
	if !cfg.StrictCastling || !cfg.Validate {
		t.Error("rule options were not set")
	}
	if len(cfg.EngineOptions()) != 1 {
		t.Errorf("EngineOptions() = %d options, want 1", len(cfg.EngineOptions()))
	}
	if cfg.Store.Dir != "/tmp/games" || !cfg.Store.Enabled() {
		t.Errorf("Store.Dir = %q", cfg.Store.Dir)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Batch.Workers)
	}
	if cfg.OutputFile != out {
		t.Error("WithOutput did not set OutputFile")
	}
	if !cfg.Duplicate.Suppress || !cfg.Duplicate.ExactMatch {
		t.Errorf("Duplicate = %+v, want suppress with exact match", *cfg.Duplicate)
	}
	if cfg.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", cfg.Verbosity)
	}
}
