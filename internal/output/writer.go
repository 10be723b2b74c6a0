package output

import (
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// GameWriter is the interface for writing reports to output.
// Different implementations handle different output formats (text, JSON, FEN).
type GameWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *Report) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for the configured output format.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	switch cfg.Output.Format {
	case config.JSONFormat:
		return NewJSONWriter(w, cfg)
	case config.FENFormat:
		return NewFENWriter(w)
	default:
		return NewTextWriter(w, cfg)
	}
}

// TextWriter writes reports in the human readable layout.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteReport writes a report immediately.
func (tw *TextWriter) WriteReport(r *Report) error {
	OutputReport(r, tw.cfg, tw.w)
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// FENWriter writes one final FEN per report.
type FENWriter struct {
	w io.Writer
}

// NewFENWriter creates a new FEN writer.
func NewFENWriter(w io.Writer) *FENWriter {
	return &FENWriter{w: w}
}

// WriteReport writes the report's FEN line.
func (fw *FENWriter) WriteReport(r *Report) error {
	OutputFEN(r, fw.w)
	return nil
}

// Flush is a no-op for FEN output.
func (fw *FENWriter) Flush() error {
	return nil
}

// Close closes the FEN writer.
func (fw *FENWriter) Close() error {
	return nil
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.Config
	reports []*Report
}

// NewJSONWriter creates a JSON writer that batches reports and writes them
// as one array on Close.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		reports: make([]*Report, 0),
	}
}

// WriteReport buffers a report for JSON output.
func (jw *JSONWriter) WriteReport(r *Report) error {
	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if len(jw.reports) == 0 {
		return nil
	}

	err := OutputReportsJSON(jw.reports, jw.cfg, jw.w)

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// MultiWriter sends every report to several writers.
type MultiWriter struct {
	writers []GameWriter
}

// NewMultiWriter creates a writer that fans reports out to writers in order.
func NewMultiWriter(writers ...GameWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteReport writes r to every writer, stopping at the first error.
func (mw *MultiWriter) WriteReport(r *Report) error {
	for _, w := range mw.writers {
		if err := w.WriteReport(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and returns the first error.
func (mw *MultiWriter) Flush() error {
	var first error
	for _, w := range mw.writers {
		if err := w.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every writer and returns the first error.
func (mw *MultiWriter) Close() error {
	var first error
	for _, w := range mw.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
