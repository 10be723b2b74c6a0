package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// DefaultLineLength is the wrap column for move lists.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputReport writes a report in the text layout: a header, the position
// fields and optionally the move list.
func OutputReport(r *Report, cfg *config.Config, w io.Writer) {
	if r.Name != "" {
		fmt.Fprintf(w, "Game: %s\n", r.Name)
	}
	fmt.Fprintf(w, "FEN: %s\n", r.FEN)
	fmt.Fprintf(w, "Turn: %s  Castling: %s  En passant: %s  Clocks: %d/%d\n",
		r.Turn, r.Castling, r.EnPassant, r.HalfMoves, r.FullMoves)
	fmt.Fprintf(w, "Status: %s  Result: %s\n", r.Status, r.Result)

	if cfg.Output.ShowHistory && len(r.Moves) > 0 {
		fmt.Fprint(w, "Moves: ")
		outputMoves(r.Moves, NewOutputWriter(w, DefaultLineLength-len("Moves: ")))
	}
	if r.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", r.Error)
	}

	// Blank line between games
	fmt.Fprintln(w)
}

// outputMoves writes numbered SAN moves, wrapping long lines.
func outputMoves(moves []ReportMove, ow *OutputWriter) {
	for i, move := range moves {
		switch {
		case move.Colour == "white":
			ow.Write(fmt.Sprintf("%d.", move.MoveNumber))
		case i == 0:
			// Black to move at start
			ow.Write(fmt.Sprintf("%d...", move.MoveNumber))
		}
		ow.Write(move.SAN)
	}
	ow.NewLine()
}

// OutputFEN writes the final FEN of a report on its own line.
func OutputFEN(r *Report, w io.Writer) {
	fmt.Fprintln(w, r.FEN)
}
