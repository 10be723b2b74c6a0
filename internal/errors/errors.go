// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a FEN string the engine cannot load.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates a malformed algebraic square name.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrNotation indicates a SAN string that matches no recognised grammar.
	ErrNotation = errors.New("unknown SAN")

	// ErrPieceNotFound indicates the side to move has no piece of the required kind.
	ErrPieceNotFound = errors.New("piece not found")

	// ErrUnreachable indicates no candidate piece can reach the target square.
	ErrUnreachable = errors.New("piece cannot move to target")

	// ErrCastling indicates a castling precondition was violated.
	ErrCastling = errors.New("castling not possible")

	// ErrGameNotFound indicates a named game is not in the store.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveClass identifies which notation family a failed move belonged to.
type MoveClass int

const (
	UnknownMove MoveClass = iota
	StandardMove
	PawnMove
	DisambiguatedMove
	CastlingMove
)

// String returns the name of the move class as used in error messages.
func (c MoveClass) String() string {
	switch c {
	case StandardMove:
		return "standard move"
	case PawnMove:
		return "pawn move"
	case DisambiguatedMove:
		return "disambiguated move"
	case CastlingMove:
		return "castling move"
	default:
		return "move"
	}
}

// Kind distinguishes the reasons a move could not be resolved.
type Kind int

const (
	Notation Kind = iota
	NotFound
	Unreachable
	CastlingPrecondition
)

// sentinel maps a kind to the sentinel it unwraps to.
func (k Kind) sentinel() error {
	switch k {
	case NotFound:
		return ErrPieceNotFound
	case Unreachable:
		return ErrUnreachable
	case CastlingPrecondition:
		return ErrCastling
	default:
		return ErrNotation
	}
}

// MoveError reports why a SAN string could not be turned into a move.
// Nothing is applied to the game when a MoveError is returned.
type MoveError struct {
	Class   MoveClass // Notation family of the move
	Kind    Kind      // Reason for the failure
	SAN     string    // The move text as given
	Message string    // Human readable detail, e.g. "white rook not found"
}

// Error returns the detail message, falling back to the sentinel text.
func (e *MoveError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.SAN != "" {
		return fmt.Sprintf("%v: %s", e.Kind.sentinel(), e.SAN)
	}
	return e.Kind.sentinel().Error()
}

// Unwrap returns the sentinel for the error kind so callers can use errors.Is().
func (e *MoveError) Unwrap() error {
	return e.Kind.sentinel()
}

// NewMoveError builds a MoveError with a formatted message.
func NewMoveError(class MoveClass, kind Kind, san, format string, args ...interface{}) *MoveError {
	return &MoveError{
		Class:   class,
		Kind:    kind,
		SAN:     san,
		Message: fmt.Sprintf(format, args...),
	}
}

// ReplayError wraps errors with replay context, including input line,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type ReplayError struct {
	Err      error  // The underlying error
	Line     int    // 1-based input line (0 if not applicable)
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
}

// Error returns a formatted error message including all available context.
func (e *ReplayError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	} else if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "replay error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the ReplayError wrapper.
func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need only one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
