package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidFEN, ErrInvalidSquare, ErrNotation, ErrPieceNotFound,
		ErrUnreachable, ErrCastling, ErrGameNotFound, ErrInvalidConfig,
	}
	for _, s := range sentinels {
		wrapped := fmt.Errorf("loading position: %w", s)
		if !errors.Is(wrapped, s) {
			t.Errorf("errors.Is(wrapped, %v) = false, want true", s)
		}
	}
}

func TestMoveError_Unwrap(t *testing.T) {
	tests := []struct {
		kind Kind
		want error
	}{
		{Notation, ErrNotation},
		{NotFound, ErrPieceNotFound},
		{Unreachable, ErrUnreachable},
		{CastlingPrecondition, ErrCastling},
	}

	for _, tt := range tests {
		t.Run(tt.want.Error(), func(t *testing.T) {
			err := NewMoveError(StandardMove, tt.kind, "Nf3", "detail")
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.want)
			}
		})
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MoveError
		want string
	}{
		{
			name: "message wins",
			err:  NewMoveError(StandardMove, NotFound, "Rd1", "%s not found", "white rook"),
			want: "white rook not found",
		},
		{
			name: "san fallback",
			err:  &MoveError{Kind: Notation, SAN: "Zz9"},
			want: "unknown SAN: Zz9",
		},
		{
			name: "bare kind",
			err:  &MoveError{Kind: CastlingPrecondition},
			want: "castling not possible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveClass_String(t *testing.T) {
	tests := []struct {
		class MoveClass
		want  string
	}{
		{UnknownMove, "move"},
		{StandardMove, "standard move"},
		{PawnMove, "pawn move"},
		{DisambiguatedMove, "disambiguated move"},
		{CastlingMove, "castling move"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("MoveClass(%d).String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}

// TestReplayError_Error verifies the error message format
func TestReplayError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReplayError
		contains []string
	}{
		{
			name: "full context",
			err: &ReplayError{
				Err:      ErrUnreachable,
				Line:     5,
				PlyNum:   12,
				MoveText: "Nxe5",
				File:     "games.txt",
			},
			contains: []string{"games.txt:5", "ply 12", "Nxe5", "cannot move"},
		},
		{
			name: "line only",
			err: &ReplayError{
				Err:  ErrInvalidFEN,
				Line: 3,
			},
			contains: []string{"line 3", "invalid FEN"},
		},
		{
			name: "file without line",
			err: &ReplayError{
				Err:  ErrNotation,
				File: "batch.txt",
			},
			contains: []string{"batch.txt", "unknown SAN"},
		},
		{
			name:     "no context",
			err:      &ReplayError{},
			contains: []string{"replay error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want to contain %q", msg, want)
				}
			}
		})
	}
}

// TestReplayError_Unwrap verifies errors.Is and errors.As see through the wrapper
func TestReplayError_Unwrap(t *testing.T) {
	moveErr := NewMoveError(PawnMove, Unreachable, "e5", "white pawn cannot move to e5")
	err := &ReplayError{Err: moveErr, PlyNum: 1, MoveText: "e5"}

	if !errors.Is(err, ErrUnreachable) {
		t.Error("errors.Is(err, ErrUnreachable) = false, want true")
	}

	var target *MoveError
	if !As(err, &target) {
		t.Fatal("As(err, *MoveError) = false, want true")
	}
	if target.Class != PawnMove {
		t.Errorf("target.Class = %v, want %v", target.Class, PawnMove)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrGameNotFound, "loading %q", "opening")
	if !Is(err, ErrGameNotFound) {
		t.Errorf("Is(%v, ErrGameNotFound) = false, want true", err)
	}
	if got, want := err.Error(), `loading "opening": game not found`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
