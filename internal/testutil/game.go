package testutil

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// Common positions used across package tests.
const (
	// ScholarsMateFEN has Black to move and already mated on f7.
	ScholarsMateFEN = "r1bqkbnr/ppp2Qpp/2np4/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 1"
	// StalemateFEN has White to move with no safe king move.
	StalemateFEN = "8/p7/P7/8/5q2/5k1K/8/8 w - - 0 1"
	// CastlingReadyFEN has both sides free to castle on either wing.
	CastlingReadyFEN = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"
)

// NewTestGame builds a game from fen, or returns nil if the FEN is rejected.
func NewTestGame(fen string) *engine.Game {
	g, err := engine.NewGame(fen)
	if err != nil {
		return nil
	}
	return g
}

// MustGame builds a game from fen and calls t.Fatal if it is rejected.
func MustGame(t *testing.T, fen string) *engine.Game {
	t.Helper()
	g := NewTestGame(fen)
	if g == nil {
		t.Fatalf("failed to create game from FEN %q", fen)
	}
	return g
}

// MustPlay plays each SAN move on g and calls t.Fatal on the first failure.
func MustPlay(t *testing.T, g *engine.Game, sans ...string) *engine.Game {
	t.Helper()
	for i, san := range sans {
		if _, err := g.Move(san); err != nil {
			t.Fatalf("move %d (%s) failed: %v", i+1, san, err)
		}
	}
	return g
}

// AssertFEN fails if g's FEN is not want.
func AssertFEN(t *testing.T, g *engine.Game, want string) {
	t.Helper()
	if got := g.FEN(); got != want {
		t.Errorf("FEN mismatch:\n got: %s\nwant: %s", got, want)
	}
}

// AssertPieceAt fails if square does not hold want.
func AssertPieceAt(t *testing.T, g *engine.Game, square string, want chess.Piece) {
	t.Helper()
	if got := g.PieceAt(square); got != want {
		t.Errorf("%s holds %v; want %v", square, got, want)
	}
}

// AssertMoveError fails unless err is a *MoveError of the given kind.
func AssertMoveError(t *testing.T, err error, kind chesserrors.Kind) {
	t.Helper()
	var moveErr *chesserrors.MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("error = %v; want *MoveError", err)
	}
	if moveErr.Kind != kind {
		t.Errorf("MoveError kind = %v; want %v (%v)", moveErr.Kind, kind, moveErr)
	}
}
