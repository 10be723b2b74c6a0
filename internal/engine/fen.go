package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StartingFEN is the FEN string for the standard starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// EmptyFEN is an empty board with White to move.
const EmptyFEN = "8/8/8/8/8/8/8/8 w - - 0 1"

// NewGame creates a game from a FEN string. Missing trailing fields take
// their starting-position defaults and the piece placement is read
// leniently; use the validate package for strict checking.
func NewGame(fen string, opts ...Option) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	g := &Game{
		turn:       chess.White,
		enPassant:  chess.NoSquare,
		fullMoves:  1,
		initialFEN: fen,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.board.LoadPosition(parts[0])

	if err := parseSideToMove(g, parts); err != nil {
		return nil, err
	}
	if len(parts) >= 3 {
		g.castling = ParseCastlingRights(parts[2])
	}
	parseEnPassant(g, parts)
	parseClocks(g, parts)

	return g, nil
}

// StartingPosition returns a new game at the standard starting position.
func StartingPosition(opts ...Option) *Game {
	g, _ := NewGame(StartingFEN, opts...)
	return g
}

// EmptyPosition returns a new game on an empty board.
func EmptyPosition(opts ...Option) *Game {
	g, _ := NewGame(EmptyFEN, opts...)
	return g
}

// parseSideToMove parses the side to move field.
func parseSideToMove(g *Game, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		g.turn = chess.White
	case "b":
		g.turn = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(g *Game, parts []string) {
	if len(parts) < 4 || parts[3] == "-" {
		return
	}
	if sq, err := chess.ParseSquare(parts[3]); err == nil {
		g.enPassant = sq
	}
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(g *Game, parts []string) {
	if len(parts) >= 5 {
		if n, err := strconv.Atoi(parts[4]); err == nil {
			g.halfMoves = n
		}
	}
	if len(parts) >= 6 {
		if n, err := strconv.Atoi(parts[5]); err == nil {
			g.fullMoves = n
		}
	}
}

// FEN returns the six-field FEN string of the current position.
func (g *Game) FEN() string {
	var sb strings.Builder
	sb.WriteString(g.board.Position())
	sb.WriteByte(' ')
	sb.WriteString(g.turn.Letter())
	sb.WriteByte(' ')
	sb.WriteString(g.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(g.enPassant.String())
	fmt.Fprintf(&sb, " %d %d", g.halfMoves, g.fullMoves)
	return sb.String()
}

// Replay creates a game from fen and plays each SAN move in turn. On a bad
// move it returns the game as it stood before that move together with a
// ReplayError carrying the ply and move text.
func Replay(fen string, sans []string, opts ...Option) (*Game, error) {
	g, err := NewGame(fen, opts...)
	if err != nil {
		return nil, err
	}
	for i, san := range sans {
		if _, err := g.Move(san); err != nil {
			return g, &errors.ReplayError{Err: err, PlyNum: i + 1, MoveText: san}
		}
	}
	return g, nil
}
