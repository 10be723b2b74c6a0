package engine

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Move is a SAN string resolved against a position. Castling carries two
// from/to pairs (king first, then rook); every other move carries one.
type Move struct {
	SAN       string
	Kind      MoveKind
	Colour    chess.Colour
	Symbol    chess.Piece   // the piece that moves (the king for castles)
	From      []chess.Coord // origin squares
	To        []chess.Coord // destination squares, parallel to From
	Captured  chess.Piece   // Empty if nothing is captured
	Promotion chess.Piece   // Empty unless a pawn promotes
	EnPassant chess.Coord   // square passed over by a double step, else NoSquare
}

// LAN returns the long algebraic form of the first pair, e.g. "e2e4".
func (m *Move) LAN() string {
	if len(m.From) == 0 {
		return ""
	}
	lan := m.From[0].String() + m.To[0].String()
	if m.Promotion != chess.Empty {
		lan += strings.ToLower(m.Promotion.String())
	}
	return lan
}

// IsCapture reports whether the move takes a piece.
func (m *Move) IsCapture() bool {
	return m.Captured != chess.Empty
}

// Resolve finds the concrete squares for a classified SAN string with
// turn to move. The board is not modified.
func Resolve(board *chess.Board, turn chess.Colour, n Notation) (*Move, error) {
	return resolve(board, turn, n, castleRules{})
}

func resolve(board *chess.Board, turn chess.Colour, n Notation, castling castleRules) (*Move, error) {
	if n.Kind.IsCastle() {
		return resolveCastle(board, turn, n, castling)
	}

	symbol := chess.MakePiece(turn, chess.KindFromLetter(n.Letter))
	from, err := findOrigin(board, symbol, n)
	if err != nil {
		return nil, err
	}

	move := &Move{
		SAN:       n.SAN,
		Kind:      n.Kind,
		Colour:    turn,
		Symbol:    symbol,
		From:      []chess.Coord{from},
		To:        []chess.Coord{n.Target},
		Captured:  board.At(n.Target),
		EnPassant: chess.NoSquare,
	}
	if n.Promotion != chess.NoKind {
		move.Promotion = chess.MakePiece(turn, n.Promotion)
	}
	if symbol.Kind() == chess.Pawn && abs(n.Target.Rank-from.Rank) == 2 {
		move.EnPassant = chess.Coord{Rank: (from.Rank + n.Target.Rank) / 2, File: from.File}
	}
	return move, nil
}

// findOrigin searches the pieces matching symbol in board scan order and
// returns the first whose generated moves include the target and whose
// square satisfies any origin constraint in the notation.
func findOrigin(board *chess.Board, symbol chess.Piece, n Notation) (chess.Coord, error) {
	candidates := board.Find(symbol)
	if len(candidates) == 0 {
		return chess.NoSquare, errors.NewMoveError(n.Kind.errorClass(), errors.NotFound, n.SAN,
			"%s not found", symbol.Name())
	}

	for _, from := range candidates {
		if !n.matchesOrigin(from) {
			continue
		}
		if containsSquare(Moves(board, symbol, from), n.Target) {
			return from, nil
		}
	}

	return chess.NoSquare, errors.NewMoveError(n.Kind.errorClass(), errors.Unreachable, n.SAN,
		"%s cannot move to %s", symbol.Name(), n.Target)
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
