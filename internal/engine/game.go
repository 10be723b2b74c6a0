// Package engine provides SAN move resolution, move application and
// check, checkmate and stalemate detection on top of the chess board.
package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Game holds a board plus the rest of the FEN state. A Game is meant to be
// used by one caller at a time; it does no locking of its own.
type Game struct {
	board      chess.Board
	turn       chess.Colour
	castling   CastlingRights
	enPassant  chess.Coord
	halfMoves  int
	fullMoves  int
	initialFEN string
	history    []*Move

	strictCastling bool
}

// Option configures a Game.
type Option func(*Game)

// WithStrictCastling refuses castles the castling rights no longer allow
// and castles out of, through or into check. Without it castling only
// checks piece placement.
func WithStrictCastling() Option {
	return func(g *Game) {
		g.strictCastling = true
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() chess.Board {
	return g.board
}

// Turn returns the side to move.
func (g *Game) Turn() chess.Colour {
	return g.turn
}

// Castling returns the remaining castling rights.
func (g *Game) Castling() CastlingRights {
	return g.castling
}

// EnPassant returns the en-passant target square name, or "-".
func (g *Game) EnPassant() string {
	return g.enPassant.String()
}

// HalfMoves returns the half-move clock.
func (g *Game) HalfMoves() int {
	return g.halfMoves
}

// FullMoves returns the full-move number.
func (g *Game) FullMoves() int {
	return g.fullMoves
}

// InitialFEN returns the FEN the game was created from.
func (g *Game) InitialFEN() string {
	return g.initialFEN
}

// History returns the moves played since the game was created.
func (g *Game) History() []*Move {
	return append([]*Move(nil), g.history...)
}

// PieceAt returns the piece on the named square, or chess.Empty.
func (g *Game) PieceAt(square string) chess.Piece {
	return g.board.PieceAt(square)
}

// Place puts a piece on the named square, returning false for an unknown
// symbol or square.
func (g *Game) Place(piece chess.Piece, square string) bool {
	return g.board.PlaceSquare(piece, square)
}

// SquareMoves returns the squares the piece on square could move to,
// ignoring self-check.
func (g *Game) SquareMoves(square string) []string {
	from, err := chess.ParseSquare(square)
	if err != nil {
		return nil
	}
	moves := MovesFrom(&g.board, from)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	return names
}

// Move resolves a SAN string against the current position and plays it.
// On error the game is unchanged.
func (g *Game) Move(san string) (*Move, error) {
	n, err := ParseSAN(san)
	if err != nil {
		return nil, err
	}
	move, err := resolve(&g.board, g.turn, n, castleRules{strict: g.strictCastling, rights: g.castling})
	if err != nil {
		return nil, err
	}
	g.apply(move)
	return move, nil
}

// apply plays a resolved move and updates the clocks, rights and turn.
func (g *Game) apply(move *Move) {
	for i := range move.From {
		promotion := chess.Empty
		if i == 0 {
			promotion = move.Promotion
		}
		g.board.Apply(move.From[i], move.To[i], promotion)
	}

	g.castling &^= revokedBy(move)
	g.enPassant = move.EnPassant

	if move.Kind == PawnMove || move.IsCapture() {
		g.halfMoves = 0
	} else {
		g.halfMoves++
	}
	if move.Colour == chess.Black {
		g.fullMoves++
	}
	g.turn = move.Colour.Opposite()
	g.history = append(g.history, move)
}

// InCheck returns true if colour's king is attacked.
func (g *Game) InCheck(colour chess.Colour) bool {
	return IsInCheck(&g.board, colour)
}

// Checkmate returns true if the side to move is in check and every move
// it could make still leaves it in check.
func (g *Game) Checkmate() bool {
	return g.InCheck(g.turn) && !hasEscape(&g.board, g.turn)
}

// Stalemate returns true if the side to move is not in check but every
// move it could make would put it in check.
func (g *Game) Stalemate() bool {
	return !g.InCheck(g.turn) && !hasEscape(&g.board, g.turn)
}

// hasEscape returns true if colour has a move that does not leave its own
// king attacked. Each candidate is tried on a scratch copy of the board.
func hasEscape(board *chess.Board, colour chess.Colour) bool {
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			from := chess.Coord{Rank: rank, File: file}
			piece := board.At(from)
			if piece == chess.Empty || piece.Colour() != colour {
				continue
			}
			for _, to := range Moves(board, piece, from) {
				scratch := *board
				scratch.Apply(from, to, chess.Empty)
				if !IsInCheck(&scratch, colour) {
					return true
				}
			}
		}
	}
	return false
}
