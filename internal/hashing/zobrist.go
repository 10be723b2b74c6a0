package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Key tables, filled from a fixed seed so hashes are stable between runs.
var (
	pieceKeys     [2][chess.King + 1][chess.BoardSize][chess.BoardSize]uint64
	castlingKeys  [engine.AllCastling + 1]uint64
	enPassantKeys [chess.BoardSize]uint64
	whiteToMove   uint64
)

func init() {
	seed := uint64(0x2545F4914F6CDD1D)
	next := func() uint64 {
		// splitmix64
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for colour := range pieceKeys {
		for kind := range pieceKeys[colour] {
			for rank := range pieceKeys[colour][kind] {
				for file := range pieceKeys[colour][kind][rank] {
					pieceKeys[colour][kind][rank][file] = next()
				}
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = next()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = next()
	}
	whiteToMove = next()
}

// GenerateZobristHash hashes the position of g: piece placement, side to
// move, castling rights and en-passant file. Clocks are not included.
func GenerateZobristHash(g *engine.Game) uint64 {
	board := g.Board()
	var hash uint64
	board.Pieces(func(c chess.Coord, piece chess.Piece) {
		hash ^= pieceKeys[piece.Colour()][piece.Kind()][c.Rank][c.File]
	})

	if g.Turn() == chess.White {
		hash ^= whiteToMove
	}
	hash ^= castlingKeys[g.Castling()&engine.AllCastling]
	if target, err := chess.ParseSquare(g.EnPassant()); err == nil {
		hash ^= enPassantKeys[target.File]
	}
	return hash
}

// WeakHash is a cheap checksum of the piece placement alone, used as a
// second opinion when two Zobrist hashes collide.
func WeakHash(g *engine.Game) uint32 {
	board := g.Board()
	var hash uint32
	board.Pieces(func(c chess.Coord, piece chess.Piece) {
		square := uint32(c.Rank*chess.BoardSize + c.File)
		hash += (square + 1) * uint32(piece)
	})
	return hash
}
