package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Geometry tables. Deltas are {rank, file} with rank 0 at the top of the board.
var (
	orthogonalDeltas = []chess.Delta{{Rank: 0, File: 1}, {Rank: 0, File: -1}, {Rank: 1, File: 0}, {Rank: -1, File: 0}}
	diagonalDeltas   = []chess.Delta{{Rank: 1, File: 1}, {Rank: 1, File: -1}, {Rank: -1, File: 1}, {Rank: -1, File: -1}}
	royalDeltas      = append(append([]chess.Delta{}, orthogonalDeltas...), diagonalDeltas...)
	knightDeltas     = []chess.Delta{
		{Rank: 2, File: 1}, {Rank: 1, File: 2}, {Rank: 2, File: -1}, {Rank: 1, File: -2},
		{Rank: -1, File: -2}, {Rank: -2, File: -1}, {Rank: -2, File: 1}, {Rank: -1, File: 2},
	}

	pawnAttackDeltas = map[chess.Colour][]chess.Delta{
		chess.White: {{Rank: -1, File: -1}, {Rank: -1, File: 1}},
		chess.Black: {{Rank: 1, File: 1}, {Rank: 1, File: -1}},
	}
	pawnPushDelta = map[chess.Colour]chess.Delta{
		chess.White: {Rank: -1, File: 0},
		chess.Black: {Rank: 1, File: 0},
	}
	pawnStartRank = map[chess.Colour]int{
		chess.White: 6,
		chess.Black: 1,
	}
)

// Moves returns every square the piece could move to if it stood on from.
// The piece need not actually be on the board, which lets the attack
// detector probe with hypothetical pieces. Turn order and self-check are
// ignored.
func Moves(board *chess.Board, piece chess.Piece, from chess.Coord) []chess.Coord {
	if !from.InBounds() {
		return nil
	}
	switch piece.Kind() {
	case chess.King:
		return steppingMoves(board, piece, from, royalDeltas)
	case chess.Knight:
		return steppingMoves(board, piece, from, knightDeltas)
	case chess.Rook:
		return slidingMoves(board, piece, from, orthogonalDeltas)
	case chess.Bishop:
		return slidingMoves(board, piece, from, diagonalDeltas)
	case chess.Queen:
		return slidingMoves(board, piece, from, royalDeltas)
	case chess.Pawn:
		return pawnMoves(board, piece, from)
	default:
		return nil
	}
}

// MovesFrom generates the moves of whatever piece occupies the square.
func MovesFrom(board *chess.Board, from chess.Coord) []chess.Coord {
	piece := board.At(from)
	if piece == chess.Empty {
		return nil
	}
	return Moves(board, piece, from)
}

// canLand reports whether a piece of the given colour may end on c:
// on the board and either empty or holding an opposing piece.
func canLand(board *chess.Board, colour chess.Colour, c chess.Coord) bool {
	if !c.InBounds() {
		return false
	}
	target := board.At(c)
	return target == chess.Empty || target.Colour() != colour
}

// steppingMoves applies each delta once.
func steppingMoves(board *chess.Board, piece chess.Piece, from chess.Coord, deltas []chess.Delta) []chess.Coord {
	colour := piece.Colour()
	moves := make([]chess.Coord, 0, len(deltas))
	for _, d := range deltas {
		to := from.Add(d)
		if canLand(board, colour, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// slidingMoves walks each direction until the edge or the first occupied
// square, which is included only if it holds an opposing piece.
func slidingMoves(board *chess.Board, piece chess.Piece, from chess.Coord, deltas []chess.Delta) []chess.Coord {
	colour := piece.Colour()
	var moves []chess.Coord
	for _, d := range deltas {
		for to := from.Add(d); to.InBounds(); to = to.Add(d) {
			target := board.At(to)
			if target == chess.Empty {
				moves = append(moves, to)
				continue
			}
			if target.Colour() != colour {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// pawnMoves generates diagonal captures onto opposing pieces and the
// forward path, which stops at the first occupied square.
func pawnMoves(board *chess.Board, piece chess.Piece, from chess.Coord) []chess.Coord {
	colour := piece.Colour()
	var moves []chess.Coord

	for _, d := range pawnAttackDeltas[colour] {
		to := from.Add(d)
		if !to.InBounds() {
			continue
		}
		if target := board.At(to); target != chess.Empty && target.Colour() != colour {
			moves = append(moves, to)
		}
	}

	steps := 1
	if from.Rank == pawnStartRank[colour] {
		steps = 2
	}
	to := from
	for i := 0; i < steps; i++ {
		to = to.Add(pawnPushDelta[colour])
		if !to.InBounds() || board.At(to) != chess.Empty {
			break
		}
		moves = append(moves, to)
	}

	return moves
}

// containsSquare reports whether c is among squares.
func containsSquare(squares []chess.Coord, c chess.Coord) bool {
	for _, s := range squares {
		if s == c {
			return true
		}
	}
	return false
}
