package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Attacked returns true if the target square is attacked by the given colour.
//
// For each piece kind a hypothetical piece of the defending colour is placed
// on the target and its moves are generated. If any of those moves lands on
// an attacker's piece of the same kind, that piece attacks the target. Pawns
// work too because the probe pawn attacks in the defender's direction, which
// is exactly where an attacking pawn would have to stand.
func Attacked(board *chess.Board, attacker chess.Colour, target chess.Coord) bool {
	defender := attacker.Opposite()
	for _, kind := range chess.Kinds {
		probe := chess.MakePiece(defender, kind)
		want := chess.MakePiece(attacker, kind)
		for _, to := range Moves(board, probe, target) {
			if board.At(to) == want {
				return true
			}
		}
	}
	return false
}

// findKing returns the square of the given colour's king.
func findKing(board *chess.Board, colour chess.Colour) (chess.Coord, bool) {
	kings := board.Find(chess.MakePiece(colour, chess.King))
	if len(kings) == 0 {
		return chess.NoSquare, false
	}
	return kings[0], true
}

// IsInCheck returns true if the given colour's king is attacked.
// A board without that king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := findKing(board, colour)
	if !ok {
		return false
	}
	return Attacked(board, colour.Opposite(), king)
}
