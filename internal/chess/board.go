package chess

import "strings"

// Board is an 8x8 grid of piece symbols indexed as [rank][file] with rank 0
// being the eighth rank. Board is a value type: assigning or copying a Board
// yields an independent grid.
type Board struct {
	Squares [BoardSize][BoardSize]Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Clear empties every square.
func (b *Board) Clear() {
	b.Squares = [BoardSize][BoardSize]Piece{}
}

// At returns the piece at the given coordinate, or Empty when out of bounds.
func (b *Board) At(c Coord) Piece {
	if !c.InBounds() {
		return Empty
	}
	return b.Squares[c.Rank][c.File]
}

// PieceAt returns the piece on the named square, or Empty for an unknown name.
func (b *Board) PieceAt(name string) Piece {
	c, err := ParseSquare(name)
	if err != nil {
		return Empty
	}
	return b.At(c)
}

// Place puts a piece on a square. It returns false and leaves the board
// untouched if the symbol is not one of the twelve pieces or the square is
// off the board.
func (b *Board) Place(piece Piece, c Coord) bool {
	if !piece.Valid() || !c.InBounds() {
		return false
	}
	b.Squares[c.Rank][c.File] = piece
	return true
}

// PlaceSquare is Place addressed by algebraic square name.
func (b *Board) PlaceSquare(piece Piece, name string) bool {
	c, err := ParseSquare(name)
	if err != nil {
		return false
	}
	return b.Place(piece, c)
}

// Find returns the coordinates of every square holding piece, in scan order
// (eighth rank first, a-file first within a rank).
func (b *Board) Find(piece Piece) []Coord {
	var coords []Coord
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if b.Squares[rank][file] == piece {
				coords = append(coords, Coord{Rank: rank, File: file})
			}
		}
	}
	return coords
}

// Apply moves the piece on from to to, clearing from. A non-empty promotion
// replaces the moved piece on the destination. No legality checks are made.
func (b *Board) Apply(from, to Coord, promotion Piece) {
	if !from.InBounds() || !to.InBounds() {
		return
	}
	piece := b.Squares[from.Rank][from.File]
	if promotion != Empty {
		piece = promotion
	}
	b.Squares[from.Rank][from.File] = Empty
	b.Squares[to.Rank][to.File] = piece
}

// LoadPosition clears the board and fills it from the piece placement field
// of a FEN string. Parsing is lenient: unknown characters are skipped and
// anything that would land outside the 8x8 grid is ignored. Strict checking
// is left to the validate package.
func (b *Board) LoadPosition(field string) {
	b.Clear()

	rank, file := 0, 0
	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '/':
			rank++
			file = 0
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			if rank < BoardSize && file < BoardSize {
				b.Place(Piece(c), Coord{Rank: rank, File: file})
			}
			file++
		}
	}
}

// Position returns the piece placement field of a FEN string. Runs of
// empty squares are always compressed into a single digit.
func (b *Board) Position() string {
	var sb strings.Builder
	for rank := 0; rank < BoardSize; rank++ {
		empty := 0
		for file := 0; file < BoardSize; file++ {
			piece := b.Squares[rank][file]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(byte(piece))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank < BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Pieces calls fn for every occupied square in scan order.
func (b *Board) Pieces(fn func(c Coord, piece Piece)) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if piece := b.Squares[rank][file]; piece != Empty {
				fn(Coord{Rank: rank, File: file}, piece)
			}
		}
	}
}
