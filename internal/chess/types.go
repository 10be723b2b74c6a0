// Package chess provides core chess types and operations.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Letter returns the FEN side-to-move letter for the colour.
func (c Colour) Letter() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type independent of colour.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every piece kind in probe order.
var Kinds = [...]Kind{Pawn, Rook, Knight, Bishop, Queen, King}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	names := []string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Letter returns the single upper-case letter of the kind.
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoKind
	}
}

// Piece is a FEN piece symbol. Upper case is White, lower case is Black,
// and the zero value is an empty square.
type Piece byte

// Empty is the contents of an unoccupied square.
const Empty Piece = 0

// MakePiece creates the symbol for a coloured piece.
func MakePiece(colour Colour, kind Kind) Piece {
	if kind == NoKind {
		return Empty
	}
	letter := kind.Letter()
	if colour == Black {
		letter += 'a' - 'A'
	}
	return Piece(letter)
}

// Valid reports whether p is one of the twelve piece symbols.
func (p Piece) Valid() bool {
	return p.Kind() != NoKind
}

// Kind extracts the piece type.
func (p Piece) Kind() Kind {
	return KindFromLetter(byte(p))
}

// Colour extracts the colour. Only meaningful when p is Valid.
func (p Piece) Colour() Colour {
	if p >= 'a' && p <= 'z' {
		return Black
	}
	return White
}

// Name returns a human readable name such as "white rook".
func (p Piece) Name() string {
	if !p.Valid() {
		return "empty square"
	}
	if p.Colour() == White {
		return "white " + p.Kind().String()
	}
	return "black " + p.Kind().String()
}

// String returns the FEN symbol, or "-" for an empty square.
func (p Piece) String() string {
	if p == Empty {
		return "-"
	}
	return string(rune(p))
}

// Constants for board dimensions and square names.
const (
	BoardSize = 8

	FirstFile = 'a'
	LastFile  = FirstFile + BoardSize - 1
	FirstRank = '1'
	LastRank  = FirstRank + BoardSize - 1
)

// Coord is an array coordinate on the board. Rank 0 is the eighth rank
// (the top of a FEN string) and rank 7 is the first rank; file 0 is the a-file.
type Coord struct {
	Rank int
	File int
}

// NoSquare marks the absence of a square, e.g. no en-passant target.
var NoSquare = Coord{Rank: -1, File: -1}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.Rank >= 0 && c.Rank < BoardSize && c.File >= 0 && c.File < BoardSize
}

// Add returns the coordinate offset by the given delta.
func (c Coord) Add(d Delta) Coord {
	return Coord{Rank: c.Rank + d.Rank, File: c.File + d.File}
}

// FileLetter returns the file letter 'a'-'h'.
func (c Coord) FileLetter() byte {
	return byte(FirstFile + c.File)
}

// RankDigit returns the rank digit '1'-'8'.
func (c Coord) RankDigit() byte {
	return byte(LastRank - c.Rank)
}

// String returns the algebraic square name, or "-" when out of bounds.
func (c Coord) String() string {
	if !c.InBounds() {
		return "-"
	}
	return string([]byte{c.FileLetter(), c.RankDigit()})
}

// Delta is a rank/file step used by move generation.
type Delta struct {
	Rank int
	File int
}

// ParseSquare converts an algebraic square name such as "e4" to a coordinate.
func ParseSquare(name string) (Coord, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	file, rank := name[0], name[1]
	if file < FirstFile || file > LastFile || rank < FirstRank || rank > LastRank {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	return Coord{Rank: int(LastRank - rank), File: int(file - FirstFile)}, nil
}

// MustSquare is like ParseSquare but panics on a malformed name.
// It is intended for fixed square tables.
func MustSquare(name string) Coord {
	c, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return c
}
