package engine

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingLetters is the FEN letter of each right in output order.
var castlingLetters = []struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// ParseCastlingRights reads the castling field of a FEN string.
// Characters other than KQkq are ignored.
func ParseCastlingRights(field string) CastlingRights {
	rights := NoCastling
	for i := 0; i < len(field); i++ {
		for _, cl := range castlingLetters {
			if field[i] == cl.letter {
				rights |= cl.right
			}
		}
	}
	return rights
}

// String returns the FEN castling field, "-" when no rights remain.
func (r CastlingRights) String() string {
	var sb strings.Builder
	for _, cl := range castlingLetters {
		if r&cl.right != 0 {
			sb.WriteByte(cl.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Has reports whether every right in want is present.
func (r CastlingRights) Has(want CastlingRights) bool {
	return r&want == want
}

// colourRights returns both rights of a colour.
func colourRights(colour chess.Colour) CastlingRights {
	if colour == chess.White {
		return WhiteKingside | WhiteQueenside
	}
	return BlackKingside | BlackQueenside
}

// rookCorners maps each rook home square to the right it guards.
var rookCorners = map[chess.Coord]CastlingRights{
	chess.MustSquare("h1"): WhiteKingside,
	chess.MustSquare("a1"): WhiteQueenside,
	chess.MustSquare("h8"): BlackKingside,
	chess.MustSquare("a8"): BlackQueenside,
}

// castleRight returns the right a castle of kind needs for colour.
func castleRight(colour chess.Colour, kind MoveKind) CastlingRights {
	if kind == KingsideCastle {
		return colourRights(colour) & (WhiteKingside | BlackKingside)
	}
	return colourRights(colour) & (WhiteQueenside | BlackQueenside)
}

// revokedBy returns the rights lost when move is played.
func revokedBy(move *Move) CastlingRights {
	switch {
	case move.Kind.IsCastle():
		return colourRights(move.Colour)
	case move.Symbol.Kind() == chess.King:
		return colourRights(move.Colour)
	case move.Symbol.Kind() == chess.Rook:
		right := rookCorners[move.From[0]]
		if right&colourRights(move.Colour) != 0 {
			return right
		}
	}
	return NoCastling
}

// castleSquare is one square a castle inspects: it must hold want, or be
// empty when want is Empty.
type castleSquare struct {
	square chess.Coord
	want   chess.Kind
}

// castleLayout describes one castle for one colour.
type castleLayout struct {
	squares []castleSquare // checked in order, first failure is reported
	path    []chess.Coord  // squares the king crosses or lands on
	from    []chess.Coord  // king, rook
	to      []chess.Coord  // king, rook
}

// castleRules carries the game state strict castling consults.
type castleRules struct {
	strict bool
	rights CastlingRights
}

// castleLayouts is indexed by colour then castle kind.
var castleLayouts = map[chess.Colour]map[MoveKind]castleLayout{
	chess.White: buildCastleLayouts('1'),
	chess.Black: buildCastleLayouts('8'),
}

func buildCastleLayouts(rank byte) map[MoveKind]castleLayout {
	sq := func(file byte) chess.Coord {
		return chess.MustSquare(string([]byte{file, rank}))
	}
	return map[MoveKind]castleLayout{
		KingsideCastle: {
			squares: []castleSquare{
				{sq('e'), chess.King},
				{sq('f'), chess.NoKind},
				{sq('g'), chess.NoKind},
				{sq('h'), chess.Rook},
			},
			path: []chess.Coord{sq('f'), sq('g')},
			from: []chess.Coord{sq('e'), sq('h')},
			to:   []chess.Coord{sq('g'), sq('f')},
		},
		QueensideCastle: {
			squares: []castleSquare{
				{sq('a'), chess.Rook},
				{sq('b'), chess.NoKind},
				{sq('c'), chess.NoKind},
				{sq('d'), chess.NoKind},
				{sq('e'), chess.King},
			},
			path: []chess.Coord{sq('d'), sq('c')},
			from: []chess.Coord{sq('e'), sq('a')},
			to:   []chess.Coord{sq('c'), sq('d')},
		},
	}
}

// resolveCastle checks the fixed king, rook and empty squares for the side
// to move. With strict set it also requires the castling right and refuses
// to castle out of, through or into check.
func resolveCastle(board *chess.Board, turn chess.Colour, n Notation, rules castleRules) (*Move, error) {
	layout := castleLayouts[turn][n.Kind]

	for _, cs := range layout.squares {
		got := board.At(cs.square)
		if cs.want == chess.NoKind {
			if got != chess.Empty {
				return nil, errors.NewMoveError(errors.CastlingMove, errors.CastlingPrecondition, n.SAN,
					"%s square is not empty", cs.square)
			}
			continue
		}
		if want := chess.MakePiece(turn, cs.want); got != want {
			return nil, errors.NewMoveError(errors.CastlingMove, errors.CastlingPrecondition, n.SAN,
				"%s not at %s", want.Name(), cs.square)
		}
	}

	if rules.strict {
		if !rules.rights.Has(castleRight(turn, n.Kind)) {
			wing := "queenside"
			if n.Kind == KingsideCastle {
				wing = "kingside"
			}
			return nil, errors.NewMoveError(errors.CastlingMove, errors.CastlingPrecondition, n.SAN,
				"%s may no longer castle %s", chess.MakePiece(turn, chess.King).Name(), wing)
		}
		if IsInCheck(board, turn) {
			return nil, errors.NewMoveError(errors.CastlingMove, errors.CastlingPrecondition, n.SAN,
				"%s is in check", chess.MakePiece(turn, chess.King).Name())
		}
		for _, sq := range layout.path {
			if Attacked(board, turn.Opposite(), sq) {
				return nil, errors.NewMoveError(errors.CastlingMove, errors.CastlingPrecondition, n.SAN,
					"%s square is attacked", sq)
			}
		}
	}

	return &Move{
		SAN:       n.SAN,
		Kind:      n.Kind,
		Colour:    turn,
		Symbol:    chess.MakePiece(turn, chess.King),
		From:      append([]chess.Coord(nil), layout.from...),
		To:        append([]chess.Coord(nil), layout.to...),
		EnPassant: chess.NoSquare,
	}, nil
}
