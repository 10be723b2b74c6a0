// Package validate checks FEN strings for structural and positional errors.
// It never modifies a game; it only reads the finished position through the
// engine's query surface and reports every problem it finds, tagged by field.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Field identifies the part of a FEN string an error refers to.
type Field string

const (
	FieldBase            Field = "base"
	FieldPosition        Field = "position"
	FieldInvalidPosition Field = "invalid_position"
	FieldTurn            Field = "turn_color"
	FieldCastling        Field = "castling"
	FieldEnPassant       Field = "en_passant_invalid"
	FieldHalfMove        Field = "half_move"
	FieldMoveNum         Field = "move_num"
)

// FieldError is a single validation failure.
type FieldError struct {
	Field   Field
	Message string
}

// Error returns "field: message".
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result collects the errors found in one FEN string.
type Result struct {
	FEN    string
	Errors []FieldError
}

// Valid reports whether no errors were found.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// On returns the messages recorded against a field.
func (r *Result) On(field Field) []string {
	var msgs []string
	for _, e := range r.Errors {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func (r *Result) add(field Field, format string, args ...interface{}) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

var (
	enPassantPattern = regexp.MustCompile(`^(-|[a-h][36])$`)
	turnPattern      = regexp.MustCompile(`^(w|b)$`)
	piecePattern     = regexp.MustCompile(`^[prnbqkPRNBQK]$`)
)

// FEN validates a FEN string. Positional checks (pawns on promotion ranks,
// castling rights against piece placement, the opponent already in check)
// only run when the string is structurally sound.
func FEN(fen string) *Result {
	r := &Result{FEN: fen}

	tokens := strings.Fields(fen)
	if len(tokens) != 6 {
		r.add(FieldBase, "FEN string must contain six space delimited fields")
	}
	field := func(i int) string {
		if i < len(tokens) {
			return tokens[i]
		}
		return ""
	}
	position, turn, castling, enPassant, halfMove, moveNum :=
		field(0), field(1), field(2), field(3), field(4), field(5)

	checkKings(r, position)
	checkCounter(r, FieldHalfMove, halfMove)
	checkCounter(r, FieldMoveNum, moveNum)
	checkEnPassant(r, enPassant, turn)

	for i := 0; i < len(castling); i++ {
		if strings.IndexByte("KQkq-", castling[i]) < 0 {
			r.add(FieldCastling, "string is invalid")
			break
		}
	}
	if !turnPattern.MatchString(turn) {
		r.add(FieldTurn, "must be w or b")
	}

	rows := strings.Split(position, "/")
	if len(rows) != chess.BoardSize {
		r.add(FieldPosition, "must have 8 rows")
	}
	for _, row := range rows {
		checkRow(r, row)
	}

	if !r.Valid() {
		return r
	}

	game, err := engine.NewGame(fen)
	if err != nil {
		r.add(FieldBase, "%v", err)
		return r
	}
	checkPawns(r, rows)
	checkCastling(r, game)
	checkOpponentInCheck(r, game)
	return r
}

func checkKings(r *Result, position string) {
	if !strings.Contains(position, "k") {
		r.add(FieldInvalidPosition, "no black king")
	}
	if !strings.Contains(position, "K") {
		r.add(FieldInvalidPosition, "no white king")
	}
	if strings.Count(position, "K") > 1 {
		r.add(FieldInvalidPosition, "more than 1 white king")
	}
	if strings.Count(position, "k") > 1 {
		r.add(FieldInvalidPosition, "more than 1 black king")
	}
}

func checkCounter(r *Result, field Field, value string) {
	if n, err := strconv.Atoi(value); err != nil || n < 0 {
		r.add(field, "must be a positive integer")
	}
}

func checkEnPassant(r *Result, enPassant, turn string) {
	if !enPassantPattern.MatchString(enPassant) {
		r.add(FieldEnPassant, "square is invalid")
	}
	if strings.Contains(enPassant, "3") && turn == "w" {
		r.add(FieldEnPassant, "the white pawn has just moved, it cannot be whites turn")
	}
	if strings.Contains(enPassant, "6") && turn == "b" {
		r.add(FieldEnPassant, "the black pawn has just moved, it cannot be blacks turn")
	}
}

// checkRow sums the squares described by one rank of the placement field.
func checkRow(r *Result, row string) {
	columns := 0
	previousWasNumber := false
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c >= '0' && c <= '9' {
			if previousWasNumber {
				r.add(FieldPosition, "is invalid: consecutive numbers %c", c)
				break
			}
			previousWasNumber = true
			columns += int(c - '0')
			continue
		}
		if !piecePattern.MatchString(string(c)) {
			r.add(FieldPosition, "invalid piece %c", c)
			break
		}
		columns++
		previousWasNumber = false
	}
	if columns != chess.BoardSize {
		r.add(FieldPosition, "row has %d columns, 8 required for each row", columns)
	}
}

func checkPawns(r *Result, rows []string) {
	first, last := rows[0], rows[len(rows)-1]
	switch {
	case strings.ContainsAny(first, "pP"):
		r.add(FieldInvalidPosition, "there cannot be a pawn on black's promotion row")
	case strings.ContainsAny(last, "pP"):
		r.add(FieldInvalidPosition, "there cannot be a pawn on white's promotion row")
	}
}

// castlingHomes lists, per right, the squares that must still hold the
// king and rook.
var castlingHomes = []struct {
	right      engine.CastlingRights
	name       string
	king, rook string
	kingSymbol chess.Piece
	rookSymbol chess.Piece
}{
	{engine.WhiteKingside, "white kingside", "e1", "h1", 'K', 'R'},
	{engine.WhiteQueenside, "white queenside", "e1", "a1", 'K', 'R'},
	{engine.BlackKingside, "black kingside", "e8", "h8", 'k', 'r'},
	{engine.BlackQueenside, "black queenside", "e8", "a8", 'k', 'r'},
}

func checkCastling(r *Result, game *engine.Game) {
	rights := game.Castling()
	for _, home := range castlingHomes {
		if !rights.Has(home.right) {
			continue
		}
		if game.PieceAt(home.king) != home.kingSymbol {
			r.add(FieldCastling, "Invalid %s, king out of position", home.name)
		}
		if game.PieceAt(home.rook) != home.rookSymbol {
			r.add(FieldCastling, "Invalid %s, rook out of position", home.name)
		}
	}
}

func checkOpponentInCheck(r *Result, game *engine.Game) {
	switch {
	case game.Turn() == chess.White && game.InCheck(chess.Black):
		r.add(FieldInvalidPosition, "it cannot be white's turn when black is in check")
	case game.Turn() == chess.Black && game.InCheck(chess.White):
		r.add(FieldInvalidPosition, "it cannot be black's turn when white is in check")
	}
}
