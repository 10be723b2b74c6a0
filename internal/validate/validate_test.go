package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestFEN_Valid(t *testing.T) {
	fens := []string{
		engine.StartingFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 10 30",
		testutil.StalemateFEN,
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			r := FEN(fen)
			if !r.Valid() {
				t.Errorf("FEN(%q) errors: %v", fen, r.Errors)
			}
		})
	}
}

func TestFEN_Errors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field Field
		want  []string
	}{
		{
			name:  "five fields",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - - 0",
			field: FieldBase,
			want:  []string{"FEN string must contain six space delimited fields"},
		},
		{
			name:  "missing full move number",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - - 0",
			field: FieldMoveNum,
			want:  []string{"must be a positive integer"},
		},
		{
			name:  "no kings",
			fen:   "8/8/8/8/8/8/8/8 w - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"no black king", "no white king"},
		},
		{
			name:  "two white kings",
			fen:   "4k3/8/8/8/8/8/8/3KK3 w - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"more than 1 white king"},
		},
		{
			name:  "negative half move clock",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - - -1 1",
			field: FieldHalfMove,
			want:  []string{"must be a positive integer"},
		},
		{
			name:  "en passant on wrong rank",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - e4 0 1",
			field: FieldEnPassant,
			want:  []string{"square is invalid"},
		},
		{
			name:  "white en passant square on white turn",
			fen:   "4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1",
			field: FieldEnPassant,
			want:  []string{"the white pawn has just moved, it cannot be whites turn"},
		},
		{
			name:  "black en passant square on black turn",
			fen:   "4k3/8/8/4p3/8/8/8/4K3 b - e6 0 1",
			field: FieldEnPassant,
			want:  []string{"the black pawn has just moved, it cannot be blacks turn"},
		},
		{
			name:  "bad castling letters",
			fen:   "4k3/8/8/8/8/8/8/4K3 w KX - 0 1",
			field: FieldCastling,
			want:  []string{"string is invalid"},
		},
		{
			name:  "bad turn",
			fen:   "4k3/8/8/8/8/8/8/4K3 x - - 0 1",
			field: FieldTurn,
			want:  []string{"must be w or b"},
		},
		{
			name:  "seven rows",
			fen:   "4k3/8/8/8/8/8/4K3 w - - 0 1",
			field: FieldPosition,
			want:  []string{"must have 8 rows"},
		},
		{
			name:  "consecutive numbers",
			fen:   "4k3/8/8/8/8/8/8/44K w - - 0 1",
			field: FieldPosition,
			want:  []string{"is invalid: consecutive numbers 4", "row has 4 columns, 8 required for each row"},
		},
		{
			name:  "invalid piece",
			fen:   "4k3/8/8/8/8/8/8/3XK3 w - - 0 1",
			field: FieldPosition,
			want:  []string{"invalid piece X", "row has 3 columns, 8 required for each row"},
		},
		{
			name:  "long row",
			fen:   "4k3/8/8/8/8/8/8/4K4 w - - 0 1",
			field: FieldPosition,
			want:  []string{"row has 9 columns, 8 required for each row"},
		},
		{
			name:  "pawn on eighth rank",
			fen:   "P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"there cannot be a pawn on black's promotion row"},
		},
		{
			name:  "pawn on first rank",
			fen:   "4k3/8/8/8/8/8/8/p3K3 w - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"there cannot be a pawn on white's promotion row"},
		},
		{
			name:  "castling right without rook",
			fen:   "4k3/8/8/8/8/8/8/4K3 w K - 0 1",
			field: FieldCastling,
			want:  []string{"Invalid white kingside, rook out of position"},
		},
		{
			name:  "castling rights with king moved",
			fen:   "r3k2r/8/8/8/8/8/8/R4K1R w KQkq - 0 1",
			field: FieldCastling,
			want: []string{
				"Invalid white kingside, king out of position",
				"Invalid white queenside, king out of position",
			},
		},
		{
			name:  "black in check on white turn",
			fen:   "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"it cannot be white's turn when black is in check"},
		},
		{
			name:  "white in check on black turn",
			fen:   "4k3/8/8/8/8/8/4r3/4K3 b - - 0 1",
			field: FieldInvalidPosition,
			want:  []string{"it cannot be black's turn when white is in check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FEN(tt.fen)
			if r.Valid() {
				t.Fatalf("FEN(%q) reported valid", tt.fen)
			}
			if diff := cmp.Diff(tt.want, r.On(tt.field)); diff != "" {
				t.Errorf("errors on %s mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
}

// Positional checks are skipped while the string is structurally broken.
func TestFEN_PositionalChecksNeedSoundStructure(t *testing.T) {
	r := FEN("P3k3/8/8/8/8/8/8/4K3 w - - 0")
	if got := r.On(FieldInvalidPosition); got != nil {
		t.Errorf("positional errors reported on broken FEN: %v", got)
	}
	if got := r.On(FieldBase); len(got) != 1 {
		t.Errorf("base errors = %v; want one", got)
	}
}

func TestFieldError(t *testing.T) {
	r := FEN("4k3/8/8/8/8/8/8/4K3 w KX - 0 1")
	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %v; want one", r.Errors)
	}
	testutil.AssertEqual(t, r.Errors[0].Error(), "castling: string is invalid")
	testutil.AssertEqual(t, r.FEN, "4k3/8/8/8/8/8/8/4K3 w KX - 0 1")
}
