package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

func mustGame(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(fen, opts...)
	if err != nil {
		t.Fatalf("NewGame(%q) error: %v", fen, err)
	}
	return g
}

func play(t *testing.T, g *Game, sans ...string) {
	t.Helper()
	for _, san := range sans {
		if _, err := g.Move(san); err != nil {
			t.Fatalf("Move(%q) error: %v", san, err)
		}
	}
}

// TestOpeningSequence follows a game through a refused castle and both
// sides castling, checking the bookkeeping after every ply.
func TestOpeningSequence(t *testing.T) {
	g := StartingPosition()

	steps := []struct {
		san       string
		castling  string
		enPassant string
		half      int
		full      int
	}{
		{"e4", "KQkq", "e3", 0, 1},
		{"e5", "KQkq", "e6", 0, 2},
		{"Nf3", "KQkq", "-", 1, 2},
		{"Nf6", "KQkq", "-", 2, 3},
	}
	for _, s := range steps {
		play(t, g, s.san)
		if g.Castling().String() != s.castling || g.EnPassant() != s.enPassant ||
			g.HalfMoves() != s.half || g.FullMoves() != s.full {
			t.Fatalf("after %s: castling=%s ep=%s half=%d full=%d; want %s %s %d %d",
				s.san, g.Castling(), g.EnPassant(), g.HalfMoves(), g.FullMoves(),
				s.castling, s.enPassant, s.half, s.full)
		}
	}

	before := g.FEN()
	_, err := g.Move("O-O")
	if err == nil || err.Error() != "f1 square is not empty" {
		t.Fatalf("O-O error = %v; want f1 square is not empty", err)
	}
	if !errors.Is(err, chesserrors.ErrCastling) {
		t.Errorf("O-O error %v is not ErrCastling", err)
	}
	if g.FEN() != before {
		t.Errorf("refused castle changed the game: %s", g.FEN())
	}

	play(t, g, "Be2", "Be7", "O-O")
	if got := g.Castling().String(); got != "kq" {
		t.Errorf("castling after white O-O = %s; want kq", got)
	}
	play(t, g, "O-O")

	want := "rnbq1rk1/ppppbppp/5n2/4p3/4P3/5N2/PPPPBPPP/RNBQ1RK1 w - - 6 5"
	if got := g.FEN(); got != want {
		t.Errorf("FEN() = %q; want %q", got, want)
	}
	if got := len(g.History()); got != 8 {
		t.Errorf("len(History()) = %d; want 8", got)
	}
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		san     string
		wantErr error
		wantMsg string
	}{
		{"unknown notation", StartingFEN, "Zf3", chesserrors.ErrNotation, "unknown SAN: Zf3"},
		{"no such piece", EmptyFEN, "Ke2", chesserrors.ErrPieceNotFound, "white king not found"},
		{"king cannot reach", "8/8/8/8/8/8/8/4K3 w - - 0 1", "Ka7", chesserrors.ErrUnreachable, "white king cannot move to a7"},
		{"pawn cannot reach", StartingFEN, "e5", chesserrors.ErrUnreachable, "white pawn cannot move to e5"},
		{"black to move", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "Nf3", chesserrors.ErrUnreachable, "black knight cannot move to f3"},
		{"disambiguation names no candidate", "R6R/8/8/8/8/8/8/8 w - - 0 1", "Rbb8", chesserrors.ErrUnreachable, "white rook cannot move to b8"},
		{"pawn capture onto an empty square", StartingFEN, "exd3", chesserrors.ErrUnreachable, "white pawn cannot move to d3"},
		{"queenside blocked", StartingFEN, "O-O-O", chesserrors.ErrCastling, "b1 square is not empty"},
		{"king not home", "8/8/8/8/8/8/8/R3K2R b KQ - 0 1", "O-O", chesserrors.ErrCastling, "black king not at e8"},
		{"rook not home", "4k3/8/8/8/8/8/8/4K3 w K - 0 1", "O-O", chesserrors.ErrCastling, "white rook not at h1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			before := g.FEN()

			move, err := g.Move(tt.san)
			if move != nil {
				t.Errorf("Move(%q) returned a move on error", tt.san)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Move(%q) error = %v; want %v", tt.san, err, tt.wantErr)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Move(%q) message = %q; want %q", tt.san, err.Error(), tt.wantMsg)
			}
			if g.FEN() != before {
				t.Errorf("failed move changed the game: %s", g.FEN())
			}
		})
	}
}

func TestDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		san  string
		want string
	}{
		{"file names the a-rook", "R6R/8/8/8/8/8/8/8 w - - 0 1", "Rab8", "1R5R/8/8/8/8/8/8/8"},
		{"file names the h-rook", "R6R/8/8/8/8/8/8/8 w - - 0 1", "Rhb8", "RR6/8/8/8/8/8/8/8"},
		{"without a hint the first rook in scan order moves", "R6R/8/8/8/8/8/8/8 w - - 0 1", "Rb8", "1R5R/8/8/8/8/8/8/8"},
		{"rank names the lower rook", "8/8/8/8/8/R7/8/R7 w - - 0 1", "R1a2", "8/8/8/8/8/R7/R7/8"},
		{"scan order prefers the higher rook", "8/8/8/8/8/R7/8/R7 w - - 0 1", "Ra2", "8/8/8/8/8/8/R7/R7"},
		{"full origin square", "8/8/8/8/4Q2Q/8/8/8 w - - 0 1", "Qh4e1", "8/8/8/8/4Q3/8/8/4Q3"},
		{"capture with a rank hint", "8/8/8/8/8/R7/8/R2n4 w - - 0 1", "R1xd1", "8/8/8/8/8/R7/8/3R4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			play(t, g, tt.san)
			board := g.Board()
			if got := board.Position(); got != tt.want {
				t.Errorf("after %s placement = %q; want %q", tt.san, got, tt.want)
			}
		})
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		sans []string
		want string
	}{
		{
			name: "capture resets the clock",
			fen:  StartingFEN,
			sans: []string{"e4", "d5", "exd5"},
			want: "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		},
		{
			name: "white promotion",
			fen:  "8/4P3/8/8/8/8/8/k6K w - - 3 1",
			sans: []string{"e8=Q"},
			want: "4Q3/8/8/8/8/8/8/k6K b - - 0 1",
		},
		{
			name: "black under-promotion",
			fen:  "k6K/8/8/8/8/8/4p3/8 b - - 0 1",
			sans: []string{"e1=N"},
			want: "k6K/8/8/8/8/8/8/4n3 w - - 0 2",
		},
		{
			name: "capture promotion",
			fen:  "3r4/4P3/8/8/8/8/8/k6K w - - 0 1",
			sans: []string{"exd8=R+"},
			want: "3R4/8/8/8/8/8/8/k6K b - - 0 1",
		},
		{
			name: "black double step sets en passant",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			sans: []string{"c5"},
			want: "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			play(t, g, tt.sans...)
			if got := g.FEN(); got != tt.want {
				t.Errorf("FEN() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestMoveDetails(t *testing.T) {
	g := mustGame(t, "3r4/4P3/8/8/8/8/8/k6K w - - 0 1")
	move, err := g.Move("exd8=Q")
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}

	want := &Move{
		SAN:       "exd8=Q",
		Kind:      PawnMove,
		Colour:    chess.White,
		Symbol:    'P',
		From:      []chess.Coord{chess.MustSquare("e7")},
		To:        []chess.Coord{chess.MustSquare("d8")},
		Captured:  'r',
		Promotion: 'Q',
		EnPassant: chess.NoSquare,
	}
	if diff := cmp.Diff(want, move); diff != "" {
		t.Errorf("Move mismatch (-want +got):\n%s", diff)
	}
	if got := move.LAN(); got != "e7d8q" {
		t.Errorf("LAN() = %q; want e7d8q", got)
	}
	if !move.IsCapture() {
		t.Error("IsCapture() = false; want true")
	}
}

func TestCastlingMoves(t *testing.T) {
	const ready = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

	tests := []struct {
		name string
		fen  string
		sans []string
		want string
	}{
		{
			name: "white kingside",
			fen:  ready,
			sans: []string{"O-O"},
			want: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 1 1",
		},
		{
			name: "white queenside",
			fen:  ready,
			sans: []string{"O-O-O"},
			want: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/2KR3R b kq - 1 1",
		},
		{
			name: "black both wings",
			fen:  ready,
			sans: []string{"a3", "O-O-O"},
			want: "2kr3r/pppppppp/8/8/8/P7/1PPPPPPP/R3K2R w KQ - 1 2",
		},
		{
			name: "castle with a check suffix",
			fen:  "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			sans: []string{"O-O+"},
			want: "4k3/8/8/8/8/8/8/5RK1 b - - 1 1",
		},
		{
			name: "king move drops both rights",
			fen:  ready,
			sans: []string{"Kd1"},
			want: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R2K3R b kq - 1 1",
		},
		{
			name: "kingside rook move drops one right",
			fen:  ready,
			sans: []string{"Rg1"},
			want: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K1R1 b Qkq - 1 1",
		},
		{
			name: "black queenside rook move",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1",
			sans: []string{"Rb8"},
			want: "1r2k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQk - 1 2",
		},
		{
			name: "capturing a rook keeps the victim's rights",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			sans: []string{"Rxa8+"},
			want: "R3k2r/8/8/8/8/8/8/4K2R b Kkq - 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			play(t, g, tt.sans...)
			if got := g.FEN(); got != tt.want {
				t.Errorf("FEN() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestCastlingMoveShape(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	move, err := g.Move("O-O-O")
	if err != nil {
		t.Fatalf("O-O-O error: %v", err)
	}
	wantFrom := []chess.Coord{chess.MustSquare("e1"), chess.MustSquare("a1")}
	wantTo := []chess.Coord{chess.MustSquare("c1"), chess.MustSquare("d1")}
	if diff := cmp.Diff(wantFrom, move.From); diff != "" {
		t.Errorf("From mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTo, move.To); diff != "" {
		t.Errorf("To mismatch (-want +got):\n%s", diff)
	}
	if move.Symbol != 'K' || move.Kind != QueensideCastle {
		t.Errorf("Symbol=%v Kind=%v; want K QueensideCastle", move.Symbol, move.Kind)
	}
}

func TestStrictCastling(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		san     string
		wantMsg string
	}{
		{"through an attacked square", "5r2/8/8/8/8/8/8/4K2R w K - 0 1", "O-O", "f1 square is attacked"},
		{"into an attacked square", "6r1/8/8/8/8/8/8/4K2R w K - 0 1", "O-O", "g1 square is attacked"},
		{"out of check", "4r3/8/8/8/8/8/8/4K2R w K - 0 1", "O-O", "white king is in check"},
		{"black queenside through d8", "r3k3/8/8/8/8/8/8/3RK3 b q - 0 1", "O-O-O", "d8 square is attacked"},
		{"no rights in the FEN", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1", "O-O", "white king may no longer castle kingside"},
		{"only the other wing", "4k3/8/8/8/8/8/8/R3K2R w K - 0 1", "O-O-O", "white king may no longer castle queenside"},
		{"black right lost", "r3k2r/8/8/8/8/8/8/4K3 b Qq - 0 1", "O-O", "black king may no longer castle kingside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lenient := mustGame(t, tt.fen)
			if _, err := lenient.Move(tt.san); err != nil {
				t.Errorf("default castling refused %s: %v", tt.san, err)
			}

			strict := mustGame(t, tt.fen, WithStrictCastling())
			_, err := strict.Move(tt.san)
			if !errors.Is(err, chesserrors.ErrCastling) {
				t.Fatalf("strict %s error = %v; want ErrCastling", tt.san, err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("strict %s message = %q; want %q", tt.san, err.Error(), tt.wantMsg)
			}
		})
	}

	// Rights are lost once the king has moved.
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", WithStrictCastling())
	for _, san := range []string{"Kd1", "Kd8", "Ke1", "Ke8"} {
		if _, err := g.Move(san); err != nil {
			t.Fatalf("%s: %v", san, err)
		}
	}
	if _, err := g.Move("O-O"); !errors.Is(err, chesserrors.ErrCastling) {
		t.Errorf("strict O-O after the king moved: error = %v; want ErrCastling", err)
	}

	// b1 may be attacked on the queenside; only the king's path matters.
	g = mustGame(t, "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", WithStrictCastling())
	if _, err := g.Move("O-O-O"); err != nil {
		t.Errorf("strict O-O-O with b1 attacked: %v", err)
	}
}

func TestGameOver(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		sans          []string
		wantCheck     bool
		wantCheckmate bool
		wantStalemate bool
	}{
		{
			name: "starting position",
			fen:  StartingFEN,
		},
		{
			name:          "scholars mate already on the board",
			fen:           "r1bqkbnr/ppp2Qpp/2np4/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 1",
			wantCheck:     true,
			wantCheckmate: true,
		},
		{
			name:          "queen takes f7 for mate",
			fen:           "r1bqkbnr/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1",
			sans:          []string{"Qxf7#"},
			wantCheck:     true,
			wantCheckmate: true,
		},
		{
			name:      "unprotected queen can be taken",
			fen:       "k7/8/8/8/8/8/1Q6/K7 w - - 0 1",
			sans:      []string{"Qb7+"},
			wantCheck: true,
		},
		{
			name:          "protected queen mates",
			fen:           "k7/8/2K5/8/8/8/1Q6/8 w - - 0 1",
			sans:          []string{"Qb7#"},
			wantCheck:     true,
			wantCheckmate: true,
		},
		{
			name:          "fools mate",
			fen:           StartingFEN,
			sans:          []string{"f3", "e5", "g4", "Qh4#"},
			wantCheck:     true,
			wantCheckmate: true,
		},
		{
			name:          "king boxed in with a blocked pawn",
			fen:           "8/p7/P7/8/5q2/5k1K/8/8 w - - 0 1",
			wantStalemate: true,
		},
		{
			name:      "check that can be blocked",
			fen:       "4k3/8/8/8/8/2N5/3PPP2/r3K3 w - - 0 1",
			wantCheck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			play(t, g, tt.sans...)

			if got := g.InCheck(g.Turn()); got != tt.wantCheck {
				t.Errorf("InCheck(%v) = %v; want %v", g.Turn(), got, tt.wantCheck)
			}
			if got := g.Checkmate(); got != tt.wantCheckmate {
				t.Errorf("Checkmate() = %v; want %v", got, tt.wantCheckmate)
			}
			if got := g.Stalemate(); got != tt.wantStalemate {
				t.Errorf("Stalemate() = %v; want %v", got, tt.wantStalemate)
			}
		})
	}
}

func TestGameOverLeavesBoardUntouched(t *testing.T) {
	g := mustGame(t, "8/p7/P7/8/5q2/5k1K/8/8 w - - 0 1")
	before := g.FEN()
	g.Checkmate()
	g.Stalemate()
	if g.FEN() != before {
		t.Errorf("game-over queries changed the game: %s", g.FEN())
	}
}

func TestQueries(t *testing.T) {
	g := StartingPosition()

	if got := g.PieceAt("e1"); got != 'K' {
		t.Errorf("PieceAt(e1) = %v; want K", got)
	}
	if got := g.PieceAt("e4"); got != chess.Empty {
		t.Errorf("PieceAt(e4) = %v; want empty", got)
	}

	got := g.SquareMoves("g1")
	if diff := cmp.Diff([]string{"f3", "h3"}, got); diff != "" {
		t.Errorf("SquareMoves(g1) mismatch (-want +got):\n%s", diff)
	}
	if got := g.SquareMoves("e4"); len(got) != 0 {
		t.Errorf("SquareMoves(e4) = %v; want none", got)
	}
	if got := g.SquareMoves("x9"); got != nil {
		t.Errorf("SquareMoves(x9) = %v; want nil", got)
	}

	board := g.Board()
	board.Clear()
	if g.PieceAt("e1") != 'K' {
		t.Error("clearing the returned board changed the game")
	}
}

func TestPlace(t *testing.T) {
	g := EmptyPosition()
	if !g.Place('K', "e1") || !g.Place('k', "e8") || !g.Place('Q', "d1") {
		t.Fatal("Place rejected a valid piece")
	}
	if g.Place('X', "a1") {
		t.Error("Place accepted an invalid symbol")
	}
	if g.Place('Q', "j1") {
		t.Error("Place accepted an invalid square")
	}
	play(t, g, "Qd7+")
	if !g.InCheck(chess.Black) {
		t.Error("black should be in check after Qd7+")
	}
	if want := "4k3/3Q4/8/8/8/8/8/4K3 b - - 1 1"; g.FEN() != want {
		t.Errorf("FEN() = %q; want %q", g.FEN(), want)
	}
}

func TestHistory(t *testing.T) {
	g := StartingPosition()
	play(t, g, "e4", "e5")

	history := g.History()
	if len(history) != 2 {
		t.Fatalf("len(History()) = %d; want 2", len(history))
	}
	if history[0].SAN != "e4" || history[1].SAN != "e5" {
		t.Errorf("History() = %s, %s; want e4, e5", history[0].SAN, history[1].SAN)
	}
	if history[1].Colour != chess.Black {
		t.Errorf("second move colour = %v; want Black", history[1].Colour)
	}

	history[0] = nil
	if g.History()[0] == nil {
		t.Error("modifying the returned history changed the game")
	}
}
