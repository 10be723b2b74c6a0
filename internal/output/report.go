// Package output formats finished games as text, JSON or bare FEN, and
// exports them to parquet.
package output

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Status values reported for a position.
const (
	StatusInPlay    = "in play"
	StatusCheck     = "check"
	StatusCheckmate = "checkmate"
	StatusStalemate = "stalemate"
)

// Report is the printable summary of one game.
type Report struct {
	Name       string            `json:"name,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	InitialFEN string            `json:"initialFEN"`
	FEN        string            `json:"fen"`
	Turn       string            `json:"turn"`
	Castling   string            `json:"castling"`
	EnPassant  string            `json:"enPassant"`
	HalfMoves  int               `json:"halfMoves"`
	FullMoves  int               `json:"fullMoves"`
	Status     string            `json:"status"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	Moves      []ReportMove      `json:"moves,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ReportMove describes one played move.
type ReportMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Colour     string `json:"color"`
	SAN        string `json:"san"`
	LAN        string `json:"lan"`
	Kind       string `json:"kind"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
}

// BuildReport summarizes game. A non-nil replayErr is recorded on the
// report; the position shown is wherever the game stopped.
func BuildReport(name string, tags map[string]string, game *engine.Game, replayErr error) *Report {
	r := &Report{
		Name:       name,
		Tags:       tags,
		InitialFEN: game.InitialFEN(),
		FEN:        game.FEN(),
		Turn:       strings.ToLower(game.Turn().String()),
		Castling:   game.Castling().String(),
		EnPassant:  game.EnPassant(),
		HalfMoves:  game.HalfMoves(),
		FullMoves:  game.FullMoves(),
	}
	if replayErr != nil {
		r.Error = replayErr.Error()
	}

	r.Status, r.Result = gameStatus(game)

	history := game.History()
	r.PlyCount = len(history)
	r.Moves = convertMoves(history, startingMoveNumber(game))
	return r
}

// gameStatus returns the status of the side to move and the matching
// game result.
func gameStatus(game *engine.Game) (string, string) {
	switch {
	case game.Checkmate():
		if game.Turn() == chess.White {
			return StatusCheckmate, "0-1"
		}
		return StatusCheckmate, "1-0"
	case game.Stalemate():
		return StatusStalemate, "1/2-1/2"
	case game.InCheck(game.Turn()):
		return StatusCheck, "*"
	default:
		return StatusInPlay, "*"
	}
}

// startingMoveNumber reads the full-move number of the initial position.
func startingMoveNumber(game *engine.Game) int {
	initial, err := engine.NewGame(game.InitialFEN())
	if err != nil {
		return 1
	}
	return initial.FullMoves()
}

// convertMoves numbers the history, counting up after each black move.
func convertMoves(history []*engine.Move, moveNum int) []ReportMove {
	if len(history) == 0 {
		return nil
	}
	result := make([]ReportMove, 0, len(history))
	for _, move := range history {
		rm := ReportMove{
			Colour: strings.ToLower(move.Colour.String()),
			SAN:    move.SAN,
			LAN:    move.LAN(),
			Kind:   move.Kind.String(),
			Piece:  move.Symbol.Kind().String(),
		}
		if move.Colour == chess.White || len(result) == 0 {
			rm.MoveNumber = moveNum
		}
		if len(move.From) > 0 {
			rm.From = move.From[0].String()
			rm.To = move.To[0].String()
		}
		if move.IsCapture() {
			rm.Captured = move.Captured.Kind().String()
		}
		if move.Promotion != chess.Empty {
			rm.Promotion = move.Promotion.Kind().String()
		}
		result = append(result, rm)

		if move.Colour == chess.Black {
			moveNum++
		}
	}
	return result
}
