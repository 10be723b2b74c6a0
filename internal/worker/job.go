package worker

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/parser"
	"github.com/lgbarn/chess-rules-go/internal/validate"
)

// JobSeparator splits a batch line into its FEN and movetext halves.
const JobSeparator = "|"

// Job is one batch line: a starting FEN and the movetext to play from it.
type Job struct {
	Line     int
	FEN      string
	Movetext string
}

// ParseJob splits a "FEN | movetext" line. A line without a separator is
// movetext from the starting position. Blank lines and lines starting
// with '#' yield ok == false.
func ParseJob(line string, lineNum int) (Job, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Job{}, false
	}

	job := Job{Line: lineNum, Movetext: line}
	if fen, moves, found := strings.Cut(line, JobSeparator); found {
		job.FEN = strings.TrimSpace(fen)
		job.Movetext = strings.TrimSpace(moves)
	}
	return job, true
}

// Resolve parses the job's movetext and picks the starting FEN: the job's
// own, then a FEN tag in the movetext, then the starting position.
func (j Job) Resolve(cfg *config.Config) (string, []string) {
	movetext := parser.ParseMovetext(j.Movetext, cfg)

	fen := j.FEN
	if fen == "" {
		fen = movetext.FEN()
	}
	if fen == "" {
		fen = engine.StartingFEN
	}
	return fen, movetext.Moves
}

// Replay plays the job's movetext from its resolved FEN. With cfg.Validate
// set, the FEN is checked by the validator first.
func (j Job) Replay(cfg *config.Config) (*engine.Game, error) {
	fen, moves := j.Resolve(cfg)

	if cfg.Validate {
		if result := validate.FEN(fen); !result.Valid() {
			return nil, fmt.Errorf("line %d: %w: %v", j.Line, errors.ErrInvalidFEN, result.Errors[0])
		}
	}

	g, err := engine.Replay(fen, moves, cfg.EngineOptions()...)
	if err != nil {
		var replayErr *errors.ReplayError
		if errors.As(err, &replayErr) {
			replayErr.Line = j.Line
			return g, replayErr
		}
		return g, errors.Wrapf(err, "line %d", j.Line)
	}
	return g, nil
}

// ReplayFunc returns a ProcessFunc that replays each job with cfg. Each
// job logs into its own buffer, returned in ProcessResult.Log, so workers
// never write to cfg.LogFile.
func ReplayFunc(cfg *config.Config) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		var log bytes.Buffer
		jobCfg := *cfg
		jobCfg.SetLog(&log)

		g, err := item.Job.Replay(&jobCfg)
		return ProcessResult{
			Job:   item.Job,
			Index: item.Index,
			Game:  g,
			Error: err,
			Log:   log.String(),
		}
	}
}
