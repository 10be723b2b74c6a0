package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/parser"
	"github.com/lgbarn/chess-rules-go/internal/storage"
	"github.com/lgbarn/chess-rules-go/internal/validate"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// Input describes where the games to replay come from.
type Input struct {
	FEN   string    // starting position for inline moves
	Moves string    // inline movetext
	Files []string  // movetext files
	Stdin io.Reader // read when nothing else is given
}

// Session carries the state shared by every game in one run.
type Session struct {
	cfg    *config.Config
	store  *storage.Storage
	writer output.GameWriter
	dups   *hashing.DuplicateDetector

	replayed int
	failed   int
}

// newSession opens the store if one is configured and picks the report
// writers for the configured formats.
func newSession(cfg *config.Config) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		writer: output.NewGameWriter(cfg.OutputFile, cfg),
	}
	if cfg.Output.ParquetFile != "" {
		pw, err := output.NewParquetWriter(cfg.Output.ParquetFile, int64(cfg.Batch.WorkerCount()))
		if err != nil {
			return nil, err
		}
		s.writer = output.NewMultiWriter(s.writer, pw)
	}
	if cfg.Duplicate.Suppress {
		s.dups = hashing.NewDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxGames)
	}
	if cfg.Store.Enabled() {
		store, err := storage.Open(cfg.Store.Dir)
		if err != nil {
			s.writer.Close() //nolint:errcheck,gosec // already failing
			return nil, err
		}
		s.store = store
	}
	return s, nil
}

// Close flushes pending reports and closes the store.
func (s *Session) Close() error {
	err := s.writer.Close()
	if s.store != nil {
		if cerr := s.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// logf writes a diagnostic when the verbosity is at least level.
func (s *Session) logf(level int, format string, args ...interface{}) {
	if s.cfg.Verbosity >= level && s.cfg.LogFile != nil {
		fmt.Fprintf(s.cfg.LogFile, format, args...)
	}
}

// fail records a failed game and logs why.
func (s *Session) fail(name string, err error) {
	s.failed++
	s.logf(1, "%s: %v\n", name, err)
}

// checkFEN runs the validator when enabled.
func (s *Session) checkFEN(name, fen string) error {
	if !s.cfg.Validate {
		return nil
	}
	result := validate.FEN(fen)
	if result.Valid() {
		return nil
	}
	for _, e := range result.Errors {
		s.logf(2, "%s: %v\n", name, e)
	}
	return fmt.Errorf("%w: %d validation error(s), first %v",
		errors.ErrInvalidFEN, len(result.Errors), result.Errors[0])
}

// replay plays moves from fen, writes the report and saves the game when
// asked. A game that stops on a bad move is still reported. source and
// line locate the game in its input file, if any.
func (s *Session) replay(name, source string, line int, tags map[string]string, fen string, moves []string) error {
	if err := s.checkFEN(name, fen); err != nil {
		s.fail(name, err)
		return err
	}

	s.logf(2, "Replaying %s from %s (%d moves)\n", name, fen, len(moves))
	g, err := engine.Replay(fen, moves, s.cfg.EngineOptions()...)
	var replayErr *errors.ReplayError
	if errors.As(err, &replayErr) {
		replayErr.File = source
		replayErr.Line = line
	}
	return s.finish(name, tags, g, err)
}

// finish reports a replayed game and stores it when a save name is set.
func (s *Session) finish(name string, tags map[string]string, g *engine.Game, err error) error {
	s.replayed++
	if g == nil {
		s.fail(name, err)
		return err
	}
	if err == nil && s.dups != nil && s.dups.CheckAndAdd(g) {
		s.logf(2, "Skipping %s: duplicate of an earlier game\n", name)
		return nil
	}
	if werr := s.writer.WriteReport(output.BuildReport(name, tags, g, err)); werr != nil {
		return werr
	}
	if err != nil {
		s.fail(name, err)
		return err
	}

	if s.store != nil && s.cfg.Store.SaveAs != "" {
		if err := s.store.Save(storage.NewRecord(s.cfg.Store.SaveAs, g)); err != nil {
			return err
		}
		s.logf(2, "Saved %s as %q\n", name, s.cfg.Store.SaveAs)
	}
	return nil
}

// processMovetext replays every game found in r.
func (s *Session) processMovetext(r io.Reader, source, defaultFEN string) {
	p := parser.NewParser(r, s.cfg)
	games, err := p.ParseAllGames()
	if err != nil {
		s.fail(source, err)
	}

	for i, game := range games {
		name := source
		if len(games) > 1 {
			name = fmt.Sprintf("%s#%d", source, i+1)
		}
		if event := game.Tags["Event"]; event != "" {
			name = event
		}

		fen := game.FEN()
		if fen == "" {
			fen = defaultFEN
		}

		s.replay(name, source, game.Line, game.Tags, fen, game.Moves) //nolint:errcheck // failures are counted by the session
	}
}

// processFiles replays each movetext file in turn.
func (s *Session) processFiles(files []string) {
	for _, filename := range files {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			s.fail(filename, err)
			continue
		}
		s.processMovetext(file, filename, engine.StartingFEN)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
	}
}

// processLoaded resumes a stored game and plays any further moves on it.
func (s *Session) processLoaded(name, movetext string) error {
	rec, err := s.store.Load(name)
	if err != nil {
		s.fail(name, err)
		return err
	}
	if err := s.checkFEN(name, rec.InitialFEN); err != nil {
		s.fail(name, err)
		return err
	}

	g, err := rec.Restore(s.cfg.EngineOptions()...)
	if err != nil {
		return s.finish(name, nil, g, err)
	}

	extra := parser.ParseMovetext(movetext, s.cfg).Moves
	s.logf(2, "Resuming %s after %d moves (%d more)\n", name, len(rec.Moves), len(extra))
	for i, san := range extra {
		if _, err := g.Move(san); err != nil {
			return s.finish(name, nil, g, &errors.ReplayError{Err: err, PlyNum: len(rec.Moves) + i + 1, MoveText: san})
		}
	}
	return s.finish(name, nil, g, nil)
}

// duplicates returns how many games were suppressed as duplicates.
func (s *Session) duplicates() int {
	if s.dups == nil {
		return 0
	}
	return s.dups.DuplicateCount()
}

// listStoredGames writes one stored game name per line.
func (s *Session) listStoredGames() error {
	names, err := s.store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(s.cfg.OutputFile, name)
	}
	s.logf(1, "%d stored game(s).\n", len(names))
	return nil
}

// deleteStoredGame removes a stored game.
func (s *Session) deleteStoredGame(name string) error {
	if err := s.store.Delete(name); err != nil {
		s.fail(name, err)
		return err
	}
	s.logf(1, "Deleted %q.\n", name)
	return nil
}

// readJobs reads the batch lines from r.
func readJobs(r io.Reader) ([]worker.Job, error) {
	var jobs []worker.Job
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if job, ok := worker.ParseJob(scanner.Text(), lineNum); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, scanner.Err()
}

// processBatch replays every line of a batch file on the worker pool and
// reports the results in input order.
func (s *Session) processBatch(r io.Reader, source string) error {
	jobs, err := readJobs(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", source)
	}

	results := worker.RunOrdered(jobs, worker.ReplayFunc(s.cfg), s.cfg.Batch.WorkerCount(), s.cfg.Batch.StopOnError)
	for _, result := range results {
		if result.Log != "" && s.cfg.LogFile != nil {
			io.WriteString(s.cfg.LogFile, result.Log) //nolint:errcheck,gosec // diagnostics only
		}
		name := fmt.Sprintf("%s:%d", source, result.Job.Line)
		err := s.finish(name, nil, result.Game, result.Error)
		if err != nil && s.cfg.Batch.StopOnError {
			return err
		}
	}
	return nil
}
