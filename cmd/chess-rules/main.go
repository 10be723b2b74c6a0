// chess-rules replays SAN movetext from a FEN position and reports the
// resulting position, check, checkmate and stalemate.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-rules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	os.Exit(run(cfg, Input{
		FEN:   *startFEN,
		Moves: *movesArg,
		Files: flag.Args(),
		Stdin: os.Stdin,
	}))
}

// run executes one invocation and returns the process exit code: 0 when
// every game replayed cleanly, 1 when any failed, 2 on a setup error.
func run(cfg *config.Config, in Input) int {
	s, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return 2
	}

	runErr := dispatch(s, in)
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}

	// Report statistics
	if s.replayed > 0 {
		s.logf(1, "%d game(s) replayed, %d failed.\n", s.replayed, s.failed)
	}
	if n := s.duplicates(); n > 0 {
		s.logf(1, "%d duplicate(s) suppressed, %d unique game(s) kept.\n", n, s.dups.UniqueCount())
	}

	switch {
	case runErr != nil && s.failed == 0:
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", runErr)
		return 2
	case s.failed > 0:
		return 1
	}
	return 0
}

// dispatch picks the operation the flags asked for.
func dispatch(s *Session, in Input) error {
	cfg := s.cfg
	switch {
	case cfg.Store.List:
		return s.listStoredGames()
	case cfg.Store.Delete != "":
		return s.deleteStoredGame(cfg.Store.Delete)
	case cfg.Batch.InputFile != "":
		file, err := os.Open(cfg.Batch.InputFile) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return err
		}
		defer file.Close() //nolint:errcheck // read-only file
		return s.processBatch(file, cfg.Batch.InputFile)
	case cfg.Store.Load != "":
		return s.processLoaded(cfg.Store.Load, in.Moves)
	case in.Moves != "" || in.FEN != "":
		fen := in.FEN
		if fen == "" {
			fen = engine.StartingFEN
		}
		if in.Moves == "" {
			// Position only: report it as given.
			return s.replay("position", "", 0, nil, fen, nil)
		}
		s.processMovetext(strings.NewReader(in.Moves), "moves", fen)
		return nil
	case len(in.Files) > 0:
		s.processFiles(in.Files)
		return nil
	default:
		s.processMovetext(in.Stdin, "stdin", engine.StartingFEN)
		return nil
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if cfg.Output.Filename == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(cfg.Output.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(cfg.Output.Filename)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", cfg.Output.Filename, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-rules [options] [movetext-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays SAN moves from a FEN position and reports check, checkmate and stalemate.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -moves \"1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7#\"\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -fen \"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1\" -moves \"O-O\" -format fen\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -batch scenarios.txt -workers 4 -format json\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -batch scenarios.txt -D -parquet games.parquet\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -store ~/.chess -save mygame -moves \"e4 e5\"\n")
}
