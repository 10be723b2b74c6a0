// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Position and moves
	startFEN       = flag.String("fen", "", "Starting position in FEN (default: standard starting position)")
	movesArg       = flag.String("moves", "", `SAN movetext to play, e.g. "1. e4 e5 2. Nf3"`)
	strictCastling = flag.Bool("strict", false, "Refuse castling out of, through or into check")
	validateMode   = flag.Bool("validate", false, "Validate each starting FEN before playing")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	outputFormat = flag.String("format", "text", "Output format: text, json, fen")
	compactJSON  = flag.Bool("compact", false, "Write JSON without indentation")
	noHistory    = flag.Bool("nohistory", false, "Omit the move list from reports")
	parquetFile  = flag.String("parquet", "", "Also export reports to this parquet file")

	// Saved games
	storeDir   = flag.String("store", "", "Directory of the saved-game store")
	saveAs     = flag.String("save", "", "Save the replayed game under this name")
	loadGame   = flag.String("load", "", "Resume the stored game with this name")
	deleteGame = flag.String("delete", "", "Delete the stored game with this name")
	listGames  = flag.Bool("list", false, "List stored games")

	// Duplicates
	suppressDuplicates = flag.Bool("D", false, "Suppress games ending in a position already reported")
	exactDuplicates    = flag.Bool("dupexact", false, "Duplicates must also have the same number of plies")
	duplicateLimit     = flag.Int("dupmax", 0, "Maximum positions remembered for -D (0 = unlimited)")

	// Batch processing
	batchFile   = flag.String("batch", "", `File of "FEN | movetext" lines to replay`)
	workers     = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	stopOnError = flag.Bool("stoponerror", false, "Stop a batch at the first failing line")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	quiet     = flag.Bool("s", false, "Silent mode (no summary)")
	verbose   = flag.Bool("verbose", false, "Log each game as it is replayed")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration and checks
// the result.
func applyFlags(cfg *config.Config) error {
	applyRuleFlags(cfg)
	if err := applyOutputFlags(cfg); err != nil {
		return err
	}
	applyStoreFlags(cfg)
	applyBatchFlags(cfg)
	applyDuplicateFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Check()
}

// applyRuleFlags configures the rule options.
func applyRuleFlags(cfg *config.Config) {
	cfg.StrictCastling = *strictCastling
	cfg.Validate = *validateMode
}

// applyOutputFlags configures report formatting.
func applyOutputFlags(cfg *config.Config) error {
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	cfg.Output.Indent = !*compactJSON
	cfg.Output.ShowHistory = !*noHistory
	cfg.Output.Filename = *outputFile
	cfg.Output.ParquetFile = *parquetFile
	return nil
}

// applyStoreFlags configures the saved-game store.
func applyStoreFlags(cfg *config.Config) {
	cfg.Store.Dir = *storeDir
	cfg.Store.SaveAs = *saveAs
	cfg.Store.Load = *loadGame
	cfg.Store.Delete = *deleteGame
	cfg.Store.List = *listGames
}

// applyBatchFlags configures batch processing.
func applyBatchFlags(cfg *config.Config) {
	cfg.Batch.InputFile = *batchFile
	cfg.Batch.Workers = *workers
	cfg.Batch.StopOnError = *stopOnError
}

// applyDuplicateFlags configures duplicate suppression.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates
	cfg.Duplicate.ExactMatch = *exactDuplicates
	cfg.Duplicate.MaxGames = *duplicateLimit
}
