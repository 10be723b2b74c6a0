package output

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ParquetMove is one ply of a ParquetGame row.
type ParquetMove struct {
	Ply       int32  `parquet:"name=ply, type=INT32"`
	Colour    string `parquet:"name=color, type=BYTE_ARRAY, convertedtype=UTF8"`
	SAN       string `parquet:"name=san, type=BYTE_ARRAY, convertedtype=UTF8"`
	LAN       string `parquet:"name=lan, type=BYTE_ARRAY, convertedtype=UTF8"`
	Kind      string `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	Captured  string `parquet:"name=captured, type=BYTE_ARRAY, convertedtype=UTF8"`
	Promotion string `parquet:"name=promotion, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ParquetGame is the row written for each reported game.
type ParquetGame struct {
	Name       string        `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	InitialFEN string        `parquet:"name=initial_fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	FEN        string        `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status     string        `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result     string        `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	PlyCount   int32         `parquet:"name=ply_count, type=INT32"`
	Error      string        `parquet:"name=error, type=BYTE_ARRAY, convertedtype=UTF8"`
	Moves      []ParquetMove `parquet:"name=moves, type=LIST"`
}

// NewParquetGame flattens a report into a parquet row.
func NewParquetGame(r *Report) ParquetGame {
	row := ParquetGame{
		Name:       r.Name,
		InitialFEN: r.InitialFEN,
		FEN:        r.FEN,
		Status:     r.Status,
		Result:     r.Result,
		PlyCount:   int32(r.PlyCount),
		Error:      r.Error,
		Moves:      make([]ParquetMove, len(r.Moves)),
	}
	for i, m := range r.Moves {
		row.Moves[i] = ParquetMove{
			Ply:       int32(i + 1),
			Colour:    m.Colour,
			SAN:       m.SAN,
			LAN:       m.LAN,
			Kind:      m.Kind,
			Captured:  m.Captured,
			Promotion: m.Promotion,
		}
	}
	return row
}

// ParquetWriter writes one snappy-compressed row per report to a local file.
// The file is only complete once Close returns.
type ParquetWriter struct {
	file source.ParquetFile
	pw   *writer.ParquetWriter
}

// NewParquetWriter creates the file at path. parallel is the number of
// goroutines the encoder may use.
func NewParquetWriter(path string, parallel int64) (*ParquetWriter, error) {
	file, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating parquet file %s", path)
	}

	pw, err := writer.NewParquetWriter(file, new(ParquetGame), parallel)
	if err != nil {
		file.Close() //nolint:errcheck,gosec // already failing
		return nil, errors.Wrap(err, "creating parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	return &ParquetWriter{file: file, pw: pw}, nil
}

// WriteReport appends a row for r.
func (w *ParquetWriter) WriteReport(r *Report) error {
	return w.pw.Write(NewParquetGame(r))
}

// Flush is a no-op; row groups are written as they fill and on Close.
func (w *ParquetWriter) Flush() error {
	return nil
}

// Close writes the footer and closes the file.
func (w *ParquetWriter) Close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.file.Close() //nolint:errcheck,gosec // already failing
		return errors.Wrap(err, "finishing parquet file")
	}
	return w.file.Close()
}
