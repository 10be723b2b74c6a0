package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Games []*Report `json:"games"`
}

// newEncoder returns a JSON encoder honouring the indent setting.
func newEncoder(w io.Writer, cfg *config.Config) *json.Encoder {
	enc := json.NewEncoder(w)
	if cfg.Output.Indent {
		enc.SetIndent("", "  ")
	}
	return enc
}

// OutputReportsJSON outputs multiple reports as a JSON array.
func OutputReportsJSON(reports []*Report, cfg *config.Config, w io.Writer) error {
	out := &JSONOutput{Games: make([]*Report, len(reports))}
	for i, r := range reports {
		out.Games[i] = reportForJSON(r, cfg)
	}
	return newEncoder(w, cfg).Encode(out)
}

// reportForJSON drops the move list when history output is off.
func reportForJSON(r *Report, cfg *config.Config) *Report {
	if cfg.Output.ShowHistory {
		return r
	}
	trimmed := *r
	trimmed.Moves = nil
	return &trimmed
}
