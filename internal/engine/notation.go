package engine

import (
	"regexp"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MoveKind classifies a SAN string.
type MoveKind int

const (
	PieceMove MoveKind = iota
	PawnMove
	DisambiguatedMove
	KingsideCastle
	QueensideCastle
)

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	names := []string{"PieceMove", "PawnMove", "DisambiguatedMove", "KingsideCastle", "QueensideCastle"}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// IsCastle reports whether the kind is either castle.
func (k MoveKind) IsCastle() bool {
	return k == KingsideCastle || k == QueensideCastle
}

// errorClass maps a move kind to the notation family reported in errors.
func (k MoveKind) errorClass() errors.MoveClass {
	switch k {
	case PieceMove:
		return errors.StandardMove
	case PawnMove:
		return errors.PawnMove
	case DisambiguatedMove:
		return errors.DisambiguatedMove
	case KingsideCastle, QueensideCastle:
		return errors.CastlingMove
	}
	return errors.UnknownMove
}

// SAN tokens.
const (
	KingsideCastleSAN  = "O-O"
	QueensideCastleSAN = "O-O-O"

	captureMark   = "x"
	promotionMark = "="
)

// sanPatterns is the full accepted grammar. Each form may carry a check
// (+), double check (++) or checkmate (#) suffix.
var sanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-h][1-8](\+|\+\+|#)?$`),             // e4
	regexp.MustCompile(`^[KQRBN][a-h][1-8](\+|\+\+|#)?$`),      // Nf3
	regexp.MustCompile(`^[a-h]x[a-h][1-8](\+|\+\+|#)?$`),       // exd5
	regexp.MustCompile(`^[KQRBN]x[a-h][1-8](\+|\+\+|#)?$`),     // Nxf3
	regexp.MustCompile(`^[a-h][18]=[QRBN](\+|\+\+|#)?$`),       // e8=Q
	regexp.MustCompile(`^[a-h]x[a-h][18]=[QRBN](\+|\+\+|#)?$`), // exd8=Q
	regexp.MustCompile(`^O-O(\+|\+\+|#)?$`),                    // O-O
	regexp.MustCompile(`^O-O-O(\+|\+\+|#)?$`),                  // O-O-O
}

// disambiguatedPattern matches piece moves carrying a file, rank or full
// origin square, e.g. Nbd2, R1xd1, Qh4e1#.
var disambiguatedPattern = regexp.MustCompile(`^[KQRBN][a-h]?[1-8]?x?[a-h][1-8](\+|\+\+|#)?$`)

// Notation is a classified SAN string. It says nothing about the board;
// Resolve turns it into concrete squares.
type Notation struct {
	SAN       string
	Kind      MoveKind
	Letter    byte        // upper-case piece letter, 'P' for pawns, 'K' for castles
	Target    chess.Coord // destination (unused for castles)
	FromFile  int         // required origin file, -1 if unconstrained
	FromRank  int         // required origin rank index, -1 if unconstrained
	Capture   bool
	Promotion chess.Kind
	Suffix    string // "+", "++", "#" or ""
}

// ParseSAN classifies a SAN string. The disambiguated form is tested before
// the plain piece form because every plain piece move also matches the
// disambiguated pattern.
func ParseSAN(san string) (Notation, error) {
	if !matchesGrammar(san) && !isDisambiguated(san) {
		return Notation{}, errors.NewMoveError(errors.UnknownMove, errors.Notation, san, "unknown SAN: %s", san)
	}

	n := Notation{
		SAN:      san,
		FromFile: -1,
		FromRank: -1,
		Capture:  strings.Contains(san, captureMark),
		Suffix:   checkSuffix(san),
	}
	body, promotion := splitPromotion(sanitize(san))

	switch {
	case isDisambiguated(san):
		n.Kind = DisambiguatedMove
		n.Letter = san[0]
		for i := 1; i < len(body)-2; i++ {
			c := body[i]
			if c >= chess.FirstRank && c <= chess.LastRank {
				n.FromRank = int(chess.LastRank - c)
			} else {
				n.FromFile = int(c - chess.FirstFile)
			}
		}
	case strings.IndexByte("RNBQK", san[0]) >= 0:
		n.Kind = PieceMove
		n.Letter = san[0]
	case san[0] >= chess.FirstFile && san[0] <= chess.LastFile:
		n.Kind = PawnMove
		n.Letter = 'P'
		n.FromFile = int(san[0] - chess.FirstFile)
		if promotion != "" {
			n.Promotion = chess.KindFromLetter(promotion[0])
		}
	default:
		switch strings.TrimSuffix(san, n.Suffix) {
		case KingsideCastleSAN:
			n.Kind = KingsideCastle
		case QueensideCastleSAN:
			n.Kind = QueensideCastle
		default:
			return Notation{}, errors.NewMoveError(errors.UnknownMove, errors.Notation, san, "unknown SAN: %s", san)
		}
		n.Letter = 'K'
		n.Target = chess.NoSquare
		return n, nil
	}

	target, err := chess.ParseSquare(body[len(body)-2:])
	if err != nil {
		return Notation{}, errors.NewMoveError(errors.UnknownMove, errors.Notation, san, "unknown SAN: %s", san)
	}
	n.Target = target
	return n, nil
}

// matchesGrammar reports whether san matches one of the plain SAN forms.
func matchesGrammar(san string) bool {
	for _, p := range sanPatterns {
		if p.MatchString(san) {
			return true
		}
	}
	return false
}

// isDisambiguated reports whether san names its origin file, rank or both.
func isDisambiguated(san string) bool {
	if !disambiguatedPattern.MatchString(san) {
		return false
	}
	body, _ := splitPromotion(sanitize(san))
	return len(body) > 3
}

// sanitize strips capture, check and checkmate marks.
func sanitize(san string) string {
	r := strings.NewReplacer(captureMark, "", "+", "", "#", "")
	return r.Replace(san)
}

// splitPromotion separates "e8=Q" into "e8" and "Q".
func splitPromotion(body string) (string, string) {
	if i := strings.Index(body, promotionMark); i >= 0 {
		return body[:i], body[i+1:]
	}
	return body, ""
}

// checkSuffix returns the trailing check or mate annotation.
func checkSuffix(san string) string {
	switch {
	case strings.HasSuffix(san, "++"):
		return "++"
	case strings.HasSuffix(san, "+"):
		return "+"
	case strings.HasSuffix(san, "#"):
		return "#"
	}
	return ""
}

// matchesOrigin reports whether a candidate origin satisfies the file and
// rank constraints of the notation.
func (n Notation) matchesOrigin(from chess.Coord) bool {
	if n.FromFile >= 0 && from.File != n.FromFile {
		return false
	}
	if n.FromRank >= 0 && from.Rank != n.FromRank {
		return false
	}
	return true
}
