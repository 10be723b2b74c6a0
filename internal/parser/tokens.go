// Package parser tokenizes and parses SAN movetext. It accepts the PGN
// movetext conventions (move numbers, comments, NAGs, variations, results
// and tag pairs) and yields the mainline moves as SAN strings for the
// engine to resolve.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the parser
	EOFToken TokenType = iota
	TagToken
	StringToken
	CommentToken
	NAGToken
	CheckSymbol
	MoveNumber
	RAVStart
	RAVEnd
	MoveToken
	TerminatingResult

	// Internal tokens used for identification
	Whitespace
	TagStart
	TagEnd
	DoubleQuote
	CommentStart
	CommentEnd
	LineComment
	Annotate
	Dot
	Percent
	Escape
	Alpha
	Digit
	Star
	EOS
	NoToken
	ErrorToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagToken:          "TAG",
	StringToken:       "STRING",
	CommentToken:      "COMMENT",
	NAGToken:          "NAG",
	CheckSymbol:       "CHECK_SYMBOL",
	MoveNumber:        "MOVE_NUMBER",
	RAVStart:          "RAV_START",
	RAVEnd:            "RAV_END",
	MoveToken:         "MOVE",
	TerminatingResult: "TERMINATING_RESULT",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	TagEnd:            "TAG_END",
	DoubleQuote:       "DOUBLE_QUOTE",
	CommentStart:      "COMMENT_START",
	CommentEnd:        "COMMENT_END",
	LineComment:       "LINE_COMMENT",
	Annotate:          "ANNOTATE",
	Dot:               "DOT",
	Percent:           "PERCENT",
	Escape:            "ESCAPE",
	Alpha:             "ALPHA",
	Digit:             "DIGIT",
	Star:              "STAR",
	EOS:               "EOS",
	NoToken:           "NO_TOKEN",
	ErrorToken:        "ERROR_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// Text holds the move, tag name, string, comment, NAG or result text
	Text string

	// MoveNum holds move numbers
	MoveNum uint

	// Line for error reporting
	Line uint
}
