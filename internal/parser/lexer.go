package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// Lexer tokenizes movetext input.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	lineNum  uint
	ravLevel uint
	eof      bool
	cfg      *config.Config
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	// Initialize all to error
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	// Whitespace
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}

	// Brackets and quotes
	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	// Special symbols
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab[0] = EOS
	chTab['*'] = Star

	// Digits
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	// Alpha characters (upper and lowercase)
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	// Files (a-h) and ranks (1-8)
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	// Piece letters, capture, promotion, castling and check marks
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'x', '=', 'O', 'o', '-', '+', '#'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
// If cfg is nil, a default config is created.
func NewLexer(r io.Reader, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Lexer{
		reader:  bufio.NewReader(r),
		lineNum: 0,
		cfg:     cfg,
	}
}

// readLine reads the next line from input. Full-width characters are
// folded to their ASCII forms so that movetext typed with an East Asian
// input method lexes the same as plain ASCII.
func (l *Lexer) readLine() bool {
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		l.eof = true
		return false
	}
	l.line = width.Fold.String(line)
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// logf reports a lexical problem when verbosity allows.
func (l *Lexer) logf(format string, args ...interface{}) {
	if l.cfg.Verbosity > 0 && l.cfg.LogFile != nil {
		fmt.Fprintf(l.cfg.LogFile, format, args...)
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.lineNum
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	// Need a new line?
	if l.line == "" || l.pos >= len(l.line) {
		if l.eof || !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.logf("Unmatched comment end on line %d.\n", l.lineNum)
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}

	case Annotate:
		// Gather annotation symbols (!, ?, !!, ??, !?, ?!)
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}

	case CheckSymbol:
		// Allow ++ for double check
		for l.pos < len(l.line) && chTab[l.currentChar()] == CheckSymbol {
			l.advance()
		}
		return &Token{Type: CheckSymbol, Text: l.line[symbolStart:l.pos]}

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart}

	case RAVEnd:
		if l.ravLevel > 0 {
			l.ravLevel--
			return &Token{Type: RAVEnd}
		}
		l.logf("Too many ')' found on line %d.\n", l.lineNum)
		return &Token{Type: NoToken}

	case Percent:
		// Escape to end of line
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	case Escape:
		if l.pos < len(l.line) {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Alpha:
		return l.gatherAlpha(ch, symbolStart)

	case Digit:
		return l.gatherNumeric(ch)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}

	case EOS:
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	default:
		l.logf("Unknown character %c (0x%x) on line %d.\n", ch, ch, l.lineNum)
		for l.pos < len(l.line) && chTab[l.currentChar()] == ErrorToken {
			l.advance()
		}
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, Text: l.line[start:l.pos]}
	}
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			return &Token{Type: StringToken, Text: sb.String()}
		}
		sb.WriteByte(ch)
	}

	l.logf("Missing closing quote on line %d.\n", l.lineNum)
	return &Token{Type: StringToken, Text: sb.String()}
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}
			}
			sb.WriteByte(ch)
		}

		if !l.readLine() {
			break
		}
	}

	l.logf("Missing end of comment.\n")
	return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}
}

// gatherAlpha handles alpha characters (potential moves).
func (l *Lexer) gatherAlpha(ch byte, symbolStart int) *Token {
	if !moveChars[ch] {
		l.logf("Unknown character %c (0x%x) on line %d.\n", ch, ch, l.lineNum)
		return &Token{Type: NoToken}
	}

	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	text := normalizeCastling(l.line[symbolStart:l.pos])
	if !moveSeemsValid(text) {
		l.logf("Unknown move text %s on line %d.\n", text, l.lineNum)
	}
	return &Token{Type: MoveToken, Text: text}
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// Could be 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return l.makeCastleToken("O-O-O")
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return l.makeCastleToken("O-O")
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2") {
			l.pos += 2
			if strings.HasPrefix(l.line[l.pos:], "-1/2") {
				l.pos += 4
			}
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	return l.gatherMoveNumber()
}

// makeCastleToken creates a castling move token, keeping any check mark
// that follows.
func (l *Lexer) makeCastleToken(text string) *Token {
	start := l.pos
	for l.pos < len(l.line) && chTab[l.currentChar()] == CheckSymbol {
		l.advance()
	}
	text += l.line[start:l.pos]
	return &Token{Type: MoveToken, Text: text}
}

// gatherMoveNumber parses a move number token.
func (l *Lexer) gatherMoveNumber() *Token {
	start := l.pos - 1
	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}

	// Skip trailing dots
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.advance()
	}

	numStr := strings.TrimRight(l.line[start:l.pos], ".")
	var moveNum uint
	fmt.Sscanf(numStr, "%d", &moveNum) //nolint:gosec // G104: default 0 is acceptable

	return &Token{Type: MoveNumber, MoveNum: moveNum}
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// normalizeCastling rewrites lower-case castling to the O-O forms.
func normalizeCastling(text string) string {
	for _, form := range []string{"o-o-o", "o-o"} {
		if strings.HasPrefix(text, form) {
			return strings.ToUpper(form) + text[len(form):]
		}
	}
	return text
}

// moveSeemsValid does a basic check if the move text looks like a move.
func moveSeemsValid(text string) bool {
	if strings.HasPrefix(text, "O-O") {
		return true
	}
	if len(text) < 2 {
		return false
	}

	// Must contain at least one file (a-h) and one rank (1-8)
	hasFile := false
	hasRank := false
	for _, c := range text {
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}

	return hasFile && hasRank
}

// RestartForNewGame resets lexer state for a new game.
func (l *Lexer) RestartForNewGame() {
	l.ravLevel = 0
}

// LineNumber returns the line the most recent token was read from.
func (l *Lexer) LineNumber() uint {
	return l.lineNum
}
