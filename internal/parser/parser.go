package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// Movetext is one game read from the input: its tag pairs, the mainline
// SAN moves in order, and the terminating result if one was given.
// Variations, comments, NAGs and move numbers are consumed and dropped.
// Line is the input line the game starts on.
type Movetext struct {
	Line     int
	Tags     map[string]string
	Moves    []string
	Comments []string
	Result   string
}

// FEN returns the FEN tag, or "" when the game starts from the standard
// position.
func (m *Movetext) FEN() string {
	return m.Tags["FEN"]
}

// Parser parses movetext input into Movetext values.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	ravLevel     uint
	cfg          *config.Config
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, cfg),
		cfg:   cfg,
	}
}

// ParseMovetext parses a single game held in a string.
func ParseMovetext(text string, cfg *config.Config) *Movetext {
	m, _ := NewParser(strings.NewReader(text), cfg).ParseGame()
	if m == nil {
		return &Movetext{Tags: map[string]string{}}
	}
	return m
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// logf reports a syntax problem when verbosity allows.
func (p *Parser) logf(format string, args ...interface{}) {
	if p.cfg.Verbosity > 0 && p.cfg.LogFile != nil {
		fmt.Fprintf(p.cfg.LogFile, format, args...)
	}
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*Movetext, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()
	p.lexer.RestartForNewGame()

	game := &Movetext{Line: int(p.lexer.LineNumber()), Tags: map[string]string{}}
	game.Comments = append(game.Comments, p.parseOptCommentList()...)

	p.parseOptTagList(game)

	// Skip any initial NAGs (non-standard but sometimes present)
	for p.currentToken.Type == NAGToken {
		p.nextToken()
	}

	game.Moves = p.parseMoveList(game)
	game.Comments = append(game.Comments, p.parseOptCommentList()...)
	game.Result = p.parseResult()

	if p.currentToken.Type == EOFToken && game.Moves == nil && len(game.Tags) == 0 && game.Result == "" {
		return nil, nil
	}
	return game, nil
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Movetext, error) {
	var games []*Movetext
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}
	return games, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult, CommentToken:
			return
		default:
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tag pairs.
func (p *Parser) parseOptTagList(game *Movetext) {
	for p.parseTag(game) {
	}
	game.Comments = append(game.Comments, p.parseOptCommentList()...)
}

// parseTag parses a single tag pair.
func (p *Parser) parseTag(game *Movetext) bool {
	if p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		p.nextToken()

		if p.currentToken.Type == StringToken {
			game.Tags[name] = p.currentToken.Text
			p.nextToken()
		} else {
			p.logf("Missing tag string for %s.\n", name)
		}
		return true
	}

	if p.currentToken.Type == StringToken {
		p.logf("Missing tag name for %s.\n", p.currentToken.Text)
		p.nextToken()
		return true
	}

	return false
}

// parseMoveList parses the moves at the current variation level.
func (p *Parser) parseMoveList(game *Movetext) []string {
	var moves []string
	for {
		move, ok := p.parseMove(game)
		if !ok {
			return moves
		}
		moves = append(moves, move)
		p.parseOptVariantList(game)
		game.Comments = append(game.Comments, p.parseOptCommentList()...)
	}
}

// parseMove parses an optional move number, the move, and its NAGs.
func (p *Parser) parseMove(game *Movetext) (string, bool) {
	for p.currentToken.Type == MoveNumber {
		p.nextToken()
	}
	game.Comments = append(game.Comments, p.parseOptCommentList()...)

	if p.currentToken.Type != MoveToken {
		return "", false
	}
	move := p.currentToken.Text
	p.nextToken()

	// A detached check mark belongs to the move before it
	for p.currentToken.Type == CheckSymbol {
		move += p.currentToken.Text
		p.nextToken()
	}

	for p.currentToken.Type == NAGToken {
		p.nextToken()
	}
	return move, true
}

// parseOptCommentList parses zero or more comments.
func (p *Parser) parseOptCommentList() []string {
	var comments []string
	for p.currentToken.Type == CommentToken {
		if p.currentToken.Text != "" {
			comments = append(comments, p.currentToken.Text)
		}
		p.nextToken()
	}
	return comments
}

// parseOptVariantList skips zero or more variations. Moves inside a
// variation never reach the mainline.
func (p *Parser) parseOptVariantList(game *Movetext) {
	for p.currentToken.Type == RAVStart {
		p.ravLevel++
		p.nextToken()

		if moves := p.parseMoveList(game); moves == nil {
			p.logf("Missing move list in variation.\n")
		}
		p.parseResult()

		if p.currentToken.Type == RAVEnd {
			p.ravLevel--
			p.nextToken()
		} else {
			p.logf("Missing ')' to close variation.\n")
			p.ravLevel--
			return
		}
	}
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type != TerminatingResult {
		return ""
	}
	result := p.currentToken.Text
	if p.ravLevel == 0 {
		// Set to NoToken to help skip between games
		p.currentToken = &Token{Type: NoToken}
	} else {
		p.nextToken()
	}
	return result
}
