// Package parser implements a recursive-descent parser with precedence
// climbing over the token stream the lexer produces. IF/FOR/WHILE/REPEAT
// bodies may contain any statement, including another of the same kind,
// so parseBlock simply recurses into parseStatement until it meets one of
// the caller-supplied terminator keywords. Each CASE arm (and the
// OTHERWISE fallback) is a single statement.
package parser

import (
	"fmt"

	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// Precedence levels, lowest to highest. Logical AND/OR bind loosest of the
// operators (the source does not short-circuit them, so their precedence
// only affects grouping, not evaluation order), string concatenation binds
// like addition, and NOT/unary minus bind tightest.
const (
	_ int = iota
	LOWEST
	LOGICAL     // AND OR
	EQUALITY    // = <>
	COMPARISON  // < <= > >=
	ADDITIVE    // + - &
	MULTIPLIVE  // * /
	PrecUnary   // NOT, unary -
)

var precedences = map[string]int{
	"AND": LOGICAL, "OR": LOGICAL,
	"=": EQUALITY, "<>": EQUALITY,
	"<": COMPARISON, "<=": COMPARISON, ">": COMPARISON, ">=": COMPARISON,
	"+": ADDITIVE, "-": ADDITIVE, "&": ADDITIVE,
	"*": MULTIPLIVE, "/": MULTIPLIVE,
}

// ParseError is one parser diagnostic: a message anchored to the token
// that triggered it.
type ParseError struct {
	Tok token.Token
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// Token returns the offending token, satisfying errors.tokenError.
func (e *ParseError) Token() token.Token { return e.Tok }

// Parser consumes a fixed token slice produced by the lexer. There is no
// backtracking beyond a single token of lookahead; every statement form is
// distinguishable by its leading keyword.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []error
}

// New creates a Parser over a complete token stream (normally the output
// of lexer.ScanAll).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every diagnostic recorded while parsing.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool { return p.cur().Type == token.EOF }

func (p *Parser) check(word string) bool {
	return p.cur().Word == word
}

func (p *Parser) match(word string) bool {
	if p.check(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Tok: tok, Msg: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it matches word, else records an
// error and returns the unconsumed token so callers can keep parsing.
func (p *Parser) expect(word string) token.Token {
	if p.check(word) {
		return p.advance()
	}
	p.errorf(p.cur(), "expected '%s'", word)
	return p.cur()
}

func (p *Parser) expectType(typ token.Type, what string) token.Token {
	if p.cur().Type == typ {
		return p.advance()
	}
	p.errorf(p.cur(), "expected %s", what)
	return p.cur()
}

// skipNewlines consumes zero or more NEWLINE tokens, used between
// statements and around block delimiters where blank lines are allowed.
func (p *Parser) skipNewlines() {
	for p.cur().Type == token.NEWLINE {
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a statement list,
// representing the implicit top-level block.
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	return stmts
}

// parseBlock parses statements until the current token's word is one of
// terminators, leaving that terminator unconsumed for the caller.
func (p *Parser) parseBlock(terminators ...string) []ast.Stmt {
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.atEnd() && !p.atTerminator(terminators) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	return stmts
}

func (p *Parser) atTerminator(terminators []string) bool {
	for _, t := range terminators {
		if p.check(t) {
			return true
		}
	}
	return false
}
