// Package errors formats the three pseudocode diagnostic kinds
// (ParseError, LogicError, RuntimeError) against their source text, with
// a source line and a caret pointing at the offending token's column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pseudo9608/internal/token"
)

// Kind names which stage raised a Diagnostic.
type Kind string

const (
	KindParse   Kind = "ParseError"
	KindLogic   Kind = "LogicError"
	KindRuntime Kind = "RuntimeError"
)

// Diagnostic is one formattable error: the kind, the offending token, the
// message, and (except for RuntimeError) the source text needed to print
// the line and caret.
type Diagnostic struct {
	Kind   Kind
	Tok    token.Token
	Msg    string
	Source string
}

// New builds a Diagnostic. Pass an empty source for RuntimeError, which
// is printed without the caret block regardless.
func New(kind Kind, tok token.Token, msg, source string) *Diagnostic {
	return &Diagnostic{Kind: kind, Tok: tok, Msg: msg, Source: source}
}

func (d *Diagnostic) Error() string { return d.Format() }

// Format renders:
//
//	[Line L column C] <source line>
//	          ^
//	<ErrorKind>: '<word>': <message>
//
// The source line and caret are omitted when Source is empty or the kind
// is RuntimeError.
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	header := d.Tok.Pos.String()
	sb.WriteString(header)
	if d.Kind != KindRuntime {
		if line := sourceLine(d.Source, d.Tok.Pos.Line); line != "" {
			sb.WriteString(" ")
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(header)+1+caretOffset(d.Tok.Pos.Column)))
			sb.WriteString("^\n")
		} else {
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("%s: '%s': %s", d.Kind, d.Tok.Word, d.Msg))
	return sb.String()
}

func caretOffset(column int) int {
	if column <= 0 {
		return 0
	}
	return column - 1
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// tokenError is implemented by parser.ParseError, resolver.LogicError and
// evaluator.RuntimeError: each carries the offending token alongside its
// message.
type tokenError interface {
	error
	Token() token.Token
}

// FromError wraps one of the three stage error types into a Diagnostic of
// the given kind. Any other error is wrapped with a zero-value token.
func FromError(kind Kind, err error, source string) *Diagnostic {
	if te, ok := err.(tokenError); ok {
		return New(kind, te.Token(), te.Error(), source)
	}
	return New(kind, token.Token{}, err.Error(), source)
}

// FormatAll joins multiple diagnostics of the same kind, one per error,
// separated by a blank line — used when a stage accumulates several
// independent errors before giving up (the scanner, the parser, the
// resolver).
func FormatAll(kind Kind, errs []error, source string) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(FromError(kind, err, source).Format())
	}
	return sb.String()
}
