package lexer

import (
	"testing"

	"github.com/cwbudde/pseudo9608/internal/token"
)

func TestScanAllBasicTokens(t *testing.T) {
	input := "DECLARE X : INTEGER\nX <- 3 + 4\n"

	want := []struct {
		word string
		typ  token.Type
	}{
		{"DECLARE", token.KEYWORD},
		{"X", token.NAME},
		{":", token.SYMBOL},
		{"INTEGER", token.NAME},
		{"\n", token.NEWLINE},
		{"X", token.NAME},
		{"<-", token.SYMBOL},
		{"3", token.INTEGER},
		{"+", token.SYMBOL},
		{"4", token.INTEGER},
		{"\n", token.NEWLINE},
	}

	l := New(input)
	toks, errs := l.ScanAll()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Word != w.word {
			t.Errorf("token %d: expected %v %q, got %v %q", i, w.typ, w.word, toks[i].Type, toks[i].Word)
		}
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("expected final token to be EOF, got %v", toks[len(toks)-1].Type)
	}
}

func TestScanStringLiteral(t *testing.T) {
	l := New(`"hello world"` + "\n")
	toks, errs := l.ScanAll()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if toks[0].Type != token.STRING || toks[0].Word != "hello world" {
		t.Fatalf("expected STRING %q, got %v %q", "hello world", toks[0].Type, toks[0].Word)
	}
}

func TestScanNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"42", token.INTEGER},
		{"3.14", token.REAL},
	}
	for _, tt := range tests {
		l := New(tt.input + "\n")
		toks, _ := l.ScanAll()
		if toks[0].Type != tt.typ {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.typ, toks[0].Type)
		}
	}
}

func TestScanKeywordsAndValues(t *testing.T) {
	l := New("TRUE FALSE NULL AND OR NOT\n")
	toks, _ := l.ScanAll()
	want := []token.Type{token.BOOLEAN, token.BOOLEAN, token.NULLTOK, token.SYMBOL, token.SYMBOL, token.SYMBOL}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: expected %v, got %v (%q)", i, w, toks[i].Type, toks[i].Word)
		}
	}
}

func TestConcatOperator(t *testing.T) {
	l := New(`"a" & "b"` + "\n")
	toks, _ := l.ScanAll()
	if toks[1].Word != "&" {
		t.Fatalf("expected '&' token, got %q", toks[1].Word)
	}
}

func TestIllegalCharacterRecorded(t *testing.T) {
	l := New("X <- 1 @ 2\n")
	_, errs := l.ScanAll()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one scan error, got %d", len(errs))
	}
	var se *ScanError
	if se2, ok := errs[0].(*ScanError); !ok {
		t.Fatalf("expected *ScanError, got %T", errs[0])
	} else {
		se = se2
	}
	if se.Token().Word != "@" {
		t.Fatalf("expected offending token '@', got %q", se.Token().Word)
	}
}

func TestUnterminatedStringAcceptedAsIs(t *testing.T) {
	l := New(`"unterminated` + "\n")
	toks, errs := l.ScanAll()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.STRING || toks[0].Word != "unterminated" {
		t.Fatalf("expected STRING \"unterminated\", got %v %q", toks[0].Type, toks[0].Word)
	}
}
