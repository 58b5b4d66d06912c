package resolver

import (
	"strings"
	"testing"

	"github.com/cwbudde/pseudo9608/internal/lexer"
	"github.com/cwbudde/pseudo9608/internal/parser"
)

func resolveSource(t *testing.T, src string) *Resolver {
	t.Helper()
	l := lexer.New(src)
	toks, lexErrs := l.ScanAll()
	if len(lexErrs) != 0 {
		t.Fatalf("lexer errors: %v", lexErrs)
	}
	p := parser.New(toks)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	r := New()
	r.Resolve(program)
	return r
}

func TestResolveDeclareAndAssignTypeMatch(t *testing.T) {
	r := resolveSource(t, "DECLARE X : INTEGER\nX <- 3\n")
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}
}

func TestResolveUndeclaredNameIsLogicError(t *testing.T) {
	r := resolveSource(t, "OUTPUT Y\n")
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for an undeclared name")
	}
	if _, ok := r.Errors()[0].(*LogicError); !ok {
		t.Fatalf("expected *LogicError, got %T", r.Errors()[0])
	}
}

func TestResolveAssignTypeMismatch(t *testing.T) {
	r := resolveSource(t, "DECLARE X : INTEGER\nX <- \"oops\"\n")
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for assigning STRING to an INTEGER target")
	}
}

func TestResolveDuplicateDeclarationInSameScope(t *testing.T) {
	r := resolveSource(t, "DECLARE X : INTEGER\nDECLARE X : REAL\n")
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for redeclaring X in the same scope")
	}
}

func TestResolveFunctionMustContainReturn(t *testing.T) {
	r := resolveSource(t, "FUNCTION F() RETURNS INTEGER\nENDFUNCTION\n")
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for a FUNCTION with no RETURN")
	}
}

func TestResolveProcedureMustNotContainReturn(t *testing.T) {
	r := resolveSource(t, "PROCEDURE P()\nRETURN 1\nENDPROCEDURE\n")
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for RETURN inside a PROCEDURE")
	}
}

func TestResolveRecursiveFunctionSeesItselfInsideBody(t *testing.T) {
	r := resolveSource(t, `
FUNCTION Fact(N : INTEGER) RETURNS INTEGER
	IF N <= 1 THEN
		RETURN 1
	ELSE
		RETURN N * Fact(N - 1)
	ENDIF
ENDFUNCTION
`)
	if len(r.Errors()) != 0 {
		t.Fatalf("expected recursive self-call to resolve cleanly, got: %v", r.Errors())
	}
}

func TestResolveByrefRequiresMatchingCallerSlot(t *testing.T) {
	r := resolveSource(t, `
DECLARE N : INTEGER

PROCEDURE Bump(BYREF N : INTEGER)
	N <- N + 1
ENDPROCEDURE

N <- 1
CALL Bump(N)
`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}
}

func TestResolveByrefRejectsMismatchedCallerName(t *testing.T) {
	r := resolveSource(t, `
PROCEDURE Bump(BYREF N : INTEGER)
	N <- N + 1
ENDPROCEDURE

DECLARE X : INTEGER
X <- 1
CALL Bump(X)
`)
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError: BYREF parameter 'N' has no matching caller slot named N")
	}
}

func TestResolveArrayIndexMustBeInteger(t *testing.T) {
	r := resolveSource(t, `
DECLARE A : ARRAY[1:5] OF INTEGER
DECLARE S : STRING
A[S] <- 1
`)
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for indexing with a non-INTEGER expression")
	}
}

func TestResolveArrayFieldInRecordRejected(t *testing.T) {
	r := resolveSource(t, `
TYPE Bad
	DECLARE Items : ARRAY[1:5] OF INTEGER
ENDTYPE
`)
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError: a record field cannot be of type ARRAY")
	}
}

func TestResolveCaseValueTypeMismatch(t *testing.T) {
	r := resolveSource(t, `
DECLARE S : STRING
S <- "x"
CASE OF S
	1: OUTPUT "one"
ENDCASE
`)
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a LogicError for an INTEGER CASE arm against a STRING condition")
	}
	le, ok := r.Errors()[0].(*LogicError)
	if !ok {
		t.Fatalf("expected *LogicError, got %T", r.Errors()[0])
	}
	if !strings.Contains(le.Error(), "expect") {
		t.Fatalf("expected message to contain %q, got %q", "expect", le.Error())
	}
}
