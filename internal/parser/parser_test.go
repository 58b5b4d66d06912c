package parser

import (
	"testing"

	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/lexer"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	l := lexer.New(src)
	toks, lexErrs := l.ScanAll()
	if len(lexErrs) != 0 {
		t.Fatalf("lexer errors: %v", lexErrs)
	}
	p := New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	return stmts
}

func TestParseDeclareAndAssign(t *testing.T) {
	stmts := parseSource(t, "DECLARE X : INTEGER\nX <- 3 + 4 * 2\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.DeclareStmt)
	if !ok {
		t.Fatalf("expected *ast.DeclareStmt, got %T", stmts[0])
	}
	if decl.Decl.Name != "X" || decl.Decl.Typ != "INTEGER" {
		t.Fatalf("unexpected declare: %+v", decl.Decl)
	}
	assign, ok := stmts[1].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", stmts[1])
	}
	bin, ok := assign.Assign.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level Binary (addition), got %T", assign.Assign.Value)
	}
	if bin.Oper != ast.OpAdd {
		t.Fatalf("expected + to bind loosest of the two, got oper %v", bin.Oper)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parseSource(t, "FOR i <- 1 TO 10\nOUTPUT i\nENDFOR\n")
	w, ok := stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("expected FOR to desugar into *ast.While, got %T", stmts[0])
	}
	if w.Init == nil {
		t.Fatalf("expected an Init assignment for the loop counter")
	}
	cond, ok := w.Cond.(*ast.Binary)
	if !ok || cond.Oper != ast.OpLte {
		t.Fatalf("expected ascending FOR to synthesize <=, got %+v", w.Cond)
	}
	if len(w.Body) != 2 {
		t.Fatalf("expected OUTPUT plus the synthesized increment, got %d statements", len(w.Body))
	}
}

func TestParseForNegativeStepFlipsComparison(t *testing.T) {
	stmts := parseSource(t, "FOR i <- 10 TO 1 STEP -1\nOUTPUT i\nENDFOR\n")
	w := stmts[0].(*ast.While)
	cond, ok := w.Cond.(*ast.Binary)
	if !ok || cond.Oper != ast.OpGte {
		t.Fatalf("expected descending FOR (negative STEP) to synthesize >=, got %+v", w.Cond)
	}
}

func TestParseProcedureSingleByrefGovernsWholeParamList(t *testing.T) {
	stmts := parseSource(t, "PROCEDURE Swap(BYREF A : INTEGER, B : INTEGER)\nENDPROCEDURE\n")
	proc, ok := stmts[0].(*ast.ProcedureStmt)
	if !ok {
		t.Fatalf("expected *ast.ProcedureStmt, got %T", stmts[0])
	}
	if proc.Passby != "BYREF" {
		t.Fatalf("expected Passby BYREF to apply to whole param list, got %q", proc.Passby)
	}
	if len(proc.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(proc.Params))
	}
}

func TestParseCaseWithOtherwise(t *testing.T) {
	stmts := parseSource(t, "CASE OF X\n\t1: OUTPUT \"one\"\n\t2: OUTPUT \"two\"\n\tOTHERWISE: OUTPUT \"other\"\nENDCASE\n")
	c, ok := stmts[0].(*ast.Case)
	if !ok {
		t.Fatalf("expected *ast.Case, got %T", stmts[0])
	}
	if len(c.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(c.Arms))
	}
	if c.Fallback == nil {
		t.Fatalf("expected OTHERWISE fallback to be captured")
	}
}

func TestParseArrayDeclaration(t *testing.T) {
	stmts := parseSource(t, "DECLARE A : ARRAY[1:10] OF INTEGER\n")
	decl := stmts[0].(*ast.DeclareStmt).Decl
	if decl.Array == nil {
		t.Fatalf("expected array metadata to be populated")
	}
	if decl.Array.ElemType != "INTEGER" {
		t.Fatalf("expected element type INTEGER, got %q", decl.Array.ElemType)
	}
	if len(decl.Array.Ranges) != 1 || decl.Array.Ranges[0] != [2]int{1, 10} {
		t.Fatalf("unexpected ranges: %+v", decl.Array.Ranges)
	}
}

func TestParseUnexpectedTokenRecordsParseError(t *testing.T) {
	l := lexer.New("IF TRUE\n")
	toks, _ := l.ScanAll()
	p := New(toks)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a ParseError for an unterminated IF")
	}
}
