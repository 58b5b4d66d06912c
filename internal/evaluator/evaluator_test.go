package evaluator_test

import (
	"testing"

	"github.com/cwbudde/pseudo9608/internal/builtins"
	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/lexer"
	"github.com/cwbudde/pseudo9608/internal/parser"
	"github.com/cwbudde/pseudo9608/internal/resolver"
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/kr/pretty"
)

// run lexes, parses, resolves and evaluates src against a fresh global
// frame, failing the test on any static error.
func run(t *testing.T, src string) *runtime.Frame {
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
	r := resolver.New()
	builtins.Register(r)
	program = r.Resolve(program)
	if len(r.Errors()) != 0 {
		t.Fatalf("resolve errors: %v", r.Errors())
	}
	var out []string
	ev := evaluator.New(
		func() (string, error) { return "", nil },
		func(s string) error { out = append(out, s); return nil },
		nil,
	)
	if err := ev.Eval(program, r.Global); err != nil {
		t.Fatalf("eval error: %v\nframe: %# v", err, pretty.Formatter(frameSnapshot(r.Global)))
	}
	return r.Global
}

// frameSnapshot flattens a frame's own slots into a plain map so kr/pretty
// renders something readable instead of walking unexported Frame fields.
func frameSnapshot(f *runtime.Frame) map[string]runtime.Value {
	out := map[string]runtime.Value{}
	for _, name := range f.Names() {
		out[name] = f.Get(name)
	}
	return out
}

func TestByrefBubbleSortMutatesCallerArray(t *testing.T) {
	frame := run(t, `
DECLARE Data : ARRAY[1:10] OF INTEGER

PROCEDURE BubbleSort(BYREF Data : ARRAY[1:10] OF INTEGER)
	DECLARE I : INTEGER
	DECLARE J : INTEGER
	DECLARE Temp : INTEGER
	FOR I <- 1 TO 9
		FOR J <- 1 TO 10 - I
			IF Data[J] > Data[J + 1] THEN
				Temp <- Data[J]
				Data[J] <- Data[J + 1]
				Data[J + 1] <- Temp
			ENDIF
		ENDFOR
	ENDFOR
ENDPROCEDURE

Data[1] <- 10
Data[2] <- 9
Data[3] <- 8
Data[4] <- 7
Data[5] <- 6
Data[6] <- 5
Data[7] <- 4
Data[8] <- 3
Data[9] <- 2
Data[10] <- 1
CALL BubbleSort(Data)
`)
	arr, ok := frame.Get("Data").(*runtime.Array)
	if !ok {
		t.Fatalf("expected Data to be *runtime.Array, got %T", frame.Get("Data"))
	}
	for i := 1; i <= 10; i++ {
		tv, err := arr.At([]int{i})
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if tv.Value != int64(i) {
			t.Errorf("Data[%d] = %v, want %d (sorted in place via BYREF): %# v", i, tv.Value, i, pretty.Formatter(frameSnapshot(frame)))
		}
	}
}

func TestByvalueFunctionParameterReadsCallTimeArgument(t *testing.T) {
	frame := run(t, `
FUNCTION Square(N : INTEGER) RETURNS INTEGER
	DECLARE Result : INTEGER
	Result <- N * N
	RETURN Result
ENDFUNCTION

DECLARE A : INTEGER
DECLARE B : INTEGER
A <- Square(5)
B <- Square(6)
`)
	if got := frame.Get("A"); got != int64(25) {
		t.Fatalf("Square(5) = %v, want 25", got)
	}
	if got := frame.Get("B"); got != int64(36) {
		t.Fatalf("Square(6) = %v, want 36", got)
	}
}

func TestRecordTypeFieldAssign(t *testing.T) {
	frame := run(t, `
TYPE Student
	DECLARE Surname : STRING
	DECLARE FirstName : STRING
	DECLARE YearGroup : INTEGER
ENDTYPE

DECLARE S : Student
S.Surname <- "Lovelace"
S.FirstName <- "Ada"
S.YearGroup <- 6
`)
	obj, ok := frame.Get("S").(*runtime.Object)
	if !ok {
		t.Fatalf("expected S to be *runtime.Object, got %T", frame.Get("S"))
	}
	tv, ok := obj.Get("YearGroup")
	if !ok || tv.Value != int64(6) {
		t.Fatalf("expected YearGroup = 6, got %# v", pretty.Formatter(obj))
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	l := lexer.New("DECLARE X : REAL\nX <- 1 / 0\n")
	toks, _ := l.ScanAll()
	p := parser.New(toks)
	program := p.ParseProgram()
	r := resolver.New()
	builtins.Register(r)
	program = r.Resolve(program)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}
	ev := evaluator.New(func() (string, error) { return "", nil }, func(string) error { return nil }, nil)
	err := ev.Eval(program, r.Global)
	if err == nil {
		t.Fatalf("expected a RuntimeError for division by zero")
	}
	if _, ok := err.(*evaluator.RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}
