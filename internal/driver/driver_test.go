package driver

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-diff/diffmatchpatch"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/gjson"
)

func TestRunScalarArithmetic(t *testing.T) {
	res := Run("DECLARE X : INTEGER\nX <- 3 + 4 * 2\nOUTPUT X\n", Options{})
	if res.ExitCode != ExitOK {
		t.Fatalf("expected ExitOK, got %d: %s", res.ExitCode, res.Diagnostic)
	}
	if res.Output != "11\n" {
		t.Fatalf("expected output %q, got %q", "11\n", res.Output)
	}
	if got := res.Frame.Get("X"); got != int64(11) {
		t.Fatalf("expected X = 11 in the final frame, got %v", got)
	}
}

func TestRunStringConcatAndIntToString(t *testing.T) {
	res := Run(`OUTPUT "A: " & INTTOSTRING(1) & ", B: " & INTTOSTRING(999)`+"\n", Options{})
	if res.ExitCode != ExitOK {
		t.Fatalf("expected ExitOK, got %d: %s", res.ExitCode, res.Diagnostic)
	}
	want := "A: 1, B: 999\n"
	if res.Output != want {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(want, res.Output, false)
		t.Fatalf("output mismatch:\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestRunCaseValueTypeMismatchIsStaticError(t *testing.T) {
	res := Run(`
DECLARE S : STRING
S <- "x"
CASE OF S
	1: OUTPUT "one"
ENDCASE
`, Options{})
	if res.ExitCode != ExitStatic {
		t.Fatalf("expected ExitStatic (65), got %d", res.ExitCode)
	}
	if !strings.Contains(res.Diagnostic, "expect") {
		t.Fatalf("expected diagnostic to mention %q, got %q", "expect", res.Diagnostic)
	}
}

func TestRunUnterminatedIfIsParseError(t *testing.T) {
	res := Run("IF TRUE\n", Options{})
	if res.ExitCode != ExitStatic {
		t.Fatalf("expected ExitStatic (65), got %d", res.ExitCode)
	}
	if !strings.Contains(res.Diagnostic, "ParseError") {
		t.Fatalf("expected diagnostic to mention ParseError, got %q", res.Diagnostic)
	}
}

func TestDumpFrameJSON(t *testing.T) {
	res := Run("DECLARE X : INTEGER\nX <- 42\n", Options{})
	doc, err := DumpFrameJSON(res)
	if err != nil {
		t.Fatalf("DumpFrameJSON: %v", err)
	}
	if got := gjson.Get(doc, "frame.X").String(); got != "42" {
		t.Fatalf("expected frame.X = 42 in the dumped JSON, got %q (doc: %s)", got, doc)
	}
}

func TestRunArrayLoopSnapshot(t *testing.T) {
	res := Run(`
DECLARE AnArray : ARRAY[1:10] OF INTEGER
DECLARE i : INTEGER
FOR i <- 1 TO 10
	AnArray[i] <- i
	OUTPUT AnArray[i]
ENDFOR
`, Options{})
	if res.ExitCode != ExitOK {
		t.Fatalf("expected ExitOK, got %d: %s", res.ExitCode, res.Diagnostic)
	}
	snaps.MatchSnapshot(t, "array_loop_output", res.Output)
}
