package builtins

import (
	"testing"

	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/resolver"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

func byName(t *testing.T, name string) *evaluator.Builtin {
	t.Helper()
	for _, b := range all() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no builtin named %q", name)
	return nil
}

func TestRegisterSeedsEveryBuiltinIntoGlobalFrame(t *testing.T) {
	r := resolver.New()
	Register(r)
	for _, b := range all() {
		if _, ok := r.Global.LookupLocal(b.Name); !ok {
			t.Errorf("expected %s to be declared in the global frame after Register", b.Name)
		}
	}
}

func TestIntToString(t *testing.T) {
	b := byName(t, "INTTOSTRING")
	got, err := b.Func([]runtime.Value{int64(999)})
	if err != nil || got != "999" {
		t.Fatalf("INTTOSTRING(999) = %v, %v; want \"999\", nil", got, err)
	}
}

func TestLength(t *testing.T) {
	b := byName(t, "LENGTH")
	got, err := b.Func([]runtime.Value{"hello"})
	if err != nil || got != int64(5) {
		t.Fatalf("LENGTH(\"hello\") = %v, %v; want 5, nil", got, err)
	}
}

func TestSubstring(t *testing.T) {
	b := byName(t, "SUBSTRING")
	got, err := b.Func([]runtime.Value{"Pseudocode", int64(1), int64(6)})
	if err != nil || got != "Pseudo" {
		t.Fatalf("SUBSTRING = %v, %v; want \"Pseudo\", nil", got, err)
	}
	if _, err := b.Func([]runtime.Value{"short", int64(1), int64(99)}); err == nil {
		t.Fatalf("expected an error for out-of-range SUBSTRING bounds")
	}
}

func TestUcaseLcase(t *testing.T) {
	up := byName(t, "UCASE")
	low := byName(t, "LCASE")
	got, _ := up.Func([]runtime.Value{"Hello"})
	if got != "HELLO" {
		t.Fatalf("UCASE(\"Hello\") = %q, want %q", got, "HELLO")
	}
	got, _ = low.Func([]runtime.Value{"HELLO"})
	if got != "hello" {
		t.Fatalf("LCASE(\"HELLO\") = %q, want %q", got, "hello")
	}
}

func TestRound(t *testing.T) {
	b := byName(t, "ROUND")
	got, err := b.Func([]runtime.Value{3.14159, int64(2)})
	if err != nil || got != 3.14 {
		t.Fatalf("ROUND(3.14159, 2) = %v, %v; want 3.14, nil", got, err)
	}
}

func TestModDiv(t *testing.T) {
	modB := byName(t, "MOD")
	divB := byName(t, "DIV")
	got, err := modB.Func([]runtime.Value{int64(17), int64(5)})
	if err != nil || got != int64(2) {
		t.Fatalf("MOD(17, 5) = %v, %v; want 2, nil", got, err)
	}
	got, err = divB.Func([]runtime.Value{int64(17), int64(5)})
	if err != nil || got != int64(3) {
		t.Fatalf("DIV(17, 5) = %v, %v; want 3, nil", got, err)
	}
	if _, err := modB.Func([]runtime.Value{int64(1), int64(0)}); err == nil {
		t.Fatalf("expected an error for MOD by zero")
	}
}

func TestRandomBetweenRejectsEmptyRange(t *testing.T) {
	b := byName(t, "RANDOMBETWEEN")
	if _, err := b.Func([]runtime.Value{int64(5), int64(5)}); err == nil {
		t.Fatalf("expected an error when start is not less than end")
	}
}

func TestEOFRequiresAnOpenFile(t *testing.T) {
	b := byName(t, "EOF")
	frame := runtime.NewFrame()
	if _, err := b.FrameFunc(frame, []runtime.Value{"missing.txt"}); err == nil {
		t.Fatalf("expected an error for a file never opened")
	}
}
