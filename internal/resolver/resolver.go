// Package resolver performs the single static pass between parsing and
// evaluation: it replaces every UnresolvedName with a GetName pointing at
// the frame that owns it, declares variables, records and callables into
// their frames, and type-checks every operator, assignment, index,
// attribute access and call. Everything it accepts is assumed correct by
// the evaluator; that is the whole point of doing it ahead of time.
package resolver

import (
	"fmt"

	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// LogicError is a static semantic error: an undeclared name, a type
// mismatch, a wrong argument count, a missing RETURN, and so on.
type LogicError struct {
	Tok token.Token
	Msg string
}

func (e *LogicError) Error() string { return e.Msg }

// Token returns the offending token, satisfying errors.tokenError.
func (e *LogicError) Token() token.Token { return e.Tok }

const (
	typBoolean = "BOOLEAN"
	typInteger = "INTEGER"
	typReal    = "REAL"
	typString  = "STRING"
	typArray   = "ARRAY"
	typNull    = "NULL"
)

func isNumeric(t string) bool { return t == typInteger || t == typReal }
func isEquatable(t string) bool { return t == typBoolean || isNumeric(t) }

// Resolver walks a parsed program once, mutating it in place.
type Resolver struct {
	Types  *runtime.TypeSystem
	Global *runtime.Frame
	errors []error
}

// New creates a Resolver with a fresh global frame and type system. The
// caller is expected to register builtins into Global before calling
// Resolve (see the builtins package).
func New() *Resolver {
	return &Resolver{Types: runtime.NewTypeSystem(), Global: runtime.NewFrame()}
}

// Errors returns every diagnostic recorded while resolving.
func (r *Resolver) Errors() []error { return r.errors }

func (r *Resolver) errorf(tok token.Token, format string, args ...any) {
	r.errors = append(r.errors, &LogicError{Tok: tok, Msg: fmt.Sprintf(format, args...)})
}

// RegisterBuiltin declares a host builtin in the global frame under name,
// with its return type (or NULL for an effect-only builtin) as the slot's
// declared type.
func (r *Resolver) RegisterBuiltin(name string, b *evaluator.Builtin) {
	tv := r.Global.Declare(name, evaluator.ReturnTypeOf(b))
	tv.Value = b
}

// Resolve walks the whole program under the global frame.
func (r *Resolver) Resolve(program []ast.Stmt) []ast.Stmt {
	return r.resolveBlock(program, r.Global)
}

func (r *Resolver) resolveBlock(stmts []ast.Stmt, frame *runtime.Frame) []ast.Stmt {
	for _, stmt := range stmts {
		r.resolveStmt(stmt, frame)
	}
	return stmts
}
