// Package evaluator executes a resolved statement tree against the frames
// the resolver populated. It also owns the three callable value kinds
// (Procedure, Function, Builtin): they need both the statement tree (for
// a user callable's body) and the runtime frame model, so they can't live
// in either of those packages without creating an import cycle.
package evaluator

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

// Procedure is a user-declared PROCEDURE: a statement body that runs for
// effect and returns nothing.
type Procedure struct {
	Name   string
	Env    *runtime.Frame
	Params []*ast.Declare
	Passby string
	Body   []ast.Stmt
}

func (*Procedure) callableValue() {}

// Function is a user-declared FUNCTION: a statement body that must
// execute a RETURN of the declared type.
type Function struct {
	Name       string
	Env        *runtime.Frame
	Params     []*ast.Declare
	Passby     string
	ReturnType string
	Body       []ast.Stmt
}

func (*Function) callableValue() {}

// BuiltinFunc is a host callback backing a Builtin value. It receives
// already-evaluated argument values and returns a result value (or nil
// for a builtin used only for effect).
type BuiltinFunc func(args []runtime.Value) (runtime.Value, error)

// FrameBuiltinFunc is like BuiltinFunc but also receives the calling
// frame, for the rare builtin (EOF) that needs to look something up by
// name in the caller's scope rather than by the evaluated argument
// values alone.
type FrameBuiltinFunc func(frame *runtime.Frame, args []runtime.Value) (runtime.Value, error)

// Builtin wraps a host-implemented routine (RND, EOF, LENGTH, ...) behind
// the same calling convention as a user Procedure/Function. Exactly one
// of Func or FrameFunc is set.
type Builtin struct {
	Name       string
	ParamTypes []string
	ReturnType string
	Func       BuiltinFunc
	FrameFunc  FrameBuiltinFunc
}

func (*Builtin) callableValue() {}

// Callable is the marker interface satisfied by Procedure, Function and
// Builtin, used where code needs to accept any of the three without
// caring which.
type Callable interface {
	callableValue()
}

var (
	_ Callable = (*Procedure)(nil)
	_ Callable = (*Function)(nil)
	_ Callable = (*Builtin)(nil)
)

// IsFunction reports whether a Callable returns a value (a Function, or a
// Builtin with a non-NULL return type).
func IsFunction(c Callable) bool {
	switch v := c.(type) {
	case *Function:
		return true
	case *Procedure:
		return false
	case *Builtin:
		return v.ReturnType != "" && v.ReturnType != "NULL"
	}
	return false
}

// ReturnTypeOf returns the declared return type of a Callable ("NULL" for
// a Procedure or an effect-only Builtin).
func ReturnTypeOf(c Callable) string {
	switch v := c.(type) {
	case *Function:
		return v.ReturnType
	case *Builtin:
		if v.ReturnType == "" {
			return "NULL"
		}
		return v.ReturnType
	default:
		return "NULL"
	}
}
