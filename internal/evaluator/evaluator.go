package evaluator

import (
	"fmt"
	"io"

	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// RuntimeError is raised for failures only detectable while running:
// unassigned slots, out-of-range indices, file/mode mismatches, division
// by zero, and similar.
type RuntimeError struct {
	Tok token.Token
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

// Token returns the offending token, satisfying errors.tokenError.
func (e *RuntimeError) Token() token.Token { return e.Tok }

func runtimeErrorf(tok token.Token, format string, args ...any) error {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// FileOpener abstracts the host file system the driver wires in, so
// OPENFILE never touches os.Open directly from this package.
type FileOpener interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string, truncate bool) (io.WriteCloser, error)
}

// Evaluator executes a resolved statement tree. ReadLine/WriteLine are the
// program's INPUT/OUTPUT handlers; Files backs OPENFILE/READFILE/
// WRITEFILE/CLOSEFILE.
type Evaluator struct {
	ReadLine  func() (string, error)
	WriteLine func(string) error
	Files     FileOpener
}

// New creates an Evaluator with the given I/O handlers.
func New(readLine func() (string, error), writeLine func(string) error, files FileOpener) *Evaluator {
	return &Evaluator{ReadLine: readLine, WriteLine: writeLine, Files: files}
}

// execResult signals a RETURN unwinding out of nested blocks up to the
// enclosing callable's execBlock call.
type execResult struct {
	returned bool
	value    runtime.Value
}

// Eval runs a whole program (or a callable body) under frame.
func (e *Evaluator) Eval(program []ast.Stmt, frame *runtime.Frame) error {
	_, err := e.execBlock(program, frame)
	return err
}

func (e *Evaluator) execBlock(stmts []ast.Stmt, frame *runtime.Frame) (execResult, error) {
	for _, stmt := range stmts {
		res, err := e.execStmt(stmt, frame)
		if err != nil {
			return execResult{}, err
		}
		if res.returned {
			return res, nil
		}
	}
	return execResult{}, nil
}

// evalExpr evaluates expr under frame to a runtime.Value. Every node has
// already been type-checked by the resolver, so no further coercion is
// needed beyond what the operators themselves do (e.g. promoting to
// REAL).
func (e *Evaluator) evalExpr(expr ast.Expr, frame *runtime.Frame) (runtime.Value, error) {
	switch x := expr.(type) {
	case *ast.Literal:
		return x.Value, nil

	case *ast.GetName:
		tv, ok := frame.Ancestor(x.Depth).LookupLocal(x.Name)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "undeclared name '%s'", x.Name)
		}
		if tv.Value == nil {
			return nil, runtimeErrorf(x.Tok(), "'%s' has not been assigned a value", x.Name)
		}
		return tv.Value, nil

	case *ast.GetIndex:
		tv, err := e.evalArraySlot(x, frame)
		if err != nil {
			return nil, err
		}
		if tv.Value == nil {
			return nil, runtimeErrorf(x.Tok(), "array element has not been assigned a value")
		}
		return tv.Value, nil

	case *ast.GetAttr:
		objVal, err := e.evalExpr(x.Object, frame)
		if err != nil {
			return nil, err
		}
		obj, ok := objVal.(*runtime.Object)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "value is not a record")
		}
		tv, ok := obj.Get(x.Name)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "record has no field '%s'", x.Name)
		}
		return tv.Value, nil

	case *ast.Unary:
		return e.evalUnary(x, frame)

	case *ast.Binary:
		return e.evalBinary(x, frame)

	case *ast.Assign:
		return e.evalAssign(x, frame)

	case *ast.Call:
		return e.evalCall(x, frame)
	}
	return nil, runtimeErrorf(expr.Tok(), "cannot evaluate expression")
}

// evalLValue resolves an assignable expression to the TypedValue slot it
// names, used by Assign, INPUT, READFILE and BYREF argument binding.
func (e *Evaluator) evalLValue(expr ast.Expr, frame *runtime.Frame) (*runtime.TypedValue, error) {
	switch x := expr.(type) {
	case *ast.GetName:
		tv, ok := frame.Ancestor(x.Depth).LookupLocal(x.Name)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "undeclared name '%s'", x.Name)
		}
		return tv, nil
	case *ast.GetIndex:
		return e.evalArraySlot(x, frame)
	case *ast.GetAttr:
		objVal, err := e.evalExpr(x.Object, frame)
		if err != nil {
			return nil, err
		}
		obj, ok := objVal.(*runtime.Object)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "value is not a record")
		}
		tv, ok := obj.Get(x.Name)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "record has no field '%s'", x.Name)
		}
		return tv, nil
	}
	return nil, runtimeErrorf(expr.Tok(), "not an assignable expression")
}

func (e *Evaluator) evalArraySlot(x *ast.GetIndex, frame *runtime.Frame) (*runtime.TypedValue, error) {
	arrVal, err := e.evalExpr(x.Array, frame)
	if err != nil {
		return nil, err
	}
	arr, ok := arrVal.(*runtime.Array)
	if !ok {
		return nil, runtimeErrorf(x.Tok(), "value is not an ARRAY")
	}
	indices := make([]int, len(x.Indices))
	for i, idxExpr := range x.Indices {
		v, err := e.evalExpr(idxExpr, frame)
		if err != nil {
			return nil, err
		}
		iv, ok := v.(int64)
		if !ok {
			return nil, runtimeErrorf(idxExpr.Tok(), "array index must be INTEGER")
		}
		indices[i] = int(iv)
	}
	tv, err := arr.At(indices)
	if err != nil {
		return nil, runtimeErrorf(x.Tok(), "%s", err.Error())
	}
	return tv, nil
}

func (e *Evaluator) evalAssign(x *ast.Assign, frame *runtime.Frame) (runtime.Value, error) {
	val, err := e.evalExpr(x.Value, frame)
	if err != nil {
		return nil, err
	}
	tv, err := e.evalLValue(x.Assignee, frame)
	if err != nil {
		return nil, err
	}
	tv.Value = val
	return val, nil
}
