package resolver

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// callableCtx tracks the declared return type of the callable body
// currently being resolved, so Return statements can be type-checked.
// Top-level code has no callableCtx (nil), which rejects a stray RETURN.
type callableCtx struct {
	returnType string
	sawReturn  bool
}

func (r *Resolver) resolveStmt(stmt ast.Stmt, frame *runtime.Frame) {
	r.resolveStmtCtx(stmt, frame, nil)
}

func (r *Resolver) resolveStmtCtx(stmt ast.Stmt, frame *runtime.Frame, ctx *callableCtx) {
	switch s := stmt.(type) {
	case *ast.DeclareStmt:
		r.resolveDeclareExpr(s.Decl, frame, "BYVALUE")

	case *ast.TypeStmt:
		r.resolveTypeStmt(s)

	case *ast.Output:
		for i, e := range s.Exprs {
			resolved, _ := r.resolveExpr(e, frame)
			s.Exprs[i] = resolved
		}

	case *ast.Input:
		target, _ := r.resolveExpr(s.Target, frame)
		s.Target = target
		if !isAssignable(target) {
			r.errorf(s.Tok(), "INPUT target must be a name, index or field")
		}

	case *ast.AssignStmt:
		resolved, _ := r.resolveExpr(s.Assign, frame)
		s.Assign = resolved.(*ast.Assign)

	case *ast.CallStmt:
		resolved, retType := r.resolveExpr(s.Call, frame)
		s.Call = resolved.(*ast.Call)
		if retType != "" && retType != typNull {
			r.errorf(s.Tok(), "CALL target must be a PROCEDURE, not a value-returning FUNCTION")
		}

	case *ast.If:
		cond, ct := r.resolveExpr(s.Cond, frame)
		s.Cond = cond
		if ct != "" && ct != typBoolean {
			r.errorf(s.Tok(), "IF condition must be BOOLEAN, got %s", ct)
		}
		r.resolveBlockCtx(s.Then, frame, ctx)
		r.resolveBlockCtx(s.Else, frame, ctx)

	case *ast.Case:
		cond, condType := r.resolveExpr(s.Cond, frame)
		s.Cond = cond
		for i := range s.Arms {
			if condType != "" {
				if armType := literalValueType(s.Arms[i].Value); armType != "" && armType != condType {
					r.errorf(s.Tok(), "CASE arm value is %s, expect %s", armType, condType)
				}
			}
			r.resolveBlockCtx(s.Arms[i].Body, frame, ctx)
		}
		r.resolveBlockCtx(s.Fallback, frame, ctx)

	case *ast.While:
		if s.Init != nil {
			r.resolveStmtCtx(s.Init, frame, ctx)
		}
		cond, ct := r.resolveExpr(s.Cond, frame)
		s.Cond = cond
		if ct != "" && ct != typBoolean {
			r.errorf(s.Tok(), "WHILE condition must be BOOLEAN, got %s", ct)
		}
		r.resolveBlockCtx(s.Body, frame, ctx)

	case *ast.Repeat:
		r.resolveBlockCtx(s.Body, frame, ctx)
		cond, ct := r.resolveExpr(s.Cond, frame)
		s.Cond = cond
		if ct != "" && ct != typBoolean {
			r.errorf(s.Tok(), "UNTIL condition must be BOOLEAN, got %s", ct)
		}

	case *ast.ProcedureStmt:
		r.resolveCallable(s.Tok(), s.Name, s.Params, s.Passby, typNull, s.Body, frame,
			func(env *runtime.Frame) evaluator.Callable {
				return &evaluator.Procedure{Name: s.Name, Env: env, Params: s.Params, Passby: s.Passby, Body: s.Body}
			})

	case *ast.FunctionStmt:
		r.resolveCallable(s.Tok(), s.Name, s.Params, s.Passby, s.ReturnType, s.Body, frame,
			func(env *runtime.Frame) evaluator.Callable {
				return &evaluator.Function{Name: s.Name, Env: env, Params: s.Params, Passby: s.Passby, ReturnType: s.ReturnType, Body: s.Body}
			})

	case *ast.OpenFile:
		filename, ft := r.resolveExpr(s.Filename, frame)
		s.Filename = filename
		if ft != "" && ft != typString {
			r.errorf(s.Tok(), "OPENFILE filename must be STRING, got %s", ft)
		}

	case *ast.ReadFile:
		filename, ft := r.resolveExpr(s.Filename, frame)
		s.Filename = filename
		if ft != "" && ft != typString {
			r.errorf(s.Tok(), "READFILE filename must be STRING, got %s", ft)
		}
		target, _ := r.resolveExpr(s.Target, frame)
		s.Target = target
		if !isAssignable(target) {
			r.errorf(s.Tok(), "READFILE target must be a name, index or field")
		}

	case *ast.WriteFile:
		filename, ft := r.resolveExpr(s.Filename, frame)
		s.Filename = filename
		if ft != "" && ft != typString {
			r.errorf(s.Tok(), "WRITEFILE filename must be STRING, got %s", ft)
		}
		data, _ := r.resolveExpr(s.Data, frame)
		s.Data = data

	case *ast.CloseFile:
		filename, ft := r.resolveExpr(s.Filename, frame)
		s.Filename = filename
		if ft != "" && ft != typString {
			r.errorf(s.Tok(), "CLOSEFILE filename must be STRING, got %s", ft)
		}

	case *ast.Return:
		if ctx == nil {
			r.errorf(s.Tok(), "RETURN is only legal inside a FUNCTION body")
			return
		}
		expr, et := r.resolveExpr(s.Expr, frame)
		s.Expr = expr
		if ctx.returnType == typNull {
			r.errorf(s.Tok(), "PROCEDURE must not contain a RETURN")
			return
		}
		ctx.sawReturn = true
		if et != "" && et != ctx.returnType {
			r.errorf(s.Tok(), "RETURN expression must be %s, got %s", ctx.returnType, et)
		}
	}
}

// literalValueType reports the static type of a CASE arm's literal key, or
// "" for a nil key, which the parser records when an arm's key is not a
// literal or is NULL (such an arm is not type-checked).
func literalValueType(v any) string {
	switch v.(type) {
	case bool:
		return typBoolean
	case int64:
		return typInteger
	case float64:
		return typReal
	case string:
		return typString
	}
	return ""
}

func (r *Resolver) resolveBlockCtx(stmts []ast.Stmt, frame *runtime.Frame, ctx *callableCtx) {
	for _, stmt := range stmts {
		r.resolveStmtCtx(stmt, frame, ctx)
	}
}

// resolveCallable implements the two-phase declaration described for
// PROCEDURE/FUNCTION: the callee's env frame and its Procedure/Function
// value are built and installed in the declaring frame *before* the body
// is resolved, so a call to the same name from within the body resolves
// successfully (direct or mutual recursion).
func (r *Resolver) resolveCallable(tok token.Token, name string, params []*ast.Declare, passby, returnType string, body []ast.Stmt, frame *runtime.Frame, build func(*runtime.Frame) evaluator.Callable) {
	env := runtime.NewChildFrame(frame)
	for _, param := range params {
		r.resolveDeclareExpr(param, env, passby)
	}

	callable := build(env)
	tv := frame.Declare(name, returnType)
	tv.Value = callable

	ctx := &callableCtx{returnType: returnType}
	r.resolveBlockCtx(body, env, ctx)

	if returnType != typNull && !ctx.sawReturn {
		r.errorf(tok, "FUNCTION '%s' must contain a RETURN", name)
	}
}
