package resolver

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

// resolveExpr resolves expr under frame, returning the (possibly
// replaced) node and its static type. An empty type string means
// resolution failed and a diagnostic was already recorded; callers
// should keep traversing rather than abort, so later independent errors
// still surface in one pass.
func (r *Resolver) resolveExpr(expr ast.Expr, frame *runtime.Frame) (ast.Expr, string) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e, e.Typ

	case *ast.UnresolvedName:
		owner := frame.Owner(e.Name)
		if owner == nil {
			r.errorf(e.Tok(), "undeclared name '%s'", e.Name)
			return e, ""
		}
		tv, _ := owner.LookupLocal(e.Name)
		getName := ast.NewGetName(e.Tok(), e.Name, frameDepth(frame, owner))
		return getName, tv.Type

	case *ast.GetName:
		owner := frame.Ancestor(e.Depth)
		tv, ok := owner.LookupLocal(e.Name)
		if !ok {
			r.errorf(e.Tok(), "undeclared name '%s'", e.Name)
			return e, ""
		}
		return e, tv.Type

	case *ast.Unary:
		right, rt := r.resolveExpr(e.Right, frame)
		e.Right = right
		switch e.Oper {
		case ast.OpSub:
			if rt != "" && !isNumeric(rt) {
				r.errorf(e.Tok(), "unary '-' requires a numeric operand, got %s", rt)
				return e, ""
			}
			return e, rt
		case ast.OpNot:
			if rt != "" && rt != typBoolean {
				r.errorf(e.Tok(), "NOT requires a BOOLEAN operand, got %s", rt)
				return e, ""
			}
			return e, typBoolean
		}
		return e, ""

	case *ast.Binary:
		left, lt := r.resolveExpr(e.Left, frame)
		e.Left = left
		right, rt := r.resolveExpr(e.Right, frame)
		e.Right = right
		return e, r.resolveBinaryType(e, lt, rt)

	case *ast.GetIndex:
		arr, at := r.resolveExpr(e.Array, frame)
		e.Array = arr
		for i, idx := range e.Indices {
			resolved, it := r.resolveExpr(idx, frame)
			e.Indices[i] = resolved
			if it != "" && it != typInteger {
				r.errorf(idx.Tok(), "array index must be INTEGER, got %s", it)
			}
		}
		if at != typArray {
			if at != "" {
				r.errorf(e.Tok(), "cannot index a value of type %s", at)
			}
			return e, ""
		}
		elemType := r.arrayElemType(e.Array, frame)
		return e, elemType

	case *ast.GetAttr:
		obj, ot := r.resolveExpr(e.Object, frame)
		e.Object = obj
		if ot == "" {
			return e, ""
		}
		tmpl, ok := r.Types.Lookup(ot)
		if !ok {
			r.errorf(e.Tok(), "%s is not a record type", ot)
			return e, ""
		}
		fieldType, ok := tmpl.Fields[e.Name]
		if !ok {
			r.errorf(e.Tok(), "%s has no field '%s'", ot, e.Name)
			return e, ""
		}
		return e, fieldType

	case *ast.Call:
		return r.resolveCall(e, frame)

	case *ast.Assign:
		assignee, at := r.resolveExpr(e.Assignee, frame)
		e.Assignee = assignee
		if !isAssignable(assignee) {
			r.errorf(e.Tok(), "assignment target must be a name, index or field")
		}
		value, vt := r.resolveExpr(e.Value, frame)
		e.Value = value
		if at != "" && vt != "" && at != vt {
			r.errorf(e.Tok(), "cannot assign %s to a %s target", vt, at)
		}
		return e, at

	case *ast.Declare:
		return r.resolveDeclareExpr(e, frame, "BYVALUE")
	}
	return expr, ""
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.GetName, *ast.GetIndex, *ast.GetAttr:
		return true
	}
	return false
}

// frameDepth counts the Outer() hops from from out to target, which must lie
// on from's frame chain (Owner always returns a frame reachable this way).
// GetName nodes store this hop-count rather than target itself, so the same
// resolved reference works against whatever concrete frame a later call
// substitutes for from.
func frameDepth(from, target *runtime.Frame) int {
	depth := 0
	for f := from; f != nil; f = f.Outer() {
		if f == target {
			return depth
		}
		depth++
	}
	return depth
}

// arrayElemType reads the element type off the already-allocated Array
// value sitting in the frame slot the array expression resolves to.
// DECLARE pre-allocates the Array at resolve time, so this is always
// available by the time any GetIndex is resolved.
func (r *Resolver) arrayElemType(arrayExpr ast.Expr, frame *runtime.Frame) string {
	name, ok := arrayExpr.(*ast.GetName)
	if !ok {
		return ""
	}
	owner := frame.Ancestor(name.Depth)
	tv, ok := owner.LookupLocal(name.Name)
	if !ok {
		return ""
	}
	arr, ok := tv.Value.(*runtime.Array)
	if !ok {
		return ""
	}
	return arr.ElemType
}

func (r *Resolver) resolveBinaryType(e *ast.Binary, lt, rt string) string {
	if lt == "" || rt == "" {
		return ""
	}
	switch e.Oper {
	case ast.OpAnd, ast.OpOr:
		if lt != typBoolean || rt != typBoolean {
			r.errorf(e.Tok(), "%s requires BOOLEAN operands, got %s and %s", e.Oper, lt, rt)
			return ""
		}
		return typBoolean
	case ast.OpEq, ast.OpNe:
		if !isEquatable(lt) || !isEquatable(rt) {
			r.errorf(e.Tok(), "%s requires equatable operands, got %s and %s", e.Oper, lt, rt)
			return ""
		}
		if (lt == typBoolean) != (rt == typBoolean) {
			r.errorf(e.Tok(), "cannot compare %s with %s", lt, rt)
			return ""
		}
		return typBoolean
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		if !isNumeric(lt) || !isNumeric(rt) {
			r.errorf(e.Tok(), "%s requires numeric operands, got %s and %s", e.Oper, lt, rt)
			return ""
		}
		return typBoolean
	case ast.OpConcat:
		if lt != typString || rt != typString {
			r.errorf(e.Tok(), "& requires STRING operands, got %s and %s", lt, rt)
			return ""
		}
		return typString
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if !isNumeric(lt) || !isNumeric(rt) {
			r.errorf(e.Tok(), "%s requires numeric operands, got %s and %s", e.Oper, lt, rt)
			return ""
		}
		if e.Oper == ast.OpDiv {
			return typReal
		}
		if lt == typInteger && rt == typInteger {
			return typInteger
		}
		return typReal
	}
	return ""
}

func (r *Resolver) resolveCall(e *ast.Call, frame *runtime.Frame) (ast.Expr, string) {
	callable, _ := r.resolveExpr(e.Callable, frame)
	e.Callable = callable

	getName, ok := callable.(*ast.GetName)
	if !ok {
		r.errorf(e.Tok(), "call target must be a name")
		for i, arg := range e.Args {
			resolved, _ := r.resolveExpr(arg, frame)
			e.Args[i] = resolved
		}
		return e, ""
	}
	tv, _ := frame.Ancestor(getName.Depth).LookupLocal(getName.Name)
	callableVal, ok := tv.Value.(evaluator.Callable)
	if !ok {
		r.errorf(e.Tok(), "'%s' is not callable", getName.Name)
		for i, arg := range e.Args {
			resolved, _ := r.resolveExpr(arg, frame)
			e.Args[i] = resolved
		}
		return e, ""
	}

	params, passby := paramsOf(callableVal)
	if len(params) != len(e.Args) {
		r.errorf(e.Tok(), "'%s' expects %d argument(s), got %d", getName.Name, len(params), len(e.Args))
	}
	for i, arg := range e.Args {
		resolved, at := r.resolveExpr(arg, frame)
		e.Args[i] = resolved
		if i >= len(params) {
			continue
		}
		if at != "" && at != params[i].Typ {
			r.errorf(arg.Tok(), "argument %d of '%s' must be %s, got %s", i+1, getName.Name, params[i].Typ, at)
		}
		if passby == "BYREF" && !isAssignable(resolved) {
			r.errorf(arg.Tok(), "argument %d of '%s' must be a name, index or field (BYREF)", i+1, getName.Name)
		}
	}
	return e, evaluator.ReturnTypeOf(callableVal)
}

func paramsOf(c evaluator.Callable) ([]*ast.Declare, string) {
	switch v := c.(type) {
	case *evaluator.Procedure:
		return v.Params, v.Passby
	case *evaluator.Function:
		return v.Params, v.Passby
	case *evaluator.Builtin:
		params := make([]*ast.Declare, len(v.ParamTypes))
		for i, t := range v.ParamTypes {
			params[i] = &ast.Declare{Typ: t}
		}
		return params, "BYVALUE"
	}
	return nil, "BYVALUE"
}
