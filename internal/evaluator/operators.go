package evaluator

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

func (e *Evaluator) evalUnary(x *ast.Unary, frame *runtime.Frame) (runtime.Value, error) {
	right, err := e.evalExpr(x.Right, frame)
	if err != nil {
		return nil, err
	}
	switch x.Oper {
	case ast.OpSub:
		switch v := right.(type) {
		case int64:
			return -v, nil
		case float64:
			return -v, nil
		}
		return nil, runtimeErrorf(x.Tok(), "unary '-' requires a numeric operand")
	case ast.OpNot:
		v, ok := right.(bool)
		if !ok {
			return nil, runtimeErrorf(x.Tok(), "NOT requires a BOOLEAN operand")
		}
		return !v, nil
	}
	return nil, runtimeErrorf(x.Tok(), "unknown unary operator")
}

// evalBinary evaluates both operands unconditionally (no short-circuit
// for AND/OR) before applying the operator, matching the resolved type
// guarantees: by the time this runs the resolver has already rejected any
// operand-type mismatch.
func (e *Evaluator) evalBinary(x *ast.Binary, frame *runtime.Frame) (runtime.Value, error) {
	left, err := e.evalExpr(x.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(x.Right, frame)
	if err != nil {
		return nil, err
	}

	switch x.Oper {
	case ast.OpAnd:
		return left.(bool) && right.(bool), nil
	case ast.OpOr:
		return left.(bool) || right.(bool), nil
	case ast.OpConcat:
		return left.(string) + right.(string), nil
	case ast.OpEq:
		return equalValues(left, right), nil
	case ast.OpNe:
		return !equalValues(left, right), nil
	}

	lf, lIsFloat := asFloat(left)
	rf, rIsFloat := asFloat(right)
	switch x.Oper {
	case ast.OpLt:
		return lf < rf, nil
	case ast.OpLte:
		return lf <= rf, nil
	case ast.OpGt:
		return lf > rf, nil
	case ast.OpGte:
		return lf >= rf, nil
	case ast.OpDiv:
		if rf == 0 {
			return nil, runtimeErrorf(x.Tok(), "division by zero")
		}
		return lf / rf, nil
	case ast.OpAdd, ast.OpSub, ast.OpMul:
		bothInt := !lIsFloat && !rIsFloat
		if bothInt {
			li, ri := left.(int64), right.(int64)
			switch x.Oper {
			case ast.OpAdd:
				return li + ri, nil
			case ast.OpSub:
				return li - ri, nil
			case ast.OpMul:
				return li * ri, nil
			}
		}
		switch x.Oper {
		case ast.OpAdd:
			return lf + rf, nil
		case ast.OpSub:
			return lf - rf, nil
		case ast.OpMul:
			return lf * rf, nil
		}
	}
	return nil, runtimeErrorf(x.Tok(), "unknown binary operator")
}

// asFloat widens an INTEGER or REAL value to float64 for arithmetic that
// needs a common representation, reporting whether the source value was
// already a REAL (so callers can keep an all-INTEGER computation exact).
func asFloat(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), false
	case float64:
		return n, true
	}
	return 0, false
}

func equalValues(a, b runtime.Value) bool {
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	return af == bf
}
