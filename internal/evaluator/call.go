package evaluator

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

func (e *Evaluator) evalCall(x *ast.Call, frame *runtime.Frame) (runtime.Value, error) {
	callableExpr, err := e.evalExpr(x.Callable, frame)
	if err != nil {
		return nil, err
	}
	callable, ok := callableExpr.(Callable)
	if !ok {
		return nil, runtimeErrorf(x.Tok(), "value is not callable")
	}
	return e.invoke(callable, x.Args, frame)
}

// invoke dispatches to a Builtin host function or runs a user Procedure/
// Function body in a freshly allocated frame. Allocating fresh means a
// second, non-recursive call never observes a previous call's parameter
// values, and a recursive call gets its own independent slots rather than
// overwriting the caller's — see DESIGN.md for why this departs from the
// captured-env-reuse design.
func (e *Evaluator) invoke(callable Callable, args []ast.Expr, callerFrame *runtime.Frame) (runtime.Value, error) {
	switch c := callable.(type) {
	case *Builtin:
		values := make([]runtime.Value, len(args))
		for i, arg := range args {
			v, err := e.evalExpr(arg, callerFrame)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		if c.FrameFunc != nil {
			return c.FrameFunc(callerFrame, values)
		}
		return c.Func(values)

	case *Procedure:
		callFrame := runtime.NewChildFrame(c.Env.Outer())
		if err := e.bindParams(c.Params, c.Passby, args, callerFrame, callFrame); err != nil {
			return nil, err
		}
		if _, err := e.execBlock(c.Body, callFrame); err != nil {
			return nil, err
		}
		return nil, nil

	case *Function:
		callFrame := runtime.NewChildFrame(c.Env.Outer())
		if err := e.bindParams(c.Params, c.Passby, args, callerFrame, callFrame); err != nil {
			return nil, err
		}
		res, err := e.execBlock(c.Body, callFrame)
		if err != nil {
			return nil, err
		}
		return res.value, nil
	}
	return nil, nil
}

func (e *Evaluator) bindParams(params []*ast.Declare, passby string, args []ast.Expr, callerFrame, callFrame *runtime.Frame) error {
	for i, param := range params {
		if passby == "BYREF" {
			tv, err := e.evalLValue(args[i], callerFrame)
			if err != nil {
				return err
			}
			callFrame.Bind(param.Name, tv)
			continue
		}
		val, err := e.evalExpr(args[i], callerFrame)
		if err != nil {
			return err
		}
		tv := callFrame.Declare(param.Name, param.Typ)
		tv.Value = val
	}
	return nil
}
