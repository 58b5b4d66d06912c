package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/cwbudde/pseudo9608/internal/token"
)

func (e *Evaluator) execStmt(stmt ast.Stmt, frame *runtime.Frame) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.DeclareStmt:
		e.declareLocal(s.Decl, frame)
		return execResult{}, nil

	case *ast.TypeStmt, *ast.ProcedureStmt, *ast.FunctionStmt:
		// No runtime effect: all work was done by the resolver.
		return execResult{}, nil

	case *ast.Output:
		var sb strings.Builder
		for _, expr := range s.Exprs {
			v, err := e.evalExpr(expr, frame)
			if err != nil {
				return execResult{}, err
			}
			sb.WriteString(stringify(v))
		}
		return execResult{}, e.WriteLine(sb.String())

	case *ast.Input:
		line, err := e.ReadLine()
		if err != nil {
			return execResult{}, runtimeErrorf(s.Tok(), "INPUT failed: %s", err.Error())
		}
		tv, err := e.evalLValue(s.Target, frame)
		if err != nil {
			return execResult{}, err
		}
		converted, err := convertTo(tv.Type, line)
		if err != nil {
			return execResult{}, runtimeErrorf(s.Tok(), "%s", err.Error())
		}
		tv.Value = converted
		return execResult{}, nil

	case *ast.AssignStmt:
		_, err := e.evalAssign(s.Assign, frame)
		return execResult{}, err

	case *ast.CallStmt:
		_, err := e.evalCall(s.Call, frame)
		return execResult{}, err

	case *ast.If:
		cond, err := e.evalExpr(s.Cond, frame)
		if err != nil {
			return execResult{}, err
		}
		if cond.(bool) {
			return e.execBlock(s.Then, frame)
		}
		return e.execBlock(s.Else, frame)

	case *ast.Case:
		return e.execCase(s, frame)

	case *ast.While:
		if s.Init != nil {
			if _, err := e.execStmt(s.Init, frame); err != nil {
				return execResult{}, err
			}
		}
		for {
			cond, err := e.evalExpr(s.Cond, frame)
			if err != nil {
				return execResult{}, err
			}
			if !cond.(bool) {
				return execResult{}, nil
			}
			res, err := e.execBlock(s.Body, frame)
			if err != nil || res.returned {
				return res, err
			}
		}

	case *ast.Repeat:
		for {
			res, err := e.execBlock(s.Body, frame)
			if err != nil || res.returned {
				return res, err
			}
			cond, err := e.evalExpr(s.Cond, frame)
			if err != nil {
				return execResult{}, err
			}
			if cond.(bool) {
				return execResult{}, nil
			}
		}

	case *ast.OpenFile:
		return execResult{}, e.execOpenFile(s, frame)

	case *ast.ReadFile:
		return execResult{}, e.execReadFile(s, frame)

	case *ast.WriteFile:
		return execResult{}, e.execWriteFile(s, frame)

	case *ast.CloseFile:
		return execResult{}, e.execCloseFile(s, frame)

	case *ast.Return:
		v, err := e.evalExpr(s.Expr, frame)
		if err != nil {
			return execResult{}, err
		}
		return execResult{returned: true, value: v}, nil
	}
	return execResult{}, nil
}

// declareLocal allocates decl's runtime slot in frame, the counterpart to
// the resolver's resolve-time allocation in the declaring frame (the
// global frame or a callable's env frame):
// since procedures and functions get a fresh frame on every call, the slot
// itself has to be (re)created here rather than reused from resolve time.
func (e *Evaluator) declareLocal(decl *ast.Declare, frame *runtime.Frame) {
	if decl.Array != nil {
		ranges := make([]runtime.Range, len(decl.Array.Ranges))
		for i, bounds := range decl.Array.Ranges {
			ranges[i] = runtime.Range{Lower: bounds[0], Upper: bounds[1]}
		}
		tv := frame.Declare(decl.Name, decl.Typ)
		tv.Value = runtime.NewArray(decl.Array.ElemType, ranges)
		return
	}
	tv := frame.Declare(decl.Name, decl.Typ)
	if decl.Template != nil {
		tv.Value = runtime.NewObject(decl.Template)
	}
}

func (e *Evaluator) execCase(s *ast.Case, frame *runtime.Frame) (execResult, error) {
	cond, err := e.evalExpr(s.Cond, frame)
	if err != nil {
		return execResult{}, err
	}
	for _, arm := range s.Arms {
		if equalValues(cond, arm.Value) {
			return e.execBlock(arm.Body, frame)
		}
	}
	if s.Fallback != nil {
		return e.execBlock(s.Fallback, frame)
	}
	return execResult{}, nil
}

// stringify renders a value the way OUTPUT and WRITEFILE do: booleans in
// upper case, everything else via its natural string form.
func stringify(v runtime.Value) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return x
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return fmt.Sprintf("%g", x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

func (e *Evaluator) execOpenFile(s *ast.OpenFile, frame *runtime.Frame) error {
	nameVal, err := e.evalExpr(s.Filename, frame)
	if err != nil {
		return err
	}
	name := nameVal.(string)
	if _, exists := frame.Lookup(name); exists {
		return runtimeErrorf(s.Tok(), "file %q is already open", name)
	}

	mode := runtime.FileMode(s.Mode)
	var file *runtime.File
	switch mode {
	case runtime.ModeRead:
		r, err := e.Files.OpenRead(name)
		if err != nil {
			return runtimeErrorf(s.Tok(), "cannot open %q for reading: %s", name, err.Error())
		}
		file = runtime.NewReadFile(name, r)
	case runtime.ModeWrite, runtime.ModeAppend:
		w, err := e.Files.OpenWrite(name, mode == runtime.ModeWrite)
		if err != nil {
			return runtimeErrorf(s.Tok(), "cannot open %q for writing: %s", name, err.Error())
		}
		file = runtime.NewWriteFile(name, mode, w)
	default:
		return runtimeErrorf(s.Tok(), "unknown file mode %q", s.Mode)
	}

	tv := frame.Declare(name, "FILE")
	tv.Value = file
	return nil
}

func (e *Evaluator) execReadFile(s *ast.ReadFile, frame *runtime.Frame) error {
	file, err := e.lookupFile(s.Filename, s.Tok(), frame, runtime.ModeRead)
	if err != nil {
		return err
	}
	line, err := file.ReadLine()
	if err != nil && err != io.EOF {
		return runtimeErrorf(s.Tok(), "READFILE failed: %s", err.Error())
	}
	tv, err := e.evalLValue(s.Target, frame)
	if err != nil {
		return err
	}
	tv.Value = line
	return nil
}

func (e *Evaluator) execWriteFile(s *ast.WriteFile, frame *runtime.Frame) error {
	file, err := e.lookupFileAnyMode(s.Filename, s.Tok(), frame, runtime.ModeWrite, runtime.ModeAppend)
	if err != nil {
		return err
	}
	val, err := e.evalExpr(s.Data, frame)
	if err != nil {
		return err
	}
	return file.WriteLine(stringify(val))
}

func (e *Evaluator) execCloseFile(s *ast.CloseFile, frame *runtime.Frame) error {
	nameVal, err := e.evalExpr(s.Filename, frame)
	if err != nil {
		return err
	}
	name := nameVal.(string)
	tv, ok := frame.Lookup(name)
	if !ok || tv.Type != "FILE" {
		return runtimeErrorf(s.Tok(), "file %q is not open", name)
	}
	file := tv.Value.(*runtime.File)
	if err := file.Close(); err != nil {
		return runtimeErrorf(s.Tok(), "error closing %q: %s", name, err.Error())
	}
	frame.Delete(name)
	return nil
}

func (e *Evaluator) lookupFile(filenameExpr ast.Expr, tok token.Token, frame *runtime.Frame, wantMode runtime.FileMode) (*runtime.File, error) {
	return e.lookupFileAnyMode(filenameExpr, tok, frame, wantMode)
}

func (e *Evaluator) lookupFileAnyMode(filenameExpr ast.Expr, tok token.Token, frame *runtime.Frame, wantModes ...runtime.FileMode) (*runtime.File, error) {
	nameVal, err := e.evalExpr(filenameExpr, frame)
	if err != nil {
		return nil, err
	}
	name := nameVal.(string)
	tv, ok := frame.Lookup(name)
	if !ok || tv.Type != "FILE" {
		return nil, runtimeErrorf(tok, "file %q is not open", name)
	}
	file := tv.Value.(*runtime.File)
	for _, m := range wantModes {
		if file.Mode == m {
			return file, nil
		}
	}
	return nil, runtimeErrorf(tok, "file %q is not open in a compatible mode", name)
}
