package builtins

import (
	"fmt"

	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

// eof looks the filename up as an open FILE in the calling frame and
// reports whether its last READFILE ran out of input. Unlike the other
// builtins it needs the caller's frame, not just its evaluated
// arguments, so it is wired through Builtin.FrameFunc instead of Func.
func eof() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "EOF",
		ParamTypes: []string{"STRING"},
		ReturnType: "BOOLEAN",
		FrameFunc: func(frame *runtime.Frame, args []runtime.Value) (runtime.Value, error) {
			name := args[0].(string)
			tv, ok := frame.Lookup(name)
			if !ok || tv.Type != "FILE" {
				return nil, fmt.Errorf("file %q is not open", name)
			}
			file, ok := tv.Value.(*runtime.File)
			if !ok {
				return nil, fmt.Errorf("file %q is not open", name)
			}
			return file.EOF(), nil
		},
	}
}
