// Package builtins implements the small set of host-provided routines
// the resolver's global frame is seeded with: the pseudo-random number
// generators the source ships (RND, RANDOMBETWEEN), the EOF file-status
// check and INTTOSTRING conversion the test scenarios exercise, and a
// handful of string/numeric helpers (LENGTH, SUBSTRING, UCASE, LCASE,
// ROUND, MOD, DIV) that round out a usable standard library without
// changing anything about the core four-stage pipeline.
package builtins

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/pseudo9608/internal/evaluator"
	"github.com/cwbudde/pseudo9608/internal/resolver"
	"github.com/cwbudde/pseudo9608/internal/runtime"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Register seeds r's global frame with every built-in routine.
func Register(r *resolver.Resolver) {
	for _, b := range all() {
		r.RegisterBuiltin(b.Name, b)
	}
}

func all() []*evaluator.Builtin {
	return []*evaluator.Builtin{
		rnd(),
		randomBetween(),
		eof(),
		intToString(),
		length(),
		substring(),
		ucase(),
		lcase(),
		round(),
		mod(),
		div(),
	}
}



func rnd() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "RND",
		ParamTypes: nil,
		ReturnType: "REAL",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			return rand.Float64(), nil
		},
	}
}

func randomBetween() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "RANDOMBETWEEN",
		ParamTypes: []string{"INTEGER", "INTEGER"},
		ReturnType: "INTEGER",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			start, end := args[0].(int64), args[1].(int64)
			if start >= end {
				return nil, fmt.Errorf("%d not less than %d", start, end)
			}
			return start + rand.Int63n(end-start+1), nil
		},
	}
}

func intToString() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "INTTOSTRING",
		ParamTypes: []string{"INTEGER"},
		ReturnType: "STRING",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			return fmt.Sprintf("%d", args[0].(int64)), nil
		},
	}
}

func length() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "LENGTH",
		ParamTypes: []string{"STRING"},
		ReturnType: "INTEGER",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			return int64(len([]rune(args[0].(string)))), nil
		},
	}
}

func substring() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "SUBSTRING",
		ParamTypes: []string{"STRING", "INTEGER", "INTEGER"},
		ReturnType: "STRING",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			s := []rune(args[0].(string))
			start, count := args[1].(int64), args[2].(int64)
			if start < 1 || count < 0 || int(start-1+count) > len(s) {
				return nil, fmt.Errorf("SUBSTRING bounds out of range for a string of length %d", len(s))
			}
			return string(s[start-1 : start-1+count]), nil
		},
	}
}

var caser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

func ucase() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "UCASE",
		ParamTypes: []string{"STRING"},
		ReturnType: "STRING",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			return caser.String(args[0].(string)), nil
		},
	}
}

func lcase() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "LCASE",
		ParamTypes: []string{"STRING"},
		ReturnType: "STRING",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			return lowerCaser.String(args[0].(string)), nil
		},
	}
}

func round() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "ROUND",
		ParamTypes: []string{"REAL", "INTEGER"},
		ReturnType: "REAL",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			v := args[0].(float64)
			places := args[1].(int64)
			scale := math.Pow(10, float64(places))
			return math.Round(v*scale) / scale, nil
		},
	}
}

func mod() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "MOD",
		ParamTypes: []string{"INTEGER", "INTEGER"},
		ReturnType: "INTEGER",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			a, b := args[0].(int64), args[1].(int64)
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return a % b, nil
		},
	}
}

func div() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name:       "DIV",
		ParamTypes: []string{"INTEGER", "INTEGER"},
		ReturnType: "INTEGER",
		Func: func(args []runtime.Value) (runtime.Value, error) {
			a, b := args[0].(int64), args[1].(int64)
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return a / b, nil
		},
	}
}
