// Package printer renders a runtime.Frame for human inspection: the
// --dump-frame output the CLI offers once a program has finished running,
// and the tool tests use to assert on final variable state.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/maruel/natural"
)

// Frame renders every name declared directly in frame (not its outer
// chain), one per line, in natural order (so Array2 sorts before
// Array10) for deterministic output.
func Frame(frame *runtime.Frame) string {
	if frame == nil {
		return ""
	}
	names := frame.Names()
	natural.Sort(names)
	var sb strings.Builder
	for _, name := range names {
		v := frame.Get(name)
		fmt.Fprintf(&sb, "%s = %s\n", name, Value(v))
	}
	return sb.String()
}

// Value renders a single runtime value for inspection. Booleans print in
// upper case as OUTPUT prints them, but strings are quoted, an unassigned
// value prints as NULL, and arrays and records are expanded recursively.
func Value(v runtime.Value) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return fmt.Sprintf("%q", x)
	case *runtime.Array:
		return arrayString(x)
	case *runtime.Object:
		return objectString(x)
	case *runtime.File:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func arrayString(a *runtime.Array) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, tv := range a.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if tv == nil {
			sb.WriteString("NULL")
			continue
		}
		sb.WriteString(Value(tv.Value))
	}
	sb.WriteString("]")
	return sb.String()
}

func objectString(o *runtime.Object) string {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s{", o.TypeName)
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", name, Value(o.Fields[name].Value))
	}
	sb.WriteString("}")
	return sb.String()
}
