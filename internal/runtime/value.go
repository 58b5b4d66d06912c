// Package runtime implements the storage model shared by the resolver and
// the evaluator: typed slots, frames, arrays, records and the type system
// that clones them. None of these types depend on the syntax tree; the
// evaluator's callable values (which do hold a body of statements) live in
// the evaluator package to keep this package free of that dependency.
package runtime

import "fmt"

// Value is anything a TypedValue can hold once assigned: a bool, int64,
// float64, string, *Array, *Object, *File, or a callable value owned by
// the evaluator package.
type Value = any

// TypedValue is a storage slot: a declared type paired with an optional
// value. Value is nil until first assignment.
type TypedValue struct {
	Type  string
	Value Value
}

func (tv *TypedValue) String() string {
	if tv.Value == nil {
		return fmt.Sprintf("<%s: unassigned>", tv.Type)
	}
	return fmt.Sprintf("<%s: %v>", tv.Type, tv.Value)
}
