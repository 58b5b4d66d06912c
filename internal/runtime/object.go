package runtime

import "fmt"

// Object is an instance of a user-declared TYPE: a record of named, typed
// fields. Fields are declared once by the TypeTemplate and cloned fresh for
// every instance, the same way a Frame's Declare allocates a fresh slot.
type Object struct {
	TypeName string
	Fields   map[string]*TypedValue
}

// NewObject instantiates an Object from a TypeTemplate, giving every
// declared field its own unassigned TypedValue.
func NewObject(tmpl *TypeTemplate) *Object {
	obj := &Object{TypeName: tmpl.Name, Fields: make(map[string]*TypedValue, len(tmpl.Fields))}
	for name, typ := range tmpl.Fields {
		obj.Fields[name] = &TypedValue{Type: typ}
	}
	return obj
}

// Get returns the field slot named name, or false if the record has no
// such field.
func (o *Object) Get(name string) (*TypedValue, bool) {
	tv, ok := o.Fields[name]
	return tv, ok
}

func (o *Object) String() string {
	return fmt.Sprintf("%s record", o.TypeName)
}

// TypeTemplate is the declaration behind a TYPE statement: the ordered set
// of field names and their declared types. FieldOrder preserves declaration
// order for pretty-printing; Fields is the lookup map NewObject clones from.
type TypeTemplate struct {
	Name       string
	Fields     map[string]string
	FieldOrder []string
}

// TypeSystem is the registry of user-declared record types, consulted by
// the resolver when it sees a DECLARE naming something other than a
// built-in type. The evaluator instantiates records from the template the
// resolver attached to each ast.Declare, not from this registry.
type TypeSystem struct {
	templates map[string]*TypeTemplate
}

// NewTypeSystem returns an empty registry.
func NewTypeSystem() *TypeSystem {
	return &TypeSystem{templates: make(map[string]*TypeTemplate)}
}

// Declare registers a new record type. Returns false if the name is
// already in use (by a user type or a built-in type name), leaving the
// caller to raise the appropriate error.
func (ts *TypeSystem) Declare(tmpl *TypeTemplate) bool {
	switch tmpl.Name {
	case "BOOLEAN", "INTEGER", "REAL", "STRING", "FILE", "ARRAY", "NULL":
		return false
	}
	if _, exists := ts.templates[tmpl.Name]; exists {
		return false
	}
	ts.templates[tmpl.Name] = tmpl
	return true
}

// Lookup returns the template registered under name.
func (ts *TypeSystem) Lookup(name string) (*TypeTemplate, bool) {
	tmpl, ok := ts.templates[name]
	return tmpl, ok
}
