package resolver

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/runtime"
)

// resolveDeclareExpr declares decl.Name in frame. For BYVALUE (plain
// DECLARE statements and BYVALUE parameters) the name must not already
// exist in this exact frame; a fresh slot is allocated, and ARRAY
// declarations get their backing runtime.Array pre-allocated here so
// later GetIndex resolution can read its element type straight off the
// slot. For BYREF (parameters only) the caller's slot of the same name
// and type must already exist in the *outer* frame; it is aliased into
// this frame by storing the same *TypedValue, not a clone.
func (r *Resolver) resolveDeclareExpr(decl *ast.Declare, frame *runtime.Frame, passby string) (ast.Expr, string) {
	if passby == "BYREF" {
		outer := frame.Outer()
		var tv *runtime.TypedValue
		var ok bool
		if outer != nil {
			tv, ok = outer.Lookup(decl.Name)
		}
		if !ok {
			r.errorf(decl.Tok(), "BYREF parameter '%s' has no matching caller slot", decl.Name)
			frame.Declare(decl.Name, decl.Typ)
			return decl, decl.Typ
		}
		if tv.Type != decl.Typ {
			r.errorf(decl.Tok(), "BYREF parameter '%s' expects %s, caller has %s", decl.Name, decl.Typ, tv.Type)
		}
		frame.Bind(decl.Name, tv)
		return decl, decl.Typ
	}

	if _, exists := frame.LookupLocal(decl.Name); exists {
		r.errorf(decl.Tok(), "'%s' is already declared in this scope", decl.Name)
		return decl, decl.Typ
	}

	if decl.Typ == typArray {
		if err := r.declareArray(decl, frame); err != nil {
			r.errorf(decl.Tok(), "%s", err.Error())
		}
		return decl, decl.Typ
	}

	if _, isBuiltin := builtinTypes[decl.Typ]; !isBuiltin {
		tmpl, ok := r.Types.Lookup(decl.Typ)
		if !ok {
			r.errorf(decl.Tok(), "undeclared type '%s'", decl.Typ)
			frame.Declare(decl.Name, decl.Typ)
			return decl, decl.Typ
		}
		decl.Template = tmpl
		tv := frame.Declare(decl.Name, decl.Typ)
		tv.Value = runtime.NewObject(tmpl)
		return decl, decl.Typ
	}

	frame.Declare(decl.Name, decl.Typ)
	return decl, decl.Typ
}

var builtinTypes = map[string]bool{
	typBoolean: true, typInteger: true, typReal: true, typString: true,
	"FILE": true, typArray: true, typNull: true,
}

func (r *Resolver) declareArray(decl *ast.Declare, frame *runtime.Frame) error {
	ranges := make([]runtime.Range, len(decl.Array.Ranges))
	for i, bounds := range decl.Array.Ranges {
		ranges[i] = runtime.Range{Lower: bounds[0], Upper: bounds[1]}
	}
	arr := runtime.NewArray(decl.Array.ElemType, ranges)
	tv := frame.Declare(decl.Name, typArray)
	tv.Value = arr
	return nil
}

// resolveTypeStmt registers a TYPE declaration's field schema with the
// type system, resolving each field's type name (which must already be a
// built-in scalar — records cannot nest ARRAY or other record fields in
// this design, matching the source's restriction).
func (r *Resolver) resolveTypeStmt(stmt *ast.TypeStmt) {
	fields := make(map[string]string, len(stmt.Fields))
	order := make([]string, 0, len(stmt.Fields))
	for _, f := range stmt.Fields {
		if f.Typ == typArray {
			r.errorf(f.Tok(), "record field '%s' cannot be of type ARRAY", f.Name)
			continue
		}
		fields[f.Name] = f.Typ
		order = append(order, f.Name)
	}
	tmpl := &runtime.TypeTemplate{Name: stmt.Name, Fields: fields, FieldOrder: order}
	if !r.Types.Declare(tmpl) {
		r.errorf(stmt.Tok(), "type '%s' is already declared", stmt.Name)
	}
}
