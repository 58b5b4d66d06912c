package ast

import (
	"github.com/cwbudde/pseudo9608/internal/runtime"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// Expr is any expression node. Tok anchors the node to source position for
// diagnostics, the way the source keeps a token on every node it builds.
type Expr interface {
	exprNode()
	Tok() token.Token
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	Tok() token.Token
}

// base carries the anchoring token so concrete node types can embed it
// instead of repeating the Tok() method everywhere.
type base struct{ tok token.Token }

func (b base) Tok() token.Token { return b.tok }

// --- expressions ---

// Literal is a scanned BOOLEAN, INTEGER, REAL or STRING value, or NULL.
type Literal struct {
	base
	Typ   string
	Value any
}

func (*Literal) exprNode() {}

// Unary applies a prefix operator (NOT, or unary -) to Right.
type Unary struct {
	base
	Oper  Operator
	Right Expr
}

func (*Unary) exprNode() {}

// Binary applies an infix operator to Left and Right.
type Binary struct {
	base
	Left  Expr
	Oper  Operator
	Right Expr
}

func (*Binary) exprNode() {}

// UnresolvedName is a bare identifier as produced by the parser, before the
// resolver has bound it to the frame that owns it. The resolver replaces
// every UnresolvedName reachable from the program with a GetName.
type UnresolvedName struct {
	base
	Name string
}

func (*UnresolvedName) exprNode() {}

// GetName is a name the resolver has bound to the frame that declares it.
// Depth is the number of Outer() hops from the frame active at the point of
// use out to the frame that owns the name, computed once at resolve time.
// It is relative rather than an absolute frame pointer so that a fresh
// per-call frame (procedures and functions get one on every call) still
// satisfies references resolved against an earlier call's frame.
type GetName struct {
	base
	Name  string
	Depth int
}

func (*GetName) exprNode() {}

// GetIndex subscripts an array expression.
type GetIndex struct {
	base
	Array   Expr
	Indices []Expr
}

func (*GetIndex) exprNode() {}

// GetAttr accesses a field of a record expression.
type GetAttr struct {
	base
	Object Expr
	Name   string
}

func (*GetAttr) exprNode() {}

// Call invokes a procedure or function by name, resolved the same way a
// plain name reference is (Callable is a GetName once resolved).
type Call struct {
	base
	Callable Expr
	Args     []Expr
}

func (*Call) exprNode() {}

// Assign evaluates Expr and stores it into Assignee, which must resolve to
// an assignable target (GetName, GetIndex or GetAttr).
type Assign struct {
	base
	Assignee Expr
	Value    Expr
}

func (*Assign) exprNode() {}

// ArrayMeta describes an ARRAY[...] OF declaration's shape.
type ArrayMeta struct {
	Ranges   [][2]int
	ElemType string
}

// Declare names a DECLARE target: its name, declared type, and (for
// ARRAY types) the dimension ranges and element type. Template is filled
// in by the resolver when Typ names a user TYPE record, so the evaluator
// can allocate a fresh Object for each call without its own type registry.
type Declare struct {
	base
	Name     string
	Typ      string
	Array    *ArrayMeta
	Template *runtime.TypeTemplate
}

func (*Declare) exprNode() {}

// --- statements ---

// Output is an OUTPUT statement: a comma-separated list of expressions
// concatenated with no separator and a trailing newline.
type Output struct {
	base
	Exprs []Expr
}

func (*Output) stmtNode() {}

// Input is an INPUT statement: read a line and store it (converted to the
// target's declared type) into Target.
type Input struct {
	base
	Target Expr
}

func (*Input) stmtNode() {}

// If is an IF/THEN/ELSE/ENDIF statement. Else is nil when no ELSE clause
// was written.
type If struct {
	base
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (*If) stmtNode() {}

// CaseArm is one OF arm: Value is the scanned literal value to match
// against Cond, in source declaration order.
type CaseArm struct {
	Value any
	Body  []Stmt
}

// Case is a CASE OF statement. Fallback holds the OTHERWISE body, nil if
// absent.
type Case struct {
	base
	Cond     Expr
	Arms     []CaseArm
	Fallback []Stmt
}

func (*Case) stmtNode() {}

// While is a WHILE/ENDWHILE loop. Init is non-nil only for a FOR loop
// desugared into a While (see the parser): it runs once before the first
// condition test.
type While struct {
	base
	Init Stmt
	Cond Expr
	Body []Stmt
}

func (*While) stmtNode() {}

// Repeat is a REPEAT/UNTIL loop: Body runs at least once, then repeats
// while Cond is false.
type Repeat struct {
	base
	Body []Stmt
	Cond Expr
}

func (*Repeat) stmtNode() {}

// ProcedureStmt declares a PROCEDURE. Params lists formal parameters in
// declaration order; Passby is the single BYREF/BYVALUE mode that applies
// to every parameter in the list.
type ProcedureStmt struct {
	base
	Name   string
	Params []*Declare
	Passby string
	Body   []Stmt
}

func (*ProcedureStmt) stmtNode() {}

// FunctionStmt declares a FUNCTION, identical to ProcedureStmt plus a
// declared RETURNS type.
type FunctionStmt struct {
	base
	Name       string
	Params     []*Declare
	Passby     string
	ReturnType string
	Body       []Stmt
}

func (*FunctionStmt) stmtNode() {}

// TypeStmt declares a user record type: an ordered list of fields.
type TypeStmt struct {
	base
	Name   string
	Fields []*Declare
}

func (*TypeStmt) stmtNode() {}

// OpenFile is an OPENFILE statement.
type OpenFile struct {
	base
	Filename Expr
	Mode     string
}

func (*OpenFile) stmtNode() {}

// ReadFile is a READFILE statement.
type ReadFile struct {
	base
	Filename Expr
	Target   Expr
}

func (*ReadFile) stmtNode() {}

// WriteFile is a WRITEFILE statement.
type WriteFile struct {
	base
	Filename Expr
	Data     Expr
}

func (*WriteFile) stmtNode() {}

// CloseFile is a CLOSEFILE statement.
type CloseFile struct {
	base
	Filename Expr
}

func (*CloseFile) stmtNode() {}

// CallStmt is a CALL statement: a procedure invocation used for its
// side effects, with its value (if any) discarded.
type CallStmt struct {
	base
	Call *Call
}

func (*CallStmt) stmtNode() {}

// AssignStmt wraps an Assign expression into a statement (a bare
// assignment line).
type AssignStmt struct {
	base
	Assign *Assign
}

func (*AssignStmt) stmtNode() {}

// DeclareStmt wraps a Declare expression into a statement (a bare
// DECLARE line).
type DeclareStmt struct {
	base
	Decl *Declare
}

func (*DeclareStmt) stmtNode() {}

// Return is a RETURN statement, valid only inside a FUNCTION body.
type Return struct {
	base
	Expr Expr
}

func (*Return) stmtNode() {}

// New* constructors stamp the anchoring token onto each node so callers
// don't have to set the embedded base by hand.

func NewLiteral(tok token.Token, typ string, value any) *Literal {
	return &Literal{base: base{tok}, Typ: typ, Value: value}
}

func NewUnary(tok token.Token, oper Operator, right Expr) *Unary {
	return &Unary{base: base{tok}, Oper: oper, Right: right}
}

func NewBinary(tok token.Token, left Expr, oper Operator, right Expr) *Binary {
	return &Binary{base: base{tok}, Left: left, Oper: oper, Right: right}
}

func NewUnresolvedName(tok token.Token, name string) *UnresolvedName {
	return &UnresolvedName{base: base{tok}, Name: name}
}

func NewGetName(tok token.Token, name string, depth int) *GetName {
	return &GetName{base: base{tok}, Name: name, Depth: depth}
}

func NewGetIndex(tok token.Token, array Expr, indices []Expr) *GetIndex {
	return &GetIndex{base: base{tok}, Array: array, Indices: indices}
}

func NewGetAttr(tok token.Token, object Expr, name string) *GetAttr {
	return &GetAttr{base: base{tok}, Object: object, Name: name}
}

func NewCall(tok token.Token, callable Expr, args []Expr) *Call {
	return &Call{base: base{tok}, Callable: callable, Args: args}
}

func NewAssign(tok token.Token, assignee Expr, value Expr) *Assign {
	return &Assign{base: base{tok}, Assignee: assignee, Value: value}
}

func NewDeclare(tok token.Token, name, typ string, array *ArrayMeta) *Declare {
	return &Declare{base: base{tok}, Name: name, Typ: typ, Array: array}
}

func NewOutput(tok token.Token, exprs []Expr) *Output {
	return &Output{base: base{tok}, Exprs: exprs}
}

func NewInput(tok token.Token, target Expr) *Input {
	return &Input{base: base{tok}, Target: target}
}

func NewIf(tok token.Token, cond Expr, then, els []Stmt) *If {
	return &If{base: base{tok}, Cond: cond, Then: then, Else: els}
}

func NewCase(tok token.Token, cond Expr, arms []CaseArm, fallback []Stmt) *Case {
	return &Case{base: base{tok}, Cond: cond, Arms: arms, Fallback: fallback}
}

func NewWhile(tok token.Token, init Stmt, cond Expr, body []Stmt) *While {
	return &While{base: base{tok}, Init: init, Cond: cond, Body: body}
}

func NewRepeat(tok token.Token, body []Stmt, cond Expr) *Repeat {
	return &Repeat{base: base{tok}, Body: body, Cond: cond}
}

func NewProcedureStmt(tok token.Token, name string, params []*Declare, passby string, body []Stmt) *ProcedureStmt {
	return &ProcedureStmt{base: base{tok}, Name: name, Params: params, Passby: passby, Body: body}
}

func NewFunctionStmt(tok token.Token, name string, params []*Declare, passby, returnType string, body []Stmt) *FunctionStmt {
	return &FunctionStmt{base: base{tok}, Name: name, Params: params, Passby: passby, ReturnType: returnType, Body: body}
}

func NewTypeStmt(tok token.Token, name string, fields []*Declare) *TypeStmt {
	return &TypeStmt{base: base{tok}, Name: name, Fields: fields}
}

func NewOpenFile(tok token.Token, filename Expr, mode string) *OpenFile {
	return &OpenFile{base: base{tok}, Filename: filename, Mode: mode}
}

func NewReadFile(tok token.Token, filename, target Expr) *ReadFile {
	return &ReadFile{base: base{tok}, Filename: filename, Target: target}
}

func NewWriteFile(tok token.Token, filename, data Expr) *WriteFile {
	return &WriteFile{base: base{tok}, Filename: filename, Data: data}
}

func NewCloseFile(tok token.Token, filename Expr) *CloseFile {
	return &CloseFile{base: base{tok}, Filename: filename}
}

func NewCallStmt(tok token.Token, call *Call) *CallStmt {
	return &CallStmt{base: base{tok}, Call: call}
}

func NewAssignStmt(tok token.Token, assign *Assign) *AssignStmt {
	return &AssignStmt{base: base{tok}, Assign: assign}
}

func NewDeclareStmt(tok token.Token, decl *Declare) *DeclareStmt {
	return &DeclareStmt{base: base{tok}, Decl: decl}
}

func NewReturn(tok token.Token, expr Expr) *Return {
	return &Return{base: base{tok}, Expr: expr}
}
