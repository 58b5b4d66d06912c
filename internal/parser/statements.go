package parser

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// parseStatement dispatches on the current token's leading keyword. Every
// statement form is recognisable from its first token, so this never
// needs more than one token of lookahead.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Word {
	case "RETURN":
		return p.parseReturn()
	case "FUNCTION":
		return p.parseFunction()
	case "PROCEDURE":
		return p.parseProcedure()
	case "DECLARE":
		return p.parseDeclareStmt()
	case "TYPE":
		return p.parseTypeStmt()
	case "IF":
		return p.parseIf()
	case "WHILE":
		return p.parseWhile()
	case "REPEAT":
		return p.parseRepeat()
	case "FOR":
		return p.parseFor()
	case "CASE":
		return p.parseCase()
	case "OUTPUT":
		return p.parseOutput()
	case "INPUT":
		return p.parseInput()
	case "CALL":
		return p.parseCallStmt()
	case "OPENFILE":
		return p.parseOpenFile()
	case "READFILE":
		return p.parseReadFile()
	case "WRITEFILE":
		return p.parseWriteFile()
	case "CLOSEFILE":
		return p.parseCloseFile()
	default:
		return p.parseAssignStmt()
	}
}

// parseTypeName parses a type annotation: a built-in type word, a
// user-declared record name, or ARRAY[lo:hi, ...] OF elemType.
func (p *Parser) parseTypeName() (string, *ast.ArrayMeta) {
	if p.check("ARRAY") {
		p.advance()
		p.expect("[")
		var ranges [][2]int
		ranges = append(ranges, p.parseRange())
		for p.match(",") {
			ranges = append(ranges, p.parseRange())
		}
		p.expect("]")
		p.expect("OF")
		elemTok := p.advance()
		return "ARRAY", &ast.ArrayMeta{Ranges: ranges, ElemType: elemTok.Word}
	}
	tok := p.advance()
	return tok.Word, nil
}

func (p *Parser) parseRange() [2]int {
	lo := p.expectType(token.INTEGER, "array lower bound")
	p.expect(":")
	hi := p.expectType(token.INTEGER, "array upper bound")
	return [2]int{int(toInt64(lo.Value)), int(toInt64(hi.Value))}
}

func toInt64(v any) int64 {
	if i, ok := v.(int64); ok {
		return i
	}
	return 0
}

// parseDeclare parses "name : type" into a Declare expression node.
func (p *Parser) parseDeclare() *ast.Declare {
	tok := p.cur()
	name := p.expectType(token.NAME, "a name")
	p.expect(":")
	typ, meta := p.parseTypeName()
	return ast.NewDeclare(tok, name.Word, typ, meta)
}

func (p *Parser) parseDeclareStmt() ast.Stmt {
	tok := p.advance() // DECLARE
	decl := p.parseDeclare()
	return ast.NewDeclareStmt(tok, decl)
}

func (p *Parser) parseTypeStmt() ast.Stmt {
	tok := p.advance() // TYPE
	name := p.expectType(token.NAME, "a type name")
	p.skipNewlines()
	var fields []*ast.Declare
	for !p.atEnd() && !p.check("ENDTYPE") {
		p.expect("DECLARE")
		fields = append(fields, p.parseDeclare())
		p.skipNewlines()
	}
	p.expect("ENDTYPE")
	return ast.NewTypeStmt(tok, name.Word, fields)
}

func (p *Parser) parseOutput() ast.Stmt {
	tok := p.advance() // OUTPUT
	exprs := []ast.Expr{p.parseExpression(LOWEST)}
	for p.match(",") {
		exprs = append(exprs, p.parseExpression(LOWEST))
	}
	return ast.NewOutput(tok, exprs)
}

func (p *Parser) parseInput() ast.Stmt {
	tok := p.advance() // INPUT
	target := p.parsePostfix()
	return ast.NewInput(tok, target)
}

func (p *Parser) parseIf() ast.Stmt {
	tok := p.advance() // IF
	cond := p.parseExpression(LOWEST)
	p.skipNewlines()
	p.expect("THEN")
	thenBody := p.parseBlock("ELSE", "ENDIF")
	var elseBody []ast.Stmt
	if p.match("ELSE") {
		elseBody = p.parseBlock("ENDIF")
	}
	p.expect("ENDIF")
	return ast.NewIf(tok, cond, thenBody, elseBody)
}

func (p *Parser) parseCase() ast.Stmt {
	tok := p.advance() // CASE
	p.expect("OF")
	cond := p.parseExpression(LOWEST)
	p.skipNewlines()
	var arms []ast.CaseArm
	var fallback []ast.Stmt
	for !p.atEnd() && !p.check("ENDCASE") {
		if p.match("OTHERWISE") {
			p.match(":")
			if stmt := p.parseStatement(); stmt != nil {
				fallback = []ast.Stmt{stmt}
			}
			p.skipNewlines()
			break
		}
		value := p.parseExpression(LOWEST)
		p.expect(":")
		var body []ast.Stmt
		if stmt := p.parseStatement(); stmt != nil {
			body = []ast.Stmt{stmt}
		}
		var litValue any
		if lit, ok := value.(*ast.Literal); ok {
			litValue = lit.Value
		}
		arms = append(arms, ast.CaseArm{Value: litValue, Body: body})
		p.skipNewlines()
	}
	p.expect("ENDCASE")
	return ast.NewCase(tok, cond, arms, fallback)
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.advance() // WHILE
	cond := p.parseExpression(LOWEST)
	p.expect("DO")
	body := p.parseBlock("ENDWHILE")
	p.expect("ENDWHILE")
	return ast.NewWhile(tok, nil, cond, body)
}

func (p *Parser) parseRepeat() ast.Stmt {
	tok := p.advance() // REPEAT
	body := p.parseBlock("UNTIL")
	p.expect("UNTIL")
	cond := p.parseExpression(LOWEST)
	return ast.NewRepeat(tok, body, cond)
}

// parseFor desugars "FOR counter <- start TO end [STEP step] ... ENDFOR"
// into a While node: Init is the counter's initial assignment, Cond is
// the bound test, and the step increment is appended as the body's last
// statement. When STEP is a negative literal the bound test is flipped to
// >= so descending loops actually execute (see DESIGN.md's decision on
// this).
func (p *Parser) parseFor() ast.Stmt {
	tok := p.advance() // FOR
	nameTok := p.expectType(token.NAME, "loop counter name")
	p.expect("<-")
	start := p.parseExpression(LOWEST)
	p.expect("TO")
	end := p.parseExpression(LOWEST)

	var step ast.Expr
	stepNegative := false
	if p.match("STEP") {
		stepTok := p.cur()
		step = p.parseExpression(LOWEST)
		if stepTok.Type == token.INTEGER {
			if iv, ok := stepTok.Value.(int64); ok && iv < 0 {
				stepNegative = true
			}
		} else if unary, ok := step.(*ast.Unary); ok && unary.Oper == ast.OpSub {
			stepNegative = true
		}
	} else {
		step = ast.NewLiteral(tok, "INTEGER", int64(1))
	}

	init := ast.NewAssignStmt(nameTok, ast.NewAssign(nameTok, ast.NewUnresolvedName(nameTok, nameTok.Word), start))

	cmp := ast.OpLte
	if stepNegative {
		cmp = ast.OpGte
	}
	cond := ast.NewBinary(tok, ast.NewUnresolvedName(nameTok, nameTok.Word), cmp, end)

	body := p.parseBlock("ENDFOR")
	p.expect("ENDFOR")

	increment := ast.NewAssignStmt(nameTok, ast.NewAssign(nameTok,
		ast.NewUnresolvedName(nameTok, nameTok.Word),
		ast.NewBinary(nameTok, ast.NewUnresolvedName(nameTok, nameTok.Word), ast.OpAdd, step)))
	body = append(body, increment)

	return ast.NewWhile(tok, init, cond, body)
}

// parseParams parses "( [BYVALUE|BYREF] name : type {, name : type} )". An
// omitted passby keyword defaults to BYVALUE; when present it governs
// every parameter in the list, not just the first.
func (p *Parser) parseParams() ([]*ast.Declare, string) {
	passby := "BYVALUE"
	if !p.match("(") {
		return nil, passby
	}
	if p.check("BYVALUE") || p.check("BYREF") {
		passby = p.advance().Word
	}
	var params []*ast.Declare
	if !p.check(")") {
		params = append(params, p.parseDeclare())
		for p.match(",") {
			params = append(params, p.parseDeclare())
		}
	}
	p.expect(")")
	return params, passby
}

func (p *Parser) parseProcedure() ast.Stmt {
	tok := p.advance() // PROCEDURE
	name := p.expectType(token.NAME, "a procedure name")
	params, passby := p.parseParams()
	body := p.parseBlock("ENDPROCEDURE")
	p.expect("ENDPROCEDURE")
	return ast.NewProcedureStmt(tok, name.Word, params, passby, body)
}

func (p *Parser) parseFunction() ast.Stmt {
	tok := p.advance() // FUNCTION
	name := p.expectType(token.NAME, "a function name")
	params, passby := p.parseParams()
	p.expect("RETURNS")
	retTok := p.advance()
	body := p.parseBlock("ENDFUNCTION")
	p.expect("ENDFUNCTION")
	return ast.NewFunctionStmt(tok, name.Word, params, passby, retTok.Word, body)
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.advance() // RETURN
	expr := p.parseExpression(LOWEST)
	return ast.NewReturn(tok, expr)
}

func (p *Parser) parseCallStmt() ast.Stmt {
	tok := p.advance() // CALL
	expr := p.parsePostfix()
	call, ok := expr.(*ast.Call)
	if !ok {
		p.errorf(tok, "CALL requires a procedure invocation")
		call = ast.NewCall(tok, expr, nil)
	}
	return ast.NewCallStmt(tok, call)
}

func (p *Parser) parseAssignStmt() ast.Stmt {
	tok := p.cur()
	target := p.parsePostfix()
	if !p.check("<-") {
		p.errorf(p.cur(), "expected an assignment or statement keyword")
		p.advance()
		return nil
	}
	p.advance()
	value := p.parseExpression(LOWEST)
	return ast.NewAssignStmt(tok, ast.NewAssign(tok, target, value))
}

func (p *Parser) parseOpenFile() ast.Stmt {
	tok := p.advance() // OPENFILE
	filename := p.parseExpression(LOWEST)
	p.expect("FOR")
	mode := p.advance()
	return ast.NewOpenFile(tok, filename, mode.Word)
}

func (p *Parser) parseReadFile() ast.Stmt {
	tok := p.advance() // READFILE
	filename := p.parseExpression(LOWEST)
	p.expect(",")
	target := p.parsePostfix()
	return ast.NewReadFile(tok, filename, target)
}

func (p *Parser) parseWriteFile() ast.Stmt {
	tok := p.advance() // WRITEFILE
	filename := p.parseExpression(LOWEST)
	p.expect(",")
	data := p.parseExpression(LOWEST)
	return ast.NewWriteFile(tok, filename, data)
}

func (p *Parser) parseCloseFile() ast.Stmt {
	tok := p.advance() // CLOSEFILE
	filename := p.parseExpression(LOWEST)
	return ast.NewCloseFile(tok, filename)
}
