package parser

import (
	"github.com/cwbudde/pseudo9608/internal/ast"
	"github.com/cwbudde/pseudo9608/internal/token"
)

// parseExpression implements precedence climbing: parseUnary produces the
// tightest-binding term, then this loop folds in operators whose
// precedence is at least minPrec, recursing with prec+1 to keep every
// operator left-associative.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		tok := p.cur()
		prec, ok := precedences[tok.Word]
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right := p.parseExpression(prec + 1)
		op, _ := ast.LookupOperator(tok.Word)
		left = ast.NewBinary(tok, left, op, right)
	}
	return left
}

// parseUnary handles the two prefix operators: NOT and unary minus.
func (p *Parser) parseUnary() ast.Expr {
	if p.check("NOT") || p.check("-") {
		tok := p.advance()
		right := p.parseUnary()
		op, _ := ast.LookupOperator(tok.Word)
		return ast.NewUnary(tok, op, right)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression, then folds in any chain of
// '[' index '](' / '.' attr / '(' args ')' suffixes.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check("["):
			tok := p.advance()
			var indices []ast.Expr
			indices = append(indices, p.parseExpression(LOWEST))
			for p.match(",") {
				indices = append(indices, p.parseExpression(LOWEST))
			}
			p.expect("]")
			expr = ast.NewGetIndex(tok, expr, indices)
		case p.check("."):
			tok := p.advance()
			name := p.expectType(token.NAME, "field name")
			expr = ast.NewGetAttr(tok, expr, name.Word)
		case p.check("("):
			tok := p.advance()
			var args []ast.Expr
			if !p.check(")") {
				args = append(args, p.parseExpression(LOWEST))
				for p.match(",") {
					args = append(args, p.parseExpression(LOWEST))
				}
			}
			p.expect(")")
			expr = ast.NewCall(tok, expr, args)
		default:
			return expr
		}
	}
}

// parsePrimary parses a literal, a name, or a parenthesised expression.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.INTEGER:
		p.advance()
		return ast.NewLiteral(tok, "INTEGER", tok.Value)
	case token.REAL:
		p.advance()
		return ast.NewLiteral(tok, "REAL", tok.Value)
	case token.STRING:
		p.advance()
		return ast.NewLiteral(tok, "STRING", tok.Value)
	case token.BOOLEAN:
		p.advance()
		return ast.NewLiteral(tok, "BOOLEAN", tok.Value)
	case token.NULLTOK:
		p.advance()
		return ast.NewLiteral(tok, "NULL", nil)
	case token.NAME:
		p.advance()
		return ast.NewUnresolvedName(tok, tok.Word)
	}
	if p.check("(") {
		p.advance()
		expr := p.parseExpression(LOWEST)
		p.expect(")")
		return expr
	}
	p.errorf(tok, "expected an expression")
	p.advance()
	return ast.NewLiteral(tok, "NULL", nil)
}
