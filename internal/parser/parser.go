// Package parser implements a recursive-descent, Pratt-style parser for
// Slate source, turning a token stream from internal/lexer into the
// internal/ast tree internal/compiler consumes.
//
// Unlike the teacher's message-send grammar (unary, then binary, then
// keyword messages, all left-associative), Slate's C-like surface syntax
// needs ordinary operator precedence climbing: assignment is handled as
// a special low-precedence case around a Pratt expression parser, and
// postfix `.`, `(`, `[` are themselves infix operators at the highest
// precedence level so `a.b(c)[d]` chains naturally.
package parser

import (
	"fmt"
	"strconv"

	"github.com/edadma/slate/internal/ast"
	"github.com/edadma/slate/internal/lexer"
)

// precedence levels, lowest to highest.
const (
	lowest int = iota
	precNullCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquals
	precCompare
	precShift
	precRange
	precSum
	precProduct
	precPower
	precPrefix
	precCall
)

var precedences = map[lexer.TokenType]int{
	lexer.TokenQuestionQuestion:     precNullCoalesce,
	lexer.TokenOrOr:                 precOr,
	lexer.TokenAndAnd:               precAnd,
	lexer.TokenPipe:                 precBitOr,
	lexer.TokenCaret:                precBitXor,
	lexer.TokenAmp:                  precBitAnd,
	lexer.TokenEqual:                precEquals,
	lexer.TokenNotEqual:             precEquals,
	lexer.TokenLess:                 precCompare,
	lexer.TokenLessEqual:            precCompare,
	lexer.TokenGreater:              precCompare,
	lexer.TokenGreaterEqual:         precCompare,
	lexer.TokenIn:                   precCompare,
	lexer.TokenInstanceof:           precCompare,
	lexer.TokenLeftShift:            precShift,
	lexer.TokenRightShift:           precShift,
	lexer.TokenUnsignedRightShift:   precShift,
	lexer.TokenDotDot:               precRange,
	lexer.TokenDotDotLess:           precRange,
	lexer.TokenPlus:                 precSum,
	lexer.TokenMinus:                precSum,
	lexer.TokenStar:                 precProduct,
	lexer.TokenSlash:                precProduct,
	lexer.TokenPercent:              precProduct,
	lexer.TokenStarStar:             precPower,
	lexer.TokenLParen:               precCall,
	lexer.TokenLBracket:             precCall,
	lexer.TokenDot:                  precCall,
}

// Parser turns a token stream into an *ast.Program. It is single-use:
// create a new Parser per source unit.
type Parser struct {
	l       *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token
	errors  []string
}

// New creates a Parser over the given source text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// Errors returns every error accumulated during parsing.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curTok.Type == tt {
		p.nextToken()
		return true
	}
	p.addError("line %d: expected %s, got %s", p.curTok.Line, tt, p.curTok.Type)
	return false
}

// Parse consumes the whole token stream and returns the resulting
// Program, along with an error summarizing any accumulated parse
// errors.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.curTok.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if len(p.errors) > 0 {
		return prog, fmt.Errorf("parser errors: %v", p.errors)
	}
	return prog, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenLBrace:
		return p.parseBlockStatement()
	case lexer.TokenFn:
		if p.peekTok.Type == lexer.TokenIdent {
			return p.parseFunctionDeclaration()
		}
	case lexer.TokenSemicolon:
		p.nextToken()
		return nil
	}

	expr := p.parseAssignExpression()
	if expr == nil {
		p.nextToken()
		return nil
	}
	if p.curTok.Type == lexer.TokenSemicolon {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Expression: expr}
}

// parseFunctionDeclaration desugars `fn name(params) { body }` into a
// let binding of a FunctionLiteral, so the compiler only has one code
// path for closures.
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	p.nextToken() // consume 'fn'
	name := p.curTok.Literal
	p.nextToken() // consume name
	lit := p.parseFunctionLiteralFrom(name)
	return &ast.LetStatement{Name: name, Value: lit}
}

func (p *Parser) parseLetStatement() ast.Statement {
	p.nextToken() // consume 'let'
	if p.curTok.Type != lexer.TokenIdent {
		p.addError("line %d: expected identifier after let", p.curTok.Line)
		return nil
	}
	name := p.curTok.Literal
	p.nextToken()
	if !p.expect(lexer.TokenAssign) {
		return nil
	}
	value := p.parseAssignExpression()
	if p.curTok.Type == lexer.TokenSemicolon {
		p.nextToken()
	}
	return &ast.LetStatement{Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	p.nextToken() // consume 'return'
	if p.curTok.Type == lexer.TokenSemicolon || p.curTok.Type == lexer.TokenRBrace {
		if p.curTok.Type == lexer.TokenSemicolon {
			p.nextToken()
		}
		return &ast.ReturnStatement{}
	}
	value := p.parseAssignExpression()
	if p.curTok.Type == lexer.TokenSemicolon {
		p.nextToken()
	}
	return &ast.ReturnStatement{Value: value}
}

func (p *Parser) parseIfStatement() ast.Statement {
	p.nextToken() // consume 'if'
	if !p.expect(lexer.TokenLParen) {
		return nil
	}
	cond := p.parseAssignExpression()
	if !p.expect(lexer.TokenRParen) {
		return nil
	}
	cons := p.parseBlockStatement().(*ast.BlockStatement)
	stmt := &ast.IfStatement{Condition: cond, Consequence: cons}
	if p.curTok.Type == lexer.TokenElse {
		p.nextToken()
		if p.curTok.Type == lexer.TokenIf {
			stmt.Alternative = p.parseIfStatement()
		} else {
			stmt.Alternative = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	p.nextToken() // consume 'while'
	if !p.expect(lexer.TokenLParen) {
		return nil
	}
	cond := p.parseAssignExpression()
	if !p.expect(lexer.TokenRParen) {
		return nil
	}
	body := p.parseBlockStatement().(*ast.BlockStatement)
	return &ast.WhileStatement{Condition: cond, Body: body}
}

func (p *Parser) parseBlockStatement() ast.Statement {
	p.nextToken() // consume '{'
	block := &ast.BlockStatement{}
	for p.curTok.Type != lexer.TokenRBrace && p.curTok.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if !p.expect(lexer.TokenRBrace) {
		return block
	}
	return block
}

// parseAssignExpression parses a full expression, treating `=` as a
// right-associative operator lower precedence than anything the Pratt
// loop handles, mirroring how most C-family parsers bolt assignment on
// top of an operator-precedence core.
func (p *Parser) parseAssignExpression() ast.Expression {
	left := p.parseExpression(lowest)
	if left == nil {
		return nil
	}
	if p.curTok.Type == lexer.TokenAssign {
		p.nextToken()
		value := p.parseAssignExpression()
		return &ast.AssignExpression{Target: left, Value: value}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for p.curTok.Type != lexer.TokenSemicolon && precedence < p.curPrecedence() {
		switch p.curTok.Type {
		case lexer.TokenLParen:
			left = p.parseCallExpression(left)
		case lexer.TokenLBracket:
			left = p.parseIndexExpression(left)
		case lexer.TokenDot:
			left = p.parseMemberExpression(left)
		case lexer.TokenDotDot, lexer.TokenDotDotLess:
			left = p.parseRangeExpression(left)
		default:
			left = p.parseInfixExpression(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.curTok.Type {
	case lexer.TokenInt:
		return p.parseIntegerLiteral()
	case lexer.TokenFloat:
		return p.parseFloatLiteral()
	case lexer.TokenString:
		lit := &ast.StringLiteral{Value: p.curTok.Literal}
		p.nextToken()
		return lit
	case lexer.TokenTrue:
		p.nextToken()
		return &ast.BooleanLiteral{Value: true}
	case lexer.TokenFalse:
		p.nextToken()
		return &ast.BooleanLiteral{Value: false}
	case lexer.TokenNull:
		p.nextToken()
		return &ast.NullLiteral{}
	case lexer.TokenUndefined:
		p.nextToken()
		return &ast.UndefinedLiteral{}
	case lexer.TokenIdent:
		lit := &ast.Identifier{Name: p.curTok.Literal}
		p.nextToken()
		return lit
	case lexer.TokenLParen:
		p.nextToken()
		expr := p.parseAssignExpression()
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		return expr
	case lexer.TokenLBracket:
		return p.parseArrayLiteral()
	case lexer.TokenLBrace:
		return p.parseObjectLiteral()
	case lexer.TokenFn:
		p.nextToken()
		return p.parseFunctionLiteralFrom("")
	case lexer.TokenMinus, lexer.TokenBang, lexer.TokenTilde:
		op := p.curTok.Literal
		if op == "" {
			op = p.curTok.Type.String()
		}
		p.nextToken()
		right := p.parseExpression(precPrefix)
		return &ast.PrefixExpression{Operator: op, Right: right}
	default:
		p.addError("line %d: unexpected token %s", p.curTok.Line, p.curTok.Type)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := p.curTok.Literal
	n, err := strconv.ParseInt(lit, 10, 32)
	p.nextToken()
	if err != nil {
		return &ast.BigIntLiteral{Text: lit}
	}
	return &ast.IntegerLiteral{Value: int32(n)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	n, err := strconv.ParseFloat(p.curTok.Literal, 64)
	if err != nil {
		p.addError("line %d: invalid float literal %q", p.curTok.Line, p.curTok.Literal)
	}
	p.nextToken()
	return &ast.NumberLiteral{Value: n}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	p.nextToken() // consume '['
	lit := &ast.ArrayLiteral{}
	for p.curTok.Type != lexer.TokenRBracket && p.curTok.Type != lexer.TokenEOF {
		lit.Elements = append(lit.Elements, p.parseAssignExpression())
		if p.curTok.Type == lexer.TokenComma {
			p.nextToken()
		}
	}
	p.expect(lexer.TokenRBracket)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	p.nextToken() // consume '{'
	lit := &ast.ObjectLiteral{}
	for p.curTok.Type != lexer.TokenRBrace && p.curTok.Type != lexer.TokenEOF {
		var key string
		switch p.curTok.Type {
		case lexer.TokenIdent, lexer.TokenString:
			key = p.curTok.Literal
		default:
			p.addError("line %d: expected object key, got %s", p.curTok.Line, p.curTok.Type)
		}
		p.nextToken()
		if !p.expect(lexer.TokenColon) {
			break
		}
		value := p.parseAssignExpression()
		lit.Entries = append(lit.Entries, ast.ObjectEntry{Key: key, Value: value})
		if p.curTok.Type == lexer.TokenComma {
			p.nextToken()
		}
	}
	p.expect(lexer.TokenRBrace)
	return lit
}

func (p *Parser) parseFunctionLiteralFrom(name string) ast.Expression {
	lit := &ast.FunctionLiteral{Name: name}
	if !p.expect(lexer.TokenLParen) {
		return lit
	}
	for p.curTok.Type != lexer.TokenRParen && p.curTok.Type != lexer.TokenEOF {
		if p.curTok.Type == lexer.TokenIdent {
			lit.Parameters = append(lit.Parameters, p.curTok.Literal)
			p.nextToken()
		}
		if p.curTok.Type == lexer.TokenComma {
			p.nextToken()
		}
	}
	p.expect(lexer.TokenRParen)
	lit.Body = p.parseBlockStatement().(*ast.BlockStatement)
	return lit
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	p.nextToken() // consume '('
	call := &ast.CallExpression{Callee: callee}
	for p.curTok.Type != lexer.TokenRParen && p.curTok.Type != lexer.TokenEOF {
		call.Args = append(call.Args, p.parseAssignExpression())
		if p.curTok.Type == lexer.TokenComma {
			p.nextToken()
		}
	}
	p.expect(lexer.TokenRParen)
	return call
}

func (p *Parser) parseIndexExpression(object ast.Expression) ast.Expression {
	p.nextToken() // consume '['
	idx := p.parseAssignExpression()
	p.expect(lexer.TokenRBracket)
	return &ast.IndexExpression{Object: object, Index: idx}
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	p.nextToken() // consume '.'
	if p.curTok.Type != lexer.TokenIdent {
		p.addError("line %d: expected property name after '.'", p.curTok.Line)
		return object
	}
	name := p.curTok.Literal
	p.nextToken()
	return &ast.MemberExpression{Object: object, Property: name}
}

func (p *Parser) parseRangeExpression(start ast.Expression) ast.Expression {
	exclusive := p.curTok.Type == lexer.TokenDotDotLess
	p.nextToken() // consume '..' or '..<'
	end := p.parseExpression(precRange)
	return &ast.RangeLiteral{Start: start, End: end, Exclusive: exclusive}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	op := p.curTok.Literal
	isPower := p.curTok.Type == lexer.TokenStarStar
	if op == "" {
		op = p.curTok.Type.String()
	}
	precedence := p.curPrecedence()
	p.nextToken()
	if isPower {
		// ** is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
		precedence--
	}
	right := p.parseExpression(precedence)
	return &ast.InfixExpression{Left: left, Operator: op, Right: right}
}
