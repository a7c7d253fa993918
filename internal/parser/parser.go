// Package parser implements a hand-written recursive-descent /
// precedence-climbing parser that turns an internal/lexer token stream
// into the internal/ast tree, gated by the target ECMAScript edition
// (spec.md §2: ES1/ES3/ES5 grammar differences) and implementing
// automatic semicolon insertion.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/lexer"
)

// Precedence levels, lowest to highest. AssignmentExpression and the
// comma operator are handled outside this table by dedicated functions.
const (
	_ int = iota
	LOWEST
	LOGOR
	LOGAND
	BITOR
	BITXOR
	BITAND
	EQUALITY
	RELATIONAL
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OROR:       LOGOR,
	lexer.ANDAND:     LOGAND,
	lexer.PIPE:       BITOR,
	lexer.CARET:      BITXOR,
	lexer.AMP:        BITAND,
	lexer.EQ:         EQUALITY,
	lexer.NEQ:        EQUALITY,
	lexer.SEQ:        EQUALITY,
	lexer.SNEQ:       EQUALITY,
	lexer.LT:         RELATIONAL,
	lexer.GT:         RELATIONAL,
	lexer.LE:         RELATIONAL,
	lexer.GE:         RELATIONAL,
	lexer.INSTANCEOF: RELATIONAL,
	lexer.IN:         RELATIONAL,
	lexer.SHL:        SHIFT,
	lexer.SHR:        SHIFT,
	lexer.SAR:        SHIFT,
	lexer.PLUS:       ADDITIVE,
	lexer.MINUS:      ADDITIVE,
	lexer.STAR:       MULTIPLICATIVE,
	lexer.SLASH:      MULTIPLICATIVE,
	lexer.PERCENT:    MULTIPLICATIVE,
}

var assignmentOperators = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_ASSIGN: true, lexer.MINUS_ASSIGN: true,
	lexer.STAR_ASSIGN: true, lexer.SLASH_ASSIGN: true, lexer.PERCENT_ASSIGN: true,
	lexer.SHL_ASSIGN: true, lexer.SHR_ASSIGN: true, lexer.SAR_ASSIGN: true,
	lexer.AMP_ASSIGN: true, lexer.PIPE_ASSIGN: true, lexer.CARET_ASSIGN: true,
}

// tokenEndsExpression reports whether a token of this type can be the last
// token of a complete expression - used to decide whether a following '/'
// starts a RegularExpressionLiteral or a division/SLASH_ASSIGN operator
// (ES5 §7.8.5's lexical grammar ambiguity, resolved the way real-world
// engines resolve it: by tracking the preceding significant token).
func tokenEndsExpression(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.NUMBER, lexer.STRING, lexer.REGEX,
		lexer.RPAREN, lexer.RBRACK, lexer.THIS, lexer.TRUE, lexer.FALSE, lexer.NULL,
		lexer.PLUSPLUS, lexer.MINUSMINUS:
		return true
	}
	return false
}

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l       *lexer.Lexer
	version lexer.Version

	curTok  lexer.Token
	peekTok lexer.Token

	strict []bool // directive-prologue strict-mode stack, one entry per function/program scope
	noIn   int    // >0 while parsing a for-statement init clause (ES5 NoIn grammar variant)

	errors []*ParseError
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, version: l.Version(), strict: []bool{false}}
	p.curTok = p.scan(true)
	p.peekTok = p.scan(!tokenEndsExpression(p.curTok.Type))
	return p
}

func (p *Parser) scan(regexAllowed bool) lexer.Token {
	if regexAllowed {
		return p.l.NextRegexToken()
	}
	return p.l.NextToken()
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.scan(!tokenEndsExpression(p.curTok.Type))
}

func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) error(code, format string, args ...interface{}) {
	p.errors = append(p.errors, NewParseError(p.curTok.Pos, code, fmt.Sprintf(format, args...)))
}

// checkVersionGate reports a version-gated error (lexer.IntroducedAt, from
// spec.md §4.2's ES3/ES5 keyword-introduction table) if tok's TokenType
// names a construct the active language version doesn't support yet. The
// token itself always lexes as its keyword type regardless of version
// (see lexer.LookupIdent) specifically so this check - not an IDENT
// misclassification - is what rejects e.g. `switch` under ES1.
func (p *Parser) checkVersionGate(tok lexer.Token) {
	if need := lexer.IntroducedAt(tok.Type); p.version < need {
		p.error(ErrVersionGated, "%q is not available before ES%d", tok.Literal, versionNumber(need))
	}
}

func versionNumber(v lexer.Version) int {
	switch v {
	case lexer.ES3:
		return 3
	case lexer.ES5:
		return 5
	default:
		return 1
	}
}

func (p *Parser) isStrict() bool { return p.strict[len(p.strict)-1] }

func (p *Parser) pushStrict(strict bool) {
	p.strict = append(p.strict, strict || p.isStrict())
}
func (p *Parser) popStrict() { p.strict = p.strict[:len(p.strict)-1] }

func (p *Parser) expect(tt lexer.TokenType, code, what string) bool {
	if p.curTok.Type == tt {
		p.nextToken()
		return true
	}
	p.error(code, "expected %s, got %q", what, p.curTok.Literal)
	return false
}

// consumeSemicolon implements ES5 §7.9 automatic semicolon insertion: an
// explicit ';' is consumed; otherwise a semicolon is inserted if the next
// token is '}', EOF, or preceded by a LineTerminator.
func (p *Parser) consumeSemicolon() {
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
		return
	}
	if p.curTok.Type == lexer.RBRACE || p.curTok.Type == lexer.EOF || p.curTok.NewlineBefore {
		return
	}
	p.error(ErrMissingSemicolon, "missing semicolon before %q", p.curTok.Literal)
}

// ParseProgram parses a complete program, detecting its directive
// prologue for "use strict" (spec.md §4.2).
func ParseProgram(l *lexer.Lexer) (*ast.Program, []*ParseError) {
	p := New(l)
	prog := &ast.Program{}
	prog.Strict, prog.Statements = p.parseSourceElements(lexer.EOF)
	seen := map[lexer.Position]bool{}
	for _, le := range l.Errors() {
		if !seen[le.Pos] {
			seen[le.Pos] = true
			p.errors = append(p.errors, NewParseError(le.Pos, ErrUnexpectedToken, le.Message))
		}
	}
	return prog, p.errors
}

// parseSourceElements parses statements until a token of type end (RBRACE
// for function bodies, EOF for the top-level program), first scanning the
// directive prologue for "use strict".
func (p *Parser) parseSourceElements(end lexer.TokenType) (bool, []ast.Statement) {
	strict := p.scanDirectivePrologue()
	p.strict[len(p.strict)-1] = strict || p.isStrict()

	var stmts []ast.Statement
	for p.curTok.Type != end && p.curTok.Type != lexer.EOF {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			p.nextToken()
		}
	}
	return strict, stmts
}

// scanDirectivePrologue peeks leading ExpressionStatements consisting of a
// single StringLiteral, without consuming non-directive statements,
// reporting whether "use strict" appeared among them (spec.md §4.2's
// Directive Prologue rule). It does not itself produce AST nodes for the
// directives; parseStatement re-parses them normally as ExpressionStatements.
func (p *Parser) scanDirectivePrologue() bool {
	if p.version != lexer.ES5 {
		return false
	}
	state := p.l.SaveState()
	savedCur, savedPeek := p.curTok, p.peekTok
	strict := false
	for p.curTok.Type == lexer.STRING {
		if p.curTok.Literal == "use strict" {
			strict = true
		}
		// A directive must be its own statement: next significant token is
		// ';', a newline (ASI), or '}'/EOF.
		if !(p.peekTok.Type == lexer.SEMICOLON || p.peekTok.NewlineBefore ||
			p.peekTok.Type == lexer.RBRACE || p.peekTok.Type == lexer.EOF) {
			break
		}
		p.nextToken()
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
		}
	}
	p.l.RestoreState(state)
	p.curTok, p.peekTok = savedCur, savedPeek
	return strict
}

// ---- Statements ----

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.VAR:
		return p.parseVariableStatement()
	case lexer.SEMICOLON:
		tok := p.curTok
		p.nextToken()
		return &ast.EmptyStatement{Token: tok}
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.DO:
		p.checkVersionGate(p.curTok)
		return p.parseDoWhileStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.SWITCH:
		p.checkVersionGate(p.curTok)
		return p.parseSwitchStatement()
	case lexer.THROW:
		p.checkVersionGate(p.curTok)
		return p.parseThrowStatement()
	case lexer.TRY:
		p.checkVersionGate(p.curTok)
		return p.parseTryStatement()
	case lexer.DEBUGGER:
		tok := p.curTok
		p.checkVersionGate(tok)
		p.nextToken()
		p.consumeSemicolon()
		return &ast.DebuggerStatement{Token: tok}
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.IDENT:
		if p.peekTok.Type == lexer.COLON {
			return p.parseLabeledStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curTok
	p.nextToken() // consume '{'
	block := &ast.BlockStatement{Token: tok}
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		if s := p.parseStatement(); s != nil {
			block.Statements = append(block.Statements, s)
		} else {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE, ErrMissingRBrace, "'}'")
	return block
}

func (p *Parser) parseVariableStatement() *ast.VariableDeclaration {
	tok := p.curTok
	p.nextToken() // consume 'var'
	decl := &ast.VariableDeclaration{Token: tok}
	for {
		decl.Declarations = append(decl.Declarations, p.parseVariableDeclarator())
		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	p.consumeSemicolon()
	return decl
}

func (p *Parser) parseVariableDeclarator() *ast.VariableDeclarator {
	name := p.parseBindingIdentifier()
	d := &ast.VariableDeclarator{Name: name}
	if p.curTok.Type == lexer.ASSIGN {
		p.nextToken()
		d.Init = p.parseAssignmentExpression()
	}
	return d
}

func (p *Parser) parseBindingIdentifier() *ast.Identifier {
	tok := p.curTok
	if tok.Type != lexer.IDENT {
		p.error(ErrUnexpectedToken, "expected identifier, got %q", tok.Literal)
	}
	if p.isStrict() && (tok.Literal == "eval" || tok.Literal == "arguments") {
		p.error(ErrStrictMode, "%q may not be used as a binding identifier in strict mode", tok.Literal)
	}
	if p.isStrict() && lexer.IsStrictReservedWord(tok.Literal) {
		p.error(ErrStrictMode, "%q is a reserved identifier in strict mode", tok.Literal)
	}
	p.nextToken()
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.curTok
	p.nextToken()
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	test := p.parseExpression()
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	cons := p.parseStatement()
	stmt := &ast.IfStatement{Token: tok, Test: test, Consequent: cons}
	if p.curTok.Type == lexer.ELSE {
		p.nextToken()
		stmt.Alternate = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	tok := p.curTok
	p.nextToken()
	body := p.parseStatement()
	p.expect(lexer.WHILE, ErrUnexpectedToken, "'while'")
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	test := p.parseExpression()
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.curTok
	p.nextToken()
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	test := p.parseExpression()
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

// parseForStatement disambiguates for(;;), for(var x in y), and
// for(x in y) by parsing the init clause first and checking for 'in'
// (spec.md's ForStatement/ForInStatement split).
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curTok
	p.nextToken()
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")

	if p.curTok.Type == lexer.VAR {
		varTok := p.curTok
		p.nextToken()
		name := p.parseBindingIdentifier()
		if p.curTok.Type == lexer.IN {
			p.nextToken()
			right := p.parseExpression()
			p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
			body := p.parseStatement()
			decl := &ast.VariableDeclaration{Token: varTok, Declarations: []*ast.VariableDeclarator{{Name: name}}}
			return &ast.ForInStatement{Token: tok, Left: decl, Right: right, Body: body}
		}
		decl := &ast.VariableDeclaration{Token: varTok}
		first := &ast.VariableDeclarator{Name: name}
		if p.curTok.Type == lexer.ASSIGN {
			p.nextToken()
			first.Init = p.parseAssignmentExpressionNoIn()
		}
		decl.Declarations = append(decl.Declarations, first)
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			decl.Declarations = append(decl.Declarations, p.parseVariableDeclarator())
		}
		return p.finishForStatement(tok, decl)
	}

	if p.curTok.Type == lexer.SEMICOLON {
		return p.finishForStatement(tok, nil)
	}

	init := p.parseExpressionNoIn()
	if p.curTok.Type == lexer.IN {
		p.nextToken()
		right := p.parseExpression()
		p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
		body := p.parseStatement()
		return &ast.ForInStatement{Token: tok, Left: init, Right: right, Body: body}
	}
	return p.finishForStatement(tok, init)
}

func (p *Parser) finishForStatement(tok lexer.Token, init ast.Node) *ast.ForStatement {
	p.expect(lexer.SEMICOLON, ErrUnexpectedToken, "';'")
	stmt := &ast.ForStatement{Token: tok, Init: init}
	if p.curTok.Type != lexer.SEMICOLON {
		stmt.Test = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, ErrUnexpectedToken, "';'")
	if p.curTok.Type != lexer.RPAREN {
		stmt.Update = p.parseExpression()
	}
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	tok := p.curTok
	p.nextToken()
	stmt := &ast.ContinueStatement{Token: tok}
	if p.curTok.Type == lexer.IDENT && !p.curTok.NewlineBefore {
		stmt.Label = p.curTok.Literal
		p.nextToken()
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	tok := p.curTok
	p.nextToken()
	stmt := &ast.BreakStatement{Token: tok}
	if p.curTok.Type == lexer.IDENT && !p.curTok.NewlineBefore {
		stmt.Label = p.curTok.Literal
		p.nextToken()
	}
	p.consumeSemicolon()
	return stmt
}

// parseReturnStatement applies ES5 §7.9's restricted-production rule: a
// LineTerminator between 'return' and its argument forces ASI, yielding a
// bare `return;`.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.curTok
	p.nextToken()
	stmt := &ast.ReturnStatement{Token: tok}
	if p.curTok.Type != lexer.SEMICOLON && p.curTok.Type != lexer.RBRACE &&
		p.curTok.Type != lexer.EOF && !p.curTok.NewlineBefore {
		stmt.Argument = p.parseExpression()
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	tok := p.curTok
	p.nextToken()
	if p.isStrict() {
		p.error(ErrStrictMode, "'with' statements are not allowed in strict mode code")
	}
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	obj := p.parseExpression()
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	body := p.parseStatement()
	return &ast.WithStatement{Token: tok, Object: obj, Body: body}
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	tok := p.curTok
	p.nextToken()
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	disc := p.parseExpression()
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	p.expect(lexer.LBRACE, ErrUnexpectedToken, "'{'")

	stmt := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	seenDefault := false
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		c := &ast.SwitchCase{}
		switch p.curTok.Type {
		case lexer.CASE:
			p.nextToken()
			c.Test = p.parseExpression()
		case lexer.DEFAULT:
			if seenDefault {
				p.error(ErrUnexpectedToken, "more than one default clause in switch statement")
			}
			seenDefault = true
			p.nextToken()
		default:
			p.error(ErrUnexpectedToken, "expected 'case' or 'default', got %q", p.curTok.Literal)
			p.nextToken()
			continue
		}
		p.expect(lexer.COLON, ErrUnexpectedToken, "':'")
		for p.curTok.Type != lexer.CASE && p.curTok.Type != lexer.DEFAULT &&
			p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
			if s := p.parseStatement(); s != nil {
				c.Consequent = append(c.Consequent, s)
			} else {
				p.nextToken()
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.RBRACE, ErrMissingRBrace, "'}'")
	return stmt
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	tok := p.curTok
	p.nextToken()
	if p.curTok.NewlineBefore {
		p.error(ErrUnexpectedToken, "illegal newline after 'throw'")
	}
	arg := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	tok := p.curTok
	p.nextToken()
	stmt := &ast.TryStatement{Token: tok, Block: p.parseBlockStatement()}
	if p.curTok.Type == lexer.CATCH {
		p.nextToken()
		p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
		param := p.parseBindingIdentifier()
		p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
		stmt.Handler = &ast.CatchClause{Param: param, Body: p.parseBlockStatement()}
	}
	if p.curTok.Type == lexer.FINALLY {
		p.nextToken()
		stmt.Finalizer = p.parseBlockStatement()
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.error(ErrUnexpectedToken, "missing catch or finally after try block")
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	tok := p.curTok
	fn := p.parseFunction(true)
	return &ast.FunctionDeclaration{Token: tok, Function: fn}
}

// parseFunction parses the common tail of FunctionDeclaration and
// FunctionExpression (ES5 §13): 'function' Identifier? '(' params ')' '{' body '}'.
func (p *Parser) parseFunction(requireName bool) *ast.FunctionLiteral {
	tok := p.curTok
	p.nextToken() // consume 'function'
	fn := &ast.FunctionLiteral{Token: tok}
	if p.curTok.Type == lexer.IDENT {
		fn.Name = p.curTok.Literal
		p.nextToken()
	} else if requireName {
		p.error(ErrUnexpectedToken, "function declaration requires a name")
	}
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
		fn.Params = append(fn.Params, p.parseBindingIdentifier())
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	p.expect(lexer.LBRACE, ErrUnexpectedToken, "'{'")
	p.pushStrict(false)
	strict, stmts := p.parseSourceElements(lexer.RBRACE)
	fn.Strict = strict
	p.popStrict()
	if fn.Strict {
		p.checkStrictFunctionParams(fn)
	}
	p.expect(lexer.RBRACE, ErrMissingRBrace, "'}'")
	fn.Body = &ast.BlockStatement{Token: tok, Statements: stmts}
	return fn
}

func (p *Parser) checkStrictFunctionParams(fn *ast.FunctionLiteral) {
	seen := map[string]bool{}
	for _, param := range fn.Params {
		if param.Name == "eval" || param.Name == "arguments" {
			p.error(ErrStrictMode, "%q may not be used as a parameter name in strict mode", param.Name)
		}
		if lexer.IsStrictReservedWord(param.Name) {
			p.error(ErrStrictMode, "%q is a reserved identifier in strict mode", param.Name)
		}
		if seen[param.Name] {
			p.error(ErrStrictMode, "duplicate parameter name %q not allowed in strict mode", param.Name)
		}
		seen[param.Name] = true
	}
}

func (p *Parser) parseLabeledStatement() *ast.LabeledStatement {
	tok := p.curTok
	label := p.curTok.Literal
	p.nextToken() // ident
	p.nextToken() // ':'
	return &ast.LabeledStatement{Token: tok, Label: label, Body: p.parseStatement()}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.curTok
	if tok.Type == lexer.FUNCTION {
		p.error(ErrUnexpectedToken, "function expression not allowed as a statement; wrap in parentheses or assign it")
	}
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// ---- Expressions ----

// parseExpression parses the comma operator (ES5 §11.14).
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignmentExpression()
	if p.curTok.Type != lexer.COMMA {
		return first
	}
	tok := p.curTok
	seq := &ast.SequenceExpression{Token: tok, Expressions: []ast.Expression{first}}
	for p.curTok.Type == lexer.COMMA {
		p.nextToken()
		seq.Expressions = append(seq.Expressions, p.parseAssignmentExpression())
	}
	return seq
}

// parseExpressionNoIn / parseAssignmentExpressionNoIn support the for-
// statement's init clause, where a bare 'in' must end the clause rather
// than be parsed as the relational operator (ES5 §12.6.3's NoIn variants).
// noIn is implemented by temporarily removing IN from binaryPrecedence's
// effect via a parser-local flag rather than a second grammar.
func (p *Parser) parseExpressionNoIn() ast.Expression {
	p.noIn++
	defer func() { p.noIn-- }()
	return p.parseExpression()
}

func (p *Parser) parseAssignmentExpressionNoIn() ast.Expression {
	p.noIn++
	defer func() { p.noIn-- }()
	return p.parseAssignmentExpression()
}

func (p *Parser) parseAssignmentExpression() ast.Expression {
	left := p.parseConditionalExpression()
	if !assignmentOperators[p.curTok.Type] {
		return left
	}
	if !isValidAssignmentTarget(left) {
		p.error(ErrInvalidLHS, "invalid assignment target")
	}
	if p.isStrict() {
		if id, ok := left.(*ast.Identifier); ok && (id.Name == "eval" || id.Name == "arguments") {
			p.error(ErrStrictMode, "assignment to %q is not allowed in strict mode", id.Name)
		}
	}
	tok := p.curTok
	op := tok.Literal
	p.nextToken()
	right := p.parseAssignmentExpression()
	return &ast.AssignmentExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func isValidAssignmentTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	default:
		return false
	}
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	test := p.parseBinaryExpression(LOWEST + 1)
	if p.curTok.Type != lexer.QUESTION {
		return test
	}
	tok := p.curTok
	p.nextToken()
	cons := p.parseAssignmentExpression()
	p.expect(lexer.COLON, ErrUnexpectedToken, "':'")
	alt := p.parseAssignmentExpression()
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

// parseBinaryExpression implements precedence climbing over binaryPrecedence.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	left := p.parseUnaryExpression()
	for {
		if p.noIn > 0 && p.curTok.Type == lexer.IN {
			return left
		}
		prec, ok := binaryPrecedence[p.curTok.Type]
		if !ok || prec < minPrec {
			return left
		}
		tok := p.curTok
		p.checkVersionGate(tok)
		op := tok.Literal
		p.nextToken()
		right := p.parseBinaryExpression(prec + 1)
		if tok.Type == lexer.ANDAND || tok.Type == lexer.OROR {
			left = &ast.LogicalExpression{Token: tok, Left: left, Operator: op, Right: right}
		} else {
			left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
		}
	}
}

var unaryOperators = map[lexer.TokenType]bool{
	lexer.DELETE: true, lexer.VOID: true, lexer.TYPEOF: true,
	lexer.PLUS: true, lexer.MINUS: true, lexer.TILDE: true, lexer.NOT: true,
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	if p.curTok.Type == lexer.PLUSPLUS || p.curTok.Type == lexer.MINUSMINUS {
		tok := p.curTok
		p.nextToken()
		operand := p.parseUnaryExpression()
		p.checkUpdateTarget(operand)
		return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: operand, Prefix: true}
	}
	if unaryOperators[p.curTok.Type] {
		tok := p.curTok
		p.nextToken()
		operand := p.parseUnaryExpression()
		if tok.Type == lexer.DELETE && p.isStrict() {
			if id, ok := operand.(*ast.Identifier); ok {
				p.error(ErrStrictMode, "delete of an unqualified identifier %q is not allowed in strict mode", id.Name)
			}
		}
		return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Operand: operand, Prefix: true}
	}
	return p.parsePostfixExpression()
}

func (p *Parser) checkUpdateTarget(e ast.Expression) {
	if !isValidAssignmentTarget(e) {
		p.error(ErrInvalidLHS, "invalid increment/decrement operand")
		return
	}
	if p.isStrict() {
		if id, ok := e.(*ast.Identifier); ok && (id.Name == "eval" || id.Name == "arguments") {
			p.error(ErrStrictMode, "%q may not be the operand of an increment/decrement operator in strict mode", id.Name)
		}
	}
}

// parsePostfixExpression applies ES5 §7.9's restricted production: a
// LineTerminator before ++/-- forces ASI instead of a postfix operator.
func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parseLeftHandSideExpression()
	if (p.curTok.Type == lexer.PLUSPLUS || p.curTok.Type == lexer.MINUSMINUS) && !p.curTok.NewlineBefore {
		tok := p.curTok
		p.checkUpdateTarget(expr)
		p.nextToken()
		return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: expr, Prefix: false}
	}
	return expr
}

func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	var expr ast.Expression
	if p.curTok.Type == lexer.NEW {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallTail(expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curTok
	p.nextToken()
	var callee ast.Expression
	if p.curTok.Type == lexer.NEW {
		callee = p.parseNewExpression()
	} else {
		callee = p.parseMemberTail(p.parsePrimaryExpression())
	}
	n := &ast.NewExpression{Token: tok, Callee: callee}
	if p.curTok.Type == lexer.LPAREN {
		n.Args = p.parseArguments()
	}
	return n
}

// parseMemberTail parses '.' and '[' accessors but not call arguments,
// used while building a 'new' callee (spec.md: MemberExpression Arguments).
func (p *Parser) parseMemberTail(expr ast.Expression) ast.Expression {
	for {
		switch p.curTok.Type {
		case lexer.DOT:
			tok := p.curTok
			p.nextToken()
			if p.curTok.Type != lexer.IDENT && !p.curTok.Type.IsKeyword() {
				p.error(ErrUnexpectedToken, "expected property name after '.'")
			}
			prop := &ast.Identifier{Token: p.curTok, Name: p.curTok.Literal}
			p.nextToken()
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop, Computed: false}
		case lexer.LBRACK:
			tok := p.curTok
			p.nextToken()
			idx := p.parseExpression()
			p.expect(lexer.RBRACK, ErrMissingRBracket, "']'")
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: idx, Computed: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallTail(expr ast.Expression) ast.Expression {
	for {
		switch p.curTok.Type {
		case lexer.DOT, lexer.LBRACK:
			expr = p.parseMemberTail(expr)
		case lexer.LPAREN:
			tok := p.curTok
			args := p.parseArguments()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	var args []ast.Expression
	for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
		args = append(args, p.parseAssignmentExpression())
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	return args
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.curTok
	switch tok.Type {
	case lexer.THIS:
		p.nextToken()
		return &ast.ThisExpression{Token: tok}
	case lexer.IDENT:
		if p.isStrict() && lexer.IsStrictReservedWord(tok.Literal) {
			p.error(ErrStrictMode, "%q is a reserved identifier in strict mode", tok.Literal)
		}
		p.nextToken()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case lexer.NULL:
		p.nextToken()
		return &ast.NullLiteral{Token: tok}
	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
	case lexer.NUMBER:
		p.nextToken()
		return p.makeNumberLiteral(tok)
	case lexer.STRING:
		p.nextToken()
		if tok.OctalEscape && p.isStrict() {
			p.error(ErrStrictMode, "octal escape sequences are not allowed in strict mode")
		}
		return &ast.StringLiteral{Token: tok, Value: tok.Literal, OctalEscape: tok.OctalEscape}
	case lexer.REGEX:
		p.nextToken()
		return p.makeRegexLiteral(tok)
	case lexer.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
		return expr
	case lexer.LBRACK:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	case lexer.FUNCTION:
		return p.parseFunction(false)
	default:
		p.error(ErrNoPrefixParse, "unexpected token %q", tok.Literal)
		p.nextToken()
		return &ast.NullLiteral{Token: tok}
	}
}

func (p *Parser) makeNumberLiteral(tok lexer.Token) *ast.NumberLiteral {
	lit := tok.Literal
	var val float64
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		n, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			p.error(ErrUnexpectedToken, "invalid hexadecimal literal %q", lit)
		}
		val = float64(n)
	case tok.LegacyOctalInt:
		if p.isStrict() {
			p.error(ErrStrictMode, "octal literals are not allowed in strict mode")
		}
		n, err := strconv.ParseUint(lit[1:], 8, 64)
		if err != nil {
			p.error(ErrUnexpectedToken, "invalid octal literal %q", lit)
		}
		val = float64(n)
	default:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.error(ErrUnexpectedToken, "invalid numeric literal %q", lit)
		}
		val = f
	}
	return &ast.NumberLiteral{Token: tok, Value: val}
}

func (p *Parser) makeRegexLiteral(tok lexer.Token) *ast.RegexLiteral {
	body := tok.Literal
	flags := ""
	if i := strings.LastIndex(body, "/"); i >= 0 {
		flags = body[i+1:]
		body = body[1:i]
	}
	return &ast.RegexLiteral{Token: tok, Body: body, Flags: flags}
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	tok := p.curTok
	p.nextToken() // consume '['
	arr := &ast.ArrayLiteral{Token: tok}
	for p.curTok.Type != lexer.RBRACK && p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.COMMA {
			arr.Elements = append(arr.Elements, nil) // elision
			p.nextToken()
			continue
		}
		arr.Elements = append(arr.Elements, p.parseAssignmentExpression())
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACK, ErrMissingRBracket, "']'")
	return arr
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteral {
	tok := p.curTok
	p.nextToken() // consume '{'
	obj := &ast.ObjectLiteral{Token: tok}
	seen := map[string]ast.PropertyKind{}
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		prop := p.parseObjectProperty()
		p.checkDuplicateProperty(seen, prop)
		obj.Properties = append(obj.Properties, prop)
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE, ErrMissingRBrace, "'}'")
	return obj
}

// checkDuplicateProperty implements ES5 Annex C's strict-mode restriction:
// a data property may not be defined more than once, and accessors cannot
// mix kinds on the same key, in strict mode code.
func (p *Parser) checkDuplicateProperty(seen map[string]ast.PropertyKind, prop ast.Property) {
	key := propertyKeyName(prop.Key)
	prior, ok := seen[key]
	if ok && p.isStrict() {
		if prior == ast.PropertyInit || prop.Kind == ast.PropertyInit || prior == prop.Kind {
			p.error(ErrStrictMode, "duplicate property %q is not allowed in strict mode", key)
		}
	}
	seen[key] = prop.Kind
}

func propertyKeyName(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.StringLiteral:
		return v.Value
	case *ast.NumberLiteral:
		return v.Token.Literal
	default:
		return ""
	}
}

func (p *Parser) parseObjectProperty() ast.Property {
	if p.version == lexer.ES5 && p.curTok.Type == lexer.IDENT &&
		(p.curTok.Literal == "get" || p.curTok.Literal == "set") &&
		p.peekTok.Type != lexer.COLON && p.peekTok.Type != lexer.COMMA && p.peekTok.Type != lexer.RBRACE {
		isGet := p.curTok.Literal == "get"
		p.nextToken()
		key := p.parsePropertyKey()
		fn := p.parseAccessorFunctionTail(isGet)
		kind := ast.PropertySet
		if isGet {
			kind = ast.PropertyGet
		}
		return ast.Property{Key: key, Value: fn, Kind: kind}
	}
	key := p.parsePropertyKey()
	p.expect(lexer.COLON, ErrUnexpectedToken, "':'")
	val := p.parseAssignmentExpression()
	return ast.Property{Key: key, Value: val, Kind: ast.PropertyInit}
}

func (p *Parser) parsePropertyKey() ast.Expression {
	tok := p.curTok
	switch tok.Type {
	case lexer.STRING:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.NUMBER:
		p.nextToken()
		return p.makeNumberLiteral(tok)
	default:
		p.nextToken()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

// parseAccessorFunctionTail parses '(' ... ')' '{' ... '}' for a getter
// (zero params) or setter (exactly one param), per ES5 §11.1.5.
func (p *Parser) parseAccessorFunctionTail(isGet bool) *ast.FunctionLiteral {
	tok := p.curTok
	fn := &ast.FunctionLiteral{Token: tok}
	p.expect(lexer.LPAREN, ErrUnexpectedToken, "'('")
	for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
		fn.Params = append(fn.Params, p.parseBindingIdentifier())
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN, ErrMissingRParen, "')'")
	if isGet && len(fn.Params) != 0 {
		p.error(ErrUnexpectedToken, "getter functions must have no parameters")
	}
	if !isGet && len(fn.Params) != 1 {
		p.error(ErrUnexpectedToken, "setter functions must have exactly one parameter")
	}
	p.expect(lexer.LBRACE, ErrUnexpectedToken, "'{'")
	p.pushStrict(false)
	strict, stmts := p.parseSourceElements(lexer.RBRACE)
	fn.Strict = strict
	p.popStrict()
	p.expect(lexer.RBRACE, ErrMissingRBrace, "'}'")
	fn.Body = &ast.BlockStatement{Token: tok, Statements: stmts}
	return fn
}
