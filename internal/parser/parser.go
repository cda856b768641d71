// Package parser implements the Zen recursive-descent parser.
//
// The parser operates on the full token vector produced by the lexer
// (not a streaming two-token window) with a single mutable cursor,
// per spec.md section 4.2. Pre-tokenizing buys cheap backtracking:
// resolving whether `name = (...)` is a function declaration or a
// parenthesized-value assignment requires scanning past a balanced
// paren group before committing, and a plain cursor save/restore is
// simpler than unwinding a lexer.
//
// Expression precedence, weakest binding last, matches spec.md
// section 4.2:
//
//  1. Pattern match (postfix `?`)
//  2. Equality/ordering (==, !=, <, <=, >, >=), left-associative
//  3. Additive (+, -), left-associative
//  4. Multiplicative (*, /, %), left-associative
//  5. Postfix chain: member access, method call, function call
//  6. Primary
//
// Parsing is resilient: every error is recorded in a diagnostic.Bag
// and the cursor is advanced past the offending token, so one bad
// token never stops the rest of the file from being parsed (spec.md
// section 4.2, "Failure semantics").
package parser

import (
	"strings"

	"github.com/zenlang/zenc/internal/ast"
	"github.com/zenlang/zenc/internal/diagnostic"
	"github.com/zenlang/zenc/internal/lexer"
	"github.com/zenlang/zenc/internal/token"
)

// maxBlockStatements caps how many statements a single block may
// accumulate before the parser gives up on it, guaranteeing forward
// progress on pathological or truncated input (spec.md section 4.2).
const maxBlockStatements = 10000

// scope tracks which names are bound in the current lexical block and
// its ancestors. It resolves the `name = expr` declaration/assignment
// ambiguity (spec.md section 9): `name = expr` is an Assignment if name
// is already visible; otherwise it is a VarDecl, unless the fallback
// legacyAssignmentHeuristic flags it as a self-referencing reassignment.
type scope struct {
	names  map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]bool), parent: parent}
}

func (s *scope) bind(name string) {
	s.names[name] = true
}

func (s *scope) isBound(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[name] {
			return true
		}
	}
	return false
}

// Parser holds the token vector, cursor, diagnostics, and the lexical
// scope chain used for declaration/assignment resolution.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  *diagnostic.Bag
	scope  *scope
}

// Parse lexes and parses input in one call, returning the resulting
// program and every diagnostic recorded along the way. A non-empty
// Bag does not necessarily mean Program is unusable — lexical and
// syntactic errors are recovered from, not fatal (spec.md section 7).
func Parse(input string) (*ast.Program, *diagnostic.Bag) {
	diags := &diagnostic.Bag{}
	lx := lexer.New(input, diags)
	p := &Parser{
		tokens: lx.Tokenize(),
		diags:  diags,
		scope:  newScope(nil),
	}
	return p.parseProgram(), diags
}

func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{}
	for p.cur().Kind != token.EOF {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipSemi()
		if p.pos == start {
			// parseStatement reported an error but didn't move the
			// cursor; force progress so a single bad top-level token
			// can't loop the parser forever.
			p.advance()
		}
	}
	return program
}

// --- cursor plumbing -----------------------------------------------------

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) skipSemi() {
	if p.cur().Kind == token.Semi {
		p.advance()
	}
}

// expect consumes the current token if it has kind k, reporting a
// diagnostic and leaving the cursor in place otherwise.
func (p *Parser) expect(k token.Kind) bool {
	if p.cur().Kind == k {
		p.advance()
		return true
	}
	tok := p.cur()
	p.diags.Errorf(tok.Line, tok.Column, "expected %s, found %s", k, tok.Kind)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.cur()
	p.diags.Errorf(tok.Line, tok.Column, format, args...)
}

func (p *Parser) pushScope() { p.scope = newScope(p.scope) }
func (p *Parser) popScope()  { p.scope = p.scope.parent }

// --- statements -----------------------------------------------------------

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.cur()
	switch tok.Kind {
	case token.Return:
		p.advance()
		if p.startsExpr() {
			return &ast.ReturnStmt{Value: p.parseExpr()}
		}
		return &ast.ReturnStmt{}
	case token.Break:
		p.advance()
		return &ast.BreakStmt{}
	case token.Continue:
		p.advance()
		return &ast.ContinueStmt{}
	case token.Loop:
		loop := p.parseLoop()
		if loop == nil {
			return nil
		}
		return loop
	case token.LBrace:
		return p.parseDestructuringImport()
	case token.Identifier:
		return p.parseIdentifierStatement()
	default:
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		return wrapExprStatement(expr)
	}
}

// startsExpr reports whether the current token can begin an
// expression, used to tell `return` (bare) from `return expr`.
func (p *Parser) startsExpr() bool {
	switch p.cur().Kind {
	case token.RBrace, token.Semi, token.EOF:
		return false
	default:
		return true
	}
}

// wrapExprStatement wraps an expression used in statement position.
// `@this.defer(expr)` has no special-cased grammar: the lexer reads
// `@this.defer` as one at-symbol path, so it parses as an ordinary call
// of that at-symbol (or, when whitespace follows `@this`, as a method
// call `defer` on the "this" at-symbol). Both shapes are recognized
// here and re-tagged as a DeferStmt (spec.md section 4.2, "other
// statement forms").
func wrapExprStatement(expr ast.Expr) ast.Stmt {
	if call, ok := expr.(*ast.CallExpr); ok && len(call.Args) == 1 {
		if at, ok := call.Callee.(*ast.AtSymbol); ok && at.Path == "this.defer" {
			return &ast.DeferStmt{Value: call.Args[0]}
		}
	}
	if mc, ok := expr.(*ast.MethodCall); ok && mc.Name == "defer" && len(mc.Args) == 1 {
		if at, ok := mc.Object.(*ast.AtSymbol); ok && at.Path == "this" {
			return &ast.DeferStmt{Value: mc.Args[0]}
		}
	}
	return &ast.ExprStmt{Expr: expr}
}

// parseIdentifierStatement resolves the overloaded statement forms
// that begin with an identifier (spec.md section 4.2): typed
// declarations and struct/enum defs (`:`), mutable declarations (`::`,
// `::=`), and the doubly-overloaded `=` (function declaration,
// immutable declaration, or assignment).
func (p *Parser) parseIdentifierStatement() ast.Stmt {
	name := p.cur().Literal
	startPos := p.pos
	p.advance()

	switch p.cur().Kind {
	case token.Colon:
		return p.parseColonForm(name)

	case token.ColonColon:
		p.advance()
		return p.parseMutableDecl(name)

	case token.ColonColonEq:
		p.advance()
		value := p.parseExpr()
		p.scope.bind(name)
		return &ast.VarDecl{Name: name, Value: value, IsMutable: true}

	case token.Assign:
		p.advance()
		if p.cur().Kind == token.LParen && p.functionSignatureAhead() {
			return p.parseFunctionDecl(name)
		}
		value := p.parseExpr()
		if p.scope.isBound(name) || p.legacyAssignmentHeuristic(name, value) {
			return &ast.Assignment{Target: name, Value: value}
		}
		p.scope.bind(name)
		return &ast.VarDecl{Name: name, Value: value, IsMutable: false}

	default:
		// Not a declaration/assignment form after all — the
		// identifier starts a plain expression (struct literal,
		// call, comparison, ...). Rewind and parse it generically.
		p.pos = startPos
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		return wrapExprStatement(expr)
	}
}

// legacyAssignmentHeuristic is the source language's original
// declaration/assignment test: treat `name = expr` as reassignment
// when expr is a binary expression mentioning name on either side.
// spec.md section 9 calls this "a known ambiguity" and recommends
// scope tracking instead (done above); this is retained only as a
// fallback and is only reachable when scope tracking already said
// "not bound" — i.e. it can only ever turn a would-be declaration into
// an assignment, never the reverse.
func (p *Parser) legacyAssignmentHeuristic(name string, value ast.Expr) bool {
	bin, ok := value.(*ast.BinaryExpr)
	if !ok {
		return false
	}
	return exprReferencesName(bin.Left, name) || exprReferencesName(bin.Right, name)
}

func exprReferencesName(e ast.Expr, name string) bool {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name == name
	case *ast.BinaryExpr:
		return exprReferencesName(v.Left, name) || exprReferencesName(v.Right, name)
	default:
		return false
	}
}

// functionSignatureAhead looks past a balanced `(...)` starting at the
// cursor for an optional return-type identifier followed by `{`,
// without permanently moving the cursor. It is the test that
// disambiguates `name = (params) Type { body }` from `name = (expr)`.
func (p *Parser) functionSignatureAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	if p.cur().Kind != token.LParen {
		return false
	}
	depth := 0
	for {
		switch p.cur().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				p.advance()
				goto matched
			}
		case token.EOF:
			return false
		}
		p.advance()
	}
matched:
	if p.cur().Kind == token.Identifier {
		p.advance()
	}
	return p.cur().Kind == token.LBrace
}

func (p *Parser) parseColonForm(name string) ast.Stmt {
	p.advance() // consume ':'

	if p.cur().Kind == token.LBrace {
		p.advance()
		return p.parseStructDeclBody(name)
	}

	typeName := p.cur().Literal
	if p.cur().Kind != token.Identifier {
		p.errorf("expected type name after ':'")
	}
	p.advance()

	if p.cur().Kind == token.Pipe {
		return p.parseEnumDeclBody(name, typeName)
	}

	var value ast.Expr
	isForward := true
	if p.cur().Kind == token.Assign {
		p.advance()
		value = p.parseExpr()
		isForward = false
	}
	p.scope.bind(name)
	return &ast.VarDecl{Name: name, TypeName: typeName, Value: value, IsMutable: false, IsForwardDecl: isForward}
}

func (p *Parser) parseMutableDecl(name string) ast.Stmt {
	typeName := ""
	if p.cur().Kind == token.Identifier {
		typeName = p.cur().Literal
		p.advance()
	}
	var value ast.Expr
	isForward := true
	if p.cur().Kind == token.Assign {
		p.advance()
		value = p.parseExpr()
		isForward = false
	}
	p.scope.bind(name)
	return &ast.VarDecl{Name: name, TypeName: typeName, Value: value, IsMutable: true, IsForwardDecl: isForward}
}

func (p *Parser) parseStructDeclBody(name string) ast.Stmt {
	var fields []ast.StructFieldDecl
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF {
		isMutable := false
		if p.cur().Kind == token.Identifier && p.cur().Literal == "mut" {
			isMutable = true
			p.advance()
		}
		if p.cur().Kind != token.Identifier {
			p.errorf("expected field name in struct definition")
			p.advance()
			continue
		}
		fname := p.cur().Literal
		p.advance()
		p.expect(token.Colon)
		ftype := p.cur().Literal
		if p.cur().Kind != token.Identifier {
			p.errorf("expected field type in struct definition")
		} else {
			p.advance()
		}
		var def ast.Expr
		if p.cur().Kind == token.Assign {
			p.advance()
			def = p.parseExpr()
		}
		fields = append(fields, ast.StructFieldDecl{Name: fname, TypeName: ftype, IsMutable: isMutable, Default: def})
		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return &ast.StructDecl{Name: name, Fields: fields}
}

func (p *Parser) parseEnumDeclBody(name, firstVariant string) ast.Stmt {
	variants := []string{firstVariant}
	for p.cur().Kind == token.Pipe {
		p.advance()
		variants = append(variants, p.cur().Literal)
		if p.cur().Kind != token.Identifier {
			p.errorf("expected variant name after '|'")
		} else {
			p.advance()
		}
	}
	return &ast.EnumDecl{Name: name, Variants: variants}
}

func (p *Parser) parseFunctionDecl(name string) ast.Stmt {
	p.advance() // consume '('
	var params []ast.Param
	for p.cur().Kind != token.RParen && p.cur().Kind != token.EOF {
		params = append(params, p.parseParam())
		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	p.expect(token.RParen)

	returnType := ""
	if p.cur().Kind == token.Identifier {
		returnType = p.cur().Literal
		p.advance()
	}

	// Bind the function's own name before parsing its body, so a
	// `name = ...` statement inside the body (or after the function)
	// parses as an assignment rather than as a fresh declaration.
	p.scope.bind(name)

	if !p.expect(token.LBrace) {
		return &ast.FunctionDecl{Name: name, Params: params, ReturnType: returnType, Body: &ast.Block{}}
	}
	body := p.parseBlockBody()
	return &ast.FunctionDecl{Name: name, Params: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parseParam() ast.Param {
	isMutable := false
	if p.cur().Kind == token.Identifier && p.cur().Literal == "mut" {
		isMutable = true
		p.advance()
	}
	name := p.cur().Literal
	if p.cur().Kind != token.Identifier {
		p.errorf("expected parameter name")
	} else {
		p.advance()
	}
	typeName := ""
	if p.cur().Kind == token.Colon {
		p.advance()
		if p.cur().Kind == token.Identifier {
			typeName = p.cur().Literal
			p.advance()
		}
	}
	return ast.Param{Name: name, TypeName: typeName, IsMutable: isMutable}
}

func (p *Parser) parseDestructuringImport() ast.Stmt {
	p.advance() // consume '{'
	var names []string
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF {
		if p.cur().Kind == token.Identifier {
			names = append(names, p.cur().Literal)
			p.advance()
		} else {
			p.errorf("expected identifier in destructuring import")
			p.advance()
		}
		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	p.expect(token.Assign)
	source := ""
	if p.cur().Kind == token.At {
		source = p.cur().Literal
		p.advance()
	} else {
		p.errorf("expected @-symbol source in destructuring import")
	}
	for _, n := range names {
		p.scope.bind(n)
	}
	return &ast.DestructuringImport{Names: names, Source: source}
}

// parseBlockBody parses statements until a closing '}' (already past
// the opening brace) inside a fresh child scope, enforcing
// maxBlockStatements to guarantee forward progress on malformed input.
func (p *Parser) parseBlockBody() *ast.Block {
	p.pushScope()
	defer p.popScope()

	block := &ast.Block{}
	count := 0
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF {
		count++
		if count > maxBlockStatements {
			p.errorf("block exceeds %d statements; closing it", maxBlockStatements)
			break
		}
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipSemi()
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return block
}

// --- expressions -----------------------------------------------------------

func (p *Parser) parseExpr() ast.Expr {
	left := p.parseComparison()
	if left == nil {
		return nil
	}
	if p.cur().Kind == token.Question {
		return p.parsePatternMatch(left)
	}
	return left
}

func (p *Parser) parsePatternMatch(scrutinee ast.Expr) ast.Expr {
	p.advance() // consume '?'

	if p.cur().Kind == token.LBrace {
		p.advance()
		body := p.parseBlockBody()
		return &ast.PatternMatch{Scrutinee: scrutinee, Arms: []ast.MatchArm{{Pattern: nil, Body: body}}}
	}

	var arms []ast.MatchArm
	for p.cur().Kind == token.Pipe {
		p.advance()
		pattern := p.parsePatternPrimary()
		if !p.expect(token.LBrace) {
			break
		}
		body := p.parseBlockBody()
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})
	}
	if len(arms) == 0 {
		p.errorf("expected '|' pattern arm after '?'")
	}
	return &ast.PatternMatch{Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parsePatternPrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.True:
		p.advance()
		return &ast.BoolLiteral{Value: true}
	case token.False:
		p.advance()
		return &ast.BoolLiteral{Value: false}
	case token.Underscore:
		p.advance()
		return &ast.Identifier{Name: "_"}
	case token.Identifier:
		p.advance()
		return &ast.Identifier{Name: tok.Literal}
	case token.Number:
		p.advance()
		return &ast.NumberLiteral{Text: tok.Literal, HasDecimal: strings.Contains(tok.Literal, ".")}
	case token.String:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal}
	default:
		p.errorf("unsupported pattern form %s", tok.Kind)
		p.advance()
		return &ast.Identifier{Name: "_"}
	}
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		op, ok := comparisonOperator(p.cur().Kind)
		if !ok {
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func comparisonOperator(k token.Kind) (string, bool) {
	switch k {
	case token.Eq:
		return "==", true
	case token.NotEq:
		return "!=", true
	case token.Lt:
		return "<", true
	case token.LtEq:
		return "<=", true
	case token.Gt:
		return ">", true
	case token.GtEq:
		return ">=", true
	default:
		return "", false
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op string
		switch p.cur().Kind {
		case token.Plus:
			op = "+"
		case token.Minus:
			op = "-"
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePostfix()
	for {
		var op string
		switch p.cur().Kind {
		case token.Star:
			op = "*"
		case token.Slash:
			op = "/"
		case token.Percent:
			op = "%"
		default:
			return left
		}
		p.advance()
		right := p.parsePostfix()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// parsePostfix handles the chain of member access, method calls, and
// function calls following a primary expression (spec.md section 4.2,
// grammar level 5). The distinction between a MethodCall and a
// MemberAccess immediately followed by a call is made right here, by
// looking for '(' directly after the member name — the emitter relies
// on having that distinction already made (spec.md section 3).
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case token.LParen:
			args := p.parseArgs()
			expr = &ast.CallExpr{Callee: expr, Args: args}
		case token.Dot:
			p.advance()
			if p.cur().Kind != token.Identifier {
				p.errorf("expected member name after '.'")
				return expr
			}
			name := p.cur().Literal
			p.advance()
			if p.cur().Kind == token.LParen {
				args := p.parseArgs()
				expr = &ast.MethodCall{Object: expr, Name: name, Args: args}
			} else {
				expr = &ast.MemberAccess{Object: expr, Name: name}
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	p.advance() // consume '('
	var args []ast.Expr
	if p.cur().Kind != token.RParen {
		args = append(args, p.parseExpr())
		for p.cur().Kind == token.Comma {
			p.advance()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.NumberLiteral{Text: tok.Literal, HasDecimal: strings.Contains(tok.Literal, ".")}

	case token.String:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal}

	case token.True:
		p.advance()
		return &ast.BoolLiteral{Value: true}

	case token.False:
		p.advance()
		return &ast.BoolLiteral{Value: false}

	case token.Some:
		p.advance()
		p.expect(token.LParen)
		v := p.parseExpr()
		p.expect(token.RParen)
		return &ast.SomeExpr{Value: v}

	case token.None:
		p.advance()
		return &ast.NoneExpr{}

	case token.Ok:
		p.advance()
		p.expect(token.LParen)
		v := p.parseExpr()
		p.expect(token.RParen)
		return &ast.OkExpr{Value: v}

	case token.Err:
		p.advance()
		p.expect(token.LParen)
		v := p.parseExpr()
		p.expect(token.RParen)
		return &ast.ErrExpr{Value: v}

	case token.At:
		p.advance()
		return &ast.AtSymbol{Path: tok.Literal}

	case token.Underscore:
		p.advance()
		return &ast.Identifier{Name: "_"}

	case token.Identifier:
		p.advance()
		if p.cur().Kind == token.LBrace {
			return p.parseStructLiteral(tok.Literal)
		}
		return &ast.Identifier{Name: tok.Literal}

	case token.LParen:
		return p.parseParenOrRange()

	case token.Loop:
		return p.parseLoop()

	default:
		p.errorf("unexpected token %s", tok.Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) parseStructLiteral(typeName string) ast.Expr {
	p.advance() // consume '{'
	var fields []ast.StructField
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF {
		if p.cur().Kind != token.Identifier {
			p.errorf("expected field name in struct literal")
			p.advance()
			continue
		}
		fname := p.cur().Literal
		p.advance()
		p.expect(token.Colon)
		value := p.parseExpr()
		fields = append(fields, ast.StructField{Name: fname, Value: value})
		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return &ast.StructLiteral{TypeName: typeName, Fields: fields}
}

// parseParenOrRange handles both a plain parenthesized expression and
// a parenthesized range primary `(start..end)`, optionally followed by
// `.step(expr)` (spec.md section 4.2, grammar level 6).
func (p *Parser) parseParenOrRange() ast.Expr {
	p.advance() // consume '('
	first := p.parseExpr()

	if p.cur().Kind == token.DotDot {
		p.advance()
		end := p.parseExpr()
		p.expect(token.RParen)
		rng := &ast.RangeExpr{Start: first, End: end}

		if p.cur().Kind == token.Dot {
			save := p.pos
			p.advance()
			if p.cur().Kind == token.Identifier && p.cur().Literal == "step" {
				p.advance()
				rng.Step = first2(p.parseArgs())
			} else {
				p.pos = save
			}
		}
		return rng
	}

	p.expect(token.RParen)
	return first
}

func first2(args []ast.Expr) ast.Expr {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// parseLoop parses the `loop` primary: a bare infinite loop, a
// condition-guarded loop, or a range-driven loop (spec.md section
// 4.3's three loop emission forms all originate here).
func (p *Parser) parseLoop() *ast.Loop {
	p.advance() // consume 'loop'
	var cond ast.Expr
	if p.cur().Kind == token.LParen {
		cond = p.parseParenOrRange()
	}
	if !p.expect(token.LBrace) {
		return &ast.Loop{Condition: cond, Body: &ast.Block{}}
	}
	body := p.parseBlockBody()
	return &ast.Loop{Condition: cond, Body: body}
}
