package lang

import (
	"errors"
	"slices"
	"strconv"
	"unicode/utf8"
)

// keywordLet introduces variable and function definitions.
const keywordLet = "let"

// Parse parses one input line into a statement.
//
// Parse is total: for any input it returns either a statement or a
// *[ParseError], and it never returns a partial tree. It holds no state
// between calls and is safe for concurrent use.
//
// Grammar, loosest binding first:
//
//	Stmt     → FunDef | VarDef | Sum
//	FunDef   → 'let' ws Ident '(' [Ident {',' Ident}] ')' '=' Sum
//	VarDef   → 'let' ws Ident '=' Sum
//	Sum      → Product {('+' | '-') Product}
//	Product  → Implicit {('*' | '/' | '%') Implicit}
//	Implicit → Power {Power}          (juxtaposition, see below)
//	Power    → Prefix [('^' | '**') Power]
//	Prefix   → '-' Prefix | Postfix
//	Postfix  → Atomic {'!'}
//	Atomic   → Number | Ident '(' [Sum {',' Sum}] ')' | Ident | '_' | '(' Sum ')'
//
// A juxtaposed Power is only parsed when the next token is neither '-' nor a
// numeric literal glued to the previous term, so "3 -2" is a subtraction and
// "2 3" is a product.
//
// Function definition is tried first and backtracks completely unless the
// whole head "let name(params) =" was recognized. Variable definition is
// tried next and commits as soon as the keyword is recognized, so "let x("
// reports a malformed variable definition.
func Parse(input string) (Stmt, error) {
	p := &parser{input: input}

	stmt, perr := p.parseStatement()
	if perr != nil {
		perr.Input = input
		slices.Reverse(perr.Labels)

		return nil, perr
	}

	return stmt, nil
}

// parser holds the parser state.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseStatement() (Stmt, *ParseError) {
	p.skipSpace()

	if !p.atKeyword(keywordLet) {
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return p.finish(ExprStmt{Body: body})
	}

	start := p.pos

	stmt, err := p.parseFunctionDefinition()
	if err == nil {
		return p.finish(stmt)
	}

	if err.committed {
		return nil, err
	}

	p.pos = start

	stmt, err = p.parseVariableDefinition()
	if err != nil {
		return nil, err.commit()
	}

	return p.finish(stmt)
}

// finish requires that only whitespace remains after a complete statement.
func (p *parser) finish(stmt Stmt) (Stmt, *ParseError) {
	p.skipSpace()

	if !p.eof() {
		return nil, p.fail(UnexpectedToken, "end of input")
	}

	return stmt, nil
}

// parseFunctionDefinition parses: 'let' ws Ident '(' Params ')' '=' Sum.
// Errors are backtrackable until '=' has been consumed.
func (p *parser) parseFunctionDefinition() (Stmt, *ParseError) {
	const label = "function definition"

	p.pos += len(keywordLet)

	if p.skipSpace() == 0 {
		return nil, p.fail(UnexpectedToken, "whitespace").within(label)
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err.within(label)
	}

	p.skipSpace()

	if !p.consume('(') {
		return nil, p.fail(UnexpectedToken, "'('").within(label)
	}

	var (
		params []string
		spans  []Span
	)

	p.skipSpace()

	if !p.consume(')') {
		for {
			p.skipSpace()

			start := p.pos

			param, err := p.parseIdent()
			if err != nil {
				return nil, err.within("parameter").within(label)
			}

			params = append(params, param)
			spans = append(spans, Span{Start: start, End: p.pos})

			p.skipSpace()

			if p.consume(',') {
				continue
			}

			if p.consume(')') {
				break
			}

			return nil, p.fail(UnexpectedToken, "',' or ')'").within(label)
		}
	}

	p.skipSpace()

	if !p.consume('=') {
		return nil, p.fail(UnexpectedToken, "'='").within(label)
	}

	for i, param := range params {
		if slices.Contains(params[:i], param) {
			return nil, (&ParseError{
				Kind:     UnexpectedToken,
				Span:     spans[i],
				Expected: "distinct parameter name",
				Found:    param,
			}).within(label).commit()
		}
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err.within("expression").within(label).commit()
	}

	return DefFun{Name: name, Params: params, Body: body}, nil
}

// parseVariableDefinition parses: 'let' ws Ident '=' Sum.
func (p *parser) parseVariableDefinition() (Stmt, *ParseError) {
	const label = "variable definition"

	p.pos += len(keywordLet)

	if p.skipSpace() == 0 {
		if p.eof() {
			return nil, p.fail(ExpectedIdent, "identifier").
				within("ident").within(label)
		}

		return nil, p.fail(UnexpectedToken, "whitespace").within(label)
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err.within("ident").within(label)
	}

	p.skipSpace()

	if !p.consume('=') {
		return nil, p.fail(UnexpectedToken, "'='").within(label)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err.within("expression").within(label)
	}

	return DefVar{Name: name, Expr: expr}, nil
}

func (p *parser) parseExpression() (Expr, *ParseError) {
	return p.parseSum()
}

// parseSum parses the left-associative '+' and '-' tier.
func (p *parser) parseSum() (Expr, *ParseError) {
	lhs, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		p.skipSpace()

		var op InfixOperator

		switch p.peek() {
		case '+':
			op = Add

		case '-':
			op = Sub

		default:
			p.pos = save

			return lhs, nil
		}

		p.pos++

		rhs, err := p.parseProduct()
		if err != nil {
			return nil, err
		}

		lhs = InfixOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

// parseProduct parses the left-associative '*', '/' and '%' tier.
func (p *parser) parseProduct() (Expr, *ParseError) {
	lhs, err := p.parseImplicit()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		p.skipSpace()

		var op InfixOperator

		switch p.peek() {
		case '*':
			op = Mul

		case '/':
			op = Div

		case '%':
			op = Rem

		default:
			p.pos = save

			return lhs, nil
		}

		p.pos++

		rhs, err := p.parseImplicit()
		if err != nil {
			return nil, err
		}

		lhs = InfixOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

// parseImplicit parses the left-associative juxtaposition tier, where
// adjacent power-tier terms multiply.
func (p *parser) parseImplicit() (Expr, *ParseError) {
	lhs, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		gap := p.skipSpace()

		// A literal glued to the previous term would split a token, and '-'
		// always belongs to the sum tier.
		if !p.startsAtomic() || (gap == 0 && p.startsNumber()) {
			p.pos = save

			return lhs, nil
		}

		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		lhs = InfixOp{Op: Mul, LHS: lhs, RHS: rhs}
	}
}

// parsePower parses the right-associative '^' and '**' tier.
func (p *parser) parsePower() (Expr, *ParseError) {
	base, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	save := p.pos
	p.skipSpace()

	if !p.consume('^') && !p.consumeString("**") {
		p.pos = save

		return base, nil
	}

	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return InfixOp{Op: Pow, LHS: base, RHS: exp}, nil
}

func (p *parser) parsePrefix() (Expr, *ParseError) {
	p.skipSpace()

	if !p.consume('-') {
		return p.parsePostfix()
	}

	arg, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	return PrefixOp{Op: Neg, Arg: arg}, nil
}

func (p *parser) parsePostfix() (Expr, *ParseError) {
	arg, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		p.skipSpace()

		if !p.consume('!') {
			p.pos = save

			return arg, nil
		}

		arg = PostfixOp{Op: Fac, Arg: arg}
	}
}

func (p *parser) parseAtomic() (Expr, *ParseError) {
	p.skipSpace()

	switch c := p.peek(); {
	case p.startsNumber():
		return p.parseNumber()

	case isAlpha(c):
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		if p.peek() == '(' {
			return p.parseCall(name)
		}

		return Variable{Name: name}, nil

	case c == '_':
		p.pos++

		return PrevAnswer{}, nil

	case c == '(':
		p.pos++

		e, err := p.parseExpression()
		if err != nil {
			return nil, err.within("parentheses")
		}

		p.skipSpace()

		if !p.consume(')') {
			return nil, p.fail(UnexpectedToken, "')'").within("parentheses")
		}

		return e, nil

	default:
		return nil, p.fail(ExpectedExpression, "expression")
	}
}

// parseCall parses an argument list following a function name. The cursor
// is on the opening parenthesis.
func (p *parser) parseCall(name string) (Expr, *ParseError) {
	const label = "function call"

	p.pos++

	var args []Expr

	p.skipSpace()

	if p.consume(')') {
		return FnCall{Name: name, Args: args}, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err.within(label)
		}

		args = append(args, arg)

		p.skipSpace()

		if p.consume(',') {
			continue
		}

		if p.consume(')') {
			return FnCall{Name: name, Args: args}, nil
		}

		return nil, p.fail(UnexpectedToken, "',' or ')'").within(label)
	}
}

// parseNumber parses an unsigned decimal literal. The integer form is only
// taken when no '.', 'e' or 'E' follows; otherwise the whole literal,
// including fraction and exponent, is read as one floating-point token.
// An exponent marker without digits is not part of the literal.
func (p *parser) parseNumber() (Expr, *ParseError) {
	start := p.pos

	p.skipDigits()

	if c := p.peek(); c == '.' || c == 'e' || c == 'E' {
		if p.consume('.') {
			p.skipDigits()
		}

		if c := p.peek(); c == 'e' || c == 'E' {
			mark := p.pos
			p.pos++

			if c := p.peek(); c == '+' || c == '-' {
				p.pos++
			}

			if !isDigit(p.peek()) {
				p.pos = mark
			} else {
				p.skipDigits()
			}
		}
	}

	text := p.input[start:p.pos]

	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &ParseError{
			Kind:     UnexpectedToken,
			Span:     Span{Start: start, End: p.pos},
			Expected: "number",
			Found:    text,
		}
	}

	return Number{Value: value}, nil
}

// parseIdent parses an ASCII letter followed by letters and digits.
// The keyword "let" is not an identifier.
func (p *parser) parseIdent() (string, *ParseError) {
	start := p.pos

	if !isAlpha(p.peek()) {
		return "", p.fail(ExpectedIdent, "identifier")
	}

	for isAlnum(p.peek()) {
		p.pos++
	}

	name := p.input[start:p.pos]
	if name == keywordLet {
		return "", &ParseError{
			Kind:     ExpectedIdent,
			Span:     Span{Start: start, End: p.pos},
			Expected: "identifier",
			Found:    name,
		}
	}

	return name, nil
}

// Helper methods

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.input) {
		return 0
	}

	return p.input[p.pos+offset]
}

func (p *parser) consume(c byte) bool {
	if p.peek() == c {
		p.pos++

		return true
	}

	return false
}

func (p *parser) consumeString(s string) bool {
	if len(p.input)-p.pos >= len(s) && p.input[p.pos:p.pos+len(s)] == s {
		p.pos += len(s)

		return true
	}

	return false
}

// skipSpace skips ASCII whitespace and returns the number of bytes skipped.
func (p *parser) skipSpace() int {
	start := p.pos

	for isSpace(p.peek()) {
		p.pos++
	}

	return p.pos - start
}

func (p *parser) skipDigits() {
	for isDigit(p.peek()) {
		p.pos++
	}
}

// atKeyword reports whether kw starts at the cursor and is not the prefix of
// a longer identifier.
func (p *parser) atKeyword(kw string) bool {
	end := p.pos + len(kw)

	return end <= len(p.input) && p.input[p.pos:end] == kw &&
		(end == len(p.input) || !isAlnum(p.input[end]))
}

func (p *parser) startsNumber() bool {
	c := p.peek()

	return isDigit(c) || (c == '.' && isDigit(p.peekAt(1)))
}

// startsAtomic reports whether an atomic term can start at the cursor.
func (p *parser) startsAtomic() bool {
	c := p.peek()

	return p.startsNumber() || isAlpha(c) || c == '_' || c == '('
}

// fail builds an error at the cursor. Unexpected tokens at the end of input
// are reported as [UnexpectedEnd].
func (p *parser) fail(kind ParseErrorKind, expected string) *ParseError {
	if p.eof() {
		if kind == UnexpectedToken {
			kind = UnexpectedEnd
		}

		return &ParseError{
			Kind:     kind,
			Span:     Span{Start: p.pos, End: p.pos},
			Expected: expected,
		}
	}

	_, size := utf8.DecodeRuneInString(p.input[p.pos:])

	return &ParseError{
		Kind:     kind,
		Span:     Span{Start: p.pos, End: p.pos + size},
		Expected: expected,
		Found:    p.input[p.pos : p.pos+size],
	}
}

// Character classification

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
