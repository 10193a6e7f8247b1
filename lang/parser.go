package lang

import (
	"strings"

	dealer "github.com/Rick-Wilson/Dealer3"
)

// Parse compiles source text into a [Program], per §4.4's grammar. It
// runs the shape-literal preprocessor first (see preprocess.go), then
// lexes and parses the result.
func Parse(src string) (*Program, error) {
	toks, err := lexAll(preprocess(src))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, names: map[string]string{}}
	var stmts []Statement
	for p.cur().kindV != tokEOF {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return NewProgram(stmts), nil
}

func lexAll(src string) ([]token, error) {
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kindV == tokEOF {
			return toks, nil
		}
	}
}

type parser struct {
	toks  []token
	pos   int
	names map[string]string
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) posErr(err Error) error {
	t := p.cur()
	return &PositionError{Err: err, Line: t.line, Col: t.col}
}

func (p *parser) expect(k tokenKind) (token, error) {
	if p.cur().kindV != k {
		return token{}, p.posErr(ErrUnexpectedToken)
	}
	return p.advance(), nil
}

func (p *parser) intern(name string) string {
	if s, ok := p.names[name]; ok {
		return s
	}
	p.names[name] = name
	return name
}

// isKeyword reports whether an identifier token's text equals word,
// case-insensitively (seat/suit/statement keywords are case
// insensitive the way card and seat literals are elsewhere in §6).
func isKeyword(t token, word string) bool {
	return t.kindV == tokIdent && strings.EqualFold(t.text, word)
}

func (p *parser) parseStatement() (Statement, error) {
	t := p.cur()
	switch {
	case isKeyword(t, "condition"):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Condition{Expr: e}, nil
	case isKeyword(t, "produce"):
		p.advance()
		n, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		return &Produce{N: int(n.ival)}, nil
	case isKeyword(t, "generate"):
		p.advance()
		n, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		return &Generate{N: int(n.ival)}, nil
	case isKeyword(t, "dealer"):
		p.advance()
		seat, err := p.parseSeatToken()
		if err != nil {
			return nil, err
		}
		return &DealerStmt{Seat: seat}, nil
	case isKeyword(t, "vulnerable"):
		p.advance()
		vt, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		vul, verr := dealer.VulnerabilityFromString(vt.text)
		if verr != nil {
			return nil, p.posErr(ErrUnexpectedToken)
		}
		return &VulnerableStmt{Vul: vul}, nil
	case isKeyword(t, "predeal"):
		p.advance()
		seat, err := p.parseSeatToken()
		if err != nil {
			return nil, err
		}
		cards, err := p.parseCardList()
		if err != nil {
			return nil, err
		}
		return &PredealStmt{Seat: seat, Cards: cards}, nil
	case isKeyword(t, "action"):
		p.advance()
		return p.parseAction()
	case t.kindV == tokIdent && p.toks[p.pos+1].kindV == tokAssign:
		name := p.intern(t.text)
		p.advance()
		p.advance() // '='
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: name, Expr: e}, nil
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Condition{Expr: e}, nil
	}
}

func (p *parser) parseSeatToken() (dealer.Seat, error) {
	t, err := p.expect(tokIdent)
	if err != nil {
		return dealer.InvalidSeat, err
	}
	seat := dealer.SeatFromString(t.text)
	if seat == dealer.InvalidSeat {
		return dealer.InvalidSeat, &PositionError{Err: dealer.ErrBadSeat, Line: t.line, Col: t.col}
	}
	return seat, nil
}

func (p *parser) parseCardList() ([]dealer.Card, error) {
	var cards []dealer.Card
	for {
		t, err := p.expect(tokCard)
		if err != nil {
			return nil, err
		}
		c, cerr := dealer.CardFromString(t.text)
		if cerr != nil {
			return nil, &PositionError{Err: ErrBadCard, Line: t.line, Col: t.col}
		}
		cards = append(cards, c)
		if p.cur().kindV != tokComma {
			break
		}
		p.advance()
	}
	return cards, nil
}

func (p *parser) parseAction() (Statement, error) {
	var dirs []ActionDirective
	for {
		d, err := p.parseActionDirective()
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
		if p.cur().kindV != tokComma {
			break
		}
		p.advance()
	}
	return &ActionStmt{Directives: dirs}, nil
}

func (p *parser) parseActionDirective() (ActionDirective, error) {
	t := p.cur()
	switch {
	case isKeyword(t, "average"):
		p.advance()
		label := p.parseOptionalLabel()
		e, err := p.parseExpr()
		if err != nil {
			return ActionDirective{}, err
		}
		return ActionDirective{Kind: ActionAverage, Label: label, Expr: e}, nil
	case isKeyword(t, "frequency"):
		p.advance()
		label := p.parseOptionalLabel()
		e, err := p.parseExpr()
		if err != nil {
			return ActionDirective{}, err
		}
		d := ActionDirective{Kind: ActionFrequency, Label: label, Expr: e}
		if p.cur().kindV == tokInt {
			minT := p.advance()
			maxT, err := p.expect(tokInt)
			if err != nil {
				return ActionDirective{}, err
			}
			d.HasRange = true
			d.Min, d.Max = minT.ival, maxT.ival
		}
		return d, nil
	case t.kindV == tokIdent:
		p.advance()
		return ActionDirective{Kind: ActionPrint, Format: t.text}, nil
	}
	return ActionDirective{}, p.posErr(ErrUnexpectedToken)
}

// parseOptionalLabel consumes an `average`/`frequency` directive's
// optional quoted label (§4.7's `[label]`), ex: `average "combined" ...`.
func (p *parser) parseOptionalLabel() string {
	if p.cur().kindV != tokString {
		return ""
	}
	return p.advance().text
}

// --- expression grammar, precedence low to high ---

func (p *parser) parseExpr() (Expr, error) {
	return p.parseTernary()
}

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().kindV == tokQuestion {
		p.advance()
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon); err != nil {
			return nil, err
		}
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Ternary{Cond: cond, Then: then, Else: els}, nil
	}
	return cond, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().kindV == tokOrOr || isKeyword(p.cur(), "or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur().kindV == tokAndAnd || isKeyword(p.cur(), "and") {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.cur().kindV == tokEq || p.cur().kindV == tokNe {
		op := "=="
		if p.cur().kindV == tokNe {
			op = "!="
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseRelational() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().kindV {
		case tokLt:
			op = "<"
		case tokLe:
			op = "<="
		case tokGt:
			op = ">"
		case tokGe:
			op = ">="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().kindV == tokPlus || p.cur().kindV == tokMinus {
		op := "+"
		if p.cur().kindV == tokMinus {
			op = "-"
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().kindV {
		case tokStar:
			op = "*"
		case tokSlash:
			op = "/"
		case tokPercent:
			op = "%"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.cur()
	switch {
	case t.kindV == tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: "-", Operand: operand}, nil
	case t.kindV == tokBang || isKeyword(t, "not"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: "!", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch {
	case t.kindV == tokInt:
		p.advance()
		return IntLit{Value: t.ival}, nil
	case t.kindV == tokCard:
		p.advance()
		c, err := dealer.CardFromString(t.text)
		if err != nil {
			return nil, &PositionError{Err: ErrBadCard, Line: t.line, Col: t.col}
		}
		return CardLit{Value: c}, nil
	case t.kindV == tokLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil
	case t.kindV == tokIdent:
		return p.parseIdentPrimary()
	}
	return nil, p.posErr(ErrUnexpectedToken)
}

func (p *parser) parseIdentPrimary() (Expr, error) {
	t := p.advance()
	if p.cur().kindV == tokLParen && isKnownFunction(t.text) {
		return p.parseCall(strings.ToLower(t.text))
	}
	if seat := dealer.SeatFromString(t.text); seat != dealer.InvalidSeat && isSeatKeyword(t.text) {
		return SeatLit{Value: seat}, nil
	}
	if isSuitKeyword(t.text) {
		return SuitLit{Value: suitKeywordValue(t.text)}, nil
	}
	return VarRef{Name: p.intern(t.text)}, nil
}

func (p *parser) parseCall(name string) (Expr, error) {
	p.advance() // '('
	if name == "shape" {
		return p.parseShapeCall()
	}
	var args []Expr
	if p.cur().kindV != tokRParen {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur().kindV != tokComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if !arityOK(name, len(args)) {
		return nil, p.posErr(ErrArityMismatch)
	}
	return &Call{Fn: name, Args: args}, nil
}

func (p *parser) parseShapeCall() (Expr, error) {
	seatExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokComma); err != nil {
		return nil, err
	}
	mask, err := p.parseShapeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return &Call{Fn: "shape", Args: []Expr{seatExpr}, Shape: &mask}, nil
}

// expectShapePattern consumes one shape-pattern token and returns its
// digit/wildcard text. The preprocessor sentinel-marks 4-digit runs as
// tokSentinelShape so they aren't mistaken for integer literals, except
// immediately after the keyword `any`, where a bare pattern like `4333`
// is deliberately left as an ordinary tokInt (preprocess.go) — accept
// that case directly here instead.
func (p *parser) expectShapePattern(any bool) (string, error) {
	if t := p.cur(); any && t.kindV == tokInt && len(t.text) == 4 {
		p.advance()
		return t.text, nil
	}
	t, err := p.expect(tokSentinelShape)
	if err != nil {
		return "", err
	}
	return t.text, nil
}

// parseShapeExpr parses the shape sub-grammar (§4.4): a sum/difference
// of terms, each `[any] PATTERN`.
func (p *parser) parseShapeExpr() (dealer.ShapeSet, error) {
	var terms []dealer.ShapeExprTerm
	sub := false
	for {
		any := false
		if isKeyword(p.cur(), "any") {
			any = true
			p.advance()
		}
		text, err := p.expectShapePattern(any)
		if err != nil {
			return dealer.ShapeSet{}, p.posErr(ErrBadShape)
		}
		var mask dealer.ShapeSet
		var cerr error
		if any {
			mask, cerr = dealer.CompileAnyShapeTerm(text)
		} else {
			mask, cerr = dealer.CompileShapeTerm(text)
		}
		if cerr != nil {
			return dealer.ShapeSet{}, p.posErr(ErrBadShape)
		}
		terms = append(terms, dealer.ShapeExprTerm{Set: mask, Sub: sub})
		switch p.cur().kindV {
		case tokPlus:
			sub = false
			p.advance()
			continue
		case tokMinus:
			sub = true
			p.advance()
			continue
		}
		break
	}
	return dealer.CompileShapeExpr(terms), nil
}

func isSeatKeyword(s string) bool {
	switch strings.ToLower(s) {
	case "n", "north", "e", "east", "s", "south", "w", "west":
		return true
	}
	return false
}

func isSuitKeyword(s string) bool {
	switch strings.ToLower(s) {
	case "spades", "hearts", "diamonds", "clubs":
		return true
	}
	return false
}

func suitKeywordValue(s string) dealer.Suit {
	switch strings.ToLower(s) {
	case "spades":
		return dealer.Spades
	case "hearts":
		return dealer.Hearts
	case "diamonds":
		return dealer.Diamonds
	case "clubs":
		return dealer.Clubs
	}
	return dealer.InvalidSuit
}
