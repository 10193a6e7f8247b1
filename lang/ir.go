package lang

import dealer "github.com/Rick-Wilson/Dealer3"

// Expr is a node of the expression IR (§3's "IR (Expression)"). The
// concrete types below are the closed set of tags; Evaluator.eval switches
// on the concrete type rather than holding a discriminant field, the
// way a small hand-rolled AST normally does in Go.
type Expr interface {
	exprNode()
}

// IntLit is an Int(i32) literal.
type IntLit struct{ Value int32 }

// CardLit is a Card(index) literal.
type CardLit struct{ Value dealer.Card }

// SeatLit is a Seat(N|E|S|W) literal.
type SeatLit struct{ Value dealer.Seat }

// SuitLit is a Suit(C|D|H|S) literal.
type SuitLit struct{ Value dealer.Suit }

// VarRef is a Var(name) reference. Name is borrowed from the program's
// interned identifier table (the parser's intern method), not copied per
// reference, satisfying §4.5's "identifier keys ... are borrowed".
type VarRef struct{ Name string }

// Call is a Call(function, args) node. Fn names one of §4.4's closed
// function set; Shape is non-nil only for the `shape` function, holding
// its pre-compiled mask so evaluation never re-parses the pattern.
type Call struct {
	Fn    string
	Args  []Expr
	Shape *dealer.ShapeSet
}

// BinOp is an arithmetic/boolean/relational binary operator.
type BinOp struct {
	Op          string // "+","-","*","/","%","==","!=","<","<=",">",">=","&&","||"
	Left, Right Expr
}

// UnaryOp is a unary `-` or `!`.
type UnaryOp struct {
	Op      string
	Operand Expr
}

// Ternary is a `cond ? then : else` expression.
type Ternary struct {
	Cond, Then, Else Expr
}

func (IntLit) exprNode()   {}
func (CardLit) exprNode()  {}
func (SeatLit) exprNode()  {}
func (SuitLit) exprNode()  {}
func (VarRef) exprNode()   {}
func (*Call) exprNode()    {}
func (*BinOp) exprNode()   {}
func (*UnaryOp) exprNode() {}
func (*Ternary) exprNode() {}

// Assignment binds name to expr (§3's Program statement). A later
// assignment to the same name shadows an earlier one.
type Assignment struct {
	Name string
	Expr Expr
}

// Condition is a `condition Expression` statement. At most one may
// appear in a well-formed program; a bare trailing expression is also
// folded into a Condition by the parser (§9: "this spec takes the last
// encountered as authoritative").
type Condition struct{ Expr Expr }

// Produce is a `produce N` statement.
type Produce struct{ N int }

// Generate is a `generate N` statement.
type Generate struct{ N int }

// DealerStmt is a `dealer Seat` statement.
type DealerStmt struct{ Seat dealer.Seat }

// VulnerableStmt is a `vulnerable (none|NS|EW|all)` statement.
type VulnerableStmt struct{ Vul dealer.Vulnerability }

// PredealStmt is a `predeal Seat CardList` statement.
type PredealStmt struct {
	Seat  dealer.Seat
	Cards []dealer.Card
}

// ActionKind distinguishes the action directives of §4.6/§4.7.
type ActionKind int

const (
	ActionPrint ActionKind = iota
	ActionAverage
	ActionFrequency
)

// ActionDirective is one entry of an `action ...` statement's
// comma-separated list.
type ActionDirective struct {
	Kind       ActionKind
	Format     string // ActionPrint: format selector
	Label      string // ActionAverage/ActionFrequency: optional label
	Expr       Expr   // ActionAverage/ActionFrequency: the expression to sample
	HasRange   bool
	Min, Max   int32
}

// ActionStmt is an `action directive[, directive...]` statement.
type ActionStmt struct {
	Directives []ActionDirective
}

// Statement is the closed set of §3's Program statements.
type Statement interface {
	stmtNode()
}

func (*Assignment) stmtNode()     {}
func (*Condition) stmtNode()      {}
func (*Produce) stmtNode()        {}
func (*Generate) stmtNode()       {}
func (*DealerStmt) stmtNode()     {}
func (*VulnerableStmt) stmtNode() {}
func (*PredealStmt) stmtNode()    {}
func (*ActionStmt) stmtNode()     {}

// Program is the parsed, immutable IR of one constraint-language
// source text (§3's "Program").
type Program struct {
	Statements []Statement

	// assignments indexes the program's Assignment statements by name,
	// last-write-wins, for O(1) variable lookup during evaluation. Names
	// are shared with the parser's interning table ([parser.intern]), so
	// every VarRef.Name referring to the same identifier is the same
	// string value.
	assignments map[string]Expr
}

// NewProgram finalizes a parsed statement list into a [Program],
// building the assignment index.
func NewProgram(stmts []Statement) *Program {
	p := &Program{Statements: stmts, assignments: map[string]Expr{}}
	for _, st := range stmts {
		if a, ok := st.(*Assignment); ok {
			p.assignments[a.Name] = a.Expr
		}
	}
	return p
}

// Lookup returns the expression bound to a variable name, and whether
// it is bound at all.
func (p *Program) Lookup(name string) (Expr, bool) {
	e, ok := p.assignments[name]
	return e, ok
}

// Condition returns the program's authoritative condition (the last
// Condition statement encountered, per §9's resolved open question),
// or nil if the program has none.
func (p *Program) Condition() Expr {
	var cond Expr
	for _, st := range p.Statements {
		if c, ok := st.(*Condition); ok {
			cond = c.Expr
		}
	}
	return cond
}
