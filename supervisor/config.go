package supervisor

import (
	"time"

	dealer "github.com/Rick-Wilson/Dealer3"
	"github.com/Rick-Wilson/Dealer3/lang"
)

// Defaults per §4.8.
const (
	DefaultProduce  = 40
	DefaultGenerate = 10_000_000
	// DefaultBatchUnit is the "200" in the default batch size formula
	// B = 200·W (§4.6).
	DefaultBatchUnit = 200
)

// Overrides is the supervisor-level configuration a caller (whatever
// owns `-p`, `-g`, `-s`, ... per §6) populates before calling [Resolve].
// A nil pointer field means "not overridden"; it is a plain struct with
// no flag-parsing logic of its own (CLI parsing is an explicit
// Non-goal, see SPEC_FULL.md's AMBIENT STACK / DESIGN.md).
type Overrides struct {
	Produce       *int
	Generate      *int
	Seed          *uint64
	Dealer        *dealer.Seat
	Vulnerable    *dealer.Vulnerability
	Legacy        bool
	LegacySet     bool
	WorkerCount   *int
	BatchSize     *int
	Timeout       *time.Duration
	Predeal       dealer.Predeal
	HasPredeal    bool
}

// Resolved is the fully resolved configuration §4.8 produces: one value
// per knob, with supervisor override > in-program directive > default
// already applied.
type Resolved struct {
	Produce     int
	Generate    int
	Seed        uint64
	Dealer      dealer.Seat
	Vulnerable  dealer.Vulnerability
	Legacy      bool
	WorkerCount int
	BatchSize   int
	Timeout     time.Duration
	Predeal     dealer.Predeal
}

// Resolve applies §4.8's configuration precedence (supervisor override
// > in-program directive > default) to produce one authoritative
// [Resolved] configuration.
func Resolve(ov Overrides, prog *lang.Program) (Resolved, error) {
	if ov.LegacySet && ov.Legacy && ov.WorkerCount != nil && *ov.WorkerCount > 1 {
		return Resolved{}, ErrFlagConflict
	}

	directive := scanDirectives(prog)

	r := Resolved{
		Produce:    DefaultProduce,
		Generate:   DefaultGenerate,
		Dealer:     dealer.North,
		Vulnerable: dealer.VulNone,
		Predeal:    directive.predeal,
	}
	if directive.hasProduce {
		r.Produce = directive.produce
	}
	if directive.hasGenerate {
		r.Generate = directive.generate
	}
	if directive.hasDealer {
		r.Dealer = directive.dealer
	}
	if directive.hasVulnerable {
		r.Vulnerable = directive.vulnerable
	}

	if ov.Produce != nil {
		r.Produce = *ov.Produce
	}
	if ov.Generate != nil {
		r.Generate = *ov.Generate
	}
	if ov.Dealer != nil {
		r.Dealer = *ov.Dealer
	}
	if ov.Vulnerable != nil {
		r.Vulnerable = *ov.Vulnerable
	}
	if ov.HasPredeal {
		r.Predeal = ov.Predeal
	}
	if err := r.Predeal.Validate(); err != nil {
		return Resolved{}, err
	}

	r.Legacy = ov.LegacySet && ov.Legacy
	r.WorkerCount = 0
	if ov.WorkerCount != nil {
		r.WorkerCount = *ov.WorkerCount
	}
	// BatchSize of 0 means "use the default B = 200·W formula"; the
	// fast-mode runner resolves W (auto-detecting cores when 0) before
	// computing it. An explicit override always wins.
	r.BatchSize = 0
	if ov.BatchSize != nil {
		r.BatchSize = *ov.BatchSize
	}
	if ov.Seed != nil {
		r.Seed = *ov.Seed
	}
	if ov.Timeout != nil {
		r.Timeout = *ov.Timeout
	}
	return r, nil
}

type directives struct {
	hasProduce    bool
	produce       int
	hasGenerate   bool
	generate      int
	hasDealer     bool
	dealer        dealer.Seat
	hasVulnerable bool
	vulnerable    dealer.Vulnerability
	predeal       dealer.Predeal
}

// scanDirectives walks a program's statements, applying last-write-wins
// for each directive kind (consistent with [lang.Program]'s Assignment
// and Condition shadowing rules).
func scanDirectives(prog *lang.Program) directives {
	var d directives
	if prog == nil {
		return d
	}
	for _, st := range prog.Statements {
		switch s := st.(type) {
		case *lang.Produce:
			d.hasProduce, d.produce = true, s.N
		case *lang.Generate:
			d.hasGenerate, d.generate = true, s.N
		case *lang.DealerStmt:
			d.hasDealer, d.dealer = true, s.Seat
		case *lang.VulnerableStmt:
			d.hasVulnerable, d.vulnerable = true, s.Vul
		case *lang.PredealStmt:
			d.predeal[s.Seat] = s.Cards
		}
	}
	return d
}
