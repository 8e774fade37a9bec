// Package arith generates arithmetic practice problems whose answers are
// always exact non-negative integers.
package arith

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mathquiz/mathquiz/internal/domain"
)

// ErrGenerationExhausted is returned when no valid problem could be built
// from the configured parameters.
var ErrGenerationExhausted = errors.New("question generation exhausted")

// Source is the subset of *rand.Rand the generator draws from.
type Source interface {
	Int64N(n int64) int64
	IntN(n int) int
}

// globalSource uses the concurrency-safe top-level math/rand/v2 functions.
type globalSource struct{}

func (globalSource) Int64N(n int64) int64 { return rand.Int64N(n) }
func (globalSource) IntN(n int) int       { return rand.IntN(n) }

// Generator produces problems for one difficulty tier. It is safe for
// concurrent use.
type Generator struct {
	params *Params

	mu  sync.Mutex
	rng Source
}

// NewGenerator validates params and returns a generator drawing from rng.
// A nil rng uses the process-wide random source.
func NewGenerator(params *Params, rng Source) (*Generator, error) {
	if params == nil {
		params = NewAdvancedParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalSource{}
	}
	return &Generator{params: params, rng: rng}, nil
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params {
	return *g.params
}

// Generate returns a new problem.
func (g *Generator) Generate() (domain.Problem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch op := g.pickOperator(); op {
	case OpAdd:
		a, b := g.draw(g.params.Operand), g.draw(g.params.Operand)
		return render(a, op, b, a+b), nil
	case OpSubtract:
		a, b := g.draw(g.params.Operand), g.draw(g.params.Operand)
		if a < b {
			a, b = b, a
		}
		return render(a, op, b, a-b), nil
	case OpMultiply:
		a, b := g.draw(g.params.Factor), g.draw(g.params.Multiplier)
		return render(a, op, b, a*b), nil
	case OpDivide:
		return g.division()
	default:
		return domain.Problem{}, fmt.Errorf("%w: unknown operator %d", ErrGenerationExhausted, op)
	}
}

// division draws divisor and quotient and multiplies them back into the
// dividend, so the answer is exact by construction. Draws whose dividend
// exceeds the bound are retried a limited number of times before falling
// back to sampling only from admissible divisor/quotient pairs.
func (g *Generator) division() (domain.Problem, error) {
	p := g.params
	for range p.maxAttempts() {
		divisor, quotient := g.draw(p.Divisor), g.draw(p.Quotient)
		dividend := divisor * quotient
		if p.DividendMax == 0 || dividend <= p.DividendMax {
			return render(dividend, OpDivide, divisor, quotient), nil
		}
	}

	maxDivisor := min(p.Divisor.Max, p.DividendMax/p.Quotient.Min)
	if maxDivisor < p.Divisor.Min {
		return domain.Problem{}, fmt.Errorf("%w: divisor range %s cannot stay within %d",
			ErrGenerationExhausted, p.Divisor, p.DividendMax)
	}
	divisor := g.draw(Range{Min: p.Divisor.Min, Max: maxDivisor})

	maxQuotient := min(p.Quotient.Max, p.DividendMax/divisor)
	if maxQuotient < p.Quotient.Min {
		return domain.Problem{}, fmt.Errorf("%w: quotient range %s cannot stay within %d",
			ErrGenerationExhausted, p.Quotient, p.DividendMax)
	}
	quotient := g.draw(Range{Min: p.Quotient.Min, Max: maxQuotient})

	return render(divisor*quotient, OpDivide, divisor, quotient), nil
}

func (g *Generator) pickOperator() Operator {
	total := 0
	for _, w := range g.params.Weights {
		total += w
	}
	n := g.rng.IntN(total)
	for op, w := range g.params.Weights {
		if n < w {
			return Operator(op)
		}
		n -= w
	}
	return OpAdd
}

func (g *Generator) draw(r Range) int64 {
	return r.Min + g.rng.Int64N(r.Max-r.Min+1)
}

func render(a int64, op Operator, b int64, answer int64) domain.Problem {
	return domain.Problem{
		Expression: fmt.Sprintf("%d %s %d", a, op.Symbol(), b),
		Answer:     answer,
	}
}

// Generate draws one problem from the advanced tier using rng, or the
// process-wide source when rng is nil.
func Generate(rng Source) (domain.Problem, error) {
	gen, err := NewGenerator(NewAdvancedParams(), rng)
	if err != nil {
		return domain.Problem{}, err
	}
	return gen.Generate()
}
