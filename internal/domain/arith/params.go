package arith

import (
	"errors"
	"fmt"
	"strings"
)

// Operator identifies one of the four arithmetic operations.
type Operator int

// Supported operators, in weight order.
const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the glyph used when rendering an expression.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "x"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

// Tier names a difficulty preset. A deployment uses one tier throughout.
type Tier string

// Available tiers.
const (
	TierBasic    Tier = "basic"
	TierAdvanced Tier = "advanced"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int64
	Max int64
}

func (r Range) valid() bool {
	return r.Min > 0 && r.Min <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Params defines all configurable parameters for question generation
type Params struct {
	// Operands of addition and subtraction
	Operand Range

	// Multiplication draws the first factor from Factor and the second from Multiplier
	Factor     Range
	Multiplier Range

	// Division is built backwards from Divisor x Quotient
	Divisor  Range
	Quotient Range

	// DividendMax bounds divisor x quotient; 0 means unbounded
	DividendMax int64

	// Weights indexed by Operator
	Weights [4]int

	// MaxAttempts caps rejection sampling before the deterministic fallback
	MaxAttempts int
}

// DefaultMaxAttempts is used when Params.MaxAttempts is not positive.
const DefaultMaxAttempts = 32

// Errors returned by parameter validation.
var (
	ErrUnknownTier    = errors.New("unknown difficulty tier")
	ErrInvalidParams  = errors.New("invalid generator parameters")
	ErrNoOperatorMass = errors.New("operator weights must have a positive sum")
)

// NewBasicParams mirrors the small-number drill: everything stays within 100.
func NewBasicParams() *Params {
	return &Params{
		Operand:     Range{Min: 2, Max: 100},
		Factor:      Range{Min: 2, Max: 100},
		Multiplier:  Range{Min: 3, Max: 30},
		Divisor:     Range{Min: 3, Max: 30},
		Quotient:    Range{Min: 3, Max: 30},
		DividendMax: 100,
		Weights:     [4]int{1, 1, 1, 1},
		MaxAttempts: DefaultMaxAttempts,
	}
}

// NewAdvancedParams uses larger operands and makes division less frequent.
func NewAdvancedParams() *Params {
	return &Params{
		Operand:     Range{Min: 2, Max: 1000},
		Factor:      Range{Min: 2, Max: 100},
		Multiplier:  Range{Min: 2, Max: 100},
		Divisor:     Range{Min: 9, Max: 50},
		Quotient:    Range{Min: 9, Max: 50},
		DividendMax: 0,
		Weights:     [4]int{2, 2, 2, 1},
		MaxAttempts: DefaultMaxAttempts,
	}
}

// ParamsForTier returns the preset for a tier name (case-insensitive).
func ParamsForTier(name string) (*Params, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(name))) {
	case TierBasic:
		return NewBasicParams(), nil
	case TierAdvanced, "":
		return NewAdvancedParams(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
}

// Validate checks that every operator with a positive weight can produce a problem.
func (p *Params) Validate() error {
	total := 0
	for op, w := range p.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight for %s", ErrInvalidParams, Operator(op).Symbol())
		}
		total += w
	}
	if total == 0 {
		return ErrNoOperatorMass
	}

	if p.Weights[OpAdd] > 0 || p.Weights[OpSubtract] > 0 {
		if !p.Operand.valid() {
			return fmt.Errorf("%w: operand range %s", ErrInvalidParams, p.Operand)
		}
	}

	if p.Weights[OpMultiply] > 0 {
		if !p.Factor.valid() || !p.Multiplier.valid() {
			return fmt.Errorf("%w: factor range %s / multiplier range %s",
				ErrInvalidParams, p.Factor, p.Multiplier)
		}
	}

	if p.Weights[OpDivide] > 0 {
		if !p.Divisor.valid() || !p.Quotient.valid() {
			return fmt.Errorf("%w: divisor range %s / quotient range %s",
				ErrInvalidParams, p.Divisor, p.Quotient)
		}
		if p.DividendMax < 0 {
			return fmt.Errorf("%w: negative dividend bound", ErrInvalidParams)
		}
		if p.DividendMax > 0 && p.Divisor.Min*p.Quotient.Min > p.DividendMax {
			return fmt.Errorf("%w: no divisor x quotient in %s x %s stays within %d",
				ErrInvalidParams, p.Divisor, p.Quotient, p.DividendMax)
		}
	}

	return nil
}

func (p *Params) maxAttempts() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return DefaultMaxAttempts
}
