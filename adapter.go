package roundpeg

import (
	"fmt"
	"math"
	"strings"
)

// WidthReporter is the capability SquareHole.Fits requires: anything that
// can report a width. Square pegs implement it natively; round pegs go
// through a CircleAdapter.
type WidthReporter interface {
	Width() float64
}

var _ WidthReporter = (*CircleAdapter)(nil)

// Formula selects how a CircleAdapter turns a radius into a width.
type Formula int

const (
	// Diameter reports radius * 2. A circle fits a hole exactly as wide as
	// its diameter.
	Diameter Formula = iota

	// Diagonal reports radius * sqrt(2). Older revisions of the adapter used
	// this rule; it is kept selectable so results from those revisions can
	// be reproduced.
	Diagonal
)

// String makes Formula satisfy the fmt.Stringer interface.
func (f Formula) String() string {
	switch f {
	case Diameter:
		return "diameter"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("Formula(%d)", int(f))
	}
}

// ParseFormula parses "diameter" or "diagonal" (case-insensitive). The
// empty string selects Diameter.
func ParseFormula(name string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diameter":
		return Diameter, nil
	case "diagonal":
		return Diagonal, nil
	default:
		return Diameter, invalidArgument("ParseFormula", name, `formula must be "diameter" or "diagonal"`)
	}
}

func (f Formula) apply(radius float64) float64 {
	if f == Diagonal {
		return radius * math.Sqrt2
	}
	return radius * 2
}

// AdapterOption configures a CircleAdapter.
type AdapterOption func(*CircleAdapter)

// WithFormula selects the radius-to-width rule. The default is Diameter.
func WithFormula(f Formula) AdapterOption {
	return func(a *CircleAdapter) {
		a.formula = f
	}
}

// CircleAdapter presents a Circle as a WidthReporter. It holds a reference
// to the circle and never copies or modifies it, so any number of adapters
// may share one circle.
//
// Only NewCircleAdapter and AdaptValue make a usable adapter. Width panics
// on a zero CircleAdapter; Fits rejects one with ErrInvalidArgument.
type CircleAdapter struct {
	circle  *Circle
	formula Formula
}

// NewCircleAdapter wraps c. A nil circle is a contract violation and fails
// with ErrInvalidArgument.
func NewCircleAdapter(c *Circle, opts ...AdapterOption) (*CircleAdapter, error) {
	if c == nil {
		return nil, invalidArgument("NewCircleAdapter", c, "circle must not be nil")
	}
	a := &CircleAdapter{circle: c, formula: Diameter}
	for _, opt := range opts {
		opt(a)
	}
	if a.formula != Diameter && a.formula != Diagonal {
		return nil, invalidArgument("NewCircleAdapter", a.formula, "unknown formula")
	}
	return a, nil
}

// AdaptValue wraps a dynamically typed value, which must be a non-nil
// *Circle. Anything else fails with ErrInvalidArgument.
func AdaptValue(v any, opts ...AdapterOption) (*CircleAdapter, error) {
	c, ok := v.(*Circle)
	if !ok || c == nil {
		return nil, invalidArgument("AdaptValue", v, "value is not a *Circle")
	}
	return NewCircleAdapter(c, opts...)
}

// Width computes the width from the circle's radius on every call.
func (a *CircleAdapter) Width() float64 {
	return a.formula.apply(a.circle.Radius())
}

// Circle returns the wrapped circle.
func (a *CircleAdapter) Circle() *Circle {
	return a.circle
}

// Formula returns the rule used by Width.
func (a *CircleAdapter) Formula() Formula {
	return a.formula
}
