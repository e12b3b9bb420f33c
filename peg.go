package roundpeg

import "math"

// SquarePeg is a shape that reports a width natively and needs no adapter.
type SquarePeg struct {
	width float64
}

var _ WidthReporter = (*SquarePeg)(nil)

// NewSquarePeg returns a peg of the given width. NaN fails with
// ErrInvalidArgument; negative and infinite widths fail with ErrDomain.
func NewSquarePeg(width float64) (*SquarePeg, error) {
	if math.IsNaN(width) {
		return nil, invalidArgument("NewSquarePeg", width, "width must be a number")
	}
	if width < 0 {
		return nil, domainError("NewSquarePeg", width, "width must be non-negative")
	}
	if math.IsInf(width, 1) {
		return nil, domainError("NewSquarePeg", width, "width must be finite")
	}
	return &SquarePeg{width: width}, nil
}

// Width returns the peg's width.
func (p *SquarePeg) Width() float64 {
	return p.width
}

// SquarePegFrom builds a peg from a dynamically typed value. Non-numeric
// values fail with ErrInvalidArgument.
func SquarePegFrom(v any) (*SquarePeg, error) {
	w, ok := toFloat(v)
	if !ok {
		return nil, invalidArgument("SquarePegFrom", v, "width must be a number")
	}
	return NewSquarePeg(w)
}
