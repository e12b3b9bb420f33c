package roundpeg

import "math"

// Circle is the adaptee: a shape that knows its radius but cannot report a
// width. A Circle is immutable once constructed.
type Circle struct {
	radius float64
}

// maxRadius keeps the adapted width finite under either formula.
const maxRadius = math.MaxFloat64 / 2

// NewCircle returns a Circle with the given radius. A NaN radius is not a
// number and fails with ErrInvalidArgument. A negative or infinite radius
// fails with ErrDomain, as does one whose width would overflow.
func NewCircle(radius float64) (*Circle, error) {
	if math.IsNaN(radius) {
		return nil, invalidArgument("NewCircle", radius, "radius must be a number")
	}
	if radius < 0 {
		return nil, domainError("NewCircle", radius, "radius must be non-negative")
	}
	if radius > maxRadius {
		return nil, domainError("NewCircle", radius, "radius must be finite")
	}
	return &Circle{radius: radius}, nil
}

// CircleFrom builds a Circle from a dynamically typed value, as decoded from
// YAML or passed in from a script. Non-numeric values fail with
// ErrInvalidArgument.
func CircleFrom(v any) (*Circle, error) {
	r, ok := toFloat(v)
	if !ok {
		return nil, invalidArgument("CircleFrom", v, "radius must be a number")
	}
	return NewCircle(r)
}

// Radius returns the radius the circle was constructed with.
func (c *Circle) Radius() float64 {
	return c.radius
}
