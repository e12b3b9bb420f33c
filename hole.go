package roundpeg

import (
	"math"
	"reflect"
)

// SquareHole is the target: it tests whether a WidthReporter fits through
// it. A SquareHole is immutable and safe for concurrent use.
type SquareHole struct {
	width float64
}

const holeWidthMsg = "width must be a positive number"

// NewSquareHole returns a hole of the given width. NaN, infinite and
// non-positive widths fail with ErrDomain.
func NewSquareHole(width float64) (*SquareHole, error) {
	if !validHoleWidth(width) {
		return nil, domainError("NewSquareHole", width, holeWidthMsg)
	}
	return &SquareHole{width: width}, nil
}

// SquareHoleFrom builds a hole from a dynamically typed value. Non-numeric
// values violate the same "positive number" constraint and fail with
// ErrDomain.
func SquareHoleFrom(v any) (*SquareHole, error) {
	w, ok := toFloat(v)
	if !ok {
		return nil, domainError("SquareHoleFrom", v, holeWidthMsg)
	}
	if !validHoleWidth(w) {
		return nil, domainError("SquareHoleFrom", v, holeWidthMsg)
	}
	return &SquareHole{width: w}, nil
}

func validHoleWidth(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}

// Width returns the hole's width.
func (h *SquareHole) Width() float64 {
	return h.width
}

// Fits reports whether shape's width is at most the hole's width. A shape
// exactly as wide as the hole fits. A nil shape fails with
// ErrNotWidthReporter and a CircleAdapter not built by NewCircleAdapter
// with ErrInvalidArgument.
func (h *SquareHole) Fits(shape WidthReporter) (bool, error) {
	if isNil(shape) {
		return false, notWidthReporter("Fits", shape)
	}
	if a, ok := shape.(*CircleAdapter); ok && a.circle == nil {
		return false, invalidArgument("Fits", shape, "adapter wraps no circle (use NewCircleAdapter)")
	}
	return shape.Width() <= h.width, nil
}

// FitsValue is Fits for dynamically typed values. If v does not implement
// WidthReporter the call fails with ErrNotWidthReporter; it never reports
// false for such values.
func (h *SquareHole) FitsValue(v any) (bool, error) {
	shape, ok := v.(WidthReporter)
	if !ok {
		return false, notWidthReporter("FitsValue", v)
	}
	return h.Fits(shape)
}

// FitsAll runs Fits over shapes in order and returns one result per shape.
// It stops at the first contract violation.
func (h *SquareHole) FitsAll(shapes ...WidthReporter) ([]bool, error) {
	results := make([]bool, 0, len(shapes))
	for _, s := range shapes {
		ok, err := h.Fits(s)
		if err != nil {
			return nil, err
		}
		results = append(results, ok)
	}
	return results, nil
}

// isNil catches both a nil interface and an interface holding a nil pointer.
func isNil(shape WidthReporter) bool {
	if shape == nil {
		return true
	}
	v := reflect.ValueOf(shape)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
