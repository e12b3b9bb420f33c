// Package roundpeg is a small worked example of the Adapter pattern: fitting
// round pegs into square holes.
//
// # Types
//
//   - [Circle] is the adaptee. It knows its radius and nothing else.
//   - [SquareHole] is the target. Its [SquareHole.Fits] method accepts any
//     [WidthReporter], the single-method capability it needs.
//   - [CircleAdapter] wraps a Circle and reports a width computed from the
//     radius, so a circle can be tested against a hole.
//   - [SquarePeg] reports a width natively and needs no adapter.
//
// # Usage
//
//	hole, err := roundpeg.NewSquareHole(8)
//	if err != nil { ... }
//	c, err := roundpeg.NewCircle(3)
//	if err != nil { ... }
//	a, err := roundpeg.NewCircleAdapter(c)
//	if err != nil { ... }
//	ok, err := hole.Fits(a) // true: diameter 6 <= 8
//
// # Width formula
//
// By default the adapter reports the circle's diameter (radius * 2), and a
// circle fits a hole whose width is at least its diameter. Earlier revisions
// reported radius * sqrt(2) instead; that rule is still available through
// [WithFormula] and [Diagonal]. The two rules disagree for holes narrower
// than the diameter but at least radius * sqrt(2) wide.
//
// # Errors
//
// Construction either returns a valid, immutable value or an error. Errors
// wrap one of two kinds so callers can branch on cause:
//
//   - [ErrInvalidArgument]: a value of the wrong kind, such as a
//     non-numeric radius from [CircleFrom], a non-circle passed to
//     [AdaptValue], or an object without a Width method passed to
//     [SquareHole.FitsValue] ([ErrNotWidthReporter]).
//   - [ErrDomain]: a value of the right kind outside its domain, such as a
//     negative radius or a hole width that is not positive.
//
// Use errors.As with [*ValueError] to recover the offending value.
package roundpeg
