package runtime

import (
	"context"
	"log/slog"

	"github.com/risor-io/risor/object"

	"github.com/jward/roundpeg"
	"github.com/jward/roundpeg/internal/store"
)

// goValue converts a Risor object to the Go value the roundpeg constructors
// expect. Proxies are unwrapped to the Go value they hold; objects with no
// Go counterpart are returned as-is so they fail the constructors' checks.
func goValue(obj object.Object) any {
	switch v := obj.(type) {
	case *object.Int:
		return v.Value()
	case *object.Float:
		return v.Value()
	case *object.String:
		return v.Value()
	case *object.Bool:
		return v.Value()
	case *object.NilType:
		return nil
	case *object.Proxy:
		return v.Interface()
	default:
		return obj
	}
}

func proxyResult(name string, v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		return object.Errorf("%s: proxy error: %v", name, err)
	}
	return p
}

// makeCircleFn creates the "circle" host function.
//
// circle(radius) → Circle
func makeCircleFn() *object.Builtin {
	return object.NewBuiltin("circle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("circle", 1, len(args))
		}
		c, err := roundpeg.CircleFrom(goValue(args[0]))
		if err != nil {
			return object.Errorf("circle: %v", err)
		}
		return proxyResult("circle", c)
	})
}

// makeSquareHoleFn creates the "square_hole" host function.
//
// square_hole(width) → SquareHole
func makeSquareHoleFn() *object.Builtin {
	return object.NewBuiltin("square_hole", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("square_hole", 1, len(args))
		}
		h, err := roundpeg.SquareHoleFrom(goValue(args[0]))
		if err != nil {
			return object.Errorf("square_hole: %v", err)
		}
		return proxyResult("square_hole", h)
	})
}

// makeSquarePegFn creates the "square_peg" host function.
//
// square_peg(width) → SquarePeg
func makeSquarePegFn() *object.Builtin {
	return object.NewBuiltin("square_peg", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("square_peg", 1, len(args))
		}
		p, err := roundpeg.SquarePegFrom(goValue(args[0]))
		if err != nil {
			return object.Errorf("square_peg: %v", err)
		}
		return proxyResult("square_peg", p)
	})
}

// makeAdaptFn creates the "adapt" host function.
//
// adapt(circle) → CircleAdapter
func makeAdaptFn(formula roundpeg.Formula) *object.Builtin {
	return object.NewBuiltin("adapt", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("adapt", 1, len(args))
		}
		a, err := roundpeg.AdaptValue(goValue(args[0]), roundpeg.WithFormula(formula))
		if err != nil {
			return object.Errorf("adapt: %v", err)
		}
		return proxyResult("adapt", a)
	})
}

// makeFitsFn creates the "fits" host function. Passing an object that
// cannot report a width raises an error in the script.
//
// fits(hole, shape) → bool
func makeFitsFn(r *Runtime) *object.Builtin {
	return object.NewBuiltin("fits", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("fits", 2, len(args))
		}

		holeProxy, ok := args[0].(*object.Proxy)
		if !ok {
			return object.Errorf("fits: expected proxy (SquareHole), got %s", args[0].Type())
		}
		hole, ok := holeProxy.Interface().(*roundpeg.SquareHole)
		if !ok {
			return object.Errorf("fits: expected *roundpeg.SquareHole, got %T", holeProxy.Interface())
		}

		v := goValue(args[1])
		fit, err := hole.FitsValue(v)
		if err != nil {
			return object.Errorf("fits: %v", err)
		}

		if r.recorder != nil {
			if err := r.record(hole, v.(roundpeg.WidthReporter), fit); err != nil {
				return object.Errorf("fits: %v", err)
			}
		}
		return object.NewBool(fit)
	})
}

func (r *Runtime) record(hole *roundpeg.SquareHole, shape roundpeg.WidthReporter, fits bool) error {
	rec := &store.FitRecord{
		Source:     r.source,
		Shape:      "shape",
		ShapeWidth: shape.Width(),
		HoleWidth:  hole.Width(),
		Fits:       fits,
		CheckedAt:  r.now(),
	}
	switch s := shape.(type) {
	case *roundpeg.CircleAdapter:
		radius := s.Circle().Radius()
		rec.Shape = "circle"
		rec.Radius = &radius
		rec.Formula = s.Formula().String()
	case *roundpeg.SquarePeg:
		rec.Shape = "square"
	}
	_, err := r.recorder.InsertFit(rec)
	return err
}

// logObject provides log.info/warn/error methods for Risor scripts.
type logObject struct {
	logger *slog.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg, "source", "script")
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg, "source", "script")
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg, "source", "script")
}
