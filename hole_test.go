package roundpeg

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingShape records how often Width is called.
type countingShape struct {
	width float64
	calls int
}

func (s *countingShape) Width() float64 {
	s.calls++
	return s.width
}

// noWidth has no Width method.
type noWidth struct{}

func mustHole(t *testing.T, w float64) *SquareHole {
	t.Helper()
	h, err := NewSquareHole(w)
	require.NoError(t, err)
	return h
}

func mustAdapter(t *testing.T, r float64, opts ...AdapterOption) *CircleAdapter {
	t.Helper()
	c, err := NewCircle(r)
	require.NoError(t, err)
	a, err := NewCircleAdapter(c, opts...)
	require.NoError(t, err)
	return a
}

func TestNewSquareHole_Invalid(t *testing.T) {
	t.Parallel()

	for _, w := range []float64{0, -5, math.Inf(-1), math.Inf(1), math.NaN()} {
		h, err := NewSquareHole(w)
		assert.Nil(t, h)
		assert.ErrorIs(t, err, ErrDomain, "width %v", w)
		assert.Contains(t, err.Error(), "must be a positive number")
	}
}

func TestSquareHoleFrom(t *testing.T) {
	t.Parallel()

	h, err := SquareHoleFrom(8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, h.Width())

	for _, v := range []any{"8", nil, 0, -5, false, math.Inf(1)} {
		_, err := SquareHoleFrom(v)
		assert.ErrorIs(t, err, ErrDomain, "value %v", v)
		assert.NotErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestFits_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		radius    float64
		hole      float64
		wantWidth float64
		want      bool
	}{
		{"small circle fits", 3, 8, 6, true},
		{"large circle does not fit", 6, 8, 12, false},
		{"exact fit", 4, 8, 8, true},
		{"zero radius", 0, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := mustAdapter(t, tt.radius)
			assert.Equal(t, tt.wantWidth, a.Width())

			got, err := mustHole(t, tt.hole).Fits(a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFits_BoundaryLaw(t *testing.T) {
	t.Parallel()

	radii := []float64{0, 0.25, 1, 2.5, 3.5, 4, 4.0001, 10}
	widths := []float64{0.5, 1, 7, 8, 8.0002, 20}

	for _, w := range widths {
		hole := mustHole(t, w)
		for _, r := range radii {
			got, err := hole.Fits(mustAdapter(t, r))
			require.NoError(t, err)
			assert.Equal(t, 2*r <= w, got, "radius %v, hole %v", r, w)
		}
	}
}

func TestFitsAll_Sequence(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 7)
	got, err := hole.FitsAll(
		mustAdapter(t, 1),
		mustAdapter(t, 2.5),
		mustAdapter(t, 4),
		mustAdapter(t, 6),
	)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, got)
}

func TestFitsAll_StopsOnContractViolation(t *testing.T) {
	t.Parallel()

	var missing *CircleAdapter
	got, err := mustHole(t, 7).FitsAll(mustAdapter(t, 1), missing)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotWidthReporter)
}

func TestFits_Idempotent(t *testing.T) {
	t.Parallel()

	c, err := NewCircle(3)
	require.NoError(t, err)
	a, err := NewCircleAdapter(c)
	require.NoError(t, err)
	hole := mustHole(t, 8)

	first, err := hole.Fits(a)
	require.NoError(t, err)
	second, err := hole.Fits(a)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3.0, c.Radius())
}

func TestFits_CallsWidthOnce(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 4)

	small := &countingShape{width: 3}
	ok, err := hole.Fits(small)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, small.calls)

	large := &countingShape{width: 10}
	ok, err = mustHole(t, 6).Fits(large)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, large.calls)
}

func TestFits_NativeWidthReporter(t *testing.T) {
	t.Parallel()

	peg, err := NewSquarePeg(5)
	require.NoError(t, err)
	ok, err := mustHole(t, 5).Fits(peg)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFits_Nil(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 5)

	_, err := hole.Fits(nil)
	assert.ErrorIs(t, err, ErrNotWidthReporter)

	var a *CircleAdapter
	_, err = hole.Fits(a)
	assert.ErrorIs(t, err, ErrNotWidthReporter)
}

func TestFits_ZeroAdapter(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 8)
	for _, v := range []any{&CircleAdapter{}, &CircleAdapter{formula: Diagonal}} {
		assert.NotPanics(t, func() {
			ok, err := hole.FitsValue(v)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.ErrorContains(t, err, "adapter wraps no circle")
		})
	}

	_, err := hole.FitsAll(mustAdapter(t, 1), &CircleAdapter{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFitsValue_ContractViolation(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 5)
	c, err := NewCircle(1)
	require.NoError(t, err)

	for _, v := range []any{noWidth{}, c, "wide", 3.0, nil} {
		ok, err := hole.FitsValue(v)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrNotWidthReporter, "value %T", v)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	_, err = hole.FitsValue(noWidth{})
	var verr *ValueError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, noWidth{}, verr.Value)
	assert.Contains(t, err.Error(), "roundpeg.noWidth")
}

func TestFitsValue_Adapter(t *testing.T) {
	t.Parallel()

	ok, err := mustHole(t, 8).FitsValue(mustAdapter(t, 3))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFits_Concurrent(t *testing.T) {
	t.Parallel()

	hole := mustHole(t, 8)
	a := mustAdapter(t, 4)

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := hole.Fits(a)
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
}
