package cubic

import (
	"errors"
	"math"
	"sort"
	"testing"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestSolveDegenerate(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		b, c, d float64
	}{
		{0, 0, 0},
		{1, 2, 3},
		{-6, 11, -6},
	} {
		roots, err := Solve(0, test.b, test.c, test.d)
		assert.Error(err)
		assert.True(errors.Is(err, gpsmooth.ErrDomain))

		var de *gpsmooth.DomainError
		assert.True(errors.As(err, &de))
		assert.Equal(gpsmooth.KindDegenerate, de.Kind)
		assert.Equal(0, roots.N)
	}
}

func TestSolveKnownRoots(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		a, b, c, d float64
		n          int
		roots      []float64
	}{
		// x^3
		{1, 0, 0, 0, 1, []float64{0}},
		// (x-1)(x-2)(x-3)
		{1, -6, 11, -6, 3, []float64{3, 2, 1}},
		// 2(x-4)(x-1)(x+3)
		{2, -4, -22, 24, 3, []float64{4, 1, -3}},
		// -(x-3)(x-1)(x+2)
		{-1, 2, 5, -6, 3, []float64{3, 1, -2}},
		// (x-1)^3
		{1, -3, 3, -1, 1, []float64{1}},
		// x^3 - 8
		{1, 0, 0, -8, 1, []float64{2}},
		// (x+1)(x^2+1)
		{1, 1, 1, 1, 1, []float64{-1}},
		// (x-1)^2 (x+2)
		{1, 0, -3, 2, 3, []float64{1, 1, -2}},
	} {
		roots, err := Solve(test.a, test.b, test.c, test.d)
		assert.NoError(err)
		assert.Equal(test.n, roots.N)

		got := roots.Slice()
		assert.Len(got, len(test.roots))
		for i := range test.roots {
			assert.InDelta(test.roots[i], got[i], 1e-6)
		}

		if roots.N == 1 {
			assert.True(math.IsNaN(roots.X2))
			assert.True(math.IsNaN(roots.X3))
		}
	}
}

func TestSolveProperties(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		a, b, c, d float64
	}{
		{1, 2, 3, 4},
		{3, 1e-3, -7, 0.25},
		{-2, 0.5, 8, -1},
		{0.1, -0.3, -1.2, 0.4},
		{5, 0, -1, 0},
		{1, 1e3, -1e3, 0},
		{2, 1e-4, -1e-4, 0},
		{4, 12, 12, 4},
	} {
		roots, err := Solve(test.a, test.b, test.c, test.d)
		assert.NoError(err)
		assert.Contains([]int{1, 3}, roots.N)

		if roots.N == 3 {
			assert.True(roots.X1 >= roots.X2)
			assert.True(roots.X2 >= roots.X3)
		} else {
			assert.True(math.IsNaN(roots.X2))
			assert.True(math.IsNaN(roots.X3))
		}

		scale := math.Max(math.Max(math.Abs(test.a), math.Abs(test.b)), math.Max(math.Abs(test.c), math.Abs(test.d)))
		for _, x := range roots.Slice() {
			mag := scale * math.Max(1, math.Abs(x*x*x))
			assert.InDelta(0, Eval(test.a, test.b, test.c, test.d, x), tol*mag)
		}
	}
}

// expand returns the coefficients of (x-r1)(x-r2)(x-r3)
func expand(r1, r2, r3 float64) (a, b, c, d float64) {
	return 1, -(r1 + r2 + r3), r1*r2 + r1*r3 + r2*r3, -(r1 * r2 * r3)
}

func TestSolveNearDoubleRoot(t *testing.T) {
	assert := assert.New(t)

	for _, test := range [][3]float64{
		{1, 1 + 1e-7, -2},
		{1, 1 + 1e-5, -2},
		{1, 1 + 1e-6, -2},
	} {
		a, b, c, d := expand(test[0], test[1], test[2])

		roots, err := Solve(a, b, c, d)
		assert.NoError(err)
		assert.Equal(3, roots.N, "roots %v", test)
		assert.True(roots.X1 >= roots.X2 && roots.X2 >= roots.X3, "unsorted: %v", roots)

		for _, x := range roots.Slice() {
			assert.False(math.IsNaN(x) || math.IsInf(x, 0))
			assert.InDelta(0, Eval(a, b, c, d, x), tol)
		}

		want := []float64{test[0], test[1], test[2]}
		sort.Sort(sort.Reverse(sort.Float64Slice(want)))
		for i, x := range roots.Slice() {
			assert.InDelta(want[i], x, 1e-6)
		}
	}
}

func TestClampUnit(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		in, want float64
	}{
		{1 + 1e-15, 1},
		{-1 - 1e-15, -1},
		{math.Inf(1), 1},
		{0.5, 0.5},
		{-1, -1},
	} {
		assert.Equal(test.want, clampUnit(test.in))
	}
	assert.False(math.IsNaN(math.Acos(clampUnit(1 + 4e-16))))
}

func TestSort(t *testing.T) {
	assert := assert.New(t)

	for _, test := range [][3]float64{
		{1, 2, 3},
		{1, 3, 2},
		{2, 1, 3},
		{2, 3, 1},
		{3, 1, 2},
		{3, 2, 1},
		{2, 2, 1},
		{1, 2, 2},
	} {
		r := Roots{N: 3, X1: test[0], X2: test[1], X3: test[2]}
		r.sort()
		assert.True(r.X1 >= r.X2 && r.X2 >= r.X3, "unsorted: %v", r)
	}
}
