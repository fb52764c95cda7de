// Package cubic finds the real roots of cubic equations with real coefficients.
package cubic

import (
	"math"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
)

const (
	twoPi  = 2.0 * math.Pi
	fourPi = 4.0 * math.Pi
)

// Roots are the real roots of a cubic equation.
type Roots struct {
	// N is the number of real roots: 1 or 3
	N int
	// X1 is the largest root
	X1 float64
	// X2 is the middle root, NaN if N is 1
	X2 float64
	// X3 is the smallest root, NaN if N is 1
	X3 float64
}

// Slice returns the real roots in descending order.
func (r Roots) Slice() []float64 {
	if r.N == 1 {
		return []float64{r.X1}
	}
	return []float64{r.X1, r.X2, r.X3}
}

// Solve solves a*x^3 + b*x^2 + c*x + d = 0 using Cardano's method.
// It returns either a single real root or three real roots in descending order.
// Repeated roots are returned as many times as they repeat, except for a triple
// root which is returned once.
// It returns DomainError if a is 0.
func Solve(a, b, c, d float64) (Roots, error) {
	if a == 0 {
		return Roots{}, gpsmooth.NewDomainError("cubic.Solve", gpsmooth.KindDegenerate, "leading coefficient is zero")
	}

	// normalize so the leading coefficient is 1
	b, c, d = b/a, c/a, d/a

	p := b / 3.0
	q := (3*c - b*b) / 9.0
	qCube := q * q * q
	r := (9*b*c - 27*d - 2*b*b*b) / 54.0
	disc := qCube + r*r

	switch {
	case disc < 0:
		// three distinct real roots
		theta := math.Acos(clampUnit(r / math.Sqrt(-qCube)))
		sqrtQ := 2.0 * math.Sqrt(-q)

		roots := Roots{
			N:  3,
			X1: sqrtQ*math.Cos(theta/3.0) - p,
			X2: sqrtQ*math.Cos((theta+twoPi)/3.0) - p,
			X3: sqrtQ*math.Cos((theta+fourPi)/3.0) - p,
		}
		roots.sort()

		return roots, nil
	case disc > 0:
		sqrtD := math.Sqrt(disc)
		s := math.Cbrt(r + sqrtD)
		t := math.Cbrt(r - sqrtD)

		return Roots{
			N:  1,
			X1: s + t - p,
			X2: math.NaN(),
			X3: math.NaN(),
		}, nil
	}

	// disc == 0: all roots real and at least two equal
	if q == 0 && r == 0 {
		return Roots{N: 1, X1: -p, X2: math.NaN(), X3: math.NaN()}, nil
	}

	u := math.Cbrt(r)
	roots := Roots{
		N:  3,
		X1: 2*u - p,
		X2: -u - p,
		X3: -u - p,
	}
	roots.sort()

	return roots, nil
}

// clampUnit limits x to [-1, 1].
// Near a double root rounding can push the acos argument just outside its domain.
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// sort orders the three roots in descending order.
func (r *Roots) sort() {
	if r.X1 < r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.X2 < r.X3 {
		r.X2, r.X3 = r.X3, r.X2
	}
	if r.X1 < r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
}

// Eval evaluates a*x^3 + b*x^2 + c*x + d at x using Horner's scheme.
func Eval(a, b, c, d, x float64) float64 {
	return ((a*x+b)*x+c)*x + d
}
