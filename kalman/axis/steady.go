package axis

import (
	"fmt"
	"math"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/cubic"
)

// SteadyState is the time-invariant solution of the constant-velocity filter
// for one level of measurement noise.
type SteadyState struct {
	// Alpha is the position gain
	Alpha float64
	// Beta is the velocity gain; the velocity correction is Beta/dt per unit of innovation
	Beta float64
	// Variance is the steady predicted position variance
	Variance float64
	// Index is the tracking index lambda
	Index float64
}

// maxNewton bounds the root refinement
const maxNewton = 64

// Solve computes the steady state of the discrete white noise acceleration
// constant-velocity model with time step dt, process noise variance q and
// measurement noise standard deviation noise.
//
// With tracking index l = sqrt(q)*dt^2/noise and t = sqrt(beta/2) the Riccati
// fixed point satisfies
//
//	t*(2t^2 + l*t - l) = 0
//
// The root at zero is the filter without process noise and the negative root
// has no physical meaning, so the steady state is the single positive root.
// Cardano's roots lose precision as l grows, so the positive root is refined
// with Newton's method on 2t^2 + l*t - l. The gains follow as
// alpha = t*(2-t) and beta = 2t^2.
//
// A noise of zero, or one small enough to make l infinite, is the perfect
// measurement limit t = 1.
// It returns DomainError if the cubic has no positive root.
func Solve(dt, q, noise float64) (SteadyState, error) {
	if !(dt > 0) || math.IsInf(dt, 0) || !(q >= 0) || math.IsInf(q, 0) {
		return SteadyState{}, gpsmooth.NewDomainError("axis.Solve", gpsmooth.KindParameter,
			"time step %v, process noise variance %v", dt, q)
	}

	if noise < 0 || math.IsNaN(noise) {
		return SteadyState{}, fmt.Errorf("measurement noise %v: %w", noise, gpsmooth.ErrInvalidInput)
	}

	t := 1.0
	l := math.Inf(1)
	if noise > 0 {
		l = math.Sqrt(q) * dt * dt / noise
	}

	if !math.IsInf(l, 1) {
		roots, err := cubic.Solve(2, l, -l, 0)
		if err != nil {
			return SteadyState{}, err
		}

		if !(l > 0) {
			return SteadyState{}, gpsmooth.NewDomainError("axis.Solve", gpsmooth.KindNoPositiveRoot,
				"tracking index %v", l)
		}

		// the positive root lies in (0, 1) for any finite l > 0
		t0 := roots.X1
		if !(t0 > 0 && t0 < 1) {
			t0 = 1
		}

		if t, err = refine(l, t0); err != nil {
			return SteadyState{}, err
		}
	}

	alpha := t * (2 - t)
	t2 := t * t

	return SteadyState{
		Alpha:    alpha,
		Beta:     2 * t2,
		Variance: alpha * q * dt * dt * dt * dt / (4 * t2 * t2),
		Index:    l,
	}, nil
}

// refine polishes the positive root of 2t^2 + l*t - l starting from t.
// The quadratic is convex, so the iteration settles on the root from either side.
func refine(l, t float64) (float64, error) {
	for i := 0; i < maxNewton; i++ {
		step := (2*t*t + l*t - l) / (4*t + l)
		t -= step
		if math.Abs(step) <= 1e-16*t {
			break
		}
	}

	res := 2*t*t + l*t - l
	if !(t > 0) || !(math.Abs(res) <= 1e-12*(2*t*t+l)) {
		return 0, gpsmooth.NewDomainError("axis.Solve", gpsmooth.KindNoPositiveRoot,
			"tracking index %v: residual %v at %v", l, res, t)
	}

	return t, nil
}
