package axis

import (
	"errors"
	"math"
	"testing"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/stretchr/testify/assert"
)

// kalata returns the closed form alpha-beta gains for tracking index l.
func kalata(l float64) (alpha, beta float64) {
	s := math.Sqrt(l*l + 8*l)
	alpha = -(l*l + 8*l - (l+4)*s) / 8
	beta = (l*l + 4*l - l*s) / 4
	return alpha, beta
}

func TestSolve(t *testing.T) {
	assert := assert.New(t)

	for _, l := range []float64{0.01, 0.1, 0.5, 1, 2, 4} {
		// dt = 1, noise = 1 so the tracking index is sqrt(q)
		ss, err := Solve(1, l*l, 1)
		assert.NoError(err)
		assert.InDelta(l, ss.Index, 1e-12)

		alpha, beta := kalata(l)
		assert.InDelta(alpha, ss.Alpha, 1e-9)
		assert.InDelta(beta, ss.Beta, 1e-9)

		// steady prior variance of the Riccati solution is r*alpha/(1-alpha)
		want := ss.Alpha / (1 - ss.Alpha)
		assert.InDelta(want, ss.Variance, 1e-9*want)
	}

	ss, err := Solve(1, 1, 1)
	assert.NoError(err)
	assert.InDelta(0.75, ss.Alpha, 1e-12)
	assert.InDelta(0.5, ss.Beta, 1e-12)
	assert.InDelta(3.0, ss.Variance, 1e-12)

	// time step scales the tracking index
	ss, err = Solve(2, 1, 4)
	assert.NoError(err)
	assert.InDelta(1.0, ss.Index, 1e-12)
	assert.InDelta(0.75, ss.Alpha, 1e-12)
}

// positiveRoot returns the positive root of 2t^2 + l*t - l in a form free of cancellation
func positiveRoot(l float64) float64 {
	return 2 * l / (l + math.Sqrt(l*l+8*l))
}

func TestSolveTrackingIndexSweep(t *testing.T) {
	assert := assert.New(t)

	for e := -6; e <= 12; e++ {
		for _, m := range []float64{1, 2, 5} {
			l := m * math.Pow(10, float64(e))

			ss, err := Solve(1, l*l, 1)
			assert.NoError(err, "index %v", l)

			root := positiveRoot(ss.Index)
			beta := 2 * root * root
			alpha := root * (2 - root)
			assert.InEpsilon(beta, ss.Beta, 1e-12, "index %v", l)
			assert.InEpsilon(alpha, ss.Alpha, 1e-12, "index %v", l)
			assert.True(ss.Alpha < 1 && ss.Beta < 2, "index %v", l)
			assert.False(math.IsNaN(ss.Variance) || math.IsInf(ss.Variance, 0))
		}
	}
}

func TestSolvePerfectMeasurement(t *testing.T) {
	assert := assert.New(t)

	ss, err := Solve(1, 1, 0)
	assert.NoError(err)
	assert.Equal(1.0, ss.Alpha)
	assert.Equal(2.0, ss.Beta)
	assert.Equal(0.25, ss.Variance)
	assert.True(math.IsInf(ss.Index, 1))

	// tiny noise approaches the limit without a jump
	ss, err = Solve(1, 1, 1e-12)
	assert.NoError(err)
	assert.InDelta(1.0, ss.Alpha, 1e-9)
	assert.InDelta(2.0, ss.Beta, 1e-9)
	assert.InDelta(0.25, ss.Variance, 1e-9)

	// noise so small the index overflows
	ss, err = Solve(1, 1, 5e-324)
	assert.NoError(err)
	assert.Equal(1.0, ss.Alpha)
	assert.True(math.IsInf(ss.Index, 1))
}

func TestSolveErrors(t *testing.T) {
	assert := assert.New(t)

	// no process noise: the only root is zero
	_, err := Solve(1, 0, 1)
	assert.Error(err)
	assert.True(errors.Is(err, gpsmooth.ErrDomain))
	var de *gpsmooth.DomainError
	assert.True(errors.As(err, &de))
	assert.Equal(gpsmooth.KindNoPositiveRoot, de.Kind)

	for _, test := range []struct {
		dt, q float64
	}{
		{0, 1},
		{math.Inf(1), 1},
		{1, -1},
		{1, math.NaN()},
		{1, math.Inf(1)},
	} {
		_, err = Solve(test.dt, test.q, 1)
		assert.True(errors.As(err, &de))
		assert.Equal(gpsmooth.KindParameter, de.Kind)
	}

	for _, noise := range []float64{-1, math.NaN()} {
		_, err = Solve(1, 1, noise)
		assert.Error(err)
		assert.True(errors.Is(err, gpsmooth.ErrInvalidInput))
	}
}
