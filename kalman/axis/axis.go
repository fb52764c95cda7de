// Package axis implements a one-dimensional constant-velocity Kalman tracker
// that runs on the closed-form steady-state gain instead of propagating the
// gain every update.
package axis

import (
	"fmt"
	"math"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/estimate"
	"gonum.org/v1/gonum/mat"
)

// Tracker is a steady-state Kalman tracker of position and velocity along one axis
type Tracker struct {
	// dt is the time step
	dt float64
	// q is the process noise variance
	q float64
	// x is the position estimate
	x float64
	// v is the velocity estimate
	v float64
	// p11, p12, p22 hold the symmetric state covariance
	p11, p12, p22 float64
	// noise is the measurement noise the cached steady state was solved for
	noise float64
	// ss is the cached steady state
	ss SteadyState
	// solved is true once ss holds a solution
	solved bool
}

// New creates new Tracker and returns it.
// It accepts the following parameters:
//   - dt: time step between two consecutive updates
//   - q:  process noise variance
//
// It returns DomainError if dt is not positive or q is negative.
func New(dt, q float64) (*Tracker, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, gpsmooth.NewDomainError("axis.New", gpsmooth.KindParameter, "invalid time step: %v", dt)
	}

	if !(q >= 0) || math.IsInf(q, 0) {
		return nil, gpsmooth.NewDomainError("axis.New", gpsmooth.KindParameter, "invalid process noise variance: %v", q)
	}

	return &Tracker{
		dt: dt,
		q:  q,
	}, nil
}

// SteadyState returns the steady state for measurement noise standard deviation noise.
// The solution is cached, so repeated calls with the same noise return the same gains.
func (t *Tracker) SteadyState(noise float64) (SteadyState, error) {
	if t.solved && t.noise == noise {
		return t.ss, nil
	}

	ss, err := Solve(t.dt, t.q, noise)
	if err != nil {
		return SteadyState{}, err
	}

	t.ss, t.noise, t.solved = ss, noise, true

	return ss, nil
}

// SetState sets position and velocity and resets covariance to match noise.
// It returns error if any of the values is not finite or noise is negative.
func (t *Tracker) SetState(position, velocity, noise float64) error {
	if !finite(position) || !finite(velocity) {
		return fmt.Errorf("state [%v %v]: %w", position, velocity, gpsmooth.ErrInvalidInput)
	}

	if !finite(noise) {
		return fmt.Errorf("noise %v: %w", noise, gpsmooth.ErrInvalidInput)
	}

	if _, err := t.SteadyState(noise); err != nil {
		return err
	}

	n2 := noise * noise
	t.x, t.v = position, velocity
	t.p11, t.p12, t.p22 = n2, 0, n2/(t.dt*t.dt)

	return nil
}

// Update corrects the estimate using measurement z with noise standard deviation noise.
// It uses the steady-state gain for noise and propagates covariance in Joseph form,
// which keeps it consistent for a gain that is not recomputed from it.
// It returns error if z or noise is malformed or no steady state exists.
func (t *Tracker) Update(z, noise float64) error {
	if !finite(z) {
		return fmt.Errorf("measurement %v: %w", z, gpsmooth.ErrInvalidInput)
	}

	if !finite(noise) {
		return fmt.Errorf("noise %v: %w", noise, gpsmooth.ErrInvalidInput)
	}

	ss, err := t.SteadyState(noise)
	if err != nil {
		return err
	}

	r := noise * noise
	k1 := ss.Alpha
	k2 := ss.Beta / t.dt

	// innovation
	y := z - t.x
	t.x += k1 * y
	t.v += k2 * y

	// P = (I-KH)*P*(I-KH)' + K*R*K'
	a := 1 - k1
	p11 := a*a*t.p11 + k1*k1*r
	p12 := a*(t.p12-k2*t.p11) + k1*k2*r
	p22 := k2*k2*t.p11 - 2*k2*t.p12 + t.p22 + k2*k2*r
	t.p11, t.p12, t.p22 = p11, p12, p22

	return nil
}

// Predict propagates the estimate one time step forward given acceleration u.
// It can be called repeatedly to project further ahead.
func (t *Tracker) Predict(u float64) {
	dt := t.dt
	dt2 := dt * dt

	t.x += t.v*dt + u*dt2/2
	t.v += u * dt

	// P = F*P*F' + q*G*G' where G = [dt^2/2, dt]
	t.p11 += 2*dt*t.p12 + dt2*t.p22 + t.q*dt2*dt2/4
	t.p12 += dt*t.p22 + t.q*dt2*dt/2
	t.p22 += t.q * dt2
}

// Position returns position estimate
func (t *Tracker) Position() float64 {
	return t.x
}

// Velocity returns velocity estimate
func (t *Tracker) Velocity() float64 {
	return t.v
}

// Accuracy returns the standard deviation of the position estimate
func (t *Tracker) Accuracy() float64 {
	return math.Sqrt(t.p11)
}

// Gain returns the position and velocity gains of the cached steady state.
// Both are zero before the first SetState or Update.
func (t *Tracker) Gain() (alpha, beta float64) {
	return t.ss.Alpha, t.ss.Beta
}

// Estimate returns the current estimate with its covariance.
// It returns error if the covariance has become invalid.
func (t *Tracker) Estimate() (gpsmooth.Estimate, error) {
	cov := mat.NewSymDense(2, []float64{t.p11, t.p12, t.p12, t.p22})

	est, err := estimate.NewBaseWithCov(t.x, t.v, cov)
	if err != nil {
		return nil, fmt.Errorf("axis estimate: %w", err)
	}

	return est, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
