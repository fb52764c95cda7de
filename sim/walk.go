package sim

import (
	"fmt"
	"math"
	"time"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/milosgajdos/go-gpsmooth/noise"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"gonum.org/v1/gonum/mat"
)

// Walk describes a constant-velocity trip observed by a noisy receiver
type Walk struct {
	// Origin is the starting position
	Origin orb.Point
	// Altitude is the starting altitude in meters
	Altitude float64
	// Velocity is the east, north and up velocity in meters per second
	Velocity [3]float64
	// Steps is the number of fixes
	Steps int
	// TimeStep is the interval between fixes in seconds
	TimeStep float64
	// Accuracy is the one-sigma horizontal receiver error in meters
	Accuracy float64
	// AltitudeAccuracy is the one-sigma vertical receiver error in meters
	AltitudeAccuracy float64
	// Seed makes the receiver error reproducible; zero seeds from the wall clock
	Seed uint64
	// Start is the time of the first fix
	Start time.Time
	// Receiver is the east, north and up receiver error.
	// If nil, Gaussian error is drawn using Accuracy, AltitudeAccuracy and Seed.
	Receiver gpsmooth.Noise
	// Process perturbs the six dimensional state every step.
	// If nil, the velocity stays constant.
	Process gpsmooth.Noise
}

// Sample is a true fix and its noisy measurement
type Sample struct {
	// Truth is the true position
	Truth location.Fix
	// Measured is the position reported by the receiver
	Measured location.Fix
}

// Run simulates the walk and returns its samples.
// Noise sources are reset first, so seeded sources replay on every run.
// It returns error if the walk parameters are invalid.
func (w Walk) Run() ([]Sample, error) {
	if w.Steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", w.Steps)
	}

	if !(w.Accuracy > 0) || !(w.AltitudeAccuracy > 0) {
		return nil, fmt.Errorf("invalid accuracy: %v, %v", w.Accuracy, w.AltitudeAccuracy)
	}

	model, err := ConstantVelocity(w.TimeStep)
	if err != nil {
		return nil, err
	}

	rx, err := w.receiver()
	if err != nil {
		return nil, err
	}

	px, err := w.process()
	if err != nil {
		return nil, err
	}

	ve, vn, vu := w.Velocity[0], w.Velocity[1], w.Velocity[2]

	var x mat.Vector = mat.NewVecDense(6, []float64{0, 0, 0, ve, vn, vu})
	step := time.Duration(w.TimeStep * float64(time.Second))

	samples := make([]Sample, w.Steps)
	for i := range samples {
		truth, err := model.Observe(x, nil)
		if err != nil {
			return nil, err
		}

		meas, err := model.Observe(x, rx.Sample())
		if err != nil {
			return nil, err
		}

		ts := w.Start.Add(time.Duration(i) * step)
		elapsed := time.Duration(i) * step

		e, n := x.AtVec(3), x.AtVec(4)
		bearing := math.Mod(math.Atan2(e, n)*180/math.Pi+360, 360)

		samples[i].Truth = w.fix(truth, ts, elapsed)
		samples[i].Measured = w.fix(meas, ts, elapsed)
		samples[i].Measured.Accuracy = w.Accuracy
		samples[i].Measured.Speed, samples[i].Measured.HasSpeed = math.Hypot(e, n), true
		samples[i].Measured.Bearing, samples[i].Measured.HasBearing = bearing, true

		if x, err = model.Propagate(x, nil, px.Sample()); err != nil {
			return nil, err
		}
	}

	return samples, nil
}

// receiver returns the receiver error source reset to its initial state
func (w Walk) receiver() (gpsmooth.Noise, error) {
	if w.Receiver == nil {
		h2, v2 := w.Accuracy*w.Accuracy, w.AltitudeAccuracy*w.AltitudeAccuracy
		cov := mat.NewSymDense(3, []float64{
			h2, 0, 0,
			0, h2, 0,
			0, 0, v2,
		})

		return noise.NewSeededGaussian(make([]float64, 3), cov, w.Seed)
	}

	if n := len(w.Receiver.Mean()); n != 3 {
		return nil, fmt.Errorf("invalid receiver noise dimension: %d", n)
	}

	if err := w.Receiver.Reset(); err != nil {
		return nil, fmt.Errorf("receiver noise reset: %w", err)
	}

	return w.Receiver, nil
}

// process returns the process noise source reset to its initial state
func (w Walk) process() (gpsmooth.Noise, error) {
	if w.Process == nil {
		return noise.NewZero(6)
	}

	if n := len(w.Process.Mean()); n != 6 {
		return nil, fmt.Errorf("invalid process noise dimension: %d", n)
	}

	if err := w.Process.Reset(); err != nil {
		return nil, fmt.Errorf("process noise reset: %w", err)
	}

	return w.Process, nil
}

// fix converts local east, north and up offsets to a fix
func (w Walk) fix(enu mat.Vector, ts time.Time, elapsed time.Duration) location.Fix {
	e, n := enu.AtVec(0), enu.AtVec(1)

	p := w.Origin
	if d := math.Hypot(e, n); d > 0 {
		p = geo.PointAtBearingAndDistance(w.Origin, math.Atan2(e, n)*180/math.Pi, d)
	}

	return location.Fix{
		Latitude:    p.Lat(),
		Longitude:   p.Lon(),
		Altitude:    w.Altitude + enu.AtVec(2),
		HasAltitude: true,
		Time:        ts,
		Elapsed:     elapsed,
	}
}
