// Package location smooths position fixes with three independent steady-state
// axis trackers and a moving average over the tracked altitude.
package location

import (
	"fmt"
	"math"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/clock"
	"github.com/milosgajdos/go-gpsmooth/kalman/axis"
)

const (
	latAxis = iota
	lonAxis
	altAxis
	numAxes
)

var axisNames = [numAxes]string{"latitude", "longitude", "altitude"}

// slotState is the lifecycle state of an axis slot
type slotState uint8

const (
	// slotEmpty has no tracker; the next observation seeds one
	slotEmpty slotState = iota
	// slotTracking holds a seeded tracker
	slotTracking
)

// slot owns the tracker of one axis
type slot struct {
	state   slotState
	tracker gpsmooth.Tracker
}

// trackerFunc creates a tracker for time step dt and process noise variance q
type trackerFunc func(dt, q float64) (gpsmooth.Tracker, error)

func newAxisTracker(dt, q float64) (gpsmooth.Tracker, error) {
	return axis.New(dt, q)
}

// Smoother smooths a stream of fixes.
// It is not safe for concurrent use.
type Smoother struct {
	cfg Config
	clk clock.Clock
	// q holds the process noise variance of each axis
	q      [numAxes]float64
	slots  [numAxes]slot
	window *Window
	// prev is the last raw fix that was smoothed
	prev *Fix
	// newTracker creates axis trackers
	newTracker trackerFunc
}

// New creates new Smoother and returns it.
// If clk is nil the real clock is used.
// It returns error if cfg is not valid.
func New(cfg Config, clk clock.Clock) (*Smoother, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if clk == nil {
		clk = clock.NewReal()
	}

	// horizontal process noise is tracked in degrees
	coord := cfg.CoordinateNoise / cfg.MetersPerDegree

	return &Smoother{
		cfg:        cfg,
		clk:        clk,
		q:          [numAxes]float64{coord * coord, coord * coord, cfg.AltitudeNoise * cfg.AltitudeNoise},
		window:     NewWindow(cfg.AltitudeWindow),
		newTracker: newAxisTracker,
	}, nil
}

// Config returns smoother configuration
func (s *Smoother) Config() Config {
	return s.cfg
}

// IsFirstPoint returns true if no fix has been smoothed since
// construction or since the last reset that clears fix history.
func (s *Smoother) IsFirstPoint() bool {
	return s.prev == nil
}

// AltitudeWindow returns the altitude estimates currently averaged, oldest first
func (s *Smoother) AltitudeWindow() []float64 {
	return s.window.Values()
}

// Reset discards all axis trackers so that the next fix reseeds them.
// With ResetAll policy it also clears the altitude window and fix history.
func (s *Smoother) Reset() {
	for i := range s.slots {
		s.slots[i] = slot{}
	}

	if s.cfg.ResetPolicy == ResetAll {
		s.window.Clear()
		s.prev = nil
	}
}

// Filter smooths raw and returns the smoothed fix.
// If raw can not be smoothed it returns a copy of raw along with
// *gpsmooth.FilterFailure. Tracker state is left as it is in that case.
func (s *Smoother) Filter(raw Fix) (Fix, error) {
	out, err := s.filter(raw)
	if err != nil {
		Logf("location: passing fix through: %v", err)
		return raw, err
	}

	return out, nil
}

func (s *Smoother) filter(raw Fix) (Fix, error) {
	if err := validate(raw); err != nil {
		return Fix{}, &gpsmooth.FilterFailure{Err: err}
	}

	mpd := s.cfg.MetersPerDegree

	// latitude used to scale longitude noise
	refLat := raw.Latitude
	if s.cfg.SmoothedLongitudeNoise && s.slots[latAxis].state == slotTracking {
		refLat = s.slots[latAxis].tracker.Position()
	}

	vals := [numAxes]float64{raw.Latitude, raw.Longitude, raw.Altitude}
	noise := [numAxes]float64{
		raw.Accuracy / mpd,
		raw.Accuracy * math.Cos(refLat*math.Pi/180) / mpd,
		raw.Accuracy,
	}
	present := [numAxes]bool{true, true, raw.HasAltitude}

	for i := range s.slots {
		if !present[i] {
			continue
		}
		if err := s.observe(i, vals[i], math.Abs(noise[i])); err != nil {
			return Fix{}, &gpsmooth.FilterFailure{Axis: axisNames[i], Err: err}
		}
	}

	for i := range s.slots {
		if s.slots[i].state == slotTracking {
			s.slots[i].tracker.Predict(0)
		}
	}

	lat := s.slots[latAxis].tracker.Position()
	lon := s.slots[lonAxis].tracker.Position()
	acc := s.slots[latAxis].tracker.Accuracy() * mpd

	for _, v := range []struct {
		name string
		val  float64
	}{
		{axisNames[latAxis], lat},
		{axisNames[lonAxis], lon},
		{"accuracy", acc},
	} {
		if !finite(v.val) {
			return Fix{}, &gpsmooth.FilterFailure{
				Axis: v.name,
				Err:  fmt.Errorf("non-finite estimate %v: %w", v.val, gpsmooth.ErrInvalidInput),
			}
		}
	}

	tracksAlt := s.slots[altAxis].state == slotTracking
	var alt float64
	if tracksAlt {
		alt = s.slots[altAxis].tracker.Position()
		if !finite(alt) {
			return Fix{}, &gpsmooth.FilterFailure{
				Axis: axisNames[altAxis],
				Err:  fmt.Errorf("non-finite estimate %v: %w", alt, gpsmooth.ErrInvalidInput),
			}
		}
	}

	prev := raw
	if s.prev != nil {
		prev = *s.prev
	}

	out := raw
	out.Latitude = lat
	out.Longitude = lon
	out.Accuracy = acc

	if tracksAlt {
		s.window.Push(alt)
		out.Altitude = s.window.Mean()
		out.HasAltitude = true
	}

	if prev.HasSpeed {
		out.Speed, out.HasSpeed = prev.Speed, true
	}

	if prev.HasBearing {
		out.Bearing, out.HasBearing = prev.Bearing, true
	}

	out.Time = s.clk.Now()
	out.Elapsed = s.clk.Elapsed()

	s.prev = &raw

	return out, nil
}

// observe seeds the tracker of axis i on first sight and updates it afterwards
func (s *Smoother) observe(i int, val, noise float64) error {
	sl := &s.slots[i]

	switch sl.state {
	case slotEmpty:
		t, err := s.newTracker(s.cfg.TimeStep, s.q[i])
		if err != nil {
			return err
		}
		if err := t.SetState(val, 0, noise); err != nil {
			return err
		}
		sl.tracker, sl.state = t, slotTracking
	case slotTracking:
		if err := sl.tracker.Update(val, noise); err != nil {
			return err
		}
	}

	return nil
}

func validate(f Fix) error {
	if !finite(f.Latitude) || f.Latitude < -90 || f.Latitude > 90 {
		return fmt.Errorf("latitude %v: %w", f.Latitude, gpsmooth.ErrInvalidInput)
	}

	if !finite(f.Longitude) {
		return fmt.Errorf("longitude %v: %w", f.Longitude, gpsmooth.ErrInvalidInput)
	}

	if !finite(f.Accuracy) || f.Accuracy < 0 {
		return fmt.Errorf("accuracy %v: %w", f.Accuracy, gpsmooth.ErrInvalidInput)
	}

	if f.HasAltitude && !finite(f.Altitude) {
		return fmt.Errorf("altitude %v: %w", f.Altitude, gpsmooth.ErrInvalidInput)
	}

	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
