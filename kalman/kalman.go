package kalman

import gpsmooth "github.com/milosgajdos/go-gpsmooth"

// Steady is a Kalman tracker running a time-invariant gain
type Steady interface {
	// gpsmooth.Tracker is a single axis tracker
	gpsmooth.Tracker
	// Gain returns the position and velocity gains used by the last update
	Gain() (alpha, beta float64)
	// Estimate returns the current estimate with its covariance
	Estimate() (gpsmooth.Estimate, error)
}
