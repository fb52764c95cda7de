package gpsmooth

import "gonum.org/v1/gonum/mat"

// Tracker tracks position and velocity along a single axis.
type Tracker interface {
	// SetState seeds the tracker with position, velocity and position noise
	SetState(position, velocity, noise float64) error
	// Predict advances the estimate one time step under acceleration
	Predict(acceleration float64)
	// Update corrects the estimate with a measurement and its noise
	Update(measurement, noise float64) error
	// Position returns the current position estimate
	Position() float64
	// Accuracy returns the standard deviation of the position estimate
	Accuracy() float64
}

// Estimate is an axis tracker estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is a source of measurement noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}
