package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Base is an axis estimate: position and velocity with their covariance
type Base struct {
	// val holds position and velocity
	val *mat.VecDense
	// cov is estimate covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given position and velocity with zero covariance
func NewBase(position, velocity float64) *Base {
	return &Base{
		val: mat.NewVecDense(2, []float64{position, velocity}),
		cov: mat.NewSymDense(2, nil),
	}
}

// NewBaseWithCov returns base estimate given position, velocity and covariance.
// It returns error if cov is not 2x2 or its position variance is negative or not a number.
func NewBaseWithCov(position, velocity float64, cov mat.Symmetric) (*Base, error) {
	if cov == nil {
		return nil, fmt.Errorf("invalid covariance: %v", cov)
	}

	if n := cov.SymmetricDim(); n != 2 {
		return nil, fmt.Errorf("invalid covariance dimensions: %d x %d", n, n)
	}

	if v := cov.At(0, 0); v < 0 || math.IsNaN(v) {
		return nil, fmt.Errorf("invalid position variance: %v", v)
	}

	c := mat.NewSymDense(2, nil)
	c.CopySym(cov)

	return &Base{
		val: mat.NewVecDense(2, []float64{position, velocity}),
		cov: c,
	}, nil
}

// Val returns estimated value: position and velocity
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// Position returns estimated position
func (b *Base) Position() float64 {
	return b.val.AtVec(0)
}

// Velocity returns estimated velocity
func (b *Base) Velocity() float64 {
	return b.val.AtVec(1)
}

// StdDev returns the standard deviation of the position estimate
func (b *Base) StdDev() float64 {
	return math.Sqrt(b.cov.At(0, 0))
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Base{\nVal=%v\nCov=%v\n}",
		b.val.RawVector().Data,
		mat.Formatted(b.cov, mat.Prefix("    "), mat.Squeeze()))
}
