package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Zero is a noise source that adds nothing.
// It fills the place of process noise for trajectories that keep their velocity.
type Zero struct {
	dim int
}

// NewZero returns zero noise of dimension dim.
// It returns error if dim is not positive.
func NewZero(dim int) (*Zero, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid noise dimension: %d", dim)
	}

	return &Zero{dim: dim}, nil
}

// Sample returns a zero vector
func (z *Zero) Sample() mat.Vector {
	return mat.NewVecDense(z.dim, nil)
}

// Mean returns a zero mean
func (z *Zero) Mean() []float64 {
	return make([]float64, z.dim)
}

// Cov returns a zero covariance
func (z *Zero) Cov() mat.Symmetric {
	return mat.NewSymDense(z.dim, nil)
}

// Reset is a no-op
func (z *Zero) Reset() error { return nil }
