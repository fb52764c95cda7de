// Package sim generates synthetic tracks for tuning and evaluating the smoother.
package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System defines a linear model of a plant using
// traditional matrices of modern control theory.
//
// It contains the System (A), input (B) and Observation/Output (C) matrices.
type System struct {
	// System/State matrix A
	A *mat.Dense
	// Control/Input Matrix B
	B *mat.Dense
	// Observation/Output Matrix C
	C *mat.Dense
}

// SystemDims returns internal state length (nx), input vector length (nu)
// and external/observable/output state length (ny).
func (s System) SystemDims() (nx, nu, ny int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}
	return nx, nu, ny
}

// Observe returns external/observable state given internal state x.
// wn is added to the output as a noise vector.
func (s System) Observe(x, wn mat.Vector) (mat.Vector, error) {
	nx, _, ny := s.SystemDims()
	if s.C == nil {
		return nil, fmt.Errorf("output matrix not defined")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if wn != nil && wn.Len() != ny {
		return nil, fmt.Errorf("invalid output noise vector")
	}

	out := mat.NewVecDense(ny, nil)
	out.MulVec(s.C, x)

	if wn != nil {
		out.AddVec(out, wn)
	}

	return out, nil
}
