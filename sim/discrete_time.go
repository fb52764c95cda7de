package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Discrete is a basic model of a linear, discrete-time, dynamical system
type Discrete struct {
	System
}

// NewDiscrete creates a linear discrete-time model based on the control theory equations.
//
//	x[n+1] = A*x[n] + B*u[n]
//	y[n] = C*x[n]
func NewDiscrete(A, B, C *mat.Dense) (*Discrete, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	if r, c := A.Dims(); r != c {
		return nil, fmt.Errorf("system matrix must be square: %dx%d", r, c)
	}

	return &Discrete{System: System{A: A, B: B, C: C}}, nil
}

// ConstantVelocity returns a discrete model of a point moving in east, north
// and up directions with time step dt.
//
// State is [east, north, up, vEast, vNorth, vUp] in meters and meters per second,
// input is acceleration along the three axes and output is the position.
func ConstantVelocity(dt float64) (*Discrete, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	A := mat.NewDense(6, 6, nil)
	B := mat.NewDense(6, 3, nil)
	C := mat.NewDense(3, 6, nil)
	for i := 0; i < 3; i++ {
		A.Set(i, i, 1)
		A.Set(i+3, i+3, 1)
		A.Set(i, i+3, dt)

		B.Set(i, i, dt*dt/2)
		B.Set(i+3, i, dt)

		C.Set(i, i, 1)
	}

	return NewDiscrete(A, B, C)
}

// Propagate returns the next internal state x of a linear,
// discrete-time system given an input vector u and process noise wd.
// Both u and wd may be nil.
func (d *Discrete) Propagate(x, u, wd mat.Vector) (mat.Vector, error) {
	nx, nu, _ := d.SystemDims()
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if wd != nil && wd.Len() != nx {
		return nil, fmt.Errorf("invalid process noise vector")
	}

	out := mat.NewVecDense(nx, nil)
	out.MulVec(d.A, x)

	if u != nil && d.B != nil {
		outU := mat.NewVecDense(nx, nil)
		outU.MulVec(d.B, u)
		out.AddVec(out, outU)
	}

	if wd != nil {
		out.AddVec(out, wd)
	}

	return out, nil
}
