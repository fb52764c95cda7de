package track

import (
	"fmt"
	"math"
	"time"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/cubic"
)

// running model relating speed v in m/s to step cadence c in steps per minute:
//
//	c/120 = 0.0189v^3 - 0.1868v^2 + 0.7816v + 0.2398
const (
	cadenceA = 0.0189
	cadenceB = -0.1868
	cadenceC = 0.7816
	cadenceD = 0.2398
)

// SpeedFromCadence estimates running speed in m/s from the number of steps
// taken over d. The result is rounded to centimeters per second and is zero
// for cadences too low to be running.
// It returns error if steps is negative or d is not positive.
func SpeedFromCadence(steps int, d time.Duration) (float64, error) {
	if steps < 0 || d <= 0 {
		return 0, fmt.Errorf("cadence %d steps in %v: %w", steps, d, gpsmooth.ErrInvalidInput)
	}

	cadence := float64(steps) / d.Minutes()

	roots, err := cubic.Solve(cadenceA, cadenceB, cadenceC, cadenceD-cadence/120)
	if err != nil {
		return 0, fmt.Errorf("cadence speed: %w", err)
	}

	if roots.X1 < 0 {
		return 0, nil
	}

	return math.Round(roots.X1*100) / 100, nil
}
