package location

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Fix is a single position fix.
// Optional fields are only meaningful when the matching Has flag is set.
type Fix struct {
	// Latitude in degrees
	Latitude float64
	// Longitude in degrees
	Longitude float64
	// Altitude in meters
	Altitude float64
	// HasAltitude is true if Altitude is set
	HasAltitude bool
	// Accuracy is the one-sigma horizontal accuracy in meters
	Accuracy float64
	// Speed in meters per second
	Speed float64
	// HasSpeed is true if Speed is set
	HasSpeed bool
	// Bearing in degrees
	Bearing float64
	// HasBearing is true if Bearing is set
	HasBearing bool
	// Time is the wall-clock time of the fix
	Time time.Time
	// Elapsed is the monotonic time of the fix
	Elapsed time.Duration
}

// Point returns the fix position as orb.Point
func (f Fix) Point() orb.Point {
	return orb.Point{f.Longitude, f.Latitude}
}

// Distance returns the geodesic distance in meters between two fixes
func Distance(a, b Fix) float64 {
	return geo.Distance(a.Point(), b.Point())
}
