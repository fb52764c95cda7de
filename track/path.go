package track

import (
	"time"

	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/paulmach/orb/geo"
)

const (
	// Tolerance is the detour in meters below which a middle point is
	// considered to lie on the straight path between its neighbours
	Tolerance = 0.1
	// DefaultMinInterval is the minimum time between two recorded points
	DefaultMinInterval = 3 * time.Second
	// DefaultMaxSegment is the segment length in meters above which a point is always kept
	DefaultMaxSegment = 1000.0
)

// ShouldAdd returns true if p1 deviates from the straight path between p0 and p2,
// i.e. if going through p1 is longer than going straight by more than Tolerance.
func ShouldAdd(p0, p1, p2 location.Fix) bool {
	d01 := geo.DistanceHaversine(p0.Point(), p1.Point())
	d12 := geo.DistanceHaversine(p1.Point(), p2.Point())
	d02 := geo.DistanceHaversine(p0.Point(), p2.Point())

	return d01+d12 > d02+Tolerance
}

// Length returns the haversine length of the track in meters
func Length(fixes []location.Fix) float64 {
	var l float64
	for i := 1; i < len(fixes); i++ {
		l += geo.DistanceHaversine(fixes[i-1].Point(), fixes[i].Point())
	}

	return l
}

// Action is what Path.Add did with a fix
type Action int

const (
	// Skipped means the fix arrived too soon after the last point
	Skipped Action = iota
	// Appended means the fix was added as a new point
	Appended
	// Replaced means the fix replaced the last point on a straight stretch
	Replaced
)

// String implements the Stringer interface.
func (a Action) String() string {
	switch a {
	case Skipped:
		return "skipped"
	case Appended:
		return "appended"
	case Replaced:
		return "replaced"
	}
	return "unknown"
}

// Record is a recorded point with the totals of the track up to it
type Record struct {
	// Fix is the recorded fix
	Fix location.Fix
	// Distance is the travelled distance in meters since the first point
	Distance float64
	// Duration is the time since the first point
	Duration time.Duration
	// Speed is the speed in meters per second over the last segment
	Speed float64
}

// Path records a compact track: points on a straight stretch are merged
// by moving the last point forward instead of appending a new one.
type Path struct {
	// MinInterval is the minimum time between recorded points
	MinInterval time.Duration
	// MaxSegment is the segment length in meters above which a point is always appended
	MaxSegment float64
	records    []Record
}

// NewPath creates new Path with default settings and returns it
func NewPath() *Path {
	return &Path{
		MinInterval: DefaultMinInterval,
		MaxSegment:  DefaultMaxSegment,
	}
}

// Add records fix and returns what was done with it
func (p *Path) Add(fix location.Fix) Action {
	n := len(p.records)
	if n == 0 {
		p.records = append(p.records, Record{Fix: fix})
		return Appended
	}

	last := p.records[n-1]
	dt := fix.Time.Sub(last.Fix.Time)
	if dt < p.MinInterval {
		return Skipped
	}

	delta := geo.DistanceHaversine(last.Fix.Point(), fix.Point())

	rec := Record{
		Fix:      fix,
		Distance: last.Distance + delta,
		Duration: last.Duration + dt,
	}
	if dt > 0 {
		rec.Speed = delta / dt.Seconds()
	}

	if n < 2 || delta >= p.MaxSegment || ShouldAdd(p.records[n-2].Fix, last.Fix, fix) {
		p.records = append(p.records, rec)
		return Appended
	}

	p.records[n-1] = rec

	return Replaced
}

// Points returns a copy of recorded points
func (p *Path) Points() []location.Fix {
	points := make([]location.Fix, len(p.records))
	for i, r := range p.records {
		points[i] = r.Fix
	}

	return points
}

// Records returns a copy of recorded points with their totals
func (p *Path) Records() []Record {
	records := make([]Record, len(p.records))
	copy(records, p.records)

	return records
}

// Distance returns the travelled distance in meters including merged points
func (p *Path) Distance() float64 {
	if len(p.records) == 0 {
		return 0
	}

	return p.records[len(p.records)-1].Distance
}

// Duration returns the time between the first and the last recorded point
func (p *Path) Duration() time.Duration {
	if len(p.records) == 0 {
		return 0
	}

	return p.records[len(p.records)-1].Duration
}
