package location

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestFixPoint(t *testing.T) {
	assert := assert.New(t)

	f := Fix{Latitude: 45.5, Longitude: 9.25}
	assert.Equal(orb.Point{9.25, 45.5}, f.Point())
	assert.Equal(45.5, f.Point().Lat())
	assert.Equal(9.25, f.Point().Lon())
}

func TestDistance(t *testing.T) {
	assert := assert.New(t)

	a := Fix{Latitude: 0, Longitude: 0}
	b := Fix{Latitude: 1, Longitude: 0}

	assert.Equal(0.0, Distance(a, a))
	// one degree along a meridian
	assert.InDelta(111319.49, Distance(a, b), 0.01)
	assert.InDelta(Distance(a, b), Distance(b, a), 1e-9)
}
