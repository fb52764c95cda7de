package track

import (
	"errors"
	"testing"
	"time"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/stretchr/testify/assert"
)

func TestSpeedFromCadence(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		steps int
		d     time.Duration
		speed float64
	}{
		{0, time.Minute, 0},
		// walking pace: the model root is negative or tiny
		{29, time.Minute, 0},
		{60, time.Minute, 0.36},
		{120, time.Minute, 1.35},
		{180, time.Minute, 3.52},
		{1800, 10 * time.Minute, 3.52},
		{120, 30 * time.Second, 5.43},
	} {
		speed, err := SpeedFromCadence(test.steps, test.d)
		assert.NoError(err)
		assert.InDelta(test.speed, speed, 1e-9, "%d steps in %v", test.steps, test.d)
	}

	for _, test := range []struct {
		steps int
		d     time.Duration
	}{
		{-1, time.Minute},
		{100, 0},
		{100, -time.Second},
	} {
		_, err := SpeedFromCadence(test.steps, test.d)
		assert.True(errors.Is(err, gpsmooth.ErrInvalidInput))
	}
}
