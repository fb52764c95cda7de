package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/milosgajdos/go-gpsmooth/track"
	"github.com/stretchr/testify/assert"
)

var fixes []location.Fix

func setup() {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	fixes = []location.Fix{
		{Latitude: 45, Longitude: 9, Accuracy: 5, Time: start},
		{Latitude: 45.0001, Longitude: 9.0001, Accuracy: 4, Time: start.Add(time.Second)},
	}
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

// closer records writes and fails to close with err
type closer struct {
	bytes.Buffer
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestWriteTo(t *testing.T) {
	assert := assert.New(t)

	w := &closer{}
	assert.NoError(writeTo(w, fixes))
	assert.True(w.closed)

	got, err := track.Decode(&w.Buffer)
	assert.NoError(err)
	assert.Len(got, len(fixes))

	errFlush := errors.New("disk full")
	w = &closer{err: errFlush}
	err = writeTo(w, fixes)
	assert.True(w.closed)
	assert.True(errors.Is(err, errFlush))
}

func TestWriteFixes(t *testing.T) {
	assert := assert.New(t)

	outPath = filepath.Join(t.TempDir(), "out.geojson")
	defer func() { outPath = "" }()

	assert.NoError(writeFixes(fixes))

	f, err := os.Open(outPath)
	assert.NoError(err)
	defer f.Close()

	got, err := track.Decode(f)
	assert.NoError(err)
	assert.Len(got, len(fixes))
	assert.InDelta(fixes[1].Latitude, got[1].Latitude, 1e-12)

	outPath = filepath.Join(t.TempDir(), "missing", "out.geojson")
	assert.Error(writeFixes(fixes))
}
