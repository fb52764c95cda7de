package location

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	assert := assert.New(t)

	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	s, err := New(DefaultConfig(), nil)
	assert.NoError(err)
	_, err = s.Filter(Fix{Latitude: 100})
	assert.Error(err)
	assert.Len(got, 1)
	assert.Contains(got[0], "latitude 100")

	SetLogger(nil)
	assert.NotPanics(func() { Logf("test %d", 1) })
}
