package gpsmooth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	assert := assert.New(t)

	err := NewDomainError("cubic.Solve", KindDegenerate, "a = %v", 0.0)
	assert.Error(err)
	assert.Equal("cubic.Solve: degenerate: a = 0", err.Error())
	assert.True(errors.Is(err, ErrDomain))
	assert.False(errors.Is(err, ErrFilter))

	wrapped := fmt.Errorf("steady state: %w", err)
	var de *DomainError
	assert.True(errors.As(wrapped, &de))
	assert.Equal(KindDegenerate, de.Kind)
	assert.True(errors.Is(wrapped, ErrDomain))
}

func TestDomainKindString(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		kind DomainKind
		str  string
	}{
		{KindDegenerate, "degenerate"},
		{KindParameter, "parameter"},
		{KindNoPositiveRoot, "no positive root"},
		{DomainKind(42), "DomainKind(42)"},
	} {
		assert.Equal(test.str, test.kind.String())
	}
}

func TestFilterFailure(t *testing.T) {
	assert := assert.New(t)

	cause := fmt.Errorf("measurement NaN: %w", ErrInvalidInput)
	f := &FilterFailure{Axis: "latitude", Err: cause}
	assert.Equal("filter failure on latitude: measurement NaN: invalid input", f.Error())
	assert.True(errors.Is(f, ErrFilter))
	assert.True(errors.Is(f, ErrInvalidInput))
	assert.False(errors.Is(f, ErrDomain))

	f = &FilterFailure{Err: cause}
	assert.Equal("filter failure: measurement NaN: invalid input", f.Error())
}
