package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "Vehicle not found")))
	assert.Equal(t, Conflict, KindOf(fmt.Errorf("outer: %w", New(Conflict, "Vehicle is already booked"))))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Vehicle not found", MessageOf(New(NotFound, "Vehicle not found")))
	assert.Equal(t, "Something went wrong!", MessageOf(errors.New("pq: connection refused")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row scan failed")
	err := Wrap(Internal, "failed to load booking", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "row scan failed")
}
