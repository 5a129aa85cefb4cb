package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorKeepsFirstError(t *testing.T) {
	var c Collector
	first := errors.New("first")
	second := errors.New("second")

	c.Add(nil, first)
	c.Add(second)

	require.True(t, c.Errored())
	require.Equal(t, first, c.Err)
}

func TestCollectorNoErrors(t *testing.T) {
	var c Collector
	c.Add(nil, nil)
	require.False(t, c.Errored())
}
