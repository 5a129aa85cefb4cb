package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountMulDivFloor(t *testing.T) {
	d := NewAmount(5)
	require.Equal(t, uint64(2), d.MulDivFloor(4, 10).Uint64())
	require.Equal(t, uint64(1), d.MulDivFloor(2, 10).Uint64())
}

func TestAmountDivFloorRounds(t *testing.T) {
	d := NewAmount(2)
	require.Equal(t, uint64(1), d.DivFloor(2).Uint64())
	d = NewAmount(5)
	require.Equal(t, uint64(1), d.DivFloor(3).Uint64())
}

func TestAmountSubUnderflow(t *testing.T) {
	_, err := NewAmount(1).Sub(NewAmount(2))
	require.Error(t, err)
}

func TestAmountAddOverflowRejected(t *testing.T) {
	max, err := AmountFromBig(maxU128)
	require.NoError(t, err)
	_, err = max.Add(NewAmount(1))
	require.Error(t, err)
}
