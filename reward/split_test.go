package reward

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/model"
)

func TestSplitSingleReplyWorkedExample(t *testing.T) {
	a, b, c, commission := actor(1), actor(2), actor(3), actor(9)
	d := model.NewAmount(5)
	path := []PathEntry{{PostId: 1, Owner: a}, {PostId: 2, Owner: b}}

	out := Split(d, b, path, c, commission)

	require.Len(t, out, 5)
	require.Equal(t, RoleWinner, out[0].Role)
	require.Equal(t, 0, out[0].Amount.Cmp(model.NewAmount(2)))

	require.Equal(t, RolePathNode, out[1].Role)
	require.Equal(t, a, out[1].Recipient)
	require.Equal(t, 0, out[1].Amount.Cmp(model.NewAmount(1)))

	require.Equal(t, RolePathNode, out[2].Role)
	require.Equal(t, b, out[2].Recipient)
	require.Equal(t, 0, out[2].Amount.Cmp(model.NewAmount(1)))

	require.Equal(t, RoleTopLiker, out[3].Role)
	require.Equal(t, 0, out[3].Amount.Cmp(model.NewAmount(1)))

	require.Equal(t, RoleCommission, out[4].Role)
	require.Equal(t, 0, out[4].Amount.Cmp(model.NewAmount(0)))
}

func TestSplitChainOfThreeRemainderGoesToCommission(t *testing.T) {
	a, b, c, commission := actor(1), actor(2), actor(3), actor(9)
	d := model.NewAmount(10)
	path := []PathEntry{{PostId: 1, Owner: a}, {PostId: 2, Owner: b}, {PostId: 3, Owner: c}}

	out := Split(d, c, path, a, commission)

	total := model.Zero
	for _, tr := range out {
		var err error
		total, err = total.Add(tr.Amount)
		require.NoError(t, err)
	}
	require.Equal(t, 0, total.Cmp(d))
}

func TestSplitZeroEscrow(t *testing.T) {
	a, commission := actor(1), actor(9)
	path := []PathEntry{{PostId: 1, Owner: a}}

	out := Split(model.Zero, a, path, a, commission)
	for _, tr := range out {
		require.True(t, tr.Amount.IsZero())
	}
}
