package reward

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/model"
)

func actor(b byte) model.ActorId {
	var a model.ActorId
	a[0] = b
	return a
}

func TestPathToWinnerSingleReply(t *testing.T) {
	g := model.NewThreadGraph(1, actor(1))
	require.NoError(t, g.AddEdge(1, model.ThreadNode{PostId: 2, Owner: actor(2)}))

	path, err := PathToWinner(g, 2)
	require.NoError(t, err)
	require.Equal(t, []model.PostId{1, 2}, path)
}

func TestPathToWinnerChain(t *testing.T) {
	g := model.NewThreadGraph(1, actor(1))
	require.NoError(t, g.AddEdge(1, model.ThreadNode{PostId: 2, Owner: actor(2)}))
	require.NoError(t, g.AddEdge(2, model.ThreadNode{PostId: 3, Owner: actor(3)}))

	path, err := PathToWinner(g, 3)
	require.NoError(t, err)
	require.Equal(t, []model.PostId{1, 2, 3}, path)
}

func TestPathToWinnerRootIsWinner(t *testing.T) {
	g := model.NewThreadGraph(1, actor(1))
	path, err := PathToWinner(g, 1)
	require.NoError(t, err)
	require.Equal(t, []model.PostId{1}, path)
}

func TestPathToWinnerUnreachable(t *testing.T) {
	g := model.NewThreadGraph(1, actor(1))
	_, err := PathToWinner(g, 99)
	require.ErrorIs(t, err, ErrPathNotFound)
}
