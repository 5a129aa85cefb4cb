package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func actor(b byte) ActorId {
	var a ActorId
	a[0] = b
	return a
}

func TestThreadGraphRootHasZeroInDegree(t *testing.T) {
	g := NewThreadGraph(1, actor(1))
	require.Equal(t, 0, g.InDegree(1))
	require.True(t, g.HasNode(1))
}

func TestThreadGraphAddEdgeRejectsMissingSource(t *testing.T) {
	g := NewThreadGraph(1, actor(1))
	err := g.AddEdge(99, ThreadNode{PostId: 2, Owner: actor(2)})
	require.ErrorIs(t, err, ErrEdgeSourceMissing)
	require.False(t, g.HasNode(2))
}

func TestThreadGraphChainInDegrees(t *testing.T) {
	g := NewThreadGraph(1, actor(1))
	require.NoError(t, g.AddEdge(1, ThreadNode{PostId: 2, Owner: actor(2)}))
	require.NoError(t, g.AddEdge(2, ThreadNode{PostId: 3, Owner: actor(3)}))

	require.Equal(t, 0, g.InDegree(1))
	require.Equal(t, 1, g.InDegree(2))
	require.Equal(t, 1, g.InDegree(3))
	require.Equal(t, []PostId{2}, g.Neighbors(1))
	require.Equal(t, []PostId{3}, g.Neighbors(2))
}

func TestThreadGraphAddNodeIdempotent(t *testing.T) {
	g := NewThreadGraph(1, actor(1))
	require.NoError(t, g.AddNode(ThreadNode{PostId: 1, Owner: actor(1)}))
	err := g.AddNode(ThreadNode{PostId: 1, Owner: actor(2)})
	require.ErrorIs(t, err, ErrNodeAlreadyExists)
}

func TestThreadGraphRemoveNodePrunesAdjacency(t *testing.T) {
	g := NewThreadGraph(1, actor(1))
	require.NoError(t, g.AddEdge(1, ThreadNode{PostId: 2, Owner: actor(2)}))
	require.NoError(t, g.AddEdge(2, ThreadNode{PostId: 3, Owner: actor(3)}))

	g.RemoveNode(2)

	require.False(t, g.HasNode(2))
	require.NotContains(t, g.Neighbors(1), PostId(2))
	require.Equal(t, 0, g.InDegree(3))
}
