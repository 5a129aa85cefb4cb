package reward

import (
	"fmt"

	"github.com/luxfi/math/set"

	"github.com/luxthread/rewardengine/model"
)

// ErrPathNotFound signals that winner is unreachable from the graph root.
// Given a well-formed graph (every non-root node reachable from the root
// by construction) this should never occur; surfacing it as an error
// rather than a panic lets the caller log and refuse the state
// transition instead of crashing the actor.
var ErrPathNotFound = fmt.Errorf("reward: winner unreachable from thread root")

// PathToWinner returns the simple path from g's root to winner, index 0
// being the root, found by breadth-first search over outgoing adjacency.
func PathToWinner(g *model.ThreadGraph, winner model.PostId) ([]model.PostId, error) {
	if g.Root == winner {
		return []model.PostId{g.Root}, nil
	}

	visited := set.NewSet[model.PostId](1)
	visited.Add(g.Root)
	parent := map[model.PostId]model.PostId{}
	queue := []model.PostId{g.Root}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(n) {
			if visited.Contains(next) {
				continue
			}
			visited.Add(next)
			parent[next] = n
			if next == winner {
				return reconstruct(parent, g.Root, winner), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, ErrPathNotFound
}

func reconstruct(parent map[model.PostId]model.PostId, root, winner model.PostId) []model.PostId {
	path := []model.PostId{winner}
	cur := winner
	for cur != root {
		cur = parent[cur]
		path = append(path, cur)
	}
	// reverse in place so index 0 is the root
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
