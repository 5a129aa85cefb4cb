package model

// ThreadNode identifies a single vertex in a ThreadGraph: the post that
// occupies it and the actor who owns that post.
type ThreadNode struct {
	PostId PostId
	Owner  ActorId
}

// ThreadGraph is the directed acyclic graph of referrals within one thread:
// an edge points from a referral node to the reply that cites it. Nodes are
// identified by PostId alone; the owner is carried alongside purely for BFS
// convenience and is kept in sync by construction rather than denormalized
// separately.
//
// The representation is canonicalized on an adjacency map for O(1) neighbor
// lookup plus a parallel owner index.
type ThreadGraph struct {
	Root PostId

	owners    map[PostId]ActorId
	adjacency map[PostId][]PostId
	// inDegree tracks that the root has in-degree 0 and every other node
	// has in-degree exactly 1, without a full re-scan on every insert.
	inDegree map[PostId]int
}

// NewThreadGraph seeds a graph with just the root node.
func NewThreadGraph(root PostId, owner ActorId) *ThreadGraph {
	g := &ThreadGraph{
		Root:      root,
		owners:    map[PostId]ActorId{root: owner},
		adjacency: map[PostId][]PostId{root: {}},
		inDegree:  map[PostId]int{root: 0},
	}
	return g
}

// HasNode reports whether post_id has a node in the graph.
func (g *ThreadGraph) HasNode(post PostId) bool {
	_, ok := g.owners[post]
	return ok
}

// AddNode inserts node, idempotent by PostId: re-adding the same id with
// the same owner is a no-op. Re-adding the same id with a *different*
// owner would violate post_id uniqueness and is rejected.
func (g *ThreadGraph) AddNode(node ThreadNode) error {
	if existing, ok := g.owners[node.PostId]; ok {
		if existing != node.Owner {
			return ErrNodeAlreadyExists
		}
		return nil
	}
	g.owners[node.PostId] = node.Owner
	if _, ok := g.adjacency[node.PostId]; !ok {
		g.adjacency[node.PostId] = nil
	}
	if _, ok := g.inDegree[node.PostId]; !ok {
		g.inDegree[node.PostId] = 0
	}
	return nil
}

// AddEdge adds an edge from the node carrying fromPost to the node
// carrying to.PostId. A missing source node is rejected with
// ErrEdgeSourceMissing instead of silently succeeding.
func (g *ThreadGraph) AddEdge(fromPost PostId, to ThreadNode) error {
	if !g.HasNode(fromPost) {
		return ErrEdgeSourceMissing
	}
	if err := g.AddNode(to); err != nil {
		return err
	}
	g.adjacency[fromPost] = append(g.adjacency[fromPost], to.PostId)
	g.inDegree[to.PostId]++
	return nil
}

// Neighbors returns the outgoing adjacency list of post, or nil if post has
// no node.
func (g *ThreadGraph) Neighbors(post PostId) []PostId {
	return g.adjacency[post]
}

// Owner returns the actor that owns the node at post.
func (g *ThreadGraph) Owner(post PostId) (ActorId, bool) {
	o, ok := g.owners[post]
	return o, ok
}

// InDegree returns the in-degree of post, used by invariant checks.
func (g *ThreadGraph) InDegree(post PostId) int {
	return g.inDegree[post]
}

// RemoveNode removes every occurrence of the node carrying post from both
// the node set and all adjacency lists, repairing in-degrees of its former
// neighbors.
func (g *ThreadGraph) RemoveNode(post PostId) {
	if !g.HasNode(post) {
		return
	}
	for _, to := range g.adjacency[post] {
		g.inDegree[to]--
	}
	delete(g.adjacency, post)
	delete(g.owners, post)
	delete(g.inDegree, post)

	for from, list := range g.adjacency {
		filtered := list[:0]
		for _, to := range list {
			if to == post {
				continue
			}
			filtered = append(filtered, to)
		}
		g.adjacency[from] = filtered
	}
}

// Nodes returns every PostId with a node in the graph, in no particular
// order.
func (g *ThreadGraph) Nodes() []PostId {
	out := make([]PostId, 0, len(g.owners))
	for id := range g.owners {
		out = append(out, id)
	}
	return out
}
