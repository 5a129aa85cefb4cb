package model

import "errors"

var (
	errNonPositiveLikeAmount = errors.New("like amount must be greater than zero")
	// ErrEdgeSourceMissing is returned by ThreadGraph.AddEdge when the
	// referral node does not exist, rather than silently creating the
	// edge anyway.
	ErrEdgeSourceMissing = errors.New("referral node does not exist in thread graph")
	// ErrNodeAlreadyExists is returned by ThreadGraph.AddNode for a
	// duplicate PostId; AddNode is otherwise idempotent, but duplicate
	// insertion with a different owner would desync the owner index, so
	// it is rejected rather than silently ignored.
	ErrNodeAlreadyExists = errors.New("node already exists for this post id")
)
