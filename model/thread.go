package model

// ThreadType distinguishes a challenge thread from a plain question thread.
type ThreadType uint8

const (
	ThreadTypeChallenge ThreadType = iota
	ThreadTypeQuestion
)

func (t ThreadType) String() string {
	switch t {
	case ThreadTypeChallenge:
		return "challenge"
	case ThreadTypeQuestion:
		return "question"
	default:
		return "unknown"
	}
}

// ThreadStatus tracks whether a thread still accepts mutations.
type ThreadStatus uint8

const (
	ThreadStatusActive ThreadStatus = iota
	ThreadStatusExpired
)

func (s ThreadStatus) String() string {
	switch s {
	case ThreadStatusActive:
		return "active"
	case ThreadStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Thread wraps a root Post plus the referral graph of replies and the
// running escrow total accumulated against it.
type Thread struct {
	Post   Post
	Type   ThreadType
	Status ThreadStatus
	// DistributedTokens is the running escrow total: the sum of every
	// NewThread(1) + AddReply(1) + LikeReply(n) admitted against this
	// thread.
	DistributedTokens Amount
	Graph             *ThreadGraph
	Replies           map[PostId]*ThreadReply
	// ReplyOrder preserves insertion order for the earliest-insertion
	// tie-break rules (winner reply, top liker).
	ReplyOrder []PostId
	// DistributionStarted is set the instant Reward.TriggerRewardLogic is
	// invoked against this thread, before any transfer is attempted, so a
	// retried ExpireThread cannot re-run a partially completed
	// distribution.
	DistributionStarted bool
}

// NewThread builds a default Active thread wrapping post, seeding the
// referral graph with the root node.
func NewThread(post Post, kind ThreadType) *Thread {
	g := NewThreadGraph(post.PostId, post.Owner)
	return &Thread{
		Post:               post,
		Type:               kind,
		Status:             ThreadStatusActive,
		DistributedTokens:  Zero,
		Graph:              g,
		Replies:            make(map[PostId]*ThreadReply),
		ReplyOrder:         nil,
	}
}

// IsActive reports whether mutating actions are still accepted.
func (t *Thread) IsActive() bool {
	return t.Status == ThreadStatusActive
}

// Credit adds amt to the thread's distributed-tokens running total.
func (t *Thread) Credit(amt Amount) error {
	sum, err := t.DistributedTokens.Add(amt)
	if err != nil {
		return err
	}
	t.DistributedTokens = sum
	return nil
}
