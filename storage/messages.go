// Package storage is the authoritative in-memory container of threads. It
// performs no token calls of its own; it enforces admin-only mutations for
// removals and exposes both mutating commands and read-only query
// projections consumed by Logic and Reward.
package storage

import "github.com/luxthread/rewardengine/model"

// Command is the tagged union of mutating requests accepted by Storage.
type Command interface {
	isCommand()
}

type AddLogicContractAddress struct {
	Caller model.ActorId
	Addr   model.ActorId
}

type PushThread struct {
	Caller model.ActorId
	Thread *model.Thread
}

type PushReply struct {
	Caller         model.ActorId
	ThreadId       model.PostId
	Reply          *model.ThreadReply
	ReferralPostId model.PostId
}

type LikeReply struct {
	Caller   model.ActorId
	ThreadId model.PostId
	ReplyId  model.PostId
	Amount   model.Amount
}

// ReportReply flags a reply for moderation review. It is carried alongside
// the core command set as a supplemental, non-reward-affecting signal: once
// a reply's report count crosses the configured threshold it is marked
// Hidden, but likes, escrow accounting and reward derivation are untouched.
type ReportReply struct {
	Caller   model.ActorId
	ThreadId model.PostId
	ReplyId  model.PostId
}

type ChangeStatusState struct {
	Caller   model.ActorId
	ThreadId model.PostId
}

// BeginDistribution marks a thread's DistributionStarted flag, refusing
// re-entry if a distribution already began. Logic must call this before
// invoking Reward.TriggerRewardLogic, so a retried ExpireThread cannot
// re-run a partially completed payout.
type BeginDistribution struct {
	ThreadId model.PostId
}

// ResumeDistribution clears a stuck DistributionStarted flag without
// reissuing transfers, for an operator to unstick a thread left mid
// distribution by a crash between BeginDistribution and ChangeStatusState.
// It is an admin action, never auto-triggered.
type ResumeDistribution struct {
	Caller   model.ActorId
	ThreadId model.PostId
}

type RemoveThread struct {
	Caller   model.ActorId
	ThreadId model.PostId
}

type RemoveReply struct {
	Caller   model.ActorId
	ThreadId model.PostId
	ReplyId  model.PostId
}

func (AddLogicContractAddress) isCommand() {}
func (PushThread) isCommand()              {}
func (PushReply) isCommand()               {}
func (LikeReply) isCommand()               {}
func (ReportReply) isCommand()             {}
func (ChangeStatusState) isCommand()       {}
func (RemoveThread) isCommand()            {}
func (RemoveReply) isCommand()             {}
func (BeginDistribution) isCommand()       {}
func (ResumeDistribution) isCommand()      {}

// Event is the tagged union of replies Storage returns for a Command.
type Event interface {
	isEvent()
}

type LogicContractAddressAdded struct{}
type ThreadPush struct{ PostId model.PostId }
type ReplyPush struct{ PostId model.PostId }
type ReplyLiked struct{}
type ReplyReported struct{ Hidden bool }
type StatusStateChanged struct{}
type ThreadRemoved struct{}
type ReplyRemoved struct{}
type DistributionBegun struct{}
type DistributionResumed struct{}

// StorageError is the single opaque failure event Storage returns for any
// rejected command; Reason is for logs/diagnostics only, never branched on
// by callers.
type StorageError struct{ Reason string }

func (LogicContractAddressAdded) isEvent() {}
func (ThreadPush) isEvent()                {}
func (ReplyPush) isEvent()                 {}
func (ReplyLiked) isEvent()                {}
func (ReplyReported) isEvent()             {}
func (StatusStateChanged) isEvent()        {}
func (ThreadRemoved) isEvent()             {}
func (ReplyRemoved) isEvent()              {}
func (DistributionBegun) isEvent()         {}
func (DistributionResumed) isEvent()       {}
func (StorageError) isEvent()              {}

// Query is the tagged union of read-only projections Storage answers.
type Query interface {
	isQuery()
}

type AllRepliesWithLikes struct{ ThreadId model.PostId }
type GraphRep struct{ ThreadId model.PostId }
type LikeHistoryOf struct {
	ThreadId model.PostId
	ReplyId  model.PostId
}
type DistributedTokens struct{ ThreadId model.PostId }
type AllThreadsFE struct{}
type AllRepliesFE struct{ ThreadId model.PostId }

// ThreadActive reports whether a thread currently accepts mutations. Logic
// calls this before moving any tokens into escrow, so a caller acting on an
// already-expired thread is rejected without its FT transfer ever firing.
type ThreadActive struct{ ThreadId model.PostId }

func (AllRepliesWithLikes) isQuery() {}
func (GraphRep) isQuery()            {}
func (LikeHistoryOf) isQuery()       {}
func (DistributedTokens) isQuery()   {}
func (AllThreadsFE) isQuery()        {}
func (AllRepliesFE) isQuery()        {}
func (ThreadActive) isQuery()        {}

// ReplyLikeEntry is one row of AllRepliesWithLikes: a reply's identity,
// owner and current like total.
type ReplyLikeEntry struct {
	PostId model.PostId
	Owner  model.ActorId
	Likes  model.Amount
}

// ThreadHeader is the read-model summary of a thread for frontend listing.
type ThreadHeader struct {
	PostId            model.PostId
	Owner             model.ActorId
	Title             string
	Type              model.ThreadType
	Status            model.ThreadStatus
	DistributedTokens model.Amount
}

// ReplyHeader is the read-model summary of a reply for frontend listing.
type ReplyHeader struct {
	PostId model.PostId
	Owner  model.ActorId
	Title  string
	Likes  model.Amount
	Hidden bool
}

// FeaturedReply is the reply with the fewest likes on a thread (stable,
// earliest-insertion tie-break), surfaced to highlight replies that have
// not yet attracted attention.
type FeaturedReply struct {
	Reply ReplyHeader
}
