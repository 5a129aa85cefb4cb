// Package logic dispatches user-facing actions, sequencing fungible-token
// escrow with Storage writes and triggering reward distribution on thread
// expiration.
package logic

import "github.com/luxthread/rewardengine/model"

// Request is the tagged union of user actions Logic accepts.
type Request interface {
	isRequest()
}

type AddAddressFT struct{ Addr model.ActorId }
type AddAddressStorage struct{ Addr model.ActorId }
type AddAddressRewardLogic struct{ Addr model.ActorId }

type NewThread struct {
	Caller     model.ActorId
	Title      string
	Content    string
	PhotoUrl   string
	ThreadType model.ThreadType
}

type AddReply struct {
	Caller         model.ActorId
	ThreadId       model.PostId
	Title          string
	Content        string
	PhotoUrl       string
	ReferralPostId model.PostId
}

type LikeReply struct {
	Caller   model.ActorId
	ThreadId model.PostId
	ReplyId  model.PostId
	Amount   model.Amount
}

type ReportReply struct {
	Caller   model.ActorId
	ThreadId model.PostId
	ReplyId  model.PostId
}

type ExpireThread struct{ ThreadId model.PostId }

func (AddAddressFT) isRequest()         {}
func (AddAddressStorage) isRequest()    {}
func (AddAddressRewardLogic) isRequest() {}
func (NewThread) isRequest()            {}
func (AddReply) isRequest()             {}
func (LikeReply) isRequest()            {}
func (ReportReply) isRequest()          {}
func (ExpireThread) isRequest()         {}

// Reply is the tagged union of responses Logic returns.
type Reply interface {
	isReply()
}

type FTAddressAdded struct{}
type StorageAddressAdded struct{}
type RewardLogicAddressAdded struct{}
type NewThreadCreated struct{ PostId model.PostId }
type ReplyAdded struct {
	By       model.ActorId
	Id       model.PostId
	OnThread model.PostId
}
type ReplyLiked struct{}
type ReplyReported struct{ Hidden bool }
type ThreadExpired struct{}

// LogicError is the single opaque failure reply Logic surfaces to
// callers for any failed action; Reason is diagnostic-only.
type LogicError struct {
	Stage  string
	Reason string
}

func (FTAddressAdded) isReply()          {}
func (StorageAddressAdded) isReply()     {}
func (RewardLogicAddressAdded) isReply() {}
func (NewThreadCreated) isReply()        {}
func (ReplyAdded) isReply()              {}
func (ReplyLiked) isReply()              {}
func (ReplyReported) isReply()           {}
func (ThreadExpired) isReply()           {}
func (LogicError) isReply()              {}
