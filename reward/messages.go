// Package reward derives the winner, top liker and path-to-winner for an
// expired thread and dispenses its escrow across those roles plus a
// platform commission.
package reward

import "github.com/luxthread/rewardengine/model"

// Command is the tagged union Reward accepts.
type Command interface {
	isCommand()
}

type AddAddressFT struct{ Addr model.ActorId }
type AddAddressStorage struct{ Addr model.ActorId }
type AddAddressLogic struct{ Addr model.ActorId }
type TriggerRewardLogic struct{ ThreadId model.PostId }

func (AddAddressFT) isCommand()         {}
func (AddAddressStorage) isCommand()    {}
func (AddAddressLogic) isCommand()      {}
func (TriggerRewardLogic) isCommand()   {}

// Reply is the tagged union Reward returns.
type Reply interface {
	isReply()
}

type AddressAdded struct{}
type RewardLogicTriggered struct {
	Transfers []Transfer
}

// RewardError is the single opaque failure reply, naming which stage
// failed for logs without exposing internal diagnosis on the wire.
type RewardError struct {
	Stage  string
	Reason string
}

func (AddressAdded) isReply()         {}
func (RewardLogicTriggered) isReply() {}
func (RewardError) isReply()          {}
