// Package ft defines the fungible-token request/reply protocol consumed by
// Logic and Reward, plus a reference in-process ledger actor implementing
// it. The production ledger lives outside this module; the reference
// ledger here exists so the rest of the system can be exercised end to end
// without a real token service attached.
package ft

import "github.com/luxthread/rewardengine/model"

// Request is the tagged union of operations a caller may send to an FT
// ledger actor. Only Mint, Transfer and the Ok/Err replies are exercised
// by Logic and Reward; Burn, Approve and Permit are carried for
// protocol completeness and implemented by the reference ledger for
// testing.
type Request interface {
	isRequest()
}

type Mint struct {
	Recipient model.ActorId
	Amount    model.Amount
}

type Burn struct {
	Sender model.ActorId
	Amount model.Amount
}

type Transfer struct {
	Sender    model.ActorId
	Recipient model.ActorId
	Amount    model.Amount
}

type Approve struct {
	Owner    model.ActorId
	Approved model.ActorId
	Amount   model.Amount
}

// Permit carries a detached authorization: owner allows approved to move
// amount on their behalf, identified by permit_id and validated against
// signature out of band. The reference ledger accepts any signature of the
// expected length; real signature verification is a property of the
// external ledger this package stands in for.
type Permit struct {
	Owner     model.ActorId
	Approved  model.ActorId
	Amount    model.Amount
	PermitId  uint64
	Signature [64]byte
}

func (Mint) isRequest()     {}
func (Burn) isRequest()     {}
func (Transfer) isRequest() {}
func (Approve) isRequest()  {}
func (Permit) isRequest()   {}

// Reply is the tagged union of responses an FT ledger actor returns.
type Reply interface {
	isReply()
}

type Ok struct{}

type Err struct {
	Reason string
}

type Balance struct {
	Amount model.Amount
}

type PermitId struct {
	Id uint64
}

func (Ok) isReply()       {}
func (Err) isReply()      {}
func (Balance) isReply()  {}
func (PermitId) isReply() {}
