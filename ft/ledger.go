package ft

import (
	"context"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxthread/rewardengine/actormbox"
	"github.com/luxthread/rewardengine/model"
)

// Ledger is an in-memory reference implementation of the FT request
// surface, wrapped in an actormbox.Actor so it can be wired into the same
// request/reply call sites as a real external ledger.
type Ledger struct {
	*actormbox.Actor

	balances map[model.ActorId]model.Amount
	allowed  map[allowanceKey]model.Amount
	permits  map[uint64]Permit
	nextID   uint64
}

type allowanceKey struct {
	owner, approved model.ActorId
}

// NewLedger constructs and starts a Ledger actor.
func NewLedger(logger log.Logger, mailboxSize int) *Ledger {
	l := &Ledger{
		balances: make(map[model.ActorId]model.Amount),
		allowed:  make(map[allowanceKey]model.Amount),
		permits:  make(map[uint64]Permit),
	}
	l.Actor = actormbox.New("ft", logger, mailboxSize, l.handle)
	l.Start()
	return l
}

func (l *Ledger) handle(_ context.Context, req any) (any, error) {
	switch m := req.(type) {
	case Mint:
		return l.mint(m), nil
	case Burn:
		return l.burn(m), nil
	case Transfer:
		return l.transfer(m), nil
	case Approve:
		l.allowed[allowanceKey{owner: m.Owner, approved: m.Approved}] = m.Amount
		return Ok{}, nil
	case Permit:
		return l.permit(m), nil
	default:
		return nil, fmt.Errorf("ft: unsupported request %T", req)
	}
}

func (l *Ledger) mint(m Mint) Reply {
	bal := l.balances[m.Recipient]
	sum, err := bal.Add(m.Amount)
	if err != nil {
		return Err{Reason: err.Error()}
	}
	l.balances[m.Recipient] = sum
	return Ok{}
}

func (l *Ledger) burn(m Burn) Reply {
	bal := l.balances[m.Sender]
	if bal.Cmp(m.Amount) < 0 {
		return Err{Reason: "insufficient balance"}
	}
	rem, err := bal.Sub(m.Amount)
	if err != nil {
		return Err{Reason: err.Error()}
	}
	l.balances[m.Sender] = rem
	return Ok{}
}

func (l *Ledger) transfer(m Transfer) Reply {
	from := l.balances[m.Sender]
	if from.Cmp(m.Amount) < 0 {
		return Err{Reason: "insufficient balance"}
	}
	rem, err := from.Sub(m.Amount)
	if err != nil {
		return Err{Reason: err.Error()}
	}
	to := l.balances[m.Recipient]
	sum, err := to.Add(m.Amount)
	if err != nil {
		return Err{Reason: err.Error()}
	}
	l.balances[m.Sender] = rem
	l.balances[m.Recipient] = sum
	return Ok{}
}

func (l *Ledger) permit(m Permit) Reply {
	l.nextID++
	id := m.PermitId
	if id == 0 {
		id = l.nextID
	}
	l.permits[id] = m
	return PermitId{Id: id}
}

// BalanceOf returns actor's current balance; it is exposed directly (not
// via the actor's mailbox) for test setup and read-only diagnostics that
// do not need serialization against concurrent writers.
func (l *Ledger) BalanceOf(actor model.ActorId) model.Amount {
	return l.balances[actor]
}
