package reward

import "github.com/luxthread/rewardengine/model"

// Transfer is one ordered payout instruction produced by Split: amount
// owed to recipient, tagged with the role it was computed for so callers
// can log or audit the breakdown.
type Transfer struct {
	Role      Role
	Recipient model.ActorId
	Amount    model.Amount
}

// Role names the three payout categories plus the platform commission.
type Role uint8

const (
	RoleWinner Role = iota
	RolePathNode
	RoleTopLiker
	RoleCommission
)

func (r Role) String() string {
	switch r {
	case RoleWinner:
		return "winner"
	case RolePathNode:
		return "path"
	case RoleTopLiker:
		return "top_liker"
	case RoleCommission:
		return "commission"
	default:
		return "unknown"
	}
}

// Split computes the ordered payout schedule for an escrow total D:
// winner reply owner gets floor(D*4/10), the top liker gets floor(D*2/10),
// each actor on path (root through winner, inclusive) gets an equal floor
// share of floor(D*4/10), and the platform commission account absorbs
// whatever remains after those floor-division payouts. Order is winner
// first, then path nodes in traversal order, then top liker, then
// commission — callers issuing transfers in this order match the
// observable effect of a failure partway through.
func Split(d model.Amount, winnerOwner model.ActorId, path []PathEntry, topLiker model.ActorId, commissionAccount model.ActorId) []Transfer {
	winnerShare := d.MulDivFloor(4, 10)
	topLikerShare := d.MulDivFloor(2, 10)
	pathPool := d.MulDivFloor(4, 10)

	out := make([]Transfer, 0, len(path)+3)
	out = append(out, Transfer{Role: RoleWinner, Recipient: winnerOwner, Amount: winnerShare})

	dispensed := winnerShare
	if len(path) > 0 {
		perNode := pathPool.DivFloor(uint64(len(path)))
		for _, p := range path {
			out = append(out, Transfer{Role: RolePathNode, Recipient: p.Owner, Amount: perNode})
			dispensed, _ = dispensed.Add(perNode)
		}
	}

	out = append(out, Transfer{Role: RoleTopLiker, Recipient: topLiker, Amount: topLikerShare})
	dispensed, _ = dispensed.Add(topLikerShare)

	commission, _ := d.Sub(dispensed)
	out = append(out, Transfer{Role: RoleCommission, Recipient: commissionAccount, Amount: commission})
	return out
}

// PathEntry is a single path node resolved to its owning actor, the unit
// Split's path argument is built from.
type PathEntry struct {
	PostId model.PostId
	Owner  model.ActorId
}
