package reward

import (
	"context"
	"fmt"

	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxthread/rewardengine/actormbox"
	"github.com/luxthread/rewardengine/ft"
	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/storage"
)

// Reward derives winners for an expired thread and dispenses its escrow.
// It holds addresses for the FT ledger and Storage actors it depends on;
// each must be configured via AddAddressFT/AddAddressStorage before the
// first TriggerRewardLogic.
type Reward struct {
	*actormbox.Actor

	admin             model.ActorId
	commissionAccount model.ActorId
	escrowAccount     model.ActorId

	ftAddr      model.ActorId
	storageAddr model.ActorId
	logicAddr   model.ActorId

	ft      ft.Sender
	storage *storage.Storage

	triggered metric.Counter
	failed    metric.Counter
	dispensed metric.Counter
}

// New constructs and starts a Reward actor. escrowAccount is the identity
// on the FT ledger that holds every thread's accumulated escrow;
// commissionAccount is the platform account that receives the remainder
// of every split.
func New(admin, escrowAccount, commissionAccount model.ActorId, ftLedger ft.Sender, store *storage.Storage, logger log.Logger, mailboxSize int) *Reward {
	r := &Reward{
		admin:             admin,
		commissionAccount: commissionAccount,
		escrowAccount:     escrowAccount,
		ft:                ftLedger,
		storage:           store,
		triggered:         metric.NewCounter(metric.CounterOpts{Name: "reward_triggered_total", Help: "reward distributions attempted"}),
		failed:            metric.NewCounter(metric.CounterOpts{Name: "reward_failed_total", Help: "reward distributions that aborted"}),
		dispensed:         metric.NewCounter(metric.CounterOpts{Name: "reward_dispensed_tokens_total", Help: "total tokens dispensed across all distributions"}),
	}
	r.Actor = actormbox.New("reward", logger, mailboxSize, r.handle)
	r.Start()
	return r
}

func (r *Reward) handle(ctx context.Context, req any) (any, error) {
	cmd, ok := req.(Command)
	if !ok {
		return nil, fmt.Errorf("reward: unsupported request %T", req)
	}
	switch c := cmd.(type) {
	case AddAddressFT:
		r.ftAddr = c.Addr
		return AddressAdded{}, nil
	case AddAddressStorage:
		r.storageAddr = c.Addr
		return AddressAdded{}, nil
	case AddAddressLogic:
		r.logicAddr = c.Addr
		return AddressAdded{}, nil
	case TriggerRewardLogic:
		return r.trigger(ctx, c.ThreadId), nil
	default:
		return nil, fmt.Errorf("reward: unsupported command %T", cmd)
	}
}

func (r *Reward) trigger(ctx context.Context, threadId model.PostId) Reply {
	if r.ftAddr.IsZero() || r.storageAddr.IsZero() {
		return RewardError{Stage: "config", Reason: "ft or storage address not configured"}
	}
	r.triggered.Inc()

	d, err := r.readAny(ctx, storage.DistributedTokens{ThreadId: threadId})
	if err != nil {
		return r.abort("distributed_tokens", err)
	}
	D := d.(model.Amount)

	repliesAny, err := r.readAny(ctx, storage.AllRepliesWithLikes{ThreadId: threadId})
	if err != nil {
		return r.abort("all_replies_with_likes", err)
	}
	replies := repliesAny.([]storage.ReplyLikeEntry)

	winner, found := argmaxLikes(replies)
	if !found {
		return r.abort("winner", fmt.Errorf("thread %d has no replies", threadId))
	}

	historyAny, err := r.readAny(ctx, storage.LikeHistoryOf{ThreadId: threadId, ReplyId: winner.PostId})
	if err != nil {
		return r.abort("like_history", err)
	}
	history := historyAny.([]model.LikeHistoryEntry)
	topLiker, hasLiker := argmaxLikeHistory(history)
	if !hasLiker {
		topLiker = winner.Owner
	}

	graphAny, err := r.readAny(ctx, storage.GraphRep{ThreadId: threadId})
	if err != nil {
		return r.abort("graph_rep", err)
	}
	g := graphAny.(*model.ThreadGraph)

	pathIds, err := PathToWinner(g, winner.PostId)
	if err != nil {
		return r.abort("path_to_winner", err)
	}
	path := make([]PathEntry, 0, len(pathIds))
	for _, id := range pathIds {
		owner, _ := g.Owner(id)
		path = append(path, PathEntry{PostId: id, Owner: owner})
	}

	transfers := Split(D, winner.Owner, path, topLiker, r.commissionAccount)
	for _, tr := range transfers {
		if tr.Amount.IsZero() {
			continue
		}
		reply, err := r.ft.Send(ctx, ft.Transfer{Sender: r.escrowAccount, Recipient: tr.Recipient, Amount: tr.Amount})
		if err != nil {
			return r.abort(fmt.Sprintf("transfer:%s", tr.Role), err)
		}
		if _, isErr := reply.(ft.Err); isErr {
			return r.abort(fmt.Sprintf("transfer:%s", tr.Role), fmt.Errorf("ft rejected transfer: %v", reply))
		}
		r.dispensed.Add(float64(tr.Amount.Uint64()))
	}

	return RewardLogicTriggered{Transfers: transfers}
}

func (r *Reward) readAny(ctx context.Context, q storage.Query) (any, error) {
	return r.storage.Send(ctx, q)
}

func (r *Reward) abort(stage string, err error) Reply {
	r.failed.Inc()
	return RewardError{Stage: stage, Reason: err.Error()}
}

func argmaxLikes(entries []storage.ReplyLikeEntry) (storage.ReplyLikeEntry, bool) {
	var best storage.ReplyLikeEntry
	found := false
	for _, e := range entries {
		if !found || e.Likes.Cmp(best.Likes) > 0 {
			best, found = e, true
		}
	}
	return best, found
}

func argmaxLikeHistory(history []model.LikeHistoryEntry) (model.ActorId, bool) {
	var best model.ActorId
	var bestAmt model.Amount
	found := false
	for _, e := range history {
		if !found || e.Likes.Cmp(bestAmt) > 0 {
			best, bestAmt, found = e.Actor, e.Likes, true
		}
	}
	return best, found
}
