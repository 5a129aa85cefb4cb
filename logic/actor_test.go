package logic

import (
	"context"
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/ft"
	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/reward"
	"github.com/luxthread/rewardengine/storage"
)

func actor(b byte) model.ActorId {
	var a model.ActorId
	a[0] = b
	return a
}

type harness struct {
	logic   *Logic
	ft      *ft.Ledger
	storage *storage.Storage
	reward  *reward.Reward
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	admin, escrow, commission := actor(1), actor(2), actor(3)

	ledger := ft.NewLedger(log.Root(), 8)
	store := storage.New(admin, log.Root(), 8)
	r := reward.New(admin, escrow, commission, ledger, store, log.Root(), 8)

	l := New(Config{
		Admin:         admin,
		EscrowAccount: escrow,
		FT:            ledger,
		Storage:       store,
		Reward:        r,
		Sequencer:     model.NewSequencer(1),
		Clock:         func() model.Timestamp { return 1000 },
		Logger:        log.Root(),
		MailboxSize:   8,
	})

	ctx := context.Background()
	_, err := l.Send(ctx, AddAddressFT{Addr: actor(100)})
	require.NoError(t, err)
	_, err = l.Send(ctx, AddAddressStorage{Addr: actor(101)})
	require.NoError(t, err)
	_, err = l.Send(ctx, AddAddressRewardLogic{Addr: actor(102)})
	require.NoError(t, err)

	t.Cleanup(func() {
		l.Stop()
		r.Stop()
		store.Stop()
		ledger.Stop()
	})
	return &harness{logic: l, ft: ledger, storage: store, reward: r}
}

func TestSingleReplyEndToEndExpiration(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a, b, c := actor(10), actor(11), actor(12)

	reply, err := h.logic.Send(ctx, NewThread{Caller: a, Title: "t", ThreadType: model.ThreadTypeChallenge})
	require.NoError(t, err)
	created, ok := reply.(NewThreadCreated)
	require.True(t, ok, "%#v", reply)
	threadId := created.PostId

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: b, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: b, ThreadId: threadId, Title: "r", ReferralPostId: threadId})
	require.NoError(t, err)
	added, ok := reply.(ReplyAdded)
	require.True(t, ok, "%#v", reply)
	replyId := added.Id

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: c, Amount: model.NewAmount(3)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, LikeReply{Caller: c, ThreadId: threadId, ReplyId: replyId, Amount: model.NewAmount(3)})
	require.NoError(t, err)
	require.Equal(t, ReplyLiked{}, reply)

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	require.Equal(t, ThreadExpired{}, reply, "%#v", reply)

	require.Equal(t, 0, h.ft.BalanceOf(b).Cmp(model.NewAmount(3)))
}

func TestExpiredThreadRejectsMutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a, b := actor(10), actor(11)

	reply, err := h.logic.Send(ctx, NewThread{Caller: a, Title: "t", ThreadType: model.ThreadTypeQuestion})
	require.NoError(t, err)
	threadId := reply.(NewThreadCreated).PostId

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: b, Amount: model.NewAmount(5)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: b, ThreadId: threadId, Title: "r", ReferralPostId: threadId})
	require.NoError(t, err)
	replyId := reply.(ReplyAdded).Id

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	require.Equal(t, ThreadExpired{}, reply)

	balanceBefore := h.ft.BalanceOf(b)

	reply, err = h.logic.Send(ctx, AddReply{Caller: b, ThreadId: threadId, Title: "late", ReferralPostId: threadId})
	require.NoError(t, err)
	_, isErr := reply.(LogicError)
	require.True(t, isErr)
	require.Equal(t, 0, balanceBefore.Cmp(h.ft.BalanceOf(b)), "rejected AddReply on an expired thread must not move FT")

	reply, err = h.logic.Send(ctx, LikeReply{Caller: actor(13), ThreadId: threadId, ReplyId: replyId, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	_, isErr = reply.(LogicError)
	require.True(t, isErr)
	require.True(t, h.ft.BalanceOf(actor(13)).IsZero(), "rejected LikeReply on an expired thread must not move FT")
}

func TestTwoRepliesTieOnLikesEarliestWins(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a, b, c, likerB, likerC := actor(10), actor(11), actor(12), actor(13), actor(14)

	reply, err := h.logic.Send(ctx, NewThread{Caller: a, Title: "t", ThreadType: model.ThreadTypeChallenge})
	require.NoError(t, err)
	threadId := reply.(NewThreadCreated).PostId

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: b, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: b, ThreadId: threadId, Title: "r2", ReferralPostId: threadId})
	require.NoError(t, err)
	r2 := reply.(ReplyAdded).Id

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: c, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: c, ThreadId: threadId, Title: "r3", ReferralPostId: threadId})
	require.NoError(t, err)
	r3 := reply.(ReplyAdded).Id

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: likerB, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, LikeReply{Caller: likerB, ThreadId: threadId, ReplyId: r2, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	require.Equal(t, ReplyLiked{}, reply)

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: likerC, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, LikeReply{Caller: likerC, ThreadId: threadId, ReplyId: r3, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	require.Equal(t, ReplyLiked{}, reply)

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	require.Equal(t, ThreadExpired{}, reply, "%#v", reply)

	require.Equal(t, 0, h.ft.BalanceOf(b).Cmp(model.NewAmount(3)), "earlier reply R2 must win the tie")
	require.Equal(t, 0, h.ft.BalanceOf(c).Cmp(model.NewAmount(0)), "later tied reply R3 gets nothing")
}

func TestChainOfThreeSplitsAmongFullPath(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner, r2owner, r3owner, liker := actor(10), actor(11), actor(12), actor(13)

	reply, err := h.logic.Send(ctx, NewThread{Caller: owner, Title: "t", ThreadType: model.ThreadTypeChallenge})
	require.NoError(t, err)
	threadId := reply.(NewThreadCreated).PostId

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: r2owner, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: r2owner, ThreadId: threadId, Title: "r2", ReferralPostId: threadId})
	require.NoError(t, err)
	r2 := reply.(ReplyAdded).Id

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: r3owner, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, AddReply{Caller: r3owner, ThreadId: threadId, Title: "r3", ReferralPostId: r2})
	require.NoError(t, err)
	r3 := reply.(ReplyAdded).Id

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: liker, Amount: model.NewAmount(5)})
	require.NoError(t, err)
	reply, err = h.logic.Send(ctx, LikeReply{Caller: liker, ThreadId: threadId, ReplyId: r3, Amount: model.NewAmount(5)})
	require.NoError(t, err)
	require.Equal(t, ReplyLiked{}, reply)

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	require.Equal(t, ThreadExpired{}, reply, "%#v", reply)

	require.False(t, h.ft.BalanceOf(owner).IsZero(), "path owner must receive a path share")
	require.False(t, h.ft.BalanceOf(r2owner).IsZero(), "path owner must receive a path share")
	require.False(t, h.ft.BalanceOf(r3owner).IsZero(), "winner must receive the winner share")
}

func TestExpireThreadIsNotReentrant(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a, b := actor(10), actor(11)

	reply, err := h.logic.Send(ctx, NewThread{Caller: a, Title: "t", ThreadType: model.ThreadTypeChallenge})
	require.NoError(t, err)
	threadId := reply.(NewThreadCreated).PostId

	_, err = h.ft.Send(ctx, ft.Mint{Recipient: b, Amount: model.NewAmount(1)})
	require.NoError(t, err)
	_, err = h.logic.Send(ctx, AddReply{Caller: b, ThreadId: threadId, Title: "r", ReferralPostId: threadId})
	require.NoError(t, err)

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	require.Equal(t, ThreadExpired{}, reply)

	reply, err = h.logic.Send(ctx, ExpireThread{ThreadId: threadId})
	require.NoError(t, err)
	_, isErr := reply.(LogicError)
	require.True(t, isErr, "%#v", reply)
}
