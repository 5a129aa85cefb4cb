package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	admin, owner, liker := actor(1), actor(2), actor(3)
	s := newTestStorage(t, admin)
	ctx := context.Background()

	th := mustThread(t, 1, admin)
	_, err := s.Send(ctx, PushThread{Caller: admin, Thread: th})
	require.NoError(t, err)
	_, err = s.Send(ctx, PushReply{ThreadId: 1, Reply: mustReply(t, 2, owner), ReferralPostId: 1})
	require.NoError(t, err)
	_, err = s.Send(ctx, LikeReply{Caller: liker, ThreadId: 1, ReplyId: 2, Amount: model.NewAmount(3)})
	require.NoError(t, err)

	dir := t.TempDir()
	snap, err := OpenSnapshotter(filepath.Join(dir, "snap"))
	require.NoError(t, err)
	defer snap.Close()

	require.NoError(t, snap.Save(s))

	restored := New(admin, log.Root(), 8)
	defer restored.Stop()
	require.NoError(t, snap.Load(restored))

	tokens, err := restored.Send(ctx, DistributedTokens{ThreadId: 1})
	require.NoError(t, err)
	require.Equal(t, 0, tokens.(model.Amount).Cmp(model.NewAmount(5)))

	graphAny, err := restored.Send(ctx, GraphRep{ThreadId: 1})
	require.NoError(t, err)
	g := graphAny.(*model.ThreadGraph)
	require.True(t, g.HasNode(2))
	require.Equal(t, 1, g.InDegree(2))
}
