package actormbox

import (
	"context"
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain verifies that Start/Stop never leaks the mailbox goroutine
// across a test run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestActorSendReceivesReply(t *testing.T) {
	a := New("echo", log.Root(), 1, func(_ context.Context, req any) (any, error) {
		return req, nil
	})
	a.Start()
	defer a.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reply, err := a.Send(ctx, "hi")
	require.NoError(t, err)
	require.Equal(t, "hi", reply)
}

func TestActorSendSerializesHandlers(t *testing.T) {
	var order []int
	done := make(chan struct{})
	a := New("serial", log.Root(), 4, func(_ context.Context, req any) (any, error) {
		n := req.(int)
		order = append(order, n)
		if n == 2 {
			close(done)
		}
		return nil, nil
	})
	a.Start()
	defer a.Stop()

	ctx := context.Background()
	go a.Send(ctx, 1)
	go a.Send(ctx, 2)

	<-done
	require.Len(t, order, 2)
}

func TestActorSendContextTimeout(t *testing.T) {
	block := make(chan struct{})
	a := New("slow", log.Root(), 1, func(_ context.Context, req any) (any, error) {
		<-block
		return nil, nil
	})
	a.Start()
	defer a.Stop()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := a.Send(ctx, "x")
	require.Error(t, err)
}
