package ft

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/luxthread/rewardengine/wire"
)

// Sender is satisfied by anything that accepts the FT request/reply
// protocol: the in-process Ledger actor, or a RemoteLedger client talking
// to a deployed ledger over the wire codec. Logic and Reward depend on
// this rather than *Ledger so either backend can be plugged in.
type Sender interface {
	Send(ctx context.Context, req any) (any, error)
}

// RemoteLedger speaks the FT request/reply protocol over a connection to a
// deployed ledger outside this module, using the bit-for-bit wire format
// MarshalRequest/UnmarshalReply implement. It satisfies the same
// Send(ctx, req any) (any, error) shape as the in-process Ledger actor, so
// Logic and Reward can be pointed at either one.
//
// Requests are serialized strictly: conn is a single duplex stream with no
// multiplexing, so concurrent callers are queued behind a mutex rather than
// relying on correlation IDs the deployed format doesn't carry.
type RemoteLedger struct {
	conn io.ReadWriter
	mu   sync.Mutex
}

// NewRemoteLedger wraps conn, a connection to an external FT ledger.
func NewRemoteLedger(conn io.ReadWriter) *RemoteLedger {
	return &RemoteLedger{conn: conn}
}

// Send encodes req, writes it length-prefixed to the connection, then reads
// and decodes the ledger's framed reply.
func (l *RemoteLedger) Send(ctx context.Context, req any) (any, error) {
	r, ok := req.(Request)
	if !ok {
		return nil, fmt.Errorf("ft: remote ledger received non-Request %T", req)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := l.conn.Write(MarshalRequest(r)); err != nil {
		return nil, fmt.Errorf("ft: write request: %w", err)
	}
	payload, err := wire.ReadFramed(l.conn)
	if err != nil {
		return nil, fmt.Errorf("ft: read reply: %w", err)
	}
	reply, err := UnmarshalReply(payload)
	if err != nil {
		return nil, fmt.Errorf("ft: decode reply: %w", err)
	}
	return reply, nil
}
