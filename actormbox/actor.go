// Package actormbox is the shared per-actor mailbox/dispatch runtime that
// Storage, Logic, Reward and the reference FT ledger are all built on top
// of. Each actor is a single goroutine that drains one mailbox and
// processes one message to completion — including any nested awaits on
// outbound calls to other actors — before pulling the next. Because the
// goroutine itself is blocked inside the handler while it awaits a nested
// call, no two handlers of the same actor ever interleave; the goroutine
// is its own mailbox lock, so no separate per-actor lock is needed even
// under GOMAXPROCS>1.
//
// Only one call is ever in flight per Send, so a correlation-id registry
// is unnecessary — each Send gets its own private reply channel instead.
package actormbox

import (
	"context"
	"fmt"

	"github.com/luxfi/log"
)

// Handler processes one inbound request and returns either a reply or an
// error. Handlers run sequentially on the actor's own goroutine and may
// themselves call Send on other actors.
type Handler func(ctx context.Context, req any) (any, error)

type envelope struct {
	ctx   context.Context
	req   any
	reply chan result
}

type result struct {
	val any
	err error
}

// Actor is a single-consumer mailbox wrapping a Handler.
type Actor struct {
	name    string
	log     log.Logger
	mailbox chan *envelope
	handler Handler
	done    chan struct{}
}

// New creates an Actor with the given name (used for logging) and
// mailbox depth. Start must be called before Send will make progress.
func New(name string, logger log.Logger, mailboxSize int, handler Handler) *Actor {
	if mailboxSize <= 0 {
		mailboxSize = 64
	}
	return &Actor{
		name:    name,
		log:     logger.With("actor", name),
		mailbox: make(chan *envelope, mailboxSize),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start launches the actor's single consumer goroutine.
func (a *Actor) Start() {
	go a.run()
}

func (a *Actor) run() {
	defer close(a.done)
	for env := range a.mailbox {
		val, err := a.handler(env.ctx, env.req)
		env.reply <- result{val: val, err: err}
	}
}

// Stop closes the mailbox; in-flight Sends still complete, no new Send
// succeeds afterwards.
func (a *Actor) Stop() {
	close(a.mailbox)
	<-a.done
}

// Send delivers req to the actor and blocks until its handler replies or
// ctx is done. A context that is never cancelled and a handler that never
// replies would hang forever — callers are expected to bound ctx so that
// a request which does not receive a reply in time fails instead of
// blocking its caller indefinitely.
func (a *Actor) Send(ctx context.Context, req any) (any, error) {
	env := &envelope{ctx: ctx, req: req, reply: make(chan result, 1)}
	select {
	case a.mailbox <- env:
	case <-ctx.Done():
		return nil, fmt.Errorf("actormbox: send to %s: %w", a.name, ctx.Err())
	}
	select {
	case res := <-env.reply:
		return res.val, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("actormbox: await reply from %s: %w", a.name, ctx.Err())
	}
}

// Name returns the actor's configured name.
func (a *Actor) Name() string {
	return a.name
}
