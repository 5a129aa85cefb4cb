// Package timerwheel implements fire-once, after-delay scheduling for
// Logic's delayed ExpireThread message, with a leveldb-backed write-ahead
// log so a process restart replays any timer whose fire time has already
// passed instead of losing it.
package timerwheel

import (
	"container/heap"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/luxfi/log"

	"github.com/luxthread/rewardengine/model"
)

// Fire is invoked on the wheel's own goroutine once per scheduled entry,
// when that entry's delay elapses. Firings run one after another on that
// goroutine, never concurrently with each other.
type Fire func(threadId model.PostId)

type entry struct {
	fireAt   time.Time
	threadId model.PostId
	index    int
}

type entryHeap []*entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].fireAt.Before(h[j].fireAt) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *entryHeap) Push(x any)         { e := x.(*entry); e.index = len(*h); *h = append(*h, e) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Wheel schedules delayed, crash-recoverable firings keyed by thread id.
type Wheel struct {
	mu      sync.Mutex
	heap    entryHeap
	wake    chan struct{}
	db      *leveldb.DB
	fire    Fire
	log     log.Logger
	closing chan struct{}
}

// Open creates a Wheel backed by a leveldb WAL at walPath and starts its
// background dispatch goroutine. Any entries persisted from a prior run
// are replayed immediately if their fire time has already passed, or
// scheduled for their remaining delay otherwise.
func Open(walPath string, fire Fire, logger log.Logger) (*Wheel, error) {
	db, err := leveldb.OpenFile(walPath, nil)
	if err != nil {
		return nil, fmt.Errorf("timerwheel: open wal: %w", err)
	}
	w := &Wheel{
		wake:    make(chan struct{}, 1),
		db:      db,
		fire:    fire,
		log:     logger.With("component", "timerwheel"),
		closing: make(chan struct{}),
	}
	if err := w.replay(); err != nil {
		db.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// Schedule arranges for fire(threadId) to run once after delay, persisting
// the entry first so a crash before the goroutine wakes does not lose it.
func (w *Wheel) Schedule(threadId model.PostId, delay time.Duration) error {
	fireAt := time.Now().Add(delay)
	if err := w.persist(threadId, fireAt); err != nil {
		return err
	}
	w.mu.Lock()
	heap.Push(&w.heap, &entry{fireAt: fireAt, threadId: threadId})
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops the dispatch goroutine and closes the WAL.
func (w *Wheel) Close() error {
	close(w.closing)
	return w.db.Close()
}

func (w *Wheel) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		w.mu.Lock()
		var wait time.Duration
		if len(w.heap) == 0 {
			wait = time.Hour
		} else {
			wait = time.Until(w.heap[0].fireAt)
		}
		w.mu.Unlock()
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-w.closing:
			return
		case <-w.wake:
			continue
		case <-timer.C:
			w.fireDue()
		}
	}
}

func (w *Wheel) fireDue() {
	now := time.Now()
	for {
		w.mu.Lock()
		if len(w.heap) == 0 || w.heap[0].fireAt.After(now) {
			w.mu.Unlock()
			return
		}
		e := heap.Pop(&w.heap).(*entry)
		w.mu.Unlock()

		if err := w.clear(e.threadId); err != nil {
			w.log.Error("clear wal entry failed", "thread", e.threadId, "err", err)
		}
		w.fire(e.threadId)
	}
}

func key(threadId model.PostId) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(threadId))
	return append([]byte("timer/"), b[:]...)
}

func (w *Wheel) persist(threadId model.PostId, fireAt time.Time) error {
	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], uint64(fireAt.UnixNano()))
	return w.db.Put(key(threadId), val[:], nil)
}

func (w *Wheel) clear(threadId model.PostId) error {
	return w.db.Delete(key(threadId), nil)
}

func (w *Wheel) replay() error {
	iter := w.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		k := iter.Key()
		if len(k) != len("timer/")+4 {
			continue
		}
		threadId := model.PostId(binary.LittleEndian.Uint32(k[len("timer/"):]))
		fireAtNano := int64(binary.LittleEndian.Uint64(iter.Value()))
		heap.Push(&w.heap, &entry{fireAt: time.Unix(0, fireAtNano), threadId: threadId})
	}
	return iter.Error()
}
