package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/big"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/luxthread/rewardengine/model"
)

// snapshotRecord is the gob-serializable projection of a single thread used
// for crash recovery. It is deliberately separate from the wire package's
// tagged-union codec: that format exists to interoperate with external FT
// ledgers over the network, while this is a private on-disk representation
// local to one Storage instance.
type snapshotRecord struct {
	Post                model.Post
	Type                model.ThreadType
	Status              model.ThreadStatus
	DistributedTokens   []byte
	DistributionStarted bool
	ReplyOrder          []model.PostId
	Replies             map[model.PostId]replyRecord
	Nodes               []model.ThreadNode
	Edges               map[model.PostId][]model.PostId
}

type replyRecord struct {
	Post        model.Post
	Likes       []byte
	Reports     uint64
	Hidden      bool
	LikeHistory []likeHistoryRecord
}

// likeHistoryRecord is the gob-safe projection of model.LikeHistoryEntry;
// Amount itself cannot be gob-encoded directly since its backing uint256
// has no exported fields.
type likeHistoryRecord struct {
	Actor model.ActorId
	Likes []byte
}

// Snapshotter persists and restores Storage state to a leveldb instance so
// a restarted process can recover in-flight threads instead of losing the
// escrow ledger on crash.
type Snapshotter struct {
	db *leveldb.DB
}

// OpenSnapshotter opens (creating if absent) a leveldb database at path.
func OpenSnapshotter(path string) (*Snapshotter, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open snapshot db: %w", err)
	}
	return &Snapshotter{db: db}, nil
}

func (s *Snapshotter) Close() error {
	return s.db.Close()
}

func threadKey(id model.PostId) []byte {
	return []byte(fmt.Sprintf("thread/%d", id))
}

// Save writes every thread currently held by storage to the snapshot db,
// overwriting any prior record for the same thread id.
func (sn *Snapshotter) Save(s *Storage) error {
	batch := new(leveldb.Batch)
	for _, id := range s.threadOrder {
		t := s.threads[id]
		rec, err := encodeThread(t)
		if err != nil {
			return err
		}
		batch.Put(threadKey(id), rec)
	}
	return sn.db.Write(batch, nil)
}

// Load restores every persisted thread into a fresh Storage's map. It is
// meant to run once, immediately after New and before the actor's mailbox
// is exposed to callers.
func (sn *Snapshotter) Load(s *Storage) error {
	iter := sn.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		t, err := decodeThread(iter.Value())
		if err != nil {
			return err
		}
		s.threads[t.Post.PostId] = t
		s.threadOrder = append(s.threadOrder, t.Post.PostId)
	}
	return iter.Error()
}

func encodeThread(t *model.Thread) ([]byte, error) {
	rec := snapshotRecord{
		Post:                t.Post,
		Type:                t.Type,
		Status:              t.Status,
		DistributedTokens:   t.DistributedTokens.Big().Bytes(),
		DistributionStarted: t.DistributionStarted,
		ReplyOrder:          t.ReplyOrder,
		Replies:             make(map[model.PostId]replyRecord, len(t.Replies)),
		Nodes:               nodesOf(t.Graph),
		Edges:               adjacencyOf(t.Graph),
	}
	for id, r := range t.Replies {
		history := r.LikeHistory()
		historyRecs := make([]likeHistoryRecord, len(history))
		for i, entry := range history {
			historyRecs[i] = likeHistoryRecord{Actor: entry.Actor, Likes: entry.Likes.Big().Bytes()}
		}
		rec.Replies[id] = replyRecord{
			Post:        r.Post,
			Likes:       r.Likes.Big().Bytes(),
			Reports:     r.Reports,
			Hidden:      r.Hidden,
			LikeHistory: historyRecs,
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("storage: encode thread %d: %w", t.Post.PostId, err)
	}
	return buf.Bytes(), nil
}

func decodeThread(data []byte) (*model.Thread, error) {
	var rec snapshotRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("storage: decode thread snapshot: %w", err)
	}
	total, err := model.AmountFromBig(new(big.Int).SetBytes(rec.DistributedTokens))
	if err != nil {
		return nil, err
	}
	g := model.NewThreadGraph(rec.Post.PostId, rec.Post.Owner)
	for _, n := range rec.Nodes {
		if n.PostId == rec.Post.PostId {
			continue
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for from, tos := range rec.Edges {
		for _, to := range tos {
			owner, _ := g.Owner(to)
			if from == rec.Post.PostId && to == rec.Post.PostId {
				continue
			}
			if !g.HasNode(from) {
				continue
			}
			if err := g.AddEdge(from, model.ThreadNode{PostId: to, Owner: owner}); err != nil {
				return nil, err
			}
		}
	}

	replies := make(map[model.PostId]*model.ThreadReply, len(rec.Replies))
	for id, rr := range rec.Replies {
		r := model.NewReply(rr.Post)
		for _, entry := range rr.LikeHistory {
			likes, err := model.AmountFromBig(new(big.Int).SetBytes(entry.Likes))
			if err != nil {
				return nil, err
			}
			if err := r.AddLikes(entry.Actor, likes); err != nil {
				return nil, err
			}
		}
		r.Reports = rr.Reports
		r.Hidden = rr.Hidden
		replies[id] = r
	}

	return &model.Thread{
		Post:                rec.Post,
		Type:                rec.Type,
		Status:              rec.Status,
		DistributedTokens:   total,
		DistributionStarted: rec.DistributionStarted,
		Graph:               g,
		Replies:             replies,
		ReplyOrder:          rec.ReplyOrder,
	}, nil
}

func nodesOf(g *model.ThreadGraph) []model.ThreadNode {
	ids := g.Nodes()
	out := make([]model.ThreadNode, 0, len(ids))
	for _, id := range ids {
		owner, _ := g.Owner(id)
		out = append(out, model.ThreadNode{PostId: id, Owner: owner})
	}
	return out
}

func adjacencyOf(g *model.ThreadGraph) map[model.PostId][]model.PostId {
	out := make(map[model.PostId][]model.PostId)
	for _, id := range g.Nodes() {
		out[id] = g.Neighbors(id)
	}
	return out
}
