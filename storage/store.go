package storage

import (
	"context"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxthread/rewardengine/actormbox"
	"github.com/luxthread/rewardengine/model"
)

// ReportThreshold is the number of ReportReply commands against a single
// reply that flips it Hidden. It is a package-level constant rather than a
// per-call parameter because moderation policy is uniform across threads.
const ReportThreshold = 3

// Storage is the authoritative container of threads, wrapped in an
// actormbox.Actor so commands and queries are serialized through a single
// mailbox the same way every other actor in the system is.
type Storage struct {
	*actormbox.Actor

	admin       model.ActorId
	logicAddr   model.ActorId
	threads     map[model.PostId]*model.Thread
	threadOrder []model.PostId
}

// New constructs and starts a Storage actor. admin is the identity
// recorded as the caller who initialized this actor; only admin may issue
// AddLogicContractAddress, RemoveThread and RemoveReply.
func New(admin model.ActorId, logger log.Logger, mailboxSize int) *Storage {
	s := &Storage{
		admin:   admin,
		threads: make(map[model.PostId]*model.Thread),
	}
	s.Actor = actormbox.New("storage", logger, mailboxSize, s.handle)
	s.Start()
	return s
}

func (s *Storage) handle(_ context.Context, req any) (any, error) {
	switch m := req.(type) {
	case Command:
		return s.handleCommand(m), nil
	case Query:
		return s.handleQuery(m)
	default:
		return nil, fmt.Errorf("storage: unsupported request %T", req)
	}
}

func (s *Storage) handleCommand(cmd Command) Event {
	switch c := cmd.(type) {
	case AddLogicContractAddress:
		if c.Caller != s.admin {
			return StorageError{Reason: "unauthorized"}
		}
		s.logicAddr = c.Addr
		return LogicContractAddressAdded{}
	case PushThread:
		return s.pushThread(c)
	case PushReply:
		return s.pushReply(c)
	case LikeReply:
		return s.likeReply(c)
	case ReportReply:
		return s.reportReply(c)
	case ChangeStatusState:
		return s.changeStatus(c)
	case RemoveThread:
		return s.removeThread(c)
	case RemoveReply:
		return s.removeReply(c)
	case BeginDistribution:
		return s.beginDistribution(c)
	case ResumeDistribution:
		return s.resumeDistribution(c)
	default:
		return StorageError{Reason: fmt.Sprintf("unsupported command %T", cmd)}
	}
}

func (s *Storage) pushThread(c PushThread) Event {
	id := c.Thread.Post.PostId
	if _, exists := s.threads[id]; exists {
		return StorageError{Reason: "duplicate post id"}
	}
	if err := c.Thread.Credit(model.NewAmount(1)); err != nil {
		return StorageError{Reason: err.Error()}
	}
	s.threads[id] = c.Thread
	s.threadOrder = append(s.threadOrder, id)
	return ThreadPush{PostId: id}
}

func (s *Storage) pushReply(c PushReply) Event {
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	if !t.IsActive() {
		return StorageError{Reason: "thread expired"}
	}
	id := c.Reply.Post.PostId
	if _, exists := t.Replies[id]; exists {
		return StorageError{Reason: "duplicate reply id"}
	}
	if err := t.Graph.AddEdge(c.ReferralPostId, model.ThreadNode{PostId: id, Owner: c.Reply.Post.Owner}); err != nil {
		return StorageError{Reason: err.Error()}
	}
	if err := t.Credit(model.NewAmount(1)); err != nil {
		return StorageError{Reason: err.Error()}
	}
	t.Replies[id] = c.Reply
	t.ReplyOrder = append(t.ReplyOrder, id)
	return ReplyPush{PostId: id}
}

func (s *Storage) likeReply(c LikeReply) Event {
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	if !t.IsActive() {
		return StorageError{Reason: "thread expired"}
	}
	r, ok := t.Replies[c.ReplyId]
	if !ok {
		return StorageError{Reason: "reply not found"}
	}
	if c.Caller == r.Post.Owner {
		return StorageError{Reason: "self-like rejected"}
	}
	if err := r.AddLikes(c.Caller, c.Amount); err != nil {
		return StorageError{Reason: err.Error()}
	}
	if err := t.Credit(c.Amount); err != nil {
		return StorageError{Reason: err.Error()}
	}
	return ReplyLiked{}
}

func (s *Storage) reportReply(c ReportReply) Event {
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	r, ok := t.Replies[c.ReplyId]
	if !ok {
		return StorageError{Reason: "reply not found"}
	}
	r.Reports++
	if r.Reports >= ReportThreshold {
		r.Hidden = true
	}
	return ReplyReported{Hidden: r.Hidden}
}

func (s *Storage) changeStatus(c ChangeStatusState) Event {
	if c.Caller != s.admin && c.Caller != s.logicAddr {
		return StorageError{Reason: "unauthorized"}
	}
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	t.Status = model.ThreadStatusExpired
	return StatusStateChanged{}
}

func (s *Storage) removeThread(c RemoveThread) Event {
	if c.Caller != s.admin {
		return StorageError{Reason: "unauthorized"}
	}
	if _, ok := s.threads[c.ThreadId]; !ok {
		return StorageError{Reason: "thread not found"}
	}
	delete(s.threads, c.ThreadId)
	for i, id := range s.threadOrder {
		if id == c.ThreadId {
			s.threadOrder = append(s.threadOrder[:i], s.threadOrder[i+1:]...)
			break
		}
	}
	return ThreadRemoved{}
}

func (s *Storage) beginDistribution(c BeginDistribution) Event {
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	if t.DistributionStarted {
		return StorageError{Reason: "distribution already started"}
	}
	t.DistributionStarted = true
	return DistributionBegun{}
}

func (s *Storage) resumeDistribution(c ResumeDistribution) Event {
	if c.Caller != s.admin {
		return StorageError{Reason: "unauthorized"}
	}
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	t.DistributionStarted = false
	return DistributionResumed{}
}

func (s *Storage) removeReply(c RemoveReply) Event {
	if c.Caller != s.admin {
		return StorageError{Reason: "unauthorized"}
	}
	t, ok := s.threads[c.ThreadId]
	if !ok {
		return StorageError{Reason: "thread not found"}
	}
	if _, ok := t.Replies[c.ReplyId]; !ok {
		return StorageError{Reason: "reply not found"}
	}
	delete(t.Replies, c.ReplyId)
	for i, id := range t.ReplyOrder {
		if id == c.ReplyId {
			t.ReplyOrder = append(t.ReplyOrder[:i], t.ReplyOrder[i+1:]...)
			break
		}
	}
	t.Graph.RemoveNode(c.ReplyId)
	return ReplyRemoved{}
}
