package storage

import (
	"fmt"

	"github.com/luxthread/rewardengine/model"
)

func (s *Storage) handleQuery(q Query) (any, error) {
	switch query := q.(type) {
	case AllRepliesWithLikes:
		return s.allRepliesWithLikes(query.ThreadId)
	case GraphRep:
		return s.graphRep(query.ThreadId)
	case LikeHistoryOf:
		return s.likeHistoryOf(query.ThreadId, query.ReplyId)
	case DistributedTokens:
		return s.distributedTokens(query.ThreadId)
	case AllThreadsFE:
		return s.allThreadsFE(), nil
	case AllRepliesFE:
		return s.allRepliesFE(query.ThreadId)
	case ThreadActive:
		return s.threadActive(query.ThreadId)
	default:
		return nil, fmt.Errorf("storage: unsupported query %T", q)
	}
}

func (s *Storage) thread(id model.PostId) (*model.Thread, error) {
	t, ok := s.threads[id]
	if !ok {
		return nil, fmt.Errorf("storage: thread %d not found", id)
	}
	return t, nil
}

func (s *Storage) allRepliesWithLikes(threadId model.PostId) ([]ReplyLikeEntry, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return nil, err
	}
	out := make([]ReplyLikeEntry, 0, len(t.ReplyOrder))
	for _, id := range t.ReplyOrder {
		r := t.Replies[id]
		out = append(out, ReplyLikeEntry{PostId: id, Owner: r.Post.Owner, Likes: r.Likes})
	}
	return out, nil
}

func (s *Storage) graphRep(threadId model.PostId) (*model.ThreadGraph, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return nil, err
	}
	return t.Graph, nil
}

func (s *Storage) likeHistoryOf(threadId, replyId model.PostId) ([]model.LikeHistoryEntry, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return nil, err
	}
	r, ok := t.Replies[replyId]
	if !ok {
		return nil, fmt.Errorf("storage: reply %d not found", replyId)
	}
	return r.LikeHistory(), nil
}

func (s *Storage) distributedTokens(threadId model.PostId) (model.Amount, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return model.Amount{}, err
	}
	return t.DistributedTokens, nil
}

func (s *Storage) threadActive(threadId model.PostId) (bool, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return false, err
	}
	return t.IsActive(), nil
}

func (s *Storage) allThreadsFE() []ThreadListing {
	out := make([]ThreadListing, 0, len(s.threadOrder))
	for _, id := range s.threadOrder {
		t := s.threads[id]
		header := ThreadHeader{
			PostId:            t.Post.PostId,
			Owner:             t.Post.Owner,
			Title:             t.Post.Title,
			Type:              t.Type,
			Status:            t.Status,
			DistributedTokens: t.DistributedTokens,
		}
		out = append(out, ThreadListing{Header: header, Featured: featuredReply(t)})
	}
	return out
}

// ThreadListing pairs a thread header with its featured reply, if any.
type ThreadListing struct {
	Header   ThreadHeader
	Featured *FeaturedReply
}

func featuredReply(t *model.Thread) *FeaturedReply {
	var best *model.ThreadReply
	var bestId model.PostId
	for _, id := range t.ReplyOrder {
		r := t.Replies[id]
		if best == nil || r.Likes.Cmp(best.Likes) < 0 {
			best, bestId = r, id
		}
	}
	if best == nil {
		return nil
	}
	return &FeaturedReply{Reply: ReplyHeader{
		PostId: bestId,
		Owner:  best.Post.Owner,
		Title:  best.Post.Title,
		Likes:  best.Likes,
		Hidden: best.Hidden,
	}}
}

func (s *Storage) allRepliesFE(threadId model.PostId) (*ThreadRepliesListing, error) {
	t, err := s.thread(threadId)
	if err != nil {
		return nil, err
	}
	header := ThreadHeader{
		PostId:            t.Post.PostId,
		Owner:             t.Post.Owner,
		Title:             t.Post.Title,
		Type:              t.Type,
		Status:            t.Status,
		DistributedTokens: t.DistributedTokens,
	}
	replies := make([]ReplyHeader, 0, len(t.ReplyOrder))
	for _, id := range t.ReplyOrder {
		r := t.Replies[id]
		if r.Hidden {
			continue
		}
		replies = append(replies, ReplyHeader{
			PostId: id,
			Owner:  r.Post.Owner,
			Title:  r.Post.Title,
			Likes:  r.Likes,
			Hidden: r.Hidden,
		})
	}
	return &ThreadRepliesListing{Header: header, Replies: replies}, nil
}

// ThreadRepliesListing is the read-model returned by AllRepliesFE.
type ThreadRepliesListing struct {
	Header  ThreadHeader
	Replies []ReplyHeader
}
