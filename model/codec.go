package model

import (
	"fmt"

	"github.com/luxthread/rewardengine/wire"
)

// PackActorId writes the 32 raw identity bytes verbatim, no length prefix.
func PackActorId(p *wire.Packer, id ActorId) {
	p.PackFixed(id[:])
}

// UnpackActorId reads a 32-byte ActorId.
func UnpackActorId(r *wire.Reader) (ActorId, error) {
	b, err := r.UnpackFixed(32)
	if err != nil {
		return ActorId{}, fmt.Errorf("unpack actor id: %w", err)
	}
	var id ActorId
	copy(id[:], b)
	return id, nil
}

// PackAmount writes a u128 Amount as two little-endian uint64 words.
func PackAmount(p *wire.Packer, a Amount) {
	lo, hi := a.Words128()
	p.PackU128(lo, hi)
}

// UnpackAmount reads a u128 Amount.
func UnpackAmount(r *wire.Reader) (Amount, error) {
	lo, hi, err := r.UnpackU128()
	if err != nil {
		return Amount{}, fmt.Errorf("unpack amount: %w", err)
	}
	return AmountFromWords128(lo, hi), nil
}

// PackPostId writes a PostId as a little-endian uint32.
func PackPostId(p *wire.Packer, id PostId) {
	p.PackUint32(uint32(id))
}

// UnpackPostId reads a PostId.
func UnpackPostId(r *wire.Reader) (PostId, error) {
	v, err := r.UnpackUint32()
	return PostId(v), err
}

// PackTimestamp writes a Timestamp as a little-endian uint64.
func PackTimestamp(p *wire.Packer, ts Timestamp) {
	p.PackUint64(uint64(ts))
}

// UnpackTimestamp reads a Timestamp.
func UnpackTimestamp(r *wire.Reader) (Timestamp, error) {
	v, err := r.UnpackUint64()
	return Timestamp(v), err
}

// PackPost writes a full Post record.
func PackPost(p *wire.Packer, post Post) {
	PackPostId(p, post.PostId)
	PackTimestamp(p, post.PostedAt)
	PackActorId(p, post.Owner)
	p.PackString(post.Title)
	p.PackString(post.Content)
	PackOptionalString(p, post.PhotoUrl)
}

// UnpackPost reads a full Post record.
func UnpackPost(r *wire.Reader) (Post, error) {
	var post Post
	var err error
	if post.PostId, err = UnpackPostId(r); err != nil {
		return Post{}, err
	}
	if post.PostedAt, err = UnpackTimestamp(r); err != nil {
		return Post{}, err
	}
	if post.Owner, err = UnpackActorId(r); err != nil {
		return Post{}, err
	}
	if post.Title, err = r.UnpackString(); err != nil {
		return Post{}, err
	}
	if post.Content, err = r.UnpackString(); err != nil {
		return Post{}, err
	}
	if post.PhotoUrl, err = UnpackOptionalString(r); err != nil {
		return Post{}, err
	}
	return post, nil
}

// PackOptionalString writes the Option<T> encoding used for PhotoUrl.
func PackOptionalString(p *wire.Packer, s *string) {
	p.PackOption(s != nil)
	if s != nil {
		p.PackString(*s)
	}
}

// UnpackOptionalString reads an Option<String>.
func UnpackOptionalString(r *wire.Reader) (*string, error) {
	present, err := r.UnpackOption()
	if err != nil || !present {
		return nil, err
	}
	s, err := r.UnpackString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}
