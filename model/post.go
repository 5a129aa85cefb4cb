package model

import "fmt"

// Post is the immutable content every Thread and ThreadReply wraps.
type Post struct {
	PostId   PostId
	PostedAt Timestamp
	Owner    ActorId
	Title    string
	Content  string
	// PhotoUrl is nil when no photo was attached; an empty-string input
	// normalizes to nil at construction time.
	PhotoUrl *string
}

// PostInit is the raw, untrusted input a caller supplies when creating a
// thread or a reply.
type PostInit struct {
	Title    string
	Content  string
	PhotoUrl string
}

// NewPost stamps id, postedAt and owner from ambient context onto raw user
// input, normalizing an empty PhotoUrl to absent.
func NewPost(id PostId, postedAt Timestamp, owner ActorId, init PostInit) (Post, error) {
	if init.Title == "" {
		return Post{}, fmt.Errorf("post title must not be empty")
	}
	p := Post{
		PostId:   id,
		PostedAt: postedAt,
		Owner:    owner,
		Title:    init.Title,
		Content:  init.Content,
	}
	if init.PhotoUrl != "" {
		url := init.PhotoUrl
		p.PhotoUrl = &url
	}
	return p, nil
}
