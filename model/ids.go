// Package model holds the shared Post/Thread/Reply/Graph types exchanged
// between the storage, logic and reward actors, plus their validation and
// construction rules.
package model

import (
	"fmt"

	"github.com/luxfi/ids"
)

// ActorId is a 256-bit opaque identity, shared by thread owners, reply
// owners and likers alike.
type ActorId ids.ID

// PostId is the 32-bit sequence number assigned to a post at creation
// time. Any monotone stream works; a locally owned counter is used here
// (see Sequencer).
type PostId uint32

// Timestamp is a 64-bit Unix time in seconds.
type Timestamp uint64

// IsZero reports whether id is the zero value, used to reject
// unconfigured or placeholder addresses.
func (id ActorId) IsZero() bool {
	return id == ActorId{}
}

func (id ActorId) String() string {
	return ids.ID(id).String()
}

// MarshalJSON renders the identity the same way ParseActorId reads it back.
func (id ActorId) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON parses the string produced by MarshalJSON.
func (id *ActorId) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseActorId(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Sequencer hands out strictly increasing PostIds. The production host
// would seed this from block height; tests and the CLI seed it from 1.
type Sequencer struct {
	next uint32
}

// NewSequencer returns a Sequencer starting at start.
func NewSequencer(start uint32) *Sequencer {
	return &Sequencer{next: start}
}

// Next returns the next PostId and advances the sequence.
func (s *Sequencer) Next() PostId {
	id := s.next
	s.next++
	return PostId(id)
}

// ParseActorId decodes a 32-byte hex or raw identity string into an ActorId.
func ParseActorId(s string) (ActorId, error) {
	id, err := ids.FromString(s)
	if err != nil {
		return ActorId{}, fmt.Errorf("parse actor id %q: %w", s, err)
	}
	return ActorId(id), nil
}
