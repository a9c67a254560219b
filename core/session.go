// Package core owns the contact and session model: friends, groups, pending
// requests and per-conversation history, addressed through the unified
// contact index. It performs no I/O; engine calls stay with the caller and
// screen output is returned as notices.
package core

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/minitalk/schema"
	"pkt.systems/pslog"
)

// Friend is a cached one-to-one peer contact.
type Friend struct {
	ID         schema.FriendID
	Name       string
	StatusText string
	PublicKey  schema.PublicKey
	Conn       schema.ConnState
	History    *History
}

// Group is a cached multi-party conversation with a wholesale-replaced peer
// snapshot.
type Group struct {
	ID      schema.GroupID
	Title   string
	Peers   []schema.GroupPeer
	History *History
}

// Self is the local user's cached identity.
type Self struct {
	Name       string
	StatusText string
	PublicKey  schema.PublicKey
	Address    schema.Address
	Conn       schema.ConnState
}

// Session is the in-memory contact and session model. All access happens on
// the client's loop thread; no locking.
type Session struct {
	log pslog.Logger
	now func() time.Time

	self     Self
	friends  []*Friend
	groups   []*Group
	requests []*Request
	reqSeq   uint32
	active   schema.ContactIndex
}

// NewSession constructs an empty session with no conversation selected.
func NewSession(logger pslog.Logger) *Session {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Session{
		log:    logger,
		now:    time.Now,
		active: schema.NoContact,
	}
}

// Self returns the local user's cached identity for updating in place.
func (s *Session) Self() *Self {
	return &s.self
}

// AddFriend inserts a friend with empty metadata; later events or bulk-load
// fill it in.
func (s *Session) AddFriend(id schema.FriendID) *Friend {
	f := &Friend{ID: id, History: &History{}}
	s.friends = append(s.friends, f)
	return f
}

// Friend looks a friend up by engine id. Absence is a normal outcome.
func (s *Session) Friend(id schema.FriendID) (*Friend, bool) {
	for _, f := range s.friends {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// DeleteFriend removes a friend and its history. The caller is responsible
// for telling the engine to forget the peer.
func (s *Session) DeleteFriend(id schema.FriendID) bool {
	for i, f := range s.friends {
		if f.ID == id {
			s.friends = append(s.friends[:i], s.friends[i+1:]...)
			return true
		}
	}
	return false
}

// Friends returns the friend records in insertion order.
func (s *Session) Friends() []*Friend {
	return s.friends
}

// AddGroup inserts a group with empty metadata.
func (s *Session) AddGroup(id schema.GroupID) *Group {
	g := &Group{ID: id, History: &History{}}
	s.groups = append(s.groups, g)
	return g
}

// Group looks a group up by engine id.
func (s *Session) Group(id schema.GroupID) (*Group, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// DeleteGroup removes a group and its history.
func (s *Session) DeleteGroup(id schema.GroupID) bool {
	for i, g := range s.groups {
		if g.ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return true
		}
	}
	return false
}

// Groups returns the group records in insertion order.
func (s *Session) Groups() []*Group {
	return s.groups
}

// Active returns the selected conversation's contact index, or NoContact.
func (s *Session) Active() schema.ContactIndex {
	return s.active
}

// SetActive selects a conversation; it must resolve to a known contact.
func (s *Session) SetActive(idx schema.ContactIndex) error {
	if idx != schema.NoContact {
		switch idx.Kind() {
		case schema.KindFriend:
			if _, ok := s.Friend(schema.FriendID(idx.LocalID())); !ok {
				return schema.ErrInvalidContactIndex
			}
		case schema.KindGroup:
			if _, ok := s.Group(schema.GroupID(idx.LocalID())); !ok {
				return schema.ErrInvalidContactIndex
			}
		}
	}
	s.active = idx
	return nil
}

// ActiveHistory resolves the active contact index to its history. Returns
// false when no conversation is selected or the contact no longer exists.
func (s *Session) ActiveHistory() (*History, bool) {
	if s.active == schema.NoContact {
		return nil, false
	}
	switch s.active.Kind() {
	case schema.KindFriend:
		if f, ok := s.Friend(schema.FriendID(s.active.LocalID())); ok {
			return f.History, true
		}
	case schema.KindGroup:
		if g, ok := s.Group(schema.GroupID(s.active.LocalID())); ok {
			return g.History, true
		}
	}
	return nil, false
}

// FormatMessage renders a chat line the way history stores it.
func (s *Session) FormatMessage(name, text string) string {
	return fmt.Sprintf("%s  %12.12s | %s", s.now().Format("15:04:05"), name, text)
}
