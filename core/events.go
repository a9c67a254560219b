package core

import (
	"fmt"

	"pkt.systems/minitalk/engine"
	"pkt.systems/minitalk/schema"
)

// NoticeLevel classifies what the client should do with an adapter notice.
type NoticeLevel int

const (
	// NoticePrint is a chat line to print verbatim on the active screen.
	NoticePrint NoticeLevel = iota
	// NoticeInfo is a passive informational line.
	NoticeInfo
	// NoticeWarn is a user-visible warning.
	NoticeWarn
)

// Notice is a screen reaction produced by applying an engine event; the model
// itself performs no output.
type Notice struct {
	Level NoticeLevel
	Text  string
}

func printf(level NoticeLevel, format string, args ...any) Notice {
	return Notice{Level: level, Text: fmt.Sprintf(format, args...)}
}

// Apply translates one engine-delivered event into model mutations and
// returns the screen notices it produced. Events referencing contacts that
// raced with local deletion are dropped; inconsistent peer indexes are logged
// and dropped.
func (s *Session) Apply(ev engine.Event) []Notice {
	switch ev.Type {
	case engine.EventSelfConnection:
		s.self.Conn = ev.Conn
		return []Notice{printf(NoticeInfo, "* You are %s", ev.Conn)}

	case engine.EventFriendConnection:
		f, ok := s.Friend(ev.Friend)
		if !ok {
			return nil
		}
		f.Conn = ev.Conn
		return []Notice{printf(NoticeInfo, "* %s is %s", f.Name, ev.Conn)}

	case engine.EventFriendMessage:
		return s.applyFriendMessage(ev)

	case engine.EventFriendName:
		f, ok := s.Friend(ev.Friend)
		if !ok {
			return nil
		}
		f.Name = ev.Text
		if s.active == schema.FriendIndex(ev.Friend) {
			return []Notice{printf(NoticeInfo, "* Opposite changed name to %s", ev.Text)}
		}
		return nil

	case engine.EventFriendStatus:
		if f, ok := s.Friend(ev.Friend); ok {
			f.StatusText = ev.Text
		}
		return nil

	case engine.EventFriendRequest:
		s.EnqueueRequest(FriendRequestPayload{Key: ev.PublicKey}, ev.Text)
		return []Notice{printf(NoticeInfo, "* receive friend request(use `/accept` to see).")}

	case engine.EventGroupInvite:
		return s.applyGroupInvite(ev)

	case engine.EventGroupTitle:
		g, ok := s.Group(ev.Group)
		if !ok {
			return nil
		}
		g.Title = ev.Text
		if s.active == schema.GroupIndex(ev.Group) {
			return []Notice{printf(NoticeInfo, "* Group title changed to %s", ev.Text)}
		}
		return nil

	case engine.EventGroupMessage:
		return s.applyGroupMessage(ev)

	case engine.EventGroupPeersChanged:
		if g, ok := s.Group(ev.Group); ok {
			g.Peers = append([]schema.GroupPeer(nil), ev.Peers...)
		}
		return nil

	case engine.EventGroupPeerName:
		g, ok := s.Group(ev.Group)
		if !ok || ev.PeerIndex < 0 || ev.PeerIndex >= len(g.Peers) {
			s.log.Error("unexpected group/peer in peer name event",
				"group", ev.Group, "peer_index", ev.PeerIndex)
			return nil
		}
		g.Peers[ev.PeerIndex].Name = ev.Text
		return nil

	default:
		s.log.Warn("unhandled engine event", "type", ev.Type)
		return nil
	}
}

func (s *Session) applyFriendMessage(ev engine.Event) []Notice {
	f, ok := s.Friend(ev.Friend)
	if !ok {
		return nil
	}
	if ev.MessageKind != schema.MessageNormal {
		return []Notice{printf(NoticeInfo, "* receive MESSAGE ACTION type from %s, not supported", f.Name)}
	}
	line := s.FormatMessage(f.Name, ev.Text)
	f.History.Append(line)
	if s.active == schema.FriendIndex(ev.Friend) {
		return []Notice{{Level: NoticePrint, Text: line}}
	}
	return []Notice{printf(NoticeInfo, "* receive message from %s, use `/go <contact_index>` to talk", f.Name)}
}

func (s *Session) applyGroupInvite(ev engine.Event) []Notice {
	f, ok := s.Friend(ev.Friend)
	if !ok {
		return nil
	}
	if ev.ConferenceKind != schema.ConferenceText {
		return []Notice{printf(NoticeWarn, "* %s invites you to an AV group, which is not supported.", f.Name)}
	}
	s.EnqueueRequest(GroupInvitePayload{
		Inviter: ev.Friend,
		Cookie:  append([]byte(nil), ev.Cookie...),
	}, "From "+f.Name)
	return []Notice{printf(NoticeInfo, "* %s invites you to a group(try `/accept` to see)", f.Name)}
}

func (s *Session) applyGroupMessage(ev engine.Event) []Notice {
	g, ok := s.Group(ev.Group)
	if !ok {
		return nil
	}
	if ev.FromSelf {
		return nil
	}
	if ev.MessageKind != schema.MessageNormal {
		return []Notice{printf(NoticeInfo, "* receive MESSAGE ACTION type from group %s, not supported", g.Title)}
	}
	if ev.PeerIndex < 0 || ev.PeerIndex >= len(g.Peers) {
		s.log.Error("peer index outside group snapshot",
			"group", ev.Group, "peer_index", ev.PeerIndex, "peer_count", len(g.Peers))
		return nil
	}
	peer := g.Peers[ev.PeerIndex]
	line := s.FormatMessage(peer.Name, ev.Text)
	g.History.Append(line)
	if s.active == schema.GroupIndex(ev.Group) {
		return []Notice{{Level: NoticePrint, Text: line}}
	}
	return []Notice{printf(NoticeInfo, "* receive group message from %s, in group %s", peer.Name, g.Title)}
}
