package core

import (
	"strings"
	"testing"

	"pkt.systems/minitalk/engine"
	"pkt.systems/minitalk/schema"
)

func TestApplySelfConnection(t *testing.T) {
	s := newTestSession()
	notices := s.Apply(engine.Event{Type: engine.EventSelfConnection, Conn: schema.ConnUDP})
	if s.Self().Conn != schema.ConnUDP {
		t.Fatalf("self connection not updated")
	}
	if len(notices) != 1 || !strings.Contains(notices[0].Text, "Online(UDP)") {
		t.Fatalf("unexpected notices: %+v", notices)
	}
}

func TestApplyFriendMessageActiveVsPassive(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(1)
	f.Name = "bob"

	// Not the active conversation: history grows, passive notice.
	notices := s.Apply(engine.Event{
		Type: engine.EventFriendMessage, Friend: 1,
		MessageKind: schema.MessageNormal, Text: "hi",
	})
	if f.History.Len() != 1 {
		t.Fatalf("history len = %d, want 1", f.History.Len())
	}
	if len(notices) != 1 || notices[0].Level != NoticeInfo {
		t.Fatalf("expected passive notice, got %+v", notices)
	}

	// Active conversation: the formatted line is printed.
	if err := s.SetActive(schema.FriendIndex(1)); err != nil {
		t.Fatalf("set active: %v", err)
	}
	notices = s.Apply(engine.Event{
		Type: engine.EventFriendMessage, Friend: 1,
		MessageKind: schema.MessageNormal, Text: "again",
	})
	if len(notices) != 1 || notices[0].Level != NoticePrint {
		t.Fatalf("expected print notice, got %+v", notices)
	}
	if !strings.Contains(notices[0].Text, "bob | again") {
		t.Fatalf("line = %q", notices[0].Text)
	}
}

func TestApplyFriendMessageActionDropped(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(1)
	notices := s.Apply(engine.Event{
		Type: engine.EventFriendMessage, Friend: 1,
		MessageKind: schema.MessageAction, Text: "waves",
	})
	if f.History.Len() != 0 {
		t.Fatalf("action message must not enter history")
	}
	if len(notices) != 1 || notices[0].Level != NoticeInfo {
		t.Fatalf("expected info notice, got %+v", notices)
	}
}

func TestApplyFriendMessageUnknownFriend(t *testing.T) {
	s := newTestSession()
	if notices := s.Apply(engine.Event{Type: engine.EventFriendMessage, Friend: 9}); notices != nil {
		t.Fatalf("expected silent drop, got %+v", notices)
	}
}

func TestApplyFriendNameRefreshesOnlyWhenActive(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(1)
	if notices := s.Apply(engine.Event{Type: engine.EventFriendName, Friend: 1, Text: "carol"}); notices != nil {
		t.Fatalf("inactive rename should be quiet, got %+v", notices)
	}
	if f.Name != "carol" {
		t.Fatalf("name not cached")
	}
	if err := s.SetActive(schema.FriendIndex(1)); err != nil {
		t.Fatalf("set active: %v", err)
	}
	notices := s.Apply(engine.Event{Type: engine.EventFriendName, Friend: 1, Text: "carola"})
	if len(notices) != 1 {
		t.Fatalf("active rename should notify, got %+v", notices)
	}
}

func TestApplyFriendRequestEnqueues(t *testing.T) {
	s := newTestSession()
	key := schema.PublicKey{7}
	s.Apply(engine.Event{Type: engine.EventFriendRequest, PublicKey: key, Text: "let me in"})
	reqs := s.Requests()
	if len(reqs) != 1 {
		t.Fatalf("request not enqueued")
	}
	payload, ok := reqs[0].Payload.(FriendRequestPayload)
	if !ok || payload.Key != key {
		t.Fatalf("payload = %+v", reqs[0].Payload)
	}
}

func TestApplyGroupInviteAVDropped(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(1)
	f.Name = "bob"
	notices := s.Apply(engine.Event{
		Type: engine.EventGroupInvite, Friend: 1,
		ConferenceKind: schema.ConferenceAV, Cookie: []byte{1},
	})
	if len(s.Requests()) != 0 {
		t.Fatalf("AV invite must not be enqueued")
	}
	if len(notices) != 1 || notices[0].Level != NoticeWarn {
		t.Fatalf("expected warn notice, got %+v", notices)
	}
}

func TestApplyGroupInviteEnqueues(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(1)
	f.Name = "bob"
	s.Apply(engine.Event{
		Type: engine.EventGroupInvite, Friend: 1,
		ConferenceKind: schema.ConferenceText, Cookie: []byte{9, 9},
	})
	reqs := s.Requests()
	if len(reqs) != 1 || reqs[0].Text != "From bob" {
		t.Fatalf("unexpected requests: %+v", reqs)
	}
	payload, ok := reqs[0].Payload.(GroupInvitePayload)
	if !ok || payload.Inviter != 1 || len(payload.Cookie) != 2 {
		t.Fatalf("payload = %+v", reqs[0].Payload)
	}
}

func TestApplyGroupMessageFromSelfDropped(t *testing.T) {
	s := newTestSession()
	g := s.AddGroup(0)
	g.Peers = []schema.GroupPeer{{Name: "me"}, {Name: "them"}}
	notices := s.Apply(engine.Event{
		Type: engine.EventGroupMessage, Group: 0, PeerIndex: 0, FromSelf: true,
		MessageKind: schema.MessageNormal, Text: "own echo",
	})
	if notices != nil {
		t.Fatalf("self echo must be silent, got %+v", notices)
	}
	if g.History.Len() != 0 {
		t.Fatalf("self echo must not enter history")
	}
}

func TestApplyGroupMessagePeerIndexOutOfBounds(t *testing.T) {
	s := newTestSession()
	g := s.AddGroup(0)
	g.Peers = []schema.GroupPeer{{Name: "me"}}
	notices := s.Apply(engine.Event{
		Type: engine.EventGroupMessage, Group: 0, PeerIndex: 5,
		MessageKind: schema.MessageNormal, Text: "ghost",
	})
	if notices != nil || g.History.Len() != 0 {
		t.Fatalf("out-of-bounds peer must be dropped")
	}
}

func TestApplyGroupMessageAppends(t *testing.T) {
	s := newTestSession()
	g := s.AddGroup(0)
	g.Title = "team"
	g.Peers = []schema.GroupPeer{{Name: "me"}, {Name: "dave"}}
	notices := s.Apply(engine.Event{
		Type: engine.EventGroupMessage, Group: 0, PeerIndex: 1,
		MessageKind: schema.MessageNormal, Text: "yo",
	})
	if g.History.Len() != 1 {
		t.Fatalf("history len = %d, want 1", g.History.Len())
	}
	if len(notices) != 1 || notices[0].Level != NoticeInfo || !strings.Contains(notices[0].Text, "dave") {
		t.Fatalf("unexpected notices: %+v", notices)
	}
}

func TestApplyGroupPeersChangedReplacesSnapshot(t *testing.T) {
	s := newTestSession()
	g := s.AddGroup(0)
	g.Peers = []schema.GroupPeer{{Name: "old"}}
	s.Apply(engine.Event{
		Type: engine.EventGroupPeersChanged, Group: 0,
		Peers: []schema.GroupPeer{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	})
	if len(g.Peers) != 3 || g.Peers[2].Name != "c" {
		t.Fatalf("snapshot not replaced wholesale: %+v", g.Peers)
	}
}

func TestApplyGroupPeerNameBounds(t *testing.T) {
	s := newTestSession()
	g := s.AddGroup(0)
	g.Peers = []schema.GroupPeer{{Name: "x"}}
	s.Apply(engine.Event{Type: engine.EventGroupPeerName, Group: 0, PeerIndex: 0, Text: "y"})
	if g.Peers[0].Name != "y" {
		t.Fatalf("peer name not updated")
	}
	s.Apply(engine.Event{Type: engine.EventGroupPeerName, Group: 0, PeerIndex: 4, Text: "z"})
	if len(g.Peers) != 1 || g.Peers[0].Name != "y" {
		t.Fatalf("out-of-bounds rename mutated snapshot")
	}
}
