package core

import (
	"testing"
	"time"

	"pkt.systems/minitalk/schema"
)

func newTestSession() *Session {
	s := NewSession(nil)
	s.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	}
	return s
}

func TestAddAndDeleteFriend(t *testing.T) {
	s := newTestSession()
	f := s.AddFriend(3)
	if f.History == nil {
		t.Fatalf("friend created without history")
	}
	if _, ok := s.Friend(3); !ok {
		t.Fatalf("friend 3 not found after add")
	}
	if !s.DeleteFriend(3) {
		t.Fatalf("delete reported no removal")
	}
	if s.DeleteFriend(3) {
		t.Fatalf("second delete should report nothing removed")
	}
	if _, ok := s.Friend(3); ok {
		t.Fatalf("friend 3 still present after delete")
	}
}

func TestAddAndDeleteGroup(t *testing.T) {
	s := newTestSession()
	s.AddGroup(7)
	if _, ok := s.Group(7); !ok {
		t.Fatalf("group 7 not found after add")
	}
	if !s.DeleteGroup(7) {
		t.Fatalf("delete reported no removal")
	}
	if s.DeleteGroup(7) {
		t.Fatalf("second delete should report nothing removed")
	}
}

func TestSetActiveValidatesContact(t *testing.T) {
	s := newTestSession()
	if err := s.SetActive(schema.FriendIndex(0)); err == nil {
		t.Fatalf("expected error selecting unknown friend")
	}
	s.AddFriend(0)
	if err := s.SetActive(schema.FriendIndex(0)); err != nil {
		t.Fatalf("select known friend: %v", err)
	}
	if err := s.SetActive(schema.NoContact); err != nil {
		t.Fatalf("clearing selection: %v", err)
	}
}

func TestActiveHistory(t *testing.T) {
	s := newTestSession()
	if _, ok := s.ActiveHistory(); ok {
		t.Fatalf("expected no history with nothing selected")
	}
	f := s.AddFriend(1)
	if err := s.SetActive(schema.FriendIndex(1)); err != nil {
		t.Fatalf("set active: %v", err)
	}
	h, ok := s.ActiveHistory()
	if !ok || h != f.History {
		t.Fatalf("active history does not resolve to the friend's history")
	}

	// Selection survives deletion; resolution reports absence.
	s.DeleteFriend(1)
	if _, ok := s.ActiveHistory(); ok {
		t.Fatalf("expected no history after contact deletion")
	}
}

func TestRequestIDsMonotonic(t *testing.T) {
	s := newTestSession()
	r1 := s.EnqueueRequest(FriendRequestPayload{}, "first")
	r2 := s.EnqueueRequest(GroupInvitePayload{Inviter: 2}, "second")
	r3 := s.EnqueueRequest(FriendRequestPayload{}, "third")
	if r1.ID != 1 || r2.ID != 2 || r3.ID != 3 {
		t.Fatalf("ids = %d,%d,%d, want 1,2,3", r1.ID, r2.ID, r3.ID)
	}

	// Removal never frees an id for reuse.
	if _, ok := s.TakeRequest(3); !ok {
		t.Fatalf("take head request failed")
	}
	r4 := s.EnqueueRequest(FriendRequestPayload{}, "fourth")
	if r4.ID != 4 {
		t.Fatalf("id after removal = %d, want 4", r4.ID)
	}
}

func TestRequestsNewestFirst(t *testing.T) {
	s := newTestSession()
	s.EnqueueRequest(FriendRequestPayload{}, "a")
	s.EnqueueRequest(FriendRequestPayload{}, "b")
	reqs := s.Requests()
	if len(reqs) != 2 || reqs[0].Text != "b" || reqs[1].Text != "a" {
		t.Fatalf("unexpected order: %+v", reqs)
	}
}

func TestTakeRequestAbsent(t *testing.T) {
	s := newTestSession()
	if _, ok := s.TakeRequest(9); ok {
		t.Fatalf("expected absence for unknown id")
	}
}

func TestRequestKindLabel(t *testing.T) {
	s := newTestSession()
	fr := s.EnqueueRequest(FriendRequestPayload{}, "")
	gi := s.EnqueueRequest(GroupInvitePayload{}, "")
	if fr.KindLabel() != "FRIEND" || gi.KindLabel() != "GROUP" {
		t.Fatalf("labels = %q, %q", fr.KindLabel(), gi.KindLabel())
	}
}

func TestFormatMessage(t *testing.T) {
	s := newTestSession()
	got := s.FormatMessage("alice", "hello")
	want := "12:30:45         alice | hello"
	if got != want {
		t.Fatalf("format = %q, want %q", got, want)
	}
}
