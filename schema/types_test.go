package schema

import "testing"

func TestContactIndexRoundTrip(t *testing.T) {
	for id := uint32(0); id < 1000; id++ {
		fi := FriendIndex(FriendID(id))
		if fi.Kind() != KindFriend || fi.LocalID() != id {
			t.Fatalf("friend %d round-tripped to (%v, %d)", id, fi.Kind(), fi.LocalID())
		}
		gi := GroupIndex(GroupID(id))
		if gi.Kind() != KindGroup || gi.LocalID() != id {
			t.Fatalf("group %d round-tripped to (%v, %d)", id, gi.Kind(), gi.LocalID())
		}
		if fi == gi {
			t.Fatalf("friend and group index collide at id %d", id)
		}
	}
}

func TestContactIndexSentinel(t *testing.T) {
	if FriendIndex(0) == NoContact || GroupIndex(0) == NoContact {
		t.Fatalf("sentinel collides with a real index")
	}
}

func TestConnStateString(t *testing.T) {
	cases := []struct {
		state ConnState
		want  string
	}{
		{ConnNone, "Offline"},
		{ConnTCP, "Online(TCP)"},
		{ConnUDP, "Online(UDP)"},
		{ConnState(42), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Fatalf("ConnState(%d) = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("00ff10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if addr.Hex() != "00FF10" {
		t.Fatalf("hex round trip = %q", addr.Hex())
	}
	if _, err := ParseAddress("zz"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
}
