package engine

import "pkt.systems/minitalk/schema"

// EventType identifies the event payload.
type EventType string

const (
	// EventSelfConnection reports our own connectivity changing.
	EventSelfConnection EventType = "self_connection"
	// EventFriendConnection reports a peer's connectivity changing.
	EventFriendConnection EventType = "friend_connection"
	// EventFriendMessage carries an inbound one-to-one message.
	EventFriendMessage EventType = "friend_message"
	// EventFriendName reports a peer renaming themselves.
	EventFriendName EventType = "friend_name"
	// EventFriendStatus reports a peer's status text changing.
	EventFriendStatus EventType = "friend_status"
	// EventFriendRequest carries an inbound friend request.
	EventFriendRequest EventType = "friend_request"
	// EventGroupInvite carries an inbound group invite.
	EventGroupInvite EventType = "group_invite"
	// EventGroupTitle reports a group title changing.
	EventGroupTitle EventType = "group_title"
	// EventGroupMessage carries an inbound group message.
	EventGroupMessage EventType = "group_message"
	// EventGroupPeersChanged carries a group's rebuilt peer snapshot.
	EventGroupPeersChanged EventType = "group_peers_changed"
	// EventGroupPeerName reports one snapshot entry's name changing.
	EventGroupPeerName EventType = "group_peer_name"
)

// Event is one engine-delivered event. Type selects which fields are
// meaningful.
type Event struct {
	Type EventType

	Friend schema.FriendID
	Group  schema.GroupID

	Conn           schema.ConnState
	MessageKind    schema.MessageKind
	ConferenceKind schema.ConferenceKind
	PublicKey      schema.PublicKey
	Cookie         []byte
	Text           string

	// PeerIndex addresses an entry of the group's peer snapshot.
	PeerIndex int
	// FromSelf marks group messages echoing our own sends.
	FromSelf bool
	// Peers is the full replacement snapshot for EventGroupPeersChanged.
	Peers []schema.GroupPeer
}
