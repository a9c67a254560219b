// Package engine defines the boundary to the external peer-to-peer protocol
// implementation. The client only calls these operations and reacts to the
// events the engine delivers; transport, cryptography and the savedata blob
// format all live behind this interface.
package engine

import (
	"fmt"
	"time"

	"pkt.systems/minitalk/schema"
)

// Error is an engine-rejected operation, carrying the engine's numeric error
// code for user-visible reporting.
type Error struct {
	Op   string
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine %s failed, errcode:%d", e.Op, e.Code)
}

// FriendInfo is the engine's view of a peer, used for startup bulk-load and
// self info.
type FriendInfo struct {
	ID         schema.FriendID
	Name       string
	StatusText string
	PublicKey  schema.PublicKey
}

// Engine is the external protocol collaborator. All methods are synchronous
// and called only from the client's loop thread.
type Engine interface {
	// Step performs one protocol iteration and returns the suggested delay
	// before the next one.
	Step() time.Duration
	// Events is the bounded queue of engine-delivered events the loop
	// drains between steps.
	Events() <-chan Event
	// Bootstrap hands network entry points to the engine.
	Bootstrap(nodes []schema.BootstrapNode) error
	// Savedata serializes the engine's persistent state as an opaque blob.
	Savedata() []byte

	SelfAddress() schema.Address
	SelfInfo() FriendInfo
	SetName(name string) error
	SetStatusText(text string) error

	// Friends lists peers restored from savedata at startup.
	Friends() []FriendInfo
	FriendAdd(address schema.Address, message string) (schema.FriendID, error)
	// FriendAddNoRequest adds a peer without sending an outgoing request,
	// used when accepting an inbound friend request.
	FriendAddNoRequest(key schema.PublicKey) (schema.FriendID, error)
	FriendDelete(id schema.FriendID) error
	SendFriendMessage(id schema.FriendID, kind schema.MessageKind, text string) error

	GroupCreate() (schema.GroupID, error)
	// GroupJoin accepts a group invite using the inviter and the opaque
	// cookie from the invite event.
	GroupJoin(inviter schema.FriendID, cookie []byte) (schema.GroupID, error)
	GroupInvite(friend schema.FriendID, group schema.GroupID) error
	GroupDelete(id schema.GroupID) error
	GroupSetTitle(id schema.GroupID, title string) error
	// GroupPeers returns the full ordered peer snapshot for a group.
	GroupPeers(id schema.GroupID) ([]schema.GroupPeer, error)
	SendGroupMessage(id schema.GroupID, kind schema.MessageKind, text string) error
}
