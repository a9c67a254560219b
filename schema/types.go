package schema

import (
	"encoding/hex"
	"math"
	"strings"
)

// FriendID is the engine-assigned identifier for a one-to-one peer.
type FriendID uint32

// GroupID is the engine-assigned identifier for a multi-party conversation.
type GroupID uint32

// ContactKind distinguishes the two conversation kinds addressable by a
// contact index.
type ContactKind uint32

const (
	// KindFriend addresses a one-to-one peer conversation.
	KindFriend ContactKind = iota
	// KindGroup addresses a multi-party conversation.
	KindGroup
	// KindCount is the number of contact kinds; the index codec folds the
	// kind into the low bits modulo this value.
	KindCount
)

// ContactIndex addresses any conversation with a single integer. It encodes
// (kind, local id) as id*KindCount+kind, so distinct pairs never collide.
type ContactIndex uint32

// NoContact is the sentinel meaning "no conversation selected".
const NoContact ContactIndex = ContactIndex(math.MaxUint32)

// FriendIndex encodes a friend id as a contact index.
func FriendIndex(id FriendID) ContactIndex {
	return ContactIndex(uint32(id)*uint32(KindCount) + uint32(KindFriend))
}

// GroupIndex encodes a group id as a contact index.
func GroupIndex(id GroupID) ContactIndex {
	return ContactIndex(uint32(id)*uint32(KindCount) + uint32(KindGroup))
}

// Kind returns the contact kind encoded in the index.
func (i ContactIndex) Kind() ContactKind {
	return ContactKind(uint32(i) % uint32(KindCount))
}

// LocalID returns the engine-local identifier encoded in the index.
func (i ContactIndex) LocalID() uint32 {
	return uint32(i) / uint32(KindCount)
}

// PublicKeySize is the byte length of a peer's long-term public key.
const PublicKeySize = 32

// PublicKey is a peer's long-term public key, opaque to the client.
type PublicKey [PublicKeySize]byte

// Hex renders the key as uppercase hex, the form shown to users.
func (k PublicKey) Hex() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Address is the engine-defined shareable contact address (public key plus
// engine checksum material). Opaque to the client beyond hex display.
type Address []byte

// Hex renders the address as uppercase hex.
func (a Address) Hex() string {
	return strings.ToUpper(hex.EncodeToString(a))
}

// ParseAddress decodes a user-supplied hex address.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return Address(b), nil
}

// ConnState is a peer's (or our own) transport connectivity.
type ConnState int

const (
	// ConnNone means the peer is offline.
	ConnNone ConnState = iota
	// ConnTCP means the peer is reachable over a TCP relay.
	ConnTCP
	// ConnUDP means the peer is directly reachable over UDP.
	ConnUDP
)

// String renders the connection state the way contact listings show it.
func (c ConnState) String() string {
	switch c {
	case ConnNone:
		return "Offline"
	case ConnTCP:
		return "Online(TCP)"
	case ConnUDP:
		return "Online(UDP)"
	default:
		return "UNKNOWN"
	}
}

// MessageKind is the wire kind of a chat message.
type MessageKind int

const (
	// MessageNormal is ordinary text, the only kind the client handles.
	MessageNormal MessageKind = iota
	// MessageAction is an emote-style message; received ones are dropped
	// with a notice.
	MessageAction
)

// ConferenceKind is the media kind of a group a peer invites us to.
type ConferenceKind int

const (
	// ConferenceText is a text-only group.
	ConferenceText ConferenceKind = iota
	// ConferenceAV is an audio/video group, which the client does not
	// support.
	ConferenceAV
)

// GroupPeer is one member of a group's wholesale-replaced peer snapshot.
type GroupPeer struct {
	PublicKey PublicKey
	Name      string
}

// BootstrapNode identifies a network entry point handed to the engine.
type BootstrapNode struct {
	Host   string `mapstructure:"host" yaml:"host"`
	Port   uint16 `mapstructure:"port" yaml:"port"`
	KeyHex string `mapstructure:"key" yaml:"key"`
}
