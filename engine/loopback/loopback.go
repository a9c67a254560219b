// Package loopback implements the engine boundary in-process. Every added
// friend is an echo peer that comes online and repeats messages back, so the
// client can be exercised end to end without the real transport. It doubles
// as the test engine.
package loopback

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"pkt.systems/minitalk/engine"
	"pkt.systems/minitalk/schema"
	"pkt.systems/pslog"
)

const stepInterval = 50 * time.Millisecond

// Engine error codes reported through engine.Error.
const (
	codeBadAddress = iota + 1
	codeUnknownFriend
	codeUnknownGroup
)

// Options configures a loopback engine.
type Options struct {
	// Savedata restores a previous session's state blob.
	Savedata []byte
	// QueueDepth bounds the event queue; zero means the default.
	QueueDepth int
	Logger     pslog.Logger
}

type peer struct {
	Name       string           `json:"name"`
	StatusText string           `json:"status_text"`
	PublicKey  schema.PublicKey `json:"public_key"`
	online     bool
}

type group struct {
	title string
	peers []schema.GroupPeer
}

type savedata struct {
	Name       string                    `json:"name"`
	StatusText string                    `json:"status_text"`
	PublicKey  schema.PublicKey          `json:"public_key"`
	Friends    map[schema.FriendID]*peer `json:"friends"`
	NextFriend uint32                    `json:"next_friend"`
}

// Engine is the in-process loopback engine.
type Engine struct {
	q   *engine.Queue
	log pslog.Logger

	state     savedata
	groups    map[schema.GroupID]*group
	nextGroup uint32
	started   bool
	echoes    []engine.Event
}

// New constructs a loopback engine, restoring the savedata blob if present.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	e := &Engine{
		q:      engine.NewQueue(opts.QueueDepth, logger),
		log:    logger.With("engine", "loopback"),
		groups: make(map[schema.GroupID]*group),
		state: savedata{
			Friends: make(map[schema.FriendID]*peer),
		},
	}
	if len(opts.Savedata) > 0 {
		if err := json.Unmarshal(opts.Savedata, &e.state); err != nil {
			return nil, fmt.Errorf("restore savedata: %w", err)
		}
		if e.state.Friends == nil {
			e.state.Friends = make(map[schema.FriendID]*peer)
		}
		e.log.Debug("savedata restored", "friends", len(e.state.Friends))
	} else {
		if _, err := rand.Read(e.state.PublicKey[:]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Step performs one iteration: brings pending peers online and delivers
// queued echoes.
func (e *Engine) Step() time.Duration {
	if !e.started {
		e.started = true
		e.q.Emit(engine.Event{Type: engine.EventSelfConnection, Conn: schema.ConnUDP})
	}
	for id, p := range e.state.Friends {
		if !p.online {
			p.online = true
			e.q.Emit(engine.Event{Type: engine.EventFriendConnection, Friend: id, Conn: schema.ConnUDP})
		}
	}
	for _, ev := range e.echoes {
		e.q.Emit(ev)
	}
	e.echoes = nil
	return stepInterval
}

// Events returns the queue the loop drains.
func (e *Engine) Events() <-chan engine.Event {
	return e.q.C()
}

// Bootstrap is a no-op; there is no network.
func (e *Engine) Bootstrap(nodes []schema.BootstrapNode) error {
	e.log.Debug("bootstrap ignored", "nodes", len(nodes))
	return nil
}

// Savedata serializes the engine state. The blob is opaque to the client.
func (e *Engine) Savedata() []byte {
	data, err := json.Marshal(e.state)
	if err != nil {
		e.log.Error("savedata marshal failed", "err", err)
		return nil
	}
	return data
}

// SelfAddress returns the shareable address: the public key plus a checksum
// placeholder.
func (e *Engine) SelfAddress() schema.Address {
	addr := make(schema.Address, schema.PublicKeySize+6)
	copy(addr, e.state.PublicKey[:])
	return addr
}

// SelfInfo returns our own name, status and key.
func (e *Engine) SelfInfo() engine.FriendInfo {
	return engine.FriendInfo{
		Name:       e.state.Name,
		StatusText: e.state.StatusText,
		PublicKey:  e.state.PublicKey,
	}
}

// SetName stores our display name.
func (e *Engine) SetName(name string) error {
	e.state.Name = name
	return nil
}

// SetStatusText stores our status message.
func (e *Engine) SetStatusText(text string) error {
	e.state.StatusText = text
	return nil
}

// Friends lists peers restored from savedata.
func (e *Engine) Friends() []engine.FriendInfo {
	out := make([]engine.FriendInfo, 0, len(e.state.Friends))
	for id, p := range e.state.Friends {
		out = append(out, engine.FriendInfo{
			ID:         id,
			Name:       p.Name,
			StatusText: p.StatusText,
			PublicKey:  p.PublicKey,
		})
	}
	return out
}

// FriendAdd creates an echo peer for the given address.
func (e *Engine) FriendAdd(address schema.Address, message string) (schema.FriendID, error) {
	if len(address) < schema.PublicKeySize {
		return 0, &engine.Error{Op: "friend add", Code: codeBadAddress}
	}
	var key schema.PublicKey
	copy(key[:], address)
	return e.addPeer(key), nil
}

// FriendAddNoRequest accepts an inbound friend request.
func (e *Engine) FriendAddNoRequest(key schema.PublicKey) (schema.FriendID, error) {
	return e.addPeer(key), nil
}

func (e *Engine) addPeer(key schema.PublicKey) schema.FriendID {
	id := schema.FriendID(e.state.NextFriend)
	e.state.NextFriend++
	e.state.Friends[id] = &peer{
		Name:       fmt.Sprintf("echo-%d", id),
		StatusText: "repeats everything",
		PublicKey:  key,
	}
	return id
}

// FriendDelete forgets a peer.
func (e *Engine) FriendDelete(id schema.FriendID) error {
	if _, ok := e.state.Friends[id]; !ok {
		return &engine.Error{Op: "friend delete", Code: codeUnknownFriend}
	}
	delete(e.state.Friends, id)
	return nil
}

// SendFriendMessage queues an echo of the message for the next step.
func (e *Engine) SendFriendMessage(id schema.FriendID, kind schema.MessageKind, text string) error {
	if _, ok := e.state.Friends[id]; !ok {
		return &engine.Error{Op: "friend send", Code: codeUnknownFriend}
	}
	e.echoes = append(e.echoes, engine.Event{
		Type:        engine.EventFriendMessage,
		Friend:      id,
		MessageKind: kind,
		Text:        text,
	})
	return nil
}

// GroupCreate makes a group containing ourselves and a parrot peer.
func (e *Engine) GroupCreate() (schema.GroupID, error) {
	id := schema.GroupID(e.nextGroup)
	e.nextGroup++
	var parrotKey schema.PublicKey
	if _, err := rand.Read(parrotKey[:]); err != nil {
		return 0, err
	}
	g := &group{
		peers: []schema.GroupPeer{
			{PublicKey: e.state.PublicKey, Name: e.state.Name},
			{PublicKey: parrotKey, Name: "parrot"},
		},
	}
	e.groups[id] = g
	e.echoes = append(e.echoes, engine.Event{
		Type:  engine.EventGroupPeersChanged,
		Group: id,
		Peers: append([]schema.GroupPeer(nil), g.peers...),
	})
	return id, nil
}

// GroupJoin accepts any cookie and behaves like GroupCreate.
func (e *Engine) GroupJoin(inviter schema.FriendID, cookie []byte) (schema.GroupID, error) {
	if _, ok := e.state.Friends[inviter]; !ok {
		return 0, &engine.Error{Op: "group join", Code: codeUnknownFriend}
	}
	return e.GroupCreate()
}

// GroupInvite pretends to deliver an invite.
func (e *Engine) GroupInvite(friend schema.FriendID, groupID schema.GroupID) error {
	if _, ok := e.state.Friends[friend]; !ok {
		return &engine.Error{Op: "group invite", Code: codeUnknownFriend}
	}
	if _, ok := e.groups[groupID]; !ok {
		return &engine.Error{Op: "group invite", Code: codeUnknownGroup}
	}
	return nil
}

// GroupDelete forgets a group.
func (e *Engine) GroupDelete(id schema.GroupID) error {
	if _, ok := e.groups[id]; !ok {
		return &engine.Error{Op: "group delete", Code: codeUnknownGroup}
	}
	delete(e.groups, id)
	return nil
}

// GroupSetTitle stores the title and reports it back as a title event.
func (e *Engine) GroupSetTitle(id schema.GroupID, title string) error {
	g, ok := e.groups[id]
	if !ok {
		return &engine.Error{Op: "group set title", Code: codeUnknownGroup}
	}
	g.title = title
	e.echoes = append(e.echoes, engine.Event{
		Type:  engine.EventGroupTitle,
		Group: id,
		Text:  title,
	})
	return nil
}

// GroupPeers returns the group's peer snapshot.
func (e *Engine) GroupPeers(id schema.GroupID) ([]schema.GroupPeer, error) {
	g, ok := e.groups[id]
	if !ok {
		return nil, &engine.Error{Op: "group peers", Code: codeUnknownGroup}
	}
	return append([]schema.GroupPeer(nil), g.peers...), nil
}

// SendGroupMessage queues a parrot echo from peer index 1.
func (e *Engine) SendGroupMessage(id schema.GroupID, kind schema.MessageKind, text string) error {
	if _, ok := e.groups[id]; !ok {
		return &engine.Error{Op: "group send", Code: codeUnknownGroup}
	}
	e.echoes = append(e.echoes, engine.Event{
		Type:        engine.EventGroupMessage,
		Group:       id,
		PeerIndex:   1,
		MessageKind: kind,
		Text:        text,
	})
	return nil
}

var _ engine.Engine = (*Engine)(nil)
