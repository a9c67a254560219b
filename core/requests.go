package core

import "pkt.systems/minitalk/schema"

// RequestPayload is the kind-tagged payload of a pending request. Exactly one
// variant exists per request kind, so the wrong variant cannot be read.
type RequestPayload interface {
	requestPayload()
}

// FriendRequestPayload belongs to an inbound friend request.
type FriendRequestPayload struct {
	Key schema.PublicKey
}

func (FriendRequestPayload) requestPayload() {}

// GroupInvitePayload belongs to an inbound group invite.
type GroupInvitePayload struct {
	Inviter schema.FriendID
	Cookie  []byte
}

func (GroupInvitePayload) requestPayload() {}

// Request is a pending inbound decision item awaiting accept or deny.
type Request struct {
	ID      uint32
	Text    string
	Payload RequestPayload
}

// KindLabel names the request kind the way the pending listing shows it.
func (r *Request) KindLabel() string {
	switch r.Payload.(type) {
	case FriendRequestPayload:
		return "FRIEND"
	case GroupInvitePayload:
		return "GROUP"
	default:
		return "UNKNOWN"
	}
}

// EnqueueRequest prepends a pending request. Ids start at 1 and increase by
// one per creation regardless of kind; they are never reused even after
// removal.
func (s *Session) EnqueueRequest(payload RequestPayload, text string) *Request {
	s.reqSeq++
	req := &Request{ID: s.reqSeq, Text: text, Payload: payload}
	s.requests = append([]*Request{req}, s.requests...)
	return req
}

// Requests returns pending requests, newest first.
func (s *Session) Requests() []*Request {
	return s.requests
}

// TakeRequest unlinks and returns the request with the given id. The caller
// decides the accept or deny action; the request is consumed either way.
func (s *Session) TakeRequest(id uint32) (*Request, bool) {
	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return r, true
		}
	}
	return nil, false
}
