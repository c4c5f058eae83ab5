package ws

import (
	"encoding/json"
	"errors"
)

// Wire event names, client->server and server->client.
const (
	EventJoinRoom         = "join_room"
	EventSendCommand      = "send_command"
	EventControllerJoined = "controller_joined"
	EventReceiveCommand   = "receive_command"
)

// Envelope is the single JSON frame format used in both directions.
// RoomID and Action are opaque strings; the relay never interprets them.
type Envelope struct {
	Event  string `json:"event"`
	RoomID string `json:"roomId,omitempty"`
	Action string `json:"action,omitempty"`
}

var (
	errBadJSON      = errors.New("malformed frame")
	errUnknownEvent = errors.New("unknown event")
	errMissingField = errors.New("missing roomId or action")
)

// decodeEnvelope parses an inbound frame and enforces per-event required
// fields. Rejected frames are dropped at the boundary, never propagated.
func decodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, errBadJSON
	}
	switch env.Event {
	case EventJoinRoom:
		if env.RoomID == "" {
			return Envelope{}, errMissingField
		}
	case EventSendCommand:
		if env.RoomID == "" || env.Action == "" {
			return Envelope{}, errMissingField
		}
	default:
		return Envelope{}, errUnknownEvent
	}
	return env, nil
}

// controllerJoinedFrame is the notification sent to existing room members
// when a new participant joins.
func controllerJoinedFrame() []byte {
	b, _ := json.Marshal(Envelope{Event: EventControllerJoined})
	return b
}

// receiveCommandFrame carries a relayed action to a room member.
func receiveCommandFrame(action string) []byte {
	b, _ := json.Marshal(Envelope{Event: EventReceiveCommand, Action: action})
	return b
}
