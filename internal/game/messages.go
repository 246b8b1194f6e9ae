package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeJoin   MessageType = "join"   // Client wants to play (or watch) a game
	MsgTypeState  MessageType = "state"  // Server sends full game state
	MsgTypeSelect MessageType = "select" // Client toggles a card in the selection
	MsgTypeClear  MessageType = "clear"  // Client clears the selection
	MsgTypeHint   MessageType = "hint"   // Client asks for a hint, server answers with a Set
	MsgTypeResult MessageType = "result" // Server sends the outcome of a selection
	MsgTypePing   MessageType = "ping"   // Server pings client to measure RTT
	MsgTypePong   MessageType = "pong"   // Client responds to ping
	MsgTypeError  MessageType = "error"  // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload any) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (JoinMessage, StateMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeJoin:
		target = &JoinMessage{}
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeSelect:
		target = &SelectMessage{}
	case MsgTypeClear:
		target = &ClearMessage{}
	case MsgTypeHint:
		target = &HintMessage{}
	case MsgTypeResult:
		target = &ResultMessage{}
	case MsgTypePing:
		target = &PingMessage{}
	case MsgTypePong:
		target = &PongMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// JoinMessage is the payload for MsgTypeJoin
type JoinMessage struct {
	GameID string `json:"game_id"`
}

// StateMessage is the payload for MsgTypeState
type StateMessage struct {
	Game State `json:"game"`
}

// SelectMessage is the payload for MsgTypeSelect
type SelectMessage struct {
	Card string `json:"card"` // Card key, e.g. "red-oval-1-solid"
}

// ClearMessage: empty.
type ClearMessage struct{}

// HintMessage is the payload for MsgTypeHint. Empty when sent by the client.
type HintMessage struct {
	Cards []Card `json:"cards,omitempty"`
}

// ResultMessage is the payload for MsgTypeResult
type ResultMessage struct {
	Outcome Outcome `json:"outcome"`
	Card    string  `json:"card"`  // The card that was selected
	Score   int     `json:"score"` // Score after the selection
}

// PingMessage is the payload for MsgTypePing
type PingMessage struct {
	ServerTime int64 `json:"server_time"` // Nanoseconds since Unix epoch
}

// PongMessage is the payload for MsgTypePong
type PongMessage struct {
	ServerTime int64 `json:"server_time"` // Same value from Ping
	ClientTime int64 `json:"client_time"` // Client's own timestamp
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
