package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// MaxEventSize is the largest client event accepted, in bytes. Form
// events are tiny; anything larger is a hostile or broken client.
const MaxEventSize = 64 * 1024

// EventType identifies a client event.
type EventType string

const (
	// EventChange carries a field's new raw value and input kind.
	EventChange EventType = "change"

	// EventBlur marks a field as touched.
	EventBlur EventType = "blur"

	// EventSubmit requests a submission attempt.
	EventSubmit EventType = "submit"

	// EventReset restores the form to its initial state.
	EventReset EventType = "reset"

	// EventPatch applies a JSON merge patch to the values.
	EventPatch EventType = "patch"
)

// ClientEvent is a message from the client to the server.
type ClientEvent struct {
	Type  EventType       `json:"type"`
	Field string          `json:"field,omitempty"`
	Value any             `json:"value,omitempty"`
	Kind  string          `json:"kind,omitempty"`
	Patch json.RawMessage `json:"patch,omitempty"`
}

// Snapshot is the full form state pushed to the client after every
// mutation.
type Snapshot struct {
	Type        string            `json:"type"`
	Values      map[string]any    `json:"values"`
	Errors      map[string]string `json:"errors"`
	Touched     map[string]bool   `json:"touched"`
	Submitting  bool              `json:"submitting"`
	Valid       bool              `json:"valid"`
	SubmitCount int               `json:"submitCount"`
	SubmitError string            `json:"submitError,omitempty"`
}

// SnapshotType is the Type value of every Snapshot message.
const SnapshotType = "state"

// DecodeEvent parses and validates a client event.
func DecodeEvent(data []byte) (*ClientEvent, error) {
	if len(data) > MaxEventSize {
		return nil, fmt.Errorf("protocol: event exceeds %d bytes", MaxEventSize)
	}

	var ev ClientEvent
	if err := sonic.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("protocol: decode event: %w", err)
	}

	switch ev.Type {
	case EventChange, EventBlur:
		if ev.Field == "" {
			return nil, fmt.Errorf("protocol: %s event without field", ev.Type)
		}
	case EventSubmit, EventReset:
	case EventPatch:
		if len(ev.Patch) == 0 {
			return nil, fmt.Errorf("protocol: patch event without document")
		}
	default:
		return nil, fmt.Errorf("protocol: unknown event type %q", ev.Type)
	}

	return &ev, nil
}

// EncodeEvent serializes a client event.
func EncodeEvent(ev *ClientEvent) ([]byte, error) {
	data, err := sonic.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode event: %w", err)
	}
	return data, nil
}

// EncodeSnapshot serializes a state snapshot. The Type field is forced
// to SnapshotType.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	s.Type = SnapshotType
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a state snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := sonic.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("protocol: decode snapshot: %w", err)
	}
	if s.Type != SnapshotType {
		return nil, fmt.Errorf("protocol: unexpected message type %q", s.Type)
	}
	return &s, nil
}
