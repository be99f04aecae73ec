package protocol

import (
	"bytes"
	"testing"
)

func TestDecodeChangeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"change","field":"email","value":"a@b.co","kind":"text"}`))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if ev.Type != EventChange || ev.Field != "email" || ev.Value != "a@b.co" || ev.Kind != "text" {
		t.Errorf("Unexpected event: %+v", ev)
	}
}

func TestDecodeEventValidation(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"unknown type", `{"type":"explode"}`},
		{"missing type", `{"field":"email"}`},
		{"change without field", `{"type":"change","value":"x"}`},
		{"blur without field", `{"type":"blur"}`},
		{"patch without document", `{"type":"patch"}`},
		{"not json", `{{{`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeEvent([]byte(c.data)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestDecodeEventBareSubmit(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"submit"}`))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if ev.Type != EventSubmit {
		t.Errorf("Unexpected event: %+v", ev)
	}
}

func TestDecodeEventSizeLimit(t *testing.T) {
	big := append([]byte(`{"type":"change","field":"email","value":"`),
		bytes.Repeat([]byte("x"), MaxEventSize)...)
	big = append(big, []byte(`"}`)...)

	if _, err := DecodeEvent(big); err == nil {
		t.Error("Expected oversized event rejected")
	}
}

func TestEventRoundTrip(t *testing.T) {
	in := &ClientEvent{Type: EventPatch, Patch: []byte(`{"email":"a@b.co"}`)}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if out.Type != EventPatch || string(out.Patch) != `{"email":"a@b.co"}` {
		t.Errorf("Round trip mismatch: %+v", out)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := &Snapshot{
		Values:      map[string]any{"email": "a@b.co", "age": 30.0},
		Errors:      map[string]string{"password": "Too short"},
		Touched:     map[string]bool{"email": true},
		Valid:       false,
		SubmitCount: 2,
		SubmitError: "network down",
	}

	data, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}

	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if out.Type != SnapshotType {
		t.Errorf("Expected type forced to %q, got %q", SnapshotType, out.Type)
	}
	if out.Values["email"] != "a@b.co" || out.Errors["password"] != "Too short" {
		t.Errorf("Round trip mismatch: %+v", out)
	}
	if out.SubmitCount != 2 || out.SubmitError != "network down" {
		t.Errorf("Round trip mismatch: %+v", out)
	}
}

func TestDecodeSnapshotWrongType(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"type":"change"}`)); err == nil {
		t.Error("Expected error for non-snapshot message")
	}
}
