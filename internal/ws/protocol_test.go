package ws

import "testing"

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"event":"send_command","roomId":"42","action":"up"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if env.RoomID != "42" || env.Action != "up" {
		t.Errorf("decoded = %+v", env)
	}

	// The action value itself is opaque; anything non-empty passes.
	if _, err := decodeEnvelope([]byte(`{"event":"send_command","roomId":"42","action":"未知"}`)); err != nil {
		t.Errorf("opaque action rejected: %v", err)
	}
}

func TestDecodeEnvelopeRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bad json", `{{`},
		{"unknown event", `{"event":"launch"}`},
		{"join without room", `{"event":"join_room"}`},
		{"command without action", `{"event":"send_command","roomId":"42"}`},
	}
	for _, c := range cases {
		if _, err := decodeEnvelope([]byte(c.raw)); err == nil {
			t.Errorf("%s: decode succeeded, want error", c.name)
		}
	}
}
