package kafka

import (
	"testing"

	"github.com/google/uuid"
)

func TestMessageBuilder(t *testing.T) {
	payload := map[string]string{"final_url": "https://example.com?utm_source=a&utm_medium=b"}

	msg := NewMessage().
		WithKey("link-1").
		WithValue(payload).
		WithEventType("campaign.built").
		WithSource("utmforge").
		WithSchemaVersion("1").
		Build()

	if msg.Key != "link-1" {
		t.Errorf("expected key link-1, got %q", msg.Key)
	}
	if msg.GetEventType() != "campaign.built" {
		t.Errorf("expected event type campaign.built, got %q", msg.GetEventType())
	}
	if src, ok := msg.GetHeader(HeaderSource); !ok || src != "utmforge" {
		t.Errorf("expected source utmforge, got %q", src)
	}
	if v, ok := msg.GetHeader(HeaderSchemaVersion); !ok || v != "1" {
		t.Errorf("expected schema version 1, got %q", v)
	}
	if _, ok := msg.GetHeader(HeaderTimestamp); !ok {
		t.Error("expected a timestamp header")
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("failed to decode value: %v", err)
	}
	if decoded["final_url"] != payload["final_url"] {
		t.Errorf("payload did not round-trip: %v", decoded)
	}
}

func TestMessageBuilder_GeneratesEventID(t *testing.T) {
	msg := NewMessage().WithEventType("campaign.generated").Build()

	id := msg.GetEventID()
	if id == "" {
		t.Fatal("expected a generated event id")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("event id %q is not a valid UUID: %v", id, err)
	}

	other := NewMessage().WithEventType("campaign.generated").Build()
	if other.GetEventID() == id {
		t.Error("expected unique event ids per message")
	}
}

func TestMessageBuilder_UnmarshalableValue(t *testing.T) {
	msg := NewMessage().WithValue(make(chan int)).Build()

	if msg.Value != nil {
		t.Errorf("expected nil value for an unmarshalable payload, got %q", msg.Value)
	}
}
