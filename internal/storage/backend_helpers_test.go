package storage_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// ---------------------------------------------------------------------------
// Shared conformance checks, run against every backend
// ---------------------------------------------------------------------------

const sampleList = `[{"id":"1","text":"Buy milk","notes":"","completed":false},{"id":"2","text":"Walk dog","notes":"leash","completed":true}]`

// requireJSONEqual compares two JSON documents structurally, ignoring
// whitespace differences introduced by indenting or JSONB normalization.
func requireJSONEqual(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("want is not JSON: %v\n%s", err, want)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("got is not JSON: %v\n%s", err, got)
	}
	if !reflect.DeepEqual(w, g) {
		t.Errorf("JSON mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

// exerciseBackend runs the behaviour every StorageBackend must share.
func exerciseBackend(t *testing.T, b storage.StorageBackend) {
	t.Helper()

	t.Run("empty slot reports ErrSlotEmpty", func(t *testing.T) {
		_, err := b.ReadSlot("never_written")
		if !errors.Is(err, storage.ErrSlotEmpty) {
			t.Fatalf("ReadSlot error = %v, want ErrSlotEmpty", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		if err := b.WriteSlot("round_trip", []byte(sampleList)); err != nil {
			t.Fatalf("WriteSlot: %v", err)
		}
		got, err := b.ReadSlot("round_trip")
		if err != nil {
			t.Fatalf("ReadSlot: %v", err)
		}
		requireJSONEqual(t, []byte(sampleList), got)
	})

	t.Run("overwrite replaces contents", func(t *testing.T) {
		if err := b.WriteSlot("overwrite", []byte(sampleList)); err != nil {
			t.Fatalf("first WriteSlot: %v", err)
		}
		if err := b.WriteSlot("overwrite", []byte(`[]`)); err != nil {
			t.Fatalf("second WriteSlot: %v", err)
		}
		got, err := b.ReadSlot("overwrite")
		if err != nil {
			t.Fatalf("ReadSlot: %v", err)
		}
		requireJSONEqual(t, []byte(`[]`), got)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		if err := b.WriteSlot("slot_a", []byte(`[{"id":"a","text":"A","notes":"","completed":false}]`)); err != nil {
			t.Fatalf("WriteSlot a: %v", err)
		}
		if err := b.WriteSlot("slot_b", []byte(`[]`)); err != nil {
			t.Fatalf("WriteSlot b: %v", err)
		}
		got, err := b.ReadSlot("slot_a")
		if err != nil {
			t.Fatalf("ReadSlot a: %v", err)
		}
		requireJSONEqual(t, []byte(`[{"id":"a","text":"A","notes":"","completed":false}]`), got)
	})

	t.Run("invalid keys rejected", func(t *testing.T) {
		for _, key := range []string{"", ".", "..", "a/b", `a\b`, "a\x00b"} {
			if err := b.WriteSlot(key, []byte(`[]`)); err == nil {
				t.Errorf("WriteSlot(%q) succeeded, want error", key)
			}
			if _, err := b.ReadSlot(key); err == nil || errors.Is(err, storage.ErrSlotEmpty) {
				t.Errorf("ReadSlot(%q) error = %v, want key error", key, err)
			}
		}
	})
}
