package storage_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// ---------------------------------------------------------------------------
// NewJSONBackend
// ---------------------------------------------------------------------------

func Test_NewJSONBackend_ReturnsNonNil(t *testing.T) {
	t.Parallel()
	b := storage.NewJSONBackend("/some/dir")
	if b == nil {
		t.Fatal("NewJSONBackend returned nil")
	}
	if b.Dir != "/some/dir" {
		t.Errorf("Dir = %q, want %q", b.Dir, "/some/dir")
	}
}

func Test_NewJSONBackend_ImplementsStorageBackend(t *testing.T) {
	t.Parallel()
	var _ storage.StorageBackend = storage.NewJSONBackend("/some/dir")
}

func Test_JSONBackend_SlotPath(t *testing.T) {
	t.Parallel()
	b := storage.NewJSONBackend(filepath.Join("base", "dir"))
	want := filepath.Join("base", "dir", "todo_items_v1.json")
	if got := b.SlotPath("todo_items_v1"); got != want {
		t.Errorf("SlotPath = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// Conformance
// ---------------------------------------------------------------------------

func Test_JSONBackend_Conformance(t *testing.T) {
	t.Parallel()
	exerciseBackend(t, storage.NewJSONBackend(t.TempDir()))
}

// ---------------------------------------------------------------------------
// WriteSlot
// ---------------------------------------------------------------------------

func Test_JSONBackend_WriteSlot_CreatesNestedDirectories(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	b := storage.NewJSONBackend(dir)

	if err := b.WriteSlot("todo_items_v1", []byte(`[]`)); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}
	if _, err := os.Stat(b.SlotPath("todo_items_v1")); err != nil {
		t.Fatalf("slot file not created: %v", err)
	}
}

func Test_JSONBackend_WriteSlot_IndentsWithTrailingNewline(t *testing.T) {
	t.Parallel()
	b := storage.NewJSONBackend(t.TempDir())

	if err := b.WriteSlot("k", []byte(`[{"id":"1","text":"x","notes":"","completed":false}]`)); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}

	data, err := os.ReadFile(b.SlotPath("k"))
	if err != nil {
		t.Fatalf("read slot file: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("slot file does not end with a newline")
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Errorf("slot file not indented with 2 spaces:\n%s", data)
	}
}

func Test_JSONBackend_WriteSlot_NonJSONWrittenVerbatim(t *testing.T) {
	t.Parallel()
	b := storage.NewJSONBackend(t.TempDir())

	if err := b.WriteSlot("k", []byte("not json")); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}
	got, err := b.ReadSlot("k")
	if err != nil {
		t.Fatalf("ReadSlot: %v", err)
	}
	if string(got) != "not json\n" {
		t.Errorf("ReadSlot = %q, want %q", got, "not json\n")
	}
}

func Test_JSONBackend_WriteSlot_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	b := storage.NewJSONBackend(dir)

	for i := 0; i < 5; i++ {
		if err := b.WriteSlot("k", []byte(sampleList)); err != nil {
			t.Fatalf("WriteSlot #%d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly 1 file in slot dir, got %d", len(entries))
	}
}

func Test_JSONBackend_WriteSlot_DirIsAFile(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	b := storage.NewJSONBackend(blocker)
	if err := b.WriteSlot("k", []byte(`[]`)); err == nil {
		t.Fatal("WriteSlot succeeded with a file in place of the directory")
	}
}

// ---------------------------------------------------------------------------
// ReadSlot
// ---------------------------------------------------------------------------

func Test_JSONBackend_ReadSlot_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		contents  *string // nil means no file
		wantEmpty bool
		want      string
	}{
		{
			name:      "missing file is empty slot",
			contents:  nil,
			wantEmpty: true,
		},
		{
			name:     "corrupt contents returned as stored",
			contents: ptr("{{{invalid"),
			want:     "{{{invalid",
		},
		{
			name:     "zero-length file returned as empty bytes",
			contents: ptr(""),
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := storage.NewJSONBackend(t.TempDir())
			if tt.contents != nil {
				if err := os.WriteFile(b.SlotPath("k"), []byte(*tt.contents), 0o644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			got, err := b.ReadSlot("k")
			if tt.wantEmpty {
				if !errors.Is(err, storage.ErrSlotEmpty) {
					t.Fatalf("error = %v, want ErrSlotEmpty", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadSlot: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadSlot = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_JSONBackend_ReadSlot_DirectoryInPlaceOfFile(t *testing.T) {
	t.Parallel()
	b := storage.NewJSONBackend(t.TempDir())
	if err := os.MkdirAll(b.SlotPath("k"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := b.ReadSlot("k")
	if err == nil || errors.Is(err, storage.ErrSlotEmpty) {
		t.Fatalf("error = %v, want a read error", err)
	}
}

func ptr(s string) *string { return &s }
