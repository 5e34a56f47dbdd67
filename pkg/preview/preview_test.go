package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"bank2patch/pkg/patch"
)

func TestAuditionNote(t *testing.T) {
	tests := []struct {
		name     string
		patch    *patch.Patch
		expected uint8
	}{
		{
			name:     "defaults to middle C",
			patch:    &patch.Patch{Name: "pad"},
			expected: 60,
		},
		{
			name: "oscillator 1 note wins",
			patch: &patch.Patch{
				Oscillator1: patch.Oscillator{Tune: patch.NoteTune(35)},
				Oscillator2: patch.Oscillator{Tune: patch.NoteTune(72)},
			},
			expected: 35,
		},
		{
			name: "falls back to oscillator 2",
			patch: &patch.Patch{
				Oscillator2: patch.Oscillator{Tune: patch.NoteTune(72)},
			},
			expected: 72,
		},
		{
			name: "out-of-range note clamps to middle C",
			patch: &patch.Patch{
				Oscillator1: patch.Oscillator{Tune: patch.NoteTune(200)},
			},
			expected: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auditionNote(tt.patch); got != tt.expected {
				t.Errorf("auditionNote = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRender(t *testing.T) {
	data, err := Render(&patch.Patch{Name: "cello", Oscillator1: patch.Oscillator{Tune: patch.NoteTune(48)}})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Errorf("output does not start with an SMF header: % x", data[:8])
	}
	if !bytes.Contains(data, []byte("MTrk")) {
		t.Error("output has no track chunk")
	}
}

func TestRenderNilPatch(t *testing.T) {
	if _, err := Render(nil); err == nil {
		t.Error("expected error for nil patch")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cello.mid")
	if err := WriteFile(&patch.Patch{Name: "cello"}, path); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("wrote an empty file")
	}
}
