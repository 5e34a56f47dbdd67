package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name     string
		effect   string
		waveform string
		params   []Param
		expected string
	}{
		{
			name:     "sub-unit value carries three decimals",
			effect:   "filter-low-pass-12db",
			waveform: "noise",
			params:   []Param{{Name: "cutoff", Value: 1000.0}, {Name: "q", Value: 0.707}},
			expected: "filter-low-pass-12db_noise_cutoff-1000_q-0.707",
		},
		{
			name:     "integer-valued params",
			effect:   "bitcrusher",
			waveform: "sawtooth",
			params:   []Param{{Name: "bits-to-crush", Value: 8, Int: true}},
			expected: "bitcrusher_sawtooth_bits-to-crush-8",
		},
		{
			name:     "no params",
			effect:   "gain",
			waveform: "sine",
			params:   nil,
			expected: "gain_sine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.effect, tt.waveform, tt.params); got != tt.expected {
				t.Errorf("Description = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEncodeEffectProject(t *testing.T) {
	data, err := EncodeEffectProject("gain", "noise", []Param{{Name: "ceiling", Value: 0.1}})
	if err != nil {
		t.Fatalf("EncodeEffectProject returned error: %v", err)
	}
	doc := string(data)

	if !strings.HasPrefix(doc, "---\n") {
		t.Error("document does not start with a marker")
	}
	for _, want := range []string{
		`title: "gain_noise_ceiling-0.100"`,
		"waveform: noise",
		"frequency: 0.0",
		"ceiling: 0.1",
		"bpm: 240.0",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestEncodeEffectProjectSineFrequency(t *testing.T) {
	data, err := EncodeEffectProject("gain", "sine", []Param{{Name: "ceiling", Value: 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "frequency: 440.0") {
		t.Error("non-noise source should sound A4")
	}
}

func TestWriteEffectProjects(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "effect-projects")
	paths, err := WriteEffectProjects(dir)
	if err != nil {
		t.Fatalf("WriteEffectProjects returned error: %v", err)
	}

	// Every effect in the table has two waveforms and two configs.
	want := len(Effects()) * 2 * 2
	if len(paths) != want {
		t.Errorf("wrote %d projects, want %d", len(paths), want)
	}
	for _, path := range paths {
		if filepath.Ext(path) != ".yaml" {
			t.Errorf("unexpected extension on %q", path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing project file: %v", err)
		}
	}
}
