package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestVariantMarshaling(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"named waveform", NamedWaveform("sawtooth"), "sawtooth\n"},
		{"pulse waveform", PulseWaveform(0.25), "pulse-width: 0.25\n"},
		{"absent waveform", NoWaveform(), "none\n"},
		{"note tune", NoteTune(35), "note: 35\n"},
		{"no transposition", NoTranspose(), "float: 1\n"},
		{"offset tune", OffsetTune(-1, 0, 10), "osc:\n    octave: -1\n    semi: 0\n    cent: 10\n"},
		{"percentage depth", PctDepth(0.2), "pct: 0.2\n"},
		{"cents depth", CentsDepth(50.0), "cents: 50\n"},
		{"absent depth", NoDepth(), "none\n"},
		{"voice limit", MultiLimit(4), "multi-limit: 4\n"},
		{"mono mode", PolyphonyMode("mono"), "mono\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := yaml.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal returned error: %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("Marshal = %q, want %q", data, tt.expected)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	p := &Patch{
		Name: "cello",
		Oscillator1: Oscillator{
			Waveform: NamedWaveform("sine-wave"),
			Tune:     NoteTune(35),
			MixPct:   0.5,
		},
		Oscillator2: Oscillator{
			Waveform: PulseWaveform(0.25),
			Tune:     OffsetTune(-1, 0, 10),
			MixPct:   0.5,
			MixDB:    -6.5,
		},
		Noise: 0.1,
		LFO: LFO{
			Routing:   "filter-cutoff",
			Waveform:  NamedWaveform("triangle"),
			Frequency: 5.5,
			Depth:     PctDepth(0.2),
		},
		Glide:                0.1,
		Polyphony:            PolyphonyMode("mono"),
		FilterType24DB:       Filter{CutoffHz: 1200, CutoffPct: 0.6},
		FilterResonance:      0.3,
		FilterEnvelopeWeight: 0.4,
		FilterEnvelope: Envelope{
			Attack:  0.1,
			Decay:   Seconds(0.5),
			Sustain: 0.8,
			Release: Seconds(30.0),
		},
		AmpEnvelope: Envelope{
			Sustain: 1.0,
			Decay:   Seconds(0.0),
		},
	}

	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Fatalf("document does not start with a marker:\n%s", data)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("encoded document does not parse back: %v", err)
	}

	want := map[string]interface{}{
		"name": "cello",
		"oscillator-1": map[string]interface{}{
			"waveform": "sine-wave",
			"tune":     map[string]interface{}{"note": 35},
			"mix-pct":  0.5,
			"mix-db":   0,
		},
		"oscillator-2": map[string]interface{}{
			"waveform": map[string]interface{}{"pulse-width": 0.25},
			"tune": map[string]interface{}{
				"osc": map[string]interface{}{"octave": -1, "semi": 0, "cent": 10},
			},
			"mix-pct": 0.5,
			"mix-db":  -6.5,
		},
		"oscillator-2-track": false,
		"oscillator-2-sync":  false,
		"noise":              0.1,
		"lfo": map[string]interface{}{
			"routing":   "filter-cutoff",
			"waveform":  "triangle",
			"frequency": 5.5,
			"depth":     map[string]interface{}{"pct": 0.2},
		},
		"glide":     0.1,
		"unison":    false,
		"polyphony": "mono",
		"filter-type-24db": map[string]interface{}{
			"cutoff-hz":  1200,
			"cutoff-pct": 0.6,
		},
		"filter-type-12db": map[string]interface{}{
			"cutoff-hz":  0,
			"cutoff-pct": 0,
		},
		"filter-resonance":       0.3,
		"filter-envelope-weight": 0.4,
		"filter-envelope": map[string]interface{}{
			"attack":  0.1,
			"decay":   0.5,
			"sustain": 0.8,
			"release": 30,
		},
		"amp-envelope": map[string]interface{}{
			"attack":  0,
			"decay":   0,
			"sustain": 1,
			"release": nil,
		},
	}

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(filepath.Join(dir, "patches"))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	p := &Patch{Name: "warm-pad", Polyphony: PolyphonyMode("mono")}
	path, err := w.Write(p)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if path != w.Path("warm-pad") {
		t.Errorf("Write path = %q, want %q", path, w.Path("warm-pad"))
	}
	if !strings.HasSuffix(path, "warm-pad.yaml") {
		t.Errorf("unexpected file name in %q", path)
	}

	want, err := Encode(p)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("file content differs from encoded document")
	}

	// A second write to the same name overwrites in place.
	p.Glide = 0.25
	if _, err := w.Write(p); err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "glide: 0.25") {
		t.Error("overwrite did not replace the document")
	}
}
