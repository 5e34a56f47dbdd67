package patch

import "fmt"

// The variant types below mirror the engine's externally-tagged enum forms:
// a bare string for unit variants ("sine-wave", "none", "mono") and a
// single-key mapping for variants with a payload ({pulse-width: 0.25},
// {note: 35}, {pct: 0.1}, {multi-limit: 4}). Each is exhaustive and exclusive
// by construction; only the constructors below can produce one.

type waveformKind int

const (
	waveformNone waveformKind = iota
	waveformNamed
	waveformPulse
)

// Waveform is a named waveform, a pulse wave with an explicit duty cycle, or
// the absence marker for an empty cell.
type Waveform struct {
	kind waveformKind
	name string
	duty float64
}

// NamedWaveform returns a waveform identified by a normalized name.
func NamedWaveform(name string) Waveform {
	return Waveform{kind: waveformNamed, name: name}
}

// PulseWaveform returns a pulse wave with the given duty cycle (unit fraction).
func PulseWaveform(duty float64) Waveform {
	return Waveform{kind: waveformPulse, duty: duty}
}

// NoWaveform returns the absence marker.
func NoWaveform() Waveform {
	return Waveform{kind: waveformNone}
}

// IsNone reports whether the waveform cell was empty.
func (w Waveform) IsNone() bool {
	return w.kind == waveformNone
}

func (w Waveform) String() string {
	switch w.kind {
	case waveformNamed:
		return w.name
	case waveformPulse:
		return fmt.Sprintf("pulse-width %.2f", w.duty)
	default:
		return "none"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (w Waveform) MarshalYAML() (interface{}, error) {
	switch w.kind {
	case waveformNamed:
		return w.name, nil
	case waveformPulse:
		return map[string]float64{"pulse-width": w.duty}, nil
	default:
		return "none", nil
	}
}

type tuneKind int

const (
	tuneNoTranspose tuneKind = iota
	tuneNote
	tuneOffsets
)

// Tune is an oscillator's frequency-offset encoding: an absolute note number,
// a no-transposition marker, or an octave/semitone/cent offset triple. A
// present note makes the triple irrelevant.
type Tune struct {
	kind                tuneKind
	note                int
	octave, semi, cents int
}

// NoteTune returns a tune fixed to an absolute note number.
func NoteTune(note int) Tune {
	return Tune{kind: tuneNote, note: note}
}

// NoTranspose returns the marker used when all offsets are zero.
func NoTranspose() Tune {
	return Tune{kind: tuneNoTranspose}
}

// OffsetTune returns an octave/semitone/cent offset triple.
func OffsetTune(octave, semi, cents int) Tune {
	return Tune{kind: tuneOffsets, octave: octave, semi: semi, cents: cents}
}

// AbsoluteNote returns the note number when the tune is an absolute note.
func (t Tune) AbsoluteNote() (int, bool) {
	return t.note, t.kind == tuneNote
}

// MarshalYAML implements yaml.Marshaler.
func (t Tune) MarshalYAML() (interface{}, error) {
	switch t.kind {
	case tuneNote:
		return map[string]int{"note": t.note}, nil
	case tuneOffsets:
		type offsets struct {
			Octave int `yaml:"octave"`
			Semi   int `yaml:"semi"`
			Cent   int `yaml:"cent"`
		}
		return map[string]offsets{"osc": {Octave: t.octave, Semi: t.semi, Cent: t.cents}}, nil
	default:
		return map[string]float64{"float": 1.0}, nil
	}
}

type depthKind int

const (
	depthNone depthKind = iota
	depthPct
	depthCents
)

// Depth is an LFO modulation depth: a unit-fraction percentage, a cent
// offset, or the absence marker.
type Depth struct {
	kind  depthKind
	value float64
}

// PctDepth returns a percentage depth (already a unit fraction).
func PctDepth(pct float64) Depth {
	return Depth{kind: depthPct, value: pct}
}

// CentsDepth returns a cent-offset depth.
func CentsDepth(cents float64) Depth {
	return Depth{kind: depthCents, value: cents}
}

// NoDepth returns the absence marker.
func NoDepth() Depth {
	return Depth{kind: depthNone}
}

// IsNone reports whether the depth is absent.
func (d Depth) IsNone() bool {
	return d.kind == depthNone
}

// MarshalYAML implements yaml.Marshaler.
func (d Depth) MarshalYAML() (interface{}, error) {
	switch d.kind {
	case depthPct:
		return map[string]float64{"pct": d.value}, nil
	case depthCents:
		return map[string]float64{"cents": d.value}, nil
	default:
		return "none", nil
	}
}

// Polyphony is either a positive multi-voice limit or a named mode such as
// "mono" or "legato".
type Polyphony struct {
	limit int
	mode  string
}

// MultiLimit returns a voice-count-limited polyphony setting.
func MultiLimit(voices int) Polyphony {
	return Polyphony{limit: voices}
}

// PolyphonyMode returns a named polyphony mode.
func PolyphonyMode(mode string) Polyphony {
	return Polyphony{mode: mode}
}

func (p Polyphony) String() string {
	if p.limit > 0 {
		return fmt.Sprintf("multi-limit %d", p.limit)
	}
	return p.mode
}

// MarshalYAML implements yaml.Marshaler.
func (p Polyphony) MarshalYAML() (interface{}, error) {
	if p.limit > 0 {
		return map[string]int{"multi-limit": p.limit}, nil
	}
	return p.mode, nil
}
