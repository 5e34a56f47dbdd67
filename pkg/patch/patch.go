// Package patch defines the preset document model written for the sound engine
package patch

// Patch is one synthesizer preset, assembled from a single sound-bank row.
type Patch struct {
	Name string `yaml:"name"`

	Oscillator1      Oscillator `yaml:"oscillator-1"`
	Oscillator2      Oscillator `yaml:"oscillator-2"`
	Oscillator2Track bool       `yaml:"oscillator-2-track"`
	Oscillator2Sync  bool       `yaml:"oscillator-2-sync"`

	Noise float64 `yaml:"noise"`

	LFO LFO `yaml:"lfo"`

	Glide     float64   `yaml:"glide"`
	Unison    bool      `yaml:"unison"`
	Polyphony Polyphony `yaml:"polyphony"`

	// The source book lists alternate cutoff settings depending on whether
	// the target synth has a 24dB or 12dB filter; both are carried.
	FilterType24DB       Filter   `yaml:"filter-type-24db"`
	FilterType12DB       Filter   `yaml:"filter-type-12db"`
	FilterResonance      float64  `yaml:"filter-resonance"`
	FilterEnvelopeWeight float64  `yaml:"filter-envelope-weight"`
	FilterEnvelope       Envelope `yaml:"filter-envelope"`

	AmpEnvelope Envelope `yaml:"amp-envelope"`
}

// Oscillator describes one oscillator. MixPct and MixDB are two independent
// encodings of the same physical level; neither is derived from the other.
type Oscillator struct {
	Waveform Waveform `yaml:"waveform"`
	Tune     Tune     `yaml:"tune"`
	MixPct   float64  `yaml:"mix-pct"`
	MixDB    float64  `yaml:"mix-db"`
}

// LFO describes the low-frequency oscillator and its modulation target.
type LFO struct {
	Routing   string   `yaml:"routing"`
	Waveform  Waveform `yaml:"waveform"`
	Frequency float64  `yaml:"frequency"`
	Depth     Depth    `yaml:"depth"`
}

// Filter carries a cutoff both in Hz and as a unit fraction of the sweep range.
type Filter struct {
	CutoffHz  int     `yaml:"cutoff-hz"`
	CutoffPct float64 `yaml:"cutoff-pct"`
}

// Envelope is an ADSR descriptor. Attack is plain seconds and sustain a unit
// fraction. Decay and release admit the "max" sentinel, whose resolved value
// can be absent (amp release with no configured ceiling), so both are
// pointers; nil marshals as an explicit null.
type Envelope struct {
	Attack  float64  `yaml:"attack"`
	Decay   *float64 `yaml:"decay"`
	Sustain float64  `yaml:"sustain"`
	Release *float64 `yaml:"release"`
}

// Seconds returns a pointer to v, for envelope stage values.
func Seconds(v float64) *float64 {
	return &v
}
