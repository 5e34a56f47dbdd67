package bank

// Column positions in the sound-bank CSV. Cells are addressed strictly by
// these fixed zero-based positions; there is no header-name binding, so a
// reordered source silently corrupts output. The bank is a fixed,
// hand-audited input and this brittleness is accepted.
const (
	colFlag = iota // annotation marker
	colID
	colName
	colOsc1Waveform
	colOsc1Octave
	colOsc1Semi
	colOsc1Cent
	colOsc1MixPct
	colOsc1MixDB
	colOsc2Waveform
	colOsc2Note
	colOsc2Octave
	colOsc2Semi
	colOsc2Cent
	colOsc2MixPct
	colOsc2MixDB
	colOsc2Track
	colOsc2Sync
	_ // unused
	colNoise
	colLFORouting
	colLFOWaveform
	colLFOFrequency
	colLFODepthPct
	colLFODepthCents
	_ // unused
	colGlide
	colUnison
	colPolyphony
	colFilter24Hz
	colFilter24Pct
	colFilter12Hz
	colFilter12Pct
	colFilterResonance
	colFilterEnvWeight
	colFilterEnvAttack
	colFilterEnvDecay
	colFilterEnvSustain
	colFilterEnvRelease
	colAmpEnvAttack
	colAmpEnvDecay
	colAmpEnvSustain
	colAmpEnvRelease
)

// cell returns the cell at position i, or the empty string when the row is
// too short; decoders treat the two identically.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
