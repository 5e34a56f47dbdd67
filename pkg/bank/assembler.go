// Package bank converts sound-bank CSV rows into patch documents
package bank

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bank2patch/pkg/decode"
	"bank2patch/pkg/patch"
)

// Fixed envelope-stage ceilings for the "max" sentinel. A decay of "max" is
// reachable only when sustain is 100%, so its value is inconsequential; a
// filter release of "max" must outlast the amp envelope.
const (
	decayMax         = 0.0
	filterReleaseMax = 30.0
)

// Row-exclusion policy, fixed per schema revision, never configurable at
// call time.
const (
	annotationPrefix = "Exception"
	defectiveRowID   = "103"
)

// Assembler maps one bank row to one Patch.
type Assembler struct {
	schema decode.Schema
	logger *zap.Logger

	// Ceiling for an amp-release "max" sentinel; nil leaves the resolved
	// value absent in the document.
	ampReleaseMax *float64

	depthConflicts int
}

// NewAssembler creates an Assembler for one schema revision.
func NewAssembler(schema decode.Schema) *Assembler {
	return &Assembler{schema: schema, logger: zap.NewNop()}
}

// WithLogger sets the diagnostic logger.
func (a *Assembler) WithLogger(logger *zap.Logger) *Assembler {
	a.logger = logger
	return a
}

// WithAmpReleaseMax sets the ceiling used when the amp-envelope release cell
// is the "max" sentinel.
func (a *Assembler) WithAmpReleaseMax(seconds float64) *Assembler {
	a.ampReleaseMax = patch.Seconds(seconds)
	return a
}

// Schema returns the schema revision this assembler decodes with.
func (a *Assembler) Schema() decode.Schema {
	return a.schema
}

// DepthConflicts returns how many rows carried both a nonzero depth
// percentage and a nonzero cent offset. The percentage wins and the cents
// are dropped, preserving the historical output, but the condition is kept
// countable rather than silently lost.
func (a *Assembler) DepthConflicts() int {
	return a.depthConflicts
}

// Excluded reports whether the row is skipped by the fixed exclusion policy:
// annotation rows, and the one row id known to be a defective bank entry.
// Exclusion is silent and is not an error.
func (a *Assembler) Excluded(row []string) bool {
	if !a.schema.ExcludesRows() {
		return false
	}
	if strings.HasPrefix(cell(row, colFlag), annotationPrefix) {
		return true
	}
	return cell(row, colID) == defectiveRowID
}

// PatchFromRow assembles one Patch from one row. A row matched by the
// exclusion policy returns (nil, nil). Any cell outside the documented
// alphabet returns an error; callers treat it as fatal for the batch.
func (a *Assembler) PatchFromRow(row []string) (*patch.Patch, error) {
	if a.Excluded(row) {
		return nil, nil
	}

	name := a.schema.Ident(cell(row, colName))

	p := &patch.Patch{Name: name}

	var err error
	if p.Oscillator1, err = a.oscillator(row, colOsc1Waveform, colOsc1Octave, colOsc1Semi, colOsc1Cent, "", colOsc1MixPct, colOsc1MixDB); err != nil {
		return nil, fmt.Errorf("patch %q oscillator 1: %w", name, err)
	}
	if p.Oscillator2, err = a.oscillator(row, colOsc2Waveform, colOsc2Octave, colOsc2Semi, colOsc2Cent, cell(row, colOsc2Note), colOsc2MixPct, colOsc2MixDB); err != nil {
		return nil, fmt.Errorf("patch %q oscillator 2: %w", name, err)
	}
	p.Oscillator2Track = a.schema.Bool(cell(row, colOsc2Track))
	p.Oscillator2Sync = a.schema.Bool(cell(row, colOsc2Sync))

	if p.Noise, err = a.schema.Percent(cell(row, colNoise)); err != nil {
		return nil, fmt.Errorf("patch %q noise: %w", name, err)
	}

	if p.LFO, err = a.lfo(row); err != nil {
		return nil, fmt.Errorf("patch %q lfo: %w", name, err)
	}

	if p.Glide, err = a.schema.Glide(cell(row, colGlide)); err != nil {
		return nil, fmt.Errorf("patch %q: %w", name, err)
	}
	p.Unison = a.schema.Bool(cell(row, colUnison))
	p.Polyphony = a.schema.Polyphony(cell(row, colPolyphony))

	if p.FilterType24DB, err = a.filter(row, colFilter24Hz, colFilter24Pct); err != nil {
		return nil, fmt.Errorf("patch %q 24db filter: %w", name, err)
	}
	if p.FilterType12DB, err = a.filter(row, colFilter12Hz, colFilter12Pct); err != nil {
		return nil, fmt.Errorf("patch %q 12db filter: %w", name, err)
	}
	if p.FilterResonance, err = a.schema.Percent(cell(row, colFilterResonance)); err != nil {
		return nil, fmt.Errorf("patch %q filter resonance: %w", name, err)
	}
	if p.FilterEnvelopeWeight, err = a.schema.Percent(cell(row, colFilterEnvWeight)); err != nil {
		return nil, fmt.Errorf("patch %q filter envelope weight: %w", name, err)
	}

	if p.FilterEnvelope, err = a.envelope(row, colFilterEnvAttack, patch.Seconds(decayMax), patch.Seconds(filterReleaseMax)); err != nil {
		return nil, fmt.Errorf("patch %q filter envelope: %w", name, err)
	}
	if p.AmpEnvelope, err = a.envelope(row, colAmpEnvAttack, patch.Seconds(decayMax), a.ampReleaseMax); err != nil {
		return nil, fmt.Errorf("patch %q amp envelope: %w", name, err)
	}

	return p, nil
}

func (a *Assembler) oscillator(row []string, wave, octave, semi, cents int, note string, mixPct, mixDB int) (patch.Oscillator, error) {
	var o patch.Oscillator
	var err error
	if o.Waveform, err = a.schema.Waveform(cell(row, wave)); err != nil {
		return o, err
	}
	if o.Tune, err = a.schema.Tune(cell(row, octave), cell(row, semi), cell(row, cents), note); err != nil {
		return o, err
	}
	if o.MixPct, err = a.schema.Percent(cell(row, mixPct)); err != nil {
		return o, err
	}
	if o.MixDB, err = a.schema.Float(cell(row, mixDB)); err != nil {
		return o, err
	}
	return o, nil
}

func (a *Assembler) lfo(row []string) (patch.LFO, error) {
	var l patch.LFO
	var err error
	l.Routing = a.schema.Routing(cell(row, colLFORouting))
	if l.Waveform, err = a.schema.Waveform(cell(row, colLFOWaveform)); err != nil {
		return l, err
	}
	if l.Frequency, err = a.schema.Float(cell(row, colLFOFrequency)); err != nil {
		return l, err
	}
	depth, conflict, err := a.schema.Depth(cell(row, colLFODepthPct), cell(row, colLFODepthCents))
	if err != nil {
		return l, err
	}
	if conflict {
		a.depthConflicts++
		a.logger.Warn("depth has both percentage and cents; keeping percentage",
			zap.String("name", cell(row, colName)),
			zap.String("pct", cell(row, colLFODepthPct)),
			zap.String("cents", cell(row, colLFODepthCents)))
	}
	l.Depth = depth
	return l, nil
}

func (a *Assembler) filter(row []string, hz, pct int) (patch.Filter, error) {
	var f patch.Filter
	var err error
	if f.CutoffHz, err = a.schema.Int(cell(row, hz)); err != nil {
		return f, err
	}
	if f.CutoffPct, err = a.schema.Percent(cell(row, pct)); err != nil {
		return f, err
	}
	return f, nil
}

// envelope decodes four consecutive cells starting at attack.
func (a *Assembler) envelope(row []string, attack int, decayMax, releaseMax *float64) (patch.Envelope, error) {
	var e patch.Envelope
	var err error
	if e.Attack, err = a.schema.Float(cell(row, attack)); err != nil {
		return e, fmt.Errorf("attack: %w", err)
	}
	if e.Decay, err = a.schema.EnvelopeStage(cell(row, attack+1), decayMax); err != nil {
		return e, fmt.Errorf("decay: %w", err)
	}
	if e.Sustain, err = a.schema.Percent(cell(row, attack+2)); err != nil {
		return e, fmt.Errorf("sustain: %w", err)
	}
	if e.Release, err = a.schema.EnvelopeStage(cell(row, attack+3), releaseMax); err != nil {
		return e, fmt.Errorf("release: %w", err)
	}
	return e, nil
}
