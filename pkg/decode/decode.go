package decode

import (
	"fmt"
	"strconv"
	"strings"

	"bank2patch/pkg/patch"
)

// Every decoder is total over the documented cell alphabet: an empty cell
// yields a defined zero or absence value, never an error. A cell outside the
// alphabet (non-numeric text in a numeric field) returns an error, which the
// batch treats as fatal; the bank is a fixed, audited input.

// Percent decodes "<n>%" into a unit fraction. The empty cell is 0.
func (s Schema) Percent(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimRight(cell, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", cell, err)
	}
	return v / 100.0, nil
}

// Cents decodes "<n> cents" into a plain float (no scaling). The empty cell
// is 0.
func (s Schema) Cents(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimRight(cell, " cents"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cents value %q: %w", cell, err)
	}
	return v, nil
}

// Int decodes an integer cell, tolerating thousands-separator commas. The
// empty cell is 0.
func (s Schema) Int(cell string) (int, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(cell, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", cell, err)
	}
	return v, nil
}

// Bool decodes a boolean cell: empty and case-insensitive "false" are false,
// any other token is true.
func (s Schema) Bool(cell string) bool {
	if cell == "" {
		return false
	}
	return !strings.EqualFold(cell, "false")
}

// Float decodes a plain float cell. The empty cell is 0.
func (s Schema) Float(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", cell, err)
	}
	return v, nil
}

// EnvelopeStage decodes one envelope stage duration in seconds. The literal
// "max" resolves to the supplied ceiling, which varies by stage and may be
// nil (an unconfigured amp-release ceiling); nil propagates into the document
// as an explicit null. Under SchemaV1 "max" resolves to -1.0 for every stage.
func (s Schema) EnvelopeStage(cell string, ceiling *float64) (*float64, error) {
	if cell == "" {
		return patch.Seconds(0), nil
	}
	if cell == "max" {
		if s == SchemaV1 {
			return patch.Seconds(-1.0), nil
		}
		if ceiling == nil {
			return nil, nil
		}
		return patch.Seconds(*ceiling), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope stage %q: %w", cell, err)
	}
	return patch.Seconds(v), nil
}

// Tune decodes an oscillator tuning. A non-empty note cell wins outright and
// the offset cells are not consulted; all-zero offsets collapse to the
// no-transposition marker.
func (s Schema) Tune(octave, semi, cents, note string) (patch.Tune, error) {
	if note != "" {
		n, err := s.Int(note)
		if err != nil {
			return patch.Tune{}, fmt.Errorf("invalid tune note: %w", err)
		}
		return patch.NoteTune(n), nil
	}
	o, err := s.Int(octave)
	if err != nil {
		return patch.Tune{}, fmt.Errorf("invalid tune octave: %w", err)
	}
	se, err := s.Int(semi)
	if err != nil {
		return patch.Tune{}, fmt.Errorf("invalid tune semitone: %w", err)
	}
	c, err := s.Int(cents)
	if err != nil {
		return patch.Tune{}, fmt.Errorf("invalid tune cents: %w", err)
	}
	if o == 0 && se == 0 && c == 0 {
		return patch.NoTranspose(), nil
	}
	return patch.OffsetTune(o, se, c), nil
}

// Depth decodes the LFO modulation depth from its percentage and cent-offset
// cells. Construction guarantees exclusivity: a nonzero percentage wins, a
// lone nonzero cent value yields the cents variant, anything else collapses
// to the absence marker. The returned flag reports the conflicting case
// where both cells are nonzero and the cent value is dropped; output is
// unchanged but callers can surface a diagnostic.
func (s Schema) Depth(pctCell, centsCell string) (patch.Depth, bool, error) {
	if s.specialCasesDepth() && pctCell == "10/17%" {
		// One known irregular cell in the bank.
		pctCell = "10%"
	}
	pct, err := s.Percent(pctCell)
	if err != nil {
		return patch.Depth{}, false, fmt.Errorf("invalid depth percentage: %w", err)
	}
	cents, err := s.Cents(centsCell)
	if err != nil {
		return patch.Depth{}, false, fmt.Errorf("invalid depth cents: %w", err)
	}
	switch {
	case pct != 0 && cents == 0:
		return patch.PctDepth(pct), false, nil
	case pct != 0 && cents != 0:
		return patch.PctDepth(pct), true, nil
	case cents != 0:
		return patch.CentsDepth(cents), false, nil
	default:
		return patch.NoDepth(), false, nil
	}
}

// Waveform decodes a waveform cell: empty is the absence marker, a "PW"
// prefix is a pulse wave whose remainder is a duty-cycle percentage, anything
// else is a named waveform normalized to identifier form.
func (s Schema) Waveform(cell string) (patch.Waveform, error) {
	if cell == "" {
		return patch.NoWaveform(), nil
	}
	if strings.HasPrefix(cell, "PW") {
		duty, err := s.Percent(strings.TrimSpace(cell[2:]))
		if err != nil {
			return patch.Waveform{}, fmt.Errorf("invalid pulse width: %w", err)
		}
		return patch.PulseWaveform(duty), nil
	}
	return patch.NamedWaveform(s.Ident(cell)), nil
}

// Polyphony decodes a polyphony cell: a positive integer is a multi-voice
// limit, anything else a named mode.
func (s Schema) Polyphony(cell string) patch.Polyphony {
	if n, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil && n > 0 {
		return patch.MultiLimit(n)
	}
	return patch.PolyphonyMode(s.Ident(cell))
}

// Routing decodes an LFO routing target; the empty cell is "none".
func (s Schema) Routing(cell string) string {
	if cell == "" {
		return "none"
	}
	return s.Ident(cell)
}

// Glide decodes a glide time. One literal quoted token in the bank maps to a
// fixed constant; everything else is a plain float.
func (s Schema) Glide(cell string) (float64, error) {
	if cell == `"moderate"` {
		return 0.1, nil
	}
	v, err := s.Float(cell)
	if err != nil {
		return 0, fmt.Errorf("invalid glide: %w", err)
	}
	return v, nil
}

// Ident normalizes a display name to its identifier form: lowercase with
// spaces hyphenated. From SchemaV2 on, commas are stripped and slashes map
// to hyphens. Normalization is idempotent.
func (s Schema) Ident(name string) string {
	id := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	if s >= SchemaV2 {
		id = strings.ReplaceAll(id, ",", "")
		id = strings.ReplaceAll(id, "/", "-")
	}
	return id
}
