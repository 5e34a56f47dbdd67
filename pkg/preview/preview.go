// Package preview renders a short audition MIDI file for a patch
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"bank2patch/pkg/patch"
)

const (
	ticksPerQuarter = 480
	tempo           = 120.0
	middleC         = 60
	notesPerBar     = 4
)

// auditionNote picks the pitch to audition: an absolute tune note when one
// oscillator carries one, middle C otherwise.
func auditionNote(p *patch.Patch) uint8 {
	note := middleC
	if n, ok := p.Oscillator1.Tune.AbsoluteNote(); ok {
		note = n
	} else if n, ok := p.Oscillator2.Tune.AbsoluteNote(); ok {
		note = n
	}
	if note < 0 || note > 127 {
		note = middleC
	}
	return uint8(note)
}

// Render produces a one-bar standard MIDI file auditioning the patch: four
// quarter notes at the audition pitch.
func Render(p *patch.Patch) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil patch")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track

	// Tempo meta event
	microsecondsPerBeat := uint32(60000000.0 / tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// Time signature (4/4)
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	note := auditionNote(p)
	channel := uint8(0)
	velocity := uint8(100)

	// 75% gate per note
	noteLength := uint32(ticksPerQuarter * 3 / 4)
	gap := uint32(ticksPerQuarter) - noteLength

	for i := 0; i < notesPerBar; i++ {
		delta := uint32(0)
		if i > 0 {
			delta = gap
		}
		track.Add(delta, midi.NoteOn(channel, note, velocity))
		track.Add(noteLength, midi.NoteOff(channel, note))
	}

	track.Close(gap)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the audition and writes it to filename.
func WriteFile(p *patch.Patch, filename string) error {
	data, err := Render(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
