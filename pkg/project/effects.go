// Package project generates the companion effect and automation project
// documents. They are unrelated to patch decoding but share its normalized
// naming and unit-fraction conventions.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

// Param is one effect parameter with its demo default.
type Param struct {
	Name  string
	Value float64
	Int   bool // formatted without a decimal point
}

// Effect is one entry of the fixed demo-project table: an effect name, the
// source waveforms it is demonstrated with, and one config per generated
// project.
type Effect struct {
	Name      string
	Waveforms []string
	Configs   [][]Param
}

// Effects returns the fixed table of demo effects. One project document is
// generated per effect x waveform x config.
func Effects() []Effect {
	filterQ := [][]Param{
		{{Name: "cutoff", Value: 1000.0}, {Name: "q", Value: 0.707}},
		{{Name: "cutoff", Value: 1000.0}, {Name: "q", Value: 20.0}},
	}
	filterBandwidth := [][]Param{
		{{Name: "cutoff", Value: 1000.0}, {Name: "bandwidth", Value: 30.0}},
		{{Name: "cutoff", Value: 1000.0}, {Name: "bandwidth", Value: 2000.0}},
	}
	filterGain := [][]Param{
		{{Name: "cutoff", Value: 1000.0}, {Name: "db-gain", Value: 6.0}},
		{{Name: "cutoff", Value: 1000.0}, {Name: "db-gain", Value: 30.0}},
	}
	noiseAndSine := []string{"noise", "sine"}

	return []Effect{
		{Name: "filter-low-pass-12db", Waveforms: noiseAndSine, Configs: filterQ},
		{Name: "filter-high-pass-12db", Waveforms: noiseAndSine, Configs: filterQ},
		{Name: "filter-band-pass-12db", Waveforms: noiseAndSine, Configs: filterBandwidth},
		{Name: "filter-band-stop-12db", Waveforms: noiseAndSine, Configs: filterBandwidth},
		{Name: "filter-all-pass-12db", Waveforms: noiseAndSine, Configs: filterQ},
		{Name: "filter-peaking-eq-12db", Waveforms: noiseAndSine, Configs: filterGain},
		{Name: "filter-low-shelf-12db", Waveforms: noiseAndSine, Configs: filterGain},
		{Name: "filter-high-shelf-12db", Waveforms: noiseAndSine, Configs: filterGain},
		{Name: "bitcrusher", Waveforms: []string{"sawtooth", "triangle"}, Configs: [][]Param{
			{{Name: "bits-to-crush", Value: 8, Int: true}},
			{{Name: "bits-to-crush", Value: 13, Int: true}},
		}},
		{Name: "limiter", Waveforms: noiseAndSine, Configs: [][]Param{
			{{Name: "min", Value: 0.1}, {Name: "max", Value: 0.9}},
			{{Name: "min", Value: 0.4}, {Name: "max", Value: 0.6}},
		}},
		{Name: "gain", Waveforms: noiseAndSine, Configs: [][]Param{
			{{Name: "ceiling", Value: 0.1}},
			{{Name: "ceiling", Value: 0.5}},
		}},
	}
}

var effectProjectTemplate = template.Must(template.New("effect-project").Parse(`---
title: "{{.Description}}"
clock:
  bpm: 240.0
  time-signature:
    - 4
    - 4
devices:
  - instrument:
    - instrument-1
    - oscillator:
      - midi-in: 0
        waveform: {{.Waveform}}
        frequency: {{.Frequency}}
  - effect:
    - effect-1
    - {{.EffectName}}:
        {{.Params}}
patch-cables:
  - [instrument-1, effect-1, main-mixer]
patterns:
  - id: silent-1
    notes:
      - [0]
tracks:
  - id: track-1
    midi-channel: 0
    patterns: [silent-1]
`))

// Description returns the project description, which doubles as the output
// file name stem: effect, waveform and each parameter joined by underscores,
// sub-unit values carrying three decimals.
func Description(effectName, waveform string, params []Param) string {
	parts := []string{effectName, waveform}
	for _, p := range params {
		if p.Value < 1.0 {
			parts = append(parts, fmt.Sprintf("%s-%0.3f", p.Name, p.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s-%d", p.Name, int(p.Value)))
		}
	}
	return strings.Join(parts, "_")
}

func formatValue(p Param) string {
	if p.Int {
		return strconv.Itoa(int(p.Value))
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// EncodeEffectProject renders one project document.
func EncodeEffectProject(effectName, waveform string, params []Param) ([]byte, error) {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Name, formatValue(p)))
	}

	// A silent oscillator for noise, A4 otherwise.
	frequency := "440.0"
	if waveform == "noise" {
		frequency = "0.0"
	}

	var b strings.Builder
	err := effectProjectTemplate.Execute(&b, struct {
		Description string
		Waveform    string
		Frequency   string
		EffectName  string
		Params      string
	}{
		Description: Description(effectName, waveform, params),
		Waveform:    waveform,
		Frequency:   frequency,
		EffectName:  effectName,
		Params:      strings.Join(lines, "\n        "),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render effect project: %w", err)
	}
	return []byte(b.String()), nil
}

// WriteEffectProjects generates every project in the fixed table under dir
// and returns the written paths. Existing files are overwritten.
func WriteEffectProjects(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	var paths []string
	for _, effect := range Effects() {
		for _, waveform := range effect.Waveforms {
			for _, config := range effect.Configs {
				data, err := EncodeEffectProject(effect.Name, waveform, config)
				if err != nil {
					return paths, err
				}
				path := filepath.Join(dir, Description(effect.Name, waveform, config)+".yaml")
				if err := os.WriteFile(path, data, 0644); err != nil {
					return paths, fmt.Errorf("failed to write project file: %w", err)
				}
				paths = append(paths, path)
			}
		}
	}
	return paths, nil
}
