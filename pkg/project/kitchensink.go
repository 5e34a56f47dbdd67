package project

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// kitchenSinkEffects lists every effect wired into the kitchen-sink project
// with the parameters that get an automation trip. Order matters: the float
// parameter cursor assigns defaults in table order.
var kitchenSinkEffects = []struct {
	name   string
	params []string
}{
	{"gain", []string{"ceiling"}},
	{"limiter", []string{"min", "max"}},
	{"bitcrusher", []string{"bits-to-crush"}},
	{"filter-low-pass-12db", []string{"cutoff", "q"}},
	{"filter-high-pass-12db", []string{"cutoff", "q"}},
	{"filter-band-pass-12db", []string{"cutoff", "bandwidth"}},
	{"filter-band-stop-12db", []string{"cutoff", "bandwidth"}},
	{"filter-all-pass-12db", []string{"cutoff", "q"}},
	{"filter-peaking-eq-12db", []string{"cutoff", "db-gain"}},
	{"filter-low-shelf-12db", []string{"cutoff", "db-gain"}},
	{"filter-high-shelf-12db", []string{"cutoff", "db-gain"}},
}

const bitsToCrushDefault = 8

// KitchenSink builds the all-effects automation project. Identifier and
// parameter sequences are explicit state on the generator rather than
// process globals, so each generated document is self-contained and
// deterministic.
type KitchenSink struct {
	trips  *IDSequence
	params *ParamCursor
}

// NewKitchenSink creates a generator with fresh sequences.
func NewKitchenSink() *KitchenSink {
	return &KitchenSink{
		trips:  NewIDSequence("trip"),
		params: NewParamCursor(),
	}
}

// Generate renders the project document: one instance of every effect in the
// table, plus one automation trip per effect parameter.
func (k *KitchenSink) Generate() ([]byte, error) {
	var devices []interface{}
	for _, effect := range kitchenSinkEffects {
		params := map[string]interface{}{}
		for _, param := range effect.params {
			if param == "bits-to-crush" {
				params[param] = bitsToCrushDefault
			} else {
				params[param] = k.params.Next()
			}
		}
		devices = append(devices, map[string]interface{}{
			"effect": []interface{}{
				fmt.Sprintf("%s-1", effect.name),
				map[string]interface{}{effect.name: params},
			},
		})
	}

	var trips []interface{}
	for _, effect := range kitchenSinkEffects {
		for _, param := range effect.params {
			trips = append(trips, map[string]interface{}{
				"id": k.trips.Next(),
				"target": map[string]interface{}{
					"id":    fmt.Sprintf("%s-1", effect.name),
					"param": param,
				},
				"start-measure": 7,
				"paths":         []string{"auto-1"},
			})
		}
	}

	doc := map[string]interface{}{
		"clock": map[string]interface{}{
			"sample-rate":    44100,
			"bpm":            128.0,
			"time-signature": []int{4, 4},
		},
		"devices":      devices,
		"patch-cables": []interface{}{},
		"patterns":     []interface{}{},
		"tracks":       []interface{}{},
		"paths":        []interface{}{},
		"trips":        trips,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode kitchen-sink project: %w", err)
	}
	return data, nil
}
