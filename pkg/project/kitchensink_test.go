package project

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestKitchenSinkGenerate(t *testing.T) {
	data, err := NewKitchenSink().Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}

	devices, ok := doc["devices"].([]interface{})
	if !ok {
		t.Fatalf("devices = %T, want list", doc["devices"])
	}
	if len(devices) != len(kitchenSinkEffects) {
		t.Errorf("devices = %d, want %d", len(devices), len(kitchenSinkEffects))
	}

	// One automation trip per effect parameter, numbered in table order.
	wantTrips := 0
	for _, effect := range kitchenSinkEffects {
		wantTrips += len(effect.params)
	}
	trips, ok := doc["trips"].([]interface{})
	if !ok {
		t.Fatalf("trips = %T, want list", doc["trips"])
	}
	if len(trips) != wantTrips {
		t.Fatalf("trips = %d, want %d", len(trips), wantTrips)
	}
	first := trips[0].(map[string]interface{})
	if first["id"] != "trip-1" {
		t.Errorf("first trip id = %v, want trip-1", first["id"])
	}
	if first["start-measure"] != 7 {
		t.Errorf("start-measure = %v, want 7", first["start-measure"])
	}

	// The gain device heads the table and takes the first cursor value.
	gain := devices[0].(map[string]interface{})["effect"].([]interface{})
	if gain[0] != "gain-1" {
		t.Errorf("first device id = %v, want gain-1", gain[0])
	}
	params := gain[1].(map[string]interface{})["gain"].(map[string]interface{})
	if params["ceiling"] != 0.01 {
		t.Errorf("gain ceiling = %v, want 0.01", params["ceiling"])
	}

	clock := doc["clock"].(map[string]interface{})
	if clock["sample-rate"] != 44100 {
		t.Errorf("sample-rate = %v, want 44100", clock["sample-rate"])
	}
}

func TestKitchenSinkBitcrusherFixedDefault(t *testing.T) {
	data, err := NewKitchenSink().Generate()
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Devices []map[string][]interface{} `yaml:"devices"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, device := range doc.Devices {
		entry := device["effect"]
		if entry[0] != "bitcrusher-1" {
			continue
		}
		params := entry[1].(map[string]interface{})["bitcrusher"].(map[string]interface{})
		if params["bits-to-crush"] != bitsToCrushDefault {
			t.Errorf("bits-to-crush = %v, want %d", params["bits-to-crush"], bitsToCrushDefault)
		}
		return
	}
	t.Fatal("bitcrusher device not found")
}

func TestKitchenSinkDeterministic(t *testing.T) {
	a, err := NewKitchenSink().Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewKitchenSink().Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("independent generators produced different documents")
	}
}
