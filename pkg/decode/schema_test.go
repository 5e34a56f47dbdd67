package decode

import "testing"

func TestParseSchema(t *testing.T) {
	tests := []struct {
		input    string
		expected Schema
	}{
		{"v1", SchemaV1},
		{"1", SchemaV1},
		{"v2", SchemaV2},
		{"V3", SchemaV3},
		{"3", SchemaV3},
		{"latest", SchemaV3},
		{" v2 ", SchemaV2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSchema(tt.input)
			if err != nil {
				t.Fatalf("ParseSchema(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSchema(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := ParseSchema("v9"); err == nil {
		t.Error("ParseSchema should reject unknown revisions")
	}
}

func TestSchemaString(t *testing.T) {
	for _, name := range SchemaNames() {
		s, err := ParseSchema(name)
		if err != nil {
			t.Fatalf("ParseSchema(%q): %v", name, err)
		}
		if s.String() != name {
			t.Errorf("String() = %q, want %q", s.String(), name)
		}
	}
}
