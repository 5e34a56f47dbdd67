package project

import "testing"

func TestIDSequence(t *testing.T) {
	s := NewIDSequence("trip")
	for i, want := range []string{"trip-1", "trip-2", "trip-3"} {
		if got := s.Next(); got != want {
			t.Errorf("Next() #%d = %q, want %q", i+1, got, want)
		}
	}

	// Sequences are independent.
	if got := NewIDSequence("auto").Next(); got != "auto-1" {
		t.Errorf("fresh sequence Next() = %q, want %q", got, "auto-1")
	}
}

func TestParamCursor(t *testing.T) {
	c := NewParamCursor()
	for i, want := range []float64{0.01, 0.02, 0.03, 0.04, 0.05} {
		if got := c.Next(); got != want {
			t.Errorf("Next() #%d = %v, want %v", i+1, got, want)
		}
	}
}

func TestParamCursorWraps(t *testing.T) {
	c := NewParamCursor()
	c.Next()
	wrapped := false
	for i := 0; i < 95; i++ {
		v := c.Next()
		if v < 0.01 || v > 0.9 {
			t.Fatalf("Next() = %v, outside [0.01, 0.9]", v)
		}
		if v == 0.01 {
			wrapped = true
			break
		}
	}
	if !wrapped {
		t.Error("cursor never wrapped back to 0.01")
	}
}
