package main

import (
	"testing"

	"github.com/spf13/cobra"
)

// Each command's --output must hold its own advertised default. The flags are
// bound to distinct variables because pflag writes the default into the bound
// variable at registration time; a shared variable would keep only the
// last-registered default.
func TestOutputFlagDefaults(t *testing.T) {
	tests := []struct {
		cmd      *cobra.Command
		expected string
	}{
		{importCmd, "patches"},
		{effectsCmd, "effect-projects"},
		{tuiCmd, "patches"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			flag := tt.cmd.Flags().Lookup("output")
			if flag == nil {
				t.Fatal("command has no --output flag")
			}
			if flag.DefValue != tt.expected {
				t.Errorf("advertised default = %q, want %q", flag.DefValue, tt.expected)
			}
			if flag.Value.String() != tt.expected {
				t.Errorf("effective value = %q, want %q", flag.Value.String(), tt.expected)
			}
		})
	}
}
