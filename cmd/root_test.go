package cmd

import (
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	expected := []string{
		"check", "click", "do", "keys", "launch", "list", "radio",
		"read", "select", "serve", "tree", "wait", "write",
	}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"config", "string"},
		{"fixture", "string"},
		{"exec", "bool"},
		{"format", "string"},
		{"pretty", "bool"},
		{"log-level", "string"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("expected version to be set")
	}
}
