package main

import (
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"render", "status", "runs", "config"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command must not repeat usage or errors on failure")
	}
}
