package main

import "testing"

func TestNeedsStore(t *testing.T) {
	// migrate and doctor open the database themselves: pre-loading would
	// refuse a behind schema, the one state migrate has to start from.
	for _, cmd := range []string{"init", "migrate", "doctor", "connection set <conn-str>", "connection status"} {
		if needsStore(cmd) {
			t.Errorf("expected %q to skip the store load gate", cmd)
		}
	}
	for _, cmd := range []string{"roster", "assign <driver> <pattern> <start>", "driver list", "backup create"} {
		if !needsStore(cmd) {
			t.Errorf("expected %q to require a loaded store", cmd)
		}
	}
}
