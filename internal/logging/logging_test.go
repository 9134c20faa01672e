// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import "testing"

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := New(level); err != nil {
			t.Errorf("New(%q) failed: %v", level, err)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty"); err == nil {
		t.Error("New(\"chatty\") succeeded, want error")
	}
}
