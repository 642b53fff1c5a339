package tray

import "testing"

func TestNew(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		tr := New(enabled)
		if tr.IsEnabled() != enabled {
			t.Errorf("New(%v).IsEnabled() = %v", enabled, tr.IsEnabled())
		}
	}
}

func TestTray_SetEnabled_BeforeMenu(t *testing.T) {
	tr := New(true)

	called := false
	tr.OnToggle(func(bool) { called = true })

	// Menu items are not built until Run; updates must still be safe.
	tr.SetEnabled(false)
	tr.SetLastGesture("left_click")

	if tr.IsEnabled() {
		t.Error("SetEnabled(false) should disable")
	}
	if called {
		t.Error("SetEnabled must not fire the toggle callback")
	}
}

func TestToggleTitle(t *testing.T) {
	if toggleTitle(true) != "● Enabled" {
		t.Errorf("toggleTitle(true) = %q", toggleTitle(true))
	}
	if toggleTitle(false) != "○ Disabled" {
		t.Errorf("toggleTitle(false) = %q", toggleTitle(false))
	}
}
