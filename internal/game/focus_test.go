package game

import "testing"

func TestToggleConsole(t *testing.T) {
	if got := FocusGame.ToggleConsole(); got != FocusConsole {
		t.Errorf("game -> console toggle: got %v", got)
	}
	if got := FocusConsole.ToggleConsole(); got != FocusGame {
		t.Errorf("console -> game toggle: got %v", got)
	}
	// The console key does nothing while the menu is open.
	if got := FocusMenu.ToggleConsole(); got != FocusMenu {
		t.Errorf("menu should ignore console toggle: got %v", got)
	}
}

func TestToggleMenu(t *testing.T) {
	if got := FocusGame.ToggleMenu(); got != FocusMenu {
		t.Errorf("game -> menu toggle: got %v", got)
	}
	if got := FocusMenu.ToggleMenu(); got != FocusGame {
		t.Errorf("menu -> game toggle: got %v", got)
	}
	// Escape closes the console too.
	if got := FocusConsole.ToggleMenu(); got != FocusGame {
		t.Errorf("console -> game via menu toggle: got %v", got)
	}
}

func TestCapturesMouse(t *testing.T) {
	if !FocusGame.CapturesMouse() {
		t.Error("game focus should capture the mouse")
	}
	if FocusMenu.CapturesMouse() || FocusConsole.CapturesMouse() {
		t.Error("overlays should release the mouse")
	}
}
