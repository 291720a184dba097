package game

// Focus tracks which layer owns keyboard and mouse input.
type Focus int

const (
	// FocusGame routes input to camera movement and gameplay.
	FocusGame Focus = iota
	// FocusMenu routes input to the menu; the world keeps rendering behind it.
	FocusMenu
	// FocusConsole routes input to the console overlay.
	FocusConsole
)

// String returns a human-readable focus name.
func (f Focus) String() string {
	switch f {
	case FocusGame:
		return "game"
	case FocusMenu:
		return "menu"
	case FocusConsole:
		return "console"
	default:
		return "unknown"
	}
}

// ToggleConsole switches between game and console focus.
// The console cannot be opened over the menu.
func (f Focus) ToggleConsole() Focus {
	switch f {
	case FocusGame:
		return FocusConsole
	case FocusConsole:
		return FocusGame
	default:
		return f
	}
}

// ToggleMenu opens the menu from the game, and closes either
// overlay back to the game.
func (f Focus) ToggleMenu() Focus {
	if f == FocusGame {
		return FocusMenu
	}
	return FocusGame
}

// CapturesMouse reports whether the mouse should be captured for looking.
func (f Focus) CapturesMouse() bool {
	return f == FocusGame
}
