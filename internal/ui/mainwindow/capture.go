package mainwindow

import (
	"strings"

	"autoclicker/internal/core/hotkey"

	"fyne.io/fyne/v2"
)

// hotkeyCapture turns raw key down/up events into an accelerator string.
// Modifiers are remembered while held; the first other key completes the
// combination.
type hotkeyCapture struct {
	held map[string]bool
}

func newHotkeyCapture() *hotkeyCapture {
	return &hotkeyCapture{held: map[string]bool{}}
}

func (capture *hotkeyCapture) reset() {
	capture.held = map[string]bool{}
}

// keyDown returns the completed accelerator when name is not a modifier and
// forms a key the registrar accepts.
func (capture *hotkeyCapture) keyDown(name fyne.KeyName) (string, bool) {
	if hotkey.IsModifierName(string(name)) {
		if modifier := modifierToken(string(name)); modifier != "" {
			capture.held[modifier] = true
		}
		return "", false
	}

	parts := make([]string, 0, 5)
	for modifier := range capture.held {
		parts = append(parts, modifier)
	}
	parts = append(parts, string(name))

	accelerator, err := hotkey.Parse(strings.Join(parts, "+"))
	if err != nil {
		return "", false
	}
	return accelerator.String(), true
}

func (capture *hotkeyCapture) keyUp(name fyne.KeyName) {
	if modifier := modifierToken(string(name)); modifier != "" {
		delete(capture.held, modifier)
	}
}

func modifierToken(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "shift"):
		return "Shift"
	case strings.Contains(lower, "control"), strings.Contains(lower, "ctrl"):
		return "Ctrl"
	case strings.Contains(lower, "alt"):
		return "Alt"
	case strings.Contains(lower, "super"), strings.Contains(lower, "meta"), strings.Contains(lower, "cmd"):
		return "Super"
	}
	return ""
}
