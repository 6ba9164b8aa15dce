package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Named keys accepted besides letters, digits and F1..F20.
const (
	KeySpace  = "Space"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
	KeyTab    = "Tab"
	KeyDelete = "Delete"
	KeyLeft   = "Left"
	KeyRight  = "Right"
	KeyUp     = "Up"
	KeyDown   = "Down"
)

// MaxFunctionKey is the highest F-key every backend can grab.
const MaxFunctionKey = 20

// Accelerator is a parsed key combination such as Ctrl+Shift+F6.
type Accelerator struct {
	Modifiers Modifier
	// Key is the canonical key name: "A".."Z", "0".."9", "F1".."F20" or a named key.
	Key string
}

var modifierNames = map[string]Modifier{
	"ctrl":             ModCtrl,
	"control":          ModCtrl,
	"commandorcontrol": ModCtrl,
	"cmdorctrl":        ModCtrl,
	"shift":            ModShift,
	"alt":              ModAlt,
	"option":           ModAlt,
	"super":            ModSuper,
	"meta":             ModSuper,
	"win":              ModSuper,
	"cmd":              ModSuper,
	"command":          ModSuper,
}

var namedKeys = map[string]string{
	"space":      KeySpace,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"tab":        KeyTab,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"left":       KeyLeft,
	"right":      KeyRight,
	"up":         KeyUp,
	"down":       KeyDown,
	"arrowleft":  KeyLeft,
	"arrowright": KeyRight,
	"arrowup":    KeyUp,
	"arrowdown":  KeyDown,
}

// Parse reads an accelerator like "F6", "ctrl+shift+a" or
// "CommandOrControl+Alt+Space". Exactly one non-modifier key is required.
func Parse(value string) (Accelerator, error) {
	var accelerator Accelerator
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return accelerator, fmt.Errorf("empty accelerator")
	}

	for _, part := range strings.Split(trimmed, "+") {
		token := strings.TrimSpace(part)
		if token == "" {
			return accelerator, fmt.Errorf("accelerator %q has an empty part", value)
		}
		if modifier, ok := modifierNames[strings.ToLower(token)]; ok {
			accelerator.Modifiers |= modifier
			continue
		}
		key, err := canonicalKey(token)
		if err != nil {
			return accelerator, fmt.Errorf("accelerator %q: %w", value, err)
		}
		if accelerator.Key != "" {
			return accelerator, fmt.Errorf("accelerator %q has more than one key", value)
		}
		accelerator.Key = key
	}

	if accelerator.Key == "" {
		return accelerator, fmt.Errorf("accelerator %q has no key", value)
	}
	return accelerator, nil
}

// String formats the accelerator in canonical order, e.g. "Ctrl+Shift+F6".
func (accelerator Accelerator) String() string {
	parts := make([]string, 0, 5)
	if accelerator.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if accelerator.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if accelerator.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if accelerator.Modifiers&ModSuper != 0 {
		parts = append(parts, "Super")
	}
	parts = append(parts, accelerator.Key)
	return strings.Join(parts, "+")
}

// FunctionKey returns n for "Fn" keys.
func (accelerator Accelerator) FunctionKey() (int, bool) {
	if len(accelerator.Key) < 2 || accelerator.Key[0] != 'F' {
		return 0, false
	}
	n, err := strconv.Atoi(accelerator.Key[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsModifierName reports whether name is a modifier key on its own. Key
// capture uses it to ignore bare modifier presses.
func IsModifierName(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range []string{"shift", "control", "ctrl", "alt", "super", "meta", "cmd"} {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func canonicalKey(token string) (string, error) {
	lower := strings.ToLower(token)
	if named, ok := namedKeys[lower]; ok {
		return named, nil
	}
	if len(token) == 1 {
		char := token[0]
		switch {
		case char >= 'a' && char <= 'z':
			return strings.ToUpper(token), nil
		case char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
			return token, nil
		}
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		n, err := strconv.Atoi(lower[1:])
		if err == nil && n >= 1 && n <= MaxFunctionKey {
			return "F" + strconv.Itoa(n), nil
		}
	}
	return "", fmt.Errorf("unsupported key %q", token)
}
