package platform

import (
	"autoclicker/internal/core/hotkey"

	nativehotkey "golang.design/x/hotkey"
)

// Mod1 is Alt and Mod4 is Super on common X keyboard layouts.
var nativeModifierCodes = map[hotkey.Modifier]nativehotkey.Modifier{
	hotkey.ModCtrl:  nativehotkey.ModCtrl,
	hotkey.ModShift: nativehotkey.ModShift,
	hotkey.ModAlt:   nativehotkey.Mod1,
	hotkey.ModSuper: nativehotkey.Mod4,
}
