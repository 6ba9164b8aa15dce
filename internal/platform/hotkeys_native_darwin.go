package platform

import (
	"autoclicker/internal/core/hotkey"

	nativehotkey "golang.design/x/hotkey"
)

var nativeModifierCodes = map[hotkey.Modifier]nativehotkey.Modifier{
	hotkey.ModCtrl:  nativehotkey.ModCtrl,
	hotkey.ModShift: nativehotkey.ModShift,
	hotkey.ModAlt:   nativehotkey.ModOption,
	hotkey.ModSuper: nativehotkey.ModCmd,
}
