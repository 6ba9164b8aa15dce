package platform

import (
	"testing"

	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/model"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestX11Keysyms(t *testing.T) {
	tests := map[string]xproto.Keysym{
		"F1":             0xffbe,
		"F6":             0xffc3,
		"F12":            0xffc9,
		"A":              'a',
		"Q":              'q',
		"7":              '7',
		hotkey.KeyEscape: 0xff1b,
		hotkey.KeySpace:  0x20,
	}
	for key, want := range tests {
		got, ok := x11Keysym(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := x11Keysym("PageUp")
	assert.False(t, ok)
}

func TestX11Modifiers(t *testing.T) {
	mask := x11Modifiers(hotkey.ModCtrl | hotkey.ModShift | hotkey.ModAlt | hotkey.ModSuper)
	assert.Equal(t, uint16(xproto.ModMaskControl|xproto.ModMaskShift|xproto.ModMask1|xproto.ModMask4), mask)
	assert.Zero(t, x11Modifiers(0))
}

func TestX11PressModifiersMatchGrab(t *testing.T) {
	grabbed := x11Modifiers(hotkey.ModCtrl | hotkey.ModShift)
	state := grabbed | xproto.ModMaskLock | xproto.ModMask2 | xproto.KeyButMaskButton1
	assert.Equal(t, grabbed, x11PressModifiers(state))
	assert.Equal(t, uint16(xproto.ModMask4), x11PressModifiers(xproto.ModMask4|xproto.KeyButMaskButton3))
	assert.Zero(t, x11PressModifiers(xproto.KeyButMaskButton1))
}

func TestX11Buttons(t *testing.T) {
	left, err := x11Button(model.ButtonLeft)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), left)

	right, err := x11Button(model.ButtonRight)
	assert.NoError(t, err)
	assert.Equal(t, byte(3), right)

	_, err = x11Button("thumb")
	assert.Error(t, err)
}

func TestClampInt16(t *testing.T) {
	assert.Equal(t, int16(32767), clampInt16(40000))
	assert.Equal(t, int16(-32768), clampInt16(-40000))
	assert.Equal(t, int16(12), clampInt16(12))
}
