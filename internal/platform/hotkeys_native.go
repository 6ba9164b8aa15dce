package platform

import (
	"sync"

	"autoclicker/internal/core/hotkey"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	nativehotkey "golang.design/x/hotkey"
)

// NativeHotkeys registers accelerators with the OS hotkey API.
type NativeHotkeys struct {
	logger logrus.FieldLogger
}

// NewNativeHotkeys returns the OS hotkey backend.
func NewNativeHotkeys(logger logrus.FieldLogger) *NativeHotkeys {
	return &NativeHotkeys{logger: logger.WithField("backend", "native")}
}

type nativeBinding struct {
	hk       *nativehotkey.Hotkey
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Register implements hotkey.Backend.
func (hotkeys *NativeHotkeys) Register(accelerator hotkey.Accelerator, callback func()) (hotkey.Binding, error) {
	key, ok := nativeKey(accelerator.Key)
	if !ok {
		return nil, errors.Errorf("key %s has no native code", accelerator.Key)
	}
	mods, err := nativeModifiers(accelerator.Modifiers)
	if err != nil {
		return nil, err
	}

	hk := nativehotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, errors.Wrapf(err, "register %s", accelerator)
	}

	binding := &nativeBinding{
		hk:   hk,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(binding.done)
		for {
			select {
			case <-binding.stop:
				return
			case <-hk.Keydown():
				hotkeys.logger.WithField("accelerator", accelerator.String()).Debug("Hotkey pressed")
				callback()
			}
		}
	}()
	return binding, nil
}

// Unregister implements hotkey.Binding.
func (binding *nativeBinding) Unregister() error {
	var err error
	binding.stopOnce.Do(func() {
		close(binding.stop)
		<-binding.done
		err = binding.hk.Unregister()
	})
	return err
}

func nativeModifiers(modifiers hotkey.Modifier) ([]nativehotkey.Modifier, error) {
	var mods []nativehotkey.Modifier
	for _, flag := range []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift, hotkey.ModAlt, hotkey.ModSuper} {
		if modifiers&flag == 0 {
			continue
		}
		mod, ok := nativeModifierCodes[flag]
		if !ok {
			return nil, errors.Errorf("modifier %d unsupported on this platform", flag)
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

var nativeLetterKeys = []nativehotkey.Key{
	nativehotkey.KeyA, nativehotkey.KeyB, nativehotkey.KeyC, nativehotkey.KeyD, nativehotkey.KeyE,
	nativehotkey.KeyF, nativehotkey.KeyG, nativehotkey.KeyH, nativehotkey.KeyI, nativehotkey.KeyJ,
	nativehotkey.KeyK, nativehotkey.KeyL, nativehotkey.KeyM, nativehotkey.KeyN, nativehotkey.KeyO,
	nativehotkey.KeyP, nativehotkey.KeyQ, nativehotkey.KeyR, nativehotkey.KeyS, nativehotkey.KeyT,
	nativehotkey.KeyU, nativehotkey.KeyV, nativehotkey.KeyW, nativehotkey.KeyX, nativehotkey.KeyY,
	nativehotkey.KeyZ,
}

var nativeDigitKeys = []nativehotkey.Key{
	nativehotkey.Key0, nativehotkey.Key1, nativehotkey.Key2, nativehotkey.Key3, nativehotkey.Key4,
	nativehotkey.Key5, nativehotkey.Key6, nativehotkey.Key7, nativehotkey.Key8, nativehotkey.Key9,
}

var nativeFunctionKeys = []nativehotkey.Key{
	nativehotkey.KeyF1, nativehotkey.KeyF2, nativehotkey.KeyF3, nativehotkey.KeyF4, nativehotkey.KeyF5,
	nativehotkey.KeyF6, nativehotkey.KeyF7, nativehotkey.KeyF8, nativehotkey.KeyF9, nativehotkey.KeyF10,
	nativehotkey.KeyF11, nativehotkey.KeyF12, nativehotkey.KeyF13, nativehotkey.KeyF14, nativehotkey.KeyF15,
	nativehotkey.KeyF16, nativehotkey.KeyF17, nativehotkey.KeyF18, nativehotkey.KeyF19, nativehotkey.KeyF20,
}

var nativeNamedKeys = map[string]nativehotkey.Key{
	hotkey.KeySpace:  nativehotkey.KeySpace,
	hotkey.KeyEnter:  nativehotkey.KeyReturn,
	hotkey.KeyEscape: nativehotkey.KeyEscape,
	hotkey.KeyTab:    nativehotkey.KeyTab,
	hotkey.KeyDelete: nativehotkey.KeyDelete,
	hotkey.KeyLeft:   nativehotkey.KeyLeft,
	hotkey.KeyRight:  nativehotkey.KeyRight,
	hotkey.KeyUp:     nativehotkey.KeyUp,
	hotkey.KeyDown:   nativehotkey.KeyDown,
}

func nativeKey(name string) (nativehotkey.Key, bool) {
	if key, ok := nativeNamedKeys[name]; ok {
		return key, true
	}
	if len(name) == 1 {
		char := name[0]
		switch {
		case char >= 'A' && char <= 'Z':
			return nativeLetterKeys[char-'A'], true
		case char >= '0' && char <= '9':
			return nativeDigitKeys[char-'0'], true
		}
	}
	if n, ok := (hotkey.Accelerator{Key: name}).FunctionKey(); ok && n >= 1 && n <= len(nativeFunctionKeys) {
		return nativeFunctionKeys[n-1], true
	}
	return 0, false
}
