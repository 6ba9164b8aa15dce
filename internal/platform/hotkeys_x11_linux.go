package platform

import (
	"sync"
	"time"

	"autoclicker/internal/core/hotkey"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Lock and NumLock must not change whether a grab matches.
var ignoredModifierCombos = []uint16{
	0,
	xproto.ModMaskLock,
	xproto.ModMask2,
	xproto.ModMaskLock | xproto.ModMask2,
}

// X11 auto-repeat sends a press for every repeat; presses closer than this
// are treated as one.
const x11RepeatWindow = 250 * time.Millisecond

type x11Grab struct {
	keycode   xproto.Keycode
	modifiers uint16
}

type x11Binding struct {
	owner    *X11Hotkeys
	grab     x11Grab
	callback func()
	last     time.Time
}

// X11Hotkeys grabs accelerators on the root window and dispatches key presses
// from a single event loop.
type X11Hotkeys struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	root     xproto.Window
	logger   logrus.FieldLogger
	keymap   map[xproto.Keysym]xproto.Keycode
	bindings map[x11Grab]*x11Binding
	done     chan struct{}
}

// NewX11Hotkeys opens its own X connection and starts the event loop.
func NewX11Hotkeys(logger logrus.FieldLogger) (*X11Hotkeys, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}
	setup := xproto.Setup(conn)

	keymap, err := loadKeymap(conn, setup)
	if err != nil {
		conn.Close()
		return nil, err
	}

	hotkeys := &X11Hotkeys{
		conn:     conn,
		root:     setup.DefaultScreen(conn).Root,
		logger:   logger.WithField("backend", "x11"),
		keymap:   keymap,
		bindings: make(map[x11Grab]*x11Binding),
		done:     make(chan struct{}),
	}
	go hotkeys.eventLoop()
	return hotkeys, nil
}

// Register implements hotkey.Backend.
func (hotkeys *X11Hotkeys) Register(accelerator hotkey.Accelerator, callback func()) (hotkey.Binding, error) {
	keysym, ok := x11Keysym(accelerator.Key)
	if !ok {
		return nil, errors.Errorf("no X11 keysym for %s", accelerator.Key)
	}

	hotkeys.mu.Lock()
	defer hotkeys.mu.Unlock()

	keycode, ok := hotkeys.keymap[keysym]
	if !ok {
		return nil, errors.Errorf("key %s is not on this keyboard", accelerator.Key)
	}
	grab := x11Grab{keycode: keycode, modifiers: x11Modifiers(accelerator.Modifiers)}
	if _, taken := hotkeys.bindings[grab]; taken {
		return nil, errors.Errorf("%s is already registered", accelerator)
	}

	for i, extra := range ignoredModifierCombos {
		if err := xproto.GrabKeyChecked(
			hotkeys.conn,
			false,
			hotkeys.root,
			grab.modifiers|extra,
			keycode,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check(); err != nil {
			for _, undo := range ignoredModifierCombos[:i] {
				xproto.UngrabKey(hotkeys.conn, keycode, hotkeys.root, grab.modifiers|undo)
			}
			return nil, errors.Wrapf(err, "grab %s", accelerator)
		}
	}

	binding := &x11Binding{owner: hotkeys, grab: grab, callback: callback}
	hotkeys.bindings[grab] = binding
	return binding, nil
}

// Unregister implements hotkey.Binding.
func (binding *x11Binding) Unregister() error {
	hotkeys := binding.owner
	hotkeys.mu.Lock()
	defer hotkeys.mu.Unlock()

	if hotkeys.bindings[binding.grab] != binding {
		return nil
	}
	delete(hotkeys.bindings, binding.grab)
	for _, extra := range ignoredModifierCombos {
		if err := xproto.UngrabKeyChecked(hotkeys.conn, binding.grab.keycode, hotkeys.root, binding.grab.modifiers|extra).Check(); err != nil {
			return errors.Wrap(err, "ungrab key")
		}
	}
	return nil
}

// Close stops the event loop and releases every grab.
func (hotkeys *X11Hotkeys) Close() error {
	hotkeys.mu.Lock()
	for grab := range hotkeys.bindings {
		for _, extra := range ignoredModifierCombos {
			xproto.UngrabKey(hotkeys.conn, grab.keycode, hotkeys.root, grab.modifiers|extra)
		}
	}
	hotkeys.bindings = make(map[x11Grab]*x11Binding)
	hotkeys.mu.Unlock()

	hotkeys.conn.Close()
	<-hotkeys.done
	return nil
}

func (hotkeys *X11Hotkeys) eventLoop() {
	defer close(hotkeys.done)

	for {
		event, xerr := hotkeys.conn.WaitForEvent()
		if event == nil && xerr == nil {
			return
		}
		if xerr != nil {
			hotkeys.logger.WithField("error", xerr.Error()).Warn("X11 event error")
			continue
		}

		press, ok := event.(xproto.KeyPressEvent)
		if !ok {
			continue
		}
		grab := x11Grab{
			keycode:   press.Detail,
			modifiers: x11PressModifiers(press.State),
		}

		hotkeys.mu.Lock()
		binding := hotkeys.bindings[grab]
		var callback func()
		if binding != nil && time.Since(binding.last) >= x11RepeatWindow {
			binding.last = time.Now()
			callback = binding.callback
		}
		hotkeys.mu.Unlock()

		if callback != nil {
			callback()
		}
	}
}

func loadKeymap(conn *xgb.Conn, setup *xproto.SetupInfo) (map[xproto.Keysym]xproto.Keycode, error) {
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, first, count).Reply()
	if err != nil {
		return nil, errors.Wrap(err, "read keyboard mapping")
	}

	perCode := int(reply.KeysymsPerKeycode)
	keymap := make(map[xproto.Keysym]xproto.Keycode)
	for i := 0; i < int(count); i++ {
		keycode := xproto.Keycode(int(first) + i)
		for column := 0; column < perCode && column < 2; column++ {
			keysym := reply.Keysyms[i*perCode+column]
			if keysym == 0 {
				continue
			}
			if _, seen := keymap[keysym]; !seen {
				keymap[keysym] = keycode
			}
		}
	}
	return keymap, nil
}

func x11Modifiers(modifiers hotkey.Modifier) uint16 {
	var mask uint16
	if modifiers&hotkey.ModCtrl != 0 {
		mask |= xproto.ModMaskControl
	}
	if modifiers&hotkey.ModShift != 0 {
		mask |= xproto.ModMaskShift
	}
	if modifiers&hotkey.ModAlt != 0 {
		mask |= xproto.ModMask1
	}
	if modifiers&hotkey.ModSuper != 0 {
		mask |= xproto.ModMask4
	}
	return mask
}

// x11PressModifiers keeps the modifiers a grab can carry. Lock, NumLock and
// held pointer buttons are dropped.
func x11PressModifiers(state uint16) uint16 {
	return state & (xproto.ModMaskControl | xproto.ModMaskShift | xproto.ModMask1 | xproto.ModMask4)
}

var x11NamedKeysyms = map[string]xproto.Keysym{
	hotkey.KeySpace:  0x0020,
	hotkey.KeyEnter:  0xff0d,
	hotkey.KeyEscape: 0xff1b,
	hotkey.KeyTab:    0xff09,
	hotkey.KeyDelete: 0xffff,
	hotkey.KeyLeft:   0xff51,
	hotkey.KeyUp:     0xff52,
	hotkey.KeyRight:  0xff53,
	hotkey.KeyDown:   0xff54,
}

// x11Keysym maps a canonical key name to its X keysym. Letters use the
// lowercase keysym, which is the unshifted column of the keyboard mapping.
func x11Keysym(key string) (xproto.Keysym, bool) {
	if keysym, ok := x11NamedKeysyms[key]; ok {
		return keysym, true
	}
	if len(key) == 1 {
		char := key[0]
		switch {
		case char >= 'A' && char <= 'Z':
			return xproto.Keysym(char - 'A' + 'a'), true
		case char >= '0' && char <= '9':
			return xproto.Keysym(char), true
		}
	}
	if n, ok := (hotkey.Accelerator{Key: key}).FunctionKey(); ok && n >= 1 && n <= hotkey.MaxFunctionKey {
		return xproto.Keysym(0xffbe + n - 1), true
	}
	return 0, false
}
