//go:build !windows

package overlay

// The compositor blends the translucent background, so no window-level alpha
// is needed.
func backgroundAlpha(config Config) uint8 {
	return config.Opacity
}

func (overlay *Window) applyNativeOpacity(Config) {}
