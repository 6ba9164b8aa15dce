package model

// PositionMode is the persisted name of the pointer mode.
type PositionMode string

const (
	PositionCurrent PositionMode = "current_position"
	PositionCustom  PositionMode = "custom_position"
)

// RepeatOption is the persisted name of the stop policy.
type RepeatOption string

const (
	RepeatUntilStopped RepeatOption = "until_stopped"
	RepeatForTime      RepeatOption = "repeat_for_time"
)

// Supported UI languages and themes.
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultHotkey toggles clicking when nothing else is configured.
const DefaultHotkey = "F6"

// DefaultRepeatDurationSeconds is used when no positive duration is entered.
const DefaultRepeatDurationSeconds = 60

// Settings defines editable user preferences. Enabled is runtime state and is
// never written to disk.
type Settings struct {
	Language string
	Theme    string
	Hotkey   string

	IntervalMillis int
	Button         Button
	ClickType      ClickKind
	Mode           PositionMode
	CustomX        int
	CustomY        int

	RepeatOption          RepeatOption
	RepeatDurationSeconds int

	Enabled bool
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		Language:              LanguageEnglish,
		Theme:                 ThemeDark,
		Hotkey:                DefaultHotkey,
		IntervalMillis:        DefaultIntervalMillis,
		Button:                ButtonLeft,
		ClickType:             ClickSingle,
		Mode:                  PositionCurrent,
		RepeatOption:          RepeatUntilStopped,
		RepeatDurationSeconds: DefaultRepeatDurationSeconds,
	}
}

// ClickConfig converts settings to the scheduler snapshot.
func (settings Settings) ClickConfig() ClickConfig {
	config := ClickConfig{
		IntervalMillis:      settings.IntervalMillis,
		PointerMode:         PointerTracking,
		FixedPosition:       Point{X: settings.CustomX, Y: settings.CustomY},
		Button:              settings.Button,
		ClickKind:           settings.ClickType,
		StopPolicy:          StopUntilStopped,
		StopDurationSeconds: settings.RepeatDurationSeconds,
	}
	if settings.Mode == PositionCustom {
		config.PointerMode = PointerFixed
	}
	if settings.RepeatOption == RepeatForTime {
		config.StopPolicy = StopForDuration
	}
	return config
}

// ValidLanguage reports whether a translation catalog exists for lang.
func ValidLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageRussian
}

// ValidTheme reports whether theme is dark or light.
func ValidTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeLight
}

// ValidPositionMode reports whether mode is a known pointer mode.
func ValidPositionMode(mode PositionMode) bool {
	return mode == PositionCurrent || mode == PositionCustom
}

// ValidRepeatOption reports whether option is a known stop policy.
func ValidRepeatOption(option RepeatOption) bool {
	return option == RepeatUntilStopped || option == RepeatForTime
}

// RepeatDuration returns seconds, or the default duration when seconds is not
// positive.
func RepeatDuration(seconds int) int {
	if seconds <= 0 {
		return DefaultRepeatDurationSeconds
	}
	return seconds
}

// CombineInterval turns the h/m/s/ms entry fields into milliseconds. A zero or
// negative total becomes the default interval.
func CombineInterval(hours, minutes, seconds, millis int) int {
	total := ((hours*60+minutes)*60+seconds)*1000 + millis
	if total <= 0 {
		return DefaultIntervalMillis
	}
	return total
}

// SplitInterval is the inverse of CombineInterval.
func SplitInterval(intervalMillis int) (hours, minutes, seconds, millis int) {
	if intervalMillis < 0 {
		intervalMillis = 0
	}
	millis = intervalMillis % 1000
	totalSeconds := intervalMillis / 1000
	seconds = totalSeconds % 60
	minutes = (totalSeconds / 60) % 60
	hours = totalSeconds / 3600
	return hours, minutes, seconds, millis
}
