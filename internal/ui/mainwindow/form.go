package mainwindow

import (
	"strconv"
	"strings"

	"autoclicker/internal/core/model"
	"autoclicker/internal/i18n"

	"github.com/pkg/errors"
)

var errNotCount = errors.New("enter a whole number")

type option[T comparable] struct {
	value T
	key   string
}

var (
	buttonOptions = []option[model.Button]{
		{model.ButtonLeft, "button_left"},
		{model.ButtonRight, "button_right"},
		{model.ButtonMiddle, "button_middle"},
	}
	clickOptions = []option[model.ClickKind]{
		{model.ClickSingle, "click_single"},
		{model.ClickDouble, "click_double"},
	}
	positionOptions = []option[model.PositionMode]{
		{model.PositionCurrent, "position_current"},
		{model.PositionCustom, "position_custom"},
	}
	repeatOptions = []option[model.RepeatOption]{
		{model.RepeatUntilStopped, "repeat_until_stopped"},
		{model.RepeatForTime, "repeat_for_time"},
	}
	themeOptions = []option[string]{
		{model.ThemeDark, "theme_dark"},
		{model.ThemeLight, "theme_light"},
	}
)

// Language names are shown in their own language.
var languageOptions = []option[string]{
	{model.LanguageEnglish, "English"},
	{model.LanguageRussian, "Русский"},
}

func optionLabels[T comparable](translator *i18n.Translator, options []option[T]) []string {
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = translator.T(option.key)
	}
	return labels
}

func languageLabels() []string {
	labels := make([]string, len(languageOptions))
	for i, option := range languageOptions {
		labels[i] = option.key
	}
	return labels
}

func optionIndex[T comparable](options []option[T], value T) int {
	for i, option := range options {
		if option.value == value {
			return i
		}
	}
	return 0
}

func labelIndex(labels []string, selected string) int {
	for i, label := range labels {
		if label == selected {
			return i
		}
	}
	return -1
}

// parseCount reads a non-negative integer field; anything else counts as 0.
func parseCount(text string) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseDuration reads the repeat duration field. A blank, zero or invalid
// entry becomes the default duration.
func parseDuration(text string) int {
	return model.RepeatDuration(parseCount(text))
}

// validateCount marks text that parseCount would read as 0 by accident.
func validateCount(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		return errNotCount
	}
	return nil
}

// parseCoordinate keeps fallback for text that is not an integer.
// Negative values are valid on multi-monitor layouts.
func parseCoordinate(text string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fallback
	}
	return value
}
