package storage

import (
	"os"
	"path/filepath"
	"strings"

	"autoclicker/internal/core/model"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Language       string `yaml:"language"`
	Theme          string `yaml:"theme"`
	Hotkey         string `yaml:"hotkey"`
	IntervalMillis int    `yaml:"interval"`
	Button         string `yaml:"button"`
	ClickType      string `yaml:"click_type"`
	Mode           string `yaml:"mode"`
	CustomX        int    `yaml:"custom_x"`
	CustomY        int    `yaml:"custom_y"`
	RepeatOption   string `yaml:"repeat_option"`
	RepeatDuration int    `yaml:"repeat_duration"`
}

// DefaultPath returns <UserConfigDir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, errors.Wrap(err, "read settings file")
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, errors.Wrap(err, "parse settings yaml")
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML through a temp file and rename.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	serialized, err := yaml.Marshal(toYaml(settings))
	if err != nil {
		return errors.Wrap(err, "marshal settings yaml")
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return errors.Wrap(err, "write settings file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "replace settings file")
	}
	return nil
}

// MarshalSettings renders settings in the on-disk format.
func MarshalSettings(settings model.Settings) ([]byte, error) {
	return yaml.Marshal(toYaml(settings))
}

func toYaml(settings model.Settings) yamlSettings {
	return yamlSettings{
		Language:       settings.Language,
		Theme:          settings.Theme,
		Hotkey:         settings.Hotkey,
		IntervalMillis: settings.IntervalMillis,
		Button:         string(settings.Button),
		ClickType:      string(settings.ClickType),
		Mode:           string(settings.Mode),
		CustomX:        settings.CustomX,
		CustomY:        settings.CustomY,
		RepeatOption:   string(settings.RepeatOption),
		RepeatDuration: settings.RepeatDurationSeconds,
	}
}

// applyYamlSettings copies every field that holds a usable value and keeps the
// default for the rest.
func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if model.ValidLanguage(fileData.Language) {
		settings.Language = fileData.Language
	}
	if model.ValidTheme(fileData.Theme) {
		settings.Theme = fileData.Theme
	}
	if hotkey := strings.TrimSpace(fileData.Hotkey); hotkey != "" {
		settings.Hotkey = hotkey
	}
	if fileData.IntervalMillis > 0 {
		settings.IntervalMillis = fileData.IntervalMillis
	}
	if button := model.Button(fileData.Button); button.Validate() == nil {
		settings.Button = button
	}
	switch kind := model.ClickKind(fileData.ClickType); kind {
	case model.ClickSingle, model.ClickDouble:
		settings.ClickType = kind
	}
	switch mode := model.PositionMode(fileData.Mode); mode {
	case model.PositionCurrent, model.PositionCustom:
		settings.Mode = mode
	}
	settings.CustomX = fileData.CustomX
	settings.CustomY = fileData.CustomY
	switch option := model.RepeatOption(fileData.RepeatOption); option {
	case model.RepeatUntilStopped, model.RepeatForTime:
		settings.RepeatOption = option
	}
	settings.RepeatDurationSeconds = model.RepeatDuration(fileData.RepeatDuration)
}
