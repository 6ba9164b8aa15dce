package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"autoclicker/internal/core/model"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "autoclicker", settingsFileName)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(settingsPath(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := settingsPath(t)
	settings := model.DefaultSettings()
	settings.Language = model.LanguageRussian
	settings.Theme = model.ThemeLight
	settings.Hotkey = "Ctrl+Shift+F8"
	settings.IntervalMillis = 250
	settings.Button = model.ButtonMiddle
	settings.ClickType = model.ClickDouble
	settings.Mode = model.PositionCustom
	settings.CustomX = 12
	settings.CustomY = 34
	settings.RepeatOption = model.RepeatForTime
	settings.RepeatDurationSeconds = 5

	require.NoError(t, SaveSettings(path, settings))
	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRepeatDurationRoundTrip(t *testing.T) {
	path := settingsPath(t)
	settings := model.DefaultSettings()
	settings.RepeatDurationSeconds = 45
	require.NoError(t, SaveSettings(path, settings))
	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 45, loaded.RepeatDurationSeconds)

	settings.RepeatDurationSeconds = 0
	require.NoError(t, SaveSettings(path, settings))
	loaded, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRepeatDurationSeconds, loaded.RepeatDurationSeconds)
}

func TestEnabledIsNeverPersisted(t *testing.T) {
	path := settingsPath(t)
	settings := model.DefaultSettings()
	settings.Enabled = true

	require.NoError(t, SaveSettings(path, settings))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "enabled")

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)
}

func TestLoadIgnoresInvalidFields(t *testing.T) {
	path := settingsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	raw := "language: de\ntheme: neon\ninterval: -5\nbutton: thumb\nclick_type: triple\n" +
		"mode: elsewhere\nrepeat_option: forever\nrepeat_duration: 0\ncustom_x: 7\nhotkey: \"  \"\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)

	expected := model.DefaultSettings()
	expected.CustomX = 7
	assert.Equal(t, expected, loaded)
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	path := settingsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("interval: [1, 2"), 0o644))

	settings, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestStoreDebouncesSaves(t *testing.T) {
	path := settingsPath(t)
	logger, _ := logtest.NewNullLogger()
	store, err := Open(path, logger)
	require.NoError(t, err)
	store.SetSaveDelay(50 * time.Millisecond)

	for i := 1; i <= 5; i++ {
		interval := i * 100
		store.Update(func(settings *model.Settings) { settings.IntervalMillis = interval })
	}

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "saved before the debounce window elapsed")

	require.Eventually(t, func() bool {
		loaded, err := LoadSettings(path)
		return err == nil && loaded.IntervalMillis == 500
	}, time.Second, 10*time.Millisecond)
}

func TestStoreRuntimeOnlyChangeDoesNotSave(t *testing.T) {
	path := settingsPath(t)
	store, err := Open(path, nil)
	require.NoError(t, err)
	store.SetSaveDelay(10 * time.Millisecond)

	updated := store.Update(func(settings *model.Settings) { settings.Enabled = true })
	assert.True(t, updated.Enabled)
	assert.True(t, store.Settings().Enabled)

	time.Sleep(60 * time.Millisecond)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreFlushWritesImmediately(t *testing.T) {
	path := settingsPath(t)
	store, err := Open(path, nil)
	require.NoError(t, err)

	store.Update(func(settings *model.Settings) { settings.Theme = model.ThemeLight })
	require.NoError(t, store.Flush())

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, loaded.Theme)

	assert.NoError(t, store.Flush())
}

func TestOpenWithBrokenFileFallsBackToDefaults(t *testing.T) {
	path := settingsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("interval: [1, 2"), 0o644))

	logger, hook := logtest.NewNullLogger()
	store, err := Open(path, logger)
	assert.Error(t, err)
	require.NotNil(t, store)
	assert.Equal(t, model.DefaultSettings(), store.Settings())
	assert.NotEmpty(t, hook.AllEntries())
}

func TestMarshalSettingsUsesFileKeys(t *testing.T) {
	data, err := MarshalSettings(model.DefaultSettings())
	require.NoError(t, err)
	text := string(data)
	for _, key := range []string{"language: en", "hotkey: F6", "interval: 1000", "click_type: single", "repeat_option: until_stopped", "repeat_duration: 60"} {
		assert.Contains(t, text, key)
	}
}
