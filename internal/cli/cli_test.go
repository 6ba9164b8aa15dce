package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/model"
	"autoclicker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func changedSet(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, name := range names {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}

func TestRunFlagsApplyOnlyChanged(t *testing.T) {
	flags := &runFlags{interval: 250, button: "Right", duration: 5}
	settings, err := flags.apply(model.DefaultSettings(), changedSet("interval", "button"))
	require.NoError(t, err)

	assert.Equal(t, 250, settings.IntervalMillis)
	assert.Equal(t, model.ButtonRight, settings.Button)
	assert.Equal(t, model.RepeatUntilStopped, settings.RepeatOption)
}

func TestRunFlagsPositionImpliesCustomMode(t *testing.T) {
	flags := &runFlags{x: 40, y: -10}
	settings, err := flags.apply(model.DefaultSettings(), changedSet("x", "y"))
	require.NoError(t, err)

	assert.Equal(t, model.PositionCustom, settings.Mode)
	assert.Equal(t, 40, settings.CustomX)
	assert.Equal(t, -10, settings.CustomY)
}

func TestRunFlagsDuration(t *testing.T) {
	flags := &runFlags{duration: 12}
	settings, err := flags.apply(model.DefaultSettings(), changedSet("duration"))
	require.NoError(t, err)
	assert.Equal(t, model.RepeatForTime, settings.RepeatOption)
	assert.Equal(t, 12, settings.RepeatDurationSeconds)

	flags.duration = 0
	settings, err = flags.apply(settings, changedSet("duration"))
	require.NoError(t, err)
	assert.Equal(t, model.RepeatUntilStopped, settings.RepeatOption)
}

func TestRunFlagsHotkeyIsCanonical(t *testing.T) {
	flags := &runFlags{hotkey: "shift+ctrl+f9"}
	settings, err := flags.apply(model.DefaultSettings(), changedSet("hotkey"))
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+F9", settings.Hotkey)
}

func TestRunFlagsRejectBadValues(t *testing.T) {
	cases := map[string]*runFlags{
		"button":     {button: "thumb"},
		"click-type": {clickType: "triple"},
		"mode":       {mode: "sideways"},
		"duration":   {duration: -1},
		"hotkey":     {hotkey: "ctrl+"},
	}
	for name, flags := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := flags.apply(model.DefaultSettings(), changedSet(name))
			assert.Error(t, err)
		})
	}
}

func TestSettingsCommandPrintsYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	output, err := execute(t, "settings", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, output, "# "+path)
	assert.Contains(t, output, "hotkey: F6")
	assert.Contains(t, output, "interval: 1000")
}

func TestRunDryRunTimedStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	started := time.Now()

	_, err := execute(t, "run", "--backend", "dry-run", "--config", path,
		"--interval", "50", "--duration", "1", "--start", "--log-level", "error")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 900*time.Millisecond)

	saved, err := storage.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 50, saved.IntervalMillis)
	assert.Equal(t, model.RepeatForTime, saved.RepeatOption)
	assert.Equal(t, 1, saved.RepeatDurationSeconds)
}

func TestRunDryRunNeedsStartWithoutHotkey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	_, err := execute(t, "run", "--backend", "dry-run", "--config", path, "--log-level", "error")
	assert.ErrorIs(t, err, hotkey.ErrBindFailed)
}

func TestPickDryRunStoresPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	output, err := execute(t, "pick", "--backend", "dry-run", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "(0,0)")

	saved, err := storage.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.PositionCustom, saved.Mode)
}

func TestUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	_, err := execute(t, "pick", "--backend", "carrier-pigeon", "--config", path, "--log-level", "error")
	assert.Error(t, err)
}
