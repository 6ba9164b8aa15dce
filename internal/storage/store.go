package storage

import (
	"io"
	"sync"
	"time"

	"autoclicker/internal/core/model"

	"github.com/sirupsen/logrus"
)

// SaveDelay coalesces bursts of edits into one write.
const SaveDelay = 500 * time.Millisecond

// Store keeps the current settings in memory and writes them back with a
// debounce. Enabled lives only in memory.
type Store struct {
	mu       sync.Mutex
	path     string
	delay    time.Duration
	logger   logrus.FieldLogger
	settings model.Settings
	pending  *time.Timer
	dirty    bool
}

// Open loads path and returns a Store around it. A missing file yields defaults;
// an unreadable one yields defaults and the load error.
func Open(path string, logger logrus.FieldLogger) (*Store, error) {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	settings, err := LoadSettings(path)
	store := &Store{
		path:     path,
		delay:    SaveDelay,
		logger:   logger.WithField("component", "settings"),
		settings: settings,
	}
	if err != nil {
		store.logger.WithError(err).Warn("Settings file ignored, using defaults")
	}
	return store, err
}

// Path returns the backing file.
func (store *Store) Path() string {
	return store.path
}

// SetSaveDelay overrides the debounce window.
func (store *Store) SetSaveDelay(delay time.Duration) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.delay = delay
}

// Settings returns a copy of the current settings.
func (store *Store) Settings() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.settings
}

// Update applies mutate and schedules a save. The result is returned.
func (store *Store) Update(mutate func(*model.Settings)) model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()

	before := store.settings
	mutate(&store.settings)
	after := store.settings

	before.Enabled, after.Enabled = false, false
	if before != after {
		store.scheduleLocked()
	}
	return store.settings
}

// Flush cancels a pending debounce and writes immediately if anything changed.
func (store *Store) Flush() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.pending != nil {
		store.pending.Stop()
		store.pending = nil
	}
	return store.saveLocked()
}

func (store *Store) scheduleLocked() {
	store.dirty = true
	if store.pending != nil {
		store.pending.Stop()
	}
	store.pending = time.AfterFunc(store.delay, func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.pending = nil
		if err := store.saveLocked(); err != nil {
			store.logger.WithError(err).Error("Saving settings failed")
		}
	})
}

func (store *Store) saveLocked() error {
	if !store.dirty {
		return nil
	}
	if err := SaveSettings(store.path, store.settings); err != nil {
		return err
	}
	store.dirty = false
	store.logger.WithField("path", store.path).Debug("Settings saved")
	return nil
}
