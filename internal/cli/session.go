package cli

import (
	"autoclicker/internal/app"
	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/scheduler"
	"autoclicker/internal/i18n"
	"autoclicker/internal/input"
	"autoclicker/internal/logging"
	"autoclicker/internal/platform"
	"autoclicker/internal/storage"

	"github.com/pkg/errors"
)

// session owns everything a command needs to drive the clicker.
type session struct {
	logger     *logging.Logger
	store      *storage.Store
	devices    *platform.Devices
	translator *i18n.Translator
	controller *app.Controller
}

type sessionOptions struct {
	// pickSettle wraps the device picker in input.SettlingPicker when set.
	pickSettle bool
}

func openLogger(opts *globalOptions) (*logging.Logger, error) {
	cfg := logging.DefaultConfig()
	cfg.Level = opts.logLevel
	cfg.FilePath = opts.logFile
	return logging.New(cfg)
}

func settingsPath(opts *globalOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return storage.DefaultPath(appName)
}

func openSession(opts *globalOptions, sessionOpts sessionOptions) (*session, error) {
	logger, err := openLogger(opts)
	if err != nil {
		return nil, err
	}

	path, err := settingsPath(opts)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	// A broken settings file is logged by the store, which falls back to defaults.
	store, _ := storage.Open(path, logger)

	devices, err := platform.OpenDevices(opts.backend, logger)
	if err != nil {
		_ = logger.Close()
		return nil, errors.Wrapf(err, "open %s backend", opts.backend)
	}
	logger.WithField("backend", devices.Name).Info("Input backend ready")

	translator, err := i18n.New(store.Settings().Language)
	if err != nil {
		_ = devices.Close()
		_ = logger.Close()
		return nil, err
	}

	picker := devices.Picker
	if sessionOpts.pickSettle && picker != nil {
		picker = input.SettlingPicker{Picker: picker, Delay: pickSettleDelay}
	}

	controller := app.New(app.Dependencies{
		Scheduler:  scheduler.New(devices.Executor, logger),
		Registrar:  hotkey.NewRegistrar(devices.Hotkeys, logger),
		Store:      store,
		Picker:     picker,
		Translator: translator,
		Logger:     logger,
	})

	return &session{
		logger:     logger,
		store:      store,
		devices:    devices,
		translator: translator,
		controller: controller,
	}, nil
}

// Close stops clicking, saves settings and releases the backend.
func (sess *session) Close() error {
	err := sess.controller.Shutdown()
	if closeErr := sess.devices.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := sess.logger.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
