package cli

import (
	"context"
	"sync/atomic"
	"time"

	"autoclicker/internal/app"
	"autoclicker/internal/core/model"
	"autoclicker/internal/i18n"
	"autoclicker/internal/input"
	"autoclicker/internal/platform"
	"autoclicker/internal/ui/apptheme"
	"autoclicker/internal/ui/mainwindow"
	"autoclicker/internal/ui/overlay"
	"autoclicker/internal/ui/tray"
	"autoclicker/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/pkg/errors"
)

const (
	appID           = "io.github.autoclicker"
	pickSettleDelay = 300 * time.Millisecond
	overlayOpacity  = 0.35
)

func runGUI(opts *globalOptions) (err error) {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		// The running instance has been asked to show its window.
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	sess, err := openSession(opts, sessionOptions{pickSettle: true})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	newDesktop(sess, guard).run()
	return nil
}

// desktopUI wires the controller to the fyne windows and the tray. Its
// fields are only touched on the fyne goroutine.
type desktopUI struct {
	sess       *session
	controller *app.Controller
	translator *i18n.Translator
	guard      *platform.InstanceGuard

	app     fyne.App
	main    *mainwindow.Window
	overlay *overlay.Window
	tray    *tray.Manager

	// selfUpdate is set while the main window pushes its own change, so the
	// echo is not written back into fields the user is editing.
	selfUpdate atomic.Bool
	cancelPick context.CancelFunc
	pickSeq    int
}

func newDesktop(sess *session, guard *platform.InstanceGuard) *desktopUI {
	return &desktopUI{
		sess:       sess,
		controller: sess.controller,
		translator: sess.translator,
		guard:      guard,
	}
}

func (ui *desktopUI) run() {
	log := ui.sess.logger.WithField("component", "gui")
	settings := ui.controller.Settings()
	ui.translator.SetLanguage(settings.Language)

	ui.app = fyneapp.NewWithID(appID)
	ui.app.SetIcon(resources.MustIcon(resources.AppIcon))
	apptheme.Apply(ui.app, settings.Theme)

	ui.overlay = overlay.New(ui.app, ui.overlayConfig())
	ui.overlay.SetOnCancel(ui.stopPick)

	ui.main = mainwindow.New(ui.app, ui.translator, settings, mainwindow.Callbacks{
		OnSettingsChange: ui.handleSettingsChange,
		OnToggle:         ui.toggle,
		OnPick:           ui.startPick,
		OnHotkey:         ui.handleHotkey,
		OnLanguage:       ui.handleLanguage,
		OnTheme:          ui.handleTheme,
	})

	if desktopApp, ok := ui.app.(desktop.App); ok {
		ui.tray = tray.New(desktopApp, ui.trayLabels(), tray.Icons{
			Idle:   resources.MustIcon(resources.TrayIdleIcon),
			Active: resources.MustIcon(resources.TrayActiveIcon),
		}, tray.Callbacks{
			OnToggle: ui.toggle,
			OnShow:   ui.main.Show,
			OnQuit:   ui.app.Quit,
		})
	} else {
		log.Info("System tray unsupported, closing the window quits")
		ui.main.OnClose(ui.app.Quit)
	}

	ui.controller.OnStateChange(func(change app.StateChange) {
		fyne.Do(func() { ui.applyState(change) })
	})
	ui.controller.OnSettingsChange(func(updated model.Settings) {
		if ui.selfUpdate.Load() {
			return
		}
		fyne.Do(func() { ui.main.SetSettings(updated) })
	})
	ui.guard.OnActivate(func() {
		fyne.Do(ui.main.Show)
	})

	if err := ui.controller.Start(); err != nil {
		log.WithError(err).Warn("Controller started without hotkey")
		ui.main.SetStatus(ui.translator.Tf("hotkey_bind_failed", map[string]any{"Hotkey": settings.Hotkey}))
	}

	ui.main.Show()
	ui.app.Run()
	ui.stopPick()
}

func (ui *desktopUI) applyState(change app.StateChange) {
	if change.Err != nil {
		ui.main.SetStatus(ui.translator.Tf("status_error", map[string]any{"Error": change.Err.Error()}))
		return
	}
	ui.main.SetRunning(change.Running)
	if ui.tray != nil {
		ui.tray.SetRunning(change.Running)
	}
	if change.AutoStopped {
		seconds := ui.controller.Settings().RepeatDurationSeconds
		ui.main.SetStatus(ui.translator.Tf("status_auto_stopped", map[string]any{"Seconds": seconds}))
	}
}

func (ui *desktopUI) handleSettingsChange(settings model.Settings) {
	ui.selfUpdate.Store(true)
	err := ui.controller.UpdateSettings(settings)
	ui.selfUpdate.Store(false)
	if err != nil {
		ui.showError(err)
	}
}

func (ui *desktopUI) handleHotkey(accelerator string) {
	ui.selfUpdate.Store(true)
	err := ui.controller.SetHotkey(accelerator)
	ui.selfUpdate.Store(false)

	ui.main.SetSettings(ui.controller.Settings())
	if err != nil {
		ui.main.SetStatus(ui.translator.Tf("hotkey_bind_failed", map[string]any{"Hotkey": accelerator}))
	}
}

func (ui *desktopUI) handleLanguage(lang string) {
	ui.selfUpdate.Store(true)
	err := ui.controller.ChangeLanguage(lang)
	ui.selfUpdate.Store(false)
	if err != nil {
		ui.showError(err)
		return
	}
	ui.main.SetSettings(ui.controller.Settings())
	ui.overlay.UpdateConfig(ui.overlayConfig())
	if ui.tray != nil {
		ui.tray.SetLabels(ui.trayLabels())
	}
}

func (ui *desktopUI) handleTheme(theme string) {
	ui.selfUpdate.Store(true)
	err := ui.controller.ChangeTheme(theme)
	ui.selfUpdate.Store(false)
	if err != nil {
		ui.showError(err)
		return
	}
	apptheme.Apply(ui.app, theme)
}

func (ui *desktopUI) toggle() {
	if err := ui.controller.Toggle(); err != nil {
		ui.showError(err)
	}
}

func (ui *desktopUI) startPick() {
	if ui.cancelPick != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultPickTimeout)
	ui.cancelPick = cancel
	ui.pickSeq++
	seq := ui.pickSeq
	ui.overlay.Show()

	go func() {
		_, err := ui.controller.PickPosition(ctx)
		fyne.Do(func() {
			if seq == ui.pickSeq {
				ui.stopPick()
			}
			if err != nil && !errors.Is(err, input.ErrPickCancelled) {
				ui.showError(err)
			}
			ui.main.Show()
		})
	}()
}

func (ui *desktopUI) stopPick() {
	if ui.cancelPick == nil {
		return
	}
	ui.cancelPick()
	ui.cancelPick = nil
	ui.overlay.Hide()
}

func (ui *desktopUI) showError(err error) {
	ui.sess.logger.WithError(err).Warn("Action failed")
	ui.main.SetStatus(ui.translator.Tf("status_error", map[string]any{"Error": err.Error()}))
}

func (ui *desktopUI) overlayConfig() overlay.Config {
	return overlay.Config{
		Opacity:     overlay.OpacityToAlpha(overlayOpacity),
		Message:     ui.translator.T("pick_hint"),
		CancelLabel: ui.translator.T("pick_cancel"),
	}
}

func (ui *desktopUI) trayLabels() tray.Labels {
	return tray.Labels{
		Title:   ui.translator.T("app_title"),
		Running: ui.translator.T("status_running"),
		Stopped: ui.translator.T("status_stopped"),
		Start:   ui.translator.T("start"),
		Stop:    ui.translator.T("stop"),
		Show:    ui.translator.T("tray_show"),
		Quit:    ui.translator.T("tray_quit"),
	}
}
