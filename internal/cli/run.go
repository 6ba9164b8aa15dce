package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"autoclicker/internal/app"
	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/model"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// runFlags override stored settings for a headless run. Only flags given on
// the command line are applied, and they are saved like any other change.
type runFlags struct {
	interval  int
	button    string
	clickType string
	mode      string
	x         int
	y         int
	duration  int
	hotkey    string
	start     bool
}

func newRunCommand(opts *globalOptions) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Click without a window",
		Long: `Runs the clicker headless. The hotkey toggles clicking; with --start clicking begins
immediately. Exits on Ctrl+C or when a timed run ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts, flags)
		},
	}

	cmd.Flags().IntVar(&flags.interval, "interval", 0, "milliseconds between clicks")
	cmd.Flags().StringVar(&flags.button, "button", "", "mouse button: left, right or middle")
	cmd.Flags().StringVar(&flags.clickType, "click-type", "", "click type: single or double")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "click position: current or custom")
	cmd.Flags().IntVar(&flags.x, "x", 0, "custom position X (implies --mode custom)")
	cmd.Flags().IntVar(&flags.y, "y", 0, "custom position Y (implies --mode custom)")
	cmd.Flags().IntVar(&flags.duration, "duration", 0, "seconds to click before stopping, 0 clicks until stopped")
	cmd.Flags().StringVar(&flags.hotkey, "hotkey", "", "toggle hotkey, e.g. F6 or Ctrl+Shift+A")
	cmd.Flags().BoolVar(&flags.start, "start", false, "start clicking right away")
	return cmd
}

// apply copies the flags reported by changed into settings.
func (flags *runFlags) apply(settings model.Settings, changed func(name string) bool) (model.Settings, error) {
	if changed("interval") {
		settings.IntervalMillis = flags.interval
	}
	if changed("button") {
		button := model.Button(strings.ToLower(flags.button))
		if err := button.Validate(); err != nil {
			return settings, errors.Wrap(err, "--button")
		}
		settings.Button = button
	}
	if changed("click-type") {
		switch kind := model.ClickKind(strings.ToLower(flags.clickType)); kind {
		case model.ClickSingle, model.ClickDouble:
			settings.ClickType = kind
		default:
			return settings, errors.Errorf("--click-type: unknown click type %q", flags.clickType)
		}
	}
	if changed("x") || changed("y") {
		settings.Mode = model.PositionCustom
	}
	if changed("x") {
		settings.CustomX = flags.x
	}
	if changed("y") {
		settings.CustomY = flags.y
	}
	if changed("mode") {
		switch strings.ToLower(flags.mode) {
		case "current", string(model.PositionCurrent):
			settings.Mode = model.PositionCurrent
		case "custom", "fixed", string(model.PositionCustom):
			settings.Mode = model.PositionCustom
		default:
			return settings, errors.Errorf("--mode: unknown mode %q", flags.mode)
		}
	}
	if changed("duration") {
		switch {
		case flags.duration < 0:
			return settings, errors.Errorf("--duration must be >= 0, got %d", flags.duration)
		case flags.duration == 0:
			settings.RepeatOption = model.RepeatUntilStopped
		default:
			settings.RepeatOption = model.RepeatForTime
			settings.RepeatDurationSeconds = flags.duration
		}
	}
	if changed("hotkey") {
		accelerator, err := hotkey.Parse(flags.hotkey)
		if err != nil {
			return settings, errors.Wrap(err, "--hotkey")
		}
		settings.Hotkey = accelerator.String()
	}
	return settings, nil
}

func runHeadless(cmd *cobra.Command, opts *globalOptions, flags *runFlags) (err error) {
	sess, err := openSession(opts, sessionOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	log := sess.logger.WithField("component", "run")

	settings, err := flags.apply(sess.controller.Settings(), cmd.Flags().Changed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, finish := context.WithCancel(ctx)
	defer finish()

	var once sync.Once
	sess.controller.OnStateChange(func(change app.StateChange) {
		switch {
		case change.Err != nil:
			log.WithError(change.Err).Warn("Click failed")
		case change.AutoStopped:
			log.Info("Timed run finished")
			once.Do(finish)
		case change.Running:
			log.Info("Clicking started")
		default:
			log.Info("Clicking stopped")
		}
	})

	bindErr := sess.controller.Start()
	if bindErr != nil && !errors.Is(bindErr, hotkey.ErrBindFailed) {
		return bindErr
	}
	previousHotkey := sess.controller.Settings().Hotkey
	switch err := sess.controller.UpdateSettings(settings); {
	case err == nil:
		if settings.Hotkey != previousHotkey {
			bindErr = nil
		}
	case errors.Is(err, hotkey.ErrBindFailed):
		bindErr = err
	default:
		return err
	}

	current := sess.controller.Settings()
	if bindErr != nil {
		if !flags.start {
			return errors.Wrap(bindErr, "no hotkey to start clicking; pass --start")
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Press %s to start or stop clicking, Ctrl+C to exit.\n", current.Hotkey)
	}

	if flags.start {
		if err := sess.controller.SetEnabled(true); err != nil {
			return err
		}
	}

	<-ctx.Done()
	return nil
}
