package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals and texts.
type Config struct {
	Opacity     uint8
	Message     string
	CancelLabel string
}

// Window is the translucent full-screen layer shown while the user picks a
// click position.
type Window struct {
	app          fyne.App
	window       fyne.Window
	config       Config
	background   *canvas.Rectangle
	messageLabel *canvas.Text
	cancelButton *widget.Button
	onCancel     func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden overlay window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Pick position")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: backgroundAlpha(config)})

	messageLabel := canvas.NewText(config.Message, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.TextSize = 22

	cancelButton := widget.NewButton(config.CancelLabel, nil)

	panel := container.New(&panelLayout{}, messageLabel, cancelButton)
	window.SetContent(container.NewStack(background, panel))

	overlay := &Window{
		app:          app,
		window:       window,
		config:       config,
		background:   background,
		messageLabel: messageLabel,
		cancelButton: cancelButton,
	}

	cancelButton.OnTapped = overlay.cancel
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			overlay.cancel()
		}
	})
	window.SetCloseIntercept(overlay.cancel)

	return overlay
}

// SetOnCancel sets the handler for the Cancel button, Escape and window close.
func (overlay *Window) SetOnCancel(handler func()) {
	overlay.onCancel = handler
}

// Show covers the screen. Must run on the UI goroutine.
func (overlay *Window) Show() {
	overlay.window.SetFullScreen(true)
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.applyNativeOpacity(overlay.config)
}

// Hide removes the overlay. Must run on the UI goroutine.
func (overlay *Window) Hide() {
	overlay.window.SetFullScreen(false)
	overlay.window.Hide()
}

// UpdateConfig replaces texts and opacity, e.g. after a language change.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: backgroundAlpha(config)}
	canvas.Refresh(overlay.background)
	overlay.applyNativeOpacity(config)
	overlay.messageLabel.Text = config.Message
	overlay.messageLabel.Refresh()
	overlay.cancelButton.SetText(config.CancelLabel)
}

func (overlay *Window) cancel() {
	if overlay.onCancel != nil {
		overlay.onCancel()
	}
}

// OpacityToAlpha converts a 0..1 opacity into an alpha byte.
func OpacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}

// panelLayout centers the message with the cancel button below it.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	message := objects[0]
	cancel := objects[1]

	messageSize := message.MinSize()
	cancelSize := cancel.MinSize()
	cancelWidth := cancelSize.Width * 1.4
	gap := messageSize.Height

	total := messageSize.Height + gap + cancelSize.Height
	top := (size.Height - total) / 2
	if top < 0 {
		top = 0
	}

	message.Move(fyne.NewPos(0, top))
	message.Resize(fyne.NewSize(size.Width, messageSize.Height))

	cancel.Move(fyne.NewPos((size.Width-cancelWidth)/2, top+messageSize.Height+gap))
	cancel.Resize(fyne.NewSize(cancelWidth, cancelSize.Height))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	messageSize := objects[0].MinSize()
	cancelSize := objects[1].MinSize()
	width := messageSize.Width
	if cancelSize.Width*1.4 > width {
		width = cancelSize.Width * 1.4
	}
	return fyne.NewSize(width+20, messageSize.Height*2+cancelSize.Height)
}
