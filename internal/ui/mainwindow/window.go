// Package mainwindow is the settings and control window.
package mainwindow

import (
	"strconv"

	"autoclicker/internal/core/model"
	"autoclicker/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks are invoked on the UI goroutine.
type Callbacks struct {
	OnSettingsChange func(model.Settings)
	OnToggle         func()
	OnPick           func()
	OnHotkey         func(accelerator string)
	OnLanguage       func(lang string)
	OnTheme          func(theme string)
}

// Window handles the main UI.
type Window struct {
	window     fyne.Window
	translator *i18n.Translator
	callbacks  Callbacks
	settings   model.Settings
	language   string
	running    bool
	status     string

	// updating suppresses change callbacks while values are set from code.
	updating  bool
	capturing bool
	capture   *hotkeyCapture

	hours        *widget.Entry
	minutes      *widget.Entry
	seconds      *widget.Entry
	millis       *widget.Entry
	button       *widget.Select
	clickType    *widget.Select
	position     *widget.RadioGroup
	customX      *widget.Entry
	customY      *widget.Entry
	pickButton   *widget.Button
	repeat       *widget.RadioGroup
	duration     *widget.Entry
	hotkeyLabel  *widget.Label
	hotkeyButton *widget.Button
	languageSel  *widget.Select
	themeSel     *widget.Select
	toggleButton *widget.Button
	statusLabel  *widget.Label
}

// New creates the main window. Closing it hides the window; the tray keeps
// the application alive.
func New(app fyne.App, translator *i18n.Translator, settings model.Settings, callbacks Callbacks) *Window {
	view := &Window{
		window:     app.NewWindow(translator.T("app_title")),
		translator: translator,
		callbacks:  callbacks,
		settings:   settings,
		capture:    newHotkeyCapture(),
	}

	if keyCanvas, ok := view.window.Canvas().(desktop.Canvas); ok {
		keyCanvas.SetOnKeyDown(view.handleKeyDown)
		keyCanvas.SetOnKeyUp(view.handleKeyUp)
	}
	view.window.SetCloseIntercept(view.window.Hide)

	view.render()
	view.window.Resize(fyne.NewSize(460, 560))
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// OnClose replaces the default close action, which only hides the window.
func (view *Window) OnClose(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// Hide hides the window.
func (view *Window) Hide() {
	view.window.Hide()
}

// SetSettings applies settings changed elsewhere (hotkey, tray, picker).
// A language change rebuilds the whole window.
func (view *Window) SetSettings(settings model.Settings) {
	view.settings = settings
	if settings.Language != view.language {
		view.render()
		return
	}
	view.updating = true
	defer func() { view.updating = false }()
	view.applyValues()
}

// SetRunning updates the Start/Stop button and the default status text.
func (view *Window) SetRunning(running bool) {
	view.running = running
	if running {
		view.status = view.translator.T("status_running")
	} else {
		view.status = view.translator.T("status_stopped")
	}
	view.applyRunning()
}

// SetStatus overrides the status line until the next SetRunning.
func (view *Window) SetStatus(status string) {
	view.status = status
	view.statusLabel.SetText(status)
}

func (view *Window) render() {
	view.updating = true
	defer func() { view.updating = false }()

	t := view.translator.T
	view.language = view.settings.Language
	view.capturing = false
	view.window.SetTitle(t("app_title"))

	view.hours = view.newCountEntry()
	view.minutes = view.newCountEntry()
	view.seconds = view.newCountEntry()
	view.millis = view.newCountEntry()
	interval := container.NewGridWithColumns(4,
		container.NewBorder(nil, nil, nil, widget.NewLabel(t("hours")), view.hours),
		container.NewBorder(nil, nil, nil, widget.NewLabel(t("minutes")), view.minutes),
		container.NewBorder(nil, nil, nil, widget.NewLabel(t("seconds")), view.seconds),
		container.NewBorder(nil, nil, nil, widget.NewLabel(t("milliseconds")), view.millis),
	)

	view.button = widget.NewSelect(optionLabels(view.translator, buttonOptions), func(string) { view.emit() })
	view.clickType = widget.NewSelect(optionLabels(view.translator, clickOptions), func(string) { view.emit() })
	clickOptionsBox := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel(t("mouse_button")), nil, view.button),
		container.NewBorder(nil, nil, widget.NewLabel(t("click_type")), nil, view.clickType),
	)

	view.position = widget.NewRadioGroup(optionLabels(view.translator, positionOptions), func(string) { view.emit() })
	view.customX = view.newCoordinateEntry()
	view.customY = view.newCoordinateEntry()
	view.pickButton = widget.NewButton(t("pick_location"), func() {
		if view.callbacks.OnPick != nil {
			view.callbacks.OnPick()
		}
	})
	positionBox := container.NewVBox(
		view.position,
		container.NewGridWithColumns(3,
			container.NewBorder(nil, nil, widget.NewLabel("X"), nil, view.customX),
			container.NewBorder(nil, nil, widget.NewLabel("Y"), nil, view.customY),
			view.pickButton,
		),
	)

	view.repeat = widget.NewRadioGroup(optionLabels(view.translator, repeatOptions), func(string) { view.emit() })
	view.duration = view.newCountEntry()
	repeatBox := container.NewVBox(
		view.repeat,
		container.NewBorder(nil, nil, nil, widget.NewLabel(t("seconds")), view.duration),
	)

	view.hotkeyLabel = widget.NewLabel("")
	view.hotkeyButton = widget.NewButton(t("hotkey_change"), view.startCapture)
	hotkeyBox := container.NewHBox(widget.NewLabel(t("hotkey")), view.hotkeyLabel, layout.NewSpacer(), view.hotkeyButton)

	view.languageSel = widget.NewSelect(languageLabels(), func(selected string) {
		if view.updating || view.callbacks.OnLanguage == nil {
			return
		}
		if index := labelIndex(languageLabels(), selected); index >= 0 {
			view.callbacks.OnLanguage(languageOptions[index].value)
		}
	})
	themeLabels := optionLabels(view.translator, themeOptions)
	view.themeSel = widget.NewSelect(themeLabels, func(selected string) {
		if view.updating || view.callbacks.OnTheme == nil {
			return
		}
		if index := labelIndex(themeLabels, selected); index >= 0 {
			view.callbacks.OnTheme(themeOptions[index].value)
		}
	})
	appearance := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel(t("language")), nil, view.languageSel),
		container.NewBorder(nil, nil, widget.NewLabel(t("theme")), nil, view.themeSel),
	)

	view.toggleButton = widget.NewButton("", func() {
		if view.callbacks.OnToggle != nil {
			view.callbacks.OnToggle()
		}
	})
	view.statusLabel = widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle(t("click_interval"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		interval,
		widget.NewLabelWithStyle(t("click_options"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clickOptionsBox,
		widget.NewLabelWithStyle(t("position"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		positionBox,
		widget.NewLabelWithStyle(t("repeat"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		repeatBox,
		widget.NewSeparator(),
		hotkeyBox,
		appearance,
	)
	footer := container.NewVBox(widget.NewSeparator(), view.statusLabel, view.toggleButton)

	view.window.SetContent(container.NewBorder(nil, footer, nil, nil, container.NewVScroll(form)))

	view.applyValues()
	view.SetRunning(view.running)
}

func (view *Window) newCountEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = validateCount
	entry.OnChanged = func(string) { view.emit() }
	return entry
}

func (view *Window) newCoordinateEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.OnChanged = func(string) { view.emit() }
	return entry
}

// applyValues copies view.settings into the widgets. Text fields that already
// describe the same value are left alone so typing is not interrupted.
func (view *Window) applyValues() {
	settings := view.settings

	current := model.CombineInterval(parseCount(view.hours.Text), parseCount(view.minutes.Text),
		parseCount(view.seconds.Text), parseCount(view.millis.Text))
	if view.hours.Text == "" || current != settings.IntervalMillis {
		hours, minutes, seconds, millis := model.SplitInterval(settings.IntervalMillis)
		view.hours.SetText(strconv.Itoa(hours))
		view.minutes.SetText(strconv.Itoa(minutes))
		view.seconds.SetText(strconv.Itoa(seconds))
		view.millis.SetText(strconv.Itoa(millis))
	}

	view.button.SetSelectedIndex(optionIndex(buttonOptions, settings.Button))
	view.clickType.SetSelectedIndex(optionIndex(clickOptions, settings.ClickType))
	view.position.SetSelected(view.position.Options[optionIndex(positionOptions, settings.Mode)])

	if view.customX.Text == "" || parseCoordinate(view.customX.Text, settings.CustomX+1) != settings.CustomX {
		view.customX.SetText(strconv.Itoa(settings.CustomX))
	}
	if view.customY.Text == "" || parseCoordinate(view.customY.Text, settings.CustomY+1) != settings.CustomY {
		view.customY.SetText(strconv.Itoa(settings.CustomY))
	}
	view.repeat.SetSelected(view.repeat.Options[optionIndex(repeatOptions, settings.RepeatOption)])
	if view.duration.Text == "" || parseCount(view.duration.Text) != settings.RepeatDurationSeconds {
		view.duration.SetText(strconv.Itoa(settings.RepeatDurationSeconds))
	}
	view.applyEnabled(settings)

	if !view.capturing {
		view.hotkeyLabel.SetText(settings.Hotkey)
	}
	view.languageSel.SetSelectedIndex(optionIndex(languageOptions, settings.Language))
	view.themeSel.SetSelectedIndex(optionIndex(themeOptions, settings.Theme))
}

// applyEnabled greys out fields the chosen options do not use.
func (view *Window) applyEnabled(settings model.Settings) {
	if settings.Mode == model.PositionCustom {
		view.customX.Enable()
		view.customY.Enable()
	} else {
		view.customX.Disable()
		view.customY.Disable()
	}
	if settings.RepeatOption == model.RepeatForTime {
		view.duration.Enable()
	} else {
		view.duration.Disable()
	}
}

func (view *Window) applyRunning() {
	if view.toggleButton == nil {
		return
	}
	if view.running {
		view.toggleButton.SetText(view.translator.T("stop"))
		view.toggleButton.Importance = widget.DangerImportance
	} else {
		view.toggleButton.SetText(view.translator.T("start"))
		view.toggleButton.Importance = widget.HighImportance
	}
	view.toggleButton.Refresh()
	view.statusLabel.SetText(view.status)
}

// emit reads the form and reports it. Language and theme have their own
// callbacks.
func (view *Window) emit() {
	if view.updating {
		return
	}
	settings := view.readForm()
	view.settings = settings

	view.applyEnabled(settings)

	if view.callbacks.OnSettingsChange != nil {
		view.callbacks.OnSettingsChange(settings)
	}
}

func (view *Window) readForm() model.Settings {
	settings := view.settings
	settings.IntervalMillis = model.CombineInterval(parseCount(view.hours.Text), parseCount(view.minutes.Text),
		parseCount(view.seconds.Text), parseCount(view.millis.Text))

	if index := view.button.SelectedIndex(); index >= 0 {
		settings.Button = buttonOptions[index].value
	}
	if index := view.clickType.SelectedIndex(); index >= 0 {
		settings.ClickType = clickOptions[index].value
	}
	if index := labelIndex(view.position.Options, view.position.Selected); index >= 0 {
		settings.Mode = positionOptions[index].value
	}
	settings.CustomX = parseCoordinate(view.customX.Text, settings.CustomX)
	settings.CustomY = parseCoordinate(view.customY.Text, settings.CustomY)
	if index := labelIndex(view.repeat.Options, view.repeat.Selected); index >= 0 {
		settings.RepeatOption = repeatOptions[index].value
	}
	settings.RepeatDurationSeconds = parseDuration(view.duration.Text)
	return settings
}

func (view *Window) startCapture() {
	view.capturing = true
	view.capture.reset()
	view.hotkeyLabel.SetText(view.translator.T("hotkey_press"))
	// Canvas key handlers only fire while no widget has focus.
	view.window.Canvas().Unfocus()
}

func (view *Window) handleKeyDown(event *fyne.KeyEvent) {
	if !view.capturing {
		return
	}
	if event.Name == fyne.KeyEscape {
		view.capturing = false
		view.hotkeyLabel.SetText(view.settings.Hotkey)
		return
	}
	accelerator, ok := view.capture.keyDown(event.Name)
	if !ok {
		return
	}
	view.capturing = false
	view.hotkeyLabel.SetText(accelerator)
	if view.callbacks.OnHotkey != nil {
		view.callbacks.OnHotkey(accelerator)
	}
}

func (view *Window) handleKeyUp(event *fyne.KeyEvent) {
	if view.capturing {
		view.capture.keyUp(event.Name)
	}
}
