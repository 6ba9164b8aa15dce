package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle func()
	OnShow   func()
	OnQuit   func()
}

// Labels holds the translated menu texts.
type Labels struct {
	Title   string
	Running string
	Stopped string
	Start   string
	Stop    string
	Show    string
	Quit    string
}

// Icons are swapped when clicking starts or stops.
type Icons struct {
	Idle   fyne.Resource
	Active fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	labels     Labels
	icons      Icons
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, labels Labels, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		labels:    labels,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.showItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	// fyne adds its own Quit entry only when no item is marked as quit.
	manager.quitItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.applyLabels()
	manager.refreshMenu()
	return manager
}

// SetRunning updates the status line, the toggle label and the icon.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.applyLabels()
	manager.refreshMenu()
}

// SetLabels replaces the menu texts after a language change.
func (manager *Manager) SetLabels(labels Labels) {
	manager.labels = labels
	manager.applyLabels()
	manager.refreshMenu()
}

func (manager *Manager) applyLabels() {
	if manager.running {
		manager.statusItem.Label = manager.labels.Running
		manager.toggleItem.Label = manager.labels.Stop
	} else {
		manager.statusItem.Label = manager.labels.Stopped
		manager.toggleItem.Label = manager.labels.Start
	}
	manager.showItem.Label = manager.labels.Show
	manager.quitItem.Label = manager.labels.Quit
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.labels.Title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.showItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	))

	icon := manager.icons.Idle
	if manager.running && manager.icons.Active != nil {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}
