package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"xbox11/internal/host"
	"xbox11/internal/logger"
)

// Manager owns the main window: its content, its menu and the view's
// lifetime.
type Manager struct {
	window     fyne.Window
	view       *MainView
	logger     logger.Logger
	summary    string
	isShutdown bool
}

// NewManager fills the window registered under label with the main view.
func NewManager(a *host.App, label, summary string) (*Manager, error) {
	window, err := a.Window(label)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		window:  window,
		view:    NewMainView(a),
		logger:  a.Logger(),
		summary: summary,
	}

	manager.view.Bind(window)
	window.SetContent(manager.view.GetContainer())
	manager.setupMenu()

	manager.logger.Info("GUIManager", "main view attached", map[string]interface{}{
		"window_title": window.Title(),
	})
	return manager, nil
}

func (m *Manager) setupMenu() {
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", m.ShowAbout),
	)
	m.window.SetMainMenu(fyne.NewMainMenu(helpMenu))
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) GetView() *MainView {
	return m.view
}

func (m *Manager) ShowAbout() {
	nameLabel := widget.NewLabel(m.window.Title())
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	nameLabel.Alignment = fyne.TextAlignCenter

	versionLabel := widget.NewLabel("Version " + m.summary)
	versionLabel.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		widget.NewSeparator(),
		nameLabel,
		versionLabel,
		widget.NewSeparator(),
	)

	dialog.NewCustom("About", "Close", content, m.window).Show()
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.view.Shutdown()
	m.logger.Info("GUIManager", "shutdown completed", nil)
}
