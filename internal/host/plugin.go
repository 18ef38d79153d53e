package host

import (
	"fmt"

	"fyne.io/fyne/v2"

	"xbox11/internal/command"
	"xbox11/internal/logger"
)

// Plugin is a capability module composed into the host at build time.
// Plugins are initialized in attach order; the first failure aborts startup.
type Plugin interface {
	Name() string
	Init(h Host) error
}

// Host is the view of the application a plugin gets during Init.
type Host interface {
	App() fyne.App
	Logger() logger.Logger
	// Register adds a command named "plugin:<plugin>|<name>".
	Register(name string, h command.Handler) error
	Emit(event string, payload any)
	Listen(event string, fn Listener) (unlisten func())
	// OnStarted runs once the event loop is up.
	OnStarted(fn func())
	// OnStopped runs on the fyne thread as the event loop stops, before the
	// driver releases its resources.
	OnStopped(fn func())
	// OnShutdown runs when the host terminates, in reverse registration order.
	OnShutdown(fn func())
}

// PluginCommand returns the table key of a plugin command.
func PluginCommand(plugin, name string) string {
	return fmt.Sprintf("plugin:%s|%s", plugin, name)
}

type pluginHost struct {
	app  *App
	name string
	log  logger.Logger
}

func (h *pluginHost) App() fyne.App {
	return h.app.fyne
}

func (h *pluginHost) Logger() logger.Logger {
	return h.log
}

func (h *pluginHost) Register(name string, handler command.Handler) error {
	return h.app.commands.Register(PluginCommand(h.name, name), handler)
}

func (h *pluginHost) Emit(event string, payload any) {
	h.app.Emit(event, payload)
}

func (h *pluginHost) Listen(event string, fn Listener) func() {
	return h.app.Listen(event, fn)
}

func (h *pluginHost) OnStarted(fn func()) {
	h.app.mu.Lock()
	h.app.started = append(h.app.started, fn)
	h.app.mu.Unlock()
}

func (h *pluginHost) OnStopped(fn func()) {
	h.app.mu.Lock()
	h.app.stopped = append(h.app.stopped, fn)
	h.app.mu.Unlock()
}

func (h *pluginHost) OnShutdown(fn func()) {
	h.app.OnShutdown(fn)
}
