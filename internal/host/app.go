package host

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"xbox11/internal/command"
	"xbox11/internal/logger"
)

// App is the running host instance. It owns the fyne application, the frozen
// command table, the windows and the plugin set.
type App struct {
	mu       sync.Mutex
	fyne     fyne.App
	log      logger.Logger
	session  string
	stage    Stage
	commands *command.Table
	events   *bus
	plugins  []string
	windows  map[string]fyne.Window
	order    []string
	started  []func()
	stopped  []func()
	shutdown []func()
}

func newApp(fyneApp fyne.App, log logger.Logger) *App {
	session := uuid.NewString()
	return &App{
		fyne:     fyneApp,
		log:      log.With(map[string]interface{}{"session": session}),
		session:  session,
		stage:    LoggingReady,
		commands: command.NewTable(),
		events:   newBus(),
		windows:  make(map[string]fyne.Window),
	}
}

func (a *App) Fyne() fyne.App {
	return a.fyne
}

func (a *App) Logger() logger.Logger {
	return a.log
}

func (a *App) SessionID() string {
	return a.session
}

func (a *App) Commands() []string {
	return a.commands.Names()
}

func (a *App) Stage() Stage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stage
}

// Plugins returns plugin names in attach order.
func (a *App) Plugins() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.plugins)
}

func (a *App) advance(next Stage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.stage.canAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, a.stage, next)
	}
	a.log.Debug("Host", "stage transition", map[string]interface{}{
		"from": a.stage.String(),
		"to":   next.String(),
	})
	a.stage = next
	return nil
}

func (a *App) attach(p Plugin) error {
	name := p.Name()
	if slices.Contains(a.Plugins(), name) {
		return fmt.Errorf("%w: %s: already attached", ErrPluginInit, name)
	}

	h := &pluginHost{
		app:  a,
		name: name,
		log:  a.log.With(map[string]interface{}{"plugin": name}),
	}
	if err := p.Init(h); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPluginInit, name, err)
	}

	a.mu.Lock()
	a.plugins = append(a.plugins, name)
	a.mu.Unlock()

	a.log.Info("Host", "plugin attached", map[string]interface{}{"plugin": name})
	return nil
}

// abort logs a fatal bootstrap error, releases what was acquired so far and
// moves the App to Terminated.
func (a *App) abort(err error) error {
	a.log.Error("Host", err, map[string]interface{}{"stage": a.Stage().String()})
	a.terminate()
	return err
}

// Invoke calls a command. It only works once the table is frozen and until
// the host terminates.
func (a *App) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	if stage := a.Stage(); stage < CommandsRegistered || stage > Running {
		return nil, fmt.Errorf("%w: host is %s", ErrNotInvokable, stage)
	}
	result, err := a.commands.Invoke(ctx, name, args)
	if err != nil {
		a.log.Warning("Host", "command failed", map[string]interface{}{
			"command": name,
			"error":   err.Error(),
		})
		return nil, err
	}
	a.log.Debug("Host", "command invoked", map[string]interface{}{"command": name})
	return result, nil
}

func (a *App) Emit(event string, payload any) {
	a.events.Emit(event, payload)
}

func (a *App) Listen(event string, fn Listener) func() {
	return a.events.Listen(event, fn)
}

// OnShutdown registers fn to run when the host terminates. Hooks run in
// reverse registration order.
func (a *App) OnShutdown(fn func()) {
	a.mu.Lock()
	a.shutdown = append(a.shutdown, fn)
	a.mu.Unlock()
}

// Window returns the window registered under label.
func (a *App) Window(label string) (fyne.Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok := a.windows[label]
	if !ok {
		return nil, fmt.Errorf("%w: no window labelled %q", ErrWindowLookup, label)
	}
	return w, nil
}

// NewWindow creates a window and registers it under label. Windows are shown
// when the event loop starts.
func (a *App) NewWindow(label, title string) (fyne.Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.windows[label]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWindow, label)
	}
	w := a.fyne.NewWindow(title)
	a.windows[label] = w
	a.order = append(a.order, label)
	return w, nil
}

func (a *App) createWindow(cfg WindowConfig) (fyne.Window, error) {
	w, err := a.NewWindow(cfg.Label, cfg.Title)
	if err != nil {
		return nil, err
	}

	if cfg.Width > 0 && cfg.Height > 0 {
		w.Resize(fyne.NewSize(cfg.Width, cfg.Height))
	}
	if cfg.Master {
		w.SetMaster()
	}
	if cfg.Content != nil {
		w.SetContent(cfg.Content(a))
	}

	a.log.Info("Host", "window created", map[string]interface{}{
		"label":  cfg.Label,
		"title":  cfg.Title,
		"master": cfg.Master,
	})
	return w, nil
}

// Run enters the event loop and blocks until it exits. SIGINT, SIGTERM or
// cancelling ctx quits the loop. A panic escaping the loop is reported as
// ErrEventLoop.
func (a *App) Run(ctx context.Context) (err error) {
	if err := a.advance(Running); err != nil {
		return a.abort(err)
	}
	a.fyne.Lifecycle().SetOnStarted(a.runStarted)
	a.fyne.Lifecycle().SetOnStopped(a.runStopped)

	done := make(chan struct{})
	a.watchQuit(ctx, done)

	defer func() {
		close(done)
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrEventLoop, r)
			a.log.Error("Host", err, nil)
		}
		a.terminate()
	}()

	a.showWindows()
	a.log.Info("Host", "event loop starting", nil)
	a.fyne.Run()
	return nil
}

func (a *App) runStarted() {
	a.mu.Lock()
	hooks := slices.Clone(a.started)
	a.mu.Unlock()

	a.log.Info("Host", "event loop started", map[string]interface{}{"hooks": len(hooks)})
	for _, fn := range hooks {
		fn()
	}
}

// runStopped runs the stopped hooks in reverse registration order.
func (a *App) runStopped() {
	a.mu.Lock()
	hooks := slices.Clone(a.stopped)
	a.stopped = nil
	a.mu.Unlock()

	a.log.Info("Host", "event loop stopped", map[string]interface{}{"hooks": len(hooks)})
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

func (a *App) showWindows() {
	a.mu.Lock()
	windows := make([]fyne.Window, 0, len(a.order))
	for _, label := range a.order {
		windows = append(windows, a.windows[label])
	}
	a.mu.Unlock()

	for _, w := range windows {
		w.Show()
	}
}

func (a *App) watchQuit(ctx context.Context, done <-chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			a.log.Info("Host", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
		case <-ctx.Done():
			a.log.Info("Host", "context cancelled", nil)
		case <-done:
			return
		}
		fyne.Do(a.fyne.Quit)
	}()
}

// terminate runs shutdown hooks in reverse order, once.
func (a *App) terminate() {
	a.mu.Lock()
	if a.stage == Terminated {
		a.mu.Unlock()
		return
	}
	a.stage = Terminated
	hooks := a.shutdown
	a.shutdown = nil
	a.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	a.log.Info("Host", "terminated", map[string]interface{}{"shutdown_hooks": len(hooks)})
}
