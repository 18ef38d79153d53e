package app

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"xbox11/internal/buildinfo"
	"xbox11/internal/config"
	"xbox11/internal/gui"
	"xbox11/internal/host"
	"xbox11/internal/logger"
	"xbox11/internal/plugins/gamepad"
	"xbox11/internal/plugins/gamepad/glfwsource"
	"xbox11/internal/plugins/opener"
)

const (
	AppName = "xbox11"
	AppID   = "com.xbox11.shell"

	MainWindow      = "main"
	InspectorWindow = "inspector"
)

// Options selects build-dependent parts of the shell.
type Options struct {
	Debug   bool
	Gamepad gamepad.Source
}

// Run boots the shell and blocks until the main window closes. Every
// failure is returned; the caller decides how to exit.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := ConfigureWebview(cfg.Webview); err != nil {
		return err
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":    buildinfo.Summary(),
		"log_dir":    cfg.Log.Dir,
		"log_level":  cfg.Log.Level,
		"debug":      buildinfo.Debug,
		"remote_dbg": cfg.Webview.RemoteDebugging,
	})

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: buildinfo.Version,
		Build:   1,
	})
	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(gui.NewConsoleTheme())

	builder := Assemble(fyneApp, log, cfg, Options{
		Debug:   buildinfo.Debug,
		Gamepad: glfwsource.New(),
	})
	if err := builder.Run(ctx); err != nil {
		log.Error("Application", err, nil)
		return err
	}

	log.Info("Application", "main window closed", nil)
	return nil
}

// Assemble wires plugins, commands and windows into a builder. Plugins are
// attached before the command table is registered.
func Assemble(fyneApp fyne.App, log logger.Logger, cfg config.Config, opts Options) *host.Builder {
	b := host.NewBuilder(fyneApp, log).
		Plugin(opener.New()).
		Plugin(gamepad.New(opts.Gamepad, cfg.Gamepad)).
		Commands(Commands()...).
		Window(host.WindowConfig{
			Label:  MainWindow,
			Title:  AppName,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Master: true,
		}).
		Setup(func(a *host.App) error {
			mgr, err := gui.NewManager(a, MainWindow, buildinfo.Summary())
			if err != nil {
				return err
			}
			a.OnShutdown(mgr.Shutdown)
			return nil
		})

	if opts.Debug {
		b = EnableDebugSurface(b)
	}
	return b
}

// EnableDebugSurface opens the inspection panel attached to the main window
// once it exists. A missing main window fails the build.
func EnableDebugSurface(b *host.Builder) *host.Builder {
	return b.Setup(func(a *host.App) error {
		target, err := a.Window(MainWindow)
		if err != nil {
			return fmt.Errorf("inspection panel: %w", err)
		}

		w, err := a.NewWindow(InspectorWindow, "Inspector - "+target.Title())
		if err != nil {
			return fmt.Errorf("inspection panel: %w", err)
		}
		inspector := gui.NewInspector(a, target, buildinfo.Summary())
		w.SetContent(inspector.GetContainer())
		w.Resize(fyne.NewSize(640, 480))

		a.Logger().Info("Application", "inspection panel opened", map[string]interface{}{
			"window": target.Title(),
		})
		return nil
	})
}
