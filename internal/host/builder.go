package host

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"

	"xbox11/internal/command"
	"xbox11/internal/logger"
)

// SetupFunc runs once windows exist and before the event loop starts.
type SetupFunc func(a *App) error

// WindowConfig declares a window the host creates at build time.
type WindowConfig struct {
	Label   string
	Title   string
	Width   float32
	Height  float32
	Master  bool
	Content func(a *App) fyne.CanvasObject
}

// Builder accumulates plugins, commands, windows and setup hooks. It is
// consumed by the first Build; its fields move into the returned App.
type Builder struct {
	fyne     fyne.App
	log      logger.Logger
	plugins  []Plugin
	commands []command.Entry
	windows  []WindowConfig
	setups   []SetupFunc
	consumed bool
}

// NewBuilder starts a bootstrap for fyneApp. log must already be initialized;
// without it Build fails before anything else runs.
func NewBuilder(fyneApp fyne.App, log logger.Logger) *Builder {
	return &Builder{fyne: fyneApp, log: log}
}

func (b *Builder) Plugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

func (b *Builder) Plugins(ps ...Plugin) *Builder {
	b.plugins = append(b.plugins, ps...)
	return b
}

func (b *Builder) Commands(entries ...command.Entry) *Builder {
	b.commands = append(b.commands, entries...)
	return b
}

func (b *Builder) Window(cfg WindowConfig) *Builder {
	b.windows = append(b.windows, cfg)
	return b
}

func (b *Builder) Setup(fn SetupFunc) *Builder {
	b.setups = append(b.setups, fn)
	return b
}

// Build runs the bootstrap up to CommandsRegistered: plugins in attach
// order, then the command table, then windows and setup hooks. On failure no
// App is returned, so no command is ever invokable.
func (b *Builder) Build() (*App, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if b.log == nil {
		return nil, fmt.Errorf("%w: builder has no logger", logger.ErrInit)
	}
	if b.fyne == nil {
		return nil, errors.New("host: builder has no application")
	}

	a := newApp(b.fyne, b.log)
	a.log.Info("Host", "bootstrap started", map[string]interface{}{
		"plugins":  len(b.plugins),
		"commands": len(b.commands),
		"windows":  len(b.windows),
	})

	for _, p := range b.plugins {
		if err := a.attach(p); err != nil {
			return nil, a.abort(err)
		}
	}
	if err := a.advance(PluginsAttached); err != nil {
		return nil, a.abort(err)
	}

	if err := a.commands.RegisterAll(b.commands...); err != nil {
		return nil, a.abort(fmt.Errorf("register commands: %w", err))
	}
	a.commands.Freeze()
	if err := a.advance(CommandsRegistered); err != nil {
		return nil, a.abort(err)
	}

	for _, cfg := range b.windows {
		if _, err := a.createWindow(cfg); err != nil {
			return nil, a.abort(err)
		}
	}

	for i, fn := range b.setups {
		if err := fn(a); err != nil {
			return nil, a.abort(fmt.Errorf("setup hook %d: %w", i, err))
		}
	}

	a.log.Info("Host", "bootstrap complete", map[string]interface{}{
		"plugins":  a.Plugins(),
		"commands": a.Commands(),
	})
	return a, nil
}

// Run builds the App and enters its event loop.
func (b *Builder) Run(ctx context.Context) error {
	a, err := b.Build()
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
