// Package gamepad is the "read gamepad input" capability. It polls a Source,
// tracks pad state and emits connection and navigation events on the host.
package gamepad

import (
	"context"
	"errors"
	"sync"
	"time"

	"xbox11/internal/command"
	"xbox11/internal/config"
	"xbox11/internal/host"
)

const Name = "gamepad"

const (
	EventConnected    = "gamepad://connected"
	EventDisconnected = "gamepad://disconnected"
	EventAction       = "gamepad://action"
)

var ErrNoSource = errors.New("no gamepad source")

// stopTimeout bounds how long Stop waits for an in-flight poll.
const stopTimeout = 2 * time.Second

// closer is implemented by sources that hold driver resources.
type closer interface {
	Close() error
}

type Plugin struct {
	src         Source
	interval    time.Duration
	stopTimeout time.Duration

	mu       sync.Mutex
	tracker  *Tracker
	h        host.Host
	failing  bool
	halted   bool
	stop     chan struct{}
	finished chan struct{}
}

func New(src Source, cfg config.Gamepad) *Plugin {
	defaults := config.Default().Gamepad
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaults.PollInterval
	}
	threshold := cfg.AxisThreshold
	if threshold <= 0 {
		threshold = defaults.AxisThreshold
	}
	return &Plugin{
		src:         src,
		interval:    interval,
		stopTimeout: stopTimeout,
		tracker:     NewTracker(threshold),
	}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) Init(h host.Host) error {
	if p.src == nil {
		return ErrNoSource
	}
	p.h = h

	if err := h.Register("list", command.Typed(p.list)); err != nil {
		return err
	}
	if err := h.Register("active", command.Typed(p.active)); err != nil {
		return err
	}

	h.OnStarted(p.Start)
	h.OnStopped(p.Halt)
	h.OnShutdown(p.Stop)
	return nil
}

func (p *Plugin) list(context.Context, struct{}) ([]Pad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracker.Pads(), nil
}

func (p *Plugin) active(context.Context, struct{}) (*Pad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pad, ok := p.tracker.Active()
	if !ok {
		return nil, nil
	}
	return &pad, nil
}

// Start begins polling. Calling it while already polling has no effect.
func (p *Plugin) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		return
	}
	p.halted = false
	p.stop = make(chan struct{})
	p.finished = make(chan struct{})
	go p.loop(p.stop, p.finished)

	p.h.Logger().Info("Gamepad", "polling started", map[string]interface{}{
		"interval": p.interval.String(),
	})
}

// Halt tells the loop to exit and closes the source without waiting. It runs
// on the fyne thread while the driver is stopping, so it must not block on a
// poll that is itself waiting for that thread.
func (p *Plugin) Halt() {
	p.mu.Lock()
	if p.stop != nil && !p.halted {
		close(p.stop)
	}
	p.halted = true
	p.mu.Unlock()

	if c, ok := p.src.(closer); ok {
		if err := c.Close(); err != nil {
			p.h.Logger().Warning("Gamepad", "source close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// Stop ends polling and waits, up to a bound, for the loop to exit.
func (p *Plugin) Stop() {
	p.mu.Lock()
	stop, finished, halted := p.stop, p.finished, p.halted
	p.stop, p.finished = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return
	}
	if !halted {
		close(stop)
	}

	select {
	case <-finished:
		p.h.Logger().Info("Gamepad", "polling stopped", nil)
	case <-time.After(p.stopTimeout):
		p.h.Logger().Warning("Gamepad", "poll loop did not exit", map[string]interface{}{
			"timeout": p.stopTimeout.String(),
		})
	}
}

func (p *Plugin) loop(stop <-chan struct{}, finished chan<- struct{}) {
	defer close(finished)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			p.Poll()
		}
	}
}

// Poll reads the source once and emits whatever changed. A source error is
// logged once per failure streak and the previous state is kept.
func (p *Plugin) Poll() {
	raw, err := p.src.Poll()

	p.mu.Lock()
	if err != nil {
		first := !p.failing
		p.failing = true
		p.mu.Unlock()
		if first {
			p.h.Logger().Warning("Gamepad", "poll failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}
	p.failing = false
	changes := p.tracker.Update(raw)
	p.mu.Unlock()

	p.emit(changes)
}

func (p *Plugin) emit(c Changes) {
	log := p.h.Logger()
	for _, pad := range c.Connected {
		log.Info("Gamepad", "pad connected", map[string]interface{}{
			"index": pad.Index,
			"name":  pad.Name,
			"kind":  string(pad.Kind),
		})
		p.h.Emit(EventConnected, pad)
	}
	for _, pad := range c.Disconnected {
		log.Info("Gamepad", "pad disconnected", map[string]interface{}{"index": pad.Index})
		p.h.Emit(EventDisconnected, pad)
	}
	for _, a := range c.Actions {
		log.Debug("Gamepad", "action", map[string]interface{}{
			"pad":    a.Pad,
			"action": string(a.Action),
		})
		p.h.Emit(EventAction, a)
	}
}
