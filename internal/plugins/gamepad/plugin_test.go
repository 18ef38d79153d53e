package gamepad

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbox11/internal/config"
	"xbox11/internal/host"
	"xbox11/internal/logger"
)

// scriptedSource replays frames and then keeps returning the last one.
type scriptedSource struct {
	mu     sync.Mutex
	frames [][]Raw
	err    error
	polls  int
}

func (s *scriptedSource) Poll() ([]Raw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.frames) == 0 {
		return nil, nil
	}
	frame := s.frames[0]
	if len(s.frames) > 1 {
		s.frames = s.frames[1:]
	}
	return frame, nil
}

func (s *scriptedSource) pollCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

func build(t *testing.T, p *Plugin) *host.App {
	t.Helper()
	a, err := host.NewBuilder(test.NewTempApp(t), logger.Nop()).Plugin(p).Build()
	require.NoError(t, err)
	return a
}

func TestInit_RequiresSource(t *testing.T) {
	_, err := host.NewBuilder(test.NewTempApp(t), logger.Nop()).
		Plugin(New(nil, config.Default().Gamepad)).
		Build()
	assert.ErrorIs(t, err, host.ErrPluginInit)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestPoll_EmitsEventsAndServesCommands(t *testing.T) {
	src := &scriptedSource{frames: [][]Raw{
		{pad(0, "Xbox Controller")},
		{pad(0, "Xbox Controller", ButtonA)},
		nil,
	}}
	p := New(src, config.Default().Gamepad)
	a := build(t, p)

	var connected, disconnected []Pad
	var acts []ActionEvent
	a.Listen(EventConnected, func(v any) { connected = append(connected, v.(Pad)) })
	a.Listen(EventDisconnected, func(v any) { disconnected = append(disconnected, v.(Pad)) })
	a.Listen(EventAction, func(v any) { acts = append(acts, v.(ActionEvent)) })

	p.Poll()
	p.Poll()

	require.Len(t, connected, 1)
	assert.Equal(t, KindXbox, connected[0].Kind)
	assert.Equal(t, []ActionEvent{{Pad: 0, Action: ActionSelect}}, acts)

	got, err := a.Invoke(context.Background(), host.PluginCommand(Name, "active"), nil)
	require.NoError(t, err)
	require.IsType(t, &Pad{}, got)
	assert.Equal(t, "Xbox Controller", got.(*Pad).Name)

	p.Poll()
	require.Len(t, disconnected, 1)

	got, err = a.Invoke(context.Background(), "plugin:gamepad|active", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = a.Invoke(context.Background(), "plugin:gamepad|list", nil)
	require.NoError(t, err)
	pads := got.([]Pad)
	require.Len(t, pads, 1)
	assert.False(t, pads[0].Connected)
}

func TestPoll_SourceErrorKeepsState(t *testing.T) {
	src := &scriptedSource{frames: [][]Raw{{pad(0, "pad")}}}
	p := New(src, config.Default().Gamepad)
	a := build(t, p)

	var disconnected int
	a.Listen(EventDisconnected, func(any) { disconnected++ })

	p.Poll()
	src.mu.Lock()
	src.err = errors.New("device busy")
	src.mu.Unlock()
	p.Poll()
	p.Poll()

	assert.Zero(t, disconnected)
	got, err := a.Invoke(context.Background(), "plugin:gamepad|active", nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStartStop(t *testing.T) {
	src := &scriptedSource{}
	cfg := config.Default().Gamepad
	cfg.PollInterval = time.Millisecond
	p := New(src, cfg)
	build(t, p)

	p.Start()
	p.Start()
	assert.Eventually(t, func() bool { return src.pollCount() >= 3 }, time.Second, time.Millisecond)

	p.Stop()
	after := src.pollCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, src.pollCount(), "no polls after Stop")
	p.Stop()
}

func TestShutdownStopsPolling(t *testing.T) {
	src := &scriptedSource{}
	cfg := config.Default().Gamepad
	cfg.PollInterval = time.Millisecond
	p := New(src, cfg)
	a := build(t, p)

	p.Start()
	assert.Eventually(t, func() bool { return src.pollCount() >= 1 }, time.Second, time.Millisecond)

	require.NoError(t, a.Run(context.Background()))
	after := src.pollCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, src.pollCount())
}

func TestNew_NonPositiveConfigFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{name: "ZeroThreshold_ShouldUseDefault", threshold: 0},
		{name: "NegativeThreshold_ShouldUseDefault", threshold: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&scriptedSource{}, config.Gamepad{AxisThreshold: tt.threshold})

			assert.Equal(t, config.Default().Gamepad.PollInterval, p.interval)
			assert.Equal(t, config.Default().Gamepad.AxisThreshold, p.tracker.threshold)

			changes := p.tracker.Update([]Raw{withStick(pad(0, "pad"), 0.1, 0)})
			assert.Empty(t, changes.Actions, "stick drift is below the default threshold")
		})
	}
}

// closingSource records Close and refuses polls afterwards.
type closingSource struct {
	scriptedSource
	closed bool
}

func (s *closingSource) Poll() ([]Raw, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errors.New("polled after close")
	}
	return s.scriptedSource.Poll()
}

func (s *closingSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestHalt_StopsLoopAndClosesSource(t *testing.T) {
	src := &closingSource{}
	cfg := config.Default().Gamepad
	cfg.PollInterval = time.Millisecond
	p := New(src, cfg)
	build(t, p)

	p.Start()
	assert.Eventually(t, func() bool { return src.pollCount() >= 1 }, time.Second, time.Millisecond)

	p.Halt()
	src.mu.Lock()
	assert.True(t, src.closed)
	src.mu.Unlock()

	p.Stop()
	after := src.pollCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, src.pollCount())
	p.Halt()
}

// stuckSource blocks its first poll until released.
type stuckSource struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stuckSource) Poll() ([]Raw, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return nil, nil
}

func TestStop_BoundedWhenPollNeverReturns(t *testing.T) {
	src := &stuckSource{entered: make(chan struct{}), release: make(chan struct{})}
	t.Cleanup(func() { close(src.release) })

	cfg := config.Default().Gamepad
	cfg.PollInterval = time.Millisecond
	p := New(src, cfg)
	p.stopTimeout = 20 * time.Millisecond
	build(t, p)

	p.Start()
	<-src.entered

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a stuck poll")
	}
}
