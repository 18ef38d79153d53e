// Package glfwsource reads gamepads through GLFW, the windowing layer under
// fyne's desktop driver. Only joysticks GLFW can map to the standard gamepad
// layout are reported.
package glfwsource

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"xbox11/internal/plugins/gamepad"
)

type Source struct {
	closed atomic.Bool
}

func New() *Source {
	return &Source{}
}

// Poll must only be called once the fyne event loop is running, since GLFW
// is initialized by the driver and has to be queried on the main thread.
// After Close it reports no pads without touching GLFW.
func (s *Source) Poll() ([]gamepad.Raw, error) {
	if s.closed.Load() {
		return nil, nil
	}
	var pads []gamepad.Raw
	fyne.DoAndWait(func() {
		if s.closed.Load() {
			return
		}
		pads = read()
	})
	return pads, nil
}

// Close stops further GLFW access. Called on the fyne thread, it orders
// before any queued read.
func (s *Source) Close() error {
	s.closed.Store(true)
	return nil
}

func read() []gamepad.Raw {
	var pads []gamepad.Raw
	for j := glfw.Joystick1; j <= glfw.JoystickLast; j++ {
		if !j.Present() || !j.IsGamepad() {
			continue
		}
		state := j.GetGamepadState()
		if state == nil {
			continue
		}
		pads = append(pads, convert(int(j-glfw.Joystick1), j.GetGamepadName(), state))
	}
	return pads
}

func convert(index int, name string, state *glfw.GamepadState) gamepad.Raw {
	raw := gamepad.Raw{
		Index:   index,
		Name:    name,
		Buttons: make([]bool, len(state.Buttons)),
		Axes:    make([]float64, len(state.Axes)),
	}
	for i, b := range state.Buttons {
		raw.Buttons[i] = b == glfw.Press
	}
	for i, a := range state.Axes {
		raw.Axes[i] = float64(a)
	}
	return raw
}
