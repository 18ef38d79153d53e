package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"xbox11/internal/command"
	"xbox11/internal/host"
	"xbox11/internal/plugins/gamepad"
)

const notificationTimeout = 2 * time.Second

// MainView is the main window's front-end. It calls into the shell only
// through the command table and reacts to gamepad events.
type MainView struct {
	app    *host.App
	window fyne.Window

	nameEntry    *widget.Entry
	greetButton  *widget.Button
	greetMsg     *widget.Label
	notification *widget.Label
	padStatus    *widget.Label
	container    *fyne.Container

	// do runs UI mutations on the fyne thread.
	do         func(func())
	clearAfter time.Duration

	mu       sync.Mutex
	clear    *time.Timer
	unlisten []func()
}

func NewMainView(a *host.App) *MainView {
	view := &MainView{
		app:        a,
		do:         fyne.Do,
		clearAfter: notificationTimeout,
	}

	view.setupComponents()
	view.setupLayout()
	view.setupEventHandlers()

	return view
}

func (v *MainView) setupComponents() {
	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder("Enter a name...")
	v.nameEntry.OnSubmitted = func(string) { v.Greet() }

	v.greetButton = widget.NewButton("Greet", v.Greet)
	v.greetButton.Importance = widget.HighImportance

	v.greetMsg = widget.NewLabel("")
	v.notification = widget.NewLabel("")
	v.padStatus = widget.NewLabel("No controller connected")
}

func (v *MainView) setupLayout() {
	title := widget.NewLabelWithStyle("Welcome to xbox11", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	form := container.NewBorder(nil, nil, nil, v.greetButton, v.nameEntry)

	v.container = container.NewBorder(
		container.NewVBox(title, form, v.greetMsg),
		container.NewHBox(v.padStatus, v.notification),
		nil, nil,
	)
}

func (v *MainView) setupEventHandlers() {
	v.unlisten = append(v.unlisten,
		v.app.Listen(gamepad.EventConnected, func(p any) {
			if pad, ok := p.(gamepad.Pad); ok {
				v.do(func() {
					v.padStatus.SetText(fmt.Sprintf("Controller: %s (%s)", pad.Name, pad.Kind))
				})
			}
		}),
		v.app.Listen(gamepad.EventDisconnected, func(any) {
			v.do(func() { v.padStatus.SetText("No controller connected") })
		}),
		v.app.Listen(gamepad.EventAction, func(p any) {
			if ev, ok := p.(gamepad.ActionEvent); ok {
				v.do(func() { v.HandleAction(ev.Action) })
			}
		}),
	)
}

// Bind attaches the view to the window hosting it, enabling focus navigation.
func (v *MainView) Bind(w fyne.Window) {
	v.window = w
}

func (v *MainView) GetContainer() *fyne.Container {
	return v.container
}

// Greet invokes the greet command with the entered name.
func (v *MainView) Greet() {
	result, err := v.app.Invoke(context.Background(), "greet",
		command.Args(map[string]string{"name": v.nameEntry.Text}))
	if err != nil {
		v.greetMsg.SetText("Error: " + err.Error())
		return
	}
	v.greetMsg.SetText(fmt.Sprint(result))
}

// HandleAction applies a navigation action. It must run on the fyne thread.
func (v *MainView) HandleAction(action gamepad.Action) {
	switch action {
	case gamepad.ActionUp, gamepad.ActionLeft:
		v.moveFocus(false)
	case gamepad.ActionDown, gamepad.ActionRight:
		v.moveFocus(true)
	case gamepad.ActionSelect:
		v.Notify("Selected: " + v.activateFocused())
	case gamepad.ActionBack:
		v.Notify("Back pressed")
	case gamepad.ActionMenu:
		v.Notify("Menu button pressed")
	case gamepad.ActionOption:
		v.Notify("Options button pressed")
	}
}

func (v *MainView) moveFocus(forward bool) {
	if v.window == nil {
		return
	}
	if forward {
		v.window.Canvas().FocusNext()
	} else {
		v.window.Canvas().FocusPrevious()
	}
}

func (v *MainView) activateFocused() string {
	if v.window == nil {
		return "nothing"
	}

	switch focused := v.window.Canvas().Focused().(type) {
	case *widget.Button:
		if focused.OnTapped != nil {
			focused.OnTapped()
		}
		return focused.Text
	case *widget.Entry:
		return "name"
	default:
		return "nothing"
	}
}

// Notify shows msg in the status line and clears it after a short delay.
func (v *MainView) Notify(msg string) {
	v.notification.SetText(msg)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.clear != nil {
		v.clear.Stop()
	}
	v.clear = time.AfterFunc(v.clearAfter, func() {
		v.do(func() {
			if v.notification.Text == msg {
				v.notification.SetText("")
			}
		})
	})
}

func (v *MainView) Shutdown() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.clear != nil {
		v.clear.Stop()
		v.clear = nil
	}
	for _, stop := range v.unlisten {
		stop()
	}
	v.unlisten = nil
}
