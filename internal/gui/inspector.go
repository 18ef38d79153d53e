package gui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"xbox11/internal/host"
)

// Inspector is the developer panel opened next to the main window in debug
// builds. It lists what the host assembled and can invoke any command.
type Inspector struct {
	app     *host.App
	target  fyne.Window
	summary string

	commandSelect *widget.Select
	argsEntry     *widget.Entry
	invokeButton  *widget.Button
	result        *widget.Label
	tree          *widget.Entry
	container     *fyne.Container
}

func NewInspector(a *host.App, target fyne.Window, summary string) *Inspector {
	inspector := &Inspector{
		app:     a,
		target:  target,
		summary: summary,
	}

	inspector.setupComponents()
	inspector.setupLayout()

	return inspector
}

func (i *Inspector) setupComponents() {
	i.commandSelect = widget.NewSelect(i.app.Commands(), nil)
	i.commandSelect.PlaceHolder = "Command"

	i.argsEntry = widget.NewEntry()
	i.argsEntry.SetPlaceHolder(`{"name": "World"}`)

	i.invokeButton = widget.NewButton("Invoke", i.InvokeSelected)
	i.result = widget.NewLabel("")
	i.result.Wrapping = fyne.TextWrapWord

	i.tree = widget.NewMultiLineEntry()
	i.tree.Disable()
}

func (i *Inspector) setupLayout() {
	info := widget.NewForm(
		widget.NewFormItem("Build", widget.NewLabel(i.summary)),
		widget.NewFormItem("Session", widget.NewLabel(i.app.SessionID())),
		widget.NewFormItem("Window", widget.NewLabel(i.target.Title())),
		widget.NewFormItem("Plugins", widget.NewLabel(strings.Join(i.app.Plugins(), ", "))),
		widget.NewFormItem("Commands", widget.NewLabel(strings.Join(i.app.Commands(), "\n"))),
	)

	console := container.NewBorder(nil, nil, i.commandSelect, i.invokeButton, i.argsEntry)
	refresh := widget.NewButton("Refresh widget tree", i.RefreshTree)

	i.container = container.NewBorder(
		container.NewVBox(info, widget.NewSeparator(), console, i.result, refresh),
		nil, nil, nil,
		i.tree,
	)
}

func (i *Inspector) GetContainer() *fyne.Container {
	return i.container
}

// InvokeSelected calls the selected command with the JSON in the args entry
// and shows the JSON-encoded result.
func (i *Inspector) InvokeSelected() {
	name := i.commandSelect.Selected
	if name == "" {
		i.result.SetText("Select a command first")
		return
	}

	var args json.RawMessage
	if text := strings.TrimSpace(i.argsEntry.Text); text != "" {
		if !json.Valid([]byte(text)) {
			i.result.SetText("Arguments are not valid JSON")
			return
		}
		args = json.RawMessage(text)
	}

	got, err := i.app.Invoke(context.Background(), name, args)
	if err != nil {
		i.result.SetText("Error: " + err.Error())
		return
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		i.result.SetText(fmt.Sprintf("%v", got))
		return
	}
	i.result.SetText(string(encoded))
}

// RefreshTree dumps the target window's widget tree into the panel and the log.
func (i *Inspector) RefreshTree() {
	lines := Hierarchy("content", i.target.Content())
	i.tree.SetText(strings.Join(lines, "\n"))

	i.app.Logger().Debug("Inspector", "widget tree", map[string]interface{}{
		"window":  i.target.Title(),
		"objects": len(lines),
	})
}
