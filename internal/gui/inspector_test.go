package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	a := buildApp(t, greetCommand())
	target := test.NewWindow(widget.NewLabel("main content"))
	target.SetTitle("xbox11")
	t.Cleanup(target.Close)
	return NewInspector(a, target, "1.0.0 debug")
}

func TestInspector_InvokeSelected(t *testing.T) {
	i := newTestInspector(t)

	i.InvokeSelected()
	assert.Equal(t, "Select a command first", i.result.Text)

	i.commandSelect.SetSelected("greet")
	test.Type(i.argsEntry, `{"name": "World"}`)
	test.Tap(i.invokeButton)
	assert.Equal(t, `"Hello, World!"`, i.result.Text)

	i.argsEntry.SetText(`{"name": `)
	i.InvokeSelected()
	assert.Equal(t, "Arguments are not valid JSON", i.result.Text)
}

func TestInspector_ListsCommands(t *testing.T) {
	i := newTestInspector(t)
	assert.Equal(t, []string{"greet"}, i.commandSelect.Options)
}

func TestInspector_RefreshTree(t *testing.T) {
	i := newTestInspector(t)

	i.RefreshTree()
	require.NotEmpty(t, i.tree.Text)
	assert.Contains(t, i.tree.Text, "*widget.Label")
	assert.Contains(t, i.tree.Text, `text="main content"`)
}
