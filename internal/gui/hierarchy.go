package gui

import (
	"fmt"
	"reflect"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Hierarchy walks obj depth-first and describes one canvas object per line.
func Hierarchy(name string, obj fyne.CanvasObject) []string {
	var lines []string
	walkHierarchy(&lines, name, obj, 0)
	return lines
}

func walkHierarchy(lines *[]string, name string, obj fyne.CanvasObject, depth int) {
	if obj == nil {
		return
	}

	line := fmt.Sprintf("%s%s %s size=%s visible=%t",
		strings.Repeat("  ", depth),
		name,
		reflect.TypeOf(obj).String(),
		formatSize(obj.Size()),
		obj.Visible(),
	)
	if detail := describe(obj); detail != "" {
		line += " " + detail
	}
	*lines = append(*lines, line)

	if cont, ok := obj.(*fyne.Container); ok {
		for i, child := range cont.Objects {
			walkHierarchy(lines, fmt.Sprintf("%s[%d]", name, i), child, depth+1)
		}
	}
}

func describe(obj fyne.CanvasObject) string {
	switch v := obj.(type) {
	case *container.Split:
		return fmt.Sprintf("offset=%.2f horizontal=%t", v.Offset, v.Horizontal)
	case *widget.Label:
		return fmt.Sprintf("text=%q", v.Text)
	case *widget.Button:
		return fmt.Sprintf("text=%q", v.Text)
	case *widget.Entry:
		return fmt.Sprintf("text=%q", v.Text)
	default:
		return ""
	}
}

func formatSize(size fyne.Size) string {
	return fmt.Sprintf("%.0fx%.0f", size.Width, size.Height)
}
