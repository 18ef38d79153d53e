package gamepad

import "strings"

// Button indexes the standard gamepad layout.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
	ButtonBack
	ButtonStart
	ButtonGuide
	ButtonLeftThumb
	ButtonRightThumb
	ButtonDpadUp
	ButtonDpadRight
	ButtonDpadDown
	ButtonDpadLeft
	ButtonCount
)

// Axis indexes the standard gamepad layout. Stick Y axes grow downwards.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
	AxisCount
)

type Kind string

const (
	KindXbox    Kind = "xbox"
	KindDS4     Kind = "ds4"
	KindGeneric Kind = "generic"
)

// DetectKind guesses the controller family from its reported name.
func DetectKind(name string) Kind {
	lc := strings.ToLower(name)
	switch {
	case strings.Contains(lc, "xbox"), strings.Contains(lc, "xinput"):
		return KindXbox
	case strings.Contains(lc, "sony"),
		strings.Contains(lc, "ps"),
		strings.Contains(lc, "dualshock"),
		strings.Contains(lc, "playstation"):
		return KindDS4
	default:
		return KindGeneric
	}
}

type Action string

const (
	ActionSelect Action = "select"
	ActionBack   Action = "back"
	ActionMenu   Action = "menu"
	ActionOption Action = "option"
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionLeft   Action = "left"
	ActionRight  Action = "right"
)

// buttonActions maps face buttons to actions, checked in this order.
var buttonActions = []struct {
	button Button
	action Action
}{
	{ButtonA, ActionSelect},
	{ButtonB, ActionBack},
	{ButtonStart, ActionMenu},
	{ButtonBack, ActionOption},
}

// Raw is one connected pad as reported by a Source, in the standard layout.
type Raw struct {
	Index   int
	Name    string
	Buttons []bool
	Axes    []float64
}

// Pad is the normalized state of a pad the tracker has seen.
type Pad struct {
	Index     int       `json:"index"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Buttons   []bool    `json:"buttons"`
	Axes      []float64 `json:"axes"`
	Connected bool      `json:"connected"`
}

func (p Pad) pressed(b Button) bool {
	return int(b) < len(p.Buttons) && p.Buttons[b]
}

func (p Pad) axis(a Axis) float64 {
	if int(a) < len(p.Axes) {
		return p.Axes[a]
	}
	return 0
}

// ActionEvent is emitted when the active pad triggers an action.
type ActionEvent struct {
	Pad    int    `json:"pad"`
	Action Action `json:"action"`
}

// Source reports the pads currently connected.
type Source interface {
	Poll() ([]Raw, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]Raw, error)

func (f SourceFunc) Poll() ([]Raw, error) {
	return f()
}
