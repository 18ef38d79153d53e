package gamepad

import (
	"slices"
	"sort"
)

// Changes is what one Update observed.
type Changes struct {
	Connected    []Pad
	Disconnected []Pad
	Actions      []ActionEvent
}

func (c Changes) Empty() bool {
	return len(c.Connected) == 0 && len(c.Disconnected) == 0 && len(c.Actions) == 0
}

// Tracker turns successive raw snapshots into pad state, press edges and
// navigation actions. It is not safe for concurrent use.
type Tracker struct {
	threshold float64
	pads      map[int]*Pad
	prevDir   map[int]Action
	active    int
}

func NewTracker(axisThreshold float64) *Tracker {
	return &Tracker{
		threshold: axisThreshold,
		pads:      make(map[int]*Pad),
		prevDir:   make(map[int]Action),
		active:    -1,
	}
}

// Update applies a snapshot of connected pads.
func (t *Tracker) Update(raw []Raw) Changes {
	var changes Changes
	seen := make(map[int]bool, len(raw))

	raw = slices.Clone(raw)
	sort.Slice(raw, func(i, j int) bool { return raw[i].Index < raw[j].Index })

	for _, r := range raw {
		seen[r.Index] = true

		prev, known := t.pads[r.Index]
		wasConnected := known && prev.Connected
		var prevButtons []bool
		if wasConnected {
			prevButtons = prev.Buttons
		}

		pad := &Pad{
			Index:     r.Index,
			Name:      r.Name,
			Kind:      DetectKind(r.Name),
			Buttons:   slices.Clone(r.Buttons),
			Axes:      slices.Clone(r.Axes),
			Connected: true,
		}
		t.pads[r.Index] = pad

		if !wasConnected {
			changes.Connected = append(changes.Connected, pad.snapshot())
			delete(t.prevDir, r.Index)
		}
		if t.active == -1 {
			t.active = r.Index
		}
		if r.Index == t.active {
			changes.Actions = append(changes.Actions, t.actions(pad, prevButtons)...)
		}
	}

	for _, idx := range t.indexes() {
		pad := t.pads[idx]
		if pad.Connected && !seen[idx] {
			pad.Connected = false
			changes.Disconnected = append(changes.Disconnected, pad.snapshot())
			delete(t.prevDir, idx)
			if t.active == idx {
				t.active = -1
			}
		}
	}

	if t.active == -1 {
		t.active = t.firstConnected()
	}
	return changes
}

func (t *Tracker) actions(pad *Pad, prevButtons []bool) []ActionEvent {
	var out []ActionEvent
	justPressed := func(b Button) bool {
		wasDown := int(b) < len(prevButtons) && prevButtons[b]
		return pad.pressed(b) && !wasDown
	}

	for _, ba := range buttonActions {
		if justPressed(ba.button) {
			out = append(out, ActionEvent{Pad: pad.Index, Action: ba.action})
		}
	}

	dir := t.direction(*pad)
	if dir != "" && dir != t.prevDir[pad.Index] {
		out = append(out, ActionEvent{Pad: pad.Index, Action: dir})
	}
	t.prevDir[pad.Index] = dir
	return out
}

// direction reads the d-pad first, then the left stick past the threshold.
func (t *Tracker) direction(p Pad) Action {
	switch {
	case p.pressed(ButtonDpadUp):
		return ActionUp
	case p.pressed(ButtonDpadRight):
		return ActionRight
	case p.pressed(ButtonDpadDown):
		return ActionDown
	case p.pressed(ButtonDpadLeft):
		return ActionLeft
	}

	x, y := p.axis(AxisLeftX), p.axis(AxisLeftY)
	switch {
	case y < -t.threshold:
		return ActionUp
	case x > t.threshold:
		return ActionRight
	case y > t.threshold:
		return ActionDown
	case x < -t.threshold:
		return ActionLeft
	}
	return ""
}

func (t *Tracker) indexes() []int {
	idx := make([]int, 0, len(t.pads))
	for i := range t.pads {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

func (t *Tracker) firstConnected() int {
	for _, i := range t.indexes() {
		if t.pads[i].Connected {
			return i
		}
	}
	return -1
}

// Pads returns every pad seen so far, ordered by index.
func (t *Tracker) Pads() []Pad {
	out := make([]Pad, 0, len(t.pads))
	for _, i := range t.indexes() {
		out = append(out, t.pads[i].snapshot())
	}
	return out
}

// Active returns the pad driving navigation, if any.
func (t *Tracker) Active() (Pad, bool) {
	if t.active == -1 {
		return Pad{}, false
	}
	return t.pads[t.active].snapshot(), true
}

func (p *Pad) snapshot() Pad {
	cp := *p
	cp.Buttons = slices.Clone(p.Buttons)
	cp.Axes = slices.Clone(p.Axes)
	return cp
}
