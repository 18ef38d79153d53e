package host

import "fmt"

// Stage is a step of the bootstrap. Stages only move forward, each at most
// once, and any failure jumps straight to Terminated.
type Stage int

const (
	Uninitialized Stage = iota
	LoggingReady
	PluginsAttached
	CommandsRegistered
	Running
	Terminated
)

func (s Stage) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case LoggingReady:
		return "logging-ready"
	case PluginsAttached:
		return "plugins-attached"
	case CommandsRegistered:
		return "commands-registered"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

func (s Stage) canAdvanceTo(next Stage) bool {
	if s == Terminated {
		return false
	}
	return next == Terminated || next == s+1
}
