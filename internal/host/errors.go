package host

import "errors"

// Initialization failures are fatal. They are returned up to a single
// top-level handler that logs and exits non-zero.
var (
	ErrPluginInit   = errors.New("plugin init")
	ErrWindowLookup = errors.New("window lookup")
	ErrEventLoop    = errors.New("event loop")
)

var (
	ErrBuilderConsumed = errors.New("builder already consumed")
	ErrNotInvokable    = errors.New("commands not invokable")
	ErrBadTransition   = errors.New("bad stage transition")
	ErrDuplicateWindow = errors.New("duplicate window label")
)
