//go:build debug

package buildinfo

// Debug is true when built with -tags debug, the same tag Fyne uses for
// fyne.BuildDebug.
const Debug = true
