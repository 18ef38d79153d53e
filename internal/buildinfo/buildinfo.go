// Package buildinfo exposes version metadata for the shell. Version, Commit
// and Date can be overridden at build time via -ldflags -X.
package buildinfo

import "strings"

var (
	Version = "1.0.0"
	Commit  = ""
	Date    = ""
)

// Mode reports the build mode selected by the debug build tag.
func Mode() string {
	if Debug {
		return "debug"
	}
	return "release"
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	parts := make([]string, 0, 2)
	if Commit != "" {
		parts = append(parts, Commit)
	}
	if Date != "" {
		parts = append(parts, Date)
	}

	var b strings.Builder
	b.WriteString(v)
	if len(parts) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(Mode())
	return b.String()
}
