//go:build !debug

package buildinfo

const Debug = false
