// Package version carries the build version injected at release time.
package version

// Version is overridden via -ldflags at build time.
var Version = "0.1.0"
