package bootstrap

import (
	"fmt"
	"runtime"
)

// runMode says how the vector-store binary is started on this host
// (spec.md §4.10: "on macOS/Linux download or locate the vector-store
// binary and spawn it; on Windows run it as a container").
type runMode int

const (
	runModeProcess runMode = iota
	runModeContainer
)

// detectRunMode maps runtime.GOOS to the spawn strategy, grounded on
// internal/pattern/binary.go's detectPlatform. Declared as a variable so
// tests can substitute it without touching runtime.GOOS.
var detectRunMode = func() (runMode, error) {
	switch runtime.GOOS {
	case "darwin", "linux":
		return runModeProcess, nil
	case "windows":
		return runModeContainer, nil
	default:
		return 0, fmt.Errorf("bootstrap: unsupported platform %s", runtime.GOOS)
	}
}
