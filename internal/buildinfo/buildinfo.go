// Package buildinfo reports what build of the pad is running.
package buildinfo

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// FallbackMergeVersion is reported when the merge count cannot be computed.
const FallbackMergeVersion = "1.0"

var (
	mergeOnce sync.Once
	mergeVer  string
)

// MergeVersion returns "1.<n>" where n is the number of merge commits
// reachable from the current history tip. Outside a git checkout (or on any
// git failure) it falls back to FallbackMergeVersion. The result is computed
// once and cached.
func MergeVersion() string {
	mergeOnce.Do(func() {
		mergeVer = mergeVersionIn("")
	})
	return mergeVer
}

// mergeVersionIn runs the git query in dir ("" = current directory).
func mergeVersionIn(dir string) string {
	cmd := exec.Command("git", "rev-list", "--min-parents=2", "--count", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return FallbackMergeVersion
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || n < 0 {
		return FallbackMergeVersion
	}
	return fmt.Sprintf("1.%d", n)
}
