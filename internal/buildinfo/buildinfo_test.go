package buildinfo

import (
	"os/exec"
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "v1.2", "abc1234"
	if got := Short(); got != "v1.2" {
		t.Fatalf("Short() = %q; want %q", got, "v1.2")
	}

	Version = "dev"
	if got := Short(); got != "abc1234" {
		t.Fatalf("Short() = %q; want %q", got, "abc1234")
	}

	Commit = "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q; want %q", got, "dev")
	}
}

func TestMergeVersionFallbackOutsideRepo(t *testing.T) {
	// An empty temp dir is never a git checkout.
	if got := mergeVersionIn(t.TempDir()); got != FallbackMergeVersion {
		t.Fatalf("mergeVersionIn(tempdir) = %q; want %q", got, FallbackMergeVersion)
	}
}

func TestMergeVersionInRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=t", "GIT_AUTHOR_EMAIL=t@t",
			"GIT_COMMITTER_NAME=t", "GIT_COMMITTER_EMAIL=t@t",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
		}
	}

	run("init", "-q", "-b", "main")
	run("commit", "-q", "--allow-empty", "-m", "a")

	// No merges yet.
	if got := mergeVersionIn(dir); got != "1.0" {
		t.Fatalf("mergeVersionIn = %q; want %q", got, "1.0")
	}

	// One merge commit.
	run("checkout", "-q", "-b", "side")
	run("commit", "-q", "--allow-empty", "-m", "b")
	run("checkout", "-q", "main")
	run("commit", "-q", "--allow-empty", "-m", "c")
	run("merge", "-q", "--no-ff", "-m", "merge", "side")

	if got := mergeVersionIn(dir); got != "1.1" {
		t.Fatalf("mergeVersionIn = %q; want %q", got, "1.1")
	}
}

func TestMergeVersionCached(t *testing.T) {
	first := MergeVersion()
	if !strings.HasPrefix(first, "1.") {
		t.Fatalf("MergeVersion() = %q; want a 1.<n> string", first)
	}
	if again := MergeVersion(); again != first {
		t.Fatalf("MergeVersion() changed between calls: %q then %q", first, again)
	}
}
