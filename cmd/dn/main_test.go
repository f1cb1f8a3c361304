package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	if got := versionString(); got != "1.2.3" {
		t.Fatalf("expected bare version, got %q", got)
	}

	Commit = "abc1234"
	BuildDate = "2025-06-01"
	got := versionString()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc1234") || !strings.Contains(got, "2025-06-01") {
		t.Fatalf("unexpected version string: %q", got)
	}
}

func TestExecuteHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "--help"}, &stdout, &stderr); err != nil {
		t.Fatalf("execute --help: %v", err)
	}
	for _, want := range []string{"acquire", "uninstall", "status"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("expected help to mention %q, got:\n%s", want, stdout.String())
		}
	}
}

func TestRunMainExitsNonZeroOnError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := -1
	runMain([]string{"dn", "no-such-command"}, &stdout, &stderr, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected error output")
	}
}

func TestAcquireRequiresVersionArg(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "acquire"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected error for missing version argument")
	}
}
