package acquire

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/conn-castle/dotnet-layer/internal/testutil"
)

func TestScriptInvokerSuccess(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteStub(t, dir, "dotnet-install.sh")

	err := ScriptInvoker{}.Install(context.Background(), InstallCommand{
		Path:    script,
		Args:    []string{"--version", "3.1.0"},
		Version: "3.1.0",
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
}

func TestScriptInvokerNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteStubWithStderr(t, dir, "dotnet-install.sh", "download failed", 3)

	err := ScriptInvoker{}.Install(context.Background(), InstallCommand{
		Path:    script,
		Version: "3.1.0",
	})
	var processErr *InstallProcessError
	if !errors.As(err, &processErr) {
		t.Fatalf("expected InstallProcessError, got %v", err)
	}
	if processErr.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", processErr.ExitCode)
	}
	if processErr.Version != "3.1.0" {
		t.Fatalf("expected version 3.1.0, got %q", processErr.Version)
	}
	if processErr.Output != "download failed" {
		t.Fatalf("unexpected output: %q", processErr.Output)
	}
}

func TestScriptInvokerZeroExitWithStderrFails(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteStubWithStderr(t, dir, "dotnet-install.sh", "warning: checksum skipped", 0)

	err := ScriptInvoker{}.Install(context.Background(), InstallCommand{
		Path:    script,
		Version: "5.0.0",
	})
	var scriptErr *InstallScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected InstallScriptError, got %v", err)
	}
	if scriptErr.Stderr != "warning: checksum skipped" {
		t.Fatalf("unexpected stderr: %q", scriptErr.Stderr)
	}
}

func TestScriptInvokerSpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-installer.sh")

	err := ScriptInvoker{}.Install(context.Background(), InstallCommand{
		Path:    missing,
		Version: "3.1.0",
	})
	var unexpected *UnexpectedError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedError, got %v", err)
	}
	if unexpected.Unwrap() == nil {
		t.Fatalf("expected wrapped spawn error")
	}
}

func TestScriptInvokerRequiresPath(t *testing.T) {
	err := ScriptInvoker{}.Install(context.Background(), InstallCommand{Version: "3.1.0"})
	var usage *UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}
