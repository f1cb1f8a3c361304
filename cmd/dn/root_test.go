package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/dotnet-layer/internal/acquire"
)

// writeTestConfig writes a config pointing at a temp state root and a stub
// installer that creates the payload the way dotnet-install does.
func writeTestConfig(t *testing.T, dir string) (configPath string, root string) {
	t.Helper()
	root = filepath.Join(dir, "state")
	script := filepath.Join(dir, "dotnet-install.sh")
	stub := "#!/bin/sh\nmkdir -p \"$2\"\ntouch \"$2/dotnet\"\nexit 0\n"
	if err := os.WriteFile(script, []byte(stub), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	configPath = filepath.Join(dir, "dotnet-layer.toml")
	content := fmt.Sprintf("root = %q\n\n[install]\nscript = %q\n\n[logging]\nlevel = \"error\"\n", root, script)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, root
}

func TestAcquireCommandEndToEnd(t *testing.T) {
	configPath, root := writeTestConfig(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	err := execute([]string{"dn", "acquire", "3.1.0", "--config", configPath}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("acquire: %v (stderr: %s)", err, stderr.String())
	}

	wantPath := filepath.Join(root, "dotnet", "dotnet")
	if !strings.Contains(stdout.String(), wantPath) {
		t.Fatalf("expected stdout to contain %q, got %q", wantPath, stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(root, "install.lock"))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if string(data) != "3.1.0" {
		t.Fatalf("unexpected lock file: %q", string(data))
	}
}

func TestStatusCommandEmpty(t *testing.T) {
	configPath, _ := writeTestConfig(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "status", "--config", configPath}, &stdout, &stderr); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(stdout.String(), "No runtimes installed.") {
		t.Fatalf("unexpected status output: %q", stdout.String())
	}
}

func TestStatusCommandListsVersionsAndInterrupted(t *testing.T) {
	configPath, root := writeTestConfig(t, t.TempDir())
	tracker := acquire.NewTracker(root)
	if err := tracker.MarkInstalled("2.2.0"); err != nil {
		t.Fatalf("MarkInstalled: %v", err)
	}
	if err := tracker.BeginInstall("3.1.0"); err != nil {
		t.Fatalf("BeginInstall: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "status", "--config", configPath}, &stdout, &stderr); err != nil {
		t.Fatalf("status: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "2.2.0") {
		t.Fatalf("expected installed version in output: %q", out)
	}
	if !strings.Contains(out, "3.1.0") || !strings.Contains(out, "interrupted") {
		t.Fatalf("expected interrupted warning in output: %q", out)
	}
}

func TestUninstallCommandResetsState(t *testing.T) {
	configPath, root := writeTestConfig(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "acquire", "3.1.0", "--config", configPath}, &stdout, &stderr); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	stdout.Reset()
	if err := execute([]string{"dn", "uninstall", "--config", configPath}, &stdout, &stderr); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if !strings.Contains(stdout.String(), "Removed all acquired runtimes.") {
		t.Fatalf("unexpected uninstall output: %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(root, "dotnet")); !os.IsNotExist(err) {
		t.Fatalf("expected install dir removed")
	}
	if _, err := os.Stat(filepath.Join(root, "install.lock")); !os.IsNotExist(err) {
		t.Fatalf("expected lock file removed")
	}
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "dotnet-layer.toml")
	if err := os.WriteFile(configPath, []byte("bogus = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := execute([]string{"dn", "status", "--config", configPath}, &stdout, &stderr); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}
