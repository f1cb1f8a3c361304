package acquire

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

// InstallCommand describes one installer invocation.
type InstallCommand struct {
	// Path is the installer script or executable to run.
	Path string
	// Args is the full argument list passed to Path.
	Args []string
	// InstallDir is the directory the installer writes into.
	InstallDir string
	// Version is the runtime version being installed, used to attribute
	// failures.
	Version string
}

// CommandFunc resolves the installer invocation for a version. The
// coordinator owns the install directory; the script path and any
// runtime/architecture flags belong to the caller's configuration.
type CommandFunc func(installDir string, version string) InstallCommand

// Invoker runs the external installer, once per call.
type Invoker interface {
	Install(ctx context.Context, cmd InstallCommand) error
}

// ScriptInvoker runs the installer via os/exec and classifies the outcome.
// Success requires a zero exit status and no stderr output: the underlying
// install script exits zero for some installs that did not complete usably
// and reports the problem on stderr, so any stderr output fails the
// invocation.
type ScriptInvoker struct{}

// Install runs the installer and blocks until it settles.
func (ScriptInvoker) Install(ctx context.Context, cmd InstallCommand) error {
	if cmd.Path == "" {
		return &UsageError{Reason: messages.AcquireScriptRequired}
	}

	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	var stderr bytes.Buffer
	proc.Stderr = &stderr

	err := proc.Run()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return &InstallProcessError{
			Version:  cmd.Version,
			ExitCode: exitErr.ExitCode(),
			Output:   strings.TrimSpace(stderr.String()),
		}
	case err != nil:
		return &UnexpectedError{Version: cmd.Version, Err: err}
	}

	if out := strings.TrimSpace(stderr.String()); out != "" {
		return &InstallScriptError{Version: cmd.Version, Stderr: out}
	}
	return nil
}
