package acquire

import (
	"fmt"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

// UsageError reports a caller mistake detected before any I/O, such as a
// missing version token. It is never retried.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// InstallProcessError reports an installer that exited with a non-zero
// status. Output carries whatever the process wrote to stderr.
type InstallProcessError struct {
	Version  string
	ExitCode int
	Output   string
}

func (e *InstallProcessError) Error() string {
	return fmt.Sprintf(messages.AcquireProcessErrorFmt, e.Version, e.ExitCode, e.Output)
}

// InstallScriptError reports an installer that exited zero but wrote to
// stderr. The underlying install script is known to emit warnings for
// installs that did not complete usably, so any stderr output is treated
// as failure.
type InstallScriptError struct {
	Version string
	Stderr  string
}

func (e *InstallScriptError) Error() string {
	return fmt.Sprintf(messages.AcquireScriptErrorFmt, e.Version, e.Stderr)
}

// UnexpectedError reports that the installer process could not be run at
// all, typically environment misconfiguration.
type UnexpectedError struct {
	Version string
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf(messages.AcquireUnexpectedErrorFmt, e.Version, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
