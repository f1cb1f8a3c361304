// Package acquire coordinates installation of .NET runtime versions. It
// deduplicates concurrent requests per version, serializes installer
// invocations through a single forward-only chain, persists install state
// with marker files, and self-heals interrupted or tampered state.
package acquire

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conn-castle/dotnet-layer/internal/events"
	"github.com/conn-castle/dotnet-layer/internal/messages"
)

// operation is one scheduled acquisition. done is closed once path and err
// are set; both stay memoized for the coordinator's lifetime.
type operation struct {
	version   string
	requestID string
	done      chan struct{}
	path      string
	err       error
}

// Coordinator turns Acquire calls into at most one installer invocation
// per version. All installer work runs on a single chain: each new
// operation is scheduled after the previously chained one settles, so no
// two invocations ever race on the shared installation directory.
type Coordinator struct {
	tracker *Tracker
	invoker Invoker
	command CommandFunc
	stream  *events.Stream
	log     *zap.Logger

	mu     sync.Mutex
	ledger map[string]*operation
	last   *operation
}

// New returns a coordinator over tracker and invoker. command resolves the
// installer invocation per version. A nil stream gets a fresh one; a nil
// logger is replaced with a no-op logger.
func New(tracker *Tracker, invoker Invoker, command CommandFunc, stream *events.Stream, log *zap.Logger) (*Coordinator, error) {
	if tracker == nil {
		return nil, errors.New(messages.AcquireTrackerRequired)
	}
	if invoker == nil {
		return nil, errors.New(messages.AcquireInvokerRequired)
	}
	if command == nil {
		return nil, errors.New(messages.AcquireCommandRequired)
	}
	if stream == nil {
		stream = events.NewStream()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		tracker: tracker,
		invoker: invoker,
		command: command,
		stream:  stream,
		log:     log,
		ledger:  make(map[string]*operation),
	}, nil
}

// Events returns the coordinator's event stream for observer subscription.
func (c *Coordinator) Events() *events.Stream {
	return c.stream
}

// Acquire ensures version is installed and returns the runtime executable
// path. Repeated calls for the same version are memoized, including
// failures: a failed version stays failed until UninstallAll clears state.
// Cancelling ctx abandons the wait only; an in-flight installer invocation
// always runs to completion and its outcome stays recorded.
func (c *Coordinator) Acquire(ctx context.Context, version string) (string, error) {
	if version == "" {
		return "", &UsageError{Reason: messages.AcquireVersionRequired}
	}

	c.mu.Lock()
	if op, ok := c.ledger[version]; ok {
		c.mu.Unlock()
		return awaitOperation(ctx, op)
	}
	op := &operation{
		version:   version,
		requestID: uuid.NewString(),
		done:      make(chan struct{}),
	}
	prev := c.last
	c.last = op
	c.ledger[version] = op
	c.mu.Unlock()

	go c.run(op, prev)
	return awaitOperation(ctx, op)
}

// UninstallAll removes the installation directory and both marker files
// and clears the ledger. It runs unconditionally: callers are responsible
// for not racing it against an in-flight Acquire.
func (c *Coordinator) UninstallAll() error {
	c.mu.Lock()
	c.ledger = make(map[string]*operation)
	c.last = nil
	c.mu.Unlock()

	c.log.Info(logUninstallAll, zap.String("root", c.tracker.Root()))
	return c.tracker.Reset()
}

// run executes op after the previously chained operation settles. The
// previous outcome is deliberately swallowed: a failure of an unrelated
// version must not block or fail its siblings.
func (c *Coordinator) run(op *operation, prev *operation) {
	if prev != nil {
		<-prev.done
	}
	path, invoked, err := c.acquireCore(op)
	op.path = path
	op.err = err
	c.report(op, invoked)
	close(op.done)
}

// acquireCore performs one acquisition under the chain's serialization
// guarantee. invoked reports whether the installer actually ran.
func (c *Coordinator) acquireCore(op *operation) (path string, invoked bool, err error) {
	if err := c.tracker.EnsureRoot(); err != nil {
		return "", false, err
	}

	// An existing begin marker means a prior attempt was interrupted
	// before its completion was recorded; the directory contents cannot
	// be trusted, so start over from nothing.
	hasBegin, err := c.tracker.HasBeginMarker()
	if err != nil {
		return "", false, err
	}
	if hasBegin {
		interrupted, _ := c.tracker.BeginVersion()
		c.log.Warn(logInterruptedInstall,
			zap.String("version", op.version),
			zap.String("interrupted_version", interrupted))
		if err := c.resetState(op.version); err != nil {
			return "", false, err
		}
	}

	// A lock file without an installation directory means state was
	// tampered with externally; self-heal the same way.
	lockExists, err := c.tracker.LockFileExists()
	if err != nil {
		return "", false, err
	}
	if lockExists {
		dirExists, err := c.tracker.InstallDirExists()
		if err != nil {
			return "", false, err
		}
		if !dirExists {
			c.log.Warn(logTamperedState, zap.String("version", op.version))
			if err := c.resetState(op.version); err != nil {
				return "", false, err
			}
		}
	}

	installed, err := c.tracker.ReadInstalledVersions()
	if err != nil {
		return "", false, err
	}
	for _, v := range installed {
		if v == op.version {
			c.log.Debug(logAlreadyInstalled, zap.String("version", op.version))
			return c.tracker.ExecutablePath(), false, nil
		}
	}

	if err := c.tracker.BeginInstall(op.version); err != nil {
		return "", false, err
	}

	c.stream.Publish(events.Event{
		Kind:      events.KindStarted,
		RequestID: op.requestID,
		Version:   op.version,
	})

	cmd := c.command(c.tracker.InstallDir(), op.version)
	// The installer runs under its own context: per-caller cancellation
	// must not abort a shared in-flight install.
	if err := c.invoker.Install(context.Background(), cmd); err != nil {
		// The begin marker stays in place so the next acquisition
		// resets rather than reusing a half-installed directory.
		return "", true, err
	}

	// Record completion durably before clearing the tripwire; a crash
	// between the two is recovered by the marker check above.
	if err := c.tracker.MarkInstalled(op.version); err != nil {
		return "", true, err
	}
	if err := c.tracker.ClearBeginMarker(); err != nil {
		return "", true, err
	}
	return c.tracker.ExecutablePath(), true, nil
}

// resetState wipes on-disk state and evicts every ledger entry except the
// acquisition currently being served, whose outcome is still pending.
func (c *Coordinator) resetState(keep string) error {
	if err := c.tracker.Reset(); err != nil {
		return err
	}
	c.mu.Lock()
	for v := range c.ledger {
		if v != keep {
			delete(c.ledger, v)
		}
	}
	c.mu.Unlock()
	return nil
}

// report publishes the terminal event for op and logs the outcome.
// Acquisitions satisfied from the lock file settle silently.
func (c *Coordinator) report(op *operation, invoked bool) {
	if op.err == nil {
		if !invoked {
			return
		}
		c.stream.Publish(events.Event{
			Kind:      events.KindCompleted,
			RequestID: op.requestID,
			Version:   op.version,
			Path:      op.path,
		})
		c.log.Info(logInstallCompleted,
			zap.String("version", op.version),
			zap.String("path", op.path),
			zap.String("request_id", op.requestID))
		return
	}

	kind := events.KindUnexpectedError
	var processErr *InstallProcessError
	var scriptErr *InstallScriptError
	switch {
	case errors.As(op.err, &processErr):
		kind = events.KindInstallError
	case errors.As(op.err, &scriptErr):
		kind = events.KindScriptError
	}
	c.stream.Publish(events.Event{
		Kind:      kind,
		RequestID: op.requestID,
		Version:   op.version,
		Detail:    op.err.Error(),
	})
	c.log.Error(logInstallFailed,
		zap.String("version", op.version),
		zap.String("request_id", op.requestID),
		zap.Error(op.err))
}

// awaitOperation waits for op to settle or ctx to be cancelled.
func awaitOperation(ctx context.Context, op *operation) (string, error) {
	select {
	case <-op.done:
		return op.path, op.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Log message constants.
const (
	logInterruptedInstall = "detected interrupted install, resetting state"
	logTamperedState      = "lock file present without install dir, resetting state"
	logAlreadyInstalled   = "version already installed"
	logInstallCompleted   = "install completed"
	logInstallFailed      = "install failed"
	logUninstallAll       = "removing all installed runtimes"
)
