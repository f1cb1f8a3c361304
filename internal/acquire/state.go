package acquire

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

const (
	installDirName   = "dotnet"
	lockFileName     = "install.lock"
	beginMarkerName  = "install.begin"
	guardFileName    = "state.guard"
	executableName   = "dotnet"
	versionSeparator = "|"
)

// Tracker persists which runtime versions completed installation under a
// single state root. On-disk layout:
//
//	<root>/dotnet          installation directory (written by the installer)
//	<root>/install.lock    completed versions, "|"-joined, the source of truth
//	<root>/install.begin   in-progress marker; its existence means an install
//	                       started but was never recorded as complete
//
// All reads and writes replace whole files so external readers never see a
// partially mutated record.
type Tracker struct {
	root string
}

// NewTracker returns a tracker rooted at dir. The directory is created
// lazily by EnsureRoot.
func NewTracker(dir string) *Tracker {
	return &Tracker{root: dir}
}

// Root returns the state root directory.
func (t *Tracker) Root() string {
	return t.root
}

// InstallDir returns the installation directory the installer writes into.
func (t *Tracker) InstallDir() string {
	return filepath.Join(t.root, installDirName)
}

// ExecutablePath returns the path of the installed runtime executable.
func (t *Tracker) ExecutablePath() string {
	return filepath.Join(t.InstallDir(), executableName)
}

func (t *Tracker) lockPath() string {
	return filepath.Join(t.root, lockFileName)
}

func (t *Tracker) beginPath() string {
	return filepath.Join(t.root, beginMarkerName)
}

func (t *Tracker) guardPath() string {
	return filepath.Join(t.root, guardFileName)
}

// EnsureRoot creates the state root directory if it does not exist.
func (t *Tracker) EnsureRoot() error {
	if err := os.MkdirAll(t.root, 0o755); err != nil {
		return fmt.Errorf(messages.StateCreateRootFmt, t.root, err)
	}
	return nil
}

// HasBeginMarker reports whether an install started but was never recorded
// as complete.
func (t *Tracker) HasBeginMarker() (bool, error) {
	return t.exists(t.beginPath(), messages.StateCheckBeginMarkerFmt)
}

// BeginVersion returns the version recorded in the begin marker. The
// content is diagnostic only; correctness depends solely on the marker's
// presence. A missing marker returns "".
func (t *Tracker) BeginVersion() (string, error) {
	data, err := os.ReadFile(t.beginPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf(messages.StateReadBeginMarkerFmt, t.beginPath(), err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BeginInstall writes the begin marker before the installer runs. This is
// the crash-recovery tripwire: it is deleted only after the lock file has
// durably recorded the install.
func (t *Tracker) BeginInstall(version string) error {
	if err := t.EnsureRoot(); err != nil {
		return err
	}
	return withFileLock(t.guardPath(), func() error {
		if err := os.WriteFile(t.beginPath(), []byte(version), 0o644); err != nil {
			return fmt.Errorf(messages.StateWriteBeginMarkerFmt, t.beginPath(), err)
		}
		return nil
	})
}

// ClearBeginMarker removes the begin marker. A missing marker is success.
func (t *Tracker) ClearBeginMarker() error {
	if err := t.EnsureRoot(); err != nil {
		return err
	}
	return withFileLock(t.guardPath(), func() error {
		return t.removeBeginMarker()
	})
}

// LockFileExists reports whether the lock file is present.
func (t *Tracker) LockFileExists() (bool, error) {
	return t.exists(t.lockPath(), messages.StateCheckLockFileFmt)
}

// InstallDirExists reports whether the installation directory is present.
func (t *Tracker) InstallDirExists() (bool, error) {
	return t.exists(t.InstallDir(), messages.StateCheckInstallDirFmt)
}

// ReadInstalledVersions returns the versions recorded as fully installed,
// in completion order. A missing lock file yields an empty set.
func (t *Tracker) ReadInstalledVersions() ([]string, error) {
	data, err := os.ReadFile(t.lockPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.StateReadLockFileFmt, t.lockPath(), err)
	}
	var versions []string
	for _, v := range strings.Split(string(data), versionSeparator) {
		v = strings.TrimSpace(v)
		if v != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// MarkInstalled appends version to the lock file and rewrites it whole.
// The write goes through a synced temp file and rename so the record is
// durable before the caller clears the begin marker. Recording an already
// present version is a no-op.
func (t *Tracker) MarkInstalled(version string) error {
	if err := t.EnsureRoot(); err != nil {
		return err
	}
	return withFileLock(t.guardPath(), func() error {
		versions, err := t.ReadInstalledVersions()
		if err != nil {
			return err
		}
		for _, v := range versions {
			if v == version {
				return nil
			}
		}
		versions = append(versions, version)
		return t.writeLockFile(versions)
	})
}

// Reset removes the installation directory, then the begin marker, then
// the lock file, treating already-absent artifacts as success.
func (t *Tracker) Reset() error {
	if err := t.EnsureRoot(); err != nil {
		return err
	}
	return withFileLock(t.guardPath(), func() error {
		if err := os.RemoveAll(t.InstallDir()); err != nil {
			return fmt.Errorf(messages.StateRemoveInstallDirFmt, t.InstallDir(), err)
		}
		if err := t.removeBeginMarker(); err != nil {
			return err
		}
		if err := os.Remove(t.lockPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf(messages.StateRemoveLockFileFmt, t.lockPath(), err)
		}
		return nil
	})
}

func (t *Tracker) removeBeginMarker() error {
	if err := os.Remove(t.beginPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(messages.StateRemoveBeginMarkerFmt, t.beginPath(), err)
	}
	return nil
}

// writeLockFile replaces the lock file content via temp file, sync, and
// rename.
func (t *Tracker) writeLockFile(versions []string) error {
	tmp, err := os.CreateTemp(t.root, lockFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.StateCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(strings.Join(versions, versionSeparator)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.StateWriteTempFileFmt, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.StateSyncTempFileFmt, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.StateCloseTempFileFmt, err)
	}
	if err := os.Rename(tmpName, t.lockPath()); err != nil {
		return fmt.Errorf(messages.StateMoveLockFileFmt, err)
	}
	committed = true
	return nil
}

func (t *Tracker) exists(path string, errFmt string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf(errFmt, path, err)
	}
	return false, nil
}
