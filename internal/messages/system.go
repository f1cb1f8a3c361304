package messages

// System messages for internal operations.
const (
	// AcquireVersionRequired indicates Acquire was called without a version token.
	AcquireVersionRequired = "version is required"
	// AcquireInvokerRequired indicates the coordinator was built without an invoker.
	AcquireInvokerRequired = "installer invoker is required"
	AcquireTrackerRequired = "install tracker is required"
	AcquireCommandRequired = "install command resolver is required"

	AcquireProcessErrorFmt    = "install %s: installer exited with code %d: %s"
	AcquireScriptErrorFmt     = "install %s: installer reported errors: %s"
	AcquireUnexpectedErrorFmt = "install %s: installer could not run: %v"
	AcquireScriptRequired     = "installer script path is required"

	StateCreateRootFmt        = "create state root %s: %w"
	StateCheckBeginMarkerFmt  = "check begin marker %s: %w"
	StateReadBeginMarkerFmt   = "read begin marker %s: %w"
	StateWriteBeginMarkerFmt  = "write begin marker %s: %w"
	StateCheckLockFileFmt     = "check lock file %s: %w"
	StateReadLockFileFmt      = "read lock file %s: %w"
	StateCreateTempFileFmt    = "create temp file: %w"
	StateWriteTempFileFmt     = "write temp file: %w"
	StateSyncTempFileFmt      = "sync temp file: %w"
	StateCloseTempFileFmt     = "close temp file: %w"
	StateMoveLockFileFmt      = "move lock file into place: %w"
	StateCheckInstallDirFmt   = "check install dir %s: %w"
	StateRemoveInstallDirFmt  = "remove install dir %s: %w"
	StateRemoveLockFileFmt    = "remove lock file %s: %w"
	StateRemoveBeginMarkerFmt = "remove begin marker %s: %w"

	LockOpenFmt      = "open lock %s: %w"
	LockAcquireFmt   = "lock %s: %w"
	LockTimeoutFmt   = "timed out waiting for lock after %s"
	LockPathRequired = "lock path is required"
	LockFnRequired   = "lock callback is required"

	LoggingInvalidLevelFmt  = "invalid log level %q"
	LoggingInvalidFormatFmt = "invalid log format %q (supported: console, json)"
)
