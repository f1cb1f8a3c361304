package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "dn"
	// RootShort is the short description for the root command.
	RootShort      = "Acquire and manage .NET runtime installations"
	RootConfigFlag = "Path to the dotnet-layer config file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// AcquireUse is the acquire command usage.
	AcquireUse   = "acquire <version>"
	AcquireShort = "Ensure a .NET runtime version is installed and print its path"

	// UninstallUse is the uninstall command name.
	UninstallUse   = "uninstall"
	UninstallShort = "Remove all acquired runtimes and reset install state"
	UninstallDone  = "Removed all acquired runtimes."

	// StatusUse is the status command name.
	StatusUse   = "status"
	StatusShort = "Show installed runtime versions and install state"

	StatusNoInstalls          = "No runtimes installed."
	StatusInstalledHeader     = "Installed runtime versions:"
	StatusEntryFmt            = "  %s"
	StatusInterruptedFmt      = "Warning: a previous install of %s was interrupted; the next acquire will reset install state."
	StatusInterruptedNoDetail = "Warning: a previous install was interrupted; the next acquire will reset install state."

	EventStartedFmt         = "Acquiring .NET runtime %s..."
	EventCompletedFmt       = "Acquired .NET runtime %s at %s"
	EventInstallErrorFmt    = "Install of %s failed: %s"
	EventScriptErrorFmt     = "Install script for %s reported errors: %s"
	EventUnexpectedErrorFmt = "Install of %s failed unexpectedly: %s"
)
