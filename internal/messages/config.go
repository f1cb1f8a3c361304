package messages

// Config messages for loading and validating dotnet-layer.toml.
const (
	ConfigMissingFileFmt      = "failed to read config at %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v."
	ConfigValidationGuidance  = "Fix the reported fields in dotnet-layer.toml and retry."

	ConfigRootRequired      = "root directory must not be empty"
	ConfigExpandRootFmt     = "expand root %s: %w"
	ConfigScriptRequired    = "install.script must not be empty"
	ConfigInvalidRuntimeFmt = "install.runtime %q is not supported (supported: dotnet, aspnetcore, or empty for the SDK)"
	ConfigInvalidLevelFmt   = "logging.level %q is not supported (supported: debug, info, warn, error)"
	ConfigInvalidFormatFmt  = "logging.format %q is not supported (supported: console, json)"
)
