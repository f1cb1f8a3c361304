// Package config loads and validates the dotnet-layer configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/dotnet-layer/internal/acquire"
	"github.com/conn-castle/dotnet-layer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrConfigValidation) to distinguish them.
var ErrConfigValidation = errors.New("config validation failed")

// DefaultFileName is the config file looked up when no --config flag is given.
const DefaultFileName = "dotnet-layer.toml"

const defaultRootDirName = ".dotnet-layer"

// Config is the root of dotnet-layer.toml.
type Config struct {
	// Root is the state root holding the installation directory and the
	// marker files. Supports ~ expansion.
	Root    string        `toml:"root"`
	Install InstallConfig `toml:"install"`
	Logging LoggingConfig `toml:"logging"`
}

// InstallConfig describes how the external installer is invoked.
type InstallConfig struct {
	// Script is the dotnet-install script path or executable name.
	Script string `toml:"script"`
	// Runtime selects what the installer fetches: "dotnet", "aspnetcore",
	// or empty for the full SDK.
	Runtime string `toml:"runtime"`
	// Architecture is passed through to the installer when set.
	Architecture string `toml:"architecture"`
	// ExtraArgs are appended verbatim to every installer invocation.
	ExtraArgs []string `toml:"extra_args"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no config file exists.
func Default() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Root: filepath.Join(home, defaultRootDirName),
		Install: InstallConfig{
			Script:  "dotnet-install.sh",
			Runtime: "dotnet",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}, nil
}

// Load reads and validates the config at path. A missing file yields the
// defaults so the CLI works out of the box; any other read error is fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates config TOML data. data is the TOML content;
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	defaults, err := Default()
	if err != nil {
		return nil, err
	}
	cfg := *defaults
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field
// rejection, catching keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// Validate checks field values without touching the filesystem.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New(messages.ConfigRootRequired)
	}
	if c.Install.Script == "" {
		return errors.New(messages.ConfigScriptRequired)
	}
	switch c.Install.Runtime {
	case "", "dotnet", "aspnetcore":
	default:
		return fmt.Errorf(messages.ConfigInvalidRuntimeFmt, c.Install.Runtime)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf(messages.ConfigInvalidLevelFmt, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf(messages.ConfigInvalidFormatFmt, c.Logging.Format)
	}
	return nil
}

// ResolvedRoot returns the state root with ~ expanded.
func (c *Config) ResolvedRoot() (string, error) {
	root, err := homedir.Expand(c.Root)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandRootFmt, c.Root, err)
	}
	return root, nil
}

// CommandFunc returns the installer invocation resolver bound to this
// configuration. The argument shape follows the dotnet-install script:
// install directory and version, plus configured runtime, architecture,
// and extra flags.
func (c *Config) CommandFunc() acquire.CommandFunc {
	install := c.Install
	return func(installDir string, version string) acquire.InstallCommand {
		args := []string{"--install-dir", installDir, "--version", version}
		if install.Runtime != "" {
			args = append(args, "--runtime", install.Runtime)
		}
		if install.Architecture != "" {
			args = append(args, "--architecture", install.Architecture)
		}
		args = append(args, install.ExtraArgs...)
		return acquire.InstallCommand{
			Path:       install.Script,
			Args:       args,
			InstallDir: installDir,
			Version:    version,
		}
	}
}
