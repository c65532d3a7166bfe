package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the installer reads.
const EnvPrefix = "MCPINSTALL"

// Flag and setting keys.
const (
	KeyConfig       = "config"
	KeyPreview      = "preview"
	KeyShowSecrets  = "show-secrets"
	KeyNodeMinMajor = "node-min-major"
	KeyNVMDir       = "nvm-dir"
	KeyLogLevel     = "log-level"
	KeyVerbose      = "verbose"
)

// Config holds the installer settings.
type Config struct {
	// ConfigPath overrides the Claude Desktop config location. Empty means
	// the platform default, which must already exist.
	ConfigPath   string `json:"configPath,omitempty"`
	Preview      bool   `json:"preview"`
	ShowSecrets  bool   `json:"showSecrets"`
	NodeMinMajor int    `json:"nodeMinMajor"`
	NVMDir       string `json:"nvmDir,omitempty"`
	LogLevel     string `json:"logLevel"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		NodeMinMajor: 20,
		LogLevel:     "warn",
	}
}

// DesktopConfigDir returns the platform-appropriate Claude Desktop directory.
func DesktopConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Claude"), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude"), nil
		}
		return filepath.Join(home, ".config", "Claude"), nil
	}
}

// DesktopConfigPath returns the full path to claude_desktop_config.json.
func DesktopConfigPath() (string, error) {
	dir, err := DesktopConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claude_desktop_config.json"), nil
}

// NodeVersionsDir returns the directory holding nvm-managed Node installs.
// nvmDir, when set, takes precedence over $NVM_DIR and ~/.nvm.
func NodeVersionsDir(nvmDir string) (string, error) {
	if nvmDir == "" {
		nvmDir = os.Getenv("NVM_DIR")
	}
	if nvmDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		nvmDir = filepath.Join(home, ".nvm")
	}
	return filepath.Join(nvmDir, "versions", "node"), nil
}

// NewViper returns a viper instance layering MCPINSTALL_* environment
// variables over defaults, with flags (when given) on top.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault(KeyNodeMinMajor, def.NodeMinMajor)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}
	return v, nil
}

// Load builds the effective config by merging: defaults <- env <- flags.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ConfigPath:   v.GetString(KeyConfig),
		Preview:      v.GetBool(KeyPreview),
		ShowSecrets:  v.GetBool(KeyShowSecrets),
		NodeMinMajor: v.GetInt(KeyNodeMinMajor),
		NVMDir:       v.GetString(KeyNVMDir),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
	}
	if v.GetBool(KeyVerbose) {
		cfg.LogLevel = "debug"
	}
	if cfg.NodeMinMajor <= 0 {
		return Config{}, fmt.Errorf("%s must be a positive integer, got %d", KeyNodeMinMajor, cfg.NodeMinMajor)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}
