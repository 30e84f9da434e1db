package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// FileLoader loads YAML configuration from ~/.intentshell/config.yaml
// (overridable via INTENTSHELL_CONFIG). On first run the default
// configuration is written out so users have a file to edit.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("INTENTSHELL_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".intentshell", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			MaxRepairAttempts:     1,
			HandlerTimeoutSeconds: 30,
			ConfirmEnabled:        true,
			Verbose:               false,
		},
		Reasoner: domain.ReasonerSettings{
			// Empty endpoint disables the reasoner entirely.
			Endpoint:       "",
			AuthEnvVar:     "INTENTSHELL_API_KEY",
			TimeoutSeconds: 10,
		},
		Safety: domain.SafetySettings{
			DenylistFile: filepath.Join(userHomeDir(), ".intentshell", "denylist.yaml"),
		},
		Recorder: domain.RecorderSettings{
			Backend: "sqlite",
			Path:    filepath.Join(userHomeDir(), ".intentshell", "transactions"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.MaxRepairAttempts == 0 {
		cfg.Preferences.MaxRepairAttempts = 1
	}
	if cfg.Preferences.HandlerTimeoutSeconds == 0 {
		cfg.Preferences.HandlerTimeoutSeconds = 30
	}
	if cfg.Reasoner.TimeoutSeconds == 0 {
		cfg.Reasoner.TimeoutSeconds = 10
	}
	if cfg.Recorder.Path == "" {
		cfg.Recorder.Path = filepath.Join(userHomeDir(), ".intentshell", "transactions")
	}
	if cfg.Safety.DenylistFile == "" {
		cfg.Safety.DenylistFile = filepath.Join(userHomeDir(), ".intentshell", "denylist.yaml")
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
