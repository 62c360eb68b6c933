package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// API contains connection settings for the MiVideo API Directory gateway.
type API struct {
	Host           string `toml:"host"`
	AuthID         string `toml:"auth_id"`
	AuthSecret     string `toml:"auth_secret"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Version        string `toml:"version"`
	Backend        string `toml:"backend"`
}

// Kaltura contains settings for the direct Kaltura api_v3 backend.
type Kaltura struct {
	Host           string `toml:"host"`
	SessionToken   string `toml:"session_token"`
	CategoryPrefix string `toml:"category_prefix"`
}

// Course identifies the LMS course and the acting user.
type Course struct {
	ID     string `toml:"id"`
	UserID string `toml:"user_id"`
}

// Loader contains document assembly settings.
type Loader struct {
	URLTemplate  string   `toml:"url_template"`
	Languages    []string `toml:"languages"`
	ChunkSeconds int      `toml:"chunk_seconds"`
	SpanGaps     bool     `toml:"span_gaps"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the caption loader.
//
// Configuration sections by subsystem:
//   - API: MiVideo gateway host, credentials, and backend selection
//   - Kaltura: direct api_v3 session settings for the alternate backend
//   - Course: course and user identity sent with every request
//   - Loader: URL template, language allow-set, and chunking window
//   - Logging: log format and level
type Config struct {
	API     API     `toml:"api"`
	Kaltura Kaltura `toml:"kaltura"`
	Course  Course  `toml:"course"`
	Loader  Loader  `toml:"loader"`
	Logging Logging `toml:"log"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mivideo/config.toml")
}

// Load locates, parses, and validates a configuration file. Secrets absent
// from the file are taken from the environment.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mivideo.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
