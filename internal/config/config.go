package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/ankimark/internal/anki"
)

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Input      string        `toml:"input"`       // Markdown document to import
	Deck       string        `toml:"deck"`        // Root deck; sections become sub-decks
	SkipLines  int           `toml:"skip_lines"`  // Front-matter lines ignored by the parser
	ImageDir   string        `toml:"image_dir"`   // Where image references resolve to
	Model      string        `toml:"model"`       // Anki note type
	Endpoint   string        `toml:"endpoint"`    // AnkiConnect URL
	APIVersion int           `toml:"api_version"` // AnkiConnect API version
	Timeout    time.Duration `toml:"timeout"`     // Per-request timeout
	Tags       []string      `toml:"tags"`        // Tags added to every note
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Input:      "Cryptography.md",
		Deck:       "WGU_D334_Intro_to_Cryptography",
		SkipLines:  68,
		ImageDir:   "img",
		Model:      "Basic",
		Endpoint:   anki.DefaultEndpoint,
		APIVersion: anki.DefaultVersion,
		Timeout:    30 * time.Second,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "ankimark", "config.toml")
}

// LoadConfig loads the config file at path. An empty path means the default
// location, where a default config is created if none exists yet.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return createDefaultConfig(path)
		}
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// WriteDefaultConfig writes the default config to path unless it exists
func WriteDefaultConfig(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); err == nil {
		config, err := LoadConfig(path)
		return config, false, err
	}

	config, err := createDefaultConfig(path)
	return config, err == nil, err
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	return config, nil
}

// Validate checks the fields the importer cannot run without
func (c *Config) Validate() error {
	switch {
	case c.Deck == "":
		return fmt.Errorf("%w: deck is required", ErrInvalidConfig)
	case c.SkipLines < 0:
		return fmt.Errorf("%w: skip_lines must not be negative (got %d)", ErrInvalidConfig, c.SkipLines)
	case c.Endpoint == "":
		return fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	case c.Model == "":
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	return nil
}

// ResolveImageDir returns ImageDir as an absolute path, relative paths being
// taken from the working directory
func (c *Config) ResolveImageDir() (string, error) {
	if filepath.IsAbs(c.ImageDir) {
		return c.ImageDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error resolving image directory: %w", err)
	}
	return filepath.Join(cwd, c.ImageDir), nil
}
