package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/handiism/bing-wallpaper-downloader/internal/bing"
	"github.com/handiism/bing-wallpaper-downloader/internal/http"
	"github.com/handiism/bing-wallpaper-downloader/internal/tagging"
)

// ErrInvalidSettings is returned (wrapped) by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Provider settings
	Endpoint   string `yaml:"endpoint"`
	Resolution string `yaml:"resolution"`
	Format     string `yaml:"format"`
	Market     string `yaml:"market"`

	// Transfer settings
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	ChunkSize int           `yaml:"chunk_size"`

	// OutputDir is where images are written. Empty means the directory
	// containing the running executable.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Tagger is one of exif, exiftool, none.
	Tagger string `yaml:"tagger"`

	LogLevel string `yaml:"log_level"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	q := bing.DefaultQuery()
	return &Settings{
		Endpoint:   bing.DefaultEndpoint,
		Resolution: q.Resolution,
		Format:     q.Format,
		Market:     q.Market,

		UserAgent: http.DefaultUserAgent,
		Timeout:   http.DefaultTimeout,
		ChunkSize: http.DefaultChunkSize,

		Tagger:   string(tagging.KindEXIF),
		LogLevel: "info",
	}
}

// Load reads settings from a YAML file on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, settings.Validate()
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings for values the pipeline cannot use.
func (s *Settings) Validate() error {
	if s.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidSettings)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidSettings, s.Timeout)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidSettings, s.ChunkSize)
	}
	switch tagging.Kind(s.Tagger) {
	case tagging.KindEXIF, tagging.KindExiftool, tagging.KindNone:
	default:
		return fmt.Errorf("%w: unknown tagger %q", ErrInvalidSettings, s.Tagger)
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// ToQuery converts settings to the resolver's query parameters.
func (s *Settings) ToQuery() bing.Query {
	return bing.Query{
		Resolution: s.Resolution,
		Format:     s.Format,
		Market:     s.Market,
	}
}

// ResolveOutputDir returns OutputDir, or the program directory when unset.
func (s *Settings) ResolveOutputDir() (string, error) {
	if s.OutputDir != "" {
		return filepath.Abs(s.OutputDir)
	}
	return ProgramDir()
}

// ProgramDir returns the absolute directory containing the running
// executable, with symlinks resolved.
func ProgramDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return filepath.Dir(exe), nil
}
