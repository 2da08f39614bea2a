// Package config loads the YAML configuration shared by the CLI and the
// HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-brochure/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxAddrLength  = 256
	MaxPathLength  = 4096
	MaxNameLength  = 64
	MaxDSNLength   = 2048
	MaxKeyLength   = 128
	MaxModelLength = 100
)

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultExportTimeout   = 30 * time.Second
	DefaultCacheKey        = "brochureBuilderContent"
	DefaultModel           = "gemini-2.0-flash"
	DefaultMaxDimension    = 1600
	DefaultJPEGQuality     = 82
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidValue, s)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all configuration for the editor service and the CLI.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Cache   CacheConfig   `yaml:"cache"`
	Assets  AssetsConfig  `yaml:"assets"`
	AI      AIConfig      `yaml:"ai"`
	Images  ImagesConfig  `yaml:"images"`
	Preview PreviewConfig `yaml:"preview"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"readTimeout"`
	WriteTimeout    Duration `yaml:"writeTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// ExportConfig defines PDF generation.
type ExportConfig struct {
	Backend    string   `yaml:"backend"` // "rod" (default) or "chromedp"
	Timeout    Duration `yaml:"timeout"`
	Workers    int      `yaml:"workers"`    // 0 = auto
	BrowserBin string   `yaml:"browserBin"` // empty = download or detect
}

// CacheConfig defines where the working brochure is persisted.
type CacheConfig struct {
	Driver string `yaml:"driver"` // "file" (default), "memory", "postgres"
	Dir    string `yaml:"dir"`
	DSN    string `yaml:"dsn"`
	Key    string `yaml:"key"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"` // empty = embedded assets
	Style       string `yaml:"style"`
	TemplateSet string `yaml:"templateSet"`
}

// AIConfig defines the suggestion service. An empty key disables it.
type AIConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"apiKey"`
}

// ImagesConfig defines upload optimization.
type ImagesConfig struct {
	MaxDimension int `yaml:"maxDimension"`
	JPEGQuality  int `yaml:"jpegQuality"`
}

// PreviewConfig defines editor preview defaults.
type PreviewConfig struct {
	Mode string `yaml:"mode"` // "portrait" (default) or "landscape"
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // empty = LOG_LEVEL or info
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     Duration(DefaultReadTimeout),
			WriteTimeout:    Duration(DefaultWriteTimeout),
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
		Export: ExportConfig{Backend: "rod", Timeout: Duration(DefaultExportTimeout)},
		Cache:  CacheConfig{Driver: "file", Key: DefaultCacheKey},
		AI:     AIConfig{Model: DefaultModel},
		Images: ImagesConfig{MaxDimension: DefaultMaxDimension, JPEGQuality: DefaultJPEGQuality},
		Preview: PreviewConfig{
			Mode: "portrait",
		},
	}
}

// Validate checks lengths and enumerations. Called by LoadConfig, and
// available to callers that build a Config by hand.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"export.browserBin", c.Export.BrowserBin, MaxPathLength},
		{"cache.dir", c.Cache.Dir, MaxPathLength},
		{"cache.dsn", c.Cache.DSN, MaxDSNLength},
		{"cache.key", c.Cache.Key, MaxKeyLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxNameLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"ai.model", c.AI.Model, MaxModelLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateOneOf("export.backend", c.Export.Backend, "rod", "chromedp"); err != nil {
		return err
	}
	if err := validateOneOf("cache.driver", c.Cache.Driver, "file", "memory", "postgres"); err != nil {
		return err
	}
	if strings.EqualFold(c.Cache.Driver, "postgres") && strings.TrimSpace(c.Cache.DSN) == "" {
		return fmt.Errorf("%w: cache.dsn: required for the postgres driver", ErrInvalidValue)
	}
	if err := validateOneOf("preview.mode", c.Preview.Mode, "portrait", "landscape"); err != nil {
		return err
	}
	if err := validateOneOf("log.level", c.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return err
	}

	if c.Export.Workers < 0 {
		return fmt.Errorf("%w: export.workers: must be >= 0, got %d", ErrInvalidValue, c.Export.Workers)
	}
	if c.Export.Timeout < 0 || c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidValue)
	}
	if c.Images.MaxDimension < 0 {
		return fmt.Errorf("%w: images.maxDimension: must be >= 0, got %d", ErrInvalidValue, c.Images.MaxDimension)
	}
	if c.Images.JPEGQuality < 0 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("%w: images.jpegQuality: must be between 0 and 100, got %d", ErrInvalidValue, c.Images.JPEGQuality)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf accepts empty values; defaults fill them later.
func validateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator it is read as a file path,
// otherwise it is searched in the current directory and then in the user
// config directory. Keys absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath tries name.yaml and name.yml in the current directory,
// then in the user config directory under go-brochure/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			p := filepath.Join(dir, "go-brochure", name+ext)
			if fileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
