package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-brochure/internal/config"
)

// envConfig holds BROCHURE_* overrides. They beat the config file and lose
// to command-line flags.
type envConfig struct {
	ConfigPath  string        // BROCHURE_CONFIG
	Addr        string        // BROCHURE_ADDR
	Backend     string        // BROCHURE_BACKEND
	Timeout     time.Duration // BROCHURE_TIMEOUT
	Workers     int           // BROCHURE_WORKERS
	BrowserBin  string        // BROCHURE_BROWSER_BIN
	CacheDriver string        // BROCHURE_CACHE_DRIVER
	CacheDir    string        // BROCHURE_CACHE_DIR
	CacheDSN    string        // BROCHURE_CACHE_DSN
	CacheKey    string        // BROCHURE_CACHE_KEY
	AssetPath   string        // BROCHURE_ASSET_PATH
	Style       string        // BROCHURE_STYLE
	TemplateSet string        // BROCHURE_TEMPLATE_SET
	AIModel     string        // BROCHURE_AI_MODEL
	AIAPIKey    string        // BROCHURE_AI_API_KEY, else GEMINI_API_KEY
	PreviewMode string        // BROCHURE_PREVIEW_MODE
	LogLevel    string        // BROCHURE_LOG_LEVEL
}

// knownEnvVars lists valid BROCHURE_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"BROCHURE_CONFIG":       true,
	"BROCHURE_ADDR":         true,
	"BROCHURE_BACKEND":      true,
	"BROCHURE_TIMEOUT":      true,
	"BROCHURE_WORKERS":      true,
	"BROCHURE_BROWSER_BIN":  true,
	"BROCHURE_CACHE_DRIVER": true,
	"BROCHURE_CACHE_DIR":    true,
	"BROCHURE_CACHE_DSN":    true,
	"BROCHURE_CACHE_KEY":    true,
	"BROCHURE_ASSET_PATH":   true,
	"BROCHURE_STYLE":        true,
	"BROCHURE_TEMPLATE_SET": true,
	"BROCHURE_AI_MODEL":     true,
	"BROCHURE_AI_API_KEY":   true,
	"BROCHURE_PREVIEW_MODE": true,
	"BROCHURE_LOG_LEVEL":    true,
}

// loadEnvConfig reads BROCHURE_* variables through getenv. Unparseable
// numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("BROCHURE_CONFIG"),
		Addr:        getenv("BROCHURE_ADDR"),
		Backend:     getenv("BROCHURE_BACKEND"),
		BrowserBin:  getenv("BROCHURE_BROWSER_BIN"),
		CacheDriver: getenv("BROCHURE_CACHE_DRIVER"),
		CacheDir:    getenv("BROCHURE_CACHE_DIR"),
		CacheDSN:    getenv("BROCHURE_CACHE_DSN"),
		CacheKey:    getenv("BROCHURE_CACHE_KEY"),
		AssetPath:   getenv("BROCHURE_ASSET_PATH"),
		Style:       getenv("BROCHURE_STYLE"),
		TemplateSet: getenv("BROCHURE_TEMPLATE_SET"),
		AIModel:     getenv("BROCHURE_AI_MODEL"),
		AIAPIKey:    getenv("BROCHURE_AI_API_KEY"),
		PreviewMode: getenv("BROCHURE_PREVIEW_MODE"),
		LogLevel:    getenv("BROCHURE_LOG_LEVEL"),
	}
	if cfg.AIAPIKey == "" {
		cfg.AIAPIKey = getenv("GEMINI_API_KEY")
	}

	if timeout := getenv("BROCHURE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := getenv("BROCHURE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars reports unrecognized BROCHURE_* variables.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, "BROCHURE_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overwrites cfg with every variable that is set.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	setString(&cfg.Server.Addr, e.Addr)
	setString(&cfg.Export.Backend, e.Backend)
	setString(&cfg.Export.BrowserBin, e.BrowserBin)
	setString(&cfg.Cache.Driver, e.CacheDriver)
	setString(&cfg.Cache.Dir, e.CacheDir)
	setString(&cfg.Cache.DSN, e.CacheDSN)
	setString(&cfg.Cache.Key, e.CacheKey)
	setString(&cfg.Assets.BasePath, e.AssetPath)
	setString(&cfg.Assets.Style, e.Style)
	setString(&cfg.Assets.TemplateSet, e.TemplateSet)
	setString(&cfg.AI.Model, e.AIModel)
	setString(&cfg.AI.APIKey, e.AIAPIKey)
	setString(&cfg.Preview.Mode, e.PreviewMode)
	setString(&cfg.Log.Level, e.LogLevel)

	if e.Timeout > 0 {
		cfg.Export.Timeout = config.Duration(e.Timeout)
	}
	if e.Workers > 0 {
		cfg.Export.Workers = e.Workers
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// loadConfig resolves the configuration: defaults, then the config file
// (flag, else BROCHURE_CONFIG), then BROCHURE_* variables.
// Command flags are merged by the caller.
func loadConfig(path string, env *Environment) (*config.Config, error) {
	e := loadEnvConfig(env.Getenv)
	if path == "" {
		path = e.ConfigPath
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(e, cfg)
	return cfg, nil
}
