package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/config"
	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/store"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"browser_bin"`
}

type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	ConfigLoaded bool   `json:"config_loaded"`
	CacheDriver  string `json:"cache_driver"`
	CacheOK      bool   `json:"cache_ok"`
	Assets       string `json:"assets"`
	AssetsOK     bool   `json:"assets_ok"`
}

// doctorProbes are the side-effecting lookups doctor performs.
type doctorProbes struct {
	lookPath      func() (string, bool)
	chromeVersion func(path string) (string, error)
	tempDir       func() string
}

func defaultProbes() doctorProbes {
	return doctorProbes{
		lookPath:      launcher.LookPath,
		chromeVersion: chromeVersion,
		tempDir:       os.TempDir,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when ready (warnings included), 1 when errors were found.
func runDoctorCmd(args []string, env *Environment) int {
	var jsonOutput bool
	var configPath string
	fs := newFlagSet("doctor", env.Stderr)
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	fs.StringVarP(&configPath, "config", "c", "", "config file name or path")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(env, configPath, defaultProbes())

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment, configPath string, probes doctorProbes) *doctorResult {
	e := loadEnvConfig(env.Getenv)
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: e.BrowserBin,
		},
	}
	if result.Env.BrowserBin == "" {
		result.Env.BrowserBin = env.Getenv("ROD_BROWSER_BIN")
	}

	checkChrome(result, probes)
	checkEnvironment(result, env.Getenv)
	checkSystem(result, probes)
	checkSetup(result, env, configPath)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

func checkChrome(result *doctorResult, probes doctorProbes) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = probes.lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set BROCHURE_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if v, err := probes.chromeVersion(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
	}
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

func chromeVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// #nosec G204 -- path is the located browser binary
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = detectContainer(getenv)

	for _, v := range ciVars {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// detectContainer returns whether a container was detected and which
// signal gave it away.
func detectContainer(getenv func(string) string) (bool, string) {
	if getenv("BROCHURE_CONTAINER") == "1" {
		return true, "BROCHURE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func checkSystem(result *doctorResult, probes doctorProbes) {
	tmpDir := probes.tempDir()
	f, err := os.CreateTemp(tmpDir, "brochure-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

// checkSetup loads the effective configuration and opens the cache it
// names. A postgres cache is only checked for a DSN; doctor does not dial.
func checkSetup(result *doctorResult, env *Environment, configPath string) {
	cfg, err := loadConfig(configPath, env)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Configuration: %v", err))
		return
	}
	result.System.ConfigLoaded = true
	result.System.CacheDriver = cfg.Cache.Driver
	checkAssets(result, cfg.Assets)

	switch store.Driver(strings.ToLower(cfg.Cache.Driver)) {
	case store.DriverPostgres:
		result.System.CacheOK = cfg.Cache.DSN != ""
	case store.DriverMemory:
		result.System.CacheOK = true
		result.Warnings = append(result.Warnings, "Memory cache: edits are lost when the server stops")
	default:
		c, err := store.NewFileCache(cfg.Cache.Dir, cacheKey(cfg.Cache.Key))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cache: %v", err))
			return
		}
		_ = c.Close()
		result.System.CacheOK = true
		if dir := filepath.Dir(c.Path()); dir != "" {
			result.System.CacheDriver = "file (" + dir + ")"
		}
	}
}

// checkAssets loads the configured template set and named style the same
// way the converter does, custom directory first.
func checkAssets(result *doctorResult, a config.AssetsConfig) {
	resolver, err := assets.NewAssetResolver(a.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	result.System.Assets = "embedded"
	if resolver.HasCustomLoader() {
		result.System.Assets = "custom (" + a.BasePath + ")"
	}

	setName := a.TemplateSet
	if setName == "" {
		setName = assets.DefaultTemplateSetName
	}
	if _, err := resolver.LoadTemplateSet(setName); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}

	style := a.Style
	if style == "" {
		style = assets.DefaultStyleName
	}
	if !fileutil.IsFilePath(style) && !fileutil.IsCSS(style) {
		if _, err := resolver.LoadStyle(style); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
			return
		}
	}
	result.System.AssetsOK = true
}

func cacheKey(key string) string {
	if key == "" {
		return store.DefaultKey
	}
	return key
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "brochure doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	printCheck(w, r.System.TempWritable, "Temp directory: writable", "Temp directory: not writable")
	printCheck(w, r.System.ConfigLoaded, "Configuration: valid", "Configuration: invalid")
	if r.System.ConfigLoaded {
		printCheck(w, r.System.CacheOK, "Cache: "+r.System.CacheDriver, "Cache: unusable")
		printCheck(w, r.System.AssetsOK, "Assets: "+r.System.Assets, "Assets: unusable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, okMsg, errMsg string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s\n", okMsg)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s\n", errMsg)
	}
}
