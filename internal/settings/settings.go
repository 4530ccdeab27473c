// Package settings stores user preferences for job-finder and resolves the
// runtime configuration the catalog and the terminal UI start with.
package settings

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"job-finder/internal/catalog"
)

const (
	AppDirName       = "job-finder"
	FileName         = "settings.json"
	LogFileName      = "debug.log"
	schemaVersion    = 1
	EnvEndpoint      = "JOBFINDER_ENDPOINT"
	EnvTimeoutSecond = "JOBFINDER_TIMEOUT_SECONDS"
	EnvConfigPath    = "JOBFINDER_CONFIG"

	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultEndpoint       = catalog.DefaultEndpoint
	DefaultTimeoutSeconds = int(catalog.DefaultTimeout / time.Second)
	DefaultTheme          = ThemeAuto
	DefaultDebounceMS     = 300
	DefaultLocale         = "en"

	maxTimeoutSeconds = 300
	maxDebounceMS     = 5000
)

var ErrInvalidSetting = errors.New("invalid setting")

type Settings struct {
	SchemaVersion  int    `json:"schema_version"`
	UpdatedAt      string `json:"updated_at,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	Theme          string `json:"theme,omitempty"`
	DebounceMS     int    `json:"debounce_ms,omitempty"`
	Locale         string `json:"locale,omitempty"`
}

// Runtime is the resolved configuration after defaults and environment
// overrides have been applied.
type Runtime struct {
	Endpoint string
	Timeout  time.Duration
	Theme    string
	Debounce time.Duration
	Locale   language.Tag
}

type UpdateOptions struct {
	ConfigPath string
	Settings   Settings
}

type UpdateResult struct {
	ConfigPath string   `json:"config_path"`
	Settings   Settings `json:"settings"`
}

func Defaults() Settings {
	return Settings{
		SchemaVersion:  schemaVersion,
		Endpoint:       DefaultEndpoint,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Theme:          DefaultTheme,
		DebounceMS:     DefaultDebounceMS,
		Locale:         DefaultLocale,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/job-finder/settings.json, or the platform
// equivalent. JOBFINDER_CONFIG overrides it.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", AppDirName, FileName)
	}
	return filepath.Join(dir, AppDirName, FileName)
}

// LogPath is where the terminal UI writes its debug log.
func LogPath() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, AppDirName, LogFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", AppDirName, LogFileName)
	}
	return filepath.Join(os.TempDir(), AppDirName, LogFileName)
}

func normalizePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return DefaultPath()
	}
	return p
}

// Normalize fills missing or out-of-range values with defaults. Invalid
// values on disk are never fatal.
func Normalize(raw Settings) Settings {
	norm := raw
	norm.SchemaVersion = schemaVersion
	norm.Endpoint = strings.TrimSpace(norm.Endpoint)
	if norm.Endpoint == "" {
		norm.Endpoint = DefaultEndpoint
	}
	if norm.TimeoutSeconds <= 0 || norm.TimeoutSeconds > maxTimeoutSeconds {
		norm.TimeoutSeconds = DefaultTimeoutSeconds
	}
	norm.Theme = normalizeTheme(norm.Theme)
	if norm.DebounceMS <= 0 || norm.DebounceMS > maxDebounceMS {
		norm.DebounceMS = DefaultDebounceMS
	}
	norm.Locale = strings.TrimSpace(norm.Locale)
	if _, err := language.Parse(norm.Locale); norm.Locale == "" || err != nil {
		norm.Locale = DefaultLocale
	}
	return norm
}

func normalizeTheme(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// Validate is stricter than Normalize and is used for values the user
// types on the command line.
func Validate(s Settings) error {
	if s.Endpoint != "" {
		u, err := url.Parse(s.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: endpoint must be an http(s) URL, got %q", ErrInvalidSetting, s.Endpoint)
		}
	}
	if s.TimeoutSeconds < 0 || s.TimeoutSeconds > maxTimeoutSeconds {
		return fmt.Errorf("%w: timeout must be between 1 and %d seconds", ErrInvalidSetting, maxTimeoutSeconds)
	}
	if s.Theme != "" && normalizeTheme(s.Theme) != strings.ToLower(strings.TrimSpace(s.Theme)) {
		return fmt.Errorf("%w: theme must be one of %s, %s, %s", ErrInvalidSetting, ThemeAuto, ThemeLight, ThemeDark)
	}
	if s.DebounceMS < 0 || s.DebounceMS > maxDebounceMS {
		return fmt.Errorf("%w: debounce must be between 1 and %d ms", ErrInvalidSetting, maxDebounceMS)
	}
	if s.Locale != "" {
		if _, err := language.Parse(s.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalidSetting, s.Locale, err)
		}
	}
	return nil
}

// Read returns the stored settings, or defaults when the file is missing.
func Read(configPath string) (Settings, error) {
	path := normalizePath(configPath)
	var s Settings
	if err := readJSON(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Settings{}, err
	}
	return Normalize(s), nil
}

// Ensure reads the settings file, creating it with defaults when missing.
// The bool reports whether the file was created.
func Ensure(configPath string) (Settings, bool, error) {
	path := normalizePath(configPath)
	var s Settings
	err := readJSON(path, &s)
	if err == nil {
		return Normalize(s), false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, false, err
	}
	s = Defaults()
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, s); err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

// Update merges the non-zero fields of opts.Settings into the stored file.
// It fails with ErrLocked while another process holds the update lock.
func Update(opts UpdateOptions) (UpdateResult, error) {
	path := normalizePath(opts.ConfigPath)
	if err := Validate(opts.Settings); err != nil {
		return UpdateResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return UpdateResult{}, fmt.Errorf("create settings directory: %w", err)
	}
	lock, err := acquireUpdateLock(path)
	if err != nil {
		return UpdateResult{}, err
	}
	defer func() { _ = lock.release() }()

	current, _, err := Ensure(path)
	if err != nil {
		return UpdateResult{}, err
	}
	next := merge(current, opts.Settings)
	next = Normalize(next)
	next.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, next); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{ConfigPath: path, Settings: next}, nil
}

func merge(base, patch Settings) Settings {
	out := base
	if strings.TrimSpace(patch.Endpoint) != "" {
		out.Endpoint = patch.Endpoint
	}
	if patch.TimeoutSeconds > 0 {
		out.TimeoutSeconds = patch.TimeoutSeconds
	}
	if strings.TrimSpace(patch.Theme) != "" {
		out.Theme = patch.Theme
	}
	if patch.DebounceMS > 0 {
		out.DebounceMS = patch.DebounceMS
	}
	if strings.TrimSpace(patch.Locale) != "" {
		out.Locale = patch.Locale
	}
	return out
}

// Resolve applies environment overrides to s and converts it into the
// values the rest of the program consumes.
func Resolve(s Settings) Runtime {
	norm := Normalize(s)
	norm.Endpoint = getEnv(EnvEndpoint, norm.Endpoint)
	if secs := getEnvInt(EnvTimeoutSecond, norm.TimeoutSeconds); secs > 0 && secs <= maxTimeoutSeconds {
		norm.TimeoutSeconds = secs
	}
	locale, err := language.Parse(norm.Locale)
	if err != nil {
		locale = catalog.DefaultLocale
	}
	return Runtime{
		Endpoint: norm.Endpoint,
		Timeout:  time.Duration(norm.TimeoutSeconds) * time.Second,
		Theme:    norm.Theme,
		Debounce: time.Duration(norm.DebounceMS) * time.Millisecond,
		Locale:   locale,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
