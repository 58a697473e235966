// Package config loads and stores softbreak settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jcorbin/softbreak/internal/sbutil"
)

const (
	envConfigPath     = "SOFTBREAK_CONFIG"
	defaultConfigName = ".softbreak.toml"

	// DefaultCol is the column setting used when none is configured.
	DefaultCol = "80"

	// MinCol is the smallest usable column limit.
	MinCol = 2
)

// Settings is the persisted configuration.
// Col is kept as the raw string the user entered; see Column.
type Settings struct {
	Col string `toml:"col"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{Col: DefaultCol}
}

// Column returns the effective column limit.
func (s Settings) Column() int { return ParseColumn(s.Col) }

// ParseColumn reads a column limit from its leading integer, ignoring
// surrounding whitespace and any trailing text. Values that are missing,
// non-numeric, or less than MinCol become the default. Values too large for
// an int become math.MaxInt, so that nothing is wrapped.
func ParseColumn(s string) int {
	def, _ := strconv.Atoi(DefaultCol)
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
		return math.MaxInt
	}
	if err != nil || n < MinCol {
		return def
	}
	return n
}

// Load reads settings from a TOML file. Keys missing from the file keep
// their default values.
func Load(path string) (Settings, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var raw fileSettings
	if err := toml.Unmarshal(b, &raw); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if raw.Col != nil {
		cfg.Col = colString(raw.Col)
	}
	return cfg, nil
}

// fileSettings is Settings as decoded, before values of the wrong TOML
// type are normalized.
type fileSettings struct {
	Col any `toml:"col"`
}

// colString converts a decoded col value to its setting string: numbers are
// formatted, anything else that is not a string becomes "" and so the
// default.
func colString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// LoadOrDefault is Load, except that a path of "" or a file that does not
// exist yields the defaults.
func LoadOrDefault(path string) (Settings, error) {
	if path == "" {
		return Defaults(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Save writes settings to a TOML file, creating its directory if needed.
func Save(path string, cfg Settings) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolvePath picks the config location: the flag value, then the
// SOFTBREAK_CONFIG environment variable, then the nearest .softbreak.toml
// in the working directory or its parents. Returns "" when none applies.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return expandPath(flagPath)
	}
	if env := os.Getenv(envConfigPath); env != "" {
		return expandPath(env)
	}
	return sbutil.FindWDFile(defaultConfigName)
}

// SavePath is like ResolvePath, but falls back to .softbreak.toml in the
// working directory so that there is always somewhere to save.
func SavePath(flagPath string) (string, error) {
	path, err := ResolvePath(flagPath)
	if err != nil || path != "" {
		return path, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, defaultConfigName), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
