package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Backends a Config may select.
const (
	BackendTcell     = "tcell"
	BackendBubbleTea = "bubbletea"
)

// Config holds the runtime settings of tinywin.
type Config struct {
	ProcessRate          float64
	DrawRate             float64
	ExitKey              string
	Theme                string
	Backend              string
	ResizeDebounceFrames int
	LogFile              string
	LoaderWorkers        int
}

const (
	defaultConfigPath     = "~/.config/tinywin/config.toml"
	defaultLogFile        = "~/.local/state/tinywin/tinywin.log"
	defaultProcessRate    = 30
	defaultDrawRate       = 15
	defaultExitKey        = "q"
	defaultTheme          = "Nightfox"
	defaultBackend        = BackendTcell
	defaultResizeDebounce = 10
	defaultLoaderWorkers  = 4
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ProcessRate:          defaultProcessRate,
		DrawRate:             defaultDrawRate,
		ExitKey:              defaultExitKey,
		Theme:                defaultTheme,
		Backend:              defaultBackend,
		ResizeDebounceFrames: defaultResizeDebounce,
		LogFile:              mustExpand(defaultLogFile),
		LoaderWorkers:        defaultLoaderWorkers,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ProcessRate          float64 `toml:"process_rate"`
		DrawRate             float64 `toml:"draw_rate"`
		ExitKey              string  `toml:"exit_key"`
		Theme                string  `toml:"theme"`
		Backend              string  `toml:"backend"`
		ResizeDebounceFrames int     `toml:"resize_debounce_frames"`
		LogFile              string  `toml:"log_file"`
		LoaderWorkers        int     `toml:"loader_workers"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.ProcessRate > 0 {
		cfg.ProcessRate = raw.ProcessRate
	}
	if raw.DrawRate > 0 {
		cfg.DrawRate = raw.DrawRate
	}
	if raw.ResizeDebounceFrames > 0 {
		cfg.ResizeDebounceFrames = raw.ResizeDebounceFrames
	}
	if raw.LoaderWorkers > 0 {
		cfg.LoaderWorkers = raw.LoaderWorkers
	}
	// The exit key is a key name, so a lone space is meaningful.
	if raw.ExitKey != "" {
		cfg.ExitKey = raw.ExitKey
		if trimmed := strings.TrimSpace(raw.ExitKey); trimmed != "" {
			cfg.ExitKey = trimmed
		}
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if backend := strings.ToLower(strings.TrimSpace(raw.Backend)); backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendTcell, BackendBubbleTea:
	default:
		return fmt.Errorf("invalid backend %q: want %q or %q", c.Backend, BackendTcell, BackendBubbleTea)
	}
	if c.ExitKey == "" {
		return errors.New("exit_key is empty")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// DefaultPath is where Load looks when given no path.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
