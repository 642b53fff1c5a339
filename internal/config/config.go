// Package config loads handmouse settings from a JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ayusman/handmouse/internal/gesture"
)

const (
	// DirName is the per-user data directory under $HOME.
	DirName = ".handmouse"
	// FileName is the config file inside DirName.
	FileName = "config.json"
)

// Environment overrides.
const (
	EnvCamera   = "HANDMOUSE_CAMERA"
	EnvAddr     = "HANDMOUSE_ADDR"
	EnvDB       = "HANDMOUSE_DB"
	EnvLogLevel = "HANDMOUSE_LOG_LEVEL"
)

var logLevels = []string{"disable", "fatal", "error", "warn", "info", "debug"}

// Config holds every tunable of the application.
type Config struct {
	CameraID int    `json:"camera_id"`
	Addr     string `json:"addr"`
	DBPath   string `json:"db_path"`
	LogLevel string `json:"log_level"`

	Headless     bool `json:"headless"`
	Journal      bool `json:"journal"`
	JournalMoves bool `json:"journal_moves"`

	Rotation    float64 `json:"rotation"`
	CropX       int     `json:"crop_x"`
	FrameWidth  int     `json:"frame_width"`
	FrameHeight int     `json:"frame_height"`

	MaxHands      int     `json:"max_hands"`
	MinConfidence float64 `json:"min_confidence"`

	Sensitivity   float64 `json:"sensitivity"`
	VerticalBoost float64 `json:"vertical_boost"`
	Margin        int     `json:"margin"`

	Thresholds gesture.Thresholds `json:"thresholds"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		CameraID:      0,
		Addr:          "127.0.0.1:8080",
		DBPath:        filepath.Join(Dir(), "handmouse.db"),
		LogLevel:      "info",
		Journal:       true,
		Rotation:      90,
		CropX:         140,
		FrameWidth:    640,
		FrameHeight:   480,
		MaxHands:      1,
		MinConfidence: 0.5,
		Sensitivity:   1.0,
		VerticalBoost: 0.2,
		Margin:        20,
		Thresholds:    gesture.DefaultThresholds(),
	}
}

// Dir returns the per-user data directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the location of the config file.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the config file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config as indented JSON, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from HANDMOUSE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvCamera); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCamera, err)
		}
		c.CameraID = id
	}
	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Addr = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate rejects values the frame loop cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.CameraID < 0 {
		errs = append(errs, fmt.Errorf("camera_id must not be negative, got %d", c.CameraID))
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		errs = append(errs, fmt.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight))
	}
	if c.CropX < 0 {
		errs = append(errs, fmt.Errorf("crop_x must not be negative, got %d", c.CropX))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %d", c.Margin))
	} else if 2*c.Margin >= c.FrameWidth || 2*c.Margin >= c.FrameHeight {
		errs = append(errs, fmt.Errorf("margin %d leaves no active area in a %dx%d frame", c.Margin, c.FrameWidth, c.FrameHeight))
	}
	if c.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sensitivity must be positive, got %g", c.Sensitivity))
	}
	if c.MaxHands < 1 {
		errs = append(errs, fmt.Errorf("max_hands must be at least 1, got %d", c.MaxHands))
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("min_confidence must be within [0, 1], got %g", c.MinConfidence))
	}
	if !validLogLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
