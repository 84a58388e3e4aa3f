// Package config loads mentorlink settings from a YAML file and MENTORLINK_* environment
// variables. Priority: env > file > env-default tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API    APIConfig    `yaml:"api"`
	TUI    TUIConfig    `yaml:"tui"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"MENTORLINK_API_URL" env-default:"http://localhost:8000/api"`
	// Timeout of 0 disables the client-side deadline.
	Timeout time.Duration `yaml:"timeout" env:"MENTORLINK_API_TIMEOUT" env-default:"0s"`
}

type TUIConfig struct {
	NotifyTimeout time.Duration `yaml:"notify_timeout" env:"MENTORLINK_NOTIFY_TIMEOUT" env-default:"2500ms"`
	// Locale drives collation of the mentor directory (BCP 47, e.g. "ko", "en").
	Locale string `yaml:"locale" env:"MENTORLINK_LOCALE" env-default:"ko"`
	Glyphs string `yaml:"glyphs" env:"MENTORLINK_GLYPHS" env-default:"unicode"`
}

type LogConfig struct {
	// DebugPath enables file logging; the TUI owns stdout/stderr.
	DebugPath string `yaml:"debug_path" env:"MENTORLINK_DEBUG_LOG"`
	Level     string `yaml:"level" env:"MENTORLINK_LOG_LEVEL" env-default:"debug"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"MENTORLINK_SERVER_ADDR" env-default:"127.0.0.1:8000"`
	DBPath       string        `yaml:"db_path" env:"MENTORLINK_SERVER_DB" env-default:"mentorlink.db"`
	ImageDir     string        `yaml:"image_dir" env:"MENTORLINK_SERVER_IMAGE_DIR" env-default:"images"`
	JWTSecret    string        `yaml:"jwt_secret" env:"MENTORLINK_JWT_SECRET" env-default:"mentorlink-dev-secret"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"MENTORLINK_TOKEN_TTL" env-default:"1h"`
	PasswordCost int           `yaml:"password_cost" env:"MENTORLINK_PASSWORD_COST" env-default:"10"`
	Seed         bool          `yaml:"seed" env:"MENTORLINK_SERVER_SEED"`
}

func ConfigDir() (string, error) {
	// Lets tests keep away from ~/.mentorlink.
	if v := strings.TrimSpace(os.Getenv("MENTORLINK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mentorlink"), nil
}

// Path returns the config file location and whether it was set explicitly via MENTORLINK_CONFIG.
func Path() (string, bool, error) {
	if v := strings.TrimSpace(os.Getenv("MENTORLINK_CONFIG")); v != "" {
		return v, true, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, "config.yaml"), false, nil
}

// Load reads the config file when present. A missing default file is not an error; a missing
// explicit one is.
func Load() (*Config, error) {
	path, explicit, err := Path()
	if err != nil {
		return nil, fmt.Errorf("config: locate: %w", err)
	}
	return LoadFile(path, explicit)
}

func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, os.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.TUI.NotifyTimeout <= 0 {
		errs = append(errs, errors.New("tui.notify_timeout must be positive"))
	}
	switch c.TUI.Glyphs {
	case "unicode", "ascii":
	default:
		errs = append(errs, fmt.Errorf("tui.glyphs: unknown glyph set %q", c.TUI.Glyphs))
	}
	if c.Server.PasswordCost < 4 || c.Server.PasswordCost > 31 {
		errs = append(errs, fmt.Errorf("server.password_cost must be in [4, 31], got %d", c.Server.PasswordCost))
	}
	if c.Server.TokenTTL <= 0 {
		errs = append(errs, errors.New("server.token_ttl must be positive"))
	}
	return errors.Join(errs...)
}
