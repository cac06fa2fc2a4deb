package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ChromeBin       string    `toml:"chrome_bin"`
	ProfileDir      string    `toml:"profile_dir"`
	URL             string    `toml:"url"`
	Headless        bool      `toml:"headless"`
	WaitSeconds     int       `toml:"wait_seconds"`
	WaitStepSeconds int       `toml:"wait_step_seconds"`
	LogLevel        string    `toml:"log_level"`
	Selectors       Selectors `toml:"selectors"`

	// Path is the config file that was read, empty if none existed.
	Path string `toml:"-"`
}

// Selectors locate the parts of the chat list page. WhatsApp Web renames its
// generated class names every so often; override them in config.toml.
type Selectors struct {
	ChatPane       string `toml:"chat_pane"`
	SearchBox      string `toml:"search_box"` // xpath
	PreviewRegion  string `toml:"preview_region"`
	NameRegion     string `toml:"name_region"`
	Emoji          string `toml:"emoji"`
	EmojiAttribute string `toml:"emoji_attribute"`
}

func Default() *Config {
	return &Config{
		URL:             "https://web.whatsapp.com/",
		WaitSeconds:     20,
		WaitStepSeconds: 10,
		LogLevel:        "info",
		Selectors: Selectors{
			ChatPane:       "#pane-side",
			SearchBox:      `//*[@id="side"]/div[1]/div/label/div/div[2]`,
			PreviewRegion:  "._7W_3c",
			NameRegion:     "._1c_mC",
			Emoji:          ".emoji",
			EmojiAttribute: "alt",
		},
	}
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "whatsoup", "config.toml"), home)
}

// LoadFile reads cfgPath over the defaults if it exists, then applies
// environment overrides.
func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	cfg.applyEnv()

	// expand ~ in paths
	cfg.ChromeBin = expandHome(cfg.ChromeBin, home)
	cfg.ProfileDir = expandHome(cfg.ProfileDir, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	// DRIVER_PATH is kept for setups written for the chromedriver-based tool.
	if v := os.Getenv("DRIVER_PATH"); v != "" {
		c.ChromeBin = v
	}
	if v := os.Getenv("CHROME_BIN"); v != "" {
		c.ChromeBin = v
	}
	if v := os.Getenv("CHROME_PROFILE"); v != "" {
		c.ProfileDir = v
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url is empty"))
	}
	if c.WaitSeconds <= 0 {
		errs = append(errs, fmt.Errorf("wait_seconds must be positive, got %d", c.WaitSeconds))
	}
	if c.WaitStepSeconds <= 0 {
		errs = append(errs, fmt.Errorf("wait_step_seconds must be positive, got %d", c.WaitStepSeconds))
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	s := c.Selectors
	for name, v := range map[string]string{
		"chat_pane":       s.ChatPane,
		"search_box":      s.SearchBox,
		"preview_region":  s.PreviewRegion,
		"emoji":           s.Emoji,
		"emoji_attribute": s.EmojiAttribute,
	} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("selectors.%s is empty", name))
		}
	}
	if s.NameRegion != "" && s.NameRegion == s.PreviewRegion {
		errs = append(errs, errors.New("selectors.preview_region must differ from selectors.name_region"))
	}
	return errors.Join(errs...)
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
