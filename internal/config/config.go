/*
Copyright 2024 Tim St. Pierre
Configuration file for panelctl
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tstpierre-tc/panel"
)

const (
	appName    = "panelctl"
	configFile = "config.yaml"
)

// Config selects the bus and tunes how frames are written.
//
// Example:
//
//	bus: /dev/i2c-1
//	address: 0x20
//	retries: 2
//	retry_delay: 10ms
//	frame_delay: 5ms
//	verify_frames: true
//	log_level: info
type Config struct {
	Bus          string        `yaml:"bus"`
	Address      uint16        `yaml:"address"`
	Retries      int           `yaml:"retries"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
	FrameDelay   time.Duration `yaml:"frame_delay"`
	VerifyFrames bool          `yaml:"verify_frames"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
// An empty Bus lets the host pick its first I²C bus.
func Default() *Config {
	return &Config{
		Address:      panel.DefaultOpts.I2CAddr,
		Retries:      panel.DefaultOpts.Retries,
		RetryDelay:   panel.DefaultOpts.RetryDelay,
		FrameDelay:   panel.DefaultOpts.FrameDelay,
		VerifyFrames: panel.DefaultOpts.VerifyFrames,
		LogLevel:     log.InfoLevel.String(),
	}
}

// DefaultPath returns the per-user config file location,
// e.g. $XDG_CONFIG_HOME/panelctl/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, appName, configFile), nil
}

// Load reads path on top of the defaults. An empty path tries DefaultPath
// and falls back to the defaults if that file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Address < 0x08 || c.Address > 0x77 {
		return fmt.Errorf("address 0x%x is not a 7-bit device address", c.Address)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RetryDelay < 0 || c.FrameDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// PanelOpts converts the config into driver options.
func (c *Config) PanelOpts() *panel.Opts {
	return &panel.Opts{
		I2CAddr:      c.Address,
		Retries:      c.Retries,
		RetryDelay:   c.RetryDelay,
		FrameDelay:   c.FrameDelay,
		VerifyFrames: c.VerifyFrames,
	}
}
