package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/NotCoffee418/pollucom_reader/pkg/serialport"
	"github.com/sirupsen/logrus"
)

// LoadReaderConfig reads the TOML file at configPath. A missing file is
// created with defaults; if that is not possible the defaults are used anyway.
func LoadReaderConfig(configPath string, log logrus.FieldLogger) (*ReaderConfig, error) {
	// ENOTDIR: a parent of configPath is a regular file
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		cfg := DefaultReaderConfig()
		if err := writeDefault(configPath, cfg); err != nil {
			log.WithError(err).Warnf("Could not create default config at %s, using defaults", configPath)
		}
		return cfg, nil
	}

	// Keys missing from the file keep their default value
	cfg := DefaultReaderConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

func (c *ReaderConfig) Validate() error {
	if c.SerialDevice == "" {
		return fmt.Errorf("serial_device must not be empty")
	}
	if c.Baudrate == 0 {
		return fmt.Errorf("baudrate must be positive")
	}
	timeout := time.Duration(c.ReadTimeoutMs) * time.Millisecond
	if timeout < serialport.MinReadTimeout || timeout > serialport.MaxReadTimeout {
		return fmt.Errorf("read_timeout_ms must be between %d and %d, got %d",
			serialport.MinReadTimeout.Milliseconds(), serialport.MaxReadTimeout.Milliseconds(), c.ReadTimeoutMs)
	}
	return nil
}

func writeDefault(configPath string, cfg *ReaderConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	cfgFile, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer cfgFile.Close()
	return toml.NewEncoder(cfgFile).Encode(cfg)
}
