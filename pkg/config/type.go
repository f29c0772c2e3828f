package config

import (
	"time"

	"github.com/NotCoffee418/pollucom_reader/pkg/serialport"
)

type ReaderConfig struct {
	SerialDevice  string `toml:"serial_device"`
	Baudrate      uint   `toml:"baudrate"`
	ReadTimeoutMs uint   `toml:"read_timeout_ms"`
	Verbose       bool   `toml:"verbose"`
}

func DefaultReaderConfig() *ReaderConfig {
	s := serialport.DefaultSettings()
	return &ReaderConfig{
		SerialDevice:  s.Device,
		Baudrate:      s.Baudrate,
		ReadTimeoutMs: uint(s.ReadTimeout.Milliseconds()),
	}
}

func (c *ReaderConfig) SerialSettings() serialport.Settings {
	return serialport.Settings{
		Device:      c.SerialDevice,
		Baudrate:    c.Baudrate,
		ReadTimeout: time.Duration(c.ReadTimeoutMs) * time.Millisecond,
	}
}
