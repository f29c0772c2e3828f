package serialport

import (
	"fmt"
	"time"
)

var (
	ErrOpenFailed      = fmt.Errorf("failed to open serial port")
	ErrConfigureFailed = fmt.Errorf("failed to configure serial port")
)

// Settings of the optical head's serial line. The PolluCom E talks
// 2400 baud, 8 data bits, even parity, 1 stop bit, no flow control.
type Settings struct {
	Device      string
	Baudrate    uint
	ReadTimeout time.Duration
}

const (
	DefaultDevice      = "/dev/ttyUSB0"
	DefaultBaudrate    = 2400
	DefaultReadTimeout = 500 * time.Millisecond

	// The line discipline counts the read timeout in deciseconds (1..255)
	// when reads are non-blocking.
	MinReadTimeout = 100 * time.Millisecond
	MaxReadTimeout = 25500 * time.Millisecond
)

func DefaultSettings() Settings {
	return Settings{
		Device:      DefaultDevice,
		Baudrate:    DefaultBaudrate,
		ReadTimeout: DefaultReadTimeout,
	}
}
