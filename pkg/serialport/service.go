// Package serialport opens the IR head's serial device with the line
// settings the meter expects.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jacobsa/go-serial/serial"
)

var openPort = serial.Open

// Open opens and configures the device. Reads return after ReadTimeout
// without data instead of blocking.
func Open(s Settings) (io.ReadWriteCloser, error) {
	if s.Device == "" {
		return nil, errors.Join(ErrOpenFailed, fmt.Errorf("no serial device configured"))
	}
	if s.Baudrate == 0 {
		return nil, errors.Join(ErrConfigureFailed, fmt.Errorf("baudrate must be positive"))
	}

	port, err := openPort(s.openOptions())
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, errors.Join(ErrOpenFailed, fmt.Errorf("%s: %w", s.Device, err))
		}
		return nil, errors.Join(ErrConfigureFailed, fmt.Errorf("%s: %w", s.Device, err))
	}
	return port, nil
}

func (s Settings) openOptions() serial.OpenOptions {
	return serial.OpenOptions{
		PortName:              s.Device,
		BaudRate:              s.Baudrate,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_EVEN,
		RTSCTSFlowControl:     false,
		InterCharacterTimeout: uint(s.ReadTimeout.Milliseconds()),
		MinimumReadSize:       0,
	}
}
