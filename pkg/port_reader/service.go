package port_reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/NotCoffee418/pollucom_reader/pkg/config"
	"github.com/NotCoffee418/pollucom_reader/pkg/decoder"
	"github.com/NotCoffee418/pollucom_reader/pkg/handshake"
	"github.com/NotCoffee418/pollucom_reader/pkg/serialport"
	"github.com/NotCoffee418/pollucom_reader/pkg/types"
	"github.com/sirupsen/logrus"
)

// Initialize a reader for a single session against the configured meter.
func NewMeterReader(cfg *config.ReaderConfig, log logrus.FieldLogger, dumpOut io.Writer) *MeterReader {
	return &MeterReader{
		settings: cfg.SerialSettings(),
		verbose:  cfg.Verbose,
		log:      log,
		dumpOut:  dumpOut,
		openPort: serialport.Open,
	}
}

// ReadOnce opens the port, runs the handshake and decodes the reply.
// Returns handshake.ErrNoData when the meter did not acknowledge.
// The port is closed before ReadOnce returns.
func (m *MeterReader) ReadOnce() (*types.HeatReading, error) {
	m.debug("Opening device %s", m.settings.Device)
	port, err := m.openPort(m.settings)
	if err != nil {
		return nil, err
	}
	m.debug("Device open")

	driver := handshake.NewDriver(handshake.Options{
		Verbose: m.verbose,
		Logger:  m.log,
		Sleep:   m.sleep,
	})
	result, err := driver.Run(port)
	if err != nil {
		return nil, err
	}
	if !result.Acknowledged {
		return nil, errors.Join(
			handshake.ErrNoData,
			fmt.Errorf("init reply was % x", result.InitResponse),
		)
	}

	if m.verbose && m.dumpOut != nil {
		m.debug("Read %d bytes", len(result.Response))
		if err := HexDump(m.dumpOut, result.Response); err != nil {
			m.log.WithError(err).Warn("Failed to write hex dump")
		}
	}

	reading, err := decoder.Decode(result.Response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %d byte reply: %w", len(result.Response), err)
	}
	return reading, nil
}

// HexDump writes buf as lowercase hex pairs, ten per line.
func HexDump(w io.Writer, buf []byte) error {
	if _, err := fmt.Fprintln(w, "Hex-Dump:"); err != nil {
		return err
	}
	for i, b := range buf {
		sep := " "
		if (i+1)%10 == 0 || i == len(buf)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%02x%s", b, sep); err != nil {
			return err
		}
	}
	return nil
}

func (m *MeterReader) debug(format string, args ...any) {
	if m.verbose {
		m.log.Debugf(format, args...)
	}
}
