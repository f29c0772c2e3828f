package port_reader

import (
	"io"
	"time"

	"github.com/NotCoffee418/pollucom_reader/pkg/serialport"
	"github.com/sirupsen/logrus"
)

type MeterReader struct {
	settings serialport.Settings
	verbose  bool
	log      logrus.FieldLogger

	// Receives the hex dump of the get-data reply in verbose mode.
	dumpOut io.Writer

	openPort func(serialport.Settings) (io.ReadWriteCloser, error)
	sleep    func(time.Duration)
}
