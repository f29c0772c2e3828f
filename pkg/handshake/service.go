// Package handshake drives the wakeup/init/get-data exchange with a PolluCom E
// heat meter over its optical M-Bus interface.
package handshake

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// Verbose enables per-step traces on Logger.
	Verbose bool
	Logger  logrus.FieldLogger
	// Sleep replaces time.Sleep for the settle delay. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// Driver runs one handshake session. It is not safe for concurrent use.
type Driver struct {
	verbose bool
	log     logrus.FieldLogger
	sleep   func(time.Duration)
}

func NewDriver(opts Options) *Driver {
	d := &Driver{
		verbose: opts.Verbose,
		log:     opts.Logger,
		sleep:   opts.Sleep,
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	return d
}

// Run takes ownership of port and closes it before returning, on every path.
// A meter that does not acknowledge the init frame is reported through
// Result.Acknowledged, not as an error.
func (d *Driver) Run(port io.ReadWriteCloser) (*Result, error) {
	defer d.release(port)

	d.trace("Sending wakeup byte")
	if err := d.send(port, "wakeup", WakeupFrame); err != nil {
		return nil, err
	}

	// The sync reply only flushes the line; its content is ignored.
	d.trace("Sending sync sequence")
	syncReply, err := d.exchange(port, "sync", SyncFrame)
	if err != nil {
		return nil, err
	}
	d.trace("Sync reply: %d bytes", len(syncReply))

	d.trace("Sending init frame")
	initReply, err := d.exchange(port, "init", ShortFrame(FuncInit))
	if err != nil {
		return nil, err
	}
	d.trace("Init reply: %d bytes", len(initReply))

	result := &Result{InitResponse: initReply}
	if len(initReply) == 0 || initReply[0] != ackByte {
		d.trace("Init frame not acknowledged")
		return result, nil
	}
	result.Acknowledged = true

	d.trace("Sending get-data request")
	data, err := d.exchange(port, "get-data", ShortFrame(FuncGetData))
	if err != nil {
		return nil, err
	}
	d.trace("Get-data reply: %d bytes", len(data))

	result.Response = data
	return result, nil
}

func (d *Driver) exchange(port io.ReadWriter, step string, frame []byte) ([]byte, error) {
	if err := d.send(port, step, frame); err != nil {
		return nil, err
	}
	return d.receive(port, step)
}

// send writes frame and then waits SettleDelay unconditionally.
func (d *Driver) send(w io.Writer, step string, frame []byte) error {
	n, err := w.Write(frame)
	if err == nil && n != len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.Join(ErrWriteFailed, fmt.Errorf("%s frame: %w", step, err))
	}
	d.sleep(SettleDelay)
	return nil
}

// receive performs exactly one read. io.EOF is how the serial port reports
// an expired read timeout, so it yields an empty or partial reply.
func (d *Driver) receive(r io.Reader, step string) ([]byte, error) {
	buf := make([]byte, MaxResponseSize)
	n, err := r.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrReadFailed, fmt.Errorf("%s reply: %w", step, err))
	}
	if n < 0 {
		return nil, errors.Join(ErrReadFailed, fmt.Errorf("%s reply: negative read count %d", step, n))
	}
	return buf[:n], nil
}

func (d *Driver) release(port io.Closer) {
	if err := port.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close serial port")
		return
	}
	d.trace("Serial port closed")
}

func (d *Driver) trace(format string, args ...any) {
	if d.verbose {
		d.log.Debugf(format, args...)
	}
}
