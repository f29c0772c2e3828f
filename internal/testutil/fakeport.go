package testutil

import (
	"errors"
	"io"
)

// ScriptedRead is the outcome of one Read call on a FakePort.
type ScriptedRead struct {
	Data []byte
	Err  error
}

// FakePort is an in-memory serial port that replays scripted replies and
// records every write.
type FakePort struct {
	Reads []ScriptedRead

	// WriteErrAt makes the n-th Write (1-based) fail with WriteErr.
	WriteErrAt int
	WriteErr   error
	// ShortWriteAt makes the n-th Write (1-based) report one byte less.
	ShortWriteAt int

	CloseErr error

	Writes     [][]byte
	ReadCalls  int
	CloseCalls int
}

func (p *FakePort) Write(b []byte) (int, error) {
	p.Writes = append(p.Writes, append([]byte(nil), b...))
	n := len(p.Writes)
	if n == p.WriteErrAt {
		err := p.WriteErr
		if err == nil {
			err = errors.New("fake write failure")
		}
		return 0, err
	}
	if n == p.ShortWriteAt && len(b) > 0 {
		return len(b) - 1, nil
	}
	return len(b), nil
}

// Read returns the next scripted reply. Once the script is exhausted it
// behaves like an expired serial read timeout.
func (p *FakePort) Read(b []byte) (int, error) {
	p.ReadCalls++
	if p.ReadCalls > len(p.Reads) {
		return 0, io.EOF
	}
	r := p.Reads[p.ReadCalls-1]
	n := copy(b, r.Data)
	return n, r.Err
}

func (p *FakePort) Close() error {
	p.CloseCalls++
	return p.CloseErr
}

// Frame returns a zeroed get-data reply of the given length with the listed
// byte runs copied in at their offsets.
func Frame(length int, runs map[int][]byte) []byte {
	buf := make([]byte, length)
	for offset, run := range runs {
		copy(buf[offset:], run)
	}
	return buf
}
