package handshake

import (
	"bytes"
	"fmt"
	"time"
)

var (
	ErrWriteFailed = fmt.Errorf("write to meter failed")
	ErrReadFailed  = fmt.Errorf("read from meter failed")
	// ErrNoData is not produced by the driver; callers use it to report an
	// unacknowledged init frame.
	ErrNoData = fmt.Errorf("meter did not acknowledge init frame")
)

// SettleDelay is the pause the IR head needs after every write before the
// meter can be read or written again: (7 + 25) * 10 ms.
const SettleDelay = (7 + 25) * 10 * time.Millisecond

// MaxResponseSize bounds every read from the meter.
const MaxResponseSize = 256

const (
	wakeupByte = 0x2F // '/'
	syncByte   = 0x55 // 'U'
	syncLength = 132

	ackByte = 0xE5

	shortFrameStart = 0x10
	shortFrameStop  = 0x16

	FuncInit    byte = 0x40 // SND_NKE
	FuncGetData byte = 0x5B // REQ_UD2
)

var (
	WakeupFrame = []byte{wakeupByte}
	SyncFrame   = bytes.Repeat([]byte{syncByte}, syncLength)
)

// ShortFrame builds [0x10, C, 0x00, checksum, 0x16]. The address byte is
// always zero, so the checksum equals the function code.
func ShortFrame(functionCode byte) []byte {
	return []byte{shortFrameStart, functionCode, 0x00, functionCode, shortFrameStop}
}

// Result of one handshake session.
type Result struct {
	// Acknowledged is true when the init reply started with 0xE5.
	Acknowledged bool
	InitResponse []byte
	// Response holds the raw get-data reply. Nil unless Acknowledged.
	Response []byte
}
