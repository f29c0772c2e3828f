// Package decoder turns the get-data reply of a PolluCom E into physical values.
package decoder

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/NotCoffee418/pollucom_reader/pkg/types"
)

// Decode maps the fixed offsets of a get-data reply into a HeatReading.
func Decode(buf []byte) (*types.HeatReading, error) {
	if len(buf) < MinFrameLength {
		return nil, errors.Join(
			ErrTruncatedFrame,
			fmt.Errorf("need %d bytes, got %d", MinFrameLength, len(buf)),
		)
	}

	values := make(map[fieldID]float64, len(fieldTable))
	for _, f := range fieldTable {
		raw, err := decodeField(buf, f.offset, f.encoding)
		if err != nil {
			return nil, fmt.Errorf("field %s at offset %d: %w", f.name, f.offset, err)
		}
		values[f.id] = raw / f.divisor
	}

	return &types.HeatReading{
		EnergyKWH:       values[fieldEnergy],
		VolumeM3:        values[fieldVolume],
		FlowRateM3H:     values[fieldFlowRate],
		PowerW:          values[fieldPower],
		SupplyTempC:     values[fieldSupplyTemp],
		ReturnTempC:     values[fieldReturnTemp],
		TempDifferenceK: values[fieldTempDiff],
	}, nil
}

func decodeField(buf []byte, offset int, enc encoding) (float64, error) {
	end := offset + enc.width()
	if offset < 0 || end > len(buf) {
		return 0, errors.Join(
			ErrTruncatedFrame,
			fmt.Errorf("bytes %d..%d out of range for %d byte frame", offset, end-1, len(buf)),
		)
	}
	b := buf[offset:end]

	switch enc {
	case packedDecimal4:
		v, err := PackedDecimal4(b)
		return float64(v), err
	case littleEndian2:
		return float64(LittleEndian2(b)), nil
	case littleEndian3:
		return float64(LittleEndian3(b)), nil
	}
	return 0, fmt.Errorf("unknown field encoding %d", enc)
}

// PackedDecimal decodes one BCD byte, high nibble tens and low nibble ones.
func PackedDecimal(b byte) (int, error) {
	hi := int(b >> 4)
	lo := int(b & 0x0F)
	if hi > 9 || lo > 9 {
		return 0, errors.Join(ErrInvalidDigit, fmt.Errorf("byte 0x%02X", b))
	}
	return hi*10 + lo, nil
}

// PackedDecimal4 decodes b[:4] as BCD, least significant pair first.
// Bytes past the fourth are ignored.
func PackedDecimal4(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, errors.Join(ErrTruncatedFrame, fmt.Errorf("packed decimal field needs 4 bytes, got %d", len(b)))
	}
	var value uint32
	weight := uint32(1)
	for _, by := range b[:4] {
		pair, err := PackedDecimal(by)
		if err != nil {
			return 0, err
		}
		value += uint32(pair) * weight
		weight *= 100
	}
	return value, nil
}

// LittleEndian2 returns b[0] + 256*b[1]. b must hold at least 2 bytes.
func LittleEndian2(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// LittleEndian3 returns b[0] + 256*b[1] + 65536*b[2]. b must hold at least 3 bytes.
func LittleEndian3(b []byte) uint32 {
	_ = b[2]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
