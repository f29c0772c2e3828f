package decoder

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackedDecimalValidDigits(t *testing.T) {
	for hi := 0; hi <= 9; hi++ {
		for lo := 0; lo <= 9; lo++ {
			got, err := PackedDecimal(byte(hi<<4 | lo))
			require.NoError(t, err)
			require.Equal(t, hi*10+lo, got)
		}
	}
}

func TestPackedDecimalRejectsNibblesAboveNine(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		if b>>4 <= 9 && b&0x0F <= 9 {
			continue
		}
		_, err := PackedDecimal(byte(b))
		require.ErrorIs(t, err, ErrInvalidDigit, "byte 0x%02X", b)
	}
}

func TestPackedDecimal4(t *testing.T) {
	v, err := PackedDecimal4([]byte{0x23, 0x01, 0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint32(123), v)

	v, err = PackedDecimal4([]byte{0x99, 0x99, 0x99, 0x99})
	require.NoError(t, err)
	require.Equal(t, uint32(99999999), v)

	_, err = PackedDecimal4([]byte{0x00, 0x0A, 0x00, 0x00})
	require.ErrorIs(t, err, ErrInvalidDigit)

	v, err = PackedDecimal4([]byte{0x23, 0x01, 0x00, 0x00, 0xFF, 0x42})
	require.NoError(t, err, "bytes past the fourth are not decoded")
	require.Equal(t, uint32(123), v)

	_, err = PackedDecimal4([]byte{0x00, 0x00})
	require.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestLittleEndian(t *testing.T) {
	require.Equal(t, uint16(4660), LittleEndian2([]byte{0x34, 0x12}))
	require.Equal(t, uint32(197121), LittleEndian3([]byte{0x01, 0x02, 0x03}))
	require.Equal(t, uint32(0xFFFFFF), LittleEndian3([]byte{0xFF, 0xFF, 0xFF}))
}

func TestDecodeTruncated(t *testing.T) {
	for n := 0; n < MinFrameLength; n++ {
		_, err := Decode(make([]byte, n))
		require.ErrorIs(t, err, ErrTruncatedFrame, "length %d", n)
	}
}

func TestDecodeMinimalFrame(t *testing.T) {
	buf := make([]byte, MinFrameLength)
	copy(buf[21:], []byte{0x00, 0x00, 0x00, 0x00})
	copy(buf[27:], []byte{0x00, 0x10, 0x00, 0x00})
	copy(buf[45:], []byte{0x8C, 0x00})

	r, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, 0.0, r.EnergyKWH)
	require.InDelta(t, 1.0, r.VolumeM3, 1e-9)
	require.InDelta(t, 14.0, r.SupplyTempC, 1e-9)
}

func TestDecodeAllFields(t *testing.T) {
	buf := make([]byte, 80)
	copy(buf[21:], []byte{0x56, 0x34, 0x12, 0x00}) // 123456 kWh
	copy(buf[27:], []byte{0x89, 0x67, 0x45, 0x00}) // 456789 l
	copy(buf[33:], []byte{0x50, 0x12, 0x00, 0x00}) // 1250 l/h
	copy(buf[39:], []byte{0x00, 0x35, 0x00, 0x00}) // 3500 W
	copy(buf[45:], []byte{0xA3, 0x02})             // 675
	copy(buf[49:], []byte{0x0D, 0x02})             // 525
	copy(buf[53:], []byte{0x98, 0x3A, 0x00})       // 15000

	r, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, 123456.0, r.EnergyKWH)
	require.InDelta(t, 456.789, r.VolumeM3, 1e-9)
	require.InDelta(t, 1.25, r.FlowRateM3H, 1e-9)
	require.Equal(t, 3500.0, r.PowerW)
	require.InDelta(t, 67.5, r.SupplyTempC, 1e-9)
	require.InDelta(t, 52.5, r.ReturnTempC, 1e-9)
	require.InDelta(t, 15.0, r.TempDifferenceK, 1e-9)
}

func TestDecodeHighByteOfTemperatureDifference(t *testing.T) {
	buf := make([]byte, MinFrameLength)
	copy(buf[53:], []byte{0x01, 0x02, 0x03})

	r, err := Decode(buf)
	require.NoError(t, err)
	require.InDelta(t, 197.121, r.TempDifferenceK, 1e-9)
}

func TestDecodeInvalidDigitNamesField(t *testing.T) {
	buf := make([]byte, MinFrameLength)
	buf[33] = 0xF1

	_, err := Decode(buf)
	require.ErrorIs(t, err, ErrInvalidDigit)
	require.Contains(t, err.Error(), "flow_rate_m3h")
}

func TestDecodeCapturedReply(t *testing.T) {
	raw, err := hex.DecodeString(
		"68323268080172" +
			"00000000" + "000000000000" + "0000" +
			"0000" + "42360000" +
			"0000" + "34120000" +
			"0000" + "20010000" +
			"0000" + "00150000" +
			"0000" + "5802" +
			"0000" + "f401" +
			"0000" + "98210000000016")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), MinFrameLength)

	r, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, 3642.0, r.EnergyKWH)
	require.InDelta(t, 1.234, r.VolumeM3, 1e-9)
	require.InDelta(t, 0.120, r.FlowRateM3H, 1e-9)
	require.Equal(t, 1500.0, r.PowerW)
	require.InDelta(t, 60.0, r.SupplyTempC, 1e-9)
	require.InDelta(t, 50.0, r.ReturnTempC, 1e-9)
	require.InDelta(t, 8.600, r.TempDifferenceK, 1e-9)
}
