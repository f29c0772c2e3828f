package decoder

import "fmt"

var (
	ErrTruncatedFrame = fmt.Errorf("truncated frame")
	ErrInvalidDigit   = fmt.Errorf("invalid packed decimal digit")
)

// MinFrameLength is the shortest get-data reply that holds every field
// (temperature difference at offset 53, three bytes wide).
const MinFrameLength = 56

type encoding uint8

const (
	packedDecimal4 encoding = iota
	littleEndian2
	littleEndian3
)

func (e encoding) width() int {
	switch e {
	case packedDecimal4:
		return 4
	case littleEndian2:
		return 2
	case littleEndian3:
		return 3
	}
	return 0
}

type fieldID uint8

const (
	fieldEnergy fieldID = iota
	fieldVolume
	fieldFlowRate
	fieldPower
	fieldSupplyTemp
	fieldReturnTemp
	fieldTempDiff
)

// Divisor 1 means the raw value is already in the target unit.
type field struct {
	id       fieldID
	name     string
	offset   int
	encoding encoding
	divisor  float64
}

var fieldTable = []field{
	{fieldEnergy, "energy_kwh", 21, packedDecimal4, 1},
	{fieldVolume, "volume_m3", 27, packedDecimal4, 1000},
	{fieldFlowRate, "flow_rate_m3h", 33, packedDecimal4, 1000},
	{fieldPower, "power_w", 39, packedDecimal4, 1},
	{fieldSupplyTemp, "supply_temp_c", 45, littleEndian2, 10},
	{fieldReturnTemp, "return_temp_c", 49, littleEndian2, 10},
	{fieldTempDiff, "temp_diff_k", 53, littleEndian3, 1000},
}
