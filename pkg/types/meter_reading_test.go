package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeatReadingFormat(t *testing.T) {
	r := HeatReading{
		EnergyKWH:       3642,
		VolumeM3:        1.234,
		FlowRateM3H:     0.12,
		PowerW:          1500,
		SupplyTempC:     60,
		ReturnTempC:     50.04,
		TempDifferenceK: 8.6,
	}
	var out bytes.Buffer
	require.NoError(t, r.Format(&out))
	require.Equal(t,
		"Energie[kWh]: 3642\n"+
			"Volumen: 1.234\n"+
			"Durchfluss[cbm/h]: 0.120\n"+
			"Leistung[W]: 1500\n"+
			"Durchflusstemp.[°C]: 60.0\n"+
			"Ruecklauftemp.[°C]: 50.0\n"+
			"Temperaturdiff.[K]: 8.600\n",
		out.String())
}
