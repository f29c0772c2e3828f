package types

import (
	"fmt"
	"io"
)

const NoDataMessage = "No data received!"

// HeatReading is one decoded get-data reply of the heat meter.
type HeatReading struct {
	EnergyKWH       float64
	VolumeM3        float64
	FlowRateM3H     float64
	PowerW          float64
	SupplyTempC     float64
	ReturnTempC     float64
	TempDifferenceK float64
}

// Format prints the reading with the labels downstream scrapers expect.
func (r HeatReading) Format(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Energie[kWh]: %.0f\nVolumen: %.3f\nDurchfluss[cbm/h]: %.3f\nLeistung[W]: %.0f\n"+
			"Durchflusstemp.[°C]: %.1f\nRuecklauftemp.[°C]: %.1f\nTemperaturdiff.[K]: %.3f\n",
		r.EnergyKWH, r.VolumeM3, r.FlowRateM3H, r.PowerW,
		r.SupplyTempC, r.ReturnTempC, r.TempDifferenceK,
	)
	return err
}
