// Package settlement computes the fuel-shortage charge and late-return
// fee applied when a trip is completed, plus the derived net balance
// used by reporting.
package settlement

import "time"

// Input carries the trip measurements and the tenant's rates.
type Input struct {
	StartFuelLevel  float64
	EndFuelLevel    float64
	ExpectedReturn  time.Time
	ActualReturn    time.Time
	FuelPricePerL   float64
	DelayFeePerHour float64
}

// Result is persisted onto the booking at completion.
type Result struct {
	FuelCharge float64 `json:"fuel_charge"`
	DelayFee   float64 `json:"delay_fee"`
	DelayHours float64 `json:"delay_hours"`
}

// Calculate applies the settlement rules. Returning with more fuel than
// at pickup yields no charge and no refund. Delay hours are fractional,
// never rounded.
func Calculate(in Input) Result {
	var res Result

	if fuelUsed := in.StartFuelLevel - in.EndFuelLevel; fuelUsed > 0 {
		res.FuelCharge = fuelUsed * in.FuelPricePerL
	}

	if in.ActualReturn.After(in.ExpectedReturn) {
		res.DelayHours = in.ActualReturn.Sub(in.ExpectedReturn).Hours()
		res.DelayFee = res.DelayHours * in.DelayFeePerHour
	}

	return res
}

// Line is one completed booking's contribution to the net balance.
type Line struct {
	PaymentAtStart float64
	PaymentAtEnd   float64
	FuelCharge     float64
	DelayFee       float64
}

// NetBalance aggregates payments minus deductions over completed
// bookings.
func NetBalance(lines []Line) float64 {
	var payments, deductions float64
	for _, l := range lines {
		payments += l.PaymentAtStart + l.PaymentAtEnd
		deductions += l.FuelCharge + l.DelayFee
	}
	return payments - deductions
}
