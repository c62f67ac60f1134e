package money

import (
	"fmt"
	"math"
)

// Cents is an exact currency amount in hundredths of the base unit.
// All budget arithmetic happens on this type; float64 appears only at
// the JSON boundary.
type Cents int64

var ErrNotFinite = fmt.Errorf("amount is not a finite number")

// FromFloat converts a JSON number to cents with half-up rounding on
// the third decimal place.
func FromFloat(v float64) (Cents, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	scaled := v * 100
	if scaled >= 0 {
		return Cents(math.Floor(scaled + 0.5)), nil
	}
	return Cents(math.Ceil(scaled - 0.5)), nil
}

// Float returns the decimal value for presentation.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// Percent returns round(part/whole*100) with half-up rounding, computed
// in integer arithmetic. Returns 0 when whole is zero or negative.
func Percent(part, whole Cents) int {
	if whole <= 0 {
		return 0
	}
	if part < 0 {
		return -Percent(-part, whole)
	}
	return int((200*int64(part) + int64(whole)) / (2 * int64(whole)))
}
