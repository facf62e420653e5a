package currency

import (
	"math"
	"strconv"
)

// FormatDollars renders a price the way hotel listings show it when the
// provider gave no display string: "$120", "$99.5".
func FormatDollars(amount float64) string {
	negative := amount < 0
	if negative {
		amount = math.Abs(amount)
	}

	result := "$" + strconv.FormatFloat(amount, 'f', -1, 64)
	if negative {
		result = "-" + result
	}

	return result
}
