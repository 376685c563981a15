// Package report renders assessment output: Indian-style currency strings and
// statutory compliance breach lines.
package report

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCurrency renders an amount in Indian business shorthand with two
// decimals: Crore above 1,00,00,000, Lakh above 1,00,000, K above 1,000.
func FormatCurrency(amount float64) string {
	switch {
	case amount >= 10000000:
		return fmt.Sprintf("₹%.2f Cr", amount/10000000)
	case amount >= 100000:
		return fmt.Sprintf("₹%.2f L", amount/100000)
	case amount >= 1000:
		return fmt.Sprintf("₹%.2f K", amount/1000)
	default:
		return fmt.Sprintf("₹%.2f", amount)
	}
}

// FormatAmount renders a rounded amount with comma-grouped thousands, the form
// used inside risk factor and breach strings.
func FormatAmount(amount float64) string {
	n := int64(math.Round(amount))
	negative := n < 0
	if negative {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
