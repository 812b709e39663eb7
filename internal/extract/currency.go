package extract

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const zeroAmount = "₦0.00"

var currencyCleaner = strings.NewReplacer(",", "", "₦", "", "$", "")

// FormatCurrency renders a numeric string as a naira amount with
// thousands separators and exactly two decimals. Anything that does not
// parse becomes ₦0.00; this function never fails.
func FormatCurrency(amount string) string {
	cleaned := strings.TrimSpace(currencyCleaner.Replace(amount))
	if cleaned == "" {
		return zeroAmount
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return zeroAmount
	}
	return "₦" + humanize.FormatFloat("#,###.##", value)
}
