package extract

import (
	"regexp"
	"time"
)

// Layouts tried in order; day-first formats take priority over
// month-first, four-digit years over two-digit.
var dateLayouts = []string{
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
	"02/01/06",
	"01/02/06",
}

var singleDigitRe = regexp.MustCompile(`\b\d\b`)

// NormalizeDate converts a matched date string to YYYY-MM-DD using the
// first layout that parses. Single-digit day and month components are
// zero-padded first, since the layouts expect padded values.
// Unparseable input is returned verbatim; that includes three-digit
// years, which the date patterns admit but no layout accepts.
func NormalizeDate(dateStr string) string {
	padded := singleDigitRe.ReplaceAllStringFunc(dateStr, func(d string) string {
		return "0" + d
	})
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, padded); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return dateStr
}
