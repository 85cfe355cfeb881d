// Package myformat renders amounts and backend timestamps the way the
// Indonesian till shows them.
package myformat

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	displayDate     = "02/01/2006"
	displayDateTime = "02/01/2006 15:04"
)

var (
	printer = message.NewPrinter(language.Indonesian)

	// The backend sends naive timestamps with microseconds; fractions are accepted
	// by the parser without being named in the layout.
	dateTimeLayouts = []string{
		"2006-01-02T15:04:05",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	}
)

// FormatIDR gives "Rp 20.000,00" for 20000.
func FormatIDR(amount decimal.Decimal) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatDate turns "2024-01-31" into "31/01/2024". Anything else is returned as is.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format(displayDate)
}

func FormatDateTime(dateTime string) string {
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, dateTime)
		if err == nil {
			return t.Format(displayDateTime)
		}
	}
	return dateTime
}
