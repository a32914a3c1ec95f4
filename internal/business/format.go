package business

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayDateLayout is the day/month/year layout used in es-CO.
const DisplayDateLayout = "02/01/2006"

var colombia = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formats v as Colombian pesos without decimals, e.g. "$ 1.500.000".
func FormatCOP(v float64) string {
	return colombia.Sprintf("$ %v", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// FormatCount formats an integer with es-CO grouping.
func FormatCount(n int) string {
	return colombia.Sprintf("%v", number.Decimal(n))
}

// FormatDate formats t as dd/mm/yyyy; the zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
