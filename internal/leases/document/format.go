package document

import (
	"math"
	"time"

	"landlord_portal_backend/internal/leases/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const longDateLayout = "January 2, 2006"

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a dollar amount with grouping and two decimals,
// e.g. 1500 -> "$1,500.00".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if amount < 0 {
		return "-" + usdPrinter.Sprintf("$%.2f", -amount)
	}
	return usdPrinter.Sprintf("$%.2f", amount)
}

// FormatAmount renders a money string as currency; malformed input is $0.00.
func FormatAmount(raw string) string {
	return FormatCurrency(domain.Amount(raw))
}

// ParseCurrency reads back a value rendered by FormatCurrency.
func ParseCurrency(rendered string) float64 {
	return domain.Amount(rendered)
}

// FormatDate renders an ISO or RFC3339 date as "March 15, 2025". Invalid or
// empty input renders as "".
func FormatDate(raw string) string {
	t, ok := domain.ParseDate(raw)
	if !ok {
		return ""
	}
	return t.Format(longDateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM MST")
}
