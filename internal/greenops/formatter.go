package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the English way.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given number of decimals and thousand
// separators. Example: FormatFloat(1234.567, 2) returns "1,234.57".
// NaN and infinities render as "n/a".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	if precision < 0 {
		precision = 0
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, frac, hasFrac := strings.Cut(formatted, ".")

	negative := strings.HasPrefix(intPart, "-")
	digits := strings.TrimPrefix(intPart, "-")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Beyond int64; keep the plain rendering.
		return formatted
	}

	out := FormatNumber(n)
	if negative {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatMoney renders an amount with a currency code prefix, e.g.
// FormatMoney(65000, "INR", 2) returns "INR 65,000.00".
func FormatMoney(amount float64, currency string, precision int) string {
	if currency == "" {
		return FormatFloat(amount, precision)
	}
	return currency + " " + FormatFloat(amount, precision)
}

// FormatLarge abbreviates values of a million and above, e.g.
// FormatLarge(1500000000) returns "~1.5 billion". Smaller values are
// rounded and comma-separated.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
