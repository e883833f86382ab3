// Package money wraps decimal arithmetic for invoice amounts.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero.
var Zero = decimal.Zero

// Tolerance is the smallest difference treated as a real disagreement between two totals.
var Tolerance = decimal.New(1, -2)

// amountCleaner strips decoration authors put around numbers in markdown.
var amountCleaner = strings.NewReplacer(
	"*", "",
	"_", "",
	"`", "",
	" ", "",
	"\t", "",
)

// plainNumber is the only shape handed to the decimal parser. Exponent forms
// such as "1e9" are rejected so a short cell cannot expand into a huge number.
var plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// currencySymbols are accepted as a prefix on amounts.
var currencySymbols = []string{"$", "€", "£", "¥"}

// Parse parses a human-written amount such as "1,000.00", "$37.92" or "**88.15**".
// A comma after the last dot marks a decimal comma ("1.000,50"); otherwise commas
// group thousands. Reports false when the text is not a plain decimal number.
func Parse(s string) (decimal.Decimal, bool) {
	clean := normalizeSeparators(amountCleaner.Replace(strings.TrimSpace(s)))

	negative := false
	if strings.HasPrefix(clean, "-") {
		negative = true
		clean = clean[1:]
	}
	for _, sym := range currencySymbols {
		if strings.HasPrefix(clean, sym) {
			clean = strings.TrimPrefix(clean, sym)
			break
		}
	}
	if negative {
		clean = "-" + clean
	}

	if !plainNumber.MatchString(clean) {
		return Zero, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, false
	}
	return d, true
}

// normalizeSeparators rewrites "1.234,56" to "1234.56" and drops grouping commas
// from "1,234.56".
func normalizeSeparators(s string) string {
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	if dot >= 0 && comma > dot {
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	}
	return strings.ReplaceAll(s, ",", "")
}

// ParseOrZero parses an amount, resolving anything non-numeric to zero.
func ParseOrZero(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum sums a slice of decimals.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Differs reports whether a and b disagree by at least Tolerance.
func Differs(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThanOrEqual(Tolerance)
}

// Format renders d with a currency symbol and two decimals: "$1088.15", "-$5.00".
func Format(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + symbol + d.Abs().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}
