package converters

import "github.com/shopspring/decimal"

// ParseNumeric parses the text a NUMERIC column transits as into an exact
// decimal. Binary floats are never involved.
func ParseNumeric(text string) (decimal.Decimal, error) {
	return decimal.NewFromString(text)
}

// FormatNumeric is the canonical decimal string a NUMERIC parameter is
// bound as.
func FormatNumeric(d decimal.Decimal) string {
	return d.String()
}
