// Package pricing canonicalizes heterogeneous price text into fixed
// two-decimal money strings ("$1,234.50").
package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// A usable price contains at least one digit run, optionally preceded
	// by "$" and followed by a decimal part.
	usableRe = regexp.MustCompile(`\$?\d+(\.\d+)?`)
	// First numeric token of the cleaned text; trailing suffixes are cut.
	numberRe = regexp.MustCompile(`\d+(\.\d+)?`)
)

// ParseAmount parses a raw cell into an exact decimal amount. Blank cells
// and unparseable text report ok=false. Currency symbols, thousands commas
// and interior spaces are tolerated.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.Trim(cleaned, "$")

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// Canonical converts raw price text into the canonical money string.
// Rows whose price cannot survive the pipeline are definitionally rows
// without a usable price, so failure is reported as ok=false, not an error:
//   - blank values are dropped
//   - values containing "-" are ranges ("10-20"), ambiguous, dropped
//   - values without a digit are dropped
//   - "$", surrounding whitespace, thousands commas and interior spaces are
//     stripped, then the first numeric token is taken
func Canonical(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if strings.Contains(value, "-") {
		return "", false
	}
	if !usableRe.MatchString(value) {
		return "", false
	}

	cleaned := strings.TrimSpace(strings.Trim(value, "$"))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	token := numberRe.FindString(cleaned)
	if token == "" {
		return "", false
	}

	amount, err := decimal.NewFromString(token)
	if err != nil {
		return "", false
	}

	return Format(amount), true
}

// Format renders an amount as "$" + two decimals with comma thousands
// separators.
func Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	dot := strings.IndexByte(fixed, '.')
	integer, fraction := fixed[:dot], fixed[dot:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fraction)
	return b.String()
}
