package ofx

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	dotBeforeComma = regexp.MustCompile(`\..*,`)
	commaBeforeDot = regexp.MustCompile(`,.*\.`)
)

// ParseOFXDecimal normalizes the locale-ambiguous number formats seen in the
// wild and parses the result as an exact decimal. Institutions variously
// send 1,025.53 / 1.025,53 / 10000,50 / 1 025,53 / +1058,53; all of these
// normalize to the same value family. The literal tokens null and -null are
// a bank convention for interest-rate-change placeholder rows and normalize
// to zero.
func ParseOFXDecimal(text string) (decimal.Decimal, error) {
	d := strings.TrimSpace(text)
	if d == "null" || d == "-null" {
		return decimal.Zero, nil
	}
	// A '.' before a later ',' means '.' is a thousands separator.
	if dotBeforeComma.MatchString(d) {
		d = strings.ReplaceAll(d, ".", "")
	}
	// A ',' before a later '.' means ',' is a thousands separator.
	if commaBeforeDot.MatchString(d) {
		d = strings.ReplaceAll(d, ",", "")
	}
	// A lone ',' is the decimal point.
	if !strings.Contains(d, ".") && strings.Contains(d, ",") {
		d = strings.ReplaceAll(d, ",", ".")
	}
	d = strings.ReplaceAll(d, " ", "")
	d = strings.TrimPrefix(d, "+")
	v, err := decimal.NewFromString(d)
	if err != nil {
		return decimal.Decimal{}, &DecimalFormatError{Text: text}
	}
	return v, nil
}
