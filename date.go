package ofx

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OFX dates look like 20101106160000.00[-5:EST] for 6 Nov 2010 4pm UTC-5.
// The bracketed offset is a signed number of hours; some places (e.g.
// Newfoundland) have non-integer offsets.
var (
	dateTZPattern   = regexp.MustCompile(`\[([-+]?\d+\.?\d*):\w*\]$`)
	dateFracPattern = regexp.MustCompile(`^[0-9]*\.([0-9]{0,5})`)
)

const ofxDateLayout = "20060102150405"

// ParseOFXDate parses an OFX timestamp and normalizes it to UTC. When the
// leading 14 characters do not form a full timestamp, the leading 8 are
// parsed as a bare date (altFormat overrides the YYYYMMDD layout when set).
// The sentinel 00000000 signals "no date provided" and yields (nil, nil).
func ParseOFXDate(text string, altFormat string) (*time.Time, error) {
	s := strings.TrimSpace(text)

	offset := 0.0
	if m := dateTZPattern.FindStringSubmatch(s); m != nil {
		offset, _ = strconv.ParseFloat(m[1], 64)
	}
	frac := 0.0
	if m := dateFracPattern.FindStringSubmatch(s); m != nil && m[1] != "" {
		frac, _ = strconv.ParseFloat("0."+m[1], 64)
	}
	shift := func(t time.Time) *time.Time {
		t = t.Add(-time.Duration(offset * float64(time.Hour)))
		t = t.Add(time.Duration(frac * float64(time.Second)))
		return &t
	}

	if len(s) >= 14 {
		if t, err := time.Parse(ofxDateLayout, s[:14]); err == nil {
			return shift(t), nil
		}
	}
	if len(s) >= 8 && s[:8] == "00000000" {
		return nil, nil
	}
	layout := "20060102"
	if altFormat != "" {
		layout = altFormat
	}
	if len(s) >= 8 {
		if t, err := time.Parse(layout, s[:8]); err == nil {
			return shift(t), nil
		}
	}
	return nil, &DateFormatError{Text: text}
}

// FormatOFXDate renders t in the YYYYMMDDHHMMSS wire format, in UTC.
func FormatOFXDate(t time.Time) string {
	return t.UTC().Format(ofxDateLayout)
}
