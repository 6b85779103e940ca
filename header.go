package ofx

import (
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"
	"golang.org/x/text/encoding/charmap"
)

// Header is a single NAME:VALUE line from the pre-body header block. A value
// of NONE (case-insensitive) decodes to the empty string.
type Header struct {
	Name  string
	Value string
}

// Headers preserves header order and duplicates. Repeated names (OLDFILEUID,
// NEWFILEUID) are retained in insertion order; Get reads the last write.
type Headers []Header

// Get returns the last value recorded for name, case-insensitively.
func (h Headers) Get(name string) (string, bool) {
	name = strings.ToUpper(name)
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Name == name {
			return h[i].Value, true
		}
	}
	return "", false
}

// ExtractHeaders decodes the header block: every line preceding the first
// '<' character, terminated by a blank line. Leading blank lines are
// skipped; the original wire format pads the block with CRLFs.
func ExtractHeaders(text string) (Headers, error) {
	var headers Headers
	if i := strings.IndexByte(text, '<'); i != -1 {
		text = text[:i]
	}
	started := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if started {
				break
			}
			continue
		}
		started = true
		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &HeaderDecodeError{Line: line}
		}
		name, value = strings.ToUpper(strings.TrimSpace(name)), strings.TrimSpace(value)
		if strings.EqualFold(value, "NONE") {
			value = ""
		}
		headers = append(headers, Header{Name: name, Value: value})
	}
	return headers, nil
}

// DecodeBody resolves the response character set from the header block and
// returns the decoded text along with the headers. Unrecognized or missing
// encodings fall back to ASCII with invalid-byte replacement; charset
// resolution itself never fails.
func DecodeBody(raw []byte) (string, Headers, error) {
	headers, err := ExtractHeaders(asciiReplace(raw))
	if err != nil {
		return "", nil, err
	}

	encoding, _ := headers.Get("ENCODING")
	switch strings.ToUpper(encoding) {
	case "USASCII":
		charset, ok := headers.Get("CHARSET")
		if !ok {
			charset = "1252"
		}
		switch charset {
		case "1252":
			text, err := charmap.Windows1252.NewDecoder().String(string(raw))
			if err == nil {
				return text, headers, nil
			}
		case "8859-1":
			text, err := charmap.ISO8859_1.NewDecoder().String(string(raw))
			if err == nil {
				return text, headers, nil
			}
		default:
			glog.Warningf("unrecognized charset %q, falling back to ascii", charset)
		}
	case "UNICODE", "UTF-8":
		return string(raw), headers, nil
	case "":
	default:
		glog.Warningf("unrecognized encoding %q, falling back to ascii", encoding)
	}
	return asciiReplace(raw), headers, nil
}

// asciiReplace decodes bytes as ASCII, substituting the replacement rune for
// anything outside the 7-bit range.
func asciiReplace(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c < utf8.RuneSelf {
			b.WriteByte(c)
		} else {
			b.WriteRune(utf8.RuneError)
		}
	}
	return b.String()
}
