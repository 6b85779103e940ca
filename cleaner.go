package ofx

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/golang/glog"
)

// Cleaner repairs legacy SGML-style OFX into strictly well-formed markup.
type Cleaner interface {
	CleanupXML(data []byte) *bytes.Buffer
}

type cleaner struct{}

// NewCleaner returns a Cleaner.
func NewCleaner() Cleaner {
	return cleaner{}
}

var (
	closingTagPattern = regexp.MustCompile(`(?i)</([a-z0-9_.]+)>`)
	tagTokenPattern   = regexp.MustCompile(`(?i)</?[a-z0-9_.]+>`)
	openTagPattern    = regexp.MustCompile(`(?i)<([a-z0-9_.]+)>`)
)

// CleanupXML closes the dangling leaf elements OFX's legacy SGML permits.
// An element like <MEMO>text may omit its closing tag when no explicit
// </MEMO> appears anywhere in the document; containers always close
// explicitly. The repair is a single linear pass with one pending slot,
// since legacy OFX only ever has one dangling leaf at a time. It never
// fails: malformed input passes through best-effort.
func (c cleaner) CleanupXML(data []byte) *bytes.Buffer {
	text := string(data)

	// Every element name with an explicit closing tag anywhere in the
	// document is a known container and is never auto-closed.
	containers := make(map[string]struct{})
	for _, m := range closingTagPattern.FindAllStringSubmatch(text, -1) {
		containers[strings.ToUpper(m[1])] = struct{}{}
	}
	glog.V(3).Infof("known containers: %d", len(containers))

	var (
		out     bytes.Buffer
		pending string // most recently opened leaf awaiting a synthesized closer
	)
	emit := func(token string) {
		isClosing := strings.HasPrefix(token, "</")
		isProcessing := strings.HasPrefix(token, "<?")
		isComment := strings.HasPrefix(token, "<!")
		isTag := strings.HasPrefix(token, "<") && !isComment
		if isTag && pending != "" {
			glog.V(3).Infof("closing pending leaf %s before %q", pending, token)
			out.WriteString("</")
			out.WriteString(pending)
			out.WriteByte('>')
			pending = ""
		}
		if isTag && !isClosing && !isProcessing {
			if m := openTagPattern.FindStringSubmatch(token); m != nil {
				if _, known := containers[strings.ToUpper(m[1])]; !known {
					pending = m[1]
				}
			}
		}
		out.WriteString(token)
	}

	last := 0
	for _, loc := range tagTokenPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			emit(text[last:loc[0]])
		}
		emit(text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		emit(text[last:])
	}
	return &out
}
