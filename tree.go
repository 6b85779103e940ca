package ofx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Node is one element of the normalized response tree.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Find returns the first matching descendant of n with the given tag name,
// case-insensitively, in depth-first document order. It returns nil when no
// descendant matches.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
		if m := c.Find(name); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every matching descendant of n in document order.
func (n *Node) FindAll(name string) []*Node {
	var nodes []*Node
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			nodes = append(nodes, c)
		}
		nodes = append(nodes, c.FindAll(name)...)
	}
	return nodes
}

// Render reconstructs the markup under n, used to report discarded entries.
func (n *Node) Render() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	fmt.Fprintf(b, "<%s>", n.Name)
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.render(b)
	}
	fmt.Fprintf(b, "</%s>", n.Name)
}

var ofxTagPattern = regexp.MustCompile(`(?i)<OFX>`)

// buildTree parses cleaned markup into a Node tree, starting at the <OFX>
// root. The decoder runs in non-strict mode and tolerates the imperfect
// nesting that survives repair: unmatched closing tags are ignored and open
// elements are popped until the matching ancestor is found.
func buildTree(clean []byte) (*Node, error) {
	idx := ofxTagPattern.FindIndex(clean)
	if idx == nil {
		return nil, errors.New("error - invalid file, OFX tag not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(clean[idx[0]:]))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity

	root := &Node{Name: "#document"}
	stack := []*Node{root}
	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error - parsing cleaned markup: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			for i := len(stack) - 1; i >= 1; i-- {
				if strings.EqualFold(stack[i].Name, t.Name.Local) {
					stack = stack[:i]
					break
				}
			}
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				n := stack[len(stack)-1]
				if n.Text != "" {
					n.Text += " "
				}
				n.Text += text
			}
		}
	}
	return root, nil
}
