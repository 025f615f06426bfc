package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// voidElements cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag is a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// ParseFragment parses markup into a detached fragment.
//
// Unlike a browser parser it does not synthesize html/head/body elements or
// relocate misnested content: the tree follows the source as written, so
// node positions are predictable for the template engine. Unknown end tags
// are ignored and unclosed elements are closed at end of input.
func ParseFragment(markup string) (*Node, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	frag := NewFragment()
	stack := []*Node{frag}
	top := func() *Node { return stack[len(stack)-1] }

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("dom: parse fragment: %w", err)
			}
			return frag, nil

		case html.TextToken:
			text := string(z.Text())
			if text == "" {
				continue
			}
			parent := top()
			if last := parent.lastChild; last != nil && last.typ == TextNode {
				last.data += text
			} else {
				parent.link(NewText(text), nil)
			}

		case html.CommentToken:
			top().link(NewComment(string(z.Text())), nil)

		case html.StartTagToken, html.SelfClosingTagToken:
			// TagName and TagAttr lowercase the token buffer in place.
			raw := append([]byte(nil), z.Raw()...)
			name, more := z.TagName()
			el := NewElement(string(name))
			var attrs []Attribute
			for more {
				var k, v []byte
				k, v, more = z.TagAttr()
				attrs = append(attrs, Attribute{Name: string(k), Value: string(v)})
			}
			restoreAttrCase(attrs, raw)
			el.attrs = dedupeAttrs(attrs)
			top().link(el, nil)
			if tt == html.StartTagToken && !IsVoid(el.tag) {
				stack = append(stack, el)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].tag == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

// MustParseFragment is like ParseFragment but panics on error.
func MustParseFragment(markup string) *Node {
	frag, err := ParseFragment(markup)
	if err != nil {
		panic(err)
	}
	return frag
}

// dedupeAttrs keeps the first occurrence of each attribute name.
func dedupeAttrs(attrs []Attribute) []Attribute {
	if len(attrs) < 2 {
		return attrs
	}
	seen := make(map[string]bool, len(attrs))
	out := attrs[:0]
	for _, a := range attrs {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}

// restoreAttrCase replaces the tokenizer's lowercased attribute names with
// the names as written in the raw tag, when the two lists line up.
func restoreAttrCase(attrs []Attribute, raw []byte) {
	if len(attrs) == 0 {
		return
	}
	names := rawAttrNames(raw)
	if len(names) != len(attrs) {
		return
	}
	for i := range attrs {
		if strings.EqualFold(names[i], attrs[i].Name) {
			attrs[i].Name = names[i]
		}
	}
}

// rawAttrNames scans a raw start tag and returns its attribute names in
// order.
func rawAttrNames(raw []byte) []string {
	i := 0
	n := len(raw)
	if i < n && raw[i] == '<' {
		i++
	}
	for i < n && !isSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	var names []string
	for i < n {
		for i < n && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= n || raw[i] == '>' {
			break
		}
		start := i
		// A leading '=' belongs to the name.
		i++
		for i < n && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		names = append(names, string(raw[start:i]))

		for i < n && isSpace(raw[i]) {
			i++
		}
		if i >= n || raw[i] != '=' {
			continue
		}
		i++
		for i < n && isSpace(raw[i]) {
			i++
		}
		if i < n && (raw[i] == '"' || raw[i] == '\'') {
			q := raw[i]
			i++
			for i < n && raw[i] != q {
				i++
			}
			i++
			continue
		}
		for i < n && !isSpace(raw[i]) && raw[i] != '>' {
			i++
		}
	}
	return names
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f'
}
