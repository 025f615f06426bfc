package dom

import (
	"fmt"
	"strings"
)

// selector is one compound selector: tag#id.class[attr][attr=value].
type selector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatcher
}

type attrMatcher struct {
	name     string
	value    string
	hasValue bool
}

// QuerySelector returns the first descendant element of n, in document
// order, matching any of the comma-separated compound selectors. Shadow
// roots are not searched.
func (n *Node) QuerySelector(sel string) (*Node, error) {
	sels, err := parseSelectorList(sel)
	if err != nil {
		return nil, err
	}
	var found *Node
	var search func(p *Node) bool
	search = func(p *Node) bool {
		for c := p.firstChild; c != nil; c = c.next {
			if c.typ == ElementNode && matchesAny(c, sels) {
				found = c
				return true
			}
			if search(c) {
				return true
			}
		}
		return false
	}
	search(n)
	return found, nil
}

// QuerySelectorAll returns every matching descendant element of n.
func (n *Node) QuerySelectorAll(sel string) ([]*Node, error) {
	sels, err := parseSelectorList(sel)
	if err != nil {
		return nil, err
	}
	var out []*Node
	var search func(p *Node)
	search = func(p *Node) {
		for c := p.firstChild; c != nil; c = c.next {
			if c.typ == ElementNode && matchesAny(c, sels) {
				out = append(out, c)
			}
			search(c)
		}
	}
	search(n)
	return out, nil
}

// Matches reports whether the element n matches sel.
func (n *Node) Matches(sel string) (bool, error) {
	sels, err := parseSelectorList(sel)
	if err != nil {
		return false, err
	}
	return n.typ == ElementNode && matchesAny(n, sels), nil
}

func matchesAny(el *Node, sels []selector) bool {
	for _, s := range sels {
		if s.matches(el) {
			return true
		}
	}
	return false
}

func (s selector) matches(el *Node) bool {
	if s.tag != "" && s.tag != "*" && s.tag != el.tag {
		return false
	}
	if s.id != "" {
		if id, _ := el.Attr("id"); id != s.id {
			return false
		}
	}
	if len(s.classes) > 0 {
		class, _ := el.Attr("class")
		have := strings.Fields(class)
		for _, want := range s.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range s.attrs {
		v, ok := el.Attr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func parseSelectorList(list string) ([]selector, error) {
	var out []selector
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("dom: empty selector in %q", list)
		}
		s, err := parseSelector(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseSelector(src string) (selector, error) {
	var s selector
	i := 0
	readIdent := func() string {
		start := i
		for i < len(src) && isIdentChar(src[i]) {
			i++
		}
		return src[start:i]
	}

	if i < len(src) && src[i] == '*' {
		s.tag = "*"
		i++
	} else {
		s.tag = strings.ToLower(readIdent())
	}
	for i < len(src) {
		switch src[i] {
		case '#':
			i++
			if s.id = readIdent(); s.id == "" {
				return s, fmt.Errorf("dom: invalid selector %q", src)
			}
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return s, fmt.Errorf("dom: invalid selector %q", src)
			}
			s.classes = append(s.classes, class)
		case '[':
			end := strings.IndexByte(src[i:], ']')
			if end < 0 {
				return s, fmt.Errorf("dom: unterminated attribute selector in %q", src)
			}
			body := src[i+1 : i+end]
			i += end + 1
			m := attrMatcher{name: strings.TrimSpace(body)}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				m.name = strings.TrimSpace(body[:eq])
				m.value = strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`)
				m.hasValue = true
			}
			if m.name == "" {
				return s, fmt.Errorf("dom: invalid selector %q", src)
			}
			s.attrs = append(s.attrs, m)
		default:
			return s, fmt.Errorf("dom: unsupported selector %q", src)
		}
	}
	if s.tag == "" && s.id == "" && len(s.classes) == 0 && len(s.attrs) == 0 {
		return s, fmt.Errorf("dom: invalid selector %q", src)
	}
	return s, nil
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}
