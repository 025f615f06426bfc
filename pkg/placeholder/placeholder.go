// Package placeholder encodes interpolation slots as textual tokens.
//
// A slot that lands inside an attribute value is written as the raw token
// {{wecco:N}}. A slot that lands in text content is bracketed by two comment
// markers, <!--wecco:N/start--> and <!--wecco:N/end-->, so the region can hold
// any number of nodes. Both shapes contain characters that are never produced
// by ordinary markup authoring, so user text cannot be mistaken for a slot.
package placeholder

import (
	"strconv"
	"strings"
)

const (
	// Namespace prefixes every token and marker emitted by the engine.
	Namespace = "wecco:"

	tokenOpen  = "{{" + Namespace
	tokenClose = "}}"

	startSuffix = "/start"
	endSuffix   = "/end"
)

// Encode returns the attribute-value token for interpolation slot n.
func Encode(n int) string {
	return tokenOpen + strconv.Itoa(n) + tokenClose
}

// IsPlaceholder reports whether s is exactly one token.
func IsPlaceholder(s string) bool {
	_, ok := ExtractIndex(s)
	return ok
}

// ExtractIndex recovers the slot index from a token.
func ExtractIndex(s string) (int, bool) {
	if !strings.HasPrefix(s, tokenOpen) || !strings.HasSuffix(s, tokenClose) {
		return 0, false
	}
	digits := s[len(tokenOpen) : len(s)-len(tokenClose)]
	return parseIndex(digits)
}

// Segment is one piece of a split string: either static text or a slot.
type Segment struct {
	Text        string
	Index       int
	Placeholder bool
}

// Split partitions s into alternating static and placeholder segments.
// Empty static segments are dropped.
func Split(s string) []Segment {
	var segs []Segment
	for len(s) > 0 {
		open := strings.Index(s, tokenOpen)
		if open < 0 {
			segs = appendText(segs, s)
			break
		}
		rest := s[open+len(tokenOpen):]
		end := strings.Index(rest, tokenClose)
		if end < 0 {
			segs = appendText(segs, s)
			break
		}
		idx, ok := parseIndex(rest[:end])
		if !ok {
			// Not a token; keep the opening as literal text and continue after it.
			cut := open + len(tokenOpen)
			segs = appendText(segs, s[:cut])
			s = s[cut:]
			continue
		}
		if open > 0 {
			segs = appendText(segs, s[:open])
		}
		segs = append(segs, Segment{Text: s[open : open+len(tokenOpen)+end+len(tokenClose)], Index: idx, Placeholder: true})
		s = rest[end+len(tokenClose):]
	}
	return segs
}

// Count returns the number of placeholder segments in s.
func Count(s string) int {
	n := 0
	for _, seg := range Split(s) {
		if seg.Placeholder {
			n++
		}
	}
	return n
}

// appendText merges adjacent static segments.
func appendText(segs []Segment, text string) []Segment {
	if n := len(segs); n > 0 && !segs[n-1].Placeholder {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text})
}

func parseIndex(digits string) (int, bool) {
	if digits == "" || len(digits) > 9 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StartMarker returns the comment text that opens the content region of slot n.
func StartMarker(n int) string {
	return Namespace + strconv.Itoa(n) + startSuffix
}

// EndMarker returns the comment text that closes the content region of slot n.
func EndMarker(n int) string {
	return Namespace + strconv.Itoa(n) + endSuffix
}

// ItemStartMarker returns the comment text that opens list item i of slot n.
func ItemStartMarker(n, i int) string {
	return Namespace + strconv.Itoa(n) + "." + strconv.Itoa(i) + startSuffix
}

// ItemEndMarker returns the comment text that closes list item i of slot n.
func ItemEndMarker(n, i int) string {
	return Namespace + strconv.Itoa(n) + "." + strconv.Itoa(i) + endSuffix
}

// Marker describes a parsed content-region comment.
type Marker struct {
	Index int
	End   bool
}

// ParseMarker parses a slot start/end comment text. Item markers are not
// slot markers and are rejected.
func ParseMarker(text string) (Marker, bool) {
	if !strings.HasPrefix(text, Namespace) {
		return Marker{}, false
	}
	body := text[len(Namespace):]
	var m Marker
	switch {
	case strings.HasSuffix(body, startSuffix):
		body = strings.TrimSuffix(body, startSuffix)
	case strings.HasSuffix(body, endSuffix):
		body = strings.TrimSuffix(body, endSuffix)
		m.End = true
	default:
		return Marker{}, false
	}
	idx, ok := parseIndex(body)
	if !ok {
		return Marker{}, false
	}
	m.Index = idx
	return m, true
}

// IsMarker reports whether a comment text is owned by the engine, i.e. any
// slot or list item marker.
func IsMarker(text string) bool {
	return strings.HasPrefix(text, Namespace) &&
		(strings.HasSuffix(text, startSuffix) || strings.HasSuffix(text, endSuffix))
}
