package component

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeyToAttribute converts a camelCase data key to its dash-case attribute
// name: every uppercase letter starts a new segment, segments are joined
// with '-' and lowercased ("fooBar" -> "foo-bar").
func KeyToAttribute(key string) string {
	var segments []string
	start := 0
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			segments = append(segments, key[start:i])
			start = i
		}
	}
	segments = append(segments, key[start:])
	return cases.Lower(language.Und).String(strings.Join(segments, "-"))
}

// AttributeToKey is the inverse of KeyToAttribute: it splits on '-' and
// capitalizes the letter following each dash ("foo-bar" -> "fooBar").
func AttributeToKey(attr string) string {
	segments := strings.Split(attr, "-")
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(segments[0])
	for _, s := range segments[1:] {
		b.WriteString(title.String(s))
	}
	return b.String()
}

// reservedNames cannot be used as component names.
var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// validName reports whether name is a valid component tag: it starts with
// a lowercase ASCII letter, contains a dash and has no uppercase letters.
func validName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' || !strings.Contains(name, "-") {
		return false
	}
	if reservedNames[name] {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
		case r >= 0x80 && !unicode.IsUpper(r):
		default:
			return false
		}
	}
	return true
}
