package template

import "strings"

// lexState is the markup context the compiler's cursor is in.
type lexState uint8

const (
	stText lexState = iota
	stTagOpen
	stTagName
	stEndTag
	stBeforeAttr
	stAttrName
	stAfterAttrName
	stBeforeValue
	stValueDouble
	stValueSingle
	stValueUnquoted
	stMarkupDecl
	stComment
	stBogusComment
	stRawText
)

// String returns a short description used in diagnostics.
func (s lexState) String() string {
	switch s {
	case stText:
		return "text"
	case stTagOpen, stTagName, stEndTag:
		return "tag name"
	case stBeforeAttr, stAttrName, stAfterAttrName:
		return "tag"
	case stBeforeValue, stValueDouble, stValueSingle, stValueUnquoted:
		return "attribute value"
	case stMarkupDecl, stComment, stBogusComment:
		return "comment"
	case stRawText:
		return "raw text element"
	default:
		return "unknown"
	}
}

// rawTextElements hold character data the parser does not scan for
// comments, so content markers cannot be placed inside them.
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// lexer tracks the markup context across fragment boundaries. It is a
// forward scanner: the state left by one fragment is where the next
// placeholder is inserted.
type lexer struct {
	state  lexState
	tag    strings.Builder
	endTag bool
	dashes int
	raw    string // raw text element we are inside
	rawBuf []byte
}

// inValue reports whether the cursor is inside, or right at the start of,
// an attribute value.
func (l *lexer) inValue() bool {
	switch l.state {
	case stBeforeValue, stValueDouble, stValueSingle, stValueUnquoted:
		return true
	}
	return false
}

// inText reports whether the cursor is in element content.
func (l *lexer) inText() bool {
	return l.state == stText
}

func (l *lexer) feed(s string) {
	for i := 0; i < len(s); i++ {
		l.step(s[i])
	}
}

func (l *lexer) step(c byte) {
	switch l.state {
	case stText:
		if c == '<' {
			l.state = stTagOpen
		}

	case stTagOpen:
		switch {
		case isLetter(c):
			l.tag.Reset()
			l.tag.WriteByte(lower(c))
			l.endTag = false
			l.state = stTagName
		case c == '/':
			l.tag.Reset()
			l.endTag = true
			l.state = stEndTag
		case c == '!':
			l.dashes = 0
			l.state = stMarkupDecl
		case c == '<':
			// stay
		default:
			l.state = stText
		}

	case stTagName:
		switch {
		case isSpace(c):
			l.state = stBeforeAttr
		case c == '/':
			l.state = stBeforeAttr
		case c == '>':
			l.closeTag()
		default:
			l.tag.WriteByte(lower(c))
		}

	case stEndTag:
		if c == '>' {
			l.state = stText
		}

	case stBeforeAttr:
		switch {
		case isSpace(c), c == '/':
		case c == '>':
			l.closeTag()
		default:
			l.state = stAttrName
		}

	case stAttrName:
		switch {
		case isSpace(c):
			l.state = stAfterAttrName
		case c == '=':
			l.state = stBeforeValue
		case c == '/':
			l.state = stBeforeAttr
		case c == '>':
			l.closeTag()
		}

	case stAfterAttrName:
		switch {
		case isSpace(c):
		case c == '=':
			l.state = stBeforeValue
		case c == '/':
			l.state = stBeforeAttr
		case c == '>':
			l.closeTag()
		default:
			l.state = stAttrName
		}

	case stBeforeValue:
		switch {
		case isSpace(c):
		case c == '"':
			l.state = stValueDouble
		case c == '\'':
			l.state = stValueSingle
		case c == '>':
			l.closeTag()
		default:
			l.state = stValueUnquoted
		}

	case stValueDouble:
		if c == '"' {
			l.state = stBeforeAttr
		}

	case stValueSingle:
		if c == '\'' {
			l.state = stBeforeAttr
		}

	case stValueUnquoted:
		switch {
		case isSpace(c):
			l.state = stBeforeAttr
		case c == '>':
			l.closeTag()
		}

	case stMarkupDecl:
		if c == '-' {
			l.dashes++
			if l.dashes == 2 {
				l.dashes = 0
				l.state = stComment
			}
			return
		}
		if c == '>' {
			l.state = stText
			return
		}
		l.state = stBogusComment

	case stComment:
		switch c {
		case '-':
			l.dashes++
		case '>':
			if l.dashes >= 2 {
				l.state = stText
			}
			l.dashes = 0
		default:
			l.dashes = 0
		}

	case stBogusComment:
		if c == '>' {
			l.state = stText
		}

	case stRawText:
		l.rawBuf = append(l.rawBuf, lower(c))
		closing := "</" + l.raw
		if len(l.rawBuf) > len(closing) {
			l.rawBuf = l.rawBuf[len(l.rawBuf)-len(closing):]
		}
		if string(l.rawBuf) == closing {
			l.rawBuf = l.rawBuf[:0]
			l.state = stEndTag
		}
	}
}

// closeTag handles the '>' that ends a start tag.
func (l *lexer) closeTag() {
	name := l.tag.String()
	if !l.endTag && rawTextElements[name] {
		l.raw = name
		l.rawBuf = l.rawBuf[:0]
		l.state = stRawText
		return
	}
	l.state = stText
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
