package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// style is an ANSI SGR sequence.
type style string

const (
	styleRed    style = "\033[31m"
	styleYellow style = "\033[33m"
	styleCyan   style = "\033[36m"
	styleGray   style = "\033[90m"
	styleBold   style = "\033[1m"
	styleReset  style = "\033[0m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorEnabled = true }

// paint applies the styles to text when colors are enabled.
func paint(text string, styles ...style) string {
	if !colorEnabled || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(string(styleReset))
	return b.String()
}

// IsWarning reports whether the error is recovered by the engine rather than
// returned to a caller.
func (e *WeccoError) IsWarning() bool {
	return e.Category == CategoryStructure || e.Category == CategoryAuthoring
}

// Format renders the error for a terminal: a severity header, the source
// excerpt with a caret under the column, the wrapped detail and the hint.
func (e *WeccoError) Format() string {
	var b strings.Builder

	severity := paint("ERROR", styleRed, styleBold)
	if e.IsWarning() {
		severity = paint("WARNING", styleYellow, styleBold)
	}
	head := e.Message
	if e.Code != "" {
		head = e.Code + ": " + head
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", severity, paint(head, styleBold))

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), styleCyan))
		if len(e.Context) > 0 {
			e.writeExcerpt(&b)
			b.WriteByte('\n')
		}
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteByte('\n')
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", styleCyan), e.Suggestion)
	}
	return b.String()
}

// writeExcerpt prints the context lines, marking the error line.
func (e *WeccoError) writeExcerpt(w io.Writer) {
	gutter := paint(" | ", styleGray)
	for i, line := range e.Context {
		n := e.ContextLine + i
		if n != e.Location.Line {
			fmt.Fprintf(w, "    %4d%s%s\n", n, gutter, line)
			continue
		}
		fmt.Fprintf(w, "  %s%4d%s%s\n", paint("> ", styleRed), n, gutter, line)
		if e.Location.Column > 0 {
			pad := strings.Repeat(" ", e.Location.Column-1)
			fmt.Fprintf(w, "        %s%s%s\n", gutter, pad, paint("^", styleRed))
		}
	}
}

// FormatCompact returns "file:line:col: CODE: message" with the parts that
// are known.
func (e *WeccoError) FormatCompact() string {
	parts := make([]string, 0, 3)
	if loc := e.Location.String(); loc != "" {
		parts = append(parts, loc)
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// jsonError is the wire form of a WeccoError.
type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// MarshalJSON encodes the error for machine-readable CLI output.
func (e *WeccoError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	})
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// PrintError writes err to stderr, formatted when it carries a WeccoError.
func PrintError(err error) {
	var we *WeccoError
	if errors.As(err, &we) {
		fmt.Fprint(os.Stderr, we.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint("ERROR", styleRed, styleBold), err)
}
